package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/mocks"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"go.uber.org/zap"
)

type webhookFixture struct {
	trips     *mocks.TripService
	watches   *mocks.WatchService
	media     *mocks.MediaService
	router    *mocks.IntentRouter
	assistant *mocks.Assistant
	history   *service.ChatHistoryStore
	svc       service.WebhookService
}

func newWebhookFixture(cfg *config.Config) *webhookFixture {
	f := &webhookFixture{
		trips:     &mocks.TripService{},
		watches:   &mocks.WatchService{},
		media:     &mocks.MediaService{},
		router:    &mocks.IntentRouter{},
		assistant: &mocks.Assistant{},
		history:   service.NewChatHistoryStore(),
	}

	f.svc = service.NewWebhookService(f.trips, f.watches, f.media, f.router,
		f.assistant, f.history, cfg, zap.NewNop())
	return f
}

func webhookTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.BasePublicURL = "https://wagateway.example.com"
	cfg.Watch.LookaheadDays = 90
	cfg.Replies.Help = "help text"
	cfg.Replies.Fallback = "fallback text"
	cfg.Replies.ResetDone = "reset done"
	cfg.Replies.NoFlights = "no flights on file"
	cfg.Replies.ContactAliases = map[string]string{"mara": "491512"}
	return cfg
}

func TestWebhook_Commands(t *testing.T) {
	t.Run("help returns configured text", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "/help"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Len(t, reply.Messages, 1)
		assert.Equal(t, "help text", reply.Messages[0].Body)
	})

	t.Run("reset clears chat history", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())
		f.history.Append("491511", "hi", "hello")

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "/reset"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, "reset done", reply.Messages[0].Body)
		assert.Empty(t, f.history.Get("491511"))
	})

	t.Run("sender prefix is stripped before use", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		cmd := service.InboundMessageCommand{From: "whatsapp:+491511", Body: "/help"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.NotEmpty(t, reply.Messages)
	})
}

func TestWebhook_Intents(t *testing.T) {
	t.Run("list flights replies with summary", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "my flights").
			Return(service.Intent{Type: service.IntentListFlights})

		flights := []model.Flight{
			{WaID: "491511", Origin: "BER", Dest: "LIS", DepartDate: "2026-09-02", FlightNumber: "TP533"},
		}
		f.trips.On("UpcomingFlights", mock.Anything, "491511", 90).Return(flights, nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "my flights"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Contains(t, reply.Messages[0].Body, "TP533")
	})

	t.Run("list flights with empty result uses configured reply", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "my flights").
			Return(service.Intent{Type: service.IntentListFlights})
		f.trips.On("UpcomingFlights", mock.Anything, "491511", 90).Return([]model.Flight{}, nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "my flights"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, "no flights on file", reply.Messages[0].Body)
	})

	t.Run("person flights resolves contact alias", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "flights of mara").
			Return(service.Intent{Type: service.IntentListPersonFlights, Params: map[string]string{"person": "mara"}})

		flights := []model.Flight{{WaID: "491512", Origin: "MUC", Dest: "BKK", FlightNumber: "TG925"}}
		f.trips.On("UpcomingFlights", mock.Anything, "491512", 90).Return(flights, nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "flights of mara"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Contains(t, reply.Messages[0].Body, "TG925")
	})

	t.Run("unknown contact alias is rejected politely", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "flights of bob").
			Return(service.Intent{Type: service.IntentListPersonFlights, Params: map[string]string{"person": "bob"}})

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "flights of bob"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Contains(t, reply.Messages[0].Body, "bob")
		f.trips.AssertNotCalled(t, "UpcomingFlights", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("track flight confirms and creates watch", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "track TP533 2026-09-02").
			Return(service.Intent{Type: service.IntentTrackFlight,
				Params: map[string]string{"iata": "TP533", "date": "2026-09-02"}})

		f.watches.On("Track", mock.Anything,
			service.TrackFlightCommand{WaID: "491511", FlightIATA: "TP533", FlightDate: "2026-09-02"}).Return(nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "track TP533 2026-09-02"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Contains(t, reply.Messages[0].Body, "TP533")
		f.watches.AssertExpectations(t)
	})

	t.Run("tracking the same flight twice gets a friendly reply", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "track TP533").
			Return(service.Intent{Type: service.IntentTrackFlight, Params: map[string]string{"iata": "TP533"}})

		f.watches.On("Track", mock.Anything,
			service.TrackFlightCommand{WaID: "491511", FlightIATA: "TP533"}).Return(service.ErrAlreadyTracked)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "track TP533"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, "You're already tracking TP533.", reply.Messages[0].Body)
	})

	t.Run("untrack reports number removed", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "untrack").
			Return(service.Intent{Type: service.IntentUntrackFlight, Params: map[string]string{}})

		f.watches.On("Untrack", mock.Anything, "491511", "").Return(int64(2), nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "untrack"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Contains(t, reply.Messages[0].Body, "2")
	})

	t.Run("last ticket replies with media link", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "send my ticket").
			Return(service.Intent{Type: service.IntentSendLastTicket})

		file := &model.MediaFile{ID: "file-1", WaID: "491511", ContentType: "application/pdf"}
		f.media.On("LatestFile", mock.Anything, "491511").Return(file, nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "send my ticket"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Len(t, reply.Messages, 1)
		assert.Equal(t, []string{"https://wagateway.example.com/files/file-1"}, reply.Messages[0].MediaURLs)
	})

	t.Run("last ticket without stored files", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "send my ticket").
			Return(service.Intent{Type: service.IntentSendLastTicket})
		f.media.On("LatestFile", mock.Anything, "491511").Return(nil, service.ErrNoMediaFound)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "send my ticket"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.NotEmpty(t, reply.Messages[0].Body)
		assert.Empty(t, reply.Messages[0].MediaURLs)
	})
}

func TestWebhook_Chat(t *testing.T) {
	t.Run("falls back to assistant chat and records history", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "what should I pack").
			Return(service.Intent{Type: service.IntentNone})
		f.assistant.On("Chat", mock.Anything, mock.Anything, "what should I pack").
			Return("Light layers and an adapter.", nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "what should I pack"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, "Light layers and an adapter.", reply.Messages[0].Body)
		assert.Len(t, f.history.Get("491511"), 2)
	})

	t.Run("assistant disabled yields configured fallback", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.router.On("Route", mock.Anything, "hello there").
			Return(service.Intent{Type: service.IntentNone})
		f.assistant.On("Chat", mock.Anything, mock.Anything, "hello there").
			Return("", assistant.ErrDisabled)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "hello there"}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, "fallback text", reply.Messages[0].Body)
		assert.Empty(t, f.history.Get("491511"))
	})
}

func TestWebhook_Media(t *testing.T) {
	t.Run("stored attachment with indexed booking echoes summary", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		attachment := service.InboundMedia{URL: "https://api.twilio.com/media/1", ContentType: "application/pdf"}

		f.media.On("SaveIncoming", mock.Anything, "491511", attachment, "my ticket").
			Return(service.SavedMedia{FileID: "file-1", Indexed: 1}, nil)

		flights := []model.Flight{{FlightNumber: "TP533", Origin: "BER", Dest: "LIS"}}
		f.trips.On("LatestFlights", mock.Anything, "491511", 1).Return(flights, nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Body: "my ticket", Media: []service.InboundMedia{attachment}}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Contains(t, reply.Messages[0].Body, "TP533")
		f.router.AssertNotCalled(t, "Route", mock.Anything, mock.Anything)
	})

	t.Run("stored attachment without booking confirms save", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		attachment := service.InboundMedia{URL: "https://api.twilio.com/media/2", ContentType: "image/jpeg"}

		f.media.On("SaveIncoming", mock.Anything, "491511", attachment, "").
			Return(service.SavedMedia{FileID: "file-2"}, nil)

		cmd := service.InboundMessageCommand{WaID: "491511", Media: []service.InboundMedia{attachment}}
		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.NotEmpty(t, reply.Messages[0].Body)
	})
}

func TestWebhook_Location(t *testing.T) {
	t.Run("location pin is saved as recommendation", func(t *testing.T) {
		f := newWebhookFixture(webhookTestConfig())

		f.trips.On("SaveRecommendation", mock.Anything, "491511", "great ramen here", "35.6812", "139.7671").
			Return(nil)

		cmd := service.InboundMessageCommand{
			WaID:      "491511",
			Body:      "great ramen here",
			Latitude:  "35.6812",
			Longitude: "139.7671",
		}

		reply, err := f.svc.HandleMessage(context.Background(), cmd)

		assert.NoError(t, err)
		assert.NotEmpty(t, reply.Messages[0].Body)
		f.trips.AssertExpectations(t)
	})
}
