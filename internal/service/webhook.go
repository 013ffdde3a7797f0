package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/zap"
)

type WebhookService interface {
	HandleMessage(ctx context.Context, cmd InboundMessageCommand) (Reply, error)
}

type webhook struct {
	trips     TripService
	watches   WatchService
	mediaFile MediaService
	router    IntentRouter
	assistant assistant.Assistant
	history   *ChatHistoryStore
	cfg       *config.Config
	logger    *zap.Logger
}

func NewWebhookService(trips TripService, watches WatchService, mediaFile MediaService, router IntentRouter,
	chat assistant.Assistant, history *ChatHistoryStore, cfg *config.Config, logger *zap.Logger) WebhookService {
	return &webhook{
		trips:     trips,
		watches:   watches,
		mediaFile: mediaFile,
		router:    router,
		assistant: chat,
		history:   history,
		cfg:       cfg,
		logger:    logger,
	}
}

// HandleMessage is the whole inbound conversation flow. It never returns
// an empty reply for a valid sender; worst case the fallback text goes out.
func (w *webhook) HandleMessage(ctx context.Context, cmd InboundMessageCommand) (Reply, error) {
	waID := twilio.NormalizeWaID(cmd.WaID)
	if waID == "" {
		waID = twilio.NormalizeWaID(cmd.From)
	}

	body := strings.TrimSpace(cmd.Body)

	w.logger.Info("Inbound message",
		zap.String("waID", waID),
		zap.Int("bodyLen", len(body)),
		zap.Int("media", len(cmd.Media)))

	if len(cmd.Media) > 0 {
		return w.handleMedia(ctx, waID, cmd)
	}

	if cmd.Latitude != "" && cmd.Longitude != "" {
		if err := w.trips.SaveRecommendation(ctx, waID, body, cmd.Latitude, cmd.Longitude); err == nil {
			var reply Reply
			reply.Add("📍 Saved that spot for you.")
			return reply, nil
		}
	}

	switch strings.ToLower(body) {
	case "/reset", "reset":
		w.history.Reset(waID)
		var reply Reply
		reply.Add(w.cfg.Replies.ResetDone)
		return reply, nil

	case "/help", "help":
		var reply Reply
		reply.Add(w.cfg.Replies.Help)
		return reply, nil
	}

	intent := w.router.Route(ctx, body)

	switch intent.Type {
	case IntentListFlights:
		return w.replyUpcomingFlights(ctx, waID)

	case IntentListPersonFlights:
		return w.replyPersonFlights(ctx, intent.Params["person"])

	case IntentFlightDetails:
		return w.replyFlightDetails(ctx, waID)

	case IntentFlightStatus:
		return w.replyFlightStatus(ctx, intent.Params["iata"])

	case IntentTrackFlight:
		return w.replyTrackFlight(ctx, waID, intent.Params["iata"], intent.Params["date"])

	case IntentUntrackFlight:
		return w.replyUntrackFlight(ctx, waID, intent.Params["iata"])

	case IntentWatchList:
		return w.replyWatchList(ctx, waID)

	case IntentSendLastTicket:
		return w.replyLastTicket(ctx, waID)
	}

	return w.replyChat(ctx, waID, body)
}

func (w *webhook) handleMedia(ctx context.Context, waID string, cmd InboundMessageCommand) (Reply, error) {
	var reply Reply
	caption := strings.TrimSpace(cmd.Body)
	indexed := 0

	for _, attachment := range cmd.Media {
		saved, err := w.mediaFile.SaveIncoming(ctx, waID, attachment, caption)
		if err != nil {
			w.logger.Warn("Failed to save incoming media",
				zap.Error(err),
				zap.String("waID", waID))
			reply.Add("I couldn't store that file, please try sending it again.")
			return reply, nil
		}
		indexed += saved.Indexed
	}

	if indexed == 0 {
		reply.Add("📎 Got it, file saved.")
		return reply, nil
	}

	flights, err := w.trips.LatestFlights(ctx, waID, indexed)
	if err != nil || len(flights) == 0 {
		reply.Add(fmt.Sprintf("📎 File saved, %d booking item(s) indexed.", indexed))
		return reply, nil
	}

	reply.Add("✅ Booking saved:\n" + FormatFlightSummary(flights))
	return reply, nil
}

func (w *webhook) replyUpcomingFlights(ctx context.Context, waID string) (Reply, error) {
	lookahead := w.cfg.Watch.LookaheadDays
	if lookahead <= 0 {
		lookahead = 90
	}

	flights, err := w.trips.UpcomingFlights(ctx, waID, lookahead)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if len(flights) == 0 {
		reply.Add(w.cfg.Replies.NoFlights)
		return reply, nil
	}

	reply.Add("✈️ Upcoming flights:\n" + FormatFlightSummary(flights))
	return reply, nil
}

func (w *webhook) replyPersonFlights(ctx context.Context, person string) (Reply, error) {
	var reply Reply

	alias := strings.ToLower(strings.TrimSpace(person))
	targetWaID, ok := w.cfg.Replies.ContactAliases[alias]
	if !ok {
		reply.Add(fmt.Sprintf("I don't know who %q is.", person))
		return reply, nil
	}

	lookahead := w.cfg.Watch.LookaheadDays
	if lookahead <= 0 {
		lookahead = 90
	}

	flights, err := w.trips.UpcomingFlights(ctx, targetWaID, lookahead)
	if err != nil {
		return Reply{}, err
	}

	if len(flights) == 0 {
		reply.Add(fmt.Sprintf("No upcoming flights for %s.", person))
		return reply, nil
	}

	reply.Add(fmt.Sprintf("✈️ Flights for %s:\n%s", person, FormatFlightSummary(flights)))
	return reply, nil
}

func (w *webhook) replyFlightDetails(ctx context.Context, waID string) (Reply, error) {
	details, err := w.trips.FlightDetails(ctx, waID)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if details == "" {
		reply.Add(w.cfg.Replies.NoFlights)
		return reply, nil
	}

	reply.Add(details)
	reply.Add("🗓 Calendar feed: " + w.calendarURL(waID))
	return reply, nil
}

func (w *webhook) replyFlightStatus(ctx context.Context, flightIATA string) (Reply, error) {
	var reply Reply
	if flightIATA == "" {
		reply.Add("Tell me the flight number, e.g. \"status LH716\".")
		return reply, nil
	}

	snapshot, found, err := w.watches.Status(ctx, flightIATA, "")
	if err != nil {
		reply.Add("Flight status is unavailable right now, try again in a bit.")
		return reply, nil
	}

	if !found {
		reply.Add(fmt.Sprintf("No live data for %s today.", flightIATA))
		return reply, nil
	}

	reply.Add(snapshot.Format())
	return reply, nil
}

func (w *webhook) replyTrackFlight(ctx context.Context, waID, flightIATA, flightDate string) (Reply, error) {
	var reply Reply
	if flightIATA == "" {
		reply.Add("Tell me which flight to track, e.g. \"track LH716 2026-09-02\".")
		return reply, nil
	}

	cmd := TrackFlightCommand{WaID: waID, FlightIATA: flightIATA, FlightDate: flightDate}
	if err := w.watches.Track(ctx, cmd); err != nil {
		if errors.Is(err, ErrAlreadyTracked) {
			reply.Add(fmt.Sprintf("You're already tracking %s.", flightIATA))
			return reply, nil
		}
		return Reply{}, err
	}

	reply.Add(fmt.Sprintf("🔔 Tracking %s. I'll ping you when something changes.", flightIATA))
	return reply, nil
}

func (w *webhook) replyUntrackFlight(ctx context.Context, waID, flightIATA string) (Reply, error) {
	removed, err := w.watches.Untrack(ctx, waID, flightIATA)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if removed == 0 {
		reply.Add("Nothing was being tracked.")
		return reply, nil
	}

	reply.Add(fmt.Sprintf("🔕 Stopped tracking %d flight(s).", removed))
	return reply, nil
}

func (w *webhook) replyWatchList(ctx context.Context, waID string) (Reply, error) {
	watches, err := w.watches.List(ctx, waID)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if len(watches) == 0 {
		reply.Add("You're not tracking any flights.")
		return reply, nil
	}

	lines := make([]string, 0, len(watches))
	for _, entry := range watches {
		line := "- " + entry.FlightIATA
		if entry.FlightDate != nil {
			line += " on " + *entry.FlightDate
		}
		lines = append(lines, line)
	}

	reply.Add("🔔 Tracked flights:\n" + strings.Join(lines, "\n"))
	return reply, nil
}

func (w *webhook) replyLastTicket(ctx context.Context, waID string) (Reply, error) {
	file, err := w.mediaFile.LatestFile(ctx, waID)
	if err != nil {
		var reply Reply
		if err == ErrNoMediaFound {
			reply.Add("I don't have any files from you yet.")
			return reply, nil
		}
		return Reply{}, err
	}

	var reply Reply
	url := PublicFileURL(w.cfg.API.BasePublicURL, file.ID)
	reply.AddWithMedia("🎫 Here's your latest ticket.", url)
	return reply, nil
}

func (w *webhook) replyChat(ctx context.Context, waID string, body string) (Reply, error) {
	var reply Reply

	history := w.history.Get(waID)
	answer, err := w.assistant.Chat(ctx, history, body)
	if err != nil {
		if err != assistant.ErrDisabled {
			w.logger.Warn("Assistant chat failed",
				zap.Error(err),
				zap.String("waID", waID))
		}
		reply.Add(w.cfg.Replies.Fallback)
		return reply, nil
	}

	w.history.Append(waID, body, answer)

	reply.Add(answer)
	return reply, nil
}

func (w *webhook) calendarURL(waID string) string {
	return fmt.Sprintf("%s/calendar/%s.ics", strings.TrimRight(w.cfg.API.BasePublicURL, "/"), waID)
}
