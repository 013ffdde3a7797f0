package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/mocks"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"go.uber.org/zap"
)

func mediaTestConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Storage.DataRoot = t.TempDir()
	return cfg
}

func TestMedia_SaveIncoming(t *testing.T) {
	logger := zap.NewNop()

	t.Run("stores pdf on disk and indexes extracted booking from caption", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		payload := []byte("%PDF-1.4 ticket")
		mockTwilio.On("DownloadMedia", mock.Anything, "https://api.twilio.com/media/1").
			Return(payload, "application/pdf", nil)

		var storedPath string
		mockMediaRepo.On("Create", context.Background(),
			mock.MatchedBy(func(f *model.MediaFile) bool {
				storedPath = f.Path
				return f.WaID == "491511" &&
					f.ContentType == "application/pdf" &&
					filepath.Ext(f.Filename) == ".pdf"
			})).Return(nil)

		extract := assistant.BookingExtract{
			Flights: []assistant.ExtractedFlight{{Origin: "BER", Dest: "LIS", FlightNumber: "TP533"}},
		}
		mockAssistant.On("ExtractBooking", mock.Anything, "ticket to lisbon").Return(extract, nil)

		mockTrips.On("IndexBooking", mock.Anything, "491511", extract,
			mock.AnythingOfType("*string"), "ticket to lisbon").Return(1, nil)

		attachment := service.InboundMedia{URL: "https://api.twilio.com/media/1", ContentType: "application/pdf"}
		saved, err := svc.SaveIncoming(context.Background(), "491511", attachment, "ticket to lisbon")

		require.NoError(t, err)
		assert.NotEmpty(t, saved.FileID)
		assert.Equal(t, 1, saved.Indexed)

		data, err := os.ReadFile(storedPath)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("image attachment goes through vision extraction", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		mockTwilio.On("DownloadMedia", mock.Anything, "https://api.twilio.com/media/2").
			Return([]byte{0xff, 0xd8}, "image/jpeg", nil)
		mockMediaRepo.On("Create", context.Background(), mock.AnythingOfType("*model.MediaFile")).Return(nil)

		mockAssistant.On("ExtractBookingFromImage", mock.Anything, "https://api.twilio.com/media/2", "").
			Return(assistant.BookingExtract{}, nil)
		mockTrips.On("IndexBooking", mock.Anything, "491511", assistant.BookingExtract{},
			mock.AnythingOfType("*string"), "").Return(0, nil)

		attachment := service.InboundMedia{URL: "https://api.twilio.com/media/2", ContentType: "image/jpeg"}
		saved, err := svc.SaveIncoming(context.Background(), "491511", attachment, "")

		require.NoError(t, err)
		assert.Zero(t, saved.Indexed)
		mockAssistant.AssertExpectations(t)
	})

	t.Run("download failure maps to provider error", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		mockTwilio.On("DownloadMedia", mock.Anything, "https://api.twilio.com/media/3").
			Return(nil, "", assert.AnError)

		attachment := service.InboundMedia{URL: "https://api.twilio.com/media/3"}
		_, err := svc.SaveIncoming(context.Background(), "491511", attachment, "")

		var serviceErr service.Error
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, service.ErrCodeProviderError, serviceErr.Code)
		mockMediaRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("disabled assistant still stores the file", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		mockTwilio.On("DownloadMedia", mock.Anything, "https://api.twilio.com/media/4").
			Return([]byte("hello"), "text/plain", nil)
		mockMediaRepo.On("Create", context.Background(), mock.AnythingOfType("*model.MediaFile")).Return(nil)
		mockAssistant.On("ExtractBooking", mock.Anything, "hello").
			Return(assistant.BookingExtract{}, assistant.ErrDisabled)

		attachment := service.InboundMedia{URL: "https://api.twilio.com/media/4"}
		saved, err := svc.SaveIncoming(context.Background(), "491511", attachment, "")

		require.NoError(t, err)
		assert.Zero(t, saved.Indexed)
		mockTrips.AssertNotCalled(t, "IndexBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMedia_SaveUpload(t *testing.T) {
	logger := zap.NewNop()

	t.Run("stores text upload and indexes booking from content", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		payload := "TP533 BER-LIS 2026-09-02 PNR ABC123"

		var storedPath string
		mockMediaRepo.On("Create", context.Background(),
			mock.MatchedBy(func(f *model.MediaFile) bool {
				storedPath = f.Path
				return f.WaID == "491511" &&
					f.Title == "Lisbon trip" &&
					f.Tags == "booking" &&
					filepath.Ext(f.Filename) == ".txt"
			})).Return(nil)

		extract := assistant.BookingExtract{
			Flights: []assistant.ExtractedFlight{{Origin: "BER", Dest: "LIS", FlightNumber: "TP533"}},
		}
		mockAssistant.On("ExtractBooking", mock.Anything, payload).Return(extract, nil)
		mockTrips.On("IndexBooking", mock.Anything, "491511", extract,
			mock.AnythingOfType("*string"), payload).Return(1, nil)

		cmd := service.UploadFileCommand{
			WaID:        "491511",
			Filename:    "booking.txt",
			ContentType: "text/plain",
			Title:       "Lisbon trip",
			Tags:        "booking",
			Data:        []byte(payload),
		}

		saved, err := svc.SaveUpload(context.Background(), cmd)

		require.NoError(t, err)
		assert.NotEmpty(t, saved.FileID)
		assert.Equal(t, 1, saved.Indexed)

		data, err := os.ReadFile(storedPath)
		require.NoError(t, err)
		assert.Equal(t, []byte(payload), data)

		mockTwilio.AssertNotCalled(t, "DownloadMedia", mock.Anything, mock.Anything)
	})

	t.Run("binary upload falls back to the title hint", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		mockMediaRepo.On("Create", context.Background(), mock.AnythingOfType("*model.MediaFile")).Return(nil)
		mockAssistant.On("ExtractBooking", mock.Anything, "flight TP533 on 2026-09-02").
			Return(assistant.BookingExtract{}, nil)
		mockTrips.On("IndexBooking", mock.Anything, "491511", assistant.BookingExtract{},
			mock.AnythingOfType("*string"), "flight TP533 on 2026-09-02").Return(0, nil)

		cmd := service.UploadFileCommand{
			WaID:        "491511",
			Filename:    "ticket.pdf",
			ContentType: "application/pdf",
			Title:       "flight TP533 on 2026-09-02",
			Data:        []byte("%PDF-1.4"),
		}

		saved, err := svc.SaveUpload(context.Background(), cmd)

		require.NoError(t, err)
		assert.Zero(t, saved.Indexed)
		mockAssistant.AssertExpectations(t)
	})

	t.Run("untitled binary upload skips indexing", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		// Without a title the original filename becomes the stored title,
		// but an empty one means there is nothing to extract from.
		mockMediaRepo.On("Create", context.Background(),
			mock.MatchedBy(func(f *model.MediaFile) bool {
				return f.Title == ""
			})).Return(nil)

		cmd := service.UploadFileCommand{
			WaID:        "491511",
			ContentType: "image/png",
			Data:        []byte{0x89, 0x50},
		}

		saved, err := svc.SaveUpload(context.Background(), cmd)

		require.NoError(t, err)
		assert.Zero(t, saved.Indexed)
		mockAssistant.AssertNotCalled(t, "ExtractBooking", mock.Anything, mock.Anything)
	})
}

func TestMedia_LatestFile(t *testing.T) {
	logger := zap.NewNop()

	t.Run("missing media maps to sentinel error", func(t *testing.T) {
		mockMediaRepo := &mocks.MediaRepository{}
		mockTrips := &mocks.TripService{}
		mockAssistant := &mocks.Assistant{}
		mockTwilio := &mocks.TwilioClient{}

		cfg := mediaTestConfig(t)
		svc := service.NewMediaService(mockMediaRepo, mockTrips, mockAssistant, mockTwilio, cfg, logger)

		mockMediaRepo.On("GetLatestByWaID", "491511").Return(nil, repository.ErrNotFound)

		_, err := svc.LatestFile(context.Background(), "491511")

		assert.ErrorIs(t, err, service.ErrNoMediaFound)
	})
}
