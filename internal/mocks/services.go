package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/flightinfo"
)

type TripService struct {
	mock.Mock
}

func (m *TripService) UpcomingFlights(ctx context.Context, waID string, lookaheadDays int) ([]model.Flight, error) {
	args := m.Called(ctx, waID, lookaheadDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Flight), args.Error(1)
}

func (m *TripService) LatestFlights(ctx context.Context, waID string, limit int) ([]model.Flight, error) {
	args := m.Called(ctx, waID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Flight), args.Error(1)
}

func (m *TripService) FlightDetails(ctx context.Context, waID string) (string, error) {
	args := m.Called(ctx, waID)
	return args.String(0), args.Error(1)
}

func (m *TripService) IndexBooking(ctx context.Context, waID string, extract assistant.BookingExtract, sourceFileID *string, rawExcerpt string) (int, error) {
	args := m.Called(ctx, waID, extract, sourceFileID, rawExcerpt)
	return args.Int(0), args.Error(1)
}

func (m *TripService) SaveRecommendation(ctx context.Context, waID string, text string, lat, lon string) error {
	args := m.Called(ctx, waID, text, lat, lon)
	return args.Error(0)
}

func (m *TripService) Report(ctx context.Context) (service.StatusReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.StatusReport), args.Error(1)
}

type WatchService struct {
	mock.Mock
}

func (m *WatchService) Track(ctx context.Context, cmd service.TrackFlightCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *WatchService) Untrack(ctx context.Context, waID string, flightIATA string) (int64, error) {
	args := m.Called(ctx, waID, flightIATA)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WatchService) List(ctx context.Context, waID string) ([]model.FlightWatch, error) {
	args := m.Called(ctx, waID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FlightWatch), args.Error(1)
}

func (m *WatchService) Status(ctx context.Context, flightIATA string, flightDate string) (flightinfo.Snapshot, bool, error) {
	args := m.Called(ctx, flightIATA, flightDate)
	return args.Get(0).(flightinfo.Snapshot), args.Bool(1), args.Error(2)
}

func (m *WatchService) CheckAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type NotifyService struct {
	mock.Mock
}

func (m *NotifyService) Enqueue(ctx context.Context, cmd service.EnqueueNotificationCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *NotifyService) EnqueueDailyReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *NotifyService) EnqueueWeeklyDigests(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *NotifyService) FindNotificationsToQueue(ctx context.Context, limit int) ([]service.SendNotificationCommand, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SendNotificationCommand), args.Error(1)
}

func (m *NotifyService) MarkNotificationAsQueued(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *NotifyService) SendNotification(ctx context.Context, cmd service.SendNotificationCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MediaService struct {
	mock.Mock
}

func (m *MediaService) SaveIncoming(ctx context.Context, waID string, media service.InboundMedia, caption string) (service.SavedMedia, error) {
	args := m.Called(ctx, waID, media, caption)
	return args.Get(0).(service.SavedMedia), args.Error(1)
}

func (m *MediaService) SaveUpload(ctx context.Context, cmd service.UploadFileCommand) (service.SavedMedia, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.SavedMedia), args.Error(1)
}

func (m *MediaService) LatestFile(ctx context.Context, waID string) (*model.MediaFile, error) {
	args := m.Called(ctx, waID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaFile), args.Error(1)
}

func (m *MediaService) FileByID(ctx context.Context, fileID string) (*model.MediaFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaFile), args.Error(1)
}

type WebhookService struct {
	mock.Mock
}

func (m *WebhookService) HandleMessage(ctx context.Context, cmd service.InboundMessageCommand) (service.Reply, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.Reply), args.Error(1)
}

type IntentRouter struct {
	mock.Mock
}

func (m *IntentRouter) Route(ctx context.Context, text string) service.Intent {
	args := m.Called(ctx, text)
	return args.Get(0).(service.Intent)
}

type CalendarService struct {
	mock.Mock
}

func (m *CalendarService) BuildICS(ctx context.Context, waID string) (string, error) {
	args := m.Called(ctx, waID)
	return args.String(0), args.Error(1)
}
