package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tripline/travel-services/wagateway/internal/model"
)

type FlightRepository struct {
	mock.Mock
}

func (m *FlightRepository) Create(ctx context.Context, flight *model.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *FlightRepository) GetByWaID(waID string, limit int) ([]model.Flight, error) {
	args := m.Called(waID, limit)
	return args.Get(0).([]model.Flight), args.Error(1)
}

func (m *FlightRepository) GetUpcoming(waID string, fromDate string, toDate string, limit int) ([]model.Flight, error) {
	args := m.Called(waID, fromDate, toDate, limit)
	return args.Get(0).([]model.Flight), args.Error(1)
}

func (m *FlightRepository) GetLatest(waID string, limit int) ([]model.Flight, error) {
	args := m.Called(waID, limit)
	return args.Get(0).([]model.Flight), args.Error(1)
}

func (m *FlightRepository) GetDepartingBetween(fromDate string, toDate string) ([]model.Flight, error) {
	args := m.Called(fromDate, toDate)
	return args.Get(0).([]model.Flight), args.Error(1)
}

func (m *FlightRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type HotelRepository struct {
	mock.Mock
}

func (m *HotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *HotelRepository) GetByWaID(waID string, limit int) ([]model.Hotel, error) {
	args := m.Called(waID, limit)
	return args.Get(0).([]model.Hotel), args.Error(1)
}

func (m *HotelRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type RecommendationRepository struct {
	mock.Mock
}

func (m *RecommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MediaRepository struct {
	mock.Mock
}

func (m *MediaRepository) Create(ctx context.Context, file *model.MediaFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MediaRepository) GetByID(id string) (*model.MediaFile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaFile), args.Error(1)
}

func (m *MediaRepository) GetLatestByWaID(waID string) (*model.MediaFile, error) {
	args := m.Called(waID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaFile), args.Error(1)
}

type WatchRepository struct {
	mock.Mock
}

func (m *WatchRepository) Create(ctx context.Context, watch *model.FlightWatch) error {
	args := m.Called(ctx, watch)
	return args.Error(0)
}

func (m *WatchRepository) GetByWaID(waID string) ([]model.FlightWatch, error) {
	args := m.Called(waID)
	return args.Get(0).([]model.FlightWatch), args.Error(1)
}

func (m *WatchRepository) GetAll() ([]model.FlightWatch, error) {
	args := m.Called()
	return args.Get(0).([]model.FlightWatch), args.Error(1)
}

func (m *WatchRepository) UpdateSnapshot(ctx context.Context, watch *model.FlightWatch) error {
	args := m.Called(ctx, watch)
	return args.Error(0)
}

func (m *WatchRepository) DeleteByWaIDAndIATA(ctx context.Context, waID string, flightIATA string) (int64, error) {
	args := m.Called(ctx, waID, flightIATA)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WatchRepository) DeleteByWaID(ctx context.Context, waID string) (int64, error) {
	args := m.Called(ctx, waID)
	return args.Get(0).(int64), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) UpdateForSending(ctx context.Context, notification *model.Notification, staleThreshold time.Time) error {
	args := m.Called(ctx, notification, staleThreshold)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(id int64) (*model.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *NotificationRepository) FindUnpublishedCreated(limit int) ([]model.Notification, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.Notification), args.Error(1)
}

type TxManager struct {
	mock.Mock
}

func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
