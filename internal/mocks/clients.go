package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/flightinfo"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
)

type TwilioClient struct {
	mock.Mock
}

func (m *TwilioClient) SendWhatsApp(ctx context.Context, toWaID string, body string, mediaURLs []string) (twilio.SendResponse, error) {
	args := m.Called(ctx, toWaID, body, mediaURLs)
	return args.Get(0).(twilio.SendResponse), args.Error(1)
}

func (m *TwilioClient) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, string, error) {
	args := m.Called(ctx, mediaURL)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type FlightInfoClient struct {
	mock.Mock
}

func (m *FlightInfoClient) FlightStatus(ctx context.Context, flightIATA string, flightDate string) ([]flightinfo.FlightRecord, error) {
	args := m.Called(ctx, flightIATA, flightDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]flightinfo.FlightRecord), args.Error(1)
}

type Assistant struct {
	mock.Mock
}

func (m *Assistant) Chat(ctx context.Context, history []assistant.Message, userText string) (string, error) {
	args := m.Called(ctx, history, userText)
	return args.String(0), args.Error(1)
}

func (m *Assistant) Route(ctx context.Context, userText string) (assistant.RouteResult, error) {
	args := m.Called(ctx, userText)
	return args.Get(0).(assistant.RouteResult), args.Error(1)
}

func (m *Assistant) ExtractBooking(ctx context.Context, text string) (assistant.BookingExtract, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(assistant.BookingExtract), args.Error(1)
}

func (m *Assistant) ExtractBookingFromImage(ctx context.Context, imageURL string, hint string) (assistant.BookingExtract, error) {
	args := m.Called(ctx, imageURL, hint)
	return args.Get(0).(assistant.BookingExtract), args.Error(1)
}
