package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tripline/travel-services/wagateway/internal/mocks"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"go.uber.org/zap"
)

func TestCalendar_BuildICS(t *testing.T) {
	logger := zap.NewNop()

	t.Run("renders timed event with end time", func(t *testing.T) {
		mockFlightRepo := &mocks.FlightRepository{}
		mockHotelRepo := &mocks.HotelRepository{}
		svc := service.NewCalendarService(mockFlightRepo, mockHotelRepo, logger)

		flights := []model.Flight{
			{
				ID:           "f-1",
				WaID:         "491511",
				Origin:       "BER",
				Dest:         "LIS",
				DepartDate:   "2026-09-02",
				DepartTime:   "10:30",
				Airline:      "TAP",
				FlightNumber: "TP533",
				PNR:          "ABC123",
			},
		}

		mockFlightRepo.On("GetByWaID", "491511", 100).Return(flights, nil)
		mockHotelRepo.On("GetByWaID", "491511", 100).Return([]model.Hotel{}, nil)

		ics, err := svc.BuildICS(context.Background(), "491511")

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
		assert.Contains(t, ics, "BEGIN:VEVENT\r\n")
		assert.Contains(t, ics, "UID:f-1@wagateway\r\n")
		assert.Contains(t, ics, "DTSTART:20260902T103000\r\n")
		assert.Contains(t, ics, "DTEND:20260902T133000\r\n")
		assert.Contains(t, ics, "SUMMARY:Flight TP533 BER-LIS\r\n")
		assert.Contains(t, ics, "PNR: ABC123")
		assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	})

	t.Run("falls back to all-day event without a time", func(t *testing.T) {
		mockFlightRepo := &mocks.FlightRepository{}
		mockHotelRepo := &mocks.HotelRepository{}
		svc := service.NewCalendarService(mockFlightRepo, mockHotelRepo, logger)

		flights := []model.Flight{
			{ID: "f-2", DepartDate: "2026-09-05", Origin: "LIS", Dest: "BER", FlightNumber: "TP532"},
		}

		mockFlightRepo.On("GetByWaID", "491511", 100).Return(flights, nil)
		mockHotelRepo.On("GetByWaID", "491511", 100).Return([]model.Hotel{}, nil)

		ics, err := svc.BuildICS(context.Background(), "491511")

		assert.NoError(t, err)
		assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260905\r\n")
		assert.NotContains(t, ics, "DTEND")
	})

	t.Run("skips flights without a date and escapes text", func(t *testing.T) {
		mockFlightRepo := &mocks.FlightRepository{}
		mockHotelRepo := &mocks.HotelRepository{}
		svc := service.NewCalendarService(mockFlightRepo, mockHotelRepo, logger)

		flights := []model.Flight{
			{ID: "f-3", Origin: "BER", Dest: "LIS", FlightNumber: "TP533"},
			{ID: "f-4", DepartDate: "2026-09-07", Origin: "LIS", Dest: "FNC", FlightNumber: "TP1689", Airline: "TAP, Portugal"},
		}

		mockFlightRepo.On("GetByWaID", "491511", 100).Return(flights, nil)
		mockHotelRepo.On("GetByWaID", "491511", 100).Return([]model.Hotel{}, nil)

		ics, err := svc.BuildICS(context.Background(), "491511")

		assert.NoError(t, err)
		assert.NotContains(t, ics, "f-3@wagateway")
		assert.Contains(t, ics, "TAP\\, Portugal")
	})

	t.Run("renders hotel stays as all-day events", func(t *testing.T) {
		mockFlightRepo := &mocks.FlightRepository{}
		mockHotelRepo := &mocks.HotelRepository{}
		svc := service.NewCalendarService(mockFlightRepo, mockHotelRepo, logger)

		hotels := []model.Hotel{
			{
				ID:           "h-1",
				WaID:         "491511",
				HotelName:    "Memmo Alfama",
				City:         "Lisbon",
				CheckinDate:  "2026-09-02",
				CheckoutDate: "2026-09-05",
				Address:      "Travessa das Merceeiras 27",
			},
			{ID: "h-2", WaID: "491511", CheckinDate: "2026-09-07"},
			{ID: "h-3", WaID: "491511"},
		}

		mockFlightRepo.On("GetByWaID", "491511", 100).Return([]model.Flight{}, nil)
		mockHotelRepo.On("GetByWaID", "491511", 100).Return(hotels, nil)

		ics, err := svc.BuildICS(context.Background(), "491511")

		assert.NoError(t, err)
		assert.Contains(t, ics, "UID:h-1@wagateway\r\n")
		assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260902\r\n")
		assert.Contains(t, ics, "DTEND;VALUE=DATE:20260905\r\n")
		assert.Contains(t, ics, "SUMMARY:Hotel: Memmo Alfama\r\n")
		assert.Contains(t, ics, "City: Lisbon\\nAddress: Travessa das Merceeiras 27")

		// Missing checkout collapses to a one-day stay under a generic title.
		assert.Contains(t, ics, "UID:h-2@wagateway\r\n")
		assert.Contains(t, ics, "DTEND;VALUE=DATE:20260907\r\n")
		assert.Contains(t, ics, "SUMMARY:Hotel: Check-in\r\n")

		// No check-in date, no event.
		assert.NotContains(t, ics, "h-3@wagateway")
	})

	t.Run("empty flight list still yields a valid calendar", func(t *testing.T) {
		mockFlightRepo := &mocks.FlightRepository{}
		mockHotelRepo := &mocks.HotelRepository{}
		svc := service.NewCalendarService(mockFlightRepo, mockHotelRepo, logger)

		mockFlightRepo.On("GetByWaID", "491511", 100).Return([]model.Flight{}, nil)
		mockHotelRepo.On("GetByWaID", "491511", 100).Return([]model.Hotel{}, nil)

		ics, err := svc.BuildICS(context.Background(), "491511")

		assert.NoError(t, err)
		assert.Contains(t, ics, "BEGIN:VCALENDAR")
		assert.NotContains(t, ics, "VEVENT")
	})
}
