package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tripline/travel-services/wagateway/internal/repository"
	"go.uber.org/zap"
)

type CalendarService interface {
	BuildICS(ctx context.Context, waID string) (string, error)
}

type calendar struct {
	flightRepo repository.FlightRepository
	hotelRepo  repository.HotelRepository
	logger     *zap.Logger
}

func NewCalendarService(flightRepo repository.FlightRepository, hotelRepo repository.HotelRepository,
	logger *zap.Logger) CalendarService {
	return &calendar{flightRepo: flightRepo, hotelRepo: hotelRepo, logger: logger}
}

func (c *calendar) BuildICS(ctx context.Context, waID string) (string, error) {
	flights, err := c.flightRepo.GetByWaID(waID, 100)
	if err != nil {
		c.logger.Error("Failed to load flights for calendar",
			zap.Error(err),
			zap.String("waID", waID))
		return "", ErrDatabase
	}

	hotels, err := c.hotelRepo.GetByWaID(waID, 100)
	if err != nil {
		c.logger.Error("Failed to load hotels for calendar",
			zap.Error(err),
			zap.String("waID", waID))
		return "", ErrDatabase
	}

	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//wagateway//travel feed//EN")
	writeICSLine(&b, "CALSCALE:GREGORIAN")

	now := time.Now().UTC().Format("20060102T150405Z")

	for _, fl := range flights {
		if fl.DepartDate == "" {
			continue
		}

		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, "UID:"+fl.ID+"@wagateway")
		writeICSLine(&b, "DTSTAMP:"+now)

		if start, ok := icsDateTime(fl.DepartDate, fl.DepartTime); ok {
			writeICSLine(&b, "DTSTART:"+start)
			writeICSLine(&b, "DTEND:"+icsAddHours(fl.DepartDate, fl.DepartTime, 3))
		} else {
			writeICSLine(&b, "DTSTART;VALUE=DATE:"+strings.ReplaceAll(fl.DepartDate, "-", ""))
		}

		summary := fmt.Sprintf("Flight %s %s-%s", fl.FlightNumber, fl.Origin, fl.Dest)
		writeICSLine(&b, "SUMMARY:"+escapeICS(strings.TrimSpace(summary)))

		desc := fmt.Sprintf("Airline: %s PNR: %s", fl.Airline, fl.PNR)
		writeICSLine(&b, "DESCRIPTION:"+escapeICS(strings.TrimSpace(desc)))

		writeICSLine(&b, "END:VEVENT")
	}

	for _, ho := range hotels {
		if ho.CheckinDate == "" {
			continue
		}

		checkout := ho.CheckoutDate
		if checkout == "" {
			checkout = ho.CheckinDate
		}

		name := ho.HotelName
		if name == "" {
			name = "Check-in"
		}

		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, "UID:"+ho.ID+"@wagateway")
		writeICSLine(&b, "DTSTAMP:"+now)
		writeICSLine(&b, "DTSTART;VALUE=DATE:"+strings.ReplaceAll(ho.CheckinDate, "-", ""))
		writeICSLine(&b, "DTEND;VALUE=DATE:"+strings.ReplaceAll(checkout, "-", ""))
		writeICSLine(&b, "SUMMARY:"+escapeICS("Hotel: "+name))
		writeICSLine(&b, "DESCRIPTION:"+escapeICS(fmt.Sprintf("City: %s\nAddress: %s", ho.City, ho.Address)))
		writeICSLine(&b, "END:VEVENT")
	}

	writeICSLine(&b, "END:VCALENDAR")

	return b.String(), nil
}

// ICS requires CRLF line endings.
func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func icsDateTime(date string, clock string) (string, bool) {
	if clock == "" {
		return "", false
	}

	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return "", false
	}

	return t.Format("20060102T150405"), true
}

func icsAddHours(date string, clock string, hours int) string {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return ""
	}

	return t.Add(time.Duration(hours) * time.Hour).Format("20060102T150405")
}

func escapeICS(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return replacer.Replace(s)
}
