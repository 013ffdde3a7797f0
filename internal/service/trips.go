package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"go.uber.org/zap"
)

type TripService interface {
	UpcomingFlights(ctx context.Context, waID string, lookaheadDays int) ([]model.Flight, error)
	LatestFlights(ctx context.Context, waID string, limit int) ([]model.Flight, error)
	FlightDetails(ctx context.Context, waID string) (string, error)
	IndexBooking(ctx context.Context, waID string, extract assistant.BookingExtract, sourceFileID *string, rawExcerpt string) (int, error)
	SaveRecommendation(ctx context.Context, waID string, text string, lat, lon string) error
	Report(ctx context.Context) (StatusReport, error)
}

type trips struct {
	flightRepo repository.FlightRepository
	hotelRepo  repository.HotelRepository
	recRepo    repository.RecommendationRepository
	txManager  repository.TxManager
	logger     *zap.Logger
}

func NewTripService(flightRepo repository.FlightRepository, hotelRepo repository.HotelRepository,
	recRepo repository.RecommendationRepository, txManager repository.TxManager, logger *zap.Logger) TripService {
	return &trips{flightRepo: flightRepo, hotelRepo: hotelRepo, recRepo: recRepo, txManager: txManager, logger: logger}
}

func (t *trips) UpcomingFlights(ctx context.Context, waID string, lookaheadDays int) ([]model.Flight, error) {
	now := time.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, lookaheadDays).Format("2006-01-02")

	flights, err := t.flightRepo.GetUpcoming(waID, from, to, 20)
	if err != nil {
		t.logger.Error("Failed to load upcoming flights",
			zap.Error(err),
			zap.String("waID", waID))
		return nil, ErrDatabase
	}

	return flights, nil
}

func (t *trips) LatestFlights(ctx context.Context, waID string, limit int) ([]model.Flight, error) {
	flights, err := t.flightRepo.GetLatest(waID, limit)
	if err != nil {
		t.logger.Error("Failed to load latest flights",
			zap.Error(err),
			zap.String("waID", waID))
		return nil, ErrDatabase
	}

	return flights, nil
}

func (t *trips) FlightDetails(ctx context.Context, waID string) (string, error) {
	flights, err := t.flightRepo.GetLatest(waID, 3)
	if err != nil {
		t.logger.Error("Failed to load flights for details",
			zap.Error(err),
			zap.String("waID", waID))
		return "", ErrDatabase
	}

	if len(flights) == 0 {
		return "", nil
	}

	return FormatFlightDetails(flights), nil
}

func (t *trips) IndexBooking(ctx context.Context, waID string, extract assistant.BookingExtract,
	sourceFileID *string, rawExcerpt string) (int, error) {

	if len(extract.Flights) == 0 && len(extract.Hotels) == 0 {
		return 0, nil
	}

	indexed := 0
	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, fl := range extract.Flights {
			flight := model.Flight{
				ID:           uuid.NewString(),
				WaID:         waID,
				Origin:       strings.ToUpper(fl.Origin),
				Dest:         strings.ToUpper(fl.Dest),
				DepartDate:   fl.DepartDate,
				DepartTime:   fl.DepartTime,
				ArrivalDate:  fl.ArrivalDate,
				ArrivalTime:  fl.ArrivalTime,
				Airline:      fl.Airline,
				FlightNumber: strings.ToUpper(strings.ReplaceAll(fl.FlightNumber, " ", "")),
				PNR:          fl.PNR,
				SourceFileID: sourceFileID,
				RawExcerpt:   truncate(rawExcerpt, 2000),
				CreatedAt:    time.Now(),
			}

			if err := t.flightRepo.Create(ctx, &flight); err != nil {
				return err
			}
			indexed++
		}

		for _, ho := range extract.Hotels {
			hotel := model.Hotel{
				ID:           uuid.NewString(),
				WaID:         waID,
				HotelName:    ho.HotelName,
				City:         ho.City,
				CheckinDate:  ho.CheckinDate,
				CheckoutDate: ho.CheckoutDate,
				Address:      ho.Address,
				SourceFileID: sourceFileID,
				RawExcerpt:   truncate(rawExcerpt, 2000),
				CreatedAt:    time.Now(),
			}

			if err := t.hotelRepo.Create(ctx, &hotel); err != nil {
				return err
			}
			indexed++
		}

		return nil
	})

	if err != nil {
		t.logger.Error("Failed to index booking",
			zap.Error(err),
			zap.String("waID", waID))
		return 0, ErrDatabase
	}

	t.logger.Info("Booking indexed",
		zap.String("waID", waID),
		zap.Int("flights", len(extract.Flights)),
		zap.Int("hotels", len(extract.Hotels)))

	return indexed, nil
}

var recCategories = map[string]string{
	"restaurant": "food",
	"eat":        "food",
	"food":       "food",
	"bar":        "nightlife",
	"club":       "nightlife",
	"museum":     "culture",
	"temple":     "culture",
	"beach":      "outdoors",
	"market":     "shopping",
	"recommend":  "general",
}

func (t *trips) SaveRecommendation(ctx context.Context, waID string, text string, lat, lon string) error {
	category := inferCategory(text)
	if category == "" && (lat == "" || lon == "") {
		return nil
	}

	rec := model.Recommendation{
		ID:        uuid.NewString(),
		WaID:      waID,
		Text:      truncate(text, 2000),
		Category:  category,
		CreatedAt: time.Now(),
	}

	if lat != "" && lon != "" {
		latF, latErr := parseCoord(lat)
		lonF, lonErr := parseCoord(lon)
		if latErr == nil && lonErr == nil {
			rec.Lat = &latF
			rec.Lon = &lonF
		}
	}

	if err := t.recRepo.Create(ctx, &rec); err != nil {
		t.logger.Warn("Failed to save recommendation",
			zap.Error(err),
			zap.String("waID", waID))
		return ErrDatabase
	}

	return nil
}

func (t *trips) Report(ctx context.Context) (StatusReport, error) {
	flights, err := t.flightRepo.Count()
	if err != nil {
		return StatusReport{}, ErrDatabase
	}

	hotels, err := t.hotelRepo.Count()
	if err != nil {
		return StatusReport{}, ErrDatabase
	}

	return StatusReport{Service: "wagateway", Flights: flights, Hotels: hotels}, nil
}

func FormatFlightSummary(flights []model.Flight) string {
	lines := make([]string, 0, len(flights))
	for _, fl := range flights {
		line := fmt.Sprintf("- %s %s %s→%s %s", fl.DepartDate, fl.DepartTime, fl.Origin, fl.Dest, fl.FlightNumber)
		if fl.Airline != "" {
			line += " | " + fl.Airline
		}
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(lines, "\n")
}

func FormatFlightDetails(flights []model.Flight) string {
	var b strings.Builder
	b.WriteString("✈️ Flight details:\n")

	for _, fl := range flights {
		fmt.Fprintf(&b, "%s %s→%s\n", fl.FlightNumber, fl.Origin, fl.Dest)
		fmt.Fprintf(&b, "  Departs: %s %s\n", fl.DepartDate, fl.DepartTime)
		if fl.ArrivalDate != "" || fl.ArrivalTime != "" {
			fmt.Fprintf(&b, "  Arrives: %s %s\n", fl.ArrivalDate, fl.ArrivalTime)
		}
		if fl.Airline != "" {
			fmt.Fprintf(&b, "  Airline: %s\n", fl.Airline)
		}
		pnr := fl.PNR
		if pnr == "" {
			pnr = "-"
		}
		fmt.Fprintf(&b, "  PNR: %s\n", pnr)
	}

	return strings.TrimRight(b.String(), "\n")
}

func inferCategory(text string) string {
	lower := strings.ToLower(text)
	for keyword, category := range recCategories {
		if strings.Contains(lower, keyword) {
			return category
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func parseCoord(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &f)
	return f, err
}
