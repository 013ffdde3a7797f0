package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/pkg/flightinfo"
	"go.uber.org/zap"
)

type WatchService interface {
	Track(ctx context.Context, cmd TrackFlightCommand) error
	Untrack(ctx context.Context, waID string, flightIATA string) (int64, error)
	List(ctx context.Context, waID string) ([]model.FlightWatch, error)
	Status(ctx context.Context, flightIATA string, flightDate string) (flightinfo.Snapshot, bool, error)
	CheckAll(ctx context.Context) error
}

type watch struct {
	watchRepo repository.WatchRepository
	flights   flightinfo.Client
	notify    NotifyService
	notifyCC  []string
	logger    *zap.Logger
}

func NewWatchService(watchRepo repository.WatchRepository, flights flightinfo.Client,
	notify NotifyService, cfg *config.Config, logger *zap.Logger) WatchService {
	return &watch{
		watchRepo: watchRepo,
		flights:   flights,
		notify:    notify,
		notifyCC:  cfg.Watch.NotifyCC,
		logger:    logger,
	}
}

func (w *watch) Track(ctx context.Context, cmd TrackFlightCommand) error {
	entry := model.FlightWatch{
		WaID:       cmd.WaID,
		FlightIATA: cmd.FlightIATA,
		Provider:   "aviationstack",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if cmd.FlightDate != "" {
		date := cmd.FlightDate
		entry.FlightDate = &date
	}

	if err := w.watchRepo.Create(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			w.logger.Info("Flight already tracked",
				zap.String("waID", cmd.WaID),
				zap.String("flight", cmd.FlightIATA))
			return ErrAlreadyTracked
		}

		w.logger.Error("Failed to create flight watch",
			zap.Error(err),
			zap.String("waID", cmd.WaID),
			zap.String("flight", cmd.FlightIATA))
		return ErrDatabase
	}

	w.logger.Info("Flight watch created",
		zap.String("waID", cmd.WaID),
		zap.String("flight", cmd.FlightIATA))

	return nil
}

func (w *watch) Untrack(ctx context.Context, waID string, flightIATA string) (int64, error) {
	var removed int64
	var err error

	if flightIATA != "" {
		removed, err = w.watchRepo.DeleteByWaIDAndIATA(ctx, waID, flightIATA)
	} else {
		removed, err = w.watchRepo.DeleteByWaID(ctx, waID)
	}

	if err != nil {
		w.logger.Error("Failed to remove flight watch",
			zap.Error(err),
			zap.String("waID", waID),
			zap.String("flight", flightIATA))
		return 0, ErrDatabase
	}

	return removed, nil
}

func (w *watch) List(ctx context.Context, waID string) ([]model.FlightWatch, error) {
	watches, err := w.watchRepo.GetByWaID(waID)
	if err != nil {
		w.logger.Error("Failed to list flight watches",
			zap.Error(err),
			zap.String("waID", waID))
		return nil, ErrDatabase
	}

	return watches, nil
}

func (w *watch) Status(ctx context.Context, flightIATA string, flightDate string) (flightinfo.Snapshot, bool, error) {
	records, err := w.flights.FlightStatus(ctx, flightIATA, flightDate)
	if err != nil {
		w.logger.Warn("Flight status lookup failed",
			zap.Error(err),
			zap.String("flight", flightIATA))
		return flightinfo.Snapshot{}, false, NewServiceError(ErrCodeProviderError, err)
	}

	if len(records) == 0 {
		return flightinfo.Snapshot{}, false, nil
	}

	return flightinfo.NewSnapshot(records[0]), true, nil
}

// CheckAll sweeps every watch, compares the fresh snapshot hash with the
// stored one and enqueues alerts on change. Provider errors skip the
// entry rather than aborting the sweep.
func (w *watch) CheckAll(ctx context.Context) error {
	watches, err := w.watchRepo.GetAll()
	if err != nil {
		w.logger.Error("Failed to load flight watches for sweep", zap.Error(err))
		return ErrDatabase
	}

	if len(watches) == 0 {
		return nil
	}

	w.logger.Debug("Sweeping flight watches", zap.Int("count", len(watches)))

	for _, entry := range watches {
		if err := w.checkOne(ctx, entry); err != nil {
			w.logger.Warn("Watch check failed",
				zap.Error(err),
				zap.Int64("watchID", entry.ID),
				zap.String("flight", entry.FlightIATA))
		}
	}

	return nil
}

func (w *watch) checkOne(ctx context.Context, entry model.FlightWatch) error {
	flightDate := ""
	if entry.FlightDate != nil {
		flightDate = *entry.FlightDate
	}

	records, err := w.flights.FlightStatus(ctx, entry.FlightIATA, flightDate)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	snapshot := flightinfo.NewSnapshot(records[0])
	hash := snapshot.Hash()

	if entry.LastHash != nil && *entry.LastHash == hash {
		return nil
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	snapshotJSON := string(raw)
	entry.LastSnapshot = &snapshotJSON
	entry.LastHash = &hash
	entry.UpdatedAt = time.Now()

	if err := w.watchRepo.UpdateSnapshot(ctx, &entry); err != nil {
		return err
	}

	body := fmt.Sprintf("🔔 Flight update\n%s", snapshot.Format())

	recipients := append([]string{entry.WaID}, w.notifyCC...)
	for _, to := range recipients {
		cmd := EnqueueNotificationCommand{
			ToWaID: to,
			Body:   body,
			Kind:   model.NotificationKindWatchAlert,
		}

		if err := w.notify.Enqueue(ctx, cmd); err != nil {
			w.logger.Error("Failed to enqueue watch alert",
				zap.Error(err),
				zap.String("to", to),
				zap.String("flight", entry.FlightIATA))
		}
	}

	w.logger.Info("Flight change detected",
		zap.String("flight", entry.FlightIATA),
		zap.String("status", snapshot.Status),
		zap.Int("recipients", len(recipients)))

	return nil
}
