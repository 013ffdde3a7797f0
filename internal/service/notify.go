package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/pkg/mq"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/zap"
)

const maxSendRetries = 3

type NotifyService interface {
	Enqueue(ctx context.Context, cmd EnqueueNotificationCommand) error
	EnqueueDailyReminders(ctx context.Context) (int, error)
	EnqueueWeeklyDigests(ctx context.Context) (int, error)
	FindNotificationsToQueue(ctx context.Context, limit int) ([]SendNotificationCommand, error)
	MarkNotificationAsQueued(ctx context.Context, notificationID int64) error
	SendNotification(ctx context.Context, cmd SendNotificationCommand) error
}

type notify struct {
	notificationRepo repository.NotificationRepository
	flightRepo       repository.FlightRepository
	sender           twilio.Client
	cfg              twilio.Config
	logger           *zap.Logger
}

func NewNotifyService(notificationRepo repository.NotificationRepository, flightRepo repository.FlightRepository,
	sender twilio.Client, cfg *config.Config, logger *zap.Logger) NotifyService {
	return &notify{
		notificationRepo: notificationRepo,
		flightRepo:       flightRepo,
		sender:           sender,
		cfg:              cfg.Twilio,
		logger:           logger,
	}
}

func (n *notify) Enqueue(ctx context.Context, cmd EnqueueNotificationCommand) error {
	notification := model.Notification{
		ToWaID:    cmd.ToWaID,
		Body:      cmd.Body,
		MediaURL:  cmd.MediaURL,
		Kind:      cmd.Kind,
		Status:    model.NotificationStatusCreated,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.notificationRepo.Create(ctx, &notification); err != nil {
		n.logger.Error("Failed to enqueue notification",
			zap.Error(err),
			zap.String("to", cmd.ToWaID),
			zap.String("kind", cmd.Kind))
		return ErrDatabase
	}

	return nil
}

func (n *notify) EnqueueDailyReminders(ctx context.Context) (int, error) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	flights, err := n.flightRepo.GetDepartingBetween(tomorrow, tomorrow)
	if err != nil {
		n.logger.Error("Failed to load flights for daily reminders", zap.Error(err))
		return 0, ErrDatabase
	}

	byWaID := groupFlights(flights)
	enqueued := 0

	for waID, userFlights := range byWaID {
		body := "⏰ Reminder: you fly tomorrow!\n" + FormatFlightSummary(userFlights)

		cmd := EnqueueNotificationCommand{ToWaID: waID, Body: body, Kind: model.NotificationKindDailyDigest}
		if err := n.Enqueue(ctx, cmd); err != nil {
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		n.logger.Info("Daily reminders enqueued", zap.Int("count", enqueued))
	}

	return enqueued, nil
}

func (n *notify) EnqueueWeeklyDigests(ctx context.Context) (int, error) {
	now := time.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, 7).Format("2006-01-02")

	flights, err := n.flightRepo.GetDepartingBetween(from, to)
	if err != nil {
		n.logger.Error("Failed to load flights for weekly digest", zap.Error(err))
		return 0, ErrDatabase
	}

	byWaID := groupFlights(flights)
	enqueued := 0

	for waID, userFlights := range byWaID {
		body := fmt.Sprintf("🗓 Your week ahead (%d flights):\n%s", len(userFlights), FormatFlightSummary(userFlights))

		cmd := EnqueueNotificationCommand{ToWaID: waID, Body: body, Kind: model.NotificationKindWeeklyDigest}
		if err := n.Enqueue(ctx, cmd); err != nil {
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		n.logger.Info("Weekly digests enqueued", zap.Int("count", enqueued))
	}

	return enqueued, nil
}

func (n *notify) FindNotificationsToQueue(ctx context.Context, limit int) ([]SendNotificationCommand, error) {
	n.logger.Debug("Finding notifications to publish", zap.Int("batchSize", limit))

	rows, err := n.notificationRepo.FindUnpublishedCreated(limit)
	if err != nil {
		n.logger.Error("Failed to find unpublished notifications", zap.Error(err))
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	commands := make([]SendNotificationCommand, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, SendNotificationCommand{
			NotificationID: row.ID,
			ToWaID:         row.ToWaID,
			Body:           row.Body,
			MediaURL:       row.MediaURL,
		})
	}

	return commands, nil
}

func (n *notify) MarkNotificationAsQueued(ctx context.Context, notificationID int64) error {
	publishedAt := time.Now()
	notification := model.Notification{
		ID:          notificationID,
		Published:   true,
		PublishedAt: &publishedAt,
		UpdatedAt:   time.Now(),
	}

	if err := n.notificationRepo.Update(ctx, &notification); err != nil {
		n.logger.Error("Failed to mark notification as published",
			zap.Error(err),
			zap.Int64("notificationID", notificationID))
		return err
	}

	return nil
}

func (n *notify) SendNotification(ctx context.Context, cmd SendNotificationCommand) error {
	row, err := n.getNotificationForProcessing(cmd.NotificationID)
	if err != nil {
		n.logger.Debug("Notification not processable",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.Error(err))

		if errors.Is(err, ErrDatabase) {
			return mq.Temporary(err)
		}

		return nil
	}

	attemptCount := row.AttemptCount
	if row.Status != model.NotificationStatusSending {
		attemptCount += 1
	}

	if attemptCount > maxSendRetries {
		n.logger.Warn("Notification exceeded max retries",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.Int("attempts", attemptCount))

		failCmd := UpdateNotificationFailureCommand{NotificationID: cmd.NotificationID, LastError: "exceeded max retries"}
		if err := n.updateToPermanentFailure(ctx, failCmd); err != nil {
			return mq.Temporary(err)
		}

		return nil
	}

	claimCmd := UpdateNotificationToSendingCommand{NotificationID: cmd.NotificationID, AttemptCount: attemptCount}
	if err := n.updateToSending(ctx, claimCmd); err != nil {
		if errors.Is(err, ErrNotificationBeingProcessed) {
			return nil
		}

		return mq.Temporary(err)
	}

	n.logger.Debug("Attempting to send WhatsApp notification",
		zap.Int64("notificationID", cmd.NotificationID),
		zap.Int("attempt", attemptCount),
		zap.String("to", cmd.ToWaID))

	response, lastErr := n.sendWithRetry(ctx, cmd)
	if lastErr == nil {
		n.logger.Info("Notification sent",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.String("providerSID", response.SID),
			zap.Int("attempt", attemptCount))

		successCmd := UpdateNotificationSuccessCommand{NotificationID: cmd.NotificationID, ProviderSID: response.SID}
		return n.updateSucceeded(ctx, successCmd)
	}

	if errors.Is(lastErr, twilio.ErrInvalidRecipient) {
		n.logger.Warn("Permanent failure, recipient rejected",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.String("to", cmd.ToWaID))

		failCmd := UpdateNotificationFailureCommand{NotificationID: cmd.NotificationID, LastError: lastErr.Error()}
		if err := n.updateToPermanentFailure(ctx, failCmd); err != nil {
			return mq.Temporary(err)
		}

		return nil
	}

	n.logger.Debug("Temporary failure, will retry",
		zap.Int64("notificationID", cmd.NotificationID),
		zap.Int("attempt", attemptCount),
		zap.Error(lastErr))

	failCmd := UpdateNotificationFailureCommand{NotificationID: cmd.NotificationID, LastError: lastErr.Error()}
	if err := n.updateToTemporaryFailure(ctx, failCmd); err != nil {
		return mq.Temporary(err)
	}

	return mq.Temporary(lastErr)
}

func (n *notify) sendWithRetry(ctx context.Context, cmd SendNotificationCommand) (twilio.SendResponse, error) {
	var mediaURLs []string
	if cmd.MediaURL != nil {
		mediaURLs = []string{*cmd.MediaURL}
	}

	maxRetry := n.cfg.MaxRetry
	if maxRetry <= 0 {
		maxRetry = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetry; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
		response, err := n.sender.SendWhatsApp(sendCtx, cmd.ToWaID, cmd.Body, mediaURLs)
		cancel()

		if err == nil {
			return response, nil
		}

		lastErr = err
		n.logger.Warn("WhatsApp send attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("to", cmd.ToWaID))

		if errors.Is(err, twilio.ErrInvalidRecipient) || errors.Is(err, twilio.ErrUnauthorized) {
			return twilio.SendResponse{}, err
		}

		if attempt < maxRetry {
			delay := time.Duration(attempt) * 100 * time.Millisecond

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return twilio.SendResponse{}, ctx.Err()
			}
		}
	}

	return twilio.SendResponse{}, lastErr
}

func (n *notify) getNotificationForProcessing(notificationID int64) (*model.Notification, error) {
	row, err := n.notificationRepo.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}

		return nil, ErrDatabase
	}

	switch row.Status {
	case model.NotificationStatusCreated:
		return row, nil

	case model.NotificationStatusSending:
		if row.LastAttemptAt != nil && time.Since(*row.LastAttemptAt) < 5*time.Minute {
			n.logger.Warn("Notification being processed by another consumer",
				zap.Int64("notificationID", notificationID),
				zap.Time("lastAttempt", *row.LastAttemptAt))
			return nil, ErrNotificationBeingProcessed
		}

		return row, nil

	case model.NotificationStatusSent, model.NotificationStatusFailedPerm:
		n.logger.Info("Notification already processed",
			zap.Int64("notificationID", notificationID),
			zap.String("status", string(row.Status)))
		return nil, ErrNotificationAlreadyProcessed

	case model.NotificationStatusFailedTemp:
		n.logger.Info("Notification previously failed, retrying",
			zap.Int64("notificationID", notificationID))
		return row, nil

	default:
		n.logger.Error("Unknown notification status",
			zap.String("status", string(row.Status)),
			zap.Int64("notificationID", notificationID))
		return nil, ErrUnknownNotificationStatus
	}
}

func (n *notify) updateToSending(ctx context.Context, cmd UpdateNotificationToSendingCommand) error {
	staleThreshold := time.Now().Add(-5 * time.Minute)

	attempt := time.Now()
	notification := model.Notification{
		ID:            cmd.NotificationID,
		Status:        model.NotificationStatusSending,
		AttemptCount:  cmd.AttemptCount,
		LastAttemptAt: &attempt,
		UpdatedAt:     time.Now(),
	}

	err := n.notificationRepo.UpdateForSending(ctx, &notification, staleThreshold)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		n.logger.Info("Notification not claimed, possibly processed by another consumer",
			zap.Int64("notificationID", cmd.NotificationID))
		return ErrNotificationBeingProcessed
	}

	n.logger.Error("Failed to claim notification for sending",
		zap.Error(err),
		zap.Int64("notificationID", cmd.NotificationID))

	return ErrDatabase
}

func (n *notify) updateSucceeded(ctx context.Context, cmd UpdateNotificationSuccessCommand) error {
	notification := model.Notification{
		ID:          cmd.NotificationID,
		Status:      model.NotificationStatusSent,
		ProviderSID: &cmd.ProviderSID,
		UpdatedAt:   time.Now(),
	}

	if err := n.notificationRepo.Update(ctx, &notification); err != nil {
		n.logger.Error("Failed to update notification after send",
			zap.Error(err),
			zap.Int64("notificationID", cmd.NotificationID))
	}

	return nil
}

func (n *notify) updateToPermanentFailure(ctx context.Context, cmd UpdateNotificationFailureCommand) error {
	notification := model.Notification{
		ID:        cmd.NotificationID,
		Status:    model.NotificationStatusFailedPerm,
		LastError: &cmd.LastError,
		UpdatedAt: time.Now(),
	}

	if err := n.notificationRepo.Update(ctx, &notification); err != nil {
		n.logger.Error("Failed to update notification after permanent failure",
			zap.Error(err),
			zap.Int64("notificationID", cmd.NotificationID))
		return err
	}

	return nil
}

func (n *notify) updateToTemporaryFailure(ctx context.Context, cmd UpdateNotificationFailureCommand) error {
	notification := model.Notification{
		ID:        cmd.NotificationID,
		Status:    model.NotificationStatusFailedTemp,
		LastError: &cmd.LastError,
		UpdatedAt: time.Now(),
	}

	if err := n.notificationRepo.Update(ctx, &notification); err != nil {
		n.logger.Error("Failed to update notification after temporary failure",
			zap.Error(err),
			zap.Int64("notificationID", cmd.NotificationID))
		return err
	}

	return nil
}

func groupFlights(flights []model.Flight) map[string][]model.Flight {
	byWaID := make(map[string][]model.Flight)
	for _, fl := range flights {
		waID := strings.TrimSpace(fl.WaID)
		if waID == "" {
			continue
		}
		byWaID[waID] = append(byWaID[waID], fl)
	}
	return byWaID
}
