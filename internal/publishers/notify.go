package publishers

import (
	"context"
	"encoding/json"

	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/mq"
	"go.uber.org/zap"
)

const notifyQueue = "wa.notify"

type NotifyPublisher interface {
	Publish(ctx context.Context) error
}

type notifyPublisher struct {
	service   service.NotifyService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewNotifyPublisher(service service.NotifyService, publisher mq.Publisher, logger *zap.Logger) NotifyPublisher {
	return &notifyPublisher{service: service, publisher: publisher, logger: logger}
}

func (p *notifyPublisher) Publish(ctx context.Context) error {
	notifications, err := p.service.FindNotificationsToQueue(ctx, 100)
	if err != nil {
		return err
	}

	if len(notifications) == 0 {
		return nil
	}

	p.logger.Info("Publishing notifications", zap.Int("count", len(notifications)))

	successCount := 0
	for _, notification := range notifications {
		body, _ := json.Marshal(notification)
		if err := p.publisher.Publish(ctx, "", notifyQueue, body); err != nil {
			p.logger.Error("Failed to publish notification",
				zap.Error(err),
				zap.Int64("notificationID", notification.NotificationID))
			continue
		}

		if err := p.service.MarkNotificationAsQueued(ctx, notification.NotificationID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published notifications",
			zap.Int("published", successCount),
			zap.Int("total", len(notifications)))
	}

	return nil
}
