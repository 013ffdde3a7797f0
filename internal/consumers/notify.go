package consumers

import (
	"context"
	"encoding/json"

	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/mq"
	"go.uber.org/zap"
)

const notifyQueue = "wa.notify"

type NotifyConsumer interface {
	Consume(ctx context.Context) error
}

type notifyConsumer struct {
	service  service.NotifyService
	consumer mq.Consumer
	logger   *zap.Logger
}

func NewNotifyConsumer(service service.NotifyService, consumer mq.Consumer, logger *zap.Logger) NotifyConsumer {
	return &notifyConsumer{
		service:  service,
		consumer: consumer,
		logger:   logger,
	}
}

func (c *notifyConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, 1, notifyQueue, c.handleNotification)
}

func (c *notifyConsumer) handleNotification(ctx context.Context, body []byte) error {
	c.logger.Info("received notify command", zap.ByteString("body", body))

	var cmd service.SendNotificationCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("invalid notify command", zap.Error(err))
		return err
	}

	return c.service.SendNotification(ctx, cmd)
}
