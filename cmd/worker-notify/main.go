package main

import (
	"context"

	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/consumers"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/httpclient"
	"github.com/tripline/travel-services/wagateway/pkg/mq"
	"github.com/tripline/travel-services/wagateway/pkg/mysql"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMQConnection,
			NewMQConsumer,

			repository.NewNotificationRepository,
			repository.NewFlightRepository,
			NewTwilioClient,
			service.NewNotifyService,

			consumers.NewNotifyConsumer,
		),
		fx.Invoke(runNotifyConsumer),
	).Run()
}

func runNotifyConsumer(cfg *config.Config, notifyConsumer consumers.NotifyConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{"wa.notify"}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", "wa.notify"))

			go func() {
				if err := notifyConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("notify consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping notify consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewTwilioClient(cfg *config.Config) twilio.Client {
	client := httpclient.NewHTTPClient(cfg.Twilio.Timeout)
	return twilio.NewClient(cfg.Twilio, client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
