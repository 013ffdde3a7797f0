package main

import (
	"context"
	"time"

	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/publishers"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/flightinfo"
	"github.com/tripline/travel-services/wagateway/pkg/httpclient"
	"github.com/tripline/travel-services/wagateway/pkg/mq"
	"github.com/tripline/travel-services/wagateway/pkg/mysql"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultWatchInterval = 15 * time.Minute

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewWatchRepository,
			repository.NewNotificationRepository,
			repository.NewFlightRepository,
			NewTwilioClient,
			NewFlightInfoClient,

			service.NewNotifyService,
			service.NewWatchService,

			publishers.NewNotifyPublisher,
		),
		fx.Invoke(runFlightWatch),
	).Run()
}

// runFlightWatch drives two loops: the sweep that polls flight status
// for every watch, and the outbox publisher that pushes enqueued
// notifications onto the queue.
func runFlightWatch(cfg *config.Config, watches service.WatchService, publisher publishers.NotifyPublisher,
	logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{"wa.notify"}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", "wa.notify"))

			interval := cfg.Watch.Interval
			if interval <= 0 {
				interval = defaultWatchInterval
			}

			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := watches.CheckAll(appCtx); err != nil {
							logger.Error("flight watch sweep failed", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("watch sweep context cancelled")
						return
					}
				}
			}()

			go func() {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish notifications", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("flight watch worker started", zap.Duration("interval", interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping flight watch worker")
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

func NewFlightInfoClient(cfg *config.Config) flightinfo.Client {
	client := httpclient.NewHTTPClient(cfg.FlightInfo.Timeout)
	return flightinfo.NewClient(cfg.FlightInfo, client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
