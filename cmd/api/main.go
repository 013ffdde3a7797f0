package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tripline/travel-services/wagateway/internal/api"
	"github.com/tripline/travel-services/wagateway/internal/api/middleware"
	v1 "github.com/tripline/travel-services/wagateway/internal/api/v1"
	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/flightinfo"
	"github.com/tripline/travel-services/wagateway/pkg/httpclient"
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
			NewFiberApp,
			NewConnectionDB,

			repository.NewFlightRepository,
			repository.NewHotelRepository,
			repository.NewRecommendationRepository,
			repository.NewMediaRepository,
			repository.NewWatchRepository,
			repository.NewNotificationRepository,
			repository.NewTransactionManager,

			NewTwilioClient,
			NewFlightInfoClient,
			NewAssistant,

			service.NewChatHistoryStore,
			service.NewIntentRouter,
			service.NewTripService,
			service.NewCalendarService,
			service.NewNotifyService,
			service.NewWatchService,
			service.NewMediaService,
			service.NewWebhookService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, cfg, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
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

func NewAssistant(cfg *config.Config) assistant.Assistant {
	client := httpclient.NewHTTPClient(cfg.Assistant.Timeout)
	return assistant.NewClient(cfg.Assistant, client)
}
