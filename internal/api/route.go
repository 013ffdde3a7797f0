package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tripline/travel-services/wagateway/internal/api/middleware"
	v1 "github.com/tripline/travel-services/wagateway/internal/api/v1"
	"github.com/tripline/travel-services/wagateway/internal/config"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger) {
	app.Get("/", handler.Health)
	app.Get("/health", handler.Health)
	app.Get("/status", handler.Status)

	app.Post("/twilio/webhook", middleware.TwilioSignature(cfg.Twilio, cfg.API.BasePublicURL, logger), handler.Webhook)

	app.Post("/upload", handler.Upload)
	app.Get("/calendar/:waid", handler.Calendar)
	app.Get("/files/:id", handler.File)

	cron := app.Group("/cron", middleware.CronSecret(cfg.Cron.Secret))
	cron.Post("/daily", handler.CronDaily)
	cron.Post("/weekly", handler.CronWeekly)
	cron.Post("/flightwatch", handler.CronFlightWatch)
}
