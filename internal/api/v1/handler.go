package v1

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/constants"
	"github.com/tripline/travel-services/wagateway/internal/service"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/zap"
)

type Handler struct {
	logger   *zap.Logger
	webhook  service.WebhookService
	trips    service.TripService
	watches  service.WatchService
	notify   service.NotifyService
	media    service.MediaService
	calendar service.CalendarService
	cfg      *config.Config
	started  time.Time
}

func NewHandler(logger *zap.Logger, webhook service.WebhookService, trips service.TripService,
	watches service.WatchService, notify service.NotifyService, media service.MediaService,
	calendar service.CalendarService, cfg *config.Config) *Handler {
	return &Handler{
		logger:   logger,
		webhook:  webhook,
		trips:    trips,
		watches:  watches,
		notify:   notify,
		media:    media,
		calendar: calendar,
		cfg:      cfg,
		started:  time.Now(),
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

func (h *Handler) Status(c *fiber.Ctx) error {
	report, err := h.trips.Report(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to build status report", zap.Error(err))
		return service.NewServiceError(service.ErrCodeDatabase, err)
	}

	report.Uptime = time.Since(h.started).Round(time.Second).String()
	return c.JSON(report)
}

func (h *Handler) Webhook(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request TwilioWebhookRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse webhook body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	if request.WaID == "" && request.From == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeMissingSender,
			"message": constants.GetErrorMessage(constants.ErrCodeMissingSender),
		})
	}

	cmd := service.InboundMessageCommand{
		From:      request.From,
		WaID:      request.WaID,
		Body:      request.Body,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Media:     h.collectMedia(c, request.NumMedia),
	}

	reply, err := h.webhook.HandleMessage(ctx, cmd)
	if err != nil {
		h.logger.Error("Webhook workflow failed",
			zap.Error(err),
			zap.String("messageSid", request.MessageSid),
			zap.String("waID", request.WaID))
		return err
	}

	return h.renderTwiML(c, reply)
}

func (h *Handler) Calendar(c *fiber.Ctx) error {
	waID := strings.TrimSuffix(c.Params("waid"), ".ics")
	if waID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	ics, err := h.calendar.BuildICS(c.UserContext(), waID)
	if err != nil {
		return service.NewServiceError(service.ErrCodeDatabase, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	return c.SendString(ics)
}

func (h *Handler) File(c *fiber.Ctx) error {
	file, err := h.media.FileByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == service.ErrNoMediaFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"code":    constants.ErrCodeNotFound,
				"message": constants.GetErrorMessage(constants.ErrCodeNotFound),
			})
		}
		return service.NewServiceError(service.ErrCodeDatabase, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.SendFile(file.Path)
}

func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeMissingFile,
			"message": constants.GetErrorMessage(constants.ErrCodeMissingFile),
		})
	}

	waID := twilio.NormalizeWaID(c.FormValue("waid"))
	if waID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeMissingSender,
			"message": constants.GetErrorMessage(constants.ErrCodeMissingSender),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	cmd := service.UploadFileCommand{
		WaID:        waID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Title:       c.FormValue("title"),
		Tags:        c.FormValue("tags"),
		Data:        data,
	}

	saved, err := h.media.SaveUpload(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Upload failed",
			zap.Error(err),
			zap.String("waID", waID))
		return err
	}

	return c.JSON(UploadResponse{
		OK:      true,
		FileID:  saved.FileID,
		Indexed: saved.Indexed,
		URL:     service.PublicFileURL(h.cfg.API.BasePublicURL, saved.FileID),
	})
}

func (h *Handler) CronDaily(c *fiber.Ctx) error {
	enqueued, err := h.notify.EnqueueDailyReminders(c.UserContext())
	if err != nil {
		return service.NewServiceError(service.ErrCodeDatabase, err)
	}

	return c.JSON(CronResponse{Status: "ok", Enqueued: enqueued})
}

func (h *Handler) CronWeekly(c *fiber.Ctx) error {
	enqueued, err := h.notify.EnqueueWeeklyDigests(c.UserContext())
	if err != nil {
		return service.NewServiceError(service.ErrCodeDatabase, err)
	}

	return c.JSON(CronResponse{Status: "ok", Enqueued: enqueued})
}

func (h *Handler) CronFlightWatch(c *fiber.Ctx) error {
	if err := h.watches.CheckAll(c.UserContext()); err != nil {
		return service.NewServiceError(service.ErrCodeDatabase, err)
	}

	return c.JSON(CronResponse{Status: "ok"})
}

func (h *Handler) collectMedia(c *fiber.Ctx, numMedia int) []service.InboundMedia {
	if numMedia <= 0 {
		return nil
	}

	media := make([]service.InboundMedia, 0, numMedia)
	for i := 0; i < numMedia; i++ {
		url := c.FormValue(fmt.Sprintf("MediaUrl%d", i))
		if url == "" {
			continue
		}

		media = append(media, service.InboundMedia{
			URL:         url,
			ContentType: c.FormValue(fmt.Sprintf("MediaContentType%d", i)),
		})
	}

	return media
}

func (h *Handler) renderTwiML(c *fiber.Ctx, reply service.Reply) error {
	var response twilio.MessagingResponse

	for _, message := range reply.Messages {
		chunks := twilio.ChunkText(message.Body)
		for i, chunk := range chunks {
			if i == 0 && len(message.MediaURLs) > 0 {
				response.MessageWithMedia(chunk, message.MediaURLs...)
				continue
			}
			response.Message(chunk)
		}
	}

	xml, err := response.Render()
	if err != nil {
		h.logger.Error("Failed to render TwiML", zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, "application/xml")
	return c.SendString(xml)
}
