package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tripline/travel-services/wagateway/internal/config"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"github.com/tripline/travel-services/wagateway/internal/repository"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/zap"
)

type SavedMedia struct {
	FileID  string
	Indexed int
}

type UploadFileCommand struct {
	WaID        string
	Filename    string
	ContentType string
	Title       string
	Tags        string
	Data        []byte
}

type MediaService interface {
	SaveIncoming(ctx context.Context, waID string, media InboundMedia, caption string) (SavedMedia, error)
	SaveUpload(ctx context.Context, cmd UploadFileCommand) (SavedMedia, error)
	LatestFile(ctx context.Context, waID string) (*model.MediaFile, error)
	FileByID(ctx context.Context, fileID string) (*model.MediaFile, error)
}

type media struct {
	mediaRepo repository.MediaRepository
	trips     TripService
	assistant assistant.Assistant
	twilio    twilio.Client
	dataRoot  string
	logger    *zap.Logger
}

func NewMediaService(mediaRepo repository.MediaRepository, trips TripService, assistant assistant.Assistant,
	twilioClient twilio.Client, cfg *config.Config, logger *zap.Logger) MediaService {
	return &media{
		mediaRepo: mediaRepo,
		trips:     trips,
		assistant: assistant,
		twilio:    twilioClient,
		dataRoot:  cfg.Storage.DataRoot,
		logger:    logger,
	}
}

// SaveIncoming downloads an inbound attachment, stores it on disk and in
// the media table, then tries to index any booking it describes.
func (m *media) SaveIncoming(ctx context.Context, waID string, inbound InboundMedia, caption string) (SavedMedia, error) {
	data, contentType, err := m.twilio.DownloadMedia(ctx, inbound.URL)
	if err != nil {
		m.logger.Error("Failed to download media",
			zap.Error(err),
			zap.String("waID", waID))
		return SavedMedia{}, NewServiceError(ErrCodeProviderError, err)
	}

	if contentType == "" {
		contentType = inbound.ContentType
	}

	fileID := uuid.NewString()
	filename := fileID + extensionFor(contentType)

	dir := filepath.Join(m.dataRoot, waID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("Failed to create media directory", zap.Error(err), zap.String("dir", dir))
		return SavedMedia{}, err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.logger.Error("Failed to write media file", zap.Error(err), zap.String("path", path))
		return SavedMedia{}, err
	}

	file := model.MediaFile{
		ID:          fileID,
		WaID:        waID,
		Filename:    filename,
		ContentType: contentType,
		Path:        path,
		Title:       truncate(strings.TrimSpace(caption), 255),
		UploadedAt:  time.Now(),
	}

	if err := m.mediaRepo.Create(ctx, &file); err != nil {
		m.logger.Error("Failed to persist media record",
			zap.Error(err),
			zap.String("waID", waID))
		return SavedMedia{}, ErrDatabase
	}

	m.logger.Info("Media stored",
		zap.String("waID", waID),
		zap.String("fileID", fileID),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(data)))

	indexed := m.tryIndexBooking(ctx, waID, fileID, inbound.URL, contentType, caption, data)

	return SavedMedia{FileID: fileID, Indexed: indexed}, nil
}

// SaveUpload stores a file pushed through the HTTP upload endpoint.
// Unlike attachments there is no Twilio media URL, so booking indexing
// only runs on readable text: the file body for text uploads, the title
// hint otherwise.
func (m *media) SaveUpload(ctx context.Context, cmd UploadFileCommand) (SavedMedia, error) {
	contentType := cmd.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileID := uuid.NewString()
	filename := fileID + extensionFor(contentType)

	dir := filepath.Join(m.dataRoot, cmd.WaID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("Failed to create media directory", zap.Error(err), zap.String("dir", dir))
		return SavedMedia{}, err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, cmd.Data, 0o644); err != nil {
		m.logger.Error("Failed to write media file", zap.Error(err), zap.String("path", path))
		return SavedMedia{}, err
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = strings.TrimSpace(cmd.Filename)
	}

	file := model.MediaFile{
		ID:          fileID,
		WaID:        cmd.WaID,
		Filename:    filename,
		ContentType: contentType,
		Path:        path,
		Title:       truncate(title, 255),
		Tags:        truncate(strings.TrimSpace(cmd.Tags), 255),
		UploadedAt:  time.Now(),
	}

	if err := m.mediaRepo.Create(ctx, &file); err != nil {
		m.logger.Error("Failed to persist media record",
			zap.Error(err),
			zap.String("waID", cmd.WaID))
		return SavedMedia{}, ErrDatabase
	}

	m.logger.Info("Upload stored",
		zap.String("waID", cmd.WaID),
		zap.String("fileID", fileID),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(cmd.Data)))

	indexed := 0
	switch {
	case strings.HasPrefix(contentType, "text/"):
		indexed = m.indexFromText(ctx, cmd.WaID, fileID, string(cmd.Data))
	case title != "":
		indexed = m.indexFromText(ctx, cmd.WaID, fileID, title)
	}

	return SavedMedia{FileID: fileID, Indexed: indexed}, nil
}

func (m *media) LatestFile(ctx context.Context, waID string) (*model.MediaFile, error) {
	file, err := m.mediaRepo.GetLatestByWaID(waID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoMediaFound
		}

		m.logger.Error("Failed to load latest media",
			zap.Error(err),
			zap.String("waID", waID))
		return nil, ErrDatabase
	}

	return file, nil
}

func (m *media) FileByID(ctx context.Context, fileID string) (*model.MediaFile, error) {
	file, err := m.mediaRepo.GetByID(fileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoMediaFound
		}

		return nil, ErrDatabase
	}

	return file, nil
}

func (m *media) tryIndexBooking(ctx context.Context, waID, fileID, mediaURL, contentType, caption string, data []byte) int {
	var extract assistant.BookingExtract
	var err error

	switch {
	case strings.HasPrefix(contentType, "image/"):
		extract, err = m.assistant.ExtractBookingFromImage(ctx, mediaURL, caption)
	case strings.HasPrefix(contentType, "text/"):
		extract, err = m.assistant.ExtractBooking(ctx, string(data))
	default:
		if caption == "" {
			return 0
		}
		extract, err = m.assistant.ExtractBooking(ctx, caption)
	}

	if err != nil {
		if !errors.Is(err, assistant.ErrDisabled) {
			m.logger.Warn("Booking extraction failed",
				zap.Error(err),
				zap.String("fileID", fileID))
		}
		return 0
	}

	excerpt := caption
	if strings.HasPrefix(contentType, "text/") {
		excerpt = string(data)
	}

	indexed, err := m.trips.IndexBooking(ctx, waID, extract, &fileID, excerpt)
	if err != nil {
		m.logger.Warn("Failed to index extracted booking",
			zap.Error(err),
			zap.String("fileID", fileID))
		return 0
	}

	return indexed
}

func (m *media) indexFromText(ctx context.Context, waID, fileID, text string) int {
	extract, err := m.assistant.ExtractBooking(ctx, text)
	if err != nil {
		if !errors.Is(err, assistant.ErrDisabled) {
			m.logger.Warn("Booking extraction failed",
				zap.Error(err),
				zap.String("fileID", fileID))
		}
		return 0
	}

	indexed, err := m.trips.IndexBooking(ctx, waID, extract, &fileID, text)
	if err != nil {
		m.logger.Warn("Failed to index extracted booking",
			zap.Error(err),
			zap.String("fileID", fileID))
		return 0
	}

	return indexed
}

func extensionFor(contentType string) string {
	base := contentType
	if idx := strings.Index(base, ";"); idx >= 0 {
		base = base[:idx]
	}

	switch strings.TrimSpace(strings.ToLower(base)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	case "text/plain":
		return ".txt"
	case "text/calendar":
		return ".ics"
	default:
		return ".bin"
	}
}

// PublicFileURL builds the link users receive when asking for a stored
// ticket. Files are served by the API under /files/:id.
func PublicFileURL(basePublicURL string, fileID string) string {
	return fmt.Sprintf("%s/files/%s", strings.TrimRight(basePublicURL, "/"), fileID)
}
