package repository

import (
	"context"
	"errors"

	"github.com/tripline/travel-services/wagateway/internal/model"
	"gorm.io/gorm"
)

type MediaRepository interface {
	Create(ctx context.Context, file *model.MediaFile) error
	GetByID(id string) (*model.MediaFile, error)
	GetLatestByWaID(waID string) (*model.MediaFile, error)
}

type Media struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &Media{db: db}
}

func (m *Media) Create(ctx context.Context, file *model.MediaFile) error {
	db := GetTx(ctx, m.db)
	return db.Create(file).Error
}

func (m *Media) GetByID(id string) (*model.MediaFile, error) {
	var file model.MediaFile

	err := m.db.Where("id = ?", id).First(&file).Error
	if err == nil {
		return &file, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	return nil, err
}

func (m *Media) GetLatestByWaID(waID string) (*model.MediaFile, error) {
	var file model.MediaFile

	err := m.db.Where("waid = ?", waID).
		Order("uploaded_at DESC").
		First(&file).Error
	if err == nil {
		return &file, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	return nil, err
}
