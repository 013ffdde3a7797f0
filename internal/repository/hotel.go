package repository

import (
	"context"

	"github.com/tripline/travel-services/wagateway/internal/model"
	"gorm.io/gorm"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	GetByWaID(waID string, limit int) ([]model.Hotel, error)
	Count() (int64, error)
}

type Hotel struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &Hotel{db: db}
}

func (h *Hotel) Create(ctx context.Context, hotel *model.Hotel) error {
	db := GetTx(ctx, h.db)
	return db.Create(hotel).Error
}

func (h *Hotel) GetByWaID(waID string, limit int) ([]model.Hotel, error) {
	var hotels []model.Hotel

	err := h.db.Where("waid = ?", waID).
		Order("checkin_date ASC").
		Limit(limit).
		Find(&hotels).Error
	if err != nil {
		return nil, err
	}

	return hotels, nil
}

func (h *Hotel) Count() (int64, error) {
	var count int64

	err := h.db.Model(&model.Hotel{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
