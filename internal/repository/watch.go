package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/tripline/travel-services/wagateway/internal/model"
	"gorm.io/gorm"
)

type WatchRepository interface {
	Create(ctx context.Context, watch *model.FlightWatch) error
	GetByWaID(waID string) ([]model.FlightWatch, error)
	GetAll() ([]model.FlightWatch, error)
	UpdateSnapshot(ctx context.Context, watch *model.FlightWatch) error
	DeleteByWaIDAndIATA(ctx context.Context, waID string, flightIATA string) (int64, error)
	DeleteByWaID(ctx context.Context, waID string) (int64, error)
}

type Watch struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &Watch{db: db}
}

func (w *Watch) Create(ctx context.Context, watch *model.FlightWatch) error {
	db := GetTx(ctx, w.db)

	err := db.Create(watch).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicate
	}

	return err
}

func (w *Watch) GetByWaID(waID string) ([]model.FlightWatch, error) {
	var watches []model.FlightWatch

	err := w.db.Where("waid = ?", waID).
		Order("created_at ASC").
		Find(&watches).Error
	if err != nil {
		return nil, err
	}

	return watches, nil
}

func (w *Watch) GetAll() ([]model.FlightWatch, error) {
	var watches []model.FlightWatch

	err := w.db.Order("id ASC").Find(&watches).Error
	if err != nil {
		return nil, err
	}

	return watches, nil
}

func (w *Watch) UpdateSnapshot(ctx context.Context, watch *model.FlightWatch) error {
	db := GetTx(ctx, w.db)

	result := db.Model(watch).Where("id = ?", watch.ID).
		Updates(map[string]interface{}{
			"last_snapshot": watch.LastSnapshot,
			"last_hash":     watch.LastHash,
			"updated_at":    watch.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (w *Watch) DeleteByWaIDAndIATA(ctx context.Context, waID string, flightIATA string) (int64, error) {
	db := GetTx(ctx, w.db)

	result := db.Where("waid = ? AND flight_iata = ?", waID, flightIATA).
		Delete(&model.FlightWatch{})

	return result.RowsAffected, result.Error
}

func (w *Watch) DeleteByWaID(ctx context.Context, waID string) (int64, error) {
	db := GetTx(ctx, w.db)

	result := db.Where("waid = ?", waID).Delete(&model.FlightWatch{})

	return result.RowsAffected, result.Error
}
