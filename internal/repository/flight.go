package repository

import (
	"context"

	"github.com/tripline/travel-services/wagateway/internal/model"
	"gorm.io/gorm"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *model.Flight) error
	GetByWaID(waID string, limit int) ([]model.Flight, error)
	GetUpcoming(waID string, fromDate string, toDate string, limit int) ([]model.Flight, error)
	GetLatest(waID string, limit int) ([]model.Flight, error)
	GetDepartingBetween(fromDate string, toDate string) ([]model.Flight, error)
	Count() (int64, error)
}

type Flight struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) FlightRepository {
	return &Flight{db: db}
}

func (f *Flight) Create(ctx context.Context, flight *model.Flight) error {
	db := GetTx(ctx, f.db)
	return db.Create(flight).Error
}

func (f *Flight) GetByWaID(waID string, limit int) ([]model.Flight, error) {
	var flights []model.Flight

	err := f.db.Where("waid = ?", waID).
		Order("depart_date ASC, depart_time ASC").
		Limit(limit).
		Find(&flights).Error
	if err != nil {
		return nil, err
	}

	return flights, nil
}

func (f *Flight) GetUpcoming(waID string, fromDate string, toDate string, limit int) ([]model.Flight, error) {
	var flights []model.Flight

	err := f.db.Where("waid = ? AND depart_date >= ? AND depart_date <= ?", waID, fromDate, toDate).
		Order("depart_date ASC, depart_time ASC").
		Limit(limit).
		Find(&flights).Error
	if err != nil {
		return nil, err
	}

	return flights, nil
}

func (f *Flight) GetLatest(waID string, limit int) ([]model.Flight, error) {
	var flights []model.Flight

	err := f.db.Where("waid = ?", waID).
		Order("created_at DESC").
		Limit(limit).
		Find(&flights).Error
	if err != nil {
		return nil, err
	}

	return flights, nil
}

func (f *Flight) GetDepartingBetween(fromDate string, toDate string) ([]model.Flight, error) {
	var flights []model.Flight

	err := f.db.Where("depart_date >= ? AND depart_date <= ?", fromDate, toDate).
		Order("waid ASC, depart_date ASC, depart_time ASC").
		Find(&flights).Error
	if err != nil {
		return nil, err
	}

	return flights, nil
}

func (f *Flight) Count() (int64, error) {
	var count int64

	err := f.db.Model(&model.Flight{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
