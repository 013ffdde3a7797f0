package model

import "time"

type FlightWatch struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	WaID         string    `gorm:"column:waid;uniqueIndex:idx_watch_waid_flight"`
	FlightIATA   string    `gorm:"column:flight_iata;uniqueIndex:idx_watch_waid_flight"`
	FlightDate   *string   `gorm:"column:flight_date"`
	Provider     string    `gorm:"column:provider;default:aviationstack"`
	LastSnapshot *string   `gorm:"column:last_snapshot;type:text"`
	LastHash     *string   `gorm:"column:last_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}
