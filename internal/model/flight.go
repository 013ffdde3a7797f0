package model

import "time"

type Flight struct {
	ID           string    `gorm:"primaryKey;type:varchar(36);column:id;<-:create"`
	WaID         string    `gorm:"column:waid;index:idx_flight_waid"`
	Origin       string    `gorm:"column:origin"`
	Dest         string    `gorm:"column:dest"`
	DepartDate   string    `gorm:"column:depart_date"`
	DepartTime   string    `gorm:"column:depart_time"`
	ArrivalDate  string    `gorm:"column:arrival_date"`
	ArrivalTime  string    `gorm:"column:arrival_time"`
	Airline      string    `gorm:"column:airline"`
	FlightNumber string    `gorm:"column:flight_number"`
	PNR          string    `gorm:"column:pnr"`
	SourceFileID *string   `gorm:"column:source_file_id"`
	RawExcerpt   string    `gorm:"column:raw_excerpt;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}
