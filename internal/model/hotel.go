package model

import "time"

type Hotel struct {
	ID           string    `gorm:"primaryKey;type:varchar(36);column:id;<-:create"`
	WaID         string    `gorm:"column:waid;index:idx_hotel_waid"`
	HotelName    string    `gorm:"column:hotel_name"`
	City         string    `gorm:"column:city"`
	CheckinDate  string    `gorm:"column:checkin_date"`
	CheckoutDate string    `gorm:"column:checkout_date"`
	Address      string    `gorm:"column:address"`
	SourceFileID *string   `gorm:"column:source_file_id"`
	RawExcerpt   string    `gorm:"column:raw_excerpt;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}
