package model

import "time"

type Recommendation struct {
	ID        string    `gorm:"primaryKey;type:varchar(36);column:id;<-:create"`
	WaID      string    `gorm:"column:waid;index:idx_rec_waid"`
	Text      string    `gorm:"column:text;type:text"`
	PlaceName string    `gorm:"column:place_name"`
	CityTag   string    `gorm:"column:city_tag"`
	Category  string    `gorm:"column:category"`
	Lat       *float64  `gorm:"column:lat"`
	Lon       *float64  `gorm:"column:lon"`
	URL       string    `gorm:"column:url"`
	CreatedAt time.Time `gorm:"column:created_at"`
}
