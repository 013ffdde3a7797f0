package model

import "time"

type MediaFile struct {
	ID          string    `gorm:"primaryKey;type:varchar(36);column:id;<-:create"`
	WaID        string    `gorm:"column:waid;index:idx_media_waid"`
	Filename    string    `gorm:"column:filename"`
	ContentType string    `gorm:"column:content_type"`
	Path        string    `gorm:"column:path"`
	Title       string    `gorm:"column:title"`
	Tags        string    `gorm:"column:tags"`
	UploadedAt  time.Time `gorm:"column:uploaded_at"`
}
