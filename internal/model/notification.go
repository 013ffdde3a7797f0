package model

import "time"

type NotificationStatus string

const (
	NotificationStatusCreated    NotificationStatus = "CREATED"
	NotificationStatusSending    NotificationStatus = "SENDING"
	NotificationStatusSent       NotificationStatus = "SENT"
	NotificationStatusFailedTemp NotificationStatus = "FAILED_TEMP"
	NotificationStatusFailedPerm NotificationStatus = "FAILED_PERM"
)

// Notification is an outbox row for an out-of-band WhatsApp message
// (flight-watch alert, daily reminder, weekly digest).
type Notification struct {
	ID            int64              `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	ToWaID        string             `gorm:"column:to_waid"`
	Body          string             `gorm:"column:body;type:text"`
	MediaURL      *string            `gorm:"column:media_url"`
	Kind          string             `gorm:"column:kind"`
	Status        NotificationStatus `gorm:"column:status"`
	AttemptCount  int                `gorm:"column:attempt_count"`
	LastAttemptAt *time.Time         `gorm:"column:last_attempt_at"`
	ProviderSID   *string            `gorm:"column:provider_sid"`
	LastError     *string            `gorm:"column:last_error;type:text"`
	Published     bool               `gorm:"column:published;default:false"`
	PublishedAt   *time.Time         `gorm:"column:published_at"`
	CreatedAt     time.Time          `gorm:"column:created_at"`
	UpdatedAt     time.Time          `gorm:"column:updated_at"`
}

const (
	NotificationKindWatchAlert   = "watch_alert"
	NotificationKindDailyDigest  = "daily_digest"
	NotificationKindWeeklyDigest = "weekly_digest"
)
