package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tripline/travel-services/wagateway/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	Update(ctx context.Context, notification *model.Notification) error
	UpdateForSending(ctx context.Context, notification *model.Notification, staleThreshold time.Time) error
	GetByID(id int64) (*model.Notification, error)
	FindUnpublishedCreated(limit int) ([]model.Notification, error)
}

type Notification struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &Notification{db: db}
}

func (n *Notification) Create(ctx context.Context, notification *model.Notification) error {
	db := GetTx(ctx, n.db)
	return db.Create(notification).Error
}

func (n *Notification) Update(ctx context.Context, notification *model.Notification) error {
	db := GetTx(ctx, n.db)
	return db.Model(notification).Where("id = ?", notification.ID).Updates(notification).Error
}

// UpdateForSending claims the row for this consumer: only rows still in
// a sendable state, or stuck in SENDING past the stale threshold, move.
func (n *Notification) UpdateForSending(ctx context.Context, notification *model.Notification, staleThreshold time.Time) error {
	db := GetTx(ctx, n.db)

	result := db.Model(notification).
		Where("id = ? AND (status IN (?, ?) OR (status = ? AND last_attempt_at < ?))",
			notification.ID,
			model.NotificationStatusCreated,
			model.NotificationStatusFailedTemp,
			model.NotificationStatusSending,
			staleThreshold).
		Updates(notification)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (n *Notification) GetByID(id int64) (*model.Notification, error) {
	var notification model.Notification

	err := n.db.Where("id = ?", id).First(&notification).Error
	if err == nil {
		return &notification, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	return nil, err
}

func (n *Notification) FindUnpublishedCreated(limit int) ([]model.Notification, error) {
	var notifications []model.Notification

	err := n.db.Where("published = ? AND status = ?", false, model.NotificationStatusCreated).
		Order("id ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}
