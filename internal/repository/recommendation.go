package repository

import (
	"context"

	"github.com/tripline/travel-services/wagateway/internal/model"
	"gorm.io/gorm"
)

type RecommendationRepository interface {
	Create(ctx context.Context, rec *model.Recommendation) error
}

type Recommendation struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &Recommendation{db: db}
}

func (r *Recommendation) Create(ctx context.Context, rec *model.Recommendation) error {
	db := GetTx(ctx, r.db)
	return db.Create(rec).Error
}
