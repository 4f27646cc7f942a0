package repository

import (
	"spm_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

func (r *RecommendationRepository) ListByUser(userID string) ([]model.RecommendationSet, error) {
	var sets []model.RecommendationSet
	err := r.DB.
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&sets).Error
	return sets, err
}

func (r *RecommendationRepository) CountActive(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.RecommendationSet{}).
		Where("user_id = ? AND status = ?", userID, model.RecommendationActive).
		Count(&count).Error
	return count, err
}
