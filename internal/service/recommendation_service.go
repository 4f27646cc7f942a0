package service

import (
	"spm_tracker_backend/internal/model"
	"spm_tracker_backend/internal/repository"
)

// RecommendationService 每周智能刷题推荐的只读查询
type RecommendationService struct {
	RecommendationRepo *repository.RecommendationRepository
}

func NewRecommendationService(recRepo *repository.RecommendationRepository) *RecommendationService {
	return &RecommendationService{RecommendationRepo: recRepo}
}

func (s *RecommendationService) ListRecommendations(userID string) ([]model.RecommendationSet, error) {
	sets, err := s.RecommendationRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []model.RecommendationSet{}
	}
	return sets, nil
}
