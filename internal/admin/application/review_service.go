package application

import (
	"context"

	"github.com/phofinder/phofinder-services/api/internal/admin/domain"
)

type reviewService struct {
	repo ReviewRepository
}

// NewReviewService creates an admin review service.
func NewReviewService(repo ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) Search(ctx context.Context, filter ReviewFilter) ([]domain.Review, error) {
	return s.repo.Find(ctx, filter)
}

type metricsService struct {
	repo MetricsRepository
}

// NewMetricsService creates the dashboard metrics service.
func NewMetricsService(repo MetricsRepository) MetricsService {
	return &metricsService{repo: repo}
}

func (s *metricsService) Snapshot(ctx context.Context) (*domain.Metrics, error) {
	return s.repo.Snapshot(ctx)
}
