package application

import (
	"context"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

type reviewService struct {
	repo       ReviewRepository
	aggregator *Aggregator
}

// NewReviewService creates the review use-case service. Every submission
// triggers the aggregation routine for the target restaurant.
func NewReviewService(repo ReviewRepository, aggregator *Aggregator) ReviewService {
	return &reviewService{repo: repo, aggregator: aggregator}
}

func (s *reviewService) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	return s.repo.FindByRestaurant(ctx, restaurantID)
}

func (s *reviewService) Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error) {
	now := time.Now().UTC()
	review := &domain.Review{
		RestaurantID:    cmd.RestaurantID,
		UserID:          cmd.UserID,
		UserName:        cmd.UserName,
		Rating:          cmd.Rating,
		DetailedRatings: copyDetailedRatings(cmd.DetailedRatings),
		Comment:         cmd.Comment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.aggregator.Recalculate(ctx, cmd.RestaurantID); err != nil {
		return nil, err
	}
	return review, nil
}

func copyDetailedRatings(in *domain.DetailedRatings) *domain.DetailedRatings {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
