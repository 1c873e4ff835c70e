package application

import (
	"context"
	"errors"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

type ratingService struct {
	repo       RatingRepository
	aggregator *Aggregator
}

// NewRatingService creates the rating upsert service.
func NewRatingService(repo RatingRepository, aggregator *Aggregator) RatingService {
	return &ratingService{repo: repo, aggregator: aggregator}
}

// Upsert overwrites the caller's existing rating for the restaurant or
// inserts a new one, then recomputes the restaurant aggregates. Exactly one
// rating per (restaurant, user) pair exists afterwards. The value itself is
// taken as-is; range enforcement belongs to the submitting form.
func (s *ratingService) Upsert(ctx context.Context, cmd UpsertRatingCommand) error {
	existing, err := s.repo.FindByRestaurantAndUser(ctx, cmd.RestaurantID, cmd.UserID)
	if err != nil && !errors.Is(err, domain.ErrRatingNotFound) {
		return err
	}

	if existing != nil {
		if err := s.repo.UpdateValue(ctx, existing.ID, cmd.Rating); err != nil {
			return err
		}
	} else {
		now := time.Now().UTC()
		rating := &domain.Rating{
			RestaurantID: cmd.RestaurantID,
			UserID:       cmd.UserID,
			Rating:       cmd.Rating,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Create(ctx, rating); err != nil {
			return err
		}
	}

	return s.aggregator.Recalculate(ctx, cmd.RestaurantID)
}

func (s *ratingService) FindOwn(ctx context.Context, restaurantID, userID string) (*domain.Rating, error) {
	return s.repo.FindByRestaurantAndUser(ctx, restaurantID, userID)
}
