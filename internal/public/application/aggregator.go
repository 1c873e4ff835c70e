package application

import (
	"context"
	"math"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

// Aggregator recomputes a restaurant's derived rating fields from the full
// set of its ratings and reviews. It runs after every write to either
// collection; the read-then-write is not protected against concurrent runs
// for the same restaurant, so the last writer wins.
// Aggregator はレビュー・評価の書き込み後に店舗の集計値を再計算するルーチン。
type Aggregator struct {
	restaurants RestaurantRepository
	reviews     ReviewRepository
	ratings     RatingRepository
}

// NewAggregator binds the three collections the recomputation reads from
// and writes to.
func NewAggregator(restaurants RestaurantRepository, reviews ReviewRepository, ratings RatingRepository) *Aggregator {
	return &Aggregator{
		restaurants: restaurants,
		reviews:     reviews,
		ratings:     ratings,
	}
}

// Recalculate performs a full scan of the restaurant's ratings and reviews
// and writes the derived fields back. Fields without source rows are left
// untouched rather than zeroed: no ratings means no averageRating write, no
// reviews means no detailed-breakdown write. Errors propagate uncaught.
func (a *Aggregator) Recalculate(ctx context.Context, restaurantID string) error {
	ratings, err := a.ratings.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	reviews, err := a.reviews.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}

	update := buildAggregateUpdate(ratings, reviews)
	return a.restaurants.UpdateAggregates(ctx, restaurantID, update)
}

// buildAggregateUpdate holds the arithmetic contract:
//   - averageRating is the mean of the scalar ratings, rounded to one decimal.
//   - totalReviews prefers the review count; the rating count is only a
//     fallback when no review exists yet.
//   - the detailed averages divide per-category sums by the review count,
//     with missing sub-scores counted as zero. The overall component comes
//     from Review.Rating, independent of the scalar-rating mean above, so
//     the two "overall" numbers can legitimately diverge.
func buildAggregateUpdate(ratings []domain.Rating, reviews []domain.Review) AggregateUpdate {
	update := AggregateUpdate{}

	if len(ratings) > 0 {
		total := 0.0
		for _, rating := range ratings {
			total += rating.Rating
		}
		average := roundTenth(total / float64(len(ratings)))
		update.AverageRating = &average

		count := len(reviews)
		if count == 0 {
			count = len(ratings)
		}
		update.TotalReviews = &count
	}

	if len(reviews) > 0 {
		totals := domain.DetailedRatings{}
		hasDetailed := false
		for _, review := range reviews {
			totals.Overall += review.Rating
			if review.DetailedRatings != nil {
				hasDetailed = true
				totals.Broth += review.DetailedRatings.Broth
				totals.Noodles += review.DetailedRatings.Noodles
				totals.Meat += review.DetailedRatings.Meat
				totals.Vegetables += review.DetailedRatings.Vegetables
			}
		}

		count := float64(len(reviews))
		detailed := domain.DetailedRatings{
			Overall: roundTenth(totals.Overall / count),
		}
		if hasDetailed {
			detailed.Broth = roundTenth(totals.Broth / count)
			detailed.Noodles = roundTenth(totals.Noodles / count)
			detailed.Meat = roundTenth(totals.Meat / count)
			detailed.Vegetables = roundTenth(totals.Vegetables / count)
		}
		update.AverageDetailedRatings = &detailed

		reviewCount := len(reviews)
		update.TotalReviews = &reviewCount
	}

	return update
}

// roundTenth rounds half away from zero to one decimal place.
func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
