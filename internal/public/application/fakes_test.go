package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

// In-memory fakes implementing the repository ports, matching the
// create/get/query/update contract of the Mongo implementations.

type fakeRestaurantRepo struct {
	restaurants map[string]*domain.Restaurant
	seq         int
	failNames   map[string]error
	updates     []AggregateUpdate
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{
		restaurants: make(map[string]*domain.Restaurant),
		failNames:   make(map[string]error),
	}
}

func (f *fakeRestaurantRepo) Find(_ context.Context, filter RestaurantFilter) ([]domain.Restaurant, error) {
	result := make([]domain.Restaurant, 0, len(f.restaurants))
	for _, restaurant := range f.restaurants {
		if filter.State != "" && restaurant.State != filter.State {
			continue
		}
		if filter.City != "" && restaurant.City != filter.City {
			continue
		}
		result = append(result, *restaurant)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].City != result[j].City {
			return result[i].City < result[j].City
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (f *fakeRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	copied := *restaurant
	return &copied, nil
}

func (f *fakeRestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) error {
	if err, ok := f.failNames[restaurant.Name]; ok {
		return err
	}
	f.seq++
	restaurant.ID = fmt.Sprintf("rest-%d", f.seq)
	copied := *restaurant
	f.restaurants[restaurant.ID] = &copied
	return nil
}

func (f *fakeRestaurantRepo) UpdateAggregates(_ context.Context, id string, update AggregateUpdate) error {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return domain.ErrRestaurantNotFound
	}
	f.updates = append(f.updates, update)
	if update.AverageRating != nil {
		restaurant.AverageRating = *update.AverageRating
	}
	if update.TotalReviews != nil {
		restaurant.TotalReviews = *update.TotalReviews
	}
	if update.AverageDetailedRatings != nil {
		copied := *update.AverageDetailedRatings
		restaurant.AverageDetailedRatings = &copied
	}
	restaurant.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeRestaurantRepo) UpdateClosure(_ context.Context, id string, reports int, closed bool) error {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return domain.ErrRestaurantNotFound
	}
	restaurant.ClosureReports = reports
	restaurant.IsClosed = closed
	restaurant.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeRestaurantRepo) add(restaurant domain.Restaurant) string {
	f.seq++
	if restaurant.ID == "" {
		restaurant.ID = fmt.Sprintf("rest-%d", f.seq)
	}
	f.restaurants[restaurant.ID] = &restaurant
	return restaurant.ID
}

type fakeReviewRepo struct {
	reviews []domain.Review
	seq     int
	findErr error
}

func (f *fakeReviewRepo) FindByRestaurant(_ context.Context, restaurantID string) ([]domain.Review, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	result := make([]domain.Review, 0)
	for _, review := range f.reviews {
		if review.RestaurantID == restaurantID {
			result = append(result, review)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	f.seq++
	review.ID = fmt.Sprintf("review-%d", f.seq)
	f.reviews = append(f.reviews, *review)
	return nil
}

type fakeRatingRepo struct {
	ratings []domain.Rating
	seq     int
}

func (f *fakeRatingRepo) FindByRestaurant(_ context.Context, restaurantID string) ([]domain.Rating, error) {
	result := make([]domain.Rating, 0)
	for _, rating := range f.ratings {
		if rating.RestaurantID == restaurantID {
			result = append(result, rating)
		}
	}
	return result, nil
}

func (f *fakeRatingRepo) FindByRestaurantAndUser(_ context.Context, restaurantID, userID string) (*domain.Rating, error) {
	for _, rating := range f.ratings {
		if rating.RestaurantID == restaurantID && rating.UserID == userID {
			copied := rating
			return &copied, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) error {
	f.seq++
	rating.ID = fmt.Sprintf("rating-%d", f.seq)
	f.ratings = append(f.ratings, *rating)
	return nil
}

func (f *fakeRatingRepo) UpdateValue(_ context.Context, id string, value float64) error {
	for i := range f.ratings {
		if f.ratings[i].ID == id {
			f.ratings[i].Rating = value
			f.ratings[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrRatingNotFound
}

var errStoreDown = errors.New("store unavailable")
