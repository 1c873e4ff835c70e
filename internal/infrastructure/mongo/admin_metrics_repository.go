package mongo

import (
	"context"

	admindomain "github.com/phofinder/phofinder-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminMetricsRepository はダッシュボード用の件数スナップショットを返す。
type AdminMetricsRepository struct {
	restaurants *mongo.Collection
	reviews     *mongo.Collection
	ratings     *mongo.Collection
}

// NewAdminMetricsRepository creates a new Mongo-backed metrics repository.
func NewAdminMetricsRepository(db *mongo.Database, restaurantCollection, reviewCollection, ratingCollection string) *AdminMetricsRepository {
	return &AdminMetricsRepository{
		restaurants: db.Collection(restaurantCollection),
		reviews:     db.Collection(reviewCollection),
		ratings:     db.Collection(ratingCollection),
	}
}

func (r *AdminMetricsRepository) Snapshot(ctx context.Context) (*admindomain.Metrics, error) {
	restaurants, err := r.restaurants.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	closed, err := r.restaurants.CountDocuments(ctx, bson.M{"isClosed": true})
	if err != nil {
		return nil, err
	}
	reviews, err := r.reviews.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	ratings, err := r.ratings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	return &admindomain.Metrics{
		Restaurants:       restaurants,
		ClosedRestaurants: closed,
		Reviews:           reviews,
		Ratings:           ratings,
	}, nil
}
