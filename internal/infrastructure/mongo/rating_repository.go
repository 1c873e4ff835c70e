package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RatingRepository implements application.RatingRepository using MongoDB.
// 1ユーザー1店舗1行の制約はドキュメントの (restaurantId, userId) 検索で担保する。
type RatingRepository struct {
	collection *mongo.Collection
}

// NewRatingRepository creates a new Mongo-backed rating repository.
func NewRatingRepository(db *mongo.Database, collectionName string) *RatingRepository {
	return &RatingRepository{collection: db.Collection(collectionName)}
}

// FindByRestaurant は店舗に紐づく全スカラー評価を返す（集計用の全件走査）。
func (r *RatingRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Rating, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(restaurantID))
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	cursor, err := r.collection.Find(ctx, bson.M{"restaurantId": objectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ratings := make([]domain.Rating, 0)
	for cursor.Next(ctx) {
		var doc RatingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ratings = append(ratings, mapRatingDocument(doc))
	}
	return ratings, cursor.Err()
}

// FindByRestaurantAndUser returns the caller's rating for the restaurant,
// or domain.ErrRatingNotFound.
func (r *RatingRepository) FindByRestaurantAndUser(ctx context.Context, restaurantID, userID string) (*domain.Rating, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(restaurantID))
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	var doc RatingDocument
	err = r.collection.FindOne(ctx, bson.M{"restaurantId": objectID, "userId": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRatingNotFound
	}
	if err != nil {
		return nil, err
	}

	rating := mapRatingDocument(doc)
	return &rating, nil
}

// Create inserts a new rating row for a pair that had none.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	restaurantID, err := primitive.ObjectIDFromHex(strings.TrimSpace(rating.RestaurantID))
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	now := time.Now().UTC()
	createdAt := rating.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := rating.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := RatingDocument{
		ID:           primitive.NewObjectID(),
		RestaurantID: restaurantID,
		UserID:       rating.UserID,
		Rating:       rating.Rating,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}

	rating.ID = doc.ID.Hex()
	rating.CreatedAt = doc.CreatedAt
	rating.UpdatedAt = doc.UpdatedAt
	return nil
}

// UpdateValue overwrites the scalar of an existing row in place.
func (r *RatingRepository) UpdateValue(ctx context.Context, id string, value float64) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrRatingNotFound
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"rating":    value,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}

func mapRatingDocument(doc RatingDocument) domain.Rating {
	return domain.Rating{
		ID:           doc.ID.Hex(),
		RestaurantID: doc.RestaurantID.Hex(),
		UserID:       doc.UserID,
		Rating:       doc.Rating,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
