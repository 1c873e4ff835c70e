package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository implements application.ReviewRepository using MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a new Mongo-backed review repository.
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collectionName)}
}

// FindByRestaurant は店舗に紐づく全レビューを新しい順で返す。ページングなしの
// 全件走査（集計ルーチンが総和を取る前提のため）。
func (r *ReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(restaurantID))
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"restaurantId": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	return reviews, cursor.Err()
}

// Create はレビュー投稿を Mongo に追加し、採番結果をドメインモデルへ反映する。
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	restaurantID, err := primitive.ObjectIDFromHex(strings.TrimSpace(review.RestaurantID))
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	now := time.Now().UTC()
	createdAt := review.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := review.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := ReviewDocument{
		ID:              primitive.NewObjectID(),
		RestaurantID:    restaurantID,
		UserID:          review.UserID,
		UserName:        review.UserName,
		Rating:          review.Rating,
		DetailedRatings: mapDetailedRatingsToDocument(review.DetailedRatings),
		Comment:         review.Comment,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = doc.CreatedAt
	review.UpdatedAt = doc.UpdatedAt
	return nil
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	review := domain.Review{
		ID:           doc.ID.Hex(),
		RestaurantID: doc.RestaurantID.Hex(),
		UserID:       doc.UserID,
		UserName:     doc.UserName,
		Rating:       doc.Rating,
		Comment:      doc.Comment,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if doc.DetailedRatings != nil {
		review.DetailedRatings = &domain.DetailedRatings{
			Overall:    doc.DetailedRatings.Overall,
			Broth:      doc.DetailedRatings.Broth,
			Noodles:    doc.DetailedRatings.Noodles,
			Meat:       doc.DetailedRatings.Meat,
			Vegetables: doc.DetailedRatings.Vegetables,
		}
	}
	return review
}

func mapDetailedRatingsToDocument(in *domain.DetailedRatings) *DetailedRatingsDocument {
	if in == nil {
		return nil
	}
	return &DetailedRatingsDocument{
		Overall:    in.Overall,
		Broth:      in.Broth,
		Noodles:    in.Noodles,
		Meat:       in.Meat,
		Vegetables: in.Vegetables,
	}
}
