package mongo

import (
	"context"

	adminapp "github.com/phofinder/phofinder-services/api/internal/admin/application"
	admindomain "github.com/phofinder/phofinder-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminReviewRepository は管理画面向けのレビュー一覧リポジトリ。
// 店舗名は別クエリで引いてメモリ上で結合する。
type AdminReviewRepository struct {
	reviews     *mongo.Collection
	restaurants *mongo.Collection
}

// NewAdminReviewRepository creates a new Mongo-backed admin review repository.
func NewAdminReviewRepository(db *mongo.Database, reviewCollection, restaurantCollection string) *AdminReviewRepository {
	return &AdminReviewRepository{
		reviews:     db.Collection(reviewCollection),
		restaurants: db.Collection(restaurantCollection),
	}
}

func (r *AdminReviewRepository) Find(ctx context.Context, filter adminapp.ReviewFilter) ([]admindomain.Review, error) {
	mongoFilter := bson.M{}
	if filter.RestaurantID != "" {
		objectID, err := primitive.ObjectIDFromHex(filter.RestaurantID)
		if err != nil {
			return []admindomain.Review{}, nil
		}
		mongoFilter["restaurantId"] = objectID
	}
	if filter.Keyword != "" {
		mongoFilter["comment"] = primitive.Regex{Pattern: filter.Keyword, Options: "i"}
	}

	limit := filter.Limit
	if limit <= 0 || limit > defaultAdminListLimit {
		limit = defaultAdminListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.reviews.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]ReviewDocument, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	names, err := r.loadRestaurantNames(ctx, docs)
	if err != nil {
		return nil, err
	}

	reviews := make([]admindomain.Review, 0, len(docs))
	for _, doc := range docs {
		restaurantID := doc.RestaurantID.Hex()
		reviews = append(reviews, admindomain.Review{
			ID:             doc.ID.Hex(),
			RestaurantID:   restaurantID,
			RestaurantName: names[restaurantID],
			UserName:       doc.UserName,
			Rating:         doc.Rating,
			Comment:        doc.Comment,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return reviews, nil
}

func (r *AdminReviewRepository) loadRestaurantNames(ctx context.Context, docs []ReviewDocument) (map[string]string, error) {
	ids := make([]primitive.ObjectID, 0, len(docs))
	seen := make(map[primitive.ObjectID]bool, len(docs))
	for _, doc := range docs {
		if seen[doc.RestaurantID] {
			continue
		}
		seen[doc.RestaurantID] = true
		ids = append(ids, doc.RestaurantID)
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cursor, err := r.restaurants.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		names[doc.ID.Hex()] = doc.Name
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
