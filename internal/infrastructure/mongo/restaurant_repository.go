package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/application"
	"github.com/phofinder/phofinder-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RestaurantRepository implements application.RestaurantRepository using MongoDB.
type RestaurantRepository struct {
	collection *mongo.Collection
}

// NewRestaurantRepository creates a new Mongo-backed restaurant repository.
func NewRestaurantRepository(db *mongo.Database, collectionName string) *RestaurantRepository {
	return &RestaurantRepository{collection: db.Collection(collectionName)}
}

// Find returns restaurants matching the directory filter. Ordering follows
// the browse pages: city then name within a state, name within a city,
// newest first otherwise.
func (r *RestaurantRepository) Find(ctx context.Context, filter application.RestaurantFilter) ([]domain.Restaurant, error) {
	mongoFilter := bson.M{}
	if filter.State != "" {
		mongoFilter["state"] = strings.TrimSpace(filter.State)
	}
	if filter.City != "" {
		mongoFilter["city"] = strings.TrimSpace(filter.City)
	}
	if filter.Keyword != "" {
		mongoFilter["name"] = primitive.Regex{Pattern: filter.Keyword, Options: "i"}
	}

	opts := options.Find().SetSort(sortForFilter(filter))
	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]domain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapRestaurantDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// FindByID returns a single restaurant by its identifier.
func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}
	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}
	restaurant := mapRestaurantDocument(doc)
	return &restaurant, nil
}

// Create はディレクトリ登録を Mongo に追加し、採番結果をドメインモデルへ反映する。
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	now := time.Now().UTC()
	createdAt := restaurant.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := restaurant.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := RestaurantDocument{
		ID:             primitive.NewObjectID(),
		Name:           restaurant.Name,
		Address:        restaurant.Address,
		City:           restaurant.City,
		State:          restaurant.State,
		ZipCode:        restaurant.ZipCode,
		Phone:          restaurant.Phone,
		Website:        restaurant.Website,
		Description:    restaurant.Description,
		AverageRating:  0,
		TotalReviews:   0,
		IsClosed:       false,
		ClosureReports: 0,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}

	restaurant.ID = doc.ID.Hex()
	restaurant.CreatedAt = doc.CreatedAt
	restaurant.UpdatedAt = doc.UpdatedAt
	return nil
}

// UpdateAggregates writes the derived rating fields. Only set pointers are
// written so that "never rated" stays distinct from "rated zero"; updatedAt
// is always refreshed. No lock guards concurrent recomputations — the last
// writer wins.
func (r *RestaurantRepository) UpdateAggregates(ctx context.Context, id string, update application.AggregateUpdate) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.AverageRating != nil {
		set["averageRating"] = *update.AverageRating
	}
	if update.TotalReviews != nil {
		set["totalReviews"] = *update.TotalReviews
	}
	if update.AverageDetailedRatings != nil {
		set["averageDetailedRatings"] = DetailedRatingsDocument{
			Overall:    update.AverageDetailedRatings.Overall,
			Broth:      update.AverageDetailedRatings.Broth,
			Noodles:    update.AverageDetailedRatings.Noodles,
			Meat:       update.AverageDetailedRatings.Meat,
			Vegetables: update.AverageDetailedRatings.Vegetables,
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// UpdateClosure persists the crowd counter and the derived closed flag.
func (r *RestaurantRepository) UpdateClosure(ctx context.Context, id string, reports int, closed bool) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"closureReports": reports,
		"isClosed":       closed,
		"updatedAt":      time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// sortForFilter はブラウズ画面の並び順を Mongo のソート指定へ落とし込む。
func sortForFilter(filter application.RestaurantFilter) bson.D {
	switch {
	case filter.City != "":
		return bson.D{{Key: "name", Value: 1}}
	case filter.State != "":
		return bson.D{{Key: "city", Value: 1}, {Key: "name", Value: 1}}
	case filter.Sort == "rating":
		return bson.D{{Key: "averageRating", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func mapRestaurantDocument(doc RestaurantDocument) domain.Restaurant {
	restaurant := domain.Restaurant{
		ID:             doc.ID.Hex(),
		Name:           doc.Name,
		Address:        doc.Address,
		City:           doc.City,
		State:          doc.State,
		ZipCode:        doc.ZipCode,
		Phone:          doc.Phone,
		Website:        doc.Website,
		Description:    doc.Description,
		AverageRating:  doc.AverageRating,
		TotalReviews:   doc.TotalReviews,
		IsClosed:       doc.IsClosed,
		ClosureReports: doc.ClosureReports,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	if doc.AverageDetailedRatings != nil {
		restaurant.AverageDetailedRatings = &domain.DetailedRatings{
			Overall:    doc.AverageDetailedRatings.Overall,
			Broth:      doc.AverageDetailedRatings.Broth,
			Noodles:    doc.AverageDetailedRatings.Noodles,
			Meat:       doc.AverageDetailedRatings.Meat,
			Vegetables: doc.AverageDetailedRatings.Vegetables,
		}
	}
	return restaurant
}
