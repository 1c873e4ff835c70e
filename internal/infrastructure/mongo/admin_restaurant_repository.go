package mongo

import (
	"context"
	"errors"

	adminapp "github.com/phofinder/phofinder-services/api/internal/admin/application"
	admindomain "github.com/phofinder/phofinder-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultAdminListLimit = 100

// AdminRestaurantRepository は管理画面向けの店舗リポジトリ。公開側と同じ
// コレクションを読み書きするが、集計・閉店フィールドには触れない。
type AdminRestaurantRepository struct {
	collection *mongo.Collection
}

// NewAdminRestaurantRepository creates a new Mongo-backed admin restaurant repository.
func NewAdminRestaurantRepository(db *mongo.Database, collectionName string) *AdminRestaurantRepository {
	return &AdminRestaurantRepository{collection: db.Collection(collectionName)}
}

func (r *AdminRestaurantRepository) Find(ctx context.Context, filter adminapp.RestaurantFilter) ([]admindomain.Restaurant, error) {
	mongoFilter := bson.M{}
	if filter.Keyword != "" {
		mongoFilter["name"] = primitive.Regex{Pattern: filter.Keyword, Options: "i"}
	}
	if filter.State != "" {
		mongoFilter["state"] = filter.State
	}
	if filter.ClosedOnly {
		mongoFilter["isClosed"] = true
	}

	limit := filter.Limit
	if limit <= 0 || limit > defaultAdminListLimit {
		limit = defaultAdminListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]admindomain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapAdminRestaurantDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *AdminRestaurantRepository) FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, adminapp.ErrRestaurantNotFound
	}

	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminapp.ErrRestaurantNotFound
		}
		return nil, err
	}
	restaurant := mapAdminRestaurantDocument(doc)
	return &restaurant, nil
}

// UpdateDetails は店舗の基本情報のみを書き換える。averageRating /
// totalReviews / isClosed / closureReports は $set に含めない。
func (r *AdminRestaurantRepository) UpdateDetails(ctx context.Context, restaurant *admindomain.Restaurant) error {
	objectID, err := primitive.ObjectIDFromHex(restaurant.ID)
	if err != nil {
		return adminapp.ErrRestaurantNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        restaurant.Name,
		"address":     restaurant.Address,
		"city":        restaurant.City.String(),
		"state":       restaurant.State.String(),
		"zipCode":     restaurant.ZipCode.String(),
		"phone":       restaurant.Phone.String(),
		"website":     restaurant.Website.String(),
		"description": restaurant.Description.String(),
		"updatedAt":   restaurant.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return adminapp.ErrRestaurantNotFound
	}
	return nil
}

func mapAdminRestaurantDocument(doc RestaurantDocument) admindomain.Restaurant {
	return admindomain.Restaurant{
		ID:             doc.ID.Hex(),
		Name:           doc.Name,
		Address:        doc.Address,
		City:           admindomain.CityName(doc.City),
		State:          admindomain.StateName(doc.State),
		ZipCode:        admindomain.ZipCode(doc.ZipCode),
		Phone:          admindomain.Phone(doc.Phone),
		Website:        admindomain.URL(doc.Website),
		Description:    admindomain.Description(doc.Description),
		AverageRating:  doc.AverageRating,
		TotalReviews:   doc.TotalReviews,
		IsClosed:       doc.IsClosed,
		ClosureReports: doc.ClosureReports,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
