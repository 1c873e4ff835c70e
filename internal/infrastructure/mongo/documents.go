package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DetailedRatingsDocument は restaurant/review ドキュメント内の評価内訳を表す埋め込み構造。
type DetailedRatingsDocument struct {
	Overall    float64 `bson:"overall"`
	Broth      float64 `bson:"broth"`
	Noodles    float64 `bson:"noodles"`
	Meat       float64 `bson:"meat"`
	Vegetables float64 `bson:"vegetables"`
}

// RestaurantDocument は MongoDB 上での店舗スキーマを Go 構造体として表現したもの。
// 集計フィールドは Aggregation ルーチンのみが書き込む。averageDetailedRatings は
// 最初のレビューが入るまで存在しない（ゼロ値あり、とは区別される）。
type RestaurantDocument struct {
	ID                     primitive.ObjectID       `bson:"_id"`
	Name                   string                   `bson:"name"`
	Address                string                   `bson:"address"`
	City                   string                   `bson:"city"`
	State                  string                   `bson:"state"`
	ZipCode                string                   `bson:"zipCode,omitempty"`
	Phone                  string                   `bson:"phone,omitempty"`
	Website                string                   `bson:"website,omitempty"`
	Description            string                   `bson:"description,omitempty"`
	AverageRating          float64                  `bson:"averageRating"`
	TotalReviews           int                      `bson:"totalReviews"`
	AverageDetailedRatings *DetailedRatingsDocument `bson:"averageDetailedRatings,omitempty"`
	IsClosed               bool                     `bson:"isClosed"`
	ClosureReports         int                      `bson:"closureReports"`
	CreatedAt              time.Time                `bson:"createdAt"`
	UpdatedAt              time.Time                `bson:"updatedAt"`
}

// ReviewDocument はレビュー（自由記述＋評価内訳）のスキーマを表現する。
type ReviewDocument struct {
	ID              primitive.ObjectID       `bson:"_id"`
	RestaurantID    primitive.ObjectID       `bson:"restaurantId"`
	UserID          string                   `bson:"userId"`
	UserName        string                   `bson:"userName"`
	Rating          float64                  `bson:"rating"`
	DetailedRatings *DetailedRatingsDocument `bson:"detailedRatings,omitempty"`
	Comment         string                   `bson:"comment"`
	CreatedAt       time.Time                `bson:"createdAt"`
	UpdatedAt       time.Time                `bson:"updatedAt"`
}

// RatingDocument はユーザーごとのスカラー評価。(restaurantId, userId) ペアで一意。
type RatingDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	RestaurantID primitive.ObjectID `bson:"restaurantId"`
	UserID       string             `bson:"userId"`
	Rating       float64            `bson:"rating"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}
