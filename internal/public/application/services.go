package application

import (
	"context"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

// RestaurantRepository abstracts access to the restaurants collection.
// RestaurantRepository は Public コンテキストで店舗ドキュメントを扱うポート。
type RestaurantRepository interface {
	Find(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	UpdateAggregates(ctx context.Context, id string, update AggregateUpdate) error
	UpdateClosure(ctx context.Context, id string, reports int, closed bool) error
}

// ReviewRepository handles review reads/writes for one restaurant.
type ReviewRepository interface {
	FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
}

// RatingRepository enforces the one-row-per-(restaurant,user) contract.
type RatingRepository interface {
	FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Rating, error)
	FindByRestaurantAndUser(ctx context.Context, restaurantID, userID string) (*domain.Rating, error)
	Create(ctx context.Context, rating *domain.Rating) error
	UpdateValue(ctx context.Context, id string, value float64) error
}

// RestaurantFilter expresses directory search criteria. Ordering follows the
// browse pages: city then name within a state, name within a city, newest
// first otherwise.
type RestaurantFilter struct {
	State   string
	City    string
	Keyword string
	Sort    string
}

// AggregateUpdate carries the derived rating fields written back onto a
// restaurant. Nil pointers mean the field is left untouched: with zero
// ratings the average is never written, with zero reviews the detailed
// breakdown is never written. UpdatedAt is always refreshed.
type AggregateUpdate struct {
	AverageRating          *float64
	TotalReviews           *int
	AverageDetailedRatings *domain.DetailedRatings
}

// IsEmpty reports whether the update carries no derived field at all.
func (u AggregateUpdate) IsEmpty() bool {
	return u.AverageRating == nil && u.TotalReviews == nil && u.AverageDetailedRatings == nil
}

// RestaurantQueryService describes directory read use-cases.
// RestaurantQueryService は店舗に関する参照ユースケースを提供するリーダーモデル。
type RestaurantQueryService interface {
	List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	Detail(ctx context.Context, id string) (*domain.Restaurant, error)
}

// RestaurantCommandService handles submission and closure reporting.
type RestaurantCommandService interface {
	Submit(ctx context.Context, cmd SubmitRestaurantCommand) (*domain.Restaurant, error)
	ReportClosure(ctx context.Context, restaurantID string) (ClosureStatus, error)
}

// ReviewService covers review listing and submission.
type ReviewService interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error)
	Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error)
}

// RatingService upserts per-user scalar ratings.
type RatingService interface {
	Upsert(ctx context.Context, cmd UpsertRatingCommand) error
	FindOwn(ctx context.Context, restaurantID, userID string) (*domain.Rating, error)
}

// DirectoryService computes the state/city/area-code groupings the browse
// pages are built from.
type DirectoryService interface {
	States(ctx context.Context) ([]domain.StateCities, error)
	StateBreakdown(ctx context.Context, state string) (*domain.StateBreakdown, error)
}

// ImportService runs the CSV bulk import.
type ImportService interface {
	Run(ctx context.Context, csvText string) (*ImportResult, error)
}

// SubmitRestaurantCommand captures a directory submission. Aggregate fields
// are never part of the command; they are derived only.
type SubmitRestaurantCommand struct {
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	Phone       string
	Website     string
	Description string
}

// SubmitReviewCommand captures an authenticated review submission.
type SubmitReviewCommand struct {
	RestaurantID    string
	UserID          string
	UserName        string
	Rating          float64
	DetailedRatings *domain.DetailedRatings
	Comment         string
}

// UpsertRatingCommand captures a per-user scalar rating. The routine accepts
// any numeric value; bounds are a form-level concern of the caller.
type UpsertRatingCommand struct {
	RestaurantID string
	UserID       string
	Rating       float64
}

// ClosureStatus reports the counter state after a closure report.
type ClosureStatus struct {
	ClosureReports int
	IsClosed       bool
}

// ImportResult reports the outcome of a bulk import: rows inserted plus the
// per-row failures that did not abort the batch.
type ImportResult struct {
	SuccessCount int
	Errors       []string
}
