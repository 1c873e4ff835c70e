package application

import (
	"context"

	"github.com/phofinder/phofinder-services/api/internal/admin/domain"
)

// RestaurantFilter narrows the admin listing.
type RestaurantFilter struct {
	Keyword    string
	State      string
	ClosedOnly bool
	Limit      int
}

// ReviewFilter narrows the admin review listing.
type ReviewFilter struct {
	RestaurantID string
	Keyword      string
	Limit        int
}

// UpdateRestaurantCommand carries a moderator correction. Every field is
// applied as given; validation happens via the domain value objects.
type UpdateRestaurantCommand struct {
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	Phone       string
	Website     string
	Description string
}

// RestaurantRepository is the persistence port for admin listing access.
type RestaurantRepository interface {
	Find(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	UpdateDetails(ctx context.Context, restaurant *domain.Restaurant) error
}

// ReviewRepository is the persistence port for admin review access.
type ReviewRepository interface {
	Find(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)
}

// MetricsRepository produces dashboard count snapshots.
type MetricsRepository interface {
	Snapshot(ctx context.Context) (*domain.Metrics, error)
}

// RestaurantService exposes moderation operations over listings.
type RestaurantService interface {
	Search(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	Detail(ctx context.Context, id string) (*domain.Restaurant, error)
	Update(ctx context.Context, id string, cmd UpdateRestaurantCommand) (*domain.Restaurant, error)
}

// ReviewService exposes the review overview for moderation.
type ReviewService interface {
	Search(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)
}

// MetricsService exposes the dashboard snapshot.
type MetricsService interface {
	Snapshot(ctx context.Context) (*domain.Metrics, error)
}
