package application

import (
	"context"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

// closureThreshold is the number of crowd reports after which a restaurant
// is flagged closed. The counter never decrements; the flag never clears.
const closureThreshold = 3

// restaurantQueryService is the concrete implementation of RestaurantQueryService.
type restaurantQueryService struct {
	repo RestaurantRepository
}

// NewRestaurantQueryService creates a new restaurant query service.
func NewRestaurantQueryService(repo RestaurantRepository) RestaurantQueryService {
	return &restaurantQueryService{repo: repo}
}

func (s *restaurantQueryService) List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error) {
	return s.repo.Find(ctx, filter)
}

func (s *restaurantQueryService) Detail(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

type restaurantCommandService struct {
	repo RestaurantRepository
}

// NewRestaurantCommandService creates the submission/closure command service.
func NewRestaurantCommandService(repo RestaurantRepository) RestaurantCommandService {
	return &restaurantCommandService{repo: repo}
}

// Submit creates a directory entry with every derived field zeroed. The
// aggregation routine alone mutates those fields afterwards.
func (s *restaurantCommandService) Submit(ctx context.Context, cmd SubmitRestaurantCommand) (*domain.Restaurant, error) {
	now := time.Now().UTC()
	restaurant := &domain.Restaurant{
		Name:           cmd.Name,
		Address:        cmd.Address,
		City:           cmd.City,
		State:          cmd.State,
		ZipCode:        cmd.ZipCode,
		Phone:          cmd.Phone,
		Website:        cmd.Website,
		Description:    cmd.Description,
		AverageRating:  0,
		TotalReviews:   0,
		IsClosed:       false,
		ClosureReports: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return restaurant, s.repo.Create(ctx, restaurant)
}

// ReportClosure increments the crowd counter and derives the closed flag.
// The read-then-write is unguarded; simultaneous reports may count as one.
func (s *restaurantCommandService) ReportClosure(ctx context.Context, restaurantID string) (ClosureStatus, error) {
	restaurant, err := s.repo.FindByID(ctx, restaurantID)
	if err != nil {
		return ClosureStatus{}, err
	}

	status := ClosureStatus{
		ClosureReports: restaurant.ClosureReports + 1,
	}
	status.IsClosed = status.ClosureReports >= closureThreshold

	if err := s.repo.UpdateClosure(ctx, restaurantID, status.ClosureReports, status.IsClosed); err != nil {
		return ClosureStatus{}, err
	}
	return status, nil
}
