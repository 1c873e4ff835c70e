package application

import (
	"context"
	"strings"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/admin/domain"
)

type restaurantService struct {
	repo RestaurantRepository
}

// NewRestaurantService creates an admin restaurant service.
func NewRestaurantService(repo RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) Search(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error) {
	return s.repo.Find(ctx, filter)
}

func (s *restaurantService) Detail(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

// Update rewrites the descriptive fields of a listing. Aggregate and
// closure fields are carried over from the stored document untouched.
func (s *restaurantService) Update(ctx context.Context, id string, cmd UpdateRestaurantCommand) (*domain.Restaurant, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, &ValidationError{Message: "name is required"}
	}
	address := strings.TrimSpace(cmd.Address)
	if address == "" {
		return nil, &ValidationError{Message: "address is required"}
	}
	city, err := domain.NewCityName(cmd.City)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	state, err := domain.NewStateName(cmd.State)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	zip, err := domain.NewZipCode(cmd.ZipCode)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	phone, err := domain.NewPhone(cmd.Phone)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	website, err := domain.NewURL(cmd.Website)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	description, err := domain.NewDescription(cmd.Description)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	current.Name = name
	current.Address = address
	current.City = city
	current.State = state
	current.ZipCode = zip
	current.Phone = phone
	current.Website = website
	current.Description = description
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateDetails(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
