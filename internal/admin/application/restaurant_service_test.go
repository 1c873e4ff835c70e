package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phofinder/phofinder-services/api/internal/admin/domain"
)

type fakeRestaurantRepo struct {
	stored  map[string]domain.Restaurant
	updated []domain.Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{stored: make(map[string]domain.Restaurant)}
}

func (f *fakeRestaurantRepo) Find(_ context.Context, _ RestaurantFilter) ([]domain.Restaurant, error) {
	restaurants := make([]domain.Restaurant, 0, len(f.stored))
	for _, restaurant := range f.stored {
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

func (f *fakeRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	restaurant, ok := f.stored[id]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	return &restaurant, nil
}

func (f *fakeRestaurantRepo) UpdateDetails(_ context.Context, restaurant *domain.Restaurant) error {
	if _, ok := f.stored[restaurant.ID]; !ok {
		return ErrRestaurantNotFound
	}
	f.stored[restaurant.ID] = *restaurant
	f.updated = append(f.updated, *restaurant)
	return nil
}

func seededRestaurant() domain.Restaurant {
	return domain.Restaurant{
		ID:             "rest-1",
		Name:           "Pho Saigon",
		Address:        "123 Main St",
		City:           "San Jose",
		State:          "California",
		AverageRating:  4.3,
		TotalReviews:   12,
		IsClosed:       true,
		ClosureReports: 4,
	}
}

func TestUpdateRewritesDetailsOnly(t *testing.T) {
	repo := newFakeRestaurantRepo()
	repo.stored["rest-1"] = seededRestaurant()
	service := NewRestaurantService(repo)

	updated, err := service.Update(context.Background(), "rest-1", UpdateRestaurantCommand{
		Name:    "Pho Saigon Noodle House",
		Address: "125 Main St",
		City:    "San Jose",
		State:   "CA",
		ZipCode: "95112",
		Phone:   "(408) 555-1234",
		Website: "https://phosaigon.example.com",
	})
	require.Error(t, err, "abbreviations are not accepted on the admin side")

	updated, err = service.Update(context.Background(), "rest-1", UpdateRestaurantCommand{
		Name:    "Pho Saigon Noodle House",
		Address: "125 Main St",
		City:    "San Jose",
		State:   "California",
		ZipCode: "95112",
		Phone:   "(408) 555-1234",
		Website: "https://phosaigon.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pho Saigon Noodle House", updated.Name)
	assert.Equal(t, "95112", updated.ZipCode.String())

	// aggregate and closure state survives the edit untouched
	assert.InDelta(t, 4.3, updated.AverageRating, 0.0001)
	assert.Equal(t, 12, updated.TotalReviews)
	assert.True(t, updated.IsClosed)
	assert.Equal(t, 4, updated.ClosureReports)
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	repo := newFakeRestaurantRepo()
	repo.stored["rest-1"] = seededRestaurant()
	service := NewRestaurantService(repo)

	cases := []UpdateRestaurantCommand{
		{Name: "", Address: "125 Main St", City: "San Jose", State: "California"},
		{Name: "Pho Saigon", Address: "", City: "San Jose", State: "California"},
		{Name: "Pho Saigon", Address: "125 Main St", City: "", State: "California"},
		{Name: "Pho Saigon", Address: "125 Main St", City: "San Jose", State: "Narnia"},
		{Name: "Pho Saigon", Address: "125 Main St", City: "San Jose", State: "California", ZipCode: "12"},
		{Name: "Pho Saigon", Address: "125 Main St", City: "San Jose", State: "California", Phone: "123"},
		{Name: "Pho Saigon", Address: "125 Main St", City: "San Jose", State: "California", Website: "ftp://x"},
	}
	for i, cmd := range cases {
		_, err := service.Update(context.Background(), "rest-1", cmd)
		require.Error(t, err, "case %d", i)
		assert.True(t, IsValidation(err), "case %d should be a validation error", i)
	}
	assert.Empty(t, repo.updated)
}

func TestUpdateMissingRestaurant(t *testing.T) {
	service := NewRestaurantService(newFakeRestaurantRepo())

	_, err := service.Update(context.Background(), "nope", UpdateRestaurantCommand{
		Name: "Pho Saigon", Address: "125 Main St", City: "San Jose", State: "California",
	})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
