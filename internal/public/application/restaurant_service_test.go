package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

func TestSubmitZeroesAggregates(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	service := NewRestaurantCommandService(restaurants)

	created, err := service.Submit(context.Background(), SubmitRestaurantCommand{
		Name:    "Pho Express",
		Address: "789 Broadway, Suite 100",
		City:    "New York",
		State:   "New York",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	assert.Zero(t, created.AverageRating)
	assert.Zero(t, created.TotalReviews)
	assert.Zero(t, created.ClosureReports)
	assert.False(t, created.IsClosed)
	assert.Nil(t, created.AverageDetailedRatings)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestReportClosureThreshold(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	service := NewRestaurantCommandService(restaurants)
	id := restaurants.add(domain.Restaurant{Name: "Pho House", City: "Chicago", State: "Illinois"})
	ctx := context.Background()

	status, err := service.ReportClosure(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, status.ClosureReports)
	assert.False(t, status.IsClosed)

	_, err = service.ReportClosure(ctx, id)
	require.NoError(t, err)

	status, err = service.ReportClosure(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, status.ClosureReports)
	assert.True(t, status.IsClosed)

	got, err := restaurants.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsClosed)
	assert.Equal(t, 3, got.ClosureReports)
}

func TestReportClosureIsAOneWayRatchet(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	service := NewRestaurantCommandService(restaurants)
	id := restaurants.add(domain.Restaurant{Name: "Pho House", City: "Chicago", State: "Illinois"})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := service.ReportClosure(ctx, id)
		require.NoError(t, err)
	}

	got, err := restaurants.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsClosed)
	assert.Equal(t, 5, got.ClosureReports)
}

func TestReportClosureMissingRestaurant(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	service := NewRestaurantCommandService(restaurants)

	_, err := service.ReportClosure(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
	assert.Empty(t, restaurants.restaurants)
}

func TestReviewSubmitTriggersAggregation(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	reviews := &fakeReviewRepo{}
	ratings := &fakeRatingRepo{}
	id := restaurants.add(domain.Restaurant{Name: "Pho Saigon", City: "San Francisco", State: "California"})
	service := NewReviewService(reviews, NewAggregator(restaurants, reviews, ratings))

	created, err := service.Submit(context.Background(), SubmitReviewCommand{
		RestaurantID: id,
		UserID:       "user-a",
		UserName:     "Anh",
		Rating:       4,
		Comment:      "solid broth",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := restaurants.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalReviews)
	require.NotNil(t, got.AverageDetailedRatings)
	assert.Equal(t, 4.0, got.AverageDetailedRatings.Overall)
	// No scalar rating rows yet, so averageRating stays untouched.
	assert.Zero(t, got.AverageRating)
}
