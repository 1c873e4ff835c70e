package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

func newRatingFixture() (RatingService, *fakeRestaurantRepo, *fakeRatingRepo, string) {
	restaurants := newFakeRestaurantRepo()
	reviews := &fakeReviewRepo{}
	ratings := &fakeRatingRepo{}
	id := restaurants.add(domain.Restaurant{Name: "Pho 99", City: "Los Angeles", State: "California"})
	aggregator := NewAggregator(restaurants, reviews, ratings)
	return NewRatingService(ratings, aggregator), restaurants, ratings, id
}

func TestUpsertInsertsThenOverwrites(t *testing.T) {
	service, restaurants, ratingRepo, id := newRatingFixture()
	ctx := context.Background()

	require.NoError(t, service.Upsert(ctx, UpsertRatingCommand{RestaurantID: id, UserID: "user-a", Rating: 3}))
	require.NoError(t, service.Upsert(ctx, UpsertRatingCommand{RestaurantID: id, UserID: "user-a", Rating: 5}))

	// Exactly one row for the pair, holding the second value.
	require.Len(t, ratingRepo.ratings, 1)
	assert.Equal(t, 5.0, ratingRepo.ratings[0].Rating)
	assert.Equal(t, "user-a", ratingRepo.ratings[0].UserID)

	got, err := restaurants.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.AverageRating)
	assert.Equal(t, 1, got.TotalReviews)
}

func TestUpsertSeparateUsersKeepSeparateRows(t *testing.T) {
	service, restaurants, ratingRepo, id := newRatingFixture()
	ctx := context.Background()

	require.NoError(t, service.Upsert(ctx, UpsertRatingCommand{RestaurantID: id, UserID: "user-a", Rating: 4}))
	require.NoError(t, service.Upsert(ctx, UpsertRatingCommand{RestaurantID: id, UserID: "user-b", Rating: 5}))

	assert.Len(t, ratingRepo.ratings, 2)

	got, err := restaurants.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Equal(t, 2, got.TotalReviews)
}

func TestUpsertAcceptsOutOfRangeValues(t *testing.T) {
	// Bounds are a form-level constraint; the routine stores what it gets.
	service, _, ratingRepo, id := newRatingFixture()

	require.NoError(t, service.Upsert(context.Background(), UpsertRatingCommand{RestaurantID: id, UserID: "user-a", Rating: 11}))

	require.Len(t, ratingRepo.ratings, 1)
	assert.Equal(t, 11.0, ratingRepo.ratings[0].Rating)
}

func TestFindOwnMissingRating(t *testing.T) {
	service, _, _, id := newRatingFixture()

	_, err := service.FindOwn(context.Background(), id, "user-z")
	assert.ErrorIs(t, err, domain.ErrRatingNotFound)
}
