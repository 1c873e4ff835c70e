package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

func TestStatesGrouping(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurants.add(domain.Restaurant{Name: "Pho Saigon", City: "San Francisco", State: "California"})
	restaurants.add(domain.Restaurant{Name: "Pho 99", City: "Los Angeles", State: "California"})
	restaurants.add(domain.Restaurant{Name: "Pho Golden", City: "San Francisco", State: "California"})
	restaurants.add(domain.Restaurant{Name: "Pho Express", City: "New York", State: "New York"})
	restaurants.add(domain.Restaurant{Name: "Pho Nowhere", City: "Springfield", State: "Atlantis"})
	service := NewDirectoryService(restaurants)

	states, err := service.States(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)

	// Canonical state order, cities sorted, unrecognized states skipped.
	assert.Equal(t, "California", states[0].State)
	assert.Equal(t, []string{"Los Angeles", "San Francisco"}, states[0].Cities)
	assert.Equal(t, 3, states[0].RestaurantCount)
	assert.Equal(t, "New York", states[1].State)
}

func TestStateBreakdownCounters(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurants.add(domain.Restaurant{Name: "Pho Saigon", City: "San Francisco", State: "California", Phone: "(415) 555-1234"})
	restaurants.add(domain.Restaurant{Name: "Pho Golden", City: "San Francisco", State: "California", Phone: "415-555-9876"})
	restaurants.add(domain.Restaurant{Name: "Pho 99", City: "Los Angeles", State: "California", Phone: "213-555-5678"})
	restaurants.add(domain.Restaurant{Name: "Pho Quiet", City: "Fresno", State: "California"})
	service := NewDirectoryService(restaurants)

	breakdown, err := service.StateBreakdown(context.Background(), "ca")
	require.NoError(t, err)

	assert.Equal(t, "California", breakdown.State)
	assert.Len(t, breakdown.Restaurants, 4)
	assert.Equal(t, []domain.CityCount{
		{City: "Fresno", Count: 1},
		{City: "Los Angeles", Count: 1},
		{City: "San Francisco", Count: 2},
	}, breakdown.Cities)
	// Phone-less entries contribute no area code.
	assert.Equal(t, []domain.AreaCodeCount{
		{AreaCode: "213", Count: 1},
		{AreaCode: "415", Count: 2},
	}, breakdown.AreaCodes)
}

func TestExtractAreaCode(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{phone: "(415) 555-1234", want: "415"},
		{phone: "415-555-1234", want: "415"},
		{phone: "4155551234", want: "415"},
		{phone: "call us", want: ""},
		{phone: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractAreaCode(tt.phone), tt.phone)
	}
}

func TestCanonicalState(t *testing.T) {
	assert.Equal(t, "California", domain.CanonicalState("CA"))
	assert.Equal(t, "California", domain.CanonicalState("california"))
	assert.Equal(t, "New York", domain.CanonicalState(" new york "))
	assert.Equal(t, "Atlantis", domain.CanonicalState("Atlantis"))
	assert.True(t, domain.IsUSState("Washington"))
	assert.False(t, domain.IsUSState("Atlantis"))
}
