package application

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

var areaCodePattern = regexp.MustCompile(`\d{3}`)

type directoryService struct {
	repo RestaurantRepository
}

// NewDirectoryService creates the browse-page grouping service.
func NewDirectoryService(repo RestaurantRepository) DirectoryService {
	return &directoryService{repo: repo}
}

// States groups every restaurant under its state and returns the states in
// canonical order with their sorted city lists. States outside the
// recognized list are skipped, matching the top browse page.
func (s *directoryService) States(ctx context.Context) ([]domain.StateCities, error) {
	restaurants, err := s.repo.Find(ctx, RestaurantFilter{})
	if err != nil {
		return nil, err
	}

	type group struct {
		cities map[string]struct{}
		count  int
	}
	grouped := make(map[string]*group)
	for _, restaurant := range restaurants {
		state := domain.CanonicalState(restaurant.State)
		if !domain.IsUSState(state) {
			continue
		}
		g, ok := grouped[state]
		if !ok {
			g = &group{cities: make(map[string]struct{})}
			grouped[state] = g
		}
		g.count++
		if city := strings.TrimSpace(restaurant.City); city != "" {
			g.cities[city] = struct{}{}
		}
	}

	result := make([]domain.StateCities, 0, len(grouped))
	for _, state := range domain.USStates {
		g, ok := grouped[state]
		if !ok {
			continue
		}
		cities := make([]string, 0, len(g.cities))
		for city := range g.cities {
			cities = append(cities, city)
		}
		sort.Strings(cities)
		result = append(result, domain.StateCities{
			State:           state,
			Cities:          cities,
			RestaurantCount: g.count,
		})
	}
	return result, nil
}

// StateBreakdown returns the restaurants of one state together with the
// city and area-code counters of the state page sidebar.
func (s *directoryService) StateBreakdown(ctx context.Context, state string) (*domain.StateBreakdown, error) {
	canonical := domain.CanonicalState(state)
	restaurants, err := s.repo.Find(ctx, RestaurantFilter{State: canonical})
	if err != nil {
		return nil, err
	}

	cityCounts := make(map[string]int)
	areaCounts := make(map[string]int)
	for _, restaurant := range restaurants {
		if city := strings.TrimSpace(restaurant.City); city != "" {
			cityCounts[city]++
		}
		if area := ExtractAreaCode(restaurant.Phone); area != "" {
			areaCounts[area]++
		}
	}

	cities := make([]domain.CityCount, 0, len(cityCounts))
	for city, count := range cityCounts {
		cities = append(cities, domain.CityCount{City: city, Count: count})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].City < cities[j].City })

	areaCodes := make([]domain.AreaCodeCount, 0, len(areaCounts))
	for area, count := range areaCounts {
		areaCodes = append(areaCodes, domain.AreaCodeCount{AreaCode: area, Count: count})
	}
	sort.Slice(areaCodes, func(i, j int) bool { return areaCodes[i].AreaCode < areaCodes[j].AreaCode })

	return &domain.StateBreakdown{
		State:       canonical,
		Cities:      cities,
		AreaCodes:   areaCodes,
		Restaurants: restaurants,
	}, nil
}

// ExtractAreaCode pulls the first three-digit run out of a phone value.
// "(415) 555-1234", "415-555-1234" and bare digits all yield "415".
func ExtractAreaCode(phone string) string {
	return areaCodePattern.FindString(phone)
}
