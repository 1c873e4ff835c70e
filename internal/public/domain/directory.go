package domain

// StateCities lists the cities with at least one restaurant within a state.
type StateCities struct {
	State           string
	Cities          []string
	RestaurantCount int
}

// CityCount pairs a city with its restaurant count inside a state page.
type CityCount struct {
	City  string
	Count int
}

// AreaCodeCount pairs a phone area code with its restaurant count.
type AreaCodeCount struct {
	AreaCode string
	Count    int
}

// StateBreakdown is the per-state directory view: city and area-code
// groupings over every restaurant in the state.
type StateBreakdown struct {
	State       string
	Cities      []CityCount
	AreaCodes   []AreaCodeCount
	Restaurants []Restaurant
}
