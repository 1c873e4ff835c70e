package domain

import "time"

// Restaurant is the moderation view of a listing. Aggregate and closure
// fields are read-only here; only the aggregation routine writes them.
type Restaurant struct {
	ID             string
	Name           string
	Address        string
	City           CityName
	State          StateName
	ZipCode        ZipCode
	Phone          Phone
	Website        URL
	Description    Description
	AverageRating  float64
	TotalReviews   int
	IsClosed       bool
	ClosureReports int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Review is the moderation view of a posted review, joined with the
// restaurant name for listing screens.
type Review struct {
	ID             string
	RestaurantID   string
	RestaurantName string
	UserName       string
	Rating         float64
	Comment        string
	CreatedAt      time.Time
}

// Metrics is a point-in-time count snapshot for the admin dashboard.
type Metrics struct {
	Restaurants       int64
	ClosedRestaurants int64
	Reviews           int64
	Ratings           int64
}
