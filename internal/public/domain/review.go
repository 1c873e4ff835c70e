package domain

import "time"

// Review is a free-text comment with an overall score and an optional
// five-category breakdown. DetailedRatings stays nil when the reviewer
// submitted only the coarse score.
type Review struct {
	ID              string
	RestaurantID    string
	UserID          string
	UserName        string
	Rating          float64
	DetailedRatings *DetailedRatings
	Comment         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Rating is a single per-user scalar score, at most one per
// (restaurant, user) pair. Distinct from Review.
type Rating struct {
	ID           string
	RestaurantID string
	UserID       string
	Rating       float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
