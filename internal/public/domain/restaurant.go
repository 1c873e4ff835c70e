package domain

import "time"

// Restaurant represents a publicly visible directory entry.
type Restaurant struct {
	ID                     string
	Name                   string
	Address                string
	City                   string
	State                  string
	ZipCode                string
	Phone                  string
	Website                string
	Description            string
	AverageRating          float64
	TotalReviews           int
	AverageDetailedRatings *DetailedRatings
	IsClosed               bool
	ClosureReports         int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DetailedRatings holds the five per-category scores of a review, or their
// aggregated averages on a restaurant. On a restaurant the field is nil until
// the first review exists; categories are zero while no review carries a
// detailed breakdown.
type DetailedRatings struct {
	Overall    float64
	Broth      float64
	Noodles    float64
	Meat       float64
	Vegetables float64
}
