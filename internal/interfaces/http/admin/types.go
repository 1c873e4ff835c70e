package admin

import (
	"time"

	admindomain "github.com/phofinder/phofinder-services/api/internal/admin/domain"
)

type adminRestaurantResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zipCode,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Website        string    `json:"website,omitempty"`
	Description    string    `json:"description,omitempty"`
	AverageRating  float64   `json:"averageRating"`
	TotalReviews   int       `json:"totalReviews"`
	IsClosed       bool      `json:"isClosed"`
	ClosureReports int       `json:"closureReports"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type adminRestaurantUpdateRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type adminReviewResponse struct {
	ID             string    `json:"id"`
	RestaurantID   string    `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName,omitempty"`
	UserName       string    `json:"userName"`
	Rating         float64   `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type adminMetricsResponse struct {
	Restaurants       int64 `json:"restaurants"`
	ClosedRestaurants int64 `json:"closedRestaurants"`
	Reviews           int64 `json:"reviews"`
	Ratings           int64 `json:"ratings"`
}

func adminRestaurantDomainToResponse(restaurant admindomain.Restaurant) adminRestaurantResponse {
	return adminRestaurantResponse{
		ID:             restaurant.ID,
		Name:           restaurant.Name,
		Address:        restaurant.Address,
		City:           restaurant.City.String(),
		State:          restaurant.State.String(),
		ZipCode:        restaurant.ZipCode.String(),
		Phone:          restaurant.Phone.String(),
		Website:        restaurant.Website.String(),
		Description:    restaurant.Description.String(),
		AverageRating:  restaurant.AverageRating,
		TotalReviews:   restaurant.TotalReviews,
		IsClosed:       restaurant.IsClosed,
		ClosureReports: restaurant.ClosureReports,
		CreatedAt:      restaurant.CreatedAt,
		UpdatedAt:      restaurant.UpdatedAt,
	}
}

func adminReviewDomainToResponse(review admindomain.Review) adminReviewResponse {
	return adminReviewResponse{
		ID:             review.ID,
		RestaurantID:   review.RestaurantID,
		RestaurantName: review.RestaurantName,
		UserName:       review.UserName,
		Rating:         review.Rating,
		Comment:        review.Comment,
		CreatedAt:      review.CreatedAt,
	}
}
