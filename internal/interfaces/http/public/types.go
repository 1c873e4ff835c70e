package public

import (
	"time"

	publicdomain "github.com/phofinder/phofinder-services/api/internal/public/domain"
)

type detailedRatingsPayload struct {
	Overall    float64 `json:"overall"`
	Broth      float64 `json:"broth"`
	Noodles    float64 `json:"noodles"`
	Meat       float64 `json:"meat"`
	Vegetables float64 `json:"vegetables"`
}

type restaurantSummaryResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zipCode,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
	IsClosed      bool    `json:"isClosed"`
}

type restaurantDetailResponse struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	Address                string                  `json:"address"`
	City                   string                  `json:"city"`
	State                  string                  `json:"state"`
	ZipCode                string                  `json:"zipCode,omitempty"`
	Phone                  string                  `json:"phone,omitempty"`
	Website                string                  `json:"website,omitempty"`
	Description            string                  `json:"description,omitempty"`
	AverageRating          float64                 `json:"averageRating"`
	TotalReviews           int                     `json:"totalReviews"`
	AverageDetailedRatings *detailedRatingsPayload `json:"averageDetailedRatings,omitempty"`
	IsClosed               bool                    `json:"isClosed"`
	ClosureReports         int                     `json:"closureReports"`
	CreatedAt              time.Time               `json:"createdAt"`
	UpdatedAt              time.Time               `json:"updatedAt"`
}

type restaurantListResponse struct {
	Items []restaurantSummaryResponse `json:"items"`
	Page  int                         `json:"page"`
	Limit int                         `json:"limit"`
	Total int                         `json:"total"`
}

type reviewResponse struct {
	ID              string                  `json:"id"`
	RestaurantID    string                  `json:"restaurantId"`
	UserName        string                  `json:"userName"`
	Rating          float64                 `json:"rating"`
	DetailedRatings *detailedRatingsPayload `json:"detailedRatings,omitempty"`
	Comment         string                  `json:"comment,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
}

type reviewListResponse struct {
	Items []reviewResponse `json:"items"`
	Total int              `json:"total"`
}

type ratingResponse struct {
	RestaurantID string    `json:"restaurantId"`
	Rating       float64   `json:"rating"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type closureReportResponse struct {
	Status         string `json:"status"`
	ClosureReports int    `json:"closureReports"`
	IsClosed       bool   `json:"isClosed"`
}

type stateCitiesResponse struct {
	State           string   `json:"state"`
	Cities          []string `json:"cities"`
	RestaurantCount int      `json:"restaurantCount"`
}

type cityCountPayload struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type areaCodeCountPayload struct {
	AreaCode string `json:"areaCode"`
	Count    int    `json:"count"`
}

type stateBreakdownResponse struct {
	State       string                      `json:"state"`
	Cities      []cityCountPayload          `json:"cities"`
	AreaCodes   []areaCodeCountPayload      `json:"areaCodes"`
	Restaurants []restaurantSummaryResponse `json:"restaurants"`
}

type importResponse struct {
	Status       string   `json:"status"`
	SuccessCount int      `json:"successCount"`
	Errors       []string `json:"errors"`
}

func buildDetailedRatingsPayload(ratings *publicdomain.DetailedRatings) *detailedRatingsPayload {
	if ratings == nil {
		return nil
	}
	return &detailedRatingsPayload{
		Overall:    ratings.Overall,
		Broth:      ratings.Broth,
		Noodles:    ratings.Noodles,
		Meat:       ratings.Meat,
		Vegetables: ratings.Vegetables,
	}
}

// buildRestaurantSummaryResponse は Restaurant ドメインモデルを一覧表示用 DTO に変換する。
func buildRestaurantSummaryResponse(restaurant publicdomain.Restaurant) restaurantSummaryResponse {
	return restaurantSummaryResponse{
		ID:            restaurant.ID,
		Name:          restaurant.Name,
		Address:       restaurant.Address,
		City:          restaurant.City,
		State:         restaurant.State,
		ZipCode:       restaurant.ZipCode,
		Phone:         restaurant.Phone,
		AverageRating: restaurant.AverageRating,
		TotalReviews:  restaurant.TotalReviews,
		IsClosed:      restaurant.IsClosed,
	}
}

func buildRestaurantDetailResponse(restaurant publicdomain.Restaurant) restaurantDetailResponse {
	return restaurantDetailResponse{
		ID:                     restaurant.ID,
		Name:                   restaurant.Name,
		Address:                restaurant.Address,
		City:                   restaurant.City,
		State:                  restaurant.State,
		ZipCode:                restaurant.ZipCode,
		Phone:                  restaurant.Phone,
		Website:                restaurant.Website,
		Description:            restaurant.Description,
		AverageRating:          restaurant.AverageRating,
		TotalReviews:           restaurant.TotalReviews,
		AverageDetailedRatings: buildDetailedRatingsPayload(restaurant.AverageDetailedRatings),
		IsClosed:               restaurant.IsClosed,
		ClosureReports:         restaurant.ClosureReports,
		CreatedAt:              restaurant.CreatedAt,
		UpdatedAt:              restaurant.UpdatedAt,
	}
}

func buildReviewResponse(review publicdomain.Review) reviewResponse {
	return reviewResponse{
		ID:              review.ID,
		RestaurantID:    review.RestaurantID,
		UserName:        review.UserName,
		Rating:          review.Rating,
		DetailedRatings: buildDetailedRatingsPayload(review.DetailedRatings),
		Comment:         review.Comment,
		CreatedAt:       review.CreatedAt,
	}
}
