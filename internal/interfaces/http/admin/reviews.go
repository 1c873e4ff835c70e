package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	adminapp "github.com/phofinder/phofinder-services/api/internal/admin/application"
	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
)

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		queryValues := r.URL.Query()
		restaurantID := strings.TrimSpace(queryValues.Get("restaurantId"))
		keyword := strings.TrimSpace(queryValues.Get("keyword"))
		limit, _ := common.ParsePositiveInt(queryValues.Get("limit"), 20)

		reviews, err := h.reviewService.Search(ctx, adminapp.ReviewFilter{
			RestaurantID: restaurantID,
			Keyword:      keyword,
			Limit:        limit,
		})
		if err != nil {
			h.logger.Printf("admin review search failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "レビュー一覧の取得に失敗しました"})
			return
		}

		items := make([]adminReviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, adminReviewDomainToResponse(review))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		metrics, err := h.metricsService.Snapshot(ctx)
		if err != nil {
			h.logger.Printf("admin metrics fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "統計情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminMetricsResponse{
			Restaurants:       metrics.Restaurants,
			ClosedRestaurants: metrics.ClosedRestaurants,
			Reviews:           metrics.Reviews,
			Ratings:           metrics.Ratings,
		})
	}
}
