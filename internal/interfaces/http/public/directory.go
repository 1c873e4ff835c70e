package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

func (h *Handler) directoryStatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		states, err := h.directory.States(ctx)
		if err != nil {
			h.logger.Printf("directory states fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "州別一覧の取得に失敗しました"})
			return
		}

		items := make([]stateCitiesResponse, 0, len(states))
		for _, state := range states {
			items = append(items, stateCitiesResponse{
				State:           state.State,
				Cities:          state.Cities,
				RestaurantCount: state.RestaurantCount,
			})
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) directoryStateBreakdownHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		stateParam := strings.TrimSpace(chi.URLParam(r, "state"))
		canonical := domain.CanonicalState(stateParam)
		if canonical == "" || !domain.IsUSState(canonical) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "州が見つかりません"})
			return
		}

		breakdown, err := h.directory.StateBreakdown(ctx, canonical)
		if err != nil {
			h.logger.Printf("state breakdown fetch failed state=%q err=%v", canonical, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "州別情報の取得に失敗しました"})
			return
		}

		cities := make([]cityCountPayload, 0, len(breakdown.Cities))
		for _, city := range breakdown.Cities {
			cities = append(cities, cityCountPayload{City: city.City, Count: city.Count})
		}
		areaCodes := make([]areaCodeCountPayload, 0, len(breakdown.AreaCodes))
		for _, code := range breakdown.AreaCodes {
			areaCodes = append(areaCodes, areaCodeCountPayload{AreaCode: code.AreaCode, Count: code.Count})
		}
		restaurants := make([]restaurantSummaryResponse, 0, len(breakdown.Restaurants))
		for _, restaurant := range breakdown.Restaurants {
			restaurants = append(restaurants, buildRestaurantSummaryResponse(restaurant))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, stateBreakdownResponse{
			State:       breakdown.State,
			Cities:      cities,
			AreaCodes:   areaCodes,
			Restaurants: restaurants,
		})
	}
}
