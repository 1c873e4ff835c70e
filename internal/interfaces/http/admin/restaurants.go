package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/phofinder/phofinder-services/api/internal/admin/application"
	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
)

func (h *Handler) restaurantSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		queryValues := r.URL.Query()
		keyword := strings.TrimSpace(queryValues.Get("keyword"))
		state := strings.TrimSpace(queryValues.Get("state"))
		closedOnly := queryValues.Get("closed") == "true"
		limit, _ := common.ParsePositiveInt(queryValues.Get("limit"), 20)

		filter := adminapp.RestaurantFilter{
			Keyword:    keyword,
			State:      state,
			ClosedOnly: closedOnly,
			Limit:      limit,
		}

		restaurants, err := h.restaurantService.Search(ctx, filter)
		if err != nil {
			h.logger.Printf("admin restaurant search failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗一覧の取得に失敗しました"})
			return
		}

		items := make([]adminRestaurantResponse, 0, len(restaurants))
		for _, restaurant := range restaurants {
			items = append(items, adminRestaurantDomainToResponse(restaurant))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		restaurant, err := h.restaurantService.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, adminapp.ErrRestaurantNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			h.logger.Printf("admin restaurant detail fetch failed id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminRestaurantDomainToResponse(*restaurant))
	}
}

func (h *Handler) restaurantUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))

		var req adminRestaurantUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		restaurant, err := h.restaurantService.Update(ctx, idParam, adminapp.UpdateRestaurantCommand{
			Name:        req.Name,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
			Phone:       req.Phone,
			Website:     req.Website,
			Description: req.Description,
		})
		if err != nil {
			if errors.Is(err, adminapp.ErrRestaurantNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			if adminapp.IsValidation(err) {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			h.logger.Printf("admin restaurant update failed id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の更新に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminRestaurantDomainToResponse(*restaurant))
	}
}
