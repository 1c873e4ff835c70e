package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
	publicapp "github.com/phofinder/phofinder-services/api/internal/public/application"
	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		stateFilter := domain.CanonicalState(query.Get("state"))
		cityFilter := strings.TrimSpace(query.Get("city"))
		keyword := strings.TrimSpace(query.Get("keyword"))
		sortKey := strings.TrimSpace(query.Get("sort"))

		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 20)

		filter := publicapp.RestaurantFilter{
			State:   stateFilter,
			City:    cityFilter,
			Keyword: keyword,
			Sort:    sortKey,
		}

		restaurants, err := h.restaurantQueries.List(ctx, filter)
		if err != nil {
			h.logger.Printf("restaurant list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗一覧の取得に失敗しました"})
			return
		}

		total := len(restaurants)
		start := (page - 1) * limit
		if start >= total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		items := make([]restaurantSummaryResponse, 0, end-start)
		for _, restaurant := range restaurants[start:end] {
			items = append(items, buildRestaurantSummaryResponse(restaurant))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, restaurantListResponse{
			Items: items,
			Page:  page,
			Limit: limit,
			Total: total,
		})
	}
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		restaurant, err := h.restaurantQueries.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, domain.ErrRestaurantNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			h.logger.Printf("restaurant detail fetch failed id=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildRestaurantDetailResponse(*restaurant))
	}
}

type submitRestaurantRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

func (req *submitRestaurantRequest) normalize() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("店名を入力してください")
	}
	req.Address = strings.TrimSpace(req.Address)
	if req.Address == "" {
		return errors.New("住所を入力してください")
	}
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		return errors.New("市区町村を入力してください")
	}
	req.State = domain.CanonicalState(req.State)
	if req.State == "" {
		return errors.New("州を入力してください")
	}
	req.ZipCode = strings.TrimSpace(req.ZipCode)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Website = strings.TrimSpace(req.Website)
	req.Description = strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(req.Description) > common.MaxDescriptionRunes {
		return errors.New("説明文が長すぎます")
	}
	return nil
}

func (h *Handler) restaurantSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
		var req submitRestaurantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエスト形式が不正です"})
			return
		}
		if err := req.normalize(); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		restaurant, err := h.restaurantCommands.Submit(ctx, publicapp.SubmitRestaurantCommand{
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
			if domain.IsValidation(err) {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			h.logger.Printf("restaurant submit failed name=%q err=%v", req.Name, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗の登録に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildRestaurantDetailResponse(*restaurant))
	}
}

func (h *Handler) closureReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		status, err := h.restaurantCommands.ReportClosure(ctx, idParam)
		if err != nil {
			if errors.Is(err, domain.ErrRestaurantNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			h.logger.Printf("closure report failed id=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "閉店報告の登録に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, closureReportResponse{
			Status:         "ok",
			ClosureReports: status.ClosureReports,
			IsClosed:       status.IsClosed,
		})
	}
}
