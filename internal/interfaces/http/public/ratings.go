package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
	publicapp "github.com/phofinder/phofinder-services/api/internal/public/application"
	"github.com/phofinder/phofinder-services/api/internal/public/domain"
)

func (h *Handler) ratingGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報の取得に失敗しました"})
			return
		}

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		rating, err := h.ratings.FindOwn(ctx, idParam, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrRatingNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "評価が未登録です"})
				return
			}
			h.logger.Printf("rating fetch failed restaurant=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "評価の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, ratingResponse{
			RestaurantID: rating.RestaurantID,
			Rating:       rating.Rating,
			UpdatedAt:    rating.UpdatedAt,
		})
	}
}

type upsertRatingRequest struct {
	Rating float64 `json:"rating"`
}

func (h *Handler) ratingUpsertHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報の取得に失敗しました"})
			return
		}

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
		var req upsertRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエスト形式が不正です"})
			return
		}
		if !common.RatingInRange(req.Rating) {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "評価は1〜5の範囲で入力してください"})
			return
		}

		err := h.ratings.Upsert(ctx, publicapp.UpsertRatingCommand{
			RestaurantID: idParam,
			UserID:       user.ID,
			Rating:       req.Rating,
		})
		if err != nil {
			if errors.Is(err, domain.ErrRestaurantNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			h.logger.Printf("rating upsert failed restaurant=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "評価の登録に失敗しました"})
			return
		}

		rating, err := h.ratings.FindOwn(ctx, idParam, user.ID)
		if err != nil {
			h.logger.Printf("rating readback failed restaurant=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, ratingResponse{
			RestaurantID: rating.RestaurantID,
			Rating:       rating.Rating,
			UpdatedAt:    rating.UpdatedAt,
		})
	}
}
