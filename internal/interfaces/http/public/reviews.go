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

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		reviews, err := h.reviews.ListByRestaurant(ctx, idParam)
		if err != nil {
			h.logger.Printf("review list fetch failed restaurant=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "レビュー一覧の取得に失敗しました"})
			return
		}

		items := make([]reviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, buildReviewResponse(review))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{
			Items: items,
			Total: len(items),
		})
	}
}

type createReviewRequest struct {
	RestaurantID    string                  `json:"restaurantId"`
	UserName        string                  `json:"userName"`
	Rating          float64                 `json:"rating"`
	DetailedRatings *detailedRatingsPayload `json:"detailedRatings"`
	Comment         string                  `json:"comment"`
}

func (req *createReviewRequest) normalize() error {
	req.RestaurantID = strings.TrimSpace(req.RestaurantID)
	if req.RestaurantID == "" {
		return errors.New("店舗IDを指定してください")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" {
		req.UserName = "Anonymous"
	}
	if !common.RatingInRange(req.Rating) {
		return errors.New("評価は1〜5の範囲で入力してください")
	}
	if req.DetailedRatings != nil {
		for _, score := range []float64{req.DetailedRatings.Overall, req.DetailedRatings.Broth, req.DetailedRatings.Noodles, req.DetailedRatings.Meat, req.DetailedRatings.Vegetables} {
			if score != 0 && !common.RatingInRange(score) {
				return errors.New("項目別評価は1〜5の範囲で入力してください")
			}
		}
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(req.Comment) > common.MaxCommentRunes {
		return errors.New("コメントが長すぎます")
	}
	return nil
}

type createReviewResponse struct {
	Status string         `json:"status"`
	Review reviewResponse `json:"review"`
}

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報の取得に失敗しました"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
		var req createReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエスト形式が不正です"})
			return
		}
		if err := req.normalize(); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		var detailed *domain.DetailedRatings
		if req.DetailedRatings != nil {
			detailed = &domain.DetailedRatings{
				Overall:    req.DetailedRatings.Overall,
				Broth:      req.DetailedRatings.Broth,
				Noodles:    req.DetailedRatings.Noodles,
				Meat:       req.DetailedRatings.Meat,
				Vegetables: req.DetailedRatings.Vegetables,
			}
		}

		review, err := h.reviews.Submit(ctx, publicapp.SubmitReviewCommand{
			RestaurantID:    req.RestaurantID,
			UserID:          user.ID,
			UserName:        req.UserName,
			Rating:          req.Rating,
			DetailedRatings: detailed,
			Comment:         req.Comment,
		})
		if err != nil {
			if errors.Is(err, domain.ErrRestaurantNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			if domain.IsValidation(err) {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			h.logger.Printf("review create failed restaurant=%q err=%v", req.RestaurantID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "レビューの投稿に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, createReviewResponse{
			Status: "ok",
			Review: buildReviewResponse(*review),
		})
	}
}
