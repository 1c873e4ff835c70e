package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phofinder/phofinder-services/api/internal/interfaces/http/common"
)

type importRequest struct {
	CSV string `json:"csv"`
}

// importHandler は CSV テキストを受け取り一括登録する。JSON ボディの
// csv フィールドか、text/csv の生ボディのどちらかを受け付ける。
func (h *Handler) importHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxImportBody)

		var csvText string
		contentType := r.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "application/json") {
			var req importRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエスト形式が不正です"})
				return
			}
			csvText = req.CSV
		} else {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの読み込みに失敗しました"})
				return
			}
			csvText = string(raw)
		}

		if strings.TrimSpace(csvText) == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "CSVデータが空です"})
			return
		}

		result, err := h.importer.Run(ctx, csvText)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, importResponse{
			Status:       "ok",
			SuccessCount: result.SuccessCount,
			Errors:       result.Errors,
		})
	}
}
