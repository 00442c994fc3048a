// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
)

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeTokenRequired, model.ErrCodeTokenMalformed:
		return http.StatusBadRequest
	case model.ErrCodeTokenInvalid, model.ErrCodeTokenExpired, model.ErrCodeWrongPassword:
		return http.StatusUnauthorized
	case model.ErrCodeAdminRequired, model.ErrCodeNotOwner, model.ErrCodeNotManager,
		model.ErrCodeManagerNotInTodo, model.ErrCodeOwnerMissing:
		return http.StatusForbidden
	case model.ErrCodeUserNotFound, model.ErrCodeTodoNotFound,
		model.ErrCodeManagerNotFound, model.ErrCodeCommentNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateEmail, model.ErrCodeDuplicateManager, model.ErrCodeCandidateIsOwner:
		return http.StatusConflict
	case model.ErrCodeInvalidRole, model.ErrCodeInvalidPassword, model.ErrCodeSamePassword:
		return http.StatusBadRequest
	case model.ErrCodeWeatherUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// idParam はURLパスパラメータをint64として取得する。
// 数値でない場合はfalseを返す。
func idParam(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeInvalidIDParam はパスパラメータ不正のエラーレスポンスを書き込む。
func writeInvalidIDParam(w http.ResponseWriter, name string) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_PATH_PARAM",
		Message:  "URLパラメータが不正です: " + name,
		Category: "validation",
		Action:   "数値のIDを指定してください。",
	})
}

// writeInvalidBody はリクエストボディ不正のエラーレスポンスを書き込む。
func writeInvalidBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST_BODY",
		Message:  "リクエストボディの形式が不正です。",
		Category: "validation",
		Action:   "JSONの形式と必須フィールドを確認してください。",
	})
}

// requireIdentity はリクエストコンテキストから検証済みアイデンティティを取得する。
// 認証ミドルウェアを通過していないリクエストには500を返しfalseを返す。
// （認証済みルートでのみ呼ばれる想定のため、欠落は構成ミス）
func requireIdentity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		slog.Error("handler invoked without identity context",
			slog.String("path", r.URL.Path),
		)
		middleware.WriteInternalServerError(w)
		return model.Identity{}, false
	}
	return identity, true
}
