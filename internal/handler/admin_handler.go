package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// AdminUserServiceInterface は管理者ハンドラーが必要とするユーザー操作インターフェース。
type AdminUserServiceInterface interface {
	// ChangeRole は指定ユーザーの権限を変更する。
	ChangeRole(ctx context.Context, userID int64, roleStr string) error
}

// AdminCommentServiceInterface は管理者ハンドラーが必要とするコメント操作インターフェース。
type AdminCommentServiceInterface interface {
	// Delete は指定IDのコメントを強制削除する。
	Delete(ctx context.Context, commentID int64) error
}

// AdminHandler は管理者専用操作のHTTPハンドラー。
// 管理者権限の検証と監査ログはミドルウェアで行われる。
type AdminHandler struct {
	userService    AdminUserServiceInterface
	commentService AdminCommentServiceInterface
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(userService AdminUserServiceInterface, commentService AdminCommentServiceInterface) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		commentService: commentService,
	}
}

// changeRoleRequest は権限変更リクエストのボディ。
type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeUserRole はユーザー権限の変更を処理する。
// PATCH /admin/users/{userID}
func (h *AdminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userID")
	if !ok {
		writeInvalidIDParam(w, "userID")
		return
	}

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.userService.ChangeRole(r.Context(), userID, req.Role); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteComment はコメントの強制削除を処理する。
// DELETE /admin/comments/{commentID}
func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := idParam(r, "commentID")
	if !ok {
		writeInvalidIDParam(w, "commentID")
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
