package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// Save はタスクにコメントを投稿する。投稿できるのはタスクの担当者のみ。
	Save(ctx context.Context, requester model.Identity, todoID int64, contents string) (*model.Comment, error)
	// List は指定タスクのコメント一覧を返す。
	List(ctx context.Context, todoID int64) ([]*model.Comment, error)
}

// CommentHandler はタスクコメントのHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// saveCommentRequest はコメント投稿リクエストのボディ。
type saveCommentRequest struct {
	Contents string `json:"contents"`
}

// commentResponse はコメント情報のAPIレスポンス。
type commentResponse struct {
	ID        int64        `json:"id"`
	Contents  string       `json:"contents"`
	TodoID    int64        `json:"todo_id"`
	User      *userSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func toCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Contents:  c.Contents,
		TodoID:    c.TodoID,
		User:      toUserSummary(c.User),
		CreatedAt: c.CreatedAt,
	}
}

// SaveComment はコメント投稿を処理する。
// POST /todos/{todoID}/comments
func (h *CommentHandler) SaveComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	todoID, ok := idParam(r, "todoID")
	if !ok {
		writeInvalidIDParam(w, "todoID")
		return
	}

	var req saveCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.Contents == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "EMPTY_CONTENTS",
			Message:  "コメント本文は必須です。",
			Category: "validation",
			Action:   "本文を指定してください。",
		})
		return
	}

	comment, err := h.service.Save(r.Context(), identity, todoID, req.Contents)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// ListComments はコメント一覧を処理する。
// GET /todos/{todoID}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	todoID, ok := idParam(r, "todoID")
	if !ok {
		writeInvalidIDParam(w, "todoID")
		return
	}

	comments, err := h.service.List(r.Context(), todoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}
