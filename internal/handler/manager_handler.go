package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// ManagerServiceInterface は担当者ハンドラーが必要とするサービスインターフェース。
type ManagerServiceInterface interface {
	// Save はタスクに担当者を登録する。
	Save(ctx context.Context, requester model.Identity, todoID, managerUserID int64) (*model.Manager, error)
	// List は指定タスクの担当者一覧を返す。
	List(ctx context.Context, todoID int64) ([]*model.Manager, error)
	// Delete はタスクから担当者を削除する。
	Delete(ctx context.Context, requesterUserID, todoID, managerID int64) error
}

// ManagerHandler はタスク担当者管理のHTTPハンドラー。
type ManagerHandler struct {
	service ManagerServiceInterface
}

// NewManagerHandler はManagerHandlerを生成する。
func NewManagerHandler(service ManagerServiceInterface) *ManagerHandler {
	return &ManagerHandler{service: service}
}

// saveManagerRequest は担当者登録リクエストのボディ。
type saveManagerRequest struct {
	ManagerUserID int64 `json:"manager_user_id"`
}

// managerResponse は担当者情報のAPIレスポンス。
type managerResponse struct {
	ID        int64        `json:"id"`
	TodoID    int64        `json:"todo_id"`
	User      *userSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func toManagerResponse(m *model.Manager) managerResponse {
	return managerResponse{
		ID:        m.ID,
		TodoID:    m.TodoID,
		User:      toUserSummary(m.User),
		CreatedAt: m.CreatedAt,
	}
}

// SaveManager は担当者登録を処理する。
// POST /todos/{todoID}/managers
func (h *ManagerHandler) SaveManager(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	todoID, ok := idParam(r, "todoID")
	if !ok {
		writeInvalidIDParam(w, "todoID")
		return
	}

	var req saveManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.ManagerUserID <= 0 {
		writeInvalidBody(w)
		return
	}

	manager, err := h.service.Save(r.Context(), identity, todoID, req.ManagerUserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toManagerResponse(manager))
}

// ListManagers は担当者一覧を処理する。
// GET /todos/{todoID}/managers
func (h *ManagerHandler) ListManagers(w http.ResponseWriter, r *http.Request) {
	todoID, ok := idParam(r, "todoID")
	if !ok {
		writeInvalidIDParam(w, "todoID")
		return
	}

	managers, err := h.service.List(r.Context(), todoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]managerResponse, 0, len(managers))
	for _, m := range managers {
		resp = append(resp, toManagerResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteManager は担当者削除を処理する。
// DELETE /todos/{todoID}/managers/{managerID}
func (h *ManagerHandler) DeleteManager(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	todoID, ok := idParam(r, "todoID")
	if !ok {
		writeInvalidIDParam(w, "todoID")
		return
	}
	managerID, ok := idParam(r, "managerID")
	if !ok {
		writeInvalidIDParam(w, "managerID")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, todoID, managerID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
