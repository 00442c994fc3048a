package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// TodoServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	// Save は新しいタスクを作成する。作成時の天気も記録される。
	Save(ctx context.Context, requester model.Identity, title, contents string) (*model.Todo, error)
	// List はタスク一覧を更新日時の降順でページ指定取得する。
	List(ctx context.Context, page, size int) ([]*model.Todo, error)
	// Get は指定IDのタスクを作成者情報付きで取得する。
	Get(ctx context.Context, todoID int64) (*model.Todo, error)
}

// TodoHandler はタスク管理のHTTPハンドラー。
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: service}
}

// saveTodoRequest はタスク作成リクエストのボディ。
type saveTodoRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

// userSummary はレスポンスに埋め込むユーザーの最小情報。
// パスワードハッシュなどの内部フィールドは含めない。
type userSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// todoResponse はタスク情報のAPIレスポンス。
type todoResponse struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Contents   string       `json:"contents"`
	Weather    string       `json:"weather"`
	User       *userSummary `json:"user,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	ModifiedAt time.Time    `json:"modified_at"`
}

func toUserSummary(u *model.User) *userSummary {
	if u == nil {
		return nil
	}
	return &userSummary{ID: u.ID, Email: u.Email}
}

func toTodoResponse(t *model.Todo) todoResponse {
	return todoResponse{
		ID:         t.ID,
		Title:      t.Title,
		Contents:   t.Contents,
		Weather:    t.Weather,
		User:       toUserSummary(t.User),
		CreatedAt:  t.CreatedAt,
		ModifiedAt: t.ModifiedAt,
	}
}

// SaveTodo はタスク作成を処理する。
// POST /todos
func (h *TodoHandler) SaveTodo(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req saveTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}
	if req.Title == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "EMPTY_TITLE",
			Message:  "タイトルは必須です。",
			Category: "validation",
			Action:   "タイトルを指定してください。",
		})
		return
	}

	todo, err := h.service.Save(r.Context(), identity, req.Title, req.Contents)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

// ListTodos はタスク一覧を処理する。
// GET /todos?page=1&size=10
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	page := queryIntDefault(r, "page", 1)
	size := queryIntDefault(r, "size", 10)

	todos, err := h.service.List(r.Context(), page, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		resp = append(resp, toTodoResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTodo はタスク詳細を処理する。
// GET /todos/{todoID}
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := idParam(r, "todoID")
	if !ok {
		writeInvalidIDParam(w, "todoID")
		return
	}

	todo, err := h.service.Get(r.Context(), todoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

// queryIntDefault はクエリパラメータを整数として取得する。
// 未指定または不正な値の場合はデフォルト値を返す。
func queryIntDefault(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
