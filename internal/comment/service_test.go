package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

// --- モック定義 ---

type mockCommentRepo struct {
	listFn   func(ctx context.Context, todoID int64) ([]*model.Comment, error)
	createFn func(ctx context.Context, comment *model.Comment) error
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCommentRepo) ListByTodoIDWithAuthor(ctx context.Context, todoID int64) ([]*model.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, todoID)
	}
	return nil, nil
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

type mockTodoRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.Todo, error)
}

func (m *mockTodoRepo) FindByID(ctx context.Context, id int64) (*model.Todo, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTodoRepo) FindByIDWithOwner(ctx context.Context, id int64) (*model.Todo, error) {
	return nil, nil
}

func (m *mockTodoRepo) List(ctx context.Context, page, size int) ([]*model.Todo, error) {
	return nil, nil
}

func (m *mockTodoRepo) CreateWithOwnerManager(ctx context.Context, todo *model.Todo) error {
	return nil
}

type mockManagerRepo struct {
	listFn func(ctx context.Context, todoID int64) ([]*model.Manager, error)
}

func (m *mockManagerRepo) FindByID(ctx context.Context, id int64) (*model.Manager, error) {
	return nil, nil
}

func (m *mockManagerRepo) ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]*model.Manager, error) {
	if m.listFn != nil {
		return m.listFn(ctx, todoID)
	}
	return nil, nil
}

func (m *mockManagerRepo) Create(ctx context.Context, manager *model.Manager) error { return nil }

func (m *mockManagerRepo) Delete(ctx context.Context, id int64) error { return nil }

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(s string) string { return s }

// --- テストヘルパー ---

func existingTodo() *mockTodoRepo {
	return &mockTodoRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Todo, error) {
			return &model.Todo{ID: id, UserID: 1}, nil
		},
	}
}

func managersOf(userIDs ...int64) *mockManagerRepo {
	return &mockManagerRepo{
		listFn: func(ctx context.Context, todoID int64) ([]*model.Manager, error) {
			managers := make([]*model.Manager, 0, len(userIDs))
			for i, uid := range userIDs {
				managers = append(managers, &model.Manager{ID: int64(100 + i), TodoID: todoID, UserID: uid})
			}
			return managers, nil
		},
	}
}

func assertAPIErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != wantCode {
		t.Errorf("error code = %q, want %q", apiErr.Code, wantCode)
	}
}

// --- テスト ---

func TestService_Save_ManagerCanComment(t *testing.T) {
	var created *model.Comment
	commentRepo := &mockCommentRepo{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			comment.ID = 1000
			created = comment
			return nil
		},
	}
	svc := NewService(commentRepo, existingTodo(), managersOf(1, 2), passthroughSanitizer{})

	requester := model.Identity{UserID: 2, Role: model.RoleUser}
	comment, err := svc.Save(context.Background(), requester, 10, "looks good")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if created == nil {
		t.Fatal("comment should be persisted")
	}
	if comment.TodoID != 10 || comment.UserID != 2 {
		t.Errorf("comment = {todo:%d user:%d}, want {todo:10 user:2}", comment.TodoID, comment.UserID)
	}
}

func TestService_Save_OwnerCommentsViaManagerRow(t *testing.T) {
	// 作成者はタスク作成時に担当者として登録されているため、
	// 担当者一覧に含まれていればコメントできる
	svc := NewService(&mockCommentRepo{}, existingTodo(), managersOf(1), passthroughSanitizer{})

	requester := model.Identity{UserID: 1, Role: model.RoleUser}
	_, err := svc.Save(context.Background(), requester, 10, "self comment")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestService_Save_NonManagerDenied(t *testing.T) {
	createCalled := false
	commentRepo := &mockCommentRepo{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			createCalled = true
			return nil
		},
	}
	svc := NewService(commentRepo, existingTodo(), managersOf(1, 2), passthroughSanitizer{})

	requester := model.Identity{UserID: 3, Role: model.RoleUser}
	_, err := svc.Save(context.Background(), requester, 10, "drive-by comment")
	assertAPIErrorCode(t, err, model.ErrCodeNotManager)
	if createCalled {
		t.Error("denied comment should not be persisted")
	}
}

func TestService_Save_TodoNotFound(t *testing.T) {
	svc := NewService(&mockCommentRepo{}, &mockTodoRepo{}, managersOf(), passthroughSanitizer{})

	_, err := svc.Save(context.Background(), model.Identity{UserID: 1}, 999, "text")
	assertAPIErrorCode(t, err, model.ErrCodeTodoNotFound)
}

func TestService_List_ReturnsComments(t *testing.T) {
	commentRepo := &mockCommentRepo{
		listFn: func(ctx context.Context, todoID int64) ([]*model.Comment, error) {
			return []*model.Comment{
				{ID: 1, TodoID: todoID, UserID: 1, User: &model.User{ID: 1}},
				{ID: 2, TodoID: todoID, UserID: 2, User: &model.User{ID: 2}},
			}, nil
		},
	}
	svc := NewService(commentRepo, existingTodo(), managersOf(), passthroughSanitizer{})

	comments, err := svc.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("len = %d, want 2", len(comments))
	}
}

func TestAdminService_Delete(t *testing.T) {
	var deletedID int64
	commentRepo := &mockCommentRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			deletedID = id
			return true, nil
		},
	}
	svc := NewAdminService(commentRepo)

	if err := svc.Delete(context.Background(), 55); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deletedID != 55 {
		t.Errorf("deleted ID = %d, want 55", deletedID)
	}
}

// 存在しないコメントの削除はコメント未検出エラーになること。
func TestAdminService_Delete_NotFound(t *testing.T) {
	commentRepo := &mockCommentRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewAdminService(commentRepo)

	err := svc.Delete(context.Background(), 999)
	assertAPIErrorCode(t, err, model.ErrCodeCommentNotFound)
}
