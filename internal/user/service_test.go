package user

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

// --- モック定義 ---

type mockUserRepo struct {
	findByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	updatePasswordFn func(ctx context.Context, userID int64, digest string) error
	updateRoleFn     func(ctx context.Context, userID int64, role model.Role) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID int64, digest string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, digest)
	}
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, userID, role)
	}
	return nil
}

type mockEncoder struct{}

func (mockEncoder) Hash(plain string) (string, error) { return "digest:" + plain, nil }

func (mockEncoder) Matches(plain, digest string) bool { return "digest:"+plain == digest }

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

func repoWithUser(u *model.User) *mockUserRepo {
	return &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			if u != nil && u.ID == id {
				return u, nil
			}
			return nil, nil
		},
	}
}

// --- テスト ---

func TestService_Get_Found(t *testing.T) {
	repo := repoWithUser(&model.User{ID: 1, Email: "alice@example.com", Role: model.RoleUser})
	svc := NewService(repo, mockEncoder{})

	user, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", user.Email)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{}, mockEncoder{})

	_, err := svc.Get(context.Background(), 999)
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func TestService_ChangePassword_Success(t *testing.T) {
	var savedDigest string
	repo := repoWithUser(&model.User{ID: 1, Password: "digest:OldPass1"})
	repo.updatePasswordFn = func(ctx context.Context, userID int64, digest string) error {
		savedDigest = digest
		return nil
	}
	svc := NewService(repo, mockEncoder{})

	if err := svc.ChangePassword(context.Background(), 1, "OldPass1", "NewPass2"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if savedDigest != "digest:NewPass2" {
		t.Errorf("saved digest = %q, want digest:NewPass2", savedDigest)
	}
}

func TestService_ChangePassword_PolicyViolation(t *testing.T) {
	svc := NewService(repoWithUser(&model.User{ID: 1}), mockEncoder{})

	err := svc.ChangePassword(context.Background(), 1, "OldPass1", "weak")
	assertAPIErrorCode(t, err, model.ErrCodeInvalidPassword)
}

func TestService_ChangePassword_SameAsCurrent(t *testing.T) {
	repo := repoWithUser(&model.User{ID: 1, Password: "digest:SamePass1"})
	svc := NewService(repo, mockEncoder{})

	err := svc.ChangePassword(context.Background(), 1, "SamePass1", "SamePass1")
	assertAPIErrorCode(t, err, model.ErrCodeSamePassword)
}

func TestService_ChangePassword_WrongOldPassword(t *testing.T) {
	updateCalled := false
	repo := repoWithUser(&model.User{ID: 1, Password: "digest:OldPass1"})
	repo.updatePasswordFn = func(ctx context.Context, userID int64, digest string) error {
		updateCalled = true
		return nil
	}
	svc := NewService(repo, mockEncoder{})

	err := svc.ChangePassword(context.Background(), 1, "WrongOld1", "NewPass2")
	assertAPIErrorCode(t, err, model.ErrCodeWrongPassword)
	if updateCalled {
		t.Error("password should not be updated when the current password does not match")
	}
}

func TestAdminService_ChangeRole_Success(t *testing.T) {
	var savedRole model.Role
	repo := repoWithUser(&model.User{ID: 2, Role: model.RoleUser})
	repo.updateRoleFn = func(ctx context.Context, userID int64, role model.Role) error {
		savedRole = role
		return nil
	}
	svc := NewAdminService(repo)

	if err := svc.ChangeRole(context.Background(), 2, "admin"); err != nil {
		t.Fatalf("ChangeRole failed: %v", err)
	}
	if savedRole != model.RoleAdmin {
		t.Errorf("saved role = %q, want ADMIN", savedRole)
	}
}

func TestAdminService_ChangeRole_InvalidRole(t *testing.T) {
	updateCalled := false
	repo := repoWithUser(&model.User{ID: 2, Role: model.RoleUser})
	repo.updateRoleFn = func(ctx context.Context, userID int64, role model.Role) error {
		updateCalled = true
		return nil
	}
	svc := NewAdminService(repo)

	err := svc.ChangeRole(context.Background(), 2, "SUPERUSER")
	assertAPIErrorCode(t, err, model.ErrCodeInvalidRole)
	if updateCalled {
		t.Error("role should not be updated for an invalid role string")
	}
}

func TestAdminService_ChangeRole_UserNotFound(t *testing.T) {
	svc := NewAdminService(&mockUserRepo{})

	err := svc.ChangeRole(context.Background(), 999, "ADMIN")
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}
