package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskman/internal/authz"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// AdminService は管理者専用のユーザー操作を提供する。
type AdminService struct {
	userRepo repository.UserRepository
}

// NewAdminService はAdminServiceを生成する。
func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

// ChangeRole は指定ユーザーの権限を変更する。
// 権限の変更はこの操作のみで行われる。権限文字列の検証は
// サインアップ時と同一の検証経路（authz.ValidateRole）を使う。
func (s *AdminService) ChangeRole(ctx context.Context, userID int64, roleStr string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	role, apiErr := authz.ValidateRole(roleStr)
	if apiErr != nil {
		return apiErr
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	slog.Info("user role changed",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(role)),
	)

	return nil
}
