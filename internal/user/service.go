// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/password"
	"github.com/hitoshi/taskman/internal/repository"
)

// PasswordEncoder はパスワードのハッシュ化・照合インターフェース。
type PasswordEncoder interface {
	Hash(plain string) (string, error)
	Matches(plain, digest string) bool
}

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
	encoder  PasswordEncoder
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, encoder PasswordEncoder) *Service {
	return &Service{
		userRepo: userRepo,
		encoder:  encoder,
	}
}

// Get は指定IDのユーザーを取得する。
func (s *Service) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// ChangePassword は自分のパスワードを変更する。
// 新しいパスワードはポリシー（8文字以上、数字と大文字を含む）を満たし、
// 現在のパスワードと異なる必要がある。現在のパスワードの照合にも失敗すれば変更しない。
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if err := password.ValidatePolicy(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	if s.encoder.Matches(newPassword, user.Password) {
		return model.NewSamePasswordError()
	}

	if !s.encoder.Matches(oldPassword, user.Password) {
		return model.NewWrongPasswordError()
	}

	digest, err := s.encoder.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, digest); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed",
		slog.Int64("user_id", user.ID),
	)

	return nil
}
