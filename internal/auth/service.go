// Package auth はサインアップ・サインインの認証フローを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/taskman/internal/authz"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/password"
	"github.com/hitoshi/taskman/internal/repository"
)

// TokenIssuer はトークン発行に必要なインターフェース。
// token.Codecの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID int64, email string, role model.Role) (string, error)
}

// PasswordEncoder はパスワードのハッシュ化・照合インターフェース。
type PasswordEncoder interface {
	Hash(plain string) (string, error)
	Matches(plain, digest string) bool
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	encoder  PasswordEncoder
	issuer   TokenIssuer
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, encoder PasswordEncoder, issuer TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		encoder:  encoder,
		issuer:   issuer,
	}
}

// Signup は新規ユーザーを登録し、Bearerトークンを発行する。
// メールアドレスの重複、無効な権限文字列、パスワードポリシー違反の場合は失敗する。
func (s *Service) Signup(ctx context.Context, email, plainPassword, roleStr string) (string, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return "", model.NewDuplicateEmailError()
	}

	// 権限の検証はサインアップと管理者の権限変更で同一の経路を使う
	role, apiErr := authz.ValidateRole(roleStr)
	if apiErr != nil {
		return "", apiErr
	}

	if err := password.ValidatePolicy(plainPassword); err != nil {
		return "", err
	}

	digest, err := s.encoder.Hash(plainPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Email:     email,
		Password:  digest,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user signed up",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	bearerToken, err := s.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return bearerToken, nil
}

// Signin は登録済みユーザーを認証し、Bearerトークンを発行する。
// 未登録のメールアドレスまたはパスワード不一致の場合は失敗する。
func (s *Service) Signin(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return "", model.NewUserNotFoundError()
	}

	if !s.encoder.Matches(plainPassword, user.Password) {
		return "", model.NewWrongPasswordError()
	}

	slog.Info("user signed in",
		slog.Int64("user_id", user.ID),
	)

	bearerToken, err := s.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return bearerToken, nil
}
