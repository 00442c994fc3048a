// Package manager はタスク担当者管理のドメインロジックを提供する。
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/taskman/internal/authz"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// Service は担当者管理のサービス層。
// 所有不変条件の判定はauthzパッケージに委譲し、このサービスは
// エンティティの取得と永続化のみを担う。判定 → 永続化の順序は固定で、
// 判定前に永続状態を変更することはない。
type Service struct {
	managerRepo repository.ManagerRepository
	todoRepo    repository.TodoRepository
	userRepo    repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(
	managerRepo repository.ManagerRepository,
	todoRepo repository.TodoRepository,
	userRepo repository.UserRepository,
) *Service {
	return &Service{
		managerRepo: managerRepo,
		todoRepo:    todoRepo,
		userRepo:    userRepo,
	}
}

// Save はタスクに担当者を登録する。
// タスクの作成者のみが登録でき、作成者自身は担当者に指定できない。
func (s *Service) Save(ctx context.Context, requester model.Identity, todoID, managerUserID int64) (*model.Manager, error) {
	todo, err := s.todoRepo.FindByIDWithOwner(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if todo == nil {
		return nil, model.NewTodoNotFoundError()
	}

	candidate, err := s.userRepo.FindByID(ctx, managerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate user: %w", err)
	}
	if candidate == nil {
		return nil, model.NewUserNotFoundError()
	}

	if denied := authz.CanAssignManager(requester, todo, candidate); denied != nil {
		return nil, denied
	}

	manager := &model.Manager{
		TodoID:    todo.ID,
		UserID:    candidate.ID,
		User:      candidate,
		CreatedAt: time.Now(),
	}
	if err := s.managerRepo.Create(ctx, manager); err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	slog.Info("manager assigned",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("manager_user_id", candidate.ID),
		slog.Int64("requester_user_id", requester.UserID),
	)

	return manager, nil
}

// List は指定タスクの担当者一覧をユーザー情報付きで返す。
func (s *Service) List(ctx context.Context, todoID int64) ([]*model.Manager, error) {
	todo, err := s.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if todo == nil {
		return nil, model.NewTodoNotFoundError()
	}

	managers, err := s.managerRepo.ListByTodoIDWithUser(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	return managers, nil
}

// Delete はタスクから担当者を削除する。
// タスクの作成者のみが削除でき、担当者はリクエストで指定されたタスクに
// 実際に属していなければならない。
func (s *Service) Delete(ctx context.Context, requesterUserID, todoID, managerID int64) error {
	requester, err := s.userRepo.FindByID(ctx, requesterUserID)
	if err != nil {
		return fmt.Errorf("failed to find requester: %w", err)
	}
	if requester == nil {
		return model.NewUserNotFoundError()
	}

	todo, err := s.todoRepo.FindByIDWithOwner(ctx, todoID)
	if err != nil {
		return fmt.Errorf("failed to find todo: %w", err)
	}
	if todo == nil {
		return model.NewTodoNotFoundError()
	}

	manager, err := s.managerRepo.FindByID(ctx, managerID)
	if err != nil {
		return fmt.Errorf("failed to find manager: %w", err)
	}
	if manager == nil {
		return model.NewManagerNotFoundError()
	}

	if denied := authz.CanRemoveManager(requester.ID, todo, manager); denied != nil {
		return denied
	}

	if err := s.managerRepo.Delete(ctx, manager.ID); err != nil {
		return fmt.Errorf("failed to delete manager: %w", err)
	}

	slog.Info("manager removed",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("manager_id", manager.ID),
		slog.Int64("requester_user_id", requesterUserID),
	)

	return nil
}
