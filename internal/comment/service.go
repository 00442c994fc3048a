// Package comment はタスクコメントのドメインロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/taskman/internal/authz"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/security"
)

// Service はコメントのサービス層。
type Service struct {
	commentRepo repository.CommentRepository
	todoRepo    repository.TodoRepository
	managerRepo repository.ManagerRepository
	sanitizer   security.ContentSanitizer
}

// NewService はServiceを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	todoRepo repository.TodoRepository,
	managerRepo repository.ManagerRepository,
	sanitizer security.ContentSanitizer,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		todoRepo:    todoRepo,
		managerRepo: managerRepo,
		sanitizer:   sanitizer,
	}
}

// Save はタスクにコメントを投稿する。
// 投稿できるのはタスクの担当者のみ。作成者はタスク作成時に担当者として
// 登録されているため、作成者の特別扱いは不要。
func (s *Service) Save(ctx context.Context, requester model.Identity, todoID int64, contents string) (*model.Comment, error) {
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

	if denied := authz.CanAuthorComment(requester, managers); denied != nil {
		return nil, denied
	}

	comment := &model.Comment{
		Contents:  s.sanitizer.Sanitize(contents),
		TodoID:    todo.ID,
		UserID:    requester.UserID,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("todo_id", todo.ID),
		slog.Int64("user_id", requester.UserID),
	)

	return comment, nil
}

// List は指定タスクのコメント一覧を投稿者情報付きで返す。
func (s *Service) List(ctx context.Context, todoID int64) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByTodoIDWithAuthor(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AdminService は管理者専用のコメント操作を提供する。
type AdminService struct {
	commentRepo repository.CommentRepository
}

// NewAdminService はAdminServiceを生成する。
func NewAdminService(commentRepo repository.CommentRepository) *AdminService {
	return &AdminService{commentRepo: commentRepo}
}

// Delete は指定IDのコメントを強制削除する。
// 対象のコメントが存在しない場合はコメント未検出エラーを返す。
// 管理者ルートの認可とログ記録はミドルウェアで行われる。
func (s *AdminService) Delete(ctx context.Context, commentID int64) error {
	deleted, err := s.commentRepo.DeleteByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return model.NewCommentNotFoundError()
	}

	slog.Info("comment deleted by admin",
		slog.Int64("comment_id", commentID),
	)

	return nil
}
