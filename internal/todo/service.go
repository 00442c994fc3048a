// Package todo はタスク管理のドメインロジックを提供する。
package todo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/security"
)

// WeatherClient は天気取得のインターフェース。
type WeatherClient interface {
	GetTodayWeather(ctx context.Context) (string, error)
}

// Service はタスク管理のサービス層。
type Service struct {
	todoRepo  repository.TodoRepository
	weather   WeatherClient
	sanitizer security.ContentSanitizer
}

// NewService はServiceを生成する。
func NewService(todoRepo repository.TodoRepository, weather WeatherClient, sanitizer security.ContentSanitizer) *Service {
	return &Service{
		todoRepo:  todoRepo,
		weather:   weather,
		sanitizer: sanitizer,
	}
}

// Save は新しいタスクを作成する。
// 作成時点の天気を外部APIから取得して記録する。天気取得の失敗はそのまま伝搬する。
// 作成者は同一トランザクションで担当者としても登録される。
func (s *Service) Save(ctx context.Context, requester model.Identity, title, contents string) (*model.Todo, error) {
	weather, err := s.weather.GetTodayWeather(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	todo := &model.Todo{
		Title:      s.sanitizer.Sanitize(title),
		Contents:   s.sanitizer.Sanitize(contents),
		Weather:    weather,
		UserID:     requester.UserID,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.todoRepo.CreateWithOwnerManager(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	slog.Info("todo created",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("user_id", requester.UserID),
	)

	return todo, nil
}

// List はタスク一覧を更新日時の降順でページ指定取得する。pageは1始まり。
func (s *Service) List(ctx context.Context, page, size int) ([]*model.Todo, error) {
	todos, err := s.todoRepo.List(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get は指定IDのタスクを作成者情報付きで取得する。
func (s *Service) Get(ctx context.Context, todoID int64) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByIDWithOwner(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if todo == nil {
		return nil, model.NewTodoNotFoundError()
	}
	return todo, nil
}
