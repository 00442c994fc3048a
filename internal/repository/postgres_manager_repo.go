package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresManagerRepo はPostgreSQLを使用した担当者リポジトリ。
type PostgresManagerRepo struct {
	db *sql.DB
}

// NewPostgresManagerRepo はPostgresManagerRepoを生成する。
func NewPostgresManagerRepo(db *sql.DB) *PostgresManagerRepo {
	return &PostgresManagerRepo{db: db}
}

// FindByID は指定IDの担当者を取得する。見つからない場合はnilを返す。
func (r *PostgresManagerRepo) FindByID(ctx context.Context, id int64) (*model.Manager, error) {
	manager := &model.Manager{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, todo_id, user_id, created_at FROM managers WHERE id = $1`,
		id,
	).Scan(&manager.ID, &manager.TodoID, &manager.UserID, &manager.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find manager by ID: %w", err)
	}

	return manager, nil
}

// ListByTodoIDWithUser は指定タスクの担当者一覧をユーザー情報付きで返す。
func (r *PostgresManagerRepo) ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]*model.Manager, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.todo_id, m.user_id, m.created_at,
		        u.id, u.email, u.role, u.created_at, u.updated_at
		 FROM managers m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.todo_id = $1
		 ORDER BY m.id`,
		todoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var managers []*model.Manager
	for rows.Next() {
		manager := &model.Manager{User: &model.User{}}
		if err := rows.Scan(&manager.ID, &manager.TodoID, &manager.UserID, &manager.CreatedAt,
			&manager.User.ID, &manager.User.Email, &manager.User.Role,
			&manager.User.CreatedAt, &manager.User.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan manager row: %w", err)
		}
		managers = append(managers, manager)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manager rows: %w", err)
	}

	return managers, nil
}

// Create は担当者を作成し、採番されたIDをmanager.IDに設定する。
func (r *PostgresManagerRepo) Create(ctx context.Context, manager *model.Manager) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO managers (todo_id, user_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		manager.TodoID, manager.UserID, manager.CreatedAt,
	).Scan(&manager.ID)
	if err != nil {
		// UNIQUE(todo_id, user_id)への二重登録は競合エラーとして返す
		if isUniqueViolation(err) {
			return model.NewDuplicateManagerError()
		}
		return fmt.Errorf("failed to insert manager: %w", err)
	}
	return nil
}

// Delete は指定IDの担当者を削除する。
func (r *PostgresManagerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM managers WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete manager: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("manager not found: %d", id)
	}
	return nil
}

// compile-time interface check
var _ ManagerRepository = (*PostgresManagerRepo)(nil)
