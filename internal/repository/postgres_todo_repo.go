package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresTodoRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTodoRepo struct {
	db *sql.DB
}

// NewPostgresTodoRepo はPostgresTodoRepoを生成する。
func NewPostgresTodoRepo(db *sql.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
func (r *PostgresTodoRepo) FindByID(ctx context.Context, id int64) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, contents, weather, user_id, created_at, modified_at
		 FROM todos WHERE id = $1`,
		id,
	).Scan(&todo.ID, &todo.Title, &todo.Contents, &todo.Weather, &todo.UserID,
		&todo.CreatedAt, &todo.ModifiedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo by ID: %w", err)
	}

	return todo, nil
}

// FindByIDWithOwner は指定IDのタスクを作成者情報付きで取得する。
// 見つからない場合はnilを返す。
func (r *PostgresTodoRepo) FindByIDWithOwner(ctx context.Context, id int64) (*model.Todo, error) {
	todo := &model.Todo{User: &model.User{}}
	err := r.db.QueryRowContext(ctx,
		`SELECT t.id, t.title, t.contents, t.weather, t.user_id, t.created_at, t.modified_at,
		        u.id, u.email, u.role, u.created_at, u.updated_at
		 FROM todos t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1`,
		id,
	).Scan(&todo.ID, &todo.Title, &todo.Contents, &todo.Weather, &todo.UserID,
		&todo.CreatedAt, &todo.ModifiedAt,
		&todo.User.ID, &todo.User.Email, &todo.User.Role,
		&todo.User.CreatedAt, &todo.User.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo with owner: %w", err)
	}

	return todo, nil
}

// List はタスク一覧を更新日時の降順でページ指定取得する。pageは1始まり。
func (r *PostgresTodoRepo) List(ctx context.Context, page, size int) ([]*model.Todo, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size

	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.title, t.contents, t.weather, t.user_id, t.created_at, t.modified_at,
		        u.id, u.email, u.role, u.created_at, u.updated_at
		 FROM todos t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.modified_at DESC
		 LIMIT $1 OFFSET $2`,
		size, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*model.Todo
	for rows.Next() {
		todo := &model.Todo{User: &model.User{}}
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Contents, &todo.Weather, &todo.UserID,
			&todo.CreatedAt, &todo.ModifiedAt,
			&todo.User.ID, &todo.User.Email, &todo.User.Role,
			&todo.User.CreatedAt, &todo.User.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todo rows: %w", err)
	}

	return todos, nil
}

// CreateWithOwnerManager はタスクと作成者の担当者レコードを
// 同一トランザクションで作成する。
func (r *PostgresTodoRepo) CreateWithOwnerManager(ctx context.Context, todo *model.Todo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// タスクを作成
	err = tx.QueryRowContext(ctx,
		`INSERT INTO todos (title, contents, weather, user_id, created_at, modified_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		todo.Title, todo.Contents, todo.Weather, todo.UserID, todo.CreatedAt, todo.ModifiedAt,
	).Scan(&todo.ID)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	// 作成者を担当者として登録
	_, err = tx.ExecContext(ctx,
		`INSERT INTO managers (todo_id, user_id, created_at)
		 VALUES ($1, $2, $3)`,
		todo.ID, todo.UserID, todo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert owner manager: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ TodoRepository = (*PostgresTodoRepo)(nil)
