package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// ListByTodoIDWithAuthor は指定タスクのコメント一覧を投稿者情報付きで返す。
func (r *PostgresCommentRepo) ListByTodoIDWithAuthor(ctx context.Context, todoID int64) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.contents, c.todo_id, c.user_id, c.created_at,
		        u.id, u.email, u.role, u.created_at, u.updated_at
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.todo_id = $1
		 ORDER BY c.id`,
		todoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		comment := &model.Comment{User: &model.User{}}
		if err := rows.Scan(&comment.ID, &comment.Contents, &comment.TodoID, &comment.UserID,
			&comment.CreatedAt,
			&comment.User.ID, &comment.User.Email, &comment.User.Role,
			&comment.User.CreatedAt, &comment.User.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}

	return comments, nil
}

// Create はコメントを作成し、採番されたIDをcomment.IDに設定する。
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comments (contents, todo_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		comment.Contents, comment.TodoID, comment.UserID, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのコメントを削除する。
// 削除した場合はtrue、対象が存在しない場合はfalse, nilを返す。
// 存在しないことはエラーではなく、ドメインエラーへの変換は呼び出し側サービスが行う。
func (r *PostgresCommentRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
