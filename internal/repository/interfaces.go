// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail はメールアドレスが登録済みかどうかを返す。
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	Create(ctx context.Context, user *model.User) error

	// UpdatePassword は指定ユーザーのパスワードダイジェストを更新する。
	UpdatePassword(ctx context.Context, id int64, digest string) error

	// UpdateRole は指定ユーザーの権限を更新する。
	// 権限の変更はこの操作のみで行われる（暗黙の変更経路は存在しない）。
	UpdateRole(ctx context.Context, id int64, role model.Role) error
}

// TodoRepository はタスクデータの永続化インターフェース。
type TodoRepository interface {
	// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Todo, error)

	// FindByIDWithOwner は指定IDのタスクを作成者情報付きで取得する。
	// 見つからない場合はnilを返す。
	FindByIDWithOwner(ctx context.Context, id int64) (*model.Todo, error)

	// List はタスク一覧を更新日時の降順でページ指定取得する。
	// pageは1始まり。
	List(ctx context.Context, page, size int) ([]*model.Todo, error)

	// CreateWithOwnerManager はタスクと作成者の担当者レコードを
	// 同一トランザクションで作成する。採番されたIDをtodo.IDに設定する。
	// タスクには常に1人以上の担当者（作成者）が存在するという不変条件を
	// 作成時点から保証する。
	CreateWithOwnerManager(ctx context.Context, todo *model.Todo) error
}

// ManagerRepository は担当者データの永続化インターフェース。
type ManagerRepository interface {
	// FindByID は指定IDの担当者を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Manager, error)

	// ListByTodoIDWithUser は指定タスクの担当者一覧をユーザー情報付きで返す。
	ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]*model.Manager, error)

	// Create は担当者を作成し、採番されたIDをmanager.IDに設定する。
	Create(ctx context.Context, manager *model.Manager) error

	// Delete は指定IDの担当者を削除する。
	Delete(ctx context.Context, id int64) error
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// ListByTodoIDWithAuthor は指定タスクのコメント一覧を投稿者情報付きで返す。
	ListByTodoIDWithAuthor(ctx context.Context, todoID int64) ([]*model.Comment, error)

	// Create はコメントを作成し、採番されたIDをcomment.IDに設定する。
	Create(ctx context.Context, comment *model.Comment) error

	// DeleteByID は指定IDのコメントを削除する。
	// 削除した場合はtrue、対象が存在しない場合はfalse, nilを返す。
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
