// Package model はドメインモデルを定義する。
package model

import "time"

// Todo はタスクを表す。
// UserID（作成者）は作成時に確定し、以後変更されない。
// 作成者は作成と同一トランザクションで担当者としても登録されるため、
// タスクには常に1人以上の担当者が存在する。
type Todo struct {
	ID         int64
	Title      string
	Contents   string
	Weather    string // 作成時点の天気。外部APIから取得する。
	UserID     int64
	User       *User // 作成者。JOIN付き取得時のみ設定される。
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Manager はタスクの担当者を表す結合エンティティ。
// 「UserIDのユーザーがTodoIDのタスクを担当する」ことを意味する。
type Manager struct {
	ID        int64
	TodoID    int64
	UserID    int64
	User      *User // JOIN付き取得時のみ設定される。
	CreatedAt time.Time
}

// Comment はタスクへのコメントを表す。
type Comment struct {
	ID        int64
	Contents  string
	TodoID    int64
	UserID    int64
	User      *User // 投稿者。JOIN付き取得時のみ設定される。
	CreatedAt time.Time
}
