// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// Role はユーザーの権限区分を表す。
// 権限は閉じた列挙であり、比較は常に等価判定で行う（階層比較はしない）。
type Role string

const (
	// RoleUser は一般ユーザー権限。
	RoleUser Role = "USER"
	// RoleAdmin は管理者権限。
	RoleAdmin Role = "ADMIN"
)

// ParseRole は文字列をRoleに変換する。
// サインアップ時の権限指定と管理者による権限変更の両方でこの関数を使用し、
// 検証ロジックを一本化する。未知の値にはINVALID_ROLEエラーを返す。
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", NewInvalidRoleError(s)
}

// User はサービス利用ユーザーを表す。
// EmailとIDは作成後に変更されない。Roleは管理者操作でのみ変更される。
type User struct {
	ID        int64
	Email     string
	Password  string // bcryptダイジェスト。平文は保持しない。
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity は検証済みトークンから得られるリクエスト単位の認証情報を表す。
// 認証ミドルウェアがリクエストごとに生成し、コンテキスト経由で伝搬する。
// 永続化されず、リクエスト終了とともに破棄される。
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin は管理者権限を持つかどうかを返す。
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
