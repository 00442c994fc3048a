// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 機械可読なコードと、ユーザーに表示する原因カテゴリ・対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, authz, validation, conflict, upstream, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	// 認証（credential自体の問題）
	ErrCodeTokenRequired  = "TOKEN_REQUIRED"
	ErrCodeTokenMalformed = "TOKEN_MALFORMED"
	ErrCodeTokenInvalid   = "TOKEN_INVALID"
	ErrCodeTokenExpired   = "TOKEN_EXPIRED"
	ErrCodeWrongPassword  = "WRONG_PASSWORD"

	// 認可（所有・担当の不変条件）
	ErrCodeAdminRequired    = "ADMIN_REQUIRED"
	ErrCodeOwnerMissing     = "OWNER_MISSING"
	ErrCodeNotOwner         = "NOT_OWNER"
	ErrCodeCandidateIsOwner = "CANDIDATE_IS_OWNER"
	ErrCodeManagerNotInTodo = "MANAGER_NOT_IN_TODO"
	ErrCodeNotManager       = "NOT_MANAGER"

	// 入力検証
	ErrCodeInvalidRole     = "INVALID_ROLE"
	ErrCodeInvalidPassword = "INVALID_PASSWORD"
	ErrCodeSamePassword    = "SAME_PASSWORD"

	// エンティティ未検出
	ErrCodeUserNotFound    = "USER_NOT_FOUND"
	ErrCodeTodoNotFound    = "TODO_NOT_FOUND"
	ErrCodeManagerNotFound = "MANAGER_NOT_FOUND"
	ErrCodeCommentNotFound = "COMMENT_NOT_FOUND"

	// 競合
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeDuplicateManager = "DUPLICATE_MANAGER"

	// 外部コラボレーター
	ErrCodeWeatherUnavailable = "WEATHER_UNAVAILABLE"
)

// NewTokenRequiredError はトークン未提示エラーを生成する。
func NewTokenRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenRequired,
		Message:  "JWTトークンが必要です。",
		Category: "auth",
		Action:   "AuthorizationヘッダーにBearerトークンを設定してください。",
	}
}

// NewTokenMalformedError はトークン形式不正エラーを生成する。
func NewTokenMalformedError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenMalformed,
		Message:  "JWTトークンの形式が不正です。",
		Category: "auth",
		Action:   "再度サインインしてトークンを取得し直してください。",
	}
}

// NewTokenInvalidError は署名検証失敗エラーを生成する。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenInvalid,
		Message:  "有効でないJWT署名です。",
		Category: "auth",
		Action:   "再度サインインしてトークンを取得し直してください。",
	}
}

// NewTokenExpiredError はトークン期限切れエラーを生成する。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenExpired,
		Message:  "JWTトークンの有効期限が切れています。",
		Category: "auth",
		Action:   "再度サインインしてトークンを取得し直してください。",
	}
}

// NewAdminRequiredError は管理者権限不足エラーを生成する。
func NewAdminRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeAdminRequired,
		Message:  "管理者権限がありません。",
		Category: "authz",
		Action:   "管理者アカウントでサインインしてください。",
	}
}

// NewOwnerMissingError はタスク作成者情報の欠落エラーを生成する。
// 一貫性のあるストアでは発生しないはずの防御的エラー。
func NewOwnerMissingError() *APIError {
	return &APIError{
		Code:     ErrCodeOwnerMissing,
		Message:  "タスクの作成者情報が不正です。",
		Category: "authz",
		Action:   "タスクIDを確認してください。",
	}
}

// NewNotOwnerError は作成者以外による担当者操作のエラーを生成する。
func NewNotOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeNotOwner,
		Message:  "担当者の登録・削除はタスクを作成した本人のみが行えます。",
		Category: "authz",
		Action:   "タスクの作成者に操作を依頼してください。",
	}
}

// NewCandidateIsOwnerError は作成者自身の担当者登録エラーを生成する。
func NewCandidateIsOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeCandidateIsOwner,
		Message:  "タスクの作成者は自分自身を担当者として登録できません。",
		Category: "conflict",
		Action:   "作成者以外のユーザーを担当者に指定してください。",
	}
}

// NewManagerNotInTodoError はタスクと担当者の不一致エラーを生成する。
func NewManagerNotInTodoError() *APIError {
	return &APIError{
		Code:     ErrCodeManagerNotInTodo,
		Message:  "指定された担当者はこのタスクに登録されていません。",
		Category: "authz",
		Action:   "タスクIDと担当者IDの組み合わせを確認してください。",
	}
}

// NewNotManagerError は担当者以外によるコメント投稿のエラーを生成する。
func NewNotManagerError() *APIError {
	return &APIError{
		Code:     ErrCodeNotManager,
		Message:  "コメントを投稿できるのはタスクの担当者のみです。",
		Category: "authz",
		Action:   "タスクの作成者に担当者登録を依頼してください。",
	}
}

// NewInvalidRoleError は無効な権限文字列のエラーを生成する。
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("有効でないユーザー権限です: %s", role),
		Category: "validation",
		Action:   "権限には USER または ADMIN を指定してください。",
	}
}

// NewInvalidPasswordError はパスワードポリシー違反のエラーを生成する。
func NewInvalidPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPassword,
		Message:  "パスワードは8文字以上で、数字と大文字を含む必要があります。",
		Category: "validation",
		Action:   "ポリシーを満たすパスワードを指定してください。",
	}
}

// NewSamePasswordError は新旧パスワード同一のエラーを生成する。
func NewSamePasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeSamePassword,
		Message:  "新しいパスワードは現在のパスワードと同じにできません。",
		Category: "validation",
		Action:   "現在と異なるパスワードを指定してください。",
	}
}

// NewWrongPasswordError はパスワード不一致のエラーを生成する。
func NewWrongPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongPassword,
		Message:  "パスワードが正しくありません。",
		Category: "auth",
		Action:   "パスワードを確認して再度お試しください。",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "指定されたユーザーが見つかりません。",
		Category: "validation",
		Action:   "ユーザーIDまたはメールアドレスを確認してください。",
	}
}

// NewTodoNotFoundError はタスク未検出エラーを生成する。
func NewTodoNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeTodoNotFound,
		Message:  "指定されたタスクが見つかりません。",
		Category: "validation",
		Action:   "タスクIDを確認してください。",
	}
}

// NewManagerNotFoundError は担当者未検出エラーを生成する。
func NewManagerNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeManagerNotFound,
		Message:  "指定された担当者が見つかりません。",
		Category: "validation",
		Action:   "担当者IDを確認してください。",
	}
}

// NewCommentNotFoundError はコメント未検出エラーを生成する。
func NewCommentNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  "指定されたコメントが見つかりません。",
		Category: "validation",
		Action:   "コメントIDを確認してください。",
	}
}

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "既に登録されているメールアドレスです。",
		Category: "conflict",
		Action:   "別のメールアドレスで登録するか、サインインしてください。",
	}
}

// NewDuplicateManagerError は担当者の重複登録エラーを生成する。
func NewDuplicateManagerError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateManager,
		Message:  "このユーザーは既にタスクの担当者です。",
		Category: "conflict",
		Action:   "担当者一覧を確認してください。",
	}
}

// NewWeatherUnavailableError は天気データ取得失敗エラーを生成する。
func NewWeatherUnavailableError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeWeatherUnavailable,
		Message:  fmt.Sprintf("天気データを取得できませんでした: %s", reason),
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
