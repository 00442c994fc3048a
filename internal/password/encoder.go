// Package password はパスワードのハッシュ化と検証を提供する。
package password

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/taskman/internal/model"
)

// Encoder はbcryptによるパスワードのハッシュ化と照合を行う。
type Encoder struct {
	cost int
}

// NewEncoder はデフォルトコストのEncoderを生成する。
func NewEncoder() *Encoder {
	return &Encoder{cost: bcrypt.DefaultCost}
}

// Hash は平文パスワードのbcryptダイジェストを返す。
func (e *Encoder) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), e.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Matches は平文パスワードがダイジェストと一致するかを返す。
func (e *Encoder) Matches(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

var (
	hasDigit = regexp.MustCompile(`[0-9]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
)

// ValidatePolicy はパスワードポリシーを検証する。
// ポリシー: 8文字以上、数字を含む、大文字を含む。
// サインアップ時とパスワード変更時の両方で同じ検証を使用する。
func ValidatePolicy(plain string) error {
	if len(plain) < 8 || !hasDigit.MatchString(plain) || !hasUpper.MatchString(plain) {
		return model.NewInvalidPasswordError()
	}
	return nil
}
