// Package token は署名付きアイデンティティトークンの発行と検証を提供する。
//
// トークンはHS256署名のJWTで、ユーザーID・メールアドレス・権限と有効期限を
// 自己完結的に保持する。サーバー側セッションストアは持たず、トークンの有効性は
// 検証時点の署名と有効期限のみで決まる。
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/taskman/internal/model"
)

// 検証失敗の原因を区別するためのエラー値。
// 呼び出し側（認証ミドルウェア）がHTTPステータスへの変換に使用する。
var (
	// ErrMalformedToken はトークンの構造が不正な場合のエラー。
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidSignature は署名検証に失敗した場合のエラー。
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired はトークンの有効期限が切れている場合のエラー。
	ErrTokenExpired = errors.New("token expired")
)

// Claims はトークンに埋め込むアイデンティティ情報。
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec はトークンの発行と検証を行う。
// 署名鍵と有効期間は構築時に注入し、以後変更しない。
// 共有可変状態を持たないため、複数ゴルーチンから同時に使用できる。
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // テスト用に差し替え可能
}

// NewCodec はCodecを生成する。
// ttlは発行時刻からの有効期間を指定する。
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue は指定されたアイデンティティのトークンを発行する。
// 有効期限は発行時刻 + ttl。
func (c *Codec) Issue(userID int64, email string, role model.Role) (string, error) {
	now := c.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、埋め込まれたアイデンティティを返す。
// ストレージへの問い合わせは行わず、署名が有効であればトークンの内容を信頼する。
// 失敗時はErrMalformedToken、ErrInvalidSignature、ErrTokenExpiredのいずれかを返す。
func (c *Codec) Verify(raw string) (model.Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{},
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return model.Identity{}, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.Identity{}, ErrTokenExpired
		default:
			// 署名不一致、署名方式の不正などはすべて署名エラーとして扱う
			return model.Identity{}, ErrInvalidSignature
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return model.Identity{}, ErrMalformedToken
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Identity{}, ErrMalformedToken
	}

	return model.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
