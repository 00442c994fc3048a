package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/token"
)

// bearerPrefix はAuthorizationヘッダーのスキームプレフィックス。
const bearerPrefix = "Bearer "

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Codecの部分集合として定義する。
type TokenVerifier interface {
	Verify(raw string) (model.Identity, error)
}

// AuthFailureRecorder は認証失敗のメトリクス記録インターフェース。
// nilの場合は記録しない。
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// NewAuthMiddleware はBearerトークンを検証する認証ミドルウェアを返す。
//
// publicPrefixesに一致するパスは認証なしで通過させる（サインアップ・サインイン等）。
// それ以外のリクエストは次の順で処理する:
//
//  1. Authorizationヘッダーの取得。未提示は400（トークン必須）。
//  2. Bearerスキームの除去。プレフィックス欠落・空トークンは400。
//  3. トークンの検証。形式不正・署名不一致・期限切れは401。
//  4. 成功時は検証済みアイデンティティをリクエストコンテキストに注入して後続へ。
//
// 検証失敗時は後続のハンドラーを一切呼び出さない。
// このミドルウェアは永続状態を変更しない。
func NewAuthMiddleware(verifier TokenVerifier, recorder AuthFailureRecorder, publicPrefixes []string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. 公開パスは認証をスキップ
			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// 2. Authorizationヘッダーからトークンを取得
			header := r.Header.Get("Authorization")
			if header == "" {
				recordFailure(recorder, "missing")
				WriteErrorResponse(w, http.StatusBadRequest, model.NewTokenRequiredError())
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				recordFailure(recorder, "malformed_header")
				WriteErrorResponse(w, http.StatusBadRequest, model.NewTokenMalformedError())
				return
			}
			raw := strings.TrimPrefix(header, bearerPrefix)
			if raw == "" {
				recordFailure(recorder, "malformed_header")
				WriteErrorResponse(w, http.StatusBadRequest, model.NewTokenMalformedError())
				return
			}

			// 3. トークンを検証
			identity, err := verifier.Verify(raw)
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				switch {
				case errors.Is(err, token.ErrTokenExpired):
					recordFailure(recorder, "expired")
					WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenExpiredError())
				case errors.Is(err, token.ErrMalformedToken):
					// ヘッダー形式不正(400 TOKEN_MALFORMED)と区別し、
					// トークン本体の不正は資格情報不正として401で返す
					recordFailure(recorder, "malformed_token")
					WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenInvalidError())
				default:
					recordFailure(recorder, "invalid_signature")
					WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenInvalidError())
				}
				return
			}

			// 4. 検証済みアイデンティティをコンテキストに注入
			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func recordFailure(recorder AuthFailureRecorder, reason string) {
	if recorder != nil {
		recorder.RecordAuthFailure(reason)
	}
}
