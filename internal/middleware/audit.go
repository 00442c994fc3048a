package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// NewAdminAuditMiddleware は管理者操作の監査ログを出力するミドルウェアを返す。
//
// 認可チェック通過後・ハンドラー実行前に、誰がいつどのURLへアクセスしたかを
// 記録する。宣言的なインターセプトではなく、ルーターで明示的に
// 認証 → 認可 → 監査 → ハンドラー の順に合成して使用する。
func NewAdminAuditMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := IdentityFromContext(r.Context())
			if err != nil {
				// 認証・認可ミドルウェアが先行していない構成ミス
				slog.Error("audit middleware invoked without identity context",
					slog.String("path", r.URL.Path),
				)
				WriteInternalServerError(w)
				return
			}

			slog.Info("admin_request",
				slog.String("audit_id", uuid.New().String()),
				slog.Int64("user_id", identity.UserID),
				slog.Time("request_time", time.Now()),
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
			)

			next.ServeHTTP(w, r)
		})
	}
}
