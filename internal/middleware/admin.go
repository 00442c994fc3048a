package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/taskman/internal/model"
)

// NewAdminOnlyMiddleware は管理者専用ルートの権限チェックミドルウェアを返す。
//
// 認証ミドルウェアが先行して実行されていることを前提とする。
// コンテキストにアイデンティティが存在しない場合はミドルウェアの構成ミス
// （プログラミングエラー）であり、デフォルトのアイデンティティで続行せず
// 当該リクエストのみ500で打ち切る。
// 認証済みだが管理者権限を持たないリクエストには403を返す。
func NewAdminOnlyMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := IdentityFromContext(r.Context())
			if err != nil {
				slog.Error("admin middleware invoked without identity context",
					slog.String("path", r.URL.Path),
				)
				WriteInternalServerError(w)
				return
			}

			if !identity.IsAdmin() {
				slog.Warn("admin route access denied",
					slog.Int64("user_id", identity.UserID),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewAdminRequiredError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
