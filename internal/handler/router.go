package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/taskman/internal/metrics"
	"github.com/hitoshi/taskman/internal/middleware"
)

// publicPrefixes は認証ミドルウェアを通過しないパスのプレフィックス。
var publicPrefixes = []string{"/auth", "/health", "/metrics"}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス
	MetricsCollector *metrics.Collector
	MetricsRegistry  *prometheus.Registry

	// 認証
	AuthService AuthServiceInterface

	// タスク
	TodoService TodoServiceInterface

	// 担当者
	ManagerService ManagerServiceInterface

	// コメント
	CommentService CommentServiceInterface

	// ユーザー
	UserService UserServiceInterface

	// 管理者専用操作
	AdminUserService    AdminUserServiceInterface
	AdminCommentService AdminCommentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Metrics → Recovery → Auth → (Authorize → Audit)
//
// 認証ゲートは /auth /health /metrics を素通しし、それ以外のルートでは
// 検証済みアイデンティティをコンテキストに注入する。管理者ルート（/admin/*）は
// さらに権限検証と監査ログのミドルウェアを重ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルート共通のミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(metrics.NewMiddleware(deps.MetricsCollector))
	r.Use(middleware.NewRecoveryMiddleware())

	authHandler := NewAuthHandler(deps.AuthService)
	todoHandler := NewTodoHandler(deps.TodoService)
	managerHandler := NewManagerHandler(deps.ManagerService)
	commentHandler := NewCommentHandler(deps.CommentService)
	userHandler := NewUserHandler(deps.UserService)
	adminHandler := NewAdminHandler(deps.AdminUserService, deps.AdminCommentService)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsRegistry))

	// 認証ルート（専用の厳しいレート制限を適用）
	r.Route("/auth", func(r chi.Router) {
		r.Use(deps.RateLimiter.AuthMiddleware())
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.MetricsCollector, publicPrefixes))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// タスク管理
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.ListTodos)
			r.Post("/", todoHandler.SaveTodo)

			r.Route("/{todoID}", func(r chi.Router) {
				r.Get("/", todoHandler.GetTodo)

				// 担当者管理
				r.Route("/managers", func(r chi.Router) {
					r.Get("/", managerHandler.ListManagers)
					r.Post("/", managerHandler.SaveManager)
					r.Delete("/{managerID}", managerHandler.DeleteManager)
				})

				// コメント管理
				r.Route("/comments", func(r chi.Router) {
					r.Get("/", commentHandler.ListComments)
					r.Post("/", commentHandler.SaveComment)
				})
			})
		})

		// ユーザー管理
		r.Route("/users", func(r chi.Router) {
			r.Put("/", userHandler.ChangePassword)
			r.Get("/{userID}", userHandler.GetUser)
		})

		// 管理者専用ルート
		// スタック: 権限検証 → 監査ログ
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NewAdminOnlyMiddleware())
			r.Use(middleware.NewAdminAuditMiddleware())

			r.Patch("/users/{userID}", adminHandler.ChangeUserRole)
			r.Delete("/comments/{commentID}", adminHandler.DeleteComment)
		})
	})

	return r
}
