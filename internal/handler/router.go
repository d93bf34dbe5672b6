// Package handler はHTTPルーティングとGraphQLエンドポイントの公開を提供する。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/hitoshi/launchpad/internal/auth"
	"github.com/hitoshi/launchpad/internal/middleware"
)

// Pinger はバッキングストアの疎通確認インターフェース。*sql.DBが満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// GraphQL
	Schema *graphql.Schema

	// ミドルウェア依存
	CORSAllowedOrigin  string
	RateLimiter        *middleware.RateLimiter
	NewCatalogSession  func() auth.CatalogAdapter
	NewIdentitySession func() auth.IdentityAdapter

	// 可観測性
	Logger          *slog.Logger
	MetricsRecorder middleware.HTTPRecorder
	MetricsHandler  http.Handler

	// ヘルスチェック
	DB Pinger
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → Recovery → Logging → Metrics →（/graphqlのみ）AuthContext → RateLimit
//
// /health・/metrics・GraphiQLページは認証コンテキストの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}

	// --- 認証不要のルート ---

	r.Get("/health", newHealthHandler(deps.DB))

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// 開発用のGraphiQLページ
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(graphiqlPage)
	})

	// --- GraphQLエンドポイント ---
	// ミドルウェアスタック: AuthContext → RateLimit
	// レート制限は解決済みユーザーをキーにするため認証コンテキストの後に置く。
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthContextMiddleware(deps.NewCatalogSession, deps.NewIdentitySession))
		r.Use(deps.RateLimiter.Middleware())

		r.Handle("/graphql", &relay.Handler{Schema: deps.Schema})
	})

	return r
}

// newHealthHandler はデータベース疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if db == nil {
			status = "unavailable"
			code = http.StatusServiceUnavailable
		} else if err := db.PingContext(ctx); err != nil {
			status = "unavailable"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
