// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/launchpad/internal/auth"
	"github.com/hitoshi/launchpad/internal/model"
	"github.com/hitoshi/launchpad/internal/token"
)

// NewAuthContextMiddleware はAuthorizationヘッダーのベアラートークンから
// リクエストコンテキストを構築するミドルウェアを返す。
//
// トークンが欠落・不正・メール形式でない場合は匿名コンテキストとして処理を継続する
// （公開フィールドは匿名でも提供されるため、この層では失敗にしない）。
// 一方、identityアダプタの障害は「未ログイン」に偽装せず500として返す。
// アダプタセッションはリクエストごとに生成し、リクエスト終了とともに破棄される。
func NewAuthContextMiddleware(
	newCatalog func() auth.CatalogAdapter,
	newIdentity func() auth.IdentityAdapter,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			catalogSession := newCatalog()
			identitySession := newIdentity()

			// 1. ヘッダーからトークンを取り出す（"Bearer "プレフィックスは任意）
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			raw = strings.TrimPrefix(raw, "Bearer ")

			// 2. トークンをメールアドレス候補に復元し、形式を検証する
			var user *model.User
			if email := token.Decode(raw); auth.ValidEmail(email) {
				// 3. find-or-create。同一トークンの同時リクエストは
				//    一意制約により単一ユーザーレコードに収束する。
				resolved, err := identitySession.FindOrCreate(r.Context(), email)
				if err != nil {
					slog.Error("failed to resolve request identity",
						slog.String("error", err.Error()),
					)
					WriteInternalServerError(w)
					return
				}
				user = resolved
			}

			// 4. 解決済みコンテキストを注入する（以降イミュータブル）
			rc := &auth.RequestContext{
				User:     user,
				Catalog:  catalogSession,
				Identity: identitySession,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithRequestContext(r.Context(), rc)))
		})
	}
}
