// Package auth はベアラートークンからのリクエストコンテキスト解決を提供する。
package auth

import (
	"context"

	"github.com/hitoshi/launchpad/internal/model"
)

// CatalogAdapter は打ち上げカタログへの読み取り操作を表す。
// catalog.Sessionが実装する。
type CatalogAdapter interface {
	// ListAll はカタログの全打ち上げを列挙する。
	ListAll(ctx context.Context) ([]*model.Launch, error)
	// GetByID は指定IDの打ち上げを取得する。見つからない場合はnilを返す。
	GetByID(ctx context.Context, id string) (*model.Launch, error)
	// GetByIDs は複数IDを1回の呼び出しで一括取得する。
	// 結果は高々1件/ID、存在しないIDは黙って省かれる。
	GetByIDs(ctx context.Context, ids []string) ([]*model.Launch, error)
}

// IdentityAdapter はユーザー識別と予約エッジの読み書き操作を表す。
// identity.Sessionが実装する。
type IdentityAdapter interface {
	// FindOrCreate はemailでユーザーを検索し、存在しなければ作成する。
	FindOrCreate(ctx context.Context, email string) (*model.User, error)
	// AddBooking は予約エッジを追加する（冪等）。
	AddBooking(ctx context.Context, userID, launchID string) error
	// RemoveBooking は予約エッジを削除する（冪等）。
	RemoveBooking(ctx context.Context, userID, launchID string) error
	// ListBookedLaunchIDs はユーザーの予約済み打ち上げID集合を返す。
	ListBookedLaunchIDs(ctx context.Context, userID string) ([]string, error)
}

// RequestContext は1リクエスト分の解決済みコンテキスト。
// 構築後はイミュータブルであり、リクエストを超えて共有・永続化してはならない。
// Userは未認証リクエストではnilになる（エラーではなく匿名コンテキスト）。
type RequestContext struct {
	User     *model.User
	Catalog  CatalogAdapter
	Identity IdentityAdapter
}

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// requestContextKey はリクエストコンテキストを格納するためのキー。
var requestContextKey = contextKey("request_context")

// WithRequestContext はコンテキストにRequestContextを注入する。
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext はコンテキストからRequestContextを取得する。
// 注入されていない場合はnilを返す。
func FromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// UserFromContext は解決済みユーザーを返す。未認証または未注入の場合はnil。
func UserFromContext(ctx context.Context) *model.User {
	rc := FromContext(ctx)
	if rc == nil {
		return nil
	}
	return rc.User
}
