package resolver

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/hitoshi/launchpad/internal/model"
)

// userResolver はユーザーのフィールドを解決する。
type userResolver struct {
	user *model.User
}

func (u *userResolver) ID() graphql.ID {
	return graphql.ID(u.user.ID)
}

func (u *userResolver) Email() string {
	return u.user.Email
}

// Trips はユーザーが予約済みの打ち上げを返す。
// 予約がない場合はバッチ照会を発行せず空のシーケンスを返す（nullではない）。
// 予約がある場合はIDを集めてから1回のバッチ呼び出しで全件を取得する。
// 順序はアダプタの返却順のまま、存在しないIDは黙って省かれる。
func (u *userResolver) Trips(ctx context.Context) ([]*launchResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := rc.Identity.ListBookedLaunchIDs(ctx, u.user.ID)
	if err != nil {
		return nil, model.NewBookingFailedError(err.Error())
	}
	if len(ids) == 0 {
		return []*launchResolver{}, nil
	}

	launches, err := rc.Catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, model.NewCatalogUnavailableError(err.Error())
	}

	return wrapLaunches(launches), nil
}

// tripUpdateResolver は予約ミューテーションの結果を解決する。
type tripUpdateResolver struct {
	success  bool
	message  *string
	launches []*model.Launch
}

func (t *tripUpdateResolver) Success() bool {
	return t.success
}

func (t *tripUpdateResolver) Message() *string {
	return t.message
}

func (t *tripUpdateResolver) Launches() *[]*launchResolver {
	if t.launches == nil {
		return nil
	}
	resolvers := wrapLaunches(t.launches)
	return &resolvers
}

// loginPayloadResolver はログイン結果を解決する。
type loginPayloadResolver struct {
	token string
	user  *userResolver
}

func (l *loginPayloadResolver) Token() string {
	return l.token
}

func (l *loginPayloadResolver) User() *userResolver {
	return l.user
}
