package resolver

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/hitoshi/launchpad/internal/auth"
	"github.com/hitoshi/launchpad/internal/model"
)

// launchResolver は打ち上げ枠のフィールドを解決する。
type launchResolver struct {
	launch *model.Launch
}

func wrapLaunches(launches []*model.Launch) []*launchResolver {
	resolvers := make([]*launchResolver, len(launches))
	for i, l := range launches {
		resolvers[i] = &launchResolver{launch: l}
	}
	return resolvers
}

func (l *launchResolver) ID() graphql.ID {
	return graphql.ID(l.launch.ID)
}

func (l *launchResolver) Site() *string {
	if l.launch.Site == "" {
		return nil
	}
	return &l.launch.Site
}

func (l *launchResolver) Year() *string {
	if l.launch.Year == "" {
		return nil
	}
	return &l.launch.Year
}

func (l *launchResolver) Mission() *missionResolver {
	if l.launch.Mission == nil {
		return nil
	}
	return &missionResolver{mission: l.launch.Mission}
}

func (l *launchResolver) Rocket() *rocketResolver {
	if l.launch.Rocket == nil {
		return nil
	}
	return &rocketResolver{rocket: l.launch.Rocket}
}

// IsBooked は現在のユーザーがこの打ち上げを予約済みかを返す。
// 匿名では常にfalse。予約状態の読み取りはリクエスト内でメモ化されるため、
// リスト内の各打ち上げが個別に呼び出してもバッキングストアへの照会は1回で済む。
func (l *launchResolver) IsBooked(ctx context.Context) (bool, error) {
	rc := auth.FromContext(ctx)
	if rc == nil || rc.User == nil {
		return false, nil
	}

	ids, err := rc.Identity.ListBookedLaunchIDs(ctx, rc.User.ID)
	if err != nil {
		return false, model.NewBookingFailedError(err.Error())
	}

	for _, id := range ids {
		if id == l.launch.ID {
			return true, nil
		}
	}
	return false, nil
}

// missionResolver はミッションメタデータのフィールドを解決する。
type missionResolver struct {
	mission *model.Mission
}

func (m *missionResolver) Name() *string {
	if m.mission.Name == "" {
		return nil
	}
	return &m.mission.Name
}

// MissionPatch はミッションパッチ画像のURLを返す。サイズはデフォルトLARGE。
func (m *missionResolver) MissionPatch(args struct{ Size string }) *string {
	url := m.mission.PatchLargeURL
	if args.Size == "SMALL" {
		url = m.mission.PatchSmallURL
	}
	if url == "" {
		return nil
	}
	return &url
}

// rocketResolver はロケットのフィールドを解決する。
type rocketResolver struct {
	rocket *model.Rocket
}

func (r *rocketResolver) ID() graphql.ID {
	return graphql.ID(r.rocket.ID)
}

func (r *rocketResolver) Name() *string {
	if r.rocket.Name == "" {
		return nil
	}
	return &r.rocket.Name
}

func (r *rocketResolver) Type() *string {
	if r.rocket.Type == "" {
		return nil
	}
	return &r.rocket.Type
}
