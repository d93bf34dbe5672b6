package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/hitoshi/launchpad/internal/auth"
	"github.com/hitoshi/launchpad/internal/model"
	"github.com/hitoshi/launchpad/internal/token"
)

// Resolver はクエリとミューテーションのルートリゾルバー。
// リクエストごとの状態は持たず、アダプタはリクエストコンテキストから取得する。
type Resolver struct {
	logger *slog.Logger
}

// New はルートリゾルバーを生成する。
func New(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// requestContext はコンテキストから解決済みリクエストコンテキストを取り出す。
// 認証ミドルウェアを経由しない呼び出しはプログラミングエラーとして扱う。
func requestContext(ctx context.Context) (*auth.RequestContext, error) {
	rc := auth.FromContext(ctx)
	if rc == nil {
		return nil, errors.New("リクエストコンテキストが初期化されていません")
	}
	return rc, nil
}

// Launches はカタログの全打ち上げを返す。
func (r *Resolver) Launches(ctx context.Context) ([]*launchResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}

	launches, err := rc.Catalog.ListAll(ctx)
	if err != nil {
		r.logger.Error("failed to list launches", slog.String("error", err.Error()))
		return nil, model.NewCatalogUnavailableError(err.Error())
	}

	return wrapLaunches(launches), nil
}

// Launch は指定IDの打ち上げを返す。存在しない場合はnull（エラーではない）。
func (r *Resolver) Launch(ctx context.Context, args struct{ ID graphql.ID }) (*launchResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}

	launch, err := rc.Catalog.GetByID(ctx, string(args.ID))
	if err != nil {
		r.logger.Error("failed to get launch",
			slog.String("launch_id", string(args.ID)),
			slog.String("error", err.Error()),
		)
		return nil, model.NewCatalogUnavailableError(err.Error())
	}
	if launch == nil {
		return nil, nil
	}

	return &launchResolver{launch: launch}, nil
}

// Me は解決済みユーザーを返す。匿名リクエストではnull（暗黙の作成はしない）。
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}
	if rc.User == nil {
		return nil, nil
	}
	return &userResolver{user: rc.User}, nil
}

// BookTrip は打ち上げを予約する。予約済みの場合は何も変わらない（冪等）。
// 匿名コンテキストではアダプタに触れず認可エラーを返す。
func (r *Resolver) BookTrip(ctx context.Context, args struct{ LaunchID graphql.ID }) (*tripUpdateResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}
	if rc.User == nil {
		return nil, model.NewUnauthenticatedError()
	}

	launchID := string(args.LaunchID)
	if err := rc.Identity.AddBooking(ctx, rc.User.ID, launchID); err != nil {
		r.logger.Error("failed to book trip",
			slog.String("user_id", rc.User.ID),
			slog.String("launch_id", launchID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBookingFailedError(err.Error())
	}

	launches, err := rc.Catalog.GetByIDs(ctx, []string{launchID})
	if err != nil {
		return nil, model.NewCatalogUnavailableError(err.Error())
	}

	resp := &tripUpdateResolver{success: true, launches: launches}
	if len(launches) == 0 {
		resp.message = strPtr(fmt.Sprintf("予約しましたが、打ち上げ %s はカタログに見つかりませんでした。", launchID))
	}
	return resp, nil
}

// BookTrips は複数の打ち上げをまとめて予約する。
// 一部の打ち上げがカタログに存在しない場合はmessageで報告する。
func (r *Resolver) BookTrips(ctx context.Context, args struct{ LaunchIDs []graphql.ID }) (*tripUpdateResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}
	if rc.User == nil {
		return nil, model.NewUnauthenticatedError()
	}

	ids := make([]string, len(args.LaunchIDs))
	for i, id := range args.LaunchIDs {
		ids[i] = string(id)
	}

	for _, id := range ids {
		if err := rc.Identity.AddBooking(ctx, rc.User.ID, id); err != nil {
			r.logger.Error("failed to book trip",
				slog.String("user_id", rc.User.ID),
				slog.String("launch_id", id),
				slog.String("error", err.Error()),
			)
			return nil, model.NewBookingFailedError(err.Error())
		}
	}

	launches, err := rc.Catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, model.NewCatalogUnavailableError(err.Error())
	}

	resp := &tripUpdateResolver{
		success:  len(launches) == len(ids),
		launches: launches,
	}
	if !resp.success {
		resp.message = strPtr("一部の打ち上げはカタログに見つかりませんでした。")
	}
	return resp, nil
}

// CancelTrip は予約をキャンセルする。未予約の場合は何も変わらない（冪等）。
func (r *Resolver) CancelTrip(ctx context.Context, args struct{ LaunchID graphql.ID }) (*tripUpdateResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}
	if rc.User == nil {
		return nil, model.NewUnauthenticatedError()
	}

	launchID := string(args.LaunchID)
	if err := rc.Identity.RemoveBooking(ctx, rc.User.ID, launchID); err != nil {
		r.logger.Error("failed to cancel trip",
			slog.String("user_id", rc.User.ID),
			slog.String("launch_id", launchID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewBookingFailedError(err.Error())
	}

	launches, err := rc.Catalog.GetByIDs(ctx, []string{launchID})
	if err != nil {
		return nil, model.NewCatalogUnavailableError(err.Error())
	}

	return &tripUpdateResolver{success: true, launches: launches}, nil
}

// Login はemailでユーザーを検索または作成し、新しいトークンを発行する。
// メールアドレスの形式が不正な場合はエラーではなくnullを返し、
// 呼び出し側が「不正な入力」と「システム障害」を区別できるようにする。
func (r *Resolver) Login(ctx context.Context, args struct{ Email string }) (*loginPayloadResolver, error) {
	rc, err := requestContext(ctx)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(args.Email)
	if !auth.ValidEmail(email) {
		r.logger.Warn("login rejected: invalid email format")
		return nil, nil
	}

	user, err := rc.Identity.FindOrCreate(ctx, email)
	if err != nil {
		r.logger.Error("login failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("ログイン処理に失敗しました: %w", err)
	}

	return &loginPayloadResolver{
		token: token.Encode(user.Email),
		user:  &userResolver{user: user},
	}, nil
}

func strPtr(s string) *string {
	return &s
}
