// Package identity はユーザー識別と予約エッジ管理のアダプタを提供する。
// find-or-createの一意性はデータベースの一意制約が単一の調停者として保証する。
package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hitoshi/launchpad/internal/model"
	"github.com/hitoshi/launchpad/internal/repository"
)

// BookingRecorder は予約操作のメトリクス記録インターフェース。
type BookingRecorder interface {
	RecordBookingCreated()
	RecordBookingCancelled()
	RecordUserCreated()
}

type nopRecorder struct{}

func (nopRecorder) RecordBookingCreated()   {}
func (nopRecorder) RecordBookingCancelled() {}
func (nopRecorder) RecordUserCreated()      {}

// Service はユーザーと予約の永続化を束ねる長命なサービス。
// リクエストごとの状態は持たず、リクエストスコープの操作はNewSessionで生成する。
type Service struct {
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	logger      *slog.Logger
	metrics     BookingRecorder
}

// NewService はServiceを生成する。recorderがnilの場合はメトリクスを記録しない。
func NewService(
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	logger *slog.Logger,
	recorder BookingRecorder,
) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		metrics:     recorder,
	}
}

// FindOrCreate はemailでユーザーを検索し、存在しなければ作成する。
// emailが空の場合は使い捨ての来訪者identityを新規作成する（開発・匿名フロー用）。
// 同一emailの同時呼び出しは一意制約により単一レコードに収束し、
// 競合に敗れた側は「検索成功」として既存レコードを受け取る。
func (s *Service) FindOrCreate(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		email = fmt.Sprintf("guest-%s@launchpad.local", uuid.New().String())
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの検索に失敗しました: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user, err := s.userRepo.FindOrCreateByEmail(ctx, uuid.New().String(), email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	s.logger.Info("new user created",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	s.metrics.RecordUserCreated()

	return user, nil
}

// AddBooking は予約エッジを追加する。既に予約済みの場合は何もしない（冪等）。
func (s *Service) AddBooking(ctx context.Context, userID, launchID string) error {
	if err := s.bookingRepo.Add(ctx, userID, launchID); err != nil {
		return err
	}
	s.metrics.RecordBookingCreated()
	return nil
}

// RemoveBooking は予約エッジを削除する。未予約の場合は何もしない（冪等）。
func (s *Service) RemoveBooking(ctx context.Context, userID, launchID string) error {
	if err := s.bookingRepo.Remove(ctx, userID, launchID); err != nil {
		return err
	}
	s.metrics.RecordBookingCancelled()
	return nil
}

// ListBookedLaunchIDs はユーザーの予約済み打ち上げID集合を返す。
func (s *Service) ListBookedLaunchIDs(ctx context.Context, userID string) ([]string, error) {
	return s.bookingRepo.ListLaunchIDsByUser(ctx, userID)
}
