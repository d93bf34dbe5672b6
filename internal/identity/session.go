package identity

import (
	"context"
	"sync"

	"github.com/hitoshi/launchpad/internal/model"
)

// Session はリクエストスコープのidentityアダプタ。
// 同一リクエスト内で繰り返し参照される予約ID集合をユーザーごとにメモ化する。
// 予約の変更時はメモを破棄し、同一リクエスト内の後続の読み取りと一貫させる。
// キャッシュの寿命はリクエストと同じであり、リクエストを超えて共有してはならない。
type Session struct {
	service *Service

	mu        sync.Mutex
	bookedIDs map[string][]string // userID -> 予約済み打ち上げID
}

// NewSession はSessionを生成する。リクエストごとに1つ生成すること。
func (s *Service) NewSession() *Session {
	return &Session{
		service:   s,
		bookedIDs: make(map[string][]string),
	}
}

// FindOrCreate はServiceのFindOrCreateに委譲する。
func (s *Session) FindOrCreate(ctx context.Context, email string) (*model.User, error) {
	return s.service.FindOrCreate(ctx, email)
}

// AddBooking は予約を追加し、当該ユーザーのメモを破棄する。
func (s *Session) AddBooking(ctx context.Context, userID, launchID string) error {
	if err := s.service.AddBooking(ctx, userID, launchID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.bookedIDs, userID)
	s.mu.Unlock()
	return nil
}

// RemoveBooking は予約を削除し、当該ユーザーのメモを破棄する。
func (s *Session) RemoveBooking(ctx context.Context, userID, launchID string) error {
	if err := s.service.RemoveBooking(ctx, userID, launchID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.bookedIDs, userID)
	s.mu.Unlock()
	return nil
}

// ListBookedLaunchIDs はユーザーの予約済み打ち上げID集合を返す。
// 同一リクエスト内の2回目以降はメモ化結果を返す。
func (s *Session) ListBookedLaunchIDs(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	if ids, ok := s.bookedIDs[userID]; ok {
		s.mu.Unlock()
		return ids, nil
	}
	s.mu.Unlock()

	ids, err := s.service.ListBookedLaunchIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.bookedIDs[userID] = ids
	s.mu.Unlock()
	return ids, nil
}
