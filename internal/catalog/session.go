package catalog

import (
	"context"
	"sync"

	"github.com/hitoshi/launchpad/internal/model"
)

// Source はカタログの読み取り操作を表す。Clientが実装する。
type Source interface {
	ListAll(ctx context.Context) ([]*model.Launch, error)
	GetByID(ctx context.Context, id string) (*model.Launch, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Launch, error)
}

// Session はリクエストスコープのカタログアダプタ。
// 1リクエスト内の重複呼び出しを避けるため、参照キーごとにメモ化する。
// 兄弟フィールドは並行に解決されるためロックで保護する。
// キャッシュの寿命はリクエストと同じであり、リクエストを超えて共有してはならない。
type Session struct {
	source Source

	mu        sync.Mutex
	byID      map[string]*model.Launch // 取得済みの打ち上げ（存在したもののみ）
	missing   map[string]bool          // 404が確定したID
	all       []*model.Launch
	allLoaded bool
}

// NewSession はSessionを生成する。リクエストごとに1つ生成すること。
func NewSession(source Source) *Session {
	return &Session{
		source:  source,
		byID:    make(map[string]*model.Launch),
		missing: make(map[string]bool),
	}
}

// ListAll はカタログの全打ち上げを返す。同一リクエスト内の2回目以降はメモ化結果を返す。
func (s *Session) ListAll(ctx context.Context) ([]*model.Launch, error) {
	s.mu.Lock()
	if s.allLoaded {
		defer s.mu.Unlock()
		return s.all, nil
	}
	s.mu.Unlock()

	launches, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = launches
	s.allLoaded = true
	for _, l := range launches {
		s.byID[l.ID] = l
	}
	return launches, nil
}

// GetByID は指定IDの打ち上げを返す。見つからない場合はnilを返す。
func (s *Session) GetByID(ctx context.Context, id string) (*model.Launch, error) {
	s.mu.Lock()
	if l, ok := s.byID[id]; ok {
		s.mu.Unlock()
		return l, nil
	}
	if s.missing[id] || s.allLoaded {
		s.mu.Unlock()
		return nil, nil
	}
	s.mu.Unlock()

	l, err := s.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		s.missing[id] = true
		return nil, nil
	}
	s.byID[id] = l
	return l, nil
}

// GetByIDs は複数IDの打ち上げを一括取得する。
// 全IDがメモ化済みの場合は上流を呼ばず、そうでなければ1回の一括呼び出しを発行する。
// 部分的な失敗は黙って切り詰めず、エラーとして伝播する。
func (s *Session) GetByIDs(ctx context.Context, ids []string) ([]*model.Launch, error) {
	if len(ids) == 0 {
		return []*model.Launch{}, nil
	}

	s.mu.Lock()
	if cached, ok := s.fromCacheLocked(ids); ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	launches, err := s.source.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	found := make(map[string]bool, len(launches))
	for _, l := range launches {
		s.byID[l.ID] = l
		found[l.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			s.missing[id] = true
		}
	}
	return launches, nil
}

// fromCacheLocked は全IDの結果が確定済みの場合のみキャッシュから組み立てる。
// 存在しないIDは省く。呼び出し元がロックを保持していること。
func (s *Session) fromCacheLocked(ids []string) ([]*model.Launch, bool) {
	launches := make([]*model.Launch, 0, len(ids))
	for _, id := range ids {
		if l, ok := s.byID[id]; ok {
			launches = append(launches, l)
			continue
		}
		if s.missing[id] || s.allLoaded {
			continue
		}
		return nil, false
	}
	return launches, true
}
