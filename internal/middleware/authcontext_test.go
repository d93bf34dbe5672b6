package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/launchpad/internal/auth"
	"github.com/hitoshi/launchpad/internal/model"
	"github.com/hitoshi/launchpad/internal/token"
)

// fakeCatalogAdapter はテスト用のカタログアダプタ。
type fakeCatalogAdapter struct {
	listAllFunc  func(ctx context.Context) ([]*model.Launch, error)
	getByIDFunc  func(ctx context.Context, id string) (*model.Launch, error)
	getByIDsFunc func(ctx context.Context, ids []string) ([]*model.Launch, error)
}

func (f *fakeCatalogAdapter) ListAll(ctx context.Context) ([]*model.Launch, error) {
	if f.listAllFunc != nil {
		return f.listAllFunc(ctx)
	}
	return nil, nil
}

func (f *fakeCatalogAdapter) GetByID(ctx context.Context, id string) (*model.Launch, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeCatalogAdapter) GetByIDs(ctx context.Context, ids []string) ([]*model.Launch, error) {
	if f.getByIDsFunc != nil {
		return f.getByIDsFunc(ctx, ids)
	}
	return nil, nil
}

// fakeIdentityAdapter はテスト用のアイデンティティアダプタ。
type fakeIdentityAdapter struct {
	findOrCreateFunc        func(ctx context.Context, email string) (*model.User, error)
	addBookingFunc          func(ctx context.Context, userID, launchID string) error
	removeBookingFunc       func(ctx context.Context, userID, launchID string) error
	listBookedLaunchIDsFunc func(ctx context.Context, userID string) ([]string, error)

	findOrCreateCalls int
}

func (f *fakeIdentityAdapter) FindOrCreate(ctx context.Context, email string) (*model.User, error) {
	f.findOrCreateCalls++
	if f.findOrCreateFunc != nil {
		return f.findOrCreateFunc(ctx, email)
	}
	return &model.User{ID: "user-1", Email: email}, nil
}

func (f *fakeIdentityAdapter) AddBooking(ctx context.Context, userID, launchID string) error {
	if f.addBookingFunc != nil {
		return f.addBookingFunc(ctx, userID, launchID)
	}
	return nil
}

func (f *fakeIdentityAdapter) RemoveBooking(ctx context.Context, userID, launchID string) error {
	if f.removeBookingFunc != nil {
		return f.removeBookingFunc(ctx, userID, launchID)
	}
	return nil
}

func (f *fakeIdentityAdapter) ListBookedLaunchIDs(ctx context.Context, userID string) ([]string, error) {
	if f.listBookedLaunchIDsFunc != nil {
		return f.listBookedLaunchIDsFunc(ctx, userID)
	}
	return []string{}, nil
}

func newAuthMiddlewareForTest(identity *fakeIdentityAdapter) func(next http.Handler) http.Handler {
	return NewAuthContextMiddleware(
		func() auth.CatalogAdapter { return &fakeCatalogAdapter{} },
		func() auth.IdentityAdapter { return identity },
	)
}

func TestAuthContextMiddleware_ValidToken(t *testing.T) {
	identity := &fakeIdentityAdapter{
		findOrCreateFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email != "taro@example.com" {
				t.Errorf("email = %s, want taro@example.com", email)
			}
			return &model.User{ID: "user-42", Email: email}, nil
		},
	}

	var captured *auth.RequestContext
	handler := newAuthMiddlewareForTest(identity)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", token.Encode("taro@example.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("request context not injected")
	}
	if captured.User == nil || captured.User.ID != "user-42" {
		t.Errorf("user = %+v, want ID user-42", captured.User)
	}
	if captured.Catalog == nil || captured.Identity == nil {
		t.Error("adapter sessions not injected")
	}
}

func TestAuthContextMiddleware_BearerPrefix(t *testing.T) {
	identity := &fakeIdentityAdapter{}

	var captured *auth.RequestContext
	handler := newAuthMiddlewareForTest(identity)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+token.Encode("taro@example.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured == nil || captured.User == nil {
		t.Fatal("user not resolved from Bearer token")
	}
	if captured.User.Email != "taro@example.com" {
		t.Errorf("email = %s, want taro@example.com", captured.User.Email)
	}
}

func TestAuthContextMiddleware_AnonymousOnInvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "ヘッダーなし", header: ""},
		{name: "base64として不正", header: "!!!not-base64!!!"},
		{name: "復号結果がメール形式でない", header: token.Encode("not an email")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &fakeIdentityAdapter{}

			var captured *auth.RequestContext
			handler := newAuthMiddlewareForTest(identity)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = auth.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			// 不正トークンはリクエスト失敗ではなく匿名コンテキストになる
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if captured == nil {
				t.Fatal("request context not injected")
			}
			if captured.User != nil {
				t.Errorf("user = %+v, want nil (anonymous)", captured.User)
			}
			if identity.findOrCreateCalls != 0 {
				t.Errorf("FindOrCreate calls = %d, want 0", identity.findOrCreateCalls)
			}
		})
	}
}

func TestAuthContextMiddleware_AdapterFailureIs500(t *testing.T) {
	identity := &fakeIdentityAdapter{
		findOrCreateFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}

	nextCalled := false
	handler := newAuthMiddlewareForTest(identity)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", token.Encode("taro@example.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// インフラ障害は匿名に偽装せず500として返す
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if nextCalled {
		t.Error("next handler should not be called on adapter failure")
	}
}
