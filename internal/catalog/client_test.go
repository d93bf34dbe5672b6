package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/launchpad/internal/model"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func testLaunches() []*model.Launch {
	return []*model.Launch{
		{ID: "1", Site: "Kennedy Space Center", Year: "2024", Mission: &model.Mission{Name: "Starlink-42"}},
		{ID: "2", Site: "Vandenberg", Year: "2025", Mission: &model.Mission{Name: "Crew-12"}},
	}
}

func TestClient_ListAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/launches" {
			t.Errorf("パス = %s, want /launches", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("HTTPメソッド = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testLaunches())
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), server.URL, newTestLogger(&buf), nil)

	launches, err := c.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll がエラーを返した: %v", err)
	}
	if len(launches) != 2 {
		t.Fatalf("打ち上げ数 = %d, want 2", len(launches))
	}
	if launches[0].ID != "1" || launches[0].Mission.Name != "Starlink-42" {
		t.Errorf("予期しない打ち上げレコード: %+v", launches[0])
	}
}

func TestClient_GetByID_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/launches/1" {
			t.Errorf("パス = %s, want /launches/1", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testLaunches()[0])
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), server.URL, newTestLogger(&buf), nil)

	launch, err := c.GetByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetByID がエラーを返した: %v", err)
	}
	if launch == nil || launch.ID != "1" {
		t.Errorf("launch = %+v, want ID=1", launch)
	}
}

// TestClient_GetByID_NotFound は404がエラーではなくnilとして返ることを検証する。
func TestClient_GetByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), server.URL, newTestLogger(&buf), nil)

	launch, err := c.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("404でエラーを返してはならない: %v", err)
	}
	if launch != nil {
		t.Errorf("launch = %+v, want nil", launch)
	}
}

func TestClient_GetByIDs_SendsAllIDsInOneRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		ids := r.URL.Query()["id"]
		if len(ids) != 2 {
			t.Errorf("IDパラメータ数 = %d, want 2", len(ids))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testLaunches())
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), server.URL, newTestLogger(&buf), nil)

	launches, err := c.GetByIDs(context.Background(), []string{"1", "2"})
	if err != nil {
		t.Fatalf("GetByIDs がエラーを返した: %v", err)
	}
	if requests != 1 {
		t.Errorf("HTTPリクエスト数 = %d, want 1", requests)
	}
	if len(launches) != 2 {
		t.Errorf("打ち上げ数 = %d, want 2", len(launches))
	}
}

func TestClient_GetByIDs_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	// 空入力ではHTTPリクエストを発行しないため、サーバーは不要
	c := NewClient(http.DefaultClient, "http://catalog.invalid", newTestLogger(&buf), nil)

	launches, err := c.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("空入力でエラーを返してはならない: %v", err)
	}
	if launches == nil || len(launches) != 0 {
		t.Errorf("launches = %v, want 空スライス", launches)
	}
}

func TestClient_GetByIDs_TooManyIDs(t *testing.T) {
	var buf bytes.Buffer
	c := NewClient(http.DefaultClient, "http://catalog.invalid", newTestLogger(&buf), nil)

	ids := make([]string, maxIDsPerRequest+1)
	for i := range ids {
		ids[i] = "x"
	}

	if _, err := c.GetByIDs(context.Background(), ids); err == nil {
		t.Error("上限超過のID数でエラーを返さなかった")
	}
}

// TestClient_ServerError_Propagates は上流の5xxがエラーとして伝播することを検証する。
// インフラ障害をnot-foundに格下げしてはならない。
func TestClient_ServerError_Propagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), server.URL, newTestLogger(&buf), nil)

	if _, err := c.ListAll(context.Background()); err == nil {
		t.Error("5xxレスポンスでエラーを返さなかった")
	}
	if _, err := c.GetByID(context.Background(), "1"); err == nil {
		t.Error("GetByID が5xxレスポンスでエラーを返さなかった")
	}
}
