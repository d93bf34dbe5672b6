// Package catalog は上流の打ち上げカタログサービスへのアダプタを提供する。
// カタログは読み取り専用で、打ち上げレコードの列挙・取得・一括取得を行う。
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hitoshi/launchpad/internal/model"
)

// maxIDsPerRequest は一括取得1リクエストあたりの最大ID数。
const maxIDsPerRequest = 50

// FetchRecorder はカタログ呼び出しのメトリクス記録インターフェース。
type FetchRecorder interface {
	RecordCatalogFetch(duration time.Duration, success bool)
}

// nopRecorder はメトリクス未設定時のフォールバック。
type nopRecorder struct{}

func (nopRecorder) RecordCatalogFetch(time.Duration, bool) {}

// Client は打ち上げカタログサービスのHTTPクライアント。
// プロセス全体で共有され、リクエスト間で状態を持たない。
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    FetchRecorder
}

// NewClient はClientの新しいインスタンスを生成する。
// recorderがnilの場合はメトリクスを記録しない。
func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger, recorder FetchRecorder) *Client {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		metrics:    recorder,
	}
}

// ListAll はカタログの全打ち上げを列挙する。
func (c *Client) ListAll(ctx context.Context) ([]*model.Launch, error) {
	var launches []*model.Launch
	if err := c.getJSON(ctx, c.baseURL+"/launches", &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

// GetByID は指定IDの打ち上げを取得する。見つからない場合はnilを返す。
func (c *Client) GetByID(ctx context.Context, id string) (*model.Launch, error) {
	launch := &model.Launch{}
	found, err := c.getJSONNotFoundOK(ctx, c.baseURL+"/launches/"+url.PathEscape(id), launch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return launch, nil
}

// GetByIDs は複数IDの打ち上げを一括取得する。
// 結果は上流が返した順序で、要求ごとに高々1件。存在しないIDは黙って省かれるため、
// 呼び出し元は結果数が要求数と一致することを仮定してはならない。
func (c *Client) GetByIDs(ctx context.Context, ids []string) ([]*model.Launch, error) {
	if len(ids) == 0 {
		return []*model.Launch{}, nil
	}

	if len(ids) > maxIDsPerRequest {
		return nil, fmt.Errorf("IDの数が上限を超えています: %d > %d", len(ids), maxIDsPerRequest)
	}

	reqURL, err := url.Parse(c.baseURL + "/launches")
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}

	q := reqURL.Query()
	for _, id := range ids {
		q.Add("id", id)
	}
	reqURL.RawQuery = q.Encode()

	var launches []*model.Launch
	if err := c.getJSON(ctx, reqURL.String(), &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

// getJSON はGETリクエストを実行しJSONレスポンスをデコードする。
func (c *Client) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	_, err := c.do(ctx, rawURL, v, false)
	return err
}

// getJSONNotFoundOK は404をエラーではなく「見つからない」として扱うGETを実行する。
func (c *Client) getJSONNotFoundOK(ctx context.Context, rawURL string, v interface{}) (bool, error) {
	return c.do(ctx, rawURL, v, true)
}

func (c *Client) do(ctx context.Context, rawURL string, v interface{}, notFoundOK bool) (bool, error) {
	start := time.Now()
	found, err := c.doRequest(ctx, rawURL, v, notFoundOK)
	c.metrics.RecordCatalogFetch(time.Since(start), err == nil)
	return found, err
}

func (c *Client) doRequest(ctx context.Context, rawURL string, v interface{}, notFoundOK bool) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Launchpad/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("カタログサービスの呼び出しに失敗しました",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("カタログサービスの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if notFoundOK && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("カタログサービスがエラーステータスを返しました",
			slog.String("url", rawURL),
			slog.Int("http_status", resp.StatusCode),
		)
		return false, fmt.Errorf("カタログサービスがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("カタログレスポンスのパースに失敗しました",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	return true, nil
}
