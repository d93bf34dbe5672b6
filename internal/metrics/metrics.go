// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// catalog.FetchRecorderとidentity.BookingRecorderを実装する。
type Collector struct {
	httpStatus       *prometheus.CounterVec
	requestLatency   prometheus.Histogram
	catalogFetch     *prometheus.CounterVec
	catalogLatency   prometheus.Histogram
	bookingCreated   prometheus.Counter
	bookingCancelled prometheus.Counter
	userCreated      prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchpad_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		catalogFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_catalog_fetch_total",
			Help: "カタログサービス呼び出しの結果別合計数",
		}, []string{"result"}),
		catalogLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchpad_catalog_fetch_latency_seconds",
			Help:    "カタログサービス呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		bookingCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_bookings_created_total",
			Help: "作成された予約の合計数",
		}),
		bookingCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_bookings_cancelled_total",
			Help: "キャンセルされた予約の合計数",
		}),
		userCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_users_created_total",
			Help: "作成されたユーザーの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.catalogFetch,
		c.catalogLatency,
		c.bookingCreated,
		c.bookingCancelled,
		c.userCreated,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はHTTPリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordCatalogFetch はカタログサービス呼び出しの結果とレイテンシを記録する。
func (c *Collector) RecordCatalogFetch(duration time.Duration, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.catalogFetch.WithLabelValues(result).Inc()
	c.catalogLatency.Observe(duration.Seconds())
}

// RecordBookingCreated は予約作成を記録する。
func (c *Collector) RecordBookingCreated() {
	c.bookingCreated.Inc()
}

// RecordBookingCancelled は予約キャンセルを記録する。
func (c *Collector) RecordBookingCancelled() {
	c.bookingCancelled.Inc()
}

// RecordUserCreated はユーザー作成を記録する。
func (c *Collector) RecordUserCreated() {
	c.userCreated.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
