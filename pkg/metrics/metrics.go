// Package metrics は Prometheus のコレクターをまとめて管理します。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "okfacemixer"

// ミックスリクエストの結果ラベル
const (
	OutcomeOK              = "ok"
	OutcomeInvalid         = "invalid"
	OutcomeGenerationError = "generation_error"
	OutcomeEncodingError   = "encoding_error"
)

// Metrics はサービスのコレクター一式です。レジストリはインスタンスごとに独立しています。
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	mixRequests  *prometheus.CounterVec
	imageBytes   prometheus.Histogram
}

// New は新しいレジストリにコレクターを登録して Metrics を作成します。
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"method", "route"}),
		mixRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mix",
			Name:      "requests_total",
			Help:      "Total number of mix image requests by outcome.",
		}, []string{"outcome"}),
		imageBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mix",
			Name:      "image_bytes",
			Help:      "Size of encoded mix images.",
			Buckets:   prometheus.ExponentialBuckets(256, 2, 12), // 256B to ~512KB
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.mixRequests,
		m.imageBytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry はコレクターが登録されたレジストリを返します。
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler は /metrics 用のハンドラーを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncInFlight() { m.httpInFlight.Inc() }
func (m *Metrics) DecInFlight() { m.httpInFlight.Dec() }

// RecordHTTPRequest は 1 リクエストの結果と所要時間を記録します。
func (m *Metrics) RecordHTTPRequest(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordMix はミックスリクエストの結果を記録します。成功時は size も記録します。
func (m *Metrics) RecordMix(outcome string, size int) {
	m.mixRequests.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.imageBytes.Observe(float64(size))
	}
}
