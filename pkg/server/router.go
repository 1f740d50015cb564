package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shouni/ok-face-mixer/pkg/metrics"
)

// ルート名はメトリクスのラベルにも使います。
const (
	RouteMixImage = "mix_image"
	RouteSmiles   = "smiles"
	RouteHealth   = "health"
	RouteMetrics  = "metrics"
	RouteStatic   = "static"
)

// RouterOptions は NewRouter の任意の設定です。
type RouterOptions struct {
	// StaticDir はフロントエンドのビルド成果物のディレクトリです。空なら静的配信をしません。
	StaticDir string
	// Metrics が nil の場合は /metrics もメトリクス記録も無効になります。
	Metrics *metrics.Metrics
}

// NewRouter は API と静的ファイル配信のルーティングを組み立て、共通のミドルウェアで包んで返します。
func NewRouter(mx ImageMixer, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	r.Handle("/api/mix_image.gif", NewMixImageHandler(mx, opts.Metrics)).
		Methods(http.MethodGet).
		Name(RouteMixImage)
	r.HandleFunc("/api/smiles", SmilesHandler).
		Methods(http.MethodGet).
		Name(RouteSmiles)
	r.HandleFunc("/healthz", HealthCheckHandler).
		Methods(http.MethodGet, http.MethodHead).
		Name(RouteHealth)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).
			Methods(http.MethodGet).
			Name(RouteMetrics)
		r.Use(MetricsMiddleware(opts.Metrics))
	}

	// 静的配信は最後に登録し、他のルートにマッチしなかったものだけを受け持つ
	if opts.StaticDir != "" {
		r.PathPrefix("/").
			Handler(http.FileServer(http.Dir(opts.StaticDir))).
			Methods(http.MethodGet, http.MethodHead).
			Name(RouteStatic)
	}

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	// パニックしたリクエストもアクセスログに残るよう、Recovery は Logging の内側に置く
	var h http.Handler = r
	h = SecurityHeadersMiddleware(h)
	h = RecoveryMiddleware(h)
	h = LoggingMiddleware(h)
	h = RequestIDMiddleware(h)
	return h
}
