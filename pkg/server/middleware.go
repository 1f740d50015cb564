package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/shouni/ok-face-mixer/pkg/logging"
	"github.com/shouni/ok-face-mixer/pkg/metrics"
)

const headerRequestID = "X-Request-ID"

// RequestIDMiddleware はリクエスト ID を受け取るか生成し、コンテキストとレスポンスヘッダーに設定します。
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

// LoggingMiddleware はステータスと所要時間をアクセスログとして出力します。
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		slog.InfoContext(r.Context(), "http request",
			"remote_addr", r.RemoteAddr,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"bytes", rw.bytes,
			"duration", time.Since(start),
		)
	})
}

// MetricsMiddleware は HTTP メトリクスをルートのテンプレート単位で記録します。
// ハンドラーがパニックした場合も、外側の Recovery が返す 500 として記録します。
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.IncInFlight()
			rw := newResponseWriter(w)

			panicked := true
			defer func() {
				m.DecInFlight()
				status := rw.statusCode
				if panicked && !rw.wroteHeader {
					status = http.StatusInternalServerError
				}
				m.RecordHTTPRequest(r.Method, routeName(r), strconv.Itoa(status), time.Since(start))
			}()

			next.ServeHTTP(rw, r)
			panicked = false
		})
	}
}

// RecoveryMiddleware はハンドラーのパニックを 500 に変換し、プロセスを落としません。
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.ErrorContext(r.Context(), "panic in http handler",
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				if !rw.wroteHeader {
					writeText(rw, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}
		}()
		next.ServeHTTP(rw, r)
	})
}

// SecurityHeadersMiddleware はすべてのレスポンスに MIME スニッフィング防止のヘッダーを付けます。
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// routeName はラベルの爆発を防ぐため、マッチしたルートのテンプレートを返します。
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// responseWriter は http.ResponseWriter をラップしてステータスコードと書き込みバイト数を記録します。
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	bytes       int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap は http.ResponseController から元のライターを辿れるようにします。
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
