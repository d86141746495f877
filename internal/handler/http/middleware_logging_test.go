package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// injectLogger puts zerolog.Logger into request context the same way
// withTraceID middleware does (via zerolog/log.Ctx).
func injectLogger(r *http.Request, l zerolog.Logger) *http.Request {
	ctx := l.WithContext(r.Context())
	return r.WithContext(ctx)
}

// newTestLogger creates a logger that writes to the provided buffer.
func newTestLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf).With().Timestamp().Logger()
}

// makeRequest creates a test request with a logger in context.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := newTestLogger(buf)
	return injectLogger(req, l)
}

func TestWithLogging_LedgerRequests(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		status  int
		body    string
		delay   time.Duration
		wantLog []string
	}{
		{
			name:   "catalog listing",
			method: http.MethodGet, target: "/api/products",
			status: http.StatusOK, body: "[]",
			wantLog: []string{`"method":"GET"`, `"uri":"/api/products"`, `"status":200`, `"size":2`, `"level":"info"`},
		},
		{
			name:   "purchase recorded",
			method: http.MethodPost, target: "/api/transactions",
			status: http.StatusCreated, body: `{"id":1}`,
			wantLog: []string{`"method":"POST"`, `"status":201`, `"size":8`},
		},
		{
			name:   "user deleted without body",
			method: http.MethodDelete, target: "/api/users/3",
			status:  http.StatusNoContent,
			wantLog: []string{`"method":"DELETE"`, `"uri":"/api/users/3"`, `"status":204`, `"size":0`},
		},
		{
			name:   "price edit",
			method: http.MethodPatch, target: "/api/products/2/price",
			status:  http.StatusOK,
			wantLog: []string{`"method":"PATCH"`, `"status":200`},
		},
		{
			name:   "ranking keeps query string",
			method: http.MethodGet, target: "/api/reports/ranking?limit=3",
			status:  http.StatusOK,
			wantLog: []string{`"uri":"/api/reports/ranking?limit=3"`},
		},
		{
			name:   "unknown month is a client error",
			method: http.MethodGet, target: "/api/history/month/2026-13",
			status:  http.StatusBadRequest,
			wantLog: []string{`"status":400`, `"level":"info"`},
		},
		{
			name:   "storage failure logs at error level",
			method: http.MethodDelete, target: "/api/transactions",
			status:  http.StatusInternalServerError,
			wantLog: []string{`"status":500`, `"level":"error"`},
		},
		{
			name:   "unavailable database",
			method: http.MethodGet, target: "/api/reports/summary",
			status:  http.StatusServiceUnavailable,
			wantLog: []string{`"status":503`, `"level":"error"`},
		},
		{
			name:   "slow export",
			method: http.MethodGet, target: "/api/history/month/2026-03/export",
			status: http.StatusOK, delay: 30 * time.Millisecond,
			wantLog: []string{`"duration":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			rec := httptest.NewRecorder()
			newTestHandler().withLogging(next).ServeHTTP(rec, makeRequest(tt.method, tt.target, &logBuf))

			assert.Equal(t, tt.status, rec.Code)
			for _, want := range tt.wantLog {
				assert.Contains(t, logBuf.String(), want)
			}
		})
	}
}

// ---- Response size ----

func TestWithLogging_ResponseSize(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
	})

	middleware := newTestHandler().withLogging(next)

	req := makeRequest(http.MethodGet, "/api/users", &logBuf)
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, `"size":`, "log should contain size field")
	assert.Contains(t, logOutput, `1024`, "log should contain correct size value")
}

// ---- No explicit WriteHeader should log 200 ----

func TestWithLogging_NoStatusWritten(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	middleware := newTestHandler().withLogging(next)

	req := makeRequest(http.MethodGet, "/api/users", &logBuf)
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logBuf.String(), `"status":200`)
}

// ---- Concurrent requests: no races ----

func TestWithLogging_ConcurrentRequests(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := newTestHandler().withLogging(next)

	const n = 50
	done := make(chan struct{}, n)

	for range n {
		go func() {
			var buf bytes.Buffer
			req := makeRequest(http.MethodGet, "/api/products", &buf)
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, buf.String(), `"status":200`)
			done <- struct{}{}
		}()
	}

	for range n {
		<-done
	}
}

// ---- Panic is not suppressed ----

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})
	middleware := newTestHandler().withLogging(next)

	req := makeRequest(http.MethodGet, "/api/transactions", &logBuf)
	rr := httptest.NewRecorder()

	assert.Panics(t, func() {
		middleware.ServeHTTP(rr, req)
	}, "withLogging should not recover panics")
}

// ---- logger.Nop(): middleware works without a real logger ----

func TestWithLogging_NopLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := newTestHandler().withLogging(next)

	// Put nop logger into request context.
	nop := logger.Nop()
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	ctx := nop.Logger.WithContext(req.Context())
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		middleware.ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ---- Route pattern instead of raw path ----

func TestWithLogging_RoutePattern(t *testing.T) {
	var logBuf bytes.Buffer

	router := chi.NewRouter()
	router.Use(newTestHandler().withLogging)
	router.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := makeRequest(http.MethodGet, "/api/users/42", &logBuf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Contains(t, logBuf.String(), `"route":"/api/users/{id}"`)
	assert.Contains(t, logBuf.String(), `"uri":"/api/users/42"`)
}
