package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, route, statusCode})
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(1, 2, zap.NewNop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, limiter.Allow("10.0.0.2"), "other clients keep their own bucket")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "bucket refills")
}

func TestRateLimiter_Prune(t *testing.T) {
	limiter := NewRateLimiter(1, 1, zap.NewNop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	now = now.Add(time.Hour)
	limiter.Allow("10.0.0.2")
	limiter.Prune()

	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestRateLimiter_Handler(t *testing.T) {
	handler := NewRateLimiter(1, 1, zap.NewNop()).Handler()(okHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "TOO_MANY_REQUESTS")
}

func TestRateLimiter_DisabledWhenNoRate(t *testing.T) {
	limiter := NewRateLimiter(0, 0, zap.NewNop())
	for i := 0; i < 100; i++ {
		require.True(t, limiter.Allow("10.0.0.1"))
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	recorder := &fakeRecorder{}
	r := chi.NewRouter()
	r.Use(Metrics(recorder))
	r.Get("/api/v1/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/recipes/52772", nil))

	require.Len(t, recorder.requests, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/api/v1/recipes/{id}", http.StatusNotFound}, recorder.requests[0])
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://app.example"})(okHandler)

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, allowed)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/", nil)
	denied.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, denied)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://app.example")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Security()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestJSONOnly(t *testing.T) {
	handler := JSONOnly()(okHandler)

	form := httptest.NewRequest(http.MethodPost, "/", nil)
	form.ContentLength = 3
	form.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, form)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	jsonReq := httptest.NewRequest(http.MethodPost, "/", nil)
	jsonReq.ContentLength = 2
	jsonReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, jsonReq)
	assert.Equal(t, http.StatusOK, rec.Code)
}
