package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inspection-service/service/config"
	"inspection-service/service/inspection"
	"inspection-service/service/inspection_plan"
	"inspection-service/service/models"
	"inspection-service/service/product"
	"inspection-service/service/rate_limiter"
	"inspection-service/service/rnc"
	"inspection-service/service/supplier"
	"inspection-service/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denyAfter 第 limit 次之后拒绝请求
type denyAfter struct {
	limit int
	calls int
}

func (d *denyAfter) CheckRateLimit(ctx context.Context, rules []rate_limiter.RateLimitRule) (*rate_limiter.RateLimitResult, error) {
	d.calls++
	allowed := d.calls <= d.limit
	remaining := d.limit - d.calls
	if remaining < 0 {
		remaining = 0
	}
	return &rate_limiter.RateLimitResult{Allowed: allowed, Limit: d.limit, Remaining: remaining, Message: "请求过于频繁"}, nil
}

func newRouter(t *testing.T, limiter *denyAfter) *chi.Mux {
	t.Helper()
	testDB := testutil.NewTestDB()
	t.Cleanup(testDB.Close)

	db := testDB.DB
	cfg := config.NewConfigService(db, nil)
	publisher := &testutil.RecordingPublisher{}
	plans := inspection_plan.NewService(db, cfg, publisher)
	deps := Dependencies{
		Config:      cfg,
		Products:    product.NewService(db),
		Plans:       plans,
		Inspections: inspection.NewService(db, cfg, plans, publisher),
		RNCs:        rnc.NewService(db, cfg, publisher),
		Suppliers:   supplier.NewService(db),
	}
	if limiter != nil {
		deps.RateLimiter = limiter
		deps.RateLimit = models.RateLimitConfig{Enabled: true, Requests: limiter.limit, WindowSeconds: 60}
	}

	r := chi.NewRouter()
	RegisterRoutes(r, deps)
	return r
}

func TestRegisterRoutes(t *testing.T) {
	r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = httptest.NewRecorder()
	body := strings.NewReader(`{"lot_size":150,"inspection_level":"II"}`)
	req := httptest.NewRequest(http.MethodPost, "/sampling/plan", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sample_size":32`)

	// CORS 预检
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/rncs/abc/status", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// 静态段优先于 {id}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suppliers/stats/overview", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_suppliers":0`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterRoutes_RateLimit(t *testing.T) {
	limiter := &denyAfter{limit: 2}
	r := newRouter(t, limiter)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sampling/aqls", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sampling/aqls", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// 健康检查不受限流影响
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, limiter.calls)
}
