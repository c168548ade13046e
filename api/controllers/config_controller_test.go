package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inspection-service/service/config"
	"inspection-service/service/models"
	"inspection-service/service/monitoring"
	"inspection-service/service/sampling"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigController_GetAndUpdate 测试配置读取、更新以及对抽样默认值的影响
func TestConfigController_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/configs", nil)
	var items []models.SystemConfigItem
	env.data(t, w, http.StatusOK, &items)
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	assert.Contains(t, keys, config.ConfigKeyDefaultLevel)
	assert.Contains(t, keys, config.ConfigKeyRNCDueDays)

	w = env.do(t, http.MethodGet, "/configs/"+config.ConfigKeyDefaultLevel, nil)
	var value map[string]string
	env.data(t, w, http.StatusOK, &value)
	assert.Equal(t, "II", value["value"])

	w = env.do(t, http.MethodPut, "/configs/"+config.ConfigKeyDefaultLevel, UpdateConfigRequest{Value: "III"})
	env.data(t, w, http.StatusOK, nil)

	w = env.do(t, http.MethodPost, "/sampling/code", SampleCodeRequest{LotSize: 150})
	var code SampleCodeResponse
	env.data(t, w, http.StatusOK, &code)
	assert.Equal(t, sampling.LevelIII, code.InspectionLevel)
	assert.Equal(t, 50, code.SampleSize)

	w = env.do(t, http.MethodPut, "/configs/"+config.ConfigKeyDefaultLevel, UpdateConfigRequest{Value: "IV"})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodPut, "/configs/unknown.key", UpdateConfigRequest{Value: "1"})
	env.data(t, w, http.StatusNotFound, nil)

	w = env.do(t, http.MethodGet, "/configs/unknown.key", nil)
	env.data(t, w, http.StatusNotFound, nil)
}

// TestConfigController_BatchUpdate 测试批量更新时单项失败不影响其他项
func TestConfigController_BatchUpdate(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"configs": []map[string]string{
			{"key": config.ConfigKeyRNCDueDays, "value": "15"},
			{"key": config.ConfigKeyDefaultAQLMajor, "value": "3.3"},
			{"key": "unknown.key", "value": "x"},
		},
	}
	w := env.do(t, http.MethodPost, "/configs/batch", body)
	var result struct {
		SuccessCount int      `json:"success_count"`
		FailedCount  int      `json:"failed_count"`
		Errors       []string `json:"errors"`
	}
	env.data(t, w, http.StatusOK, &result)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Errors, 2)

	w = env.do(t, http.MethodGet, "/configs/"+config.ConfigKeyRNCDueDays, nil)
	var value map[string]string
	env.data(t, w, http.StatusOK, &value)
	assert.Equal(t, "15", value["value"])
}

// TestHealthController 测试存活与就绪检查
func TestHealthController(t *testing.T) {
	serve := func(c *HealthController, path string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Get("/health", c.Health)
		r.Get("/ready", c.Ready)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := serve(NewHealthController(nil), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), serviceName)

	w = serve(NewHealthController(nil), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)

	checker := monitoring.NewHealthChecker(nil)
	checker.Register("redis", "cache", false, func(ctx context.Context) error { return errors.New("connection refused") })
	w = serve(NewHealthController(checker), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"warning"`)

	checker.Register("database", "database", true, func(ctx context.Context) error { return errors.New("timeout") })
	w = serve(NewHealthController(checker), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
	assert.Contains(t, w.Body.String(), "timeout")

	// Health 不访问依赖
	w = serve(NewHealthController(checker), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
