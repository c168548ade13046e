/*
 * @module api/middleware/rate_limit
 * @description 限流中间件，按客户端IP与全局两层规则限制请求速率
 * @architecture 中间件模式 - HTTP请求拦截
 * @documentReference dev_docs/rate_limit.md
 * @stateFlow 提取客户端标识 -> Redis计数 -> 放行或返回429
 * @rules 限流存储不可用时放行请求并记录告警
 * @dependencies github.com/go-chi/render, inspection-service/service/rate_limiter
 * @refs api/routes.go
 */

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"inspection-service/service/rate_limiter"

	"github.com/go-chi/render"
)

// RateLimitChecker 限流检查接口
type RateLimitChecker interface {
	CheckRateLimit(ctx context.Context, rules []rate_limiter.RateLimitRule) (*rate_limiter.RateLimitResult, error)
}

// RateLimitConfig 限流参数
type RateLimitConfig struct {
	ClientRequests int // 单个客户端窗口内最大请求数
	GlobalRequests int // 全局窗口内最大请求数，0 表示不限
	WindowSeconds  int
}

type errorResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// RateLimit 创建限流中间件
func RateLimit(checker RateLimitChecker, cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rules := []rate_limiter.RateLimitRule{{
				Type:        rate_limiter.RuleTypeClient,
				TargetID:    clientID(r),
				TimeWindow:  cfg.WindowSeconds,
				MaxRequests: cfg.ClientRequests,
			}}
			if cfg.GlobalRequests > 0 {
				rules = append(rules, rate_limiter.RateLimitRule{
					Type:        rate_limiter.RuleTypeGlobal,
					TimeWindow:  cfg.WindowSeconds,
					MaxRequests: cfg.GlobalRequests,
				})
			}

			result, err := checker.CheckRateLimit(r.Context(), rules)
			if err != nil {
				slog.Warn("限流检查失败，放行请求", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

			if !result.Allowed {
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, errorResponse{Status: http.StatusTooManyRequests, Msg: result.Message})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
