/*
 * @module service/rate_limiter/redis_rate_limiter
 * @description 基于Redis的固定窗口限流服务，支持全局与客户端两层限流
 * @architecture 工具层 - 提供分布式限流能力
 * @documentReference dev_docs/rate_limit.md
 * @stateFlow 检查限流规则 -> Redis计数 -> 判断是否超限
 * @rules 使用Redis INCR和EXPIRE实现窗口计数；客户端规则优先于全局规则
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/middleware/rate_limit.go
 */

package rate_limiter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
)

// 限流类型
const (
	RuleTypeGlobal = "global"
	RuleTypeClient = "client"
)

// RateLimitResult 限流检查结果
type RateLimitResult struct {
	Allowed       bool   `json:"allowed"`    // 是否允许请求
	Limit         int    `json:"limit"`      // 限制数量
	Remaining     int    `json:"remaining"`  // 剩余数量
	ResetAt       int64  `json:"reset_at"`   // 重置时间（Unix时间戳）
	RateLimitType string `json:"limit_type"` // 限流类型：global/client
	Message       string `json:"message"`    // 提示信息
}

// RateLimitRule 限流规则
type RateLimitRule struct {
	Type        string // global/client
	TargetID    string // 客户端标识，全局时为空
	TimeWindow  int    // 时间窗口（秒）
	MaxRequests int    // 最大请求数
}

// 原子地检查并累加窗口计数，返回 {allowed, count, limit, ttl}
const checkScript = `
	local key = KEYS[1]
	local max_requests = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')
	if current >= max_requests then
		local ttl = redis.call('TTL', key)
		if ttl < 0 then
			ttl = window
		end
		return {0, current, max_requests, ttl}
	end

	local new_count = redis.call('INCR', key)
	if new_count == 1 then
		redis.call('EXPIRE', key, window)
	end

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end
	return {1, new_count, max_requests, ttl}
`

// RedisRateLimiter Redis限流器
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisRateLimiter 使用已有客户端创建限流器
func NewRedisRateLimiter(client *redis.Client, prefix string) *RedisRateLimiter {
	slog.Info("Redis限流器初始化成功", "prefix", prefix)
	return &RedisRateLimiter{client: client, prefix: prefix}
}

// CheckRateLimit 按优先级依次检查（客户端 -> 全局），任一层超限即拒绝
func (r *RedisRateLimiter) CheckRateLimit(ctx context.Context, rules []RateLimitRule) (*RateLimitResult, error) {
	if len(rules) == 0 {
		return &RateLimitResult{
			Allowed:       true,
			Limit:         -1,
			Remaining:     -1,
			RateLimitType: "none",
			Message:       "无限流规则",
		}, nil
	}

	var tightest *RateLimitResult
	for _, rule := range sortRulesByPriority(rules) {
		result, err := r.checkSingleRule(ctx, rule)
		if err != nil {
			return nil, err
		}
		if !result.Allowed {
			return result, nil
		}
		if tightest == nil || result.Remaining < tightest.Remaining {
			tightest = result
		}
	}
	return tightest, nil
}

// checkSingleRule 检查单个限流规则
func (r *RedisRateLimiter) checkSingleRule(ctx context.Context, rule RateLimitRule) (*RateLimitResult, error) {
	key := r.buildRateLimitKey(rule, time.Now())

	values, err := r.client.Eval(ctx, checkScript, []string{key}, rule.MaxRequests, rule.TimeWindow).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("限流检查失败: %w", err)
	}
	if len(values) != 4 {
		return nil, fmt.Errorf("限流脚本返回值异常: %v", values)
	}

	allowed := values[0] == 1
	currentCount := int(values[1])
	maxRequests := int(values[2])
	ttl := values[3]

	remaining := maxRequests - currentCount
	if remaining < 0 {
		remaining = 0
	}

	message := "允许请求"
	if !allowed {
		message = fmt.Sprintf("超过%s限流限制", rateLimitTypeName(rule.Type))
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Limit:         maxRequests,
		Remaining:     remaining,
		ResetAt:       time.Now().Add(time.Duration(ttl) * time.Second).Unix(),
		RateLimitType: rule.Type,
		Message:       message,
	}, nil
}

// buildRateLimitKey 构造限流Key，窗口序号保证窗口切换后计数自然归零
func (r *RedisRateLimiter) buildRateLimitKey(rule RateLimitRule, now time.Time) string {
	window := int64(rule.TimeWindow)
	if window <= 0 {
		window = 1
	}
	currentWindow := now.Unix() / window

	if rule.Type == RuleTypeGlobal {
		return fmt.Sprintf("%s:rate_limit:%s:%d", r.prefix, rule.Type, currentWindow)
	}
	return fmt.Sprintf("%s:rate_limit:%s:%s:%d", r.prefix, rule.Type, rule.TargetID, currentWindow)
}

// ResetRateLimit 重置当前窗口计数（仅用于测试或管理）
func (r *RedisRateLimiter) ResetRateLimit(ctx context.Context, rule RateLimitRule) error {
	return r.client.Del(ctx, r.buildRateLimitKey(rule, time.Now())).Err()
}

// sortRulesByPriority 按优先级排序规则：client > global
func sortRulesByPriority(rules []RateLimitRule) []RateLimitRule {
	priority := map[string]int{
		RuleTypeClient: 2,
		RuleTypeGlobal: 1,
	}
	sorted := make([]RateLimitRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priority[sorted[i].Type] > priority[sorted[j].Type]
	})
	return sorted
}

// rateLimitTypeName 获取限流类型名称
func rateLimitTypeName(limitType string) string {
	switch limitType {
	case RuleTypeGlobal:
		return "全局"
	case RuleTypeClient:
		return "客户端"
	default:
		return "未知"
	}
}
