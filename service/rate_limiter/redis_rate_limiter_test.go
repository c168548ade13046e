/*
 * @module service/rate_limiter/redis_rate_limiter_test
 * @description Redis限流器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/rate_limit.md
 */

package rate_limiter

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis 设置测试用Redis环境，Redis不可用时跳过
func setupTestRedis(t *testing.T) *RedisRateLimiter {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis不可用，跳过: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	prefix := fmt.Sprintf("inspection-test-%d", time.Now().UnixNano())
	return NewRedisRateLimiter(client, prefix)
}

// TestCheckRateLimit_SingleRule_Success 测试单个规则限流成功
func TestCheckRateLimit_SingleRule_Success(t *testing.T) {
	limiter := setupTestRedis(t)
	rule := RateLimitRule{Type: RuleTypeGlobal, TimeWindow: 60, MaxRequests: 10}

	result, err := limiter.checkSingleRule(context.Background(), rule)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "第一次请求应该被允许")
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 9, result.Remaining)
	assert.Equal(t, RuleTypeGlobal, result.RateLimitType)
}

// TestCheckRateLimit_ClientLimited 测试客户端规则触发限流
func TestCheckRateLimit_ClientLimited(t *testing.T) {
	limiter := setupTestRedis(t)
	ctx := context.Background()
	rules := []RateLimitRule{
		{Type: RuleTypeGlobal, TimeWindow: 60, MaxRequests: 100},
		{Type: RuleTypeClient, TargetID: "10.0.0.1", TimeWindow: 60, MaxRequests: 3},
	}

	for i := 0; i < 3; i++ {
		result, err := limiter.CheckRateLimit(ctx, rules)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "第%d次请求应该被允许", i+1)
	}

	result, err := limiter.CheckRateLimit(ctx, rules)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, RuleTypeClient, result.RateLimitType)
	assert.Equal(t, 0, result.Remaining)

	other := []RateLimitRule{{Type: RuleTypeClient, TargetID: "10.0.0.2", TimeWindow: 60, MaxRequests: 3}}
	result, err = limiter.CheckRateLimit(ctx, other)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "其他客户端不受影响")

	require.NoError(t, limiter.ResetRateLimit(ctx, rules[1]))
	result, err = limiter.CheckRateLimit(ctx, rules)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "重置后允许请求")
}

// TestCheckRateLimit_NoRules 测试无规则时放行
func TestCheckRateLimit_NoRules(t *testing.T) {
	limiter := &RedisRateLimiter{}
	result, err := limiter.CheckRateLimit(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, "none", result.RateLimitType)
}

// TestConcurrentRateLimitCheck 测试并发计数准确
func TestConcurrentRateLimitCheck(t *testing.T) {
	limiter := setupTestRedis(t)
	rule := RateLimitRule{Type: RuleTypeClient, TargetID: "concurrent", TimeWindow: 60, MaxRequests: 50}

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := limiter.checkSingleRule(context.Background(), rule)
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

// TestSortRulesByPriority 测试规则排序
func TestSortRulesByPriority(t *testing.T) {
	sorted := sortRulesByPriority([]RateLimitRule{
		{Type: RuleTypeGlobal},
		{Type: RuleTypeClient},
	})
	assert.Equal(t, RuleTypeClient, sorted[0].Type)
	assert.Equal(t, RuleTypeGlobal, sorted[1].Type)
}

// TestBuildRateLimitKey 测试限流Key格式
func TestBuildRateLimitKey(t *testing.T) {
	limiter := &RedisRateLimiter{prefix: "svc"}
	now := time.Unix(120, 0)

	assert.Equal(t, "svc:rate_limit:global:2", limiter.buildRateLimitKey(RateLimitRule{Type: RuleTypeGlobal, TimeWindow: 60}, now))
	assert.Equal(t, "svc:rate_limit:client:1.2.3.4:2", limiter.buildRateLimitKey(RateLimitRule{Type: RuleTypeClient, TargetID: "1.2.3.4", TimeWindow: 60}, now))
}
