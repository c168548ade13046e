/*
 * @module service/monitoring/health_checker
 * @description 健康检查器，负责数据库、缓存、消息代理等依赖的就绪检查
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/monitoring.md
 * @stateFlow 注册检查项 -> 并发检测 -> 汇总状态
 * @rules 数据库不可用即整体不可用；可选依赖失败仅降级为 warning
 * @dependencies gorm.io/gorm
 * @refs api/controllers/health_controller.go
 */

package monitoring

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// 健康状态
const (
	StatusHealthy  = "healthy"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// CheckFunc 依赖检查函数
type CheckFunc func(ctx context.Context) error

type dependency struct {
	name     string
	kind     string
	required bool
	check    CheckFunc
}

// DependencyHealth 依赖服务健康状态
type DependencyHealth struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`   // database, cache, message_queue
	Status       string        `json:"status"` // healthy, warning, critical
	Available    bool          `json:"available"`
	ResponseTime time.Duration `json:"response_time"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// HealthStatus 整体健康状态
type HealthStatus struct {
	Overall      string              `json:"overall"`
	Timestamp    time.Time           `json:"timestamp"`
	Dependencies []*DependencyHealth `json:"dependencies"`
}

// HealthChecker 健康检查器
type HealthChecker struct {
	mutex        sync.RWMutex
	dependencies []dependency
	timeout      time.Duration
}

// NewHealthChecker 创建健康检查器，db 不为空时自动注册数据库检查
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	hc := &HealthChecker{timeout: 3 * time.Second}
	if db != nil {
		hc.Register("database", "database", true, DatabaseCheck(db))
	}
	return hc
}

// Register 注册依赖检查，required 为 true 时失败即 critical
func (hc *HealthChecker) Register(name, kind string, required bool, check CheckFunc) {
	hc.mutex.Lock()
	defer hc.mutex.Unlock()
	hc.dependencies = append(hc.dependencies, dependency{name: name, kind: kind, required: required, check: check})
}

// Check 执行全部检查
func (hc *HealthChecker) Check(ctx context.Context) *HealthStatus {
	hc.mutex.RLock()
	deps := make([]dependency, len(hc.dependencies))
	copy(deps, hc.dependencies)
	hc.mutex.RUnlock()

	results := make([]*DependencyHealth, len(deps))
	var wg sync.WaitGroup
	for i, dep := range deps {
		wg.Add(1)
		go func(i int, dep dependency) {
			defer wg.Done()
			results[i] = hc.checkOne(ctx, dep)
		}(i, dep)
	}
	wg.Wait()

	status := &HealthStatus{Overall: StatusHealthy, Timestamp: time.Now(), Dependencies: results}
	for _, r := range results {
		switch {
		case r.Status == StatusCritical:
			status.Overall = StatusCritical
		case r.Status == StatusWarning && status.Overall == StatusHealthy:
			status.Overall = StatusWarning
		}
	}
	sort.Slice(status.Dependencies, func(i, j int) bool { return status.Dependencies[i].Name < status.Dependencies[j].Name })
	return status
}

func (hc *HealthChecker) checkOne(ctx context.Context, dep dependency) *DependencyHealth {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	start := time.Now()
	err := dep.check(ctx)
	result := &DependencyHealth{
		Name:         dep.name,
		Type:         dep.kind,
		Status:       StatusHealthy,
		Available:    err == nil,
		ResponseTime: time.Since(start),
	}
	if err != nil {
		result.ErrorMessage = err.Error()
		result.Status = StatusWarning
		if dep.required {
			result.Status = StatusCritical
		}
	}
	return result
}

// DatabaseCheck 数据库连通性检查
func DatabaseCheck(db *gorm.DB) CheckFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
