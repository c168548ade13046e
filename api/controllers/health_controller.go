/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供存活与就绪检查
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/monitoring.md
 * @stateFlow HTTP请求 -> 依赖检查 -> 健康状态
 * @rules 存活检查不访问依赖；就绪检查在必需依赖不可用时返回 503
 * @dependencies inspection-service/service/monitoring, github.com/go-chi/render
 * @refs service/monitoring/health_checker.go
 */

package controllers

import (
	"net/http"
	"time"

	"inspection-service/service/monitoring"

	"github.com/go-chi/render"
)

const (
	serviceName    = "inspection-service"
	serviceVersion = "1.0.0"
)

// HealthController 健康检查控制器
type HealthController struct {
	checker *monitoring.HealthChecker
}

// NewHealthController 创建健康检查控制器实例，checker 为空时就绪检查恒为 ready
func NewHealthController(checker *monitoring.HealthChecker) *HealthController {
	return &HealthController{checker: checker}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status       string                         `json:"status" example:"ok"`
	Timestamp    time.Time                      `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version      string                         `json:"version" example:"1.0.0"`
	Service      string                         `json:"service" example:"inspection-service"`
	Dependencies []*monitoring.DependencyHealth `json:"dependencies,omitempty"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务进程是否存活
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Service:   serviceName,
	})
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查数据库等依赖是否可用
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Service:   serviceName,
	}

	if c.checker != nil {
		status := c.checker.Check(r.Context())
		response.Dependencies = status.Dependencies
		if status.Overall == monitoring.StatusCritical {
			response.Status = "unavailable"
			render.Status(r, http.StatusServiceUnavailable)
		}
	}

	render.JSON(w, r, response)
}
