/*
 * @module api/controllers/config_controller
 * @description 配置管理控制器，提供抽样默认值、RNC 期限等运行时配置的HTTP接口
 * @architecture RESTful API架构
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow HTTP请求 -> 控制器 -> 配置服务 -> 数据库
 * @rules 只允许修改已注册的配置键，写入前按键校验取值
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/config
 */

package controllers

import (
	"net/http"

	"inspection-service/service/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ConfigController 配置控制器
type ConfigController struct {
	service *config.ConfigService
}

// NewConfigController 创建配置控制器实例
func NewConfigController(svc *config.ConfigService) *ConfigController {
	return &ConfigController{service: svc}
}

// UpdateConfigRequest 更新配置请求
type UpdateConfigRequest struct {
	Value       string `json:"value" example:"III"`
	Description string `json:"description"`
}

// BatchUpdateConfigsRequest 批量更新配置请求
type BatchUpdateConfigsRequest struct {
	Configs []struct {
		Key         string `json:"key"`
		Value       string `json:"value"`
		Description string `json:"description"`
	} `json:"configs"`
}

// GetAllConfigs 获取所有配置
// @Summary 获取所有系统配置
// @Description 获取系统所有配置项
// @Tags 系统配置
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.SystemConfigItem}
// @Router /configs [get]
func (c *ConfigController) GetAllConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := c.service.GetAllSystemConfigs()
	if err != nil {
		render.Render(w, r, ErrorResponse("获取配置失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("获取配置成功", configs))
}

// GetConfig 获取单个配置
// @Summary 获取单个配置
// @Description 根据键名获取配置值
// @Tags 系统配置
// @Produce json
// @Param key path string true "配置键"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /configs/{key} [get]
func (c *ConfigController) GetConfig(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := c.service.GetSystemConfig(key)
	if err != nil {
		render.Render(w, r, ErrorResponse("配置项不存在", err))
		return
	}
	render.Render(w, r, SuccessResponse("获取配置成功", map[string]interface{}{
		"key":   key,
		"value": value,
	}))
}

// UpdateConfig 更新配置
// @Summary 更新配置
// @Description 更新指定键的配置值
// @Tags 系统配置
// @Accept json
// @Produce json
// @Param key path string true "配置键"
// @Param request body UpdateConfigRequest true "更新配置请求"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /configs/{key} [put]
func (c *ConfigController) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req UpdateConfigRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数错误", err))
		return
	}

	if err := c.service.SetSystemConfig(key, req.Value, req.Description); err != nil {
		render.Render(w, r, ErrorResponse("更新配置失败", err))
		return
	}

	render.Render(w, r, SuccessResponse("更新配置成功", map[string]interface{}{
		"key":   key,
		"value": req.Value,
	}))
}

// BatchUpdateConfigs 批量更新配置
// @Summary 批量更新配置
// @Description 批量更新多个配置项，单项失败不影响其它项
// @Tags 系统配置
// @Accept json
// @Produce json
// @Param request body BatchUpdateConfigsRequest true "批量更新配置请求"
// @Success 200 {object} APIResponse
// @Router /configs/batch [post]
func (c *ConfigController) BatchUpdateConfigs(w http.ResponseWriter, r *http.Request) {
	var req BatchUpdateConfigsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数错误", err))
		return
	}

	successCount := 0
	failed := []string{}
	for _, item := range req.Configs {
		if err := c.service.SetSystemConfig(item.Key, item.Value, item.Description); err != nil {
			failed = append(failed, item.Key+": "+err.Error())
			continue
		}
		successCount++
	}

	render.Render(w, r, SuccessResponse("批量更新完成", map[string]interface{}{
		"success_count": successCount,
		"failed_count":  len(failed),
		"errors":        failed,
	}))
}
