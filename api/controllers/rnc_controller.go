/*
 * @module api/controllers/rnc_controller
 * @description 不合格报告(RNC)API控制器：创建、由检验生成、状态流转与历史查询
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow pending -> in_analysis -> action_plan -> verification -> closed；未结束状态可取消
 * @rules 非法状态流转返回 409
 * @dependencies inspection-service/service/rnc, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/rnc/service.go
 */

package controllers

import (
	"net/http"

	"inspection-service/service/rnc"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// RNCController RNC 控制器
type RNCController struct {
	service *rnc.Service
}

// NewRNCController 创建 RNC 控制器实例
func NewRNCController(svc *rnc.Service) *RNCController {
	return &RNCController{service: svc}
}

// UpdateRNCStatusRequest 状态更新请求
type UpdateRNCStatusRequest struct {
	Status string `json:"status" example:"in_analysis"`
}

// CreateRNC 创建 RNC
// @Summary 创建不合格报告
// @Description 同一产品与供应商已有 RNC 时标记为重复发生；纠正措施类 RNC 冻结批次
// @Tags RNC
// @Accept json
// @Produce json
// @Param request body rnc.CreateRequest true "RNC 信息"
// @Success 201 {object} APIResponse{data=models.RNC}
// @Failure 400 {object} APIResponse
// @Router /rncs [post]
func (c *RNCController) CreateRNC(w http.ResponseWriter, r *http.Request) {
	var req rnc.CreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, err := c.service.Create(r.Context(), req)
	if err != nil {
		render.Render(w, r, ErrorResponse("创建 RNC 失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", record))
}

// CreateFromInspection 由检验生成 RNC
// @Summary 由检验生成不合格报告
// @Description 仅拒收或待审的检验可以生成 RNC
// @Tags RNC
// @Accept json
// @Produce json
// @Param inspectionId path string true "检验ID"
// @Param request body rnc.FromInspectionRequest true "补充信息"
// @Success 201 {object} APIResponse{data=models.RNC}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /rncs/from-inspection/{inspectionId} [post]
func (c *RNCController) CreateFromInspection(w http.ResponseWriter, r *http.Request) {
	var req rnc.FromInspectionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, err := c.service.CreateFromInspection(r.Context(), chi.URLParam(r, "inspectionId"), req)
	if err != nil {
		render.Render(w, r, ErrorResponse("生成 RNC 失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", record))
}

// GetRNC 获取 RNC 详情
// @Summary 获取不合格报告详情
// @Tags RNC
// @Produce json
// @Param id path string true "RNC ID"
// @Success 200 {object} APIResponse{data=models.RNC}
// @Failure 404 {object} APIResponse
// @Router /rncs/{id} [get]
func (c *RNCController) GetRNC(w http.ResponseWriter, r *http.Request) {
	record, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询 RNC 失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", record))
}

// ListRNCs RNC 列表
// @Summary 不合格报告列表
// @Tags RNC
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param status query string false "状态"
// @Param type query string false "类型(corrective_action, information)"
// @Param sgq_status query string false "SGQ 状态"
// @Param supplier_id query string false "供应商ID"
// @Param supplier query string false "供应商"
// @Success 200 {object} PaginatedResponse{data=[]models.RNC}
// @Router /rncs [get]
func (c *RNCController) ListRNCs(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	query := r.URL.Query()

	records, total, err := c.service.List(r.Context(), rnc.ListFilter{
		Page:       page,
		Size:       size,
		Status:     query.Get("status"),
		Type:       query.Get("type"),
		SGQStatus:  query.Get("sgq_status"),
		SupplierID: query.Get("supplier_id"),
		Supplier:   query.Get("supplier"),
	})
	if err != nil {
		render.Render(w, r, ErrorResponse("查询 RNC 列表失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(records, total, page, size))
}

// UpdateRNCStatus 更新 RNC 状态
// @Summary 更新不合格报告状态
// @Tags RNC
// @Accept json
// @Produce json
// @Param id path string true "RNC ID"
// @Param request body UpdateRNCStatusRequest true "目标状态"
// @Success 200 {object} APIResponse{data=models.RNC}
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /rncs/{id}/status [patch]
func (c *RNCController) UpdateRNCStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateRNCStatusRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, err := c.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		render.Render(w, r, ErrorResponse("更新 RNC 状态失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("更新成功", record))
}

// GetHistory 产品不合格历史
// @Summary 产品不合格历史
// @Tags RNC
// @Produce json
// @Param productCode path string true "产品编码"
// @Param supplier query string false "供应商ID或名称"
// @Success 200 {object} APIResponse{data=[]models.RNCHistory}
// @Router /rncs/history/{productCode} [get]
func (c *RNCController) GetHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.History(r.Context(), chi.URLParam(r, "productCode"), r.URL.Query().Get("supplier"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询历史失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", rows))
}
