/*
 * @module api/controllers/inspection_plan_controller
 * @description 检验计划API控制器：计划维护、审批、停用、修订历史与抽样预览
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow draft -> active -> inactive；每次修改写入一条修订记录
 * @rules 致命缺陷 AQL 必须为 0；同一产品只能有一个生效计划
 * @dependencies inspection-service/service/inspection_plan, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/inspection_plan/service.go
 */

package controllers

import (
	"net/http"

	"inspection-service/service/inspection_plan"
	"inspection-service/service/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cast"
)

// InspectionPlanController 检验计划控制器
type InspectionPlanController struct {
	service *inspection_plan.Service
}

// NewInspectionPlanController 创建检验计划控制器实例
func NewInspectionPlanController(svc *inspection_plan.Service) *InspectionPlanController {
	return &InspectionPlanController{service: svc}
}

// UpdatePlanRequest 修改计划请求
type UpdatePlanRequest struct {
	models.InspectionPlan
	ChangedBy string `json:"changed_by" example:"engenharia"`
}

// ApprovePlanRequest 审批请求
type ApprovePlanRequest struct {
	ApprovedBy string `json:"approved_by" example:"coordenador"`
}

// CreatePlan 创建检验计划
// @Summary 创建检验计划
// @Description 新计划版本为 Rev. 01，状态为 draft
// @Tags 检验计划
// @Accept json
// @Produce json
// @Param plan body models.InspectionPlan true "计划信息"
// @Success 201 {object} APIResponse{data=models.InspectionPlan}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspection-plans [post]
func (c *InspectionPlanController) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.InspectionPlan
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.service.Create(r.Context(), &req); err != nil {
		render.Render(w, r, ErrorResponse("创建检验计划失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", &req))
}

// GetPlan 获取检验计划
// @Summary 获取检验计划详情
// @Tags 检验计划
// @Produce json
// @Param id path string true "计划ID"
// @Success 200 {object} APIResponse{data=models.InspectionPlan}
// @Failure 404 {object} APIResponse
// @Router /inspection-plans/{id} [get]
func (c *InspectionPlanController) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询检验计划失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", plan))
}

// ListPlans 检验计划列表
// @Summary 检验计划列表
// @Tags 检验计划
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param product_id query string false "产品ID"
// @Param status query string false "状态(draft, active, inactive)"
// @Param business_unit query string false "业务单元"
// @Success 200 {object} PaginatedResponse{data=[]models.InspectionPlan}
// @Router /inspection-plans [get]
func (c *InspectionPlanController) ListPlans(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	query := r.URL.Query()

	plans, total, err := c.service.List(r.Context(), inspection_plan.ListFilter{
		Page:         page,
		Size:         size,
		ProductID:    query.Get("product_id"),
		Status:       query.Get("status"),
		BusinessUnit: query.Get("business_unit"),
	})
	if err != nil {
		render.Render(w, r, ErrorResponse("查询检验计划列表失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(plans, total, page, size))
}

// UpdatePlan 修改检验计划
// @Summary 修改检验计划
// @Description 有实际变更时版本号加一并记录修订
// @Tags 检验计划
// @Accept json
// @Produce json
// @Param id path string true "计划ID"
// @Param plan body UpdatePlanRequest true "修改内容"
// @Success 200 {object} APIResponse{data=models.InspectionPlan}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /inspection-plans/{id} [put]
func (c *InspectionPlanController) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	plan, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), &req.InspectionPlan, req.ChangedBy)
	if err != nil {
		render.Render(w, r, ErrorResponse("修改检验计划失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("修改成功", plan))
}

// DeletePlan 删除检验计划
// @Summary 删除检验计划
// @Description 生效中或已被检验引用的计划不能删除
// @Tags 检验计划
// @Produce json
// @Param id path string true "计划ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspection-plans/{id} [delete]
func (c *InspectionPlanController) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrorResponse("删除检验计划失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("删除成功", nil))
}

// ApprovePlan 审批检验计划
// @Summary 审批检验计划
// @Tags 检验计划
// @Accept json
// @Produce json
// @Param id path string true "计划ID"
// @Param request body ApprovePlanRequest true "审批人"
// @Success 200 {object} APIResponse{data=models.InspectionPlan}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspection-plans/{id}/approve [post]
func (c *InspectionPlanController) ApprovePlan(w http.ResponseWriter, r *http.Request) {
	var req ApprovePlanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	plan, err := c.service.Approve(r.Context(), chi.URLParam(r, "id"), req.ApprovedBy)
	if err != nil {
		render.Render(w, r, ErrorResponse("审批检验计划失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("审批成功", plan))
}

// DeactivatePlan 停用检验计划
// @Summary 停用检验计划
// @Tags 检验计划
// @Produce json
// @Param id path string true "计划ID"
// @Success 200 {object} APIResponse{data=models.InspectionPlan}
// @Failure 404 {object} APIResponse
// @Router /inspection-plans/{id}/deactivate [post]
func (c *InspectionPlanController) DeactivatePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := c.service.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("停用检验计划失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("停用成功", plan))
}

// ListRevisions 修订历史
// @Summary 检验计划修订历史
// @Tags 检验计划
// @Produce json
// @Param id path string true "计划ID"
// @Success 200 {object} APIResponse{data=[]models.InspectionPlanRevision}
// @Failure 404 {object} APIResponse
// @Router /inspection-plans/{id}/revisions [get]
func (c *InspectionPlanController) ListRevisions(w http.ResponseWriter, r *http.Request) {
	revisions, err := c.service.ListRevisions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询修订历史失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", revisions))
}

// SamplingPreview 抽样预览
// @Summary 按计划预览抽样方案
// @Tags 检验计划
// @Produce json
// @Param id path string true "计划ID"
// @Param lot_size query int true "批量"
// @Success 200 {object} APIResponse{data=sampling.SamplingPlan}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /inspection-plans/{id}/sampling-preview [get]
func (c *InspectionPlanController) SamplingPreview(w http.ResponseWriter, r *http.Request) {
	lotSize := cast.ToInt(r.URL.Query().Get("lot_size"))

	plan, err := c.service.SamplingPreview(r.Context(), chi.URLParam(r, "id"), lotSize)
	if err != nil {
		render.Render(w, r, ErrorResponse("计算抽样方案失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("计算成功", plan))
}
