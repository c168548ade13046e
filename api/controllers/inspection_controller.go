/*
 * @module api/controllers/inspection_controller
 * @description 检验向导API控制器：创建、抽样配置、缺陷录入、实时判定与最终决定
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow draft -> in_progress -> approved / conditionally_approved / rejected
 * @rules 判定结果由抽样引擎实时计算，不接受客户端提交
 * @dependencies inspection-service/service/inspection, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/inspection/service.go
 */

package controllers

import (
	"net/http"

	"inspection-service/service/inspection"
	"inspection-service/service/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// InspectionController 检验控制器
type InspectionController struct {
	service *inspection.Service
}

// NewInspectionController 创建检验控制器实例
func NewInspectionController(svc *inspection.Service) *InspectionController {
	return &InspectionController{service: svc}
}

// ConfigureSamplingRequest 抽样配置请求
type ConfigureSamplingRequest struct {
	LotSize         int    `json:"lot_size" example:"150"`
	InspectionLevel string `json:"inspection_level,omitempty" example:"II"`
}

// RecordDefectsRequest 缺陷录入请求
type RecordDefectsRequest struct {
	Defects           models.DefectList `json:"defects"`
	InspectedQuantity int               `json:"inspected_quantity,omitempty" example:"32"`
}

// RecordDefectsResponse 缺陷录入结果
type RecordDefectsResponse struct {
	Inspection *models.Inspection           `json:"inspection"`
	Evaluation *inspection.EvaluationResult `json:"evaluation"`
}

// CreateInspection 创建检验
// @Summary 创建检验
// @Description 为产品创建草稿检验，未指定计划时使用产品的生效计划
// @Tags 检验
// @Accept json
// @Produce json
// @Param request body inspection.CreateRequest true "检验信息"
// @Success 201 {object} APIResponse{data=models.Inspection}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspections [post]
func (c *InspectionController) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var req inspection.CreateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, err := c.service.Create(r.Context(), req)
	if err != nil {
		render.Render(w, r, ErrorResponse("创建检验失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", record))
}

// GetInspection 获取检验详情
// @Summary 获取检验详情
// @Tags 检验
// @Produce json
// @Param id path string true "检验ID"
// @Success 200 {object} APIResponse{data=models.Inspection}
// @Failure 404 {object} APIResponse
// @Router /inspections/{id} [get]
func (c *InspectionController) GetInspection(w http.ResponseWriter, r *http.Request) {
	record, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询检验失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", record))
}

// ListInspections 检验列表
// @Summary 检验列表
// @Tags 检验
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param status query string false "状态"
// @Param inspection_type query string false "检验类型"
// @Param product_id query string false "产品ID"
// @Param inspector_id query string false "检验员"
// @Param supplier_id query string false "供应商ID"
// @Param supplier query string false "供应商"
// @Success 200 {object} PaginatedResponse{data=[]models.Inspection}
// @Router /inspections [get]
func (c *InspectionController) ListInspections(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	query := r.URL.Query()

	records, total, err := c.service.List(r.Context(), inspection.ListFilter{
		Page:           page,
		Size:           size,
		Status:         query.Get("status"),
		InspectionType: query.Get("inspection_type"),
		ProductID:      query.Get("product_id"),
		InspectorID:    query.Get("inspector_id"),
		SupplierID:     query.Get("supplier_id"),
		Supplier:       query.Get("supplier"),
	})
	if err != nil {
		render.Render(w, r, ErrorResponse("查询检验列表失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(records, total, page, size))
}

// ConfigureSampling 配置抽样方案
// @Summary 配置抽样方案
// @Description 标准检验按 NBR 5426 计算；赠品检验为全检
// @Tags 检验
// @Accept json
// @Produce json
// @Param id path string true "检验ID"
// @Param request body ConfigureSamplingRequest true "批量与检验水平"
// @Success 200 {object} APIResponse{data=models.Inspection}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspections/{id}/sampling [post]
func (c *InspectionController) ConfigureSampling(w http.ResponseWriter, r *http.Request) {
	var req ConfigureSamplingRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, err := c.service.ConfigureSampling(r.Context(), chi.URLParam(r, "id"), req.LotSize, req.InspectionLevel)
	if err != nil {
		render.Render(w, r, ErrorResponse("配置抽样方案失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("配置成功", record))
}

// RecordDefects 录入缺陷
// @Summary 录入缺陷
// @Description 替换缺陷清单并返回实时判定
// @Tags 检验
// @Accept json
// @Produce json
// @Param id path string true "检验ID"
// @Param request body RecordDefectsRequest true "缺陷清单"
// @Success 200 {object} APIResponse{data=RecordDefectsResponse}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspections/{id}/defects [put]
func (c *InspectionController) RecordDefects(w http.ResponseWriter, r *http.Request) {
	var req RecordDefectsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, evaluation, err := c.service.RecordDefects(r.Context(), chi.URLParam(r, "id"), req.Defects, req.InspectedQuantity)
	if err != nil {
		render.Render(w, r, ErrorResponse("录入缺陷失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("录入成功", RecordDefectsResponse{Inspection: record, Evaluation: evaluation}))
}

// GetEvaluation 实时判定
// @Summary 获取实时判定
// @Tags 检验
// @Produce json
// @Param id path string true "检验ID"
// @Success 200 {object} APIResponse{data=inspection.EvaluationResult}
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspections/{id}/evaluation [get]
func (c *InspectionController) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.Evaluate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("判定失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("判定完成", result))
}

// FinalizeInspection 最终决定
// @Summary 检验最终决定
// @Description 拒收的检验不能判为合格；非合格判定改判合格需要填写理由
// @Tags 检验
// @Accept json
// @Produce json
// @Param id path string true "检验ID"
// @Param request body inspection.FinalizeRequest true "最终决定"
// @Success 200 {object} APIResponse{data=models.Inspection}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /inspections/{id}/finalize [post]
func (c *InspectionController) FinalizeInspection(w http.ResponseWriter, r *http.Request) {
	var req inspection.FinalizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	record, err := c.service.Finalize(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		render.Render(w, r, ErrorResponse("提交最终决定失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("提交成功", record))
}
