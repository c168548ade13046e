/*
 * @module api/controllers/supplier_controller
 * @description 供应商API控制器：增删改查、绩效评估、审核记录与概览统计
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 编码重复或仍有关联记录时返回 409
 * @dependencies inspection-service/service/supplier, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/supplier/service.go
 */

package controllers

import (
	"net/http"

	"inspection-service/service/models"
	"inspection-service/service/supplier"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// SupplierController 供应商控制器
type SupplierController struct {
	service *supplier.Service
}

// NewSupplierController 创建供应商控制器实例
func NewSupplierController(svc *supplier.Service) *SupplierController {
	return &SupplierController{service: svc}
}

// CreateSupplier 创建供应商
// @Summary 创建供应商
// @Tags 供应商
// @Accept json
// @Produce json
// @Param request body models.Supplier true "供应商信息"
// @Success 201 {object} APIResponse{data=models.Supplier}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /suppliers [post]
func (c *SupplierController) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req models.Supplier
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	req.ID = ""

	if err := c.service.Create(r.Context(), &req); err != nil {
		render.Render(w, r, ErrorResponse("创建供应商失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", req))
}

// ListSuppliers 供应商列表
// @Summary 供应商列表
// @Tags 供应商
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param status query string false "状态(active, suspended, under_review, blacklisted)"
// @Param type query string false "类型(imported, national)"
// @Param category query string false "品类"
// @Param country query string false "国家"
// @Param search query string false "按名称、编码或联系人搜索"
// @Success 200 {object} PaginatedResponse{data=[]models.Supplier}
// @Router /suppliers [get]
func (c *SupplierController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	query := r.URL.Query()

	items, total, err := c.service.List(r.Context(), supplier.ListFilter{
		Page:     page,
		Size:     size,
		Status:   query.Get("status"),
		Type:     query.Get("type"),
		Category: query.Get("category"),
		Country:  query.Get("country"),
		Search:   query.Get("search"),
	})
	if err != nil {
		render.Render(w, r, ErrorResponse("查询供应商列表失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(items, total, page, size))
}

// GetSupplier 供应商详情
// @Summary 获取供应商详情
// @Description 附带最近 5 条评估与审核
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Success 200 {object} APIResponse{data=supplier.Detail}
// @Failure 404 {object} APIResponse
// @Router /suppliers/{id} [get]
func (c *SupplierController) GetSupplier(w http.ResponseWriter, r *http.Request) {
	detail, err := c.service.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询供应商失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", detail))
}

// UpdateSupplier 更新供应商
// @Summary 更新供应商
// @Description 评分与审核信息只能通过评估、审核接口写入
// @Tags 供应商
// @Accept json
// @Produce json
// @Param id path string true "供应商ID"
// @Param request body models.Supplier true "供应商信息"
// @Success 200 {object} APIResponse{data=models.Supplier}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /suppliers/{id} [put]
func (c *SupplierController) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var req models.Supplier
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	updated, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		render.Render(w, r, ErrorResponse("更新供应商失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("更新成功", updated))
}

// DeleteSupplier 删除供应商
// @Summary 删除供应商
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /suppliers/{id} [delete]
func (c *SupplierController) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrorResponse("删除供应商失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("删除成功", nil))
}

// GetStats 供应商概览
// @Summary 供应商概览统计
// @Tags 供应商
// @Produce json
// @Success 200 {object} APIResponse{data=supplier.Stats}
// @Router /suppliers/stats/overview [get]
func (c *SupplierController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats(r.Context())
	if err != nil {
		render.Render(w, r, ErrorResponse("统计供应商失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", stats))
}

// CreateEvaluation 新增绩效评估
// @Summary 新增供应商绩效评估
// @Description 综合分为五项评分均值，写入后刷新供应商星级
// @Tags 供应商
// @Accept json
// @Produce json
// @Param id path string true "供应商ID"
// @Param request body models.SupplierEvaluation true "评估信息"
// @Success 201 {object} APIResponse{data=models.SupplierEvaluation}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /suppliers/{id}/evaluations [post]
func (c *SupplierController) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var req models.SupplierEvaluation
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.service.CreateEvaluation(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		render.Render(w, r, ErrorResponse("创建供应商评估失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", req))
}

// ListEvaluations 绩效评估列表
// @Summary 供应商绩效评估列表
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.SupplierEvaluation}
// @Failure 404 {object} APIResponse
// @Router /suppliers/{id}/evaluations [get]
func (c *SupplierController) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	items, total, err := c.service.ListEvaluations(r.Context(), chi.URLParam(r, "id"), page, size)
	if err != nil {
		render.Render(w, r, ErrorResponse("查询供应商评估失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(items, total, page, size))
}

// CreateAudit 新增审核记录
// @Summary 新增供应商审核
// @Description 写入后刷新供应商最近审核、下次审核与审核得分
// @Tags 供应商
// @Accept json
// @Produce json
// @Param id path string true "供应商ID"
// @Param request body models.SupplierAudit true "审核信息"
// @Success 201 {object} APIResponse{data=models.SupplierAudit}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /suppliers/{id}/audits [post]
func (c *SupplierController) CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req models.SupplierAudit
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.service.CreateAudit(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		render.Render(w, r, ErrorResponse("创建供应商审核失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", req))
}

// ListAudits 审核记录列表
// @Summary 供应商审核列表
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.SupplierAudit}
// @Failure 404 {object} APIResponse
// @Router /suppliers/{id}/audits [get]
func (c *SupplierController) ListAudits(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	items, total, err := c.service.ListAudits(r.Context(), chi.URLParam(r, "id"), page, size)
	if err != nil {
		render.Render(w, r, ErrorResponse("查询供应商审核失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(items, total, page, size))
}
