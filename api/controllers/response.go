/*
 * @module api/controllers/response
 * @description 统一响应结构与错误到 HTTP 状态码的映射
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 业务结果/错误 -> APIResponse -> render
 * @rules 成功 status=0；输入错误 400；资源不存在 404；状态冲突 409；其余 500
 * @dependencies github.com/go-chi/render, github.com/spf13/cast
 * @refs service/sampling/errors.go
 */

package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"inspection-service/service/config"
	"inspection-service/service/inspection"
	"inspection-service/service/inspection_plan"
	"inspection-service/service/product"
	"inspection-service/service/rnc"
	"inspection-service/service/sampling"
	"inspection-service/service/supplier"

	"github.com/go-chi/render"
	"github.com/spf13/cast"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`

	httpStatus int
}

// Render 实现 render.Renderer，写入 HTTP 状态码
func (resp *APIResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if resp.httpStatus != 0 {
		render.Status(r, resp.httpStatus)
	}
	return nil
}

// PaginatedResponse 分页响应结构
type PaginatedResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"100"`
	Page   int         `json:"page" example:"1"`
	Size   int         `json:"size" example:"10"`
}

// Render 实现 render.Renderer
func (resp *PaginatedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data, httpStatus: http.StatusOK}
}

// CreatedResponse 创建成功响应
func CreatedResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data, httpStatus: http.StatusCreated}
}

// BadRequestResponse 请求参数错误
func BadRequestResponse(msg string, err error) *APIResponse {
	return errorResponse(http.StatusBadRequest, msg, err)
}

// NotFoundResponse 资源不存在
func NotFoundResponse(msg string, err error) *APIResponse {
	return errorResponse(http.StatusNotFound, msg, err)
}

// ConflictResponse 当前状态不允许该操作
func ConflictResponse(msg string, err error) *APIResponse {
	return errorResponse(http.StatusConflict, msg, err)
}

// InternalErrorResponse 服务内部错误
func InternalErrorResponse(msg string, err error) *APIResponse {
	return errorResponse(http.StatusInternalServerError, msg, err)
}

// NewPaginatedResponse 分页响应
func NewPaginatedResponse(data interface{}, total int64, page, size int) *PaginatedResponse {
	return &PaginatedResponse{Status: 0, Msg: "查询成功", Data: data, Total: total, Page: page, Size: size}
}

func errorResponse(status int, msg string, err error) *APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &APIResponse{Status: status, Msg: msg, httpStatus: status}
}

var notFoundErrors = []error{
	product.ErrProductNotFound,
	inspection_plan.ErrPlanNotFound,
	inspection.ErrNotFound,
	rnc.ErrNotFound,
	config.ErrUnknownConfigKey,
	supplier.ErrSupplierNotFound,
}

var badRequestErrors = []error{
	product.ErrInvalidProduct,
	product.ErrUnsupportedEncoding,
	inspection_plan.ErrInvalidPlan,
	inspection.ErrInvalidInspection,
	inspection.ErrInvalidDecision,
	inspection.ErrJustificationRequired,
	rnc.ErrInvalidRNC,
	config.ErrInvalidConfigValue,
	supplier.ErrInvalidSupplier,
	supplier.ErrInvalidEvaluation,
	supplier.ErrInvalidAudit,
}

var conflictErrors = []error{
	product.ErrDuplicateCode,
	product.ErrProductInUse,
	inspection_plan.ErrDuplicatePlanCode,
	inspection_plan.ErrInvalidPlanStatus,
	inspection_plan.ErrPlanInUse,
	inspection.ErrNoActivePlan,
	inspection.ErrInspectionFinalized,
	inspection.ErrSamplingNotConfigured,
	rnc.ErrInvalidTransition,
	rnc.ErrInspectionNotNC,
	supplier.ErrDuplicateCode,
	supplier.ErrSupplierInUse,
	supplier.ErrSupplierBlocked,
	inspection.ErrSupplierBlocked,
}

// ErrorResponse 按错误类别映射响应
func ErrorResponse(msg string, err error) *APIResponse {
	switch {
	case sampling.IsInputError(err) || isAny(err, badRequestErrors):
		return BadRequestResponse(msg, err)
	case isAny(err, notFoundErrors):
		return NotFoundResponse(msg, err)
	case isAny(err, conflictErrors):
		return ConflictResponse(msg, err)
	default:
		slog.Error(msg, "error", err)
		return InternalErrorResponse(msg, err)
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// parsePage 解析分页参数，默认第 1 页每页 10 条，每页最多 100 条
func parsePage(r *http.Request) (int, int) {
	query := r.URL.Query()
	page, size := cast.ToInt(query.Get("page")), cast.ToInt(query.Get("size"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
