/*
 * @module api/controllers/product_controller
 * @description 产品目录API控制器：增删改查、模糊搜索与 CSV 批量导入
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow HTTP请求 -> 产品服务 -> 数据库
 * @rules 导入支持 multipart 文件或原始请求体，encoding 参数支持 windows-1252
 * @dependencies inspection-service/service/product, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/product/import.go
 */

package controllers

import (
	"io"
	"net/http"
	"strings"

	"inspection-service/service/models"
	"inspection-service/service/product"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxImportSize = 10 << 20

// ProductController 产品控制器
type ProductController struct {
	service *product.Service
}

// NewProductController 创建产品控制器实例
func NewProductController(svc *product.Service) *ProductController {
	return &ProductController{service: svc}
}

// CreateProduct 创建产品
// @Summary 创建产品
// @Tags 产品
// @Accept json
// @Produce json
// @Param product body models.Product true "产品信息"
// @Success 201 {object} APIResponse{data=models.Product}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /products [post]
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.service.Create(r.Context(), &req); err != nil {
		render.Render(w, r, ErrorResponse("创建产品失败", err))
		return
	}
	render.Render(w, r, CreatedResponse("创建成功", &req))
}

// GetProduct 获取产品详情
// @Summary 获取产品详情
// @Tags 产品
// @Produce json
// @Param id path string true "产品ID"
// @Success 200 {object} APIResponse{data=models.Product}
// @Failure 404 {object} APIResponse
// @Router /products/{id} [get]
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse("查询产品失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", p))
}

// ListProducts 产品列表
// @Summary 产品列表
// @Tags 产品
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param business_unit query string false "业务单元"
// @Param category query string false "品类"
// @Success 200 {object} PaginatedResponse{data=[]models.Product}
// @Router /products [get]
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	query := r.URL.Query()

	items, total, err := c.service.List(r.Context(), product.ListFilter{
		Page:         page,
		Size:         size,
		BusinessUnit: query.Get("business_unit"),
		Category:     query.Get("category"),
	})
	if err != nil {
		render.Render(w, r, ErrorResponse("查询产品列表失败", err))
		return
	}
	render.Render(w, r, NewPaginatedResponse(items, total, page, size))
}

// SearchProducts 搜索产品
// @Summary 按编码、EAN 或描述搜索产品
// @Tags 产品
// @Produce json
// @Param q query string true "关键字"
// @Success 200 {object} APIResponse{data=[]models.Product}
// @Router /products/search [get]
func (c *ProductController) SearchProducts(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		render.Render(w, r, ErrorResponse("搜索产品失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("查询成功", items))
}

// UpdateProduct 更新产品
// @Summary 更新产品
// @Tags 产品
// @Accept json
// @Produce json
// @Param id path string true "产品ID"
// @Param product body models.Product true "产品信息"
// @Success 200 {object} APIResponse{data=models.Product}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /products/{id} [put]
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	p, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		render.Render(w, r, ErrorResponse("更新产品失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("更新成功", p))
}

// DeleteProduct 删除产品
// @Summary 删除产品
// @Description 被检验计划或检验记录引用的产品不能删除
// @Tags 产品
// @Produce json
// @Param id path string true "产品ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /products/{id} [delete]
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrorResponse("删除产品失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("删除成功", nil))
}

// ImportProducts CSV 导入产品
// @Summary CSV 批量导入产品
// @Description 列顺序 code;ean;description;category;business_unit，按编码新增或更新
// @Tags 产品
// @Accept multipart/form-data
// @Accept text/csv
// @Produce json
// @Param file formData file false "CSV 文件"
// @Param encoding query string false "文件编码(utf-8, windows-1252)"
// @Success 200 {object} APIResponse{data=product.ImportResult}
// @Failure 400 {object} APIResponse
// @Router /products/import [post]
func (c *ProductController) ImportProducts(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = http.MaxBytesReader(w, r.Body, maxImportSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			render.Render(w, r, BadRequestResponse("解析上传文件失败", err))
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			render.Render(w, r, BadRequestResponse("缺少上传文件", err))
			return
		}
		defer file.Close()
		reader = file
	}

	result, err := c.service.ImportCSV(r.Context(), reader, r.URL.Query().Get("encoding"))
	if err != nil {
		render.Render(w, r, ErrorResponse("导入产品失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("导入完成", result))
}
