/*
 * @module api/controllers/sampling_controller
 * @description 抽样计算器API：字码表查询、抽样方案、赠品全检、判定与印刷品子样本
 * @architecture MVC架构 - 控制器层
 * @documentReference NBR 5426 / dev_docs/sampling.md
 * @stateFlow HTTP请求 -> 抽样引擎(纯函数) -> JSON 响应
 * @rules 引擎输入错误一律返回 400；字码表未覆盖批量属于配置错误返回 500
 * @dependencies inspection-service/service/sampling, github.com/go-chi/render
 * @refs service/sampling/engine.go
 */

package controllers

import (
	"fmt"
	"net/http"

	"inspection-service/service/sampling"

	"github.com/go-chi/render"
)

// SamplingSettings 抽样计算依赖的运行时配置
type SamplingSettings interface {
	SamplingEngine() (*sampling.Engine, error)
	DefaultInspectionLevel() sampling.InspectionLevel
	DefaultAQLs() sampling.AQLSet
}

// SamplingController 抽样计算控制器
type SamplingController struct {
	settings SamplingSettings
}

// NewSamplingController 创建抽样计算控制器实例
func NewSamplingController(settings SamplingSettings) *SamplingController {
	return &SamplingController{settings: settings}
}

// CodeTableResponse 字码表
type CodeTableResponse struct {
	Name        string                         `json:"name" example:"application"`
	Rows        []sampling.LotSizeCodeRow      `json:"rows"`
	SampleSizes map[sampling.SampleSizeCode]int `json:"sample_sizes"`
}

// SampleCodeRequest 字码查询请求
type SampleCodeRequest struct {
	LotSize         int    `json:"lot_size" example:"150"`
	InspectionLevel string `json:"inspection_level,omitempty" example:"II"`
}

// SampleCodeResponse 字码查询结果
type SampleCodeResponse struct {
	LotSize         int                      `json:"lot_size" example:"150"`
	InspectionLevel sampling.InspectionLevel `json:"inspection_level" example:"II"`
	Code            sampling.SampleSizeCode  `json:"sample_code" example:"G"`
	SampleSize      int                      `json:"sample_size" example:"32"`
}

// SamplingPlanRequest 抽样方案请求，AQL 全为 0 时使用系统默认 AQL
type SamplingPlanRequest struct {
	LotSize         int             `json:"lot_size" example:"150"`
	InspectionLevel string          `json:"inspection_level,omitempty" example:"II"`
	AQLs            sampling.AQLSet `json:"aqls"`
}

// BonificationRequest 赠品全检请求
type BonificationRequest struct {
	LotSize int `json:"lot_size" example:"500"`
}

// EvaluateRequest 判定请求。limits 为空时按批量、检验水平和 AQL 计算。
type EvaluateRequest struct {
	SamplingPlanRequest
	Limits            *sampling.SeverityLimits `json:"severity_limits,omitempty"`
	Observed          sampling.DefectCounts    `json:"observed"`
	InspectedQuantity *int                     `json:"inspected_quantity,omitempty" example:"32"`
}

// EvaluateResponse 判定结果
type EvaluateResponse struct {
	sampling.Evaluation
	Label          string                  `json:"label" example:"Aprovado"`
	Limits         sampling.SeverityLimits `json:"severity_limits"`
	SampleSize     int                     `json:"sample_size,omitempty" example:"32"`
	QuantityStatus sampling.QuantityStatus `json:"quantity_status,omitempty" example:"equal"`
}

// GraphicRequest 印刷品子样本请求
type GraphicRequest struct {
	SampleSize   int  `json:"sample_size" example:"32"`
	Bonification bool `json:"bonification,omitempty" example:"false"`
}

// GetCodeTable 获取字码表
// @Summary 获取批量-字码表
// @Description 返回当前生效的批量-字码表，name 参数可查看其它内置字码表
// @Tags 抽样计算
// @Produce json
// @Param name query string false "字码表名称(application, ansi_z1.4)"
// @Success 200 {object} APIResponse{data=CodeTableResponse}
// @Failure 400 {object} APIResponse
// @Router /sampling/tables [get]
func (c *SamplingController) GetCodeTable(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	var rows []sampling.LotSizeCodeRow
	if name == "" {
		engine, err := c.settings.SamplingEngine()
		if err != nil {
			render.Render(w, r, InternalErrorResponse("获取抽样引擎失败", err))
			return
		}
		rows = engine.CodeTable()
		name = "current"
	} else {
		table, err := sampling.CodeTableByName(name)
		if err != nil {
			render.Render(w, r, BadRequestResponse("字码表不存在", err))
			return
		}
		rows = table
	}

	sizes := make(map[sampling.SampleSizeCode]int)
	for _, code := range sampling.SampleSizeCodes() {
		size, _ := sampling.ResolveSampleSize(code)
		sizes[code] = size
	}

	render.Render(w, r, SuccessResponse("查询成功", CodeTableResponse{Name: name, Rows: rows, SampleSizes: sizes}))
}

// GetSupportedAQLs 获取支持的 AQL
// @Summary 获取支持的 AQL 百分比
// @Tags 抽样计算
// @Produce json
// @Success 200 {object} APIResponse{data=[]float64}
// @Router /sampling/aqls [get]
func (c *SamplingController) GetSupportedAQLs(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, SuccessResponse("查询成功", map[string]interface{}{
		"aqls":     sampling.SupportedAQLs(),
		"defaults": c.settings.DefaultAQLs(),
		"levels":   sampling.InspectionLevels,
	}))
}

// ResolveCode 查询字码与样本量
// @Summary 批量 + 检验水平 -> 字码与样本量
// @Tags 抽样计算
// @Accept json
// @Produce json
// @Param request body SampleCodeRequest true "批量与检验水平"
// @Success 200 {object} APIResponse{data=SampleCodeResponse}
// @Failure 400 {object} APIResponse
// @Router /sampling/code [post]
func (c *SamplingController) ResolveCode(w http.ResponseWriter, r *http.Request) {
	var req SampleCodeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	engine, level, err := c.engineAndLevel(req.InspectionLevel)
	if err != nil {
		render.Render(w, r, ErrorResponse("抽样参数无效", err))
		return
	}

	code, err := engine.ResolveSampleSizeCode(req.LotSize, level)
	if err != nil {
		render.Render(w, r, ErrorResponse("计算字码失败", err))
		return
	}
	size, err := engine.ResolveSampleSize(code)
	if err != nil {
		render.Render(w, r, ErrorResponse("计算样本量失败", err))
		return
	}

	render.Render(w, r, SuccessResponse("计算成功", SampleCodeResponse{
		LotSize:         req.LotSize,
		InspectionLevel: level,
		Code:            code,
		SampleSize:      size,
	}))
}

// ComputePlan 计算抽样方案
// @Summary 计算抽样方案
// @Description 批量 + 检验水平 + AQL -> 字码、样本量与三档接收/拒收数
// @Tags 抽样计算
// @Accept json
// @Produce json
// @Param request body SamplingPlanRequest true "抽样参数"
// @Success 200 {object} APIResponse{data=sampling.SamplingPlan}
// @Failure 400 {object} APIResponse
// @Router /sampling/plan [post]
func (c *SamplingController) ComputePlan(w http.ResponseWriter, r *http.Request) {
	var req SamplingPlanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	plan, err := c.computePlan(req)
	if err != nil {
		render.Render(w, r, ErrorResponse("计算抽样方案失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("计算成功", plan))
}

// ComputeBonification 赠品全检方案
// @Summary 赠品检验抽样方案
// @Description 赠品检验 100% 全检，样本量等于批量
// @Tags 抽样计算
// @Accept json
// @Produce json
// @Param request body BonificationRequest true "批量"
// @Success 200 {object} APIResponse{data=sampling.SamplingPlan}
// @Failure 400 {object} APIResponse
// @Router /sampling/bonification [post]
func (c *SamplingController) ComputeBonification(w http.ResponseWriter, r *http.Request) {
	var req BonificationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	engine, err := c.settings.SamplingEngine()
	if err != nil {
		render.Render(w, r, InternalErrorResponse("获取抽样引擎失败", err))
		return
	}
	plan, err := engine.ComputeBonificationSampling(req.LotSize)
	if err != nil {
		render.Render(w, r, ErrorResponse("计算赠品抽样方案失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("计算成功", plan))
}

// Evaluate 判定
// @Summary 按缺陷数判定
// @Description 致命缺陷超限即拒收；严重或轻微超限转人工分级审批
// @Tags 抽样计算
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "限值与缺陷数"
// @Success 200 {object} APIResponse{data=EvaluateResponse}
// @Failure 400 {object} APIResponse
// @Router /sampling/evaluate [post]
func (c *SamplingController) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	response := EvaluateResponse{}
	if req.Limits != nil {
		response.Limits = *req.Limits
	} else {
		plan, err := c.computePlan(req.SamplingPlanRequest)
		if err != nil {
			render.Render(w, r, ErrorResponse("计算抽样方案失败", err))
			return
		}
		response.Limits = plan.Limits
		response.SampleSize = plan.SampleSize
	}

	ev, err := sampling.EvaluateDetail(response.Limits, req.Observed)
	if err != nil {
		render.Render(w, r, ErrorResponse("判定失败", err))
		return
	}
	response.Evaluation = ev
	response.Label = ev.Disposition.Label()

	if req.InspectedQuantity != nil && response.SampleSize > 0 {
		status, err := sampling.CheckInspectedQuantity(response.SampleSize, *req.InspectedQuantity)
		if err != nil {
			render.Render(w, r, ErrorResponse("实检数量无效", err))
			return
		}
		response.QuantityStatus = status
	}

	render.Render(w, r, SuccessResponse("判定完成", response))
}

// GraphicInspection 印刷品子样本
// @Summary 印刷品检验子样本
// @Description 印刷品检验取样本的 30%，拍照取其 20%（至少 1 件），每件 3 个照片位；赠品批固定拍照 1 件
// @Tags 抽样计算
// @Accept json
// @Produce json
// @Param request body GraphicRequest true "样本量"
// @Success 200 {object} APIResponse{data=sampling.GraphicInspectionPlan}
// @Failure 400 {object} APIResponse
// @Router /sampling/graphic [post]
func (c *SamplingController) GraphicInspection(w http.ResponseWriter, r *http.Request) {
	var req GraphicRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	compute := sampling.GraphicInspection
	if req.Bonification {
		compute = sampling.BonificationGraphicInspection
	}
	plan, err := compute(req.SampleSize)
	if err != nil {
		render.Render(w, r, ErrorResponse("计算子样本失败", err))
		return
	}
	render.Render(w, r, SuccessResponse("计算成功", plan))
}

func (c *SamplingController) computePlan(req SamplingPlanRequest) (sampling.SamplingPlan, error) {
	engine, level, err := c.engineAndLevel(req.InspectionLevel)
	if err != nil {
		return sampling.SamplingPlan{}, err
	}
	aqls := req.AQLs
	if aqls == (sampling.AQLSet{}) {
		aqls = c.settings.DefaultAQLs()
	}
	return engine.ComputeSamplingPlan(req.LotSize, level, aqls)
}

func (c *SamplingController) engineAndLevel(raw string) (*sampling.Engine, sampling.InspectionLevel, error) {
	engine, err := c.settings.SamplingEngine()
	if err != nil {
		return nil, "", fmt.Errorf("获取抽样引擎失败: %w", err)
	}
	if raw == "" {
		return engine, c.settings.DefaultInspectionLevel(), nil
	}
	level, err := sampling.ParseInspectionLevel(raw)
	if err != nil {
		return nil, "", err
	}
	return engine, level, nil
}
