/*
 * @module api/controllers/inspection_controller_test
 * @description 检验向导、检验计划与 RNC 接口的端到端测试
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 计划审批 -> 创建检验 -> 抽样配置 -> 缺陷录入 -> 最终决定 -> RNC
 * @rules 判定结果由服务端计算；非法状态返回 409
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"net/http"
	"testing"

	"inspection-service/service/event"
	"inspection-service/service/inspection"
	"inspection-service/service/models"
	"inspection-service/service/rnc"
	"inspection-service/service/sampling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInspectionPlanController_Lifecycle 测试计划创建、修订、审批、预览与停用
func TestInspectionPlanController_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	p := env.factory.CreateProduct()

	w := env.do(t, http.MethodPost, "/inspection-plans", models.InspectionPlan{
		PlanCode:  "PCI-001",
		PlanName:  "Plano Ventilador",
		ProductID: p.ID,
		CreatedBy: "engenharia",
	})
	var plan models.InspectionPlan
	env.data(t, w, http.StatusCreated, &plan)
	assert.Equal(t, models.PlanStatusDraft, plan.Status)
	assert.Equal(t, "Rev. 01", plan.Version)
	assert.Equal(t, 2.5, plan.AQLMajor)

	w = env.do(t, http.MethodPost, "/inspection-plans", models.InspectionPlan{
		PlanCode:    "PCI-002",
		PlanName:    "Plano inválido",
		ProductID:   p.ID,
		AQLCritical: 0.65,
		AQLMajor:    2.5,
		AQLMinor:    4.0,
	})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodPut, "/inspection-plans/"+plan.ID, UpdatePlanRequest{
		InspectionPlan: models.InspectionPlan{AQLMajor: 1.5, InspectionLevel: "III"},
		ChangedBy:      "qualidade",
	})
	env.data(t, w, http.StatusOK, &plan)
	assert.Equal(t, "Rev. 02", plan.Version)

	w = env.do(t, http.MethodGet, "/inspection-plans/"+plan.ID+"/revisions", nil)
	var revisions []models.InspectionPlanRevision
	env.data(t, w, http.StatusOK, &revisions)
	require.Len(t, revisions, 2)
	assert.Equal(t, "qualidade", revisions[1].ChangedBy)

	w = env.do(t, http.MethodPost, "/inspection-plans/"+plan.ID+"/approve", ApprovePlanRequest{})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodPost, "/inspection-plans/"+plan.ID+"/approve", ApprovePlanRequest{ApprovedBy: "coordenador"})
	env.data(t, w, http.StatusOK, &plan)
	assert.Equal(t, models.PlanStatusActive, plan.Status)
	assert.Contains(t, env.publisher.Types(), event.TypePlanApproved)

	w = env.do(t, http.MethodPost, "/inspection-plans/"+plan.ID+"/approve", ApprovePlanRequest{ApprovedBy: "coordenador"})
	env.data(t, w, http.StatusConflict, nil)

	w = env.do(t, http.MethodGet, "/inspection-plans/"+plan.ID+"/sampling-preview?lot_size=150", nil)
	var preview sampling.SamplingPlan
	env.data(t, w, http.StatusOK, &preview)
	assert.Equal(t, sampling.SampleSizeCode("H"), preview.Code)
	assert.Equal(t, 50, preview.SampleSize)
	assert.Equal(t, 1.5, preview.Limits.Major.AQL)

	w = env.do(t, http.MethodGet, "/inspection-plans/"+plan.ID+"/sampling-preview?lot_size=0", nil)
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodDelete, "/inspection-plans/"+plan.ID, nil)
	env.data(t, w, http.StatusConflict, nil)

	w = env.do(t, http.MethodPost, "/inspection-plans/"+plan.ID+"/deactivate", nil)
	env.data(t, w, http.StatusOK, &plan)
	assert.Equal(t, models.PlanStatusInactive, plan.Status)

	w = env.do(t, http.MethodGet, "/inspection-plans?product_id="+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = env.do(t, http.MethodDelete, "/inspection-plans/"+plan.ID, nil)
	env.data(t, w, http.StatusOK, nil)

	w = env.do(t, http.MethodGet, "/inspection-plans/"+plan.ID, nil)
	env.data(t, w, http.StatusNotFound, nil)
}

// TestInspectionController_Wizard 测试检验向导完整流程与 RNC 生成
func TestInspectionController_Wizard(t *testing.T) {
	env := newTestEnv(t)
	p := env.factory.CreateProduct()
	env.factory.CreateInspectionPlan(p.ID)

	w := env.do(t, http.MethodPost, "/inspections", inspection.CreateRequest{
		ProductID:   p.ID,
		InspectorID: "inspetor01",
		Supplier:    "Fornecedor ABC",
		FresNF:      "NF-123456",
	})
	var record models.Inspection
	env.data(t, w, http.StatusCreated, &record)
	assert.Equal(t, models.InspectionStatusDraft, record.Status)
	assert.Equal(t, "II", record.InspectionLevel)
	id := record.ID

	// 尚未配置抽样时不能录入缺陷
	w = env.do(t, http.MethodPut, "/inspections/"+id+"/defects", RecordDefectsRequest{})
	env.data(t, w, http.StatusConflict, nil)

	w = env.do(t, http.MethodPost, "/inspections/"+id+"/sampling", ConfigureSamplingRequest{LotSize: 0})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodPost, "/inspections/"+id+"/sampling", ConfigureSamplingRequest{LotSize: 150})
	env.data(t, w, http.StatusOK, &record)
	assert.Equal(t, models.InspectionStatusInProgress, record.Status)
	assert.Equal(t, "G", record.SampleCode)
	assert.Equal(t, 32, record.SampleSize)
	assert.Equal(t, 10, record.GraphicSample)
	assert.Equal(t, 2, record.PhotoSample)

	w = env.do(t, http.MethodPut, "/inspections/"+id+"/defects", RecordDefectsRequest{
		Defects: models.DefectList{
			{Description: "Risco na tampa", Severity: "major", Quantity: 3},
			{Description: "Etiqueta torta", Severity: "minor", Quantity: 1},
		},
		InspectedQuantity: 32,
	})
	var recorded RecordDefectsResponse
	env.data(t, w, http.StatusOK, &recorded)
	assert.Equal(t, sampling.DispositionPendingReview, recorded.Evaluation.Disposition)
	assert.True(t, recorded.Evaluation.NeedsHierarchicalReview)
	assert.Equal(t, sampling.QuantityEqual, recorded.Evaluation.QuantityStatus)

	w = env.do(t, http.MethodPut, "/inspections/"+id+"/defects", RecordDefectsRequest{
		Defects: models.DefectList{{Description: "?", Severity: "cosmetic", Quantity: 1}},
	})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodGet, "/inspections/"+id+"/evaluation", nil)
	var evaluation inspection.EvaluationResult
	env.data(t, w, http.StatusOK, &evaluation)
	assert.Equal(t, sampling.DispositionPendingReview, evaluation.Disposition)
	assert.Equal(t, 3, evaluation.Observed.Major)

	w = env.do(t, http.MethodPost, "/inspections/"+id+"/finalize", inspection.FinalizeRequest{Decision: "approved"})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodPost, "/inspections/"+id+"/finalize", inspection.FinalizeRequest{Decision: "maybe"})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodPost, "/inspections/"+id+"/finalize", inspection.FinalizeRequest{
		Decision:     "rejected",
		Observations: "Lote devolvido",
	})
	env.data(t, w, http.StatusOK, &record)
	assert.Equal(t, models.InspectionStatusRejected, record.Status)
	assert.Contains(t, env.publisher.Types(), event.TypeInspectionCompleted)

	w = env.do(t, http.MethodPost, "/inspections/"+id+"/finalize", inspection.FinalizeRequest{Decision: "rejected"})
	env.data(t, w, http.StatusConflict, nil)

	w = env.do(t, http.MethodGet, "/inspections?status=rejected", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	// 由拒收检验生成 RNC
	w = env.do(t, http.MethodPost, "/rncs/from-inspection/"+id, rnc.FromInspectionRequest{
		Type:                models.RNCTypeCorrectiveAction,
		ContainmentMeasures: "Segregar lote",
	})
	var report models.RNC
	env.data(t, w, http.StatusCreated, &report)
	assert.Equal(t, p.Code, report.ProductCode)
	assert.Equal(t, 150, report.LotSize)
	assert.Equal(t, 32, report.InspectedQuantity)
	assert.Equal(t, 4, report.TotalNonConformities)
	assert.True(t, report.LotBlocked)
	assert.False(t, report.IsRecurring)

	w = env.do(t, http.MethodPatch, "/rncs/"+report.ID+"/status", UpdateRNCStatusRequest{Status: models.RNCStatusClosed})
	env.data(t, w, http.StatusConflict, nil)

	w = env.do(t, http.MethodPatch, "/rncs/"+report.ID+"/status", UpdateRNCStatusRequest{Status: models.RNCStatusInAnalysis})
	env.data(t, w, http.StatusOK, &report)
	assert.Equal(t, models.SGQStatusUnderReview, report.SGQStatus)

	w = env.do(t, http.MethodGet, "/rncs/history/"+p.Code+"?supplier=Fornecedor%20ABC", nil)
	var history []models.RNCHistory
	env.data(t, w, http.StatusOK, &history)
	require.Len(t, history, 2)
	assert.Equal(t, models.RNCStatusInAnalysis, history[0].Status)

	w = env.do(t, http.MethodGet, "/rncs/"+report.ID, nil)
	env.data(t, w, http.StatusOK, &report)
	assert.Equal(t, models.RNCStatusInAnalysis, report.Status)

	w = env.do(t, http.MethodGet, "/rncs?status=in_analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

// TestInspectionController_Errors 测试创建检验的错误映射
func TestInspectionController_Errors(t *testing.T) {
	env := newTestEnv(t)
	p := env.factory.CreateProduct()

	w := env.do(t, http.MethodPost, "/inspections", inspection.CreateRequest{ProductID: p.ID, Supplier: "X", FresNF: "NF-1"})
	env.data(t, w, http.StatusConflict, nil)

	w = env.do(t, http.MethodPost, "/inspections", inspection.CreateRequest{ProductID: p.ID})
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodGet, "/inspections/unknown", nil)
	env.data(t, w, http.StatusNotFound, nil)

	w = env.do(t, http.MethodGet, "/inspections/unknown/evaluation", nil)
	env.data(t, w, http.StatusNotFound, nil)
}

// TestInspectionController_Bonification 测试赠品检验为全检且不要求检验计划
func TestInspectionController_Bonification(t *testing.T) {
	env := newTestEnv(t)
	p := env.factory.CreateProduct()

	w := env.do(t, http.MethodPost, "/inspections", inspection.CreateRequest{
		InspectionType: models.InspectionTypeBonification,
		ProductID:      p.ID,
		Supplier:       "Fornecedor ABC",
		FresNF:         "NF-9",
	})
	var record models.Inspection
	env.data(t, w, http.StatusCreated, &record)

	w = env.do(t, http.MethodPost, "/inspections/"+record.ID+"/sampling", ConfigureSamplingRequest{LotSize: 40})
	env.data(t, w, http.StatusOK, &record)
	assert.Equal(t, 40, record.SampleSize)
	assert.True(t, record.FullInspection)
}

// TestRNCController_CreateAndValidate 测试手工创建 RNC 与重复发生识别
func TestRNCController_CreateAndValidate(t *testing.T) {
	env := newTestEnv(t)
	p := env.factory.CreateProduct()
	ins := env.factory.CreateInspection(p.ID, "")

	req := rnc.CreateRequest{
		InspectionID:  ins.ID,
		Supplier:      "Fornecedor ABC",
		FresNF:        "NF-1",
		ProductCode:   p.Code,
		ProductName:   p.Description,
		LotSize:       150,
		DefectDetails: []models.RNCDefectDetail{{Type: "major", Description: "Risco", Quantity: 2}},
		Type:          models.RNCTypeInformation,
	}
	w := env.do(t, http.MethodPost, "/rncs", req)
	var first models.RNC
	env.data(t, w, http.StatusCreated, &first)
	assert.False(t, first.LotBlocked)
	assert.False(t, first.IsRecurring)

	w = env.do(t, http.MethodPost, "/rncs", req)
	var second models.RNC
	env.data(t, w, http.StatusCreated, &second)
	assert.True(t, second.IsRecurring)
	assert.Equal(t, 1, second.PreviousRNCCount)

	req.Supplier = ""
	w = env.do(t, http.MethodPost, "/rncs", req)
	env.data(t, w, http.StatusBadRequest, nil)

	w = env.do(t, http.MethodGet, "/rncs/missing", nil)
	env.data(t, w, http.StatusNotFound, nil)
}
