package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inspection-service/service/config"
	"inspection-service/service/inspection"
	"inspection-service/service/inspection_plan"
	"inspection-service/service/product"
	"inspection-service/service/rnc"
	"inspection-service/service/supplier"
	"inspection-service/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/require"
)

// testEnv 控制器测试环境：内存库 + 真实服务 + chi 路由
type testEnv struct {
	factory   *testutil.TestDataFactory
	publisher *testutil.RecordingPublisher
	helper    *testutil.HTTPTestHelper
	router    *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	testDB := testutil.NewTestDB()
	t.Cleanup(testDB.Close)

	db := testDB.DB
	cfg := config.NewConfigService(db, nil)
	publisher := &testutil.RecordingPublisher{}
	products := product.NewService(db)
	plans := inspection_plan.NewService(db, cfg, publisher)
	inspections := inspection.NewService(db, cfg, plans, publisher)
	rncs := rnc.NewService(db, cfg, publisher)
	suppliers := supplier.NewService(db)

	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	samplingController := NewSamplingController(cfg)
	r.Get("/sampling/tables", samplingController.GetCodeTable)
	r.Get("/sampling/aqls", samplingController.GetSupportedAQLs)
	r.Post("/sampling/code", samplingController.ResolveCode)
	r.Post("/sampling/plan", samplingController.ComputePlan)
	r.Post("/sampling/bonification", samplingController.ComputeBonification)
	r.Post("/sampling/evaluate", samplingController.Evaluate)
	r.Post("/sampling/graphic", samplingController.GraphicInspection)

	productController := NewProductController(products)
	r.Post("/products", productController.CreateProduct)
	r.Get("/products", productController.ListProducts)
	r.Get("/products/search", productController.SearchProducts)
	r.Post("/products/import", productController.ImportProducts)
	r.Get("/products/{id}", productController.GetProduct)
	r.Put("/products/{id}", productController.UpdateProduct)
	r.Delete("/products/{id}", productController.DeleteProduct)

	planController := NewInspectionPlanController(plans)
	r.Post("/inspection-plans", planController.CreatePlan)
	r.Get("/inspection-plans", planController.ListPlans)
	r.Get("/inspection-plans/{id}", planController.GetPlan)
	r.Put("/inspection-plans/{id}", planController.UpdatePlan)
	r.Delete("/inspection-plans/{id}", planController.DeletePlan)
	r.Post("/inspection-plans/{id}/approve", planController.ApprovePlan)
	r.Post("/inspection-plans/{id}/deactivate", planController.DeactivatePlan)
	r.Get("/inspection-plans/{id}/revisions", planController.ListRevisions)
	r.Get("/inspection-plans/{id}/sampling-preview", planController.SamplingPreview)

	inspectionController := NewInspectionController(inspections)
	r.Post("/inspections", inspectionController.CreateInspection)
	r.Get("/inspections", inspectionController.ListInspections)
	r.Get("/inspections/{id}", inspectionController.GetInspection)
	r.Post("/inspections/{id}/sampling", inspectionController.ConfigureSampling)
	r.Put("/inspections/{id}/defects", inspectionController.RecordDefects)
	r.Get("/inspections/{id}/evaluation", inspectionController.GetEvaluation)
	r.Post("/inspections/{id}/finalize", inspectionController.FinalizeInspection)

	rncController := NewRNCController(rncs)
	r.Post("/rncs", rncController.CreateRNC)
	r.Get("/rncs", rncController.ListRNCs)
	r.Post("/rncs/from-inspection/{inspectionId}", rncController.CreateFromInspection)
	r.Get("/rncs/history/{productCode}", rncController.GetHistory)
	r.Get("/rncs/{id}", rncController.GetRNC)
	r.Patch("/rncs/{id}/status", rncController.UpdateRNCStatus)

	supplierController := NewSupplierController(suppliers)
	r.Post("/suppliers", supplierController.CreateSupplier)
	r.Get("/suppliers", supplierController.ListSuppliers)
	r.Get("/suppliers/stats/overview", supplierController.GetStats)
	r.Get("/suppliers/{id}", supplierController.GetSupplier)
	r.Put("/suppliers/{id}", supplierController.UpdateSupplier)
	r.Delete("/suppliers/{id}", supplierController.DeleteSupplier)
	r.Post("/suppliers/{id}/evaluations", supplierController.CreateEvaluation)
	r.Get("/suppliers/{id}/evaluations", supplierController.ListEvaluations)
	r.Post("/suppliers/{id}/audits", supplierController.CreateAudit)
	r.Get("/suppliers/{id}/audits", supplierController.ListAudits)

	configController := NewConfigController(cfg)
	r.Get("/configs", configController.GetAllConfigs)
	r.Post("/configs/batch", configController.BatchUpdateConfigs)
	r.Get("/configs/{key}", configController.GetConfig)
	r.Put("/configs/{key}", configController.UpdateConfig)

	return &testEnv{
		factory:   testutil.NewTestDataFactory(db),
		publisher: publisher,
		helper:    testutil.NewHTTPTestHelper(),
		router:    r,
	}
}

// do 发送 JSON 请求
func (e *testEnv) do(t *testing.T, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, err := e.helper.CreateJSONRequest(method, url, body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doRaw 发送原始请求体
func (e *testEnv) doRaw(t *testing.T, method, url, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// data 断言状态码并把 data 字段解到 out
func (e *testEnv) data(t *testing.T, w *httptest.ResponseRecorder, expectedCode int, out interface{}) {
	t.Helper()
	require.Equal(t, expectedCode, w.Code, w.Body.String())
	status, raw := e.helper.DecodeResponse(t, w)
	if expectedCode < http.StatusBadRequest {
		require.Equal(t, 0, status)
	} else {
		require.Equal(t, expectedCode, status)
	}
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
}
