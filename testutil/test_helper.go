/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性；每个测试库相互独立
 * @dependencies gorm, sqlite, testify, uuid
 * @refs service/models, service/database
 */

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"inspection-service/service/database"
	"inspection-service/service/event"
	"inspection-service/service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库，每次调用得到独立的共享缓存内存库
func NewTestDB() *TestDB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	if err := database.AutoMigrate(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"rnc_history",
		"rncs",
		"inspections",
		"supplier_audits",
		"supplier_evaluations",
		"suppliers",
		"inspection_plan_revisions",
		"inspection_plans",
		"products",
		"system_configs",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// ProductOption 产品选项函数类型
type ProductOption func(*models.Product)

// CreateProduct 创建测试产品
func (f *TestDataFactory) CreateProduct(opts ...ProductOption) *models.Product {
	product := &models.Product{
		Code:         "TEST-" + generateSuffix(),
		EAN:          "789" + generateSuffix(),
		Description:  "Produto de teste",
		Category:     "Cozinha",
		BusinessUnit: models.BusinessUnitKitchenBeauty,
		Voltages:     []string{"127V"},
	}

	for _, opt := range opts {
		opt(product)
	}

	if err := f.DB.Create(product).Error; err != nil {
		panic(fmt.Sprintf("failed to create test product: %v", err))
	}
	return product
}

// InspectionPlanOption 检验计划选项函数类型
type InspectionPlanOption func(*models.InspectionPlan)

// CreateInspectionPlan 创建测试检验计划，默认已生效
func (f *TestDataFactory) CreateInspectionPlan(productID string, opts ...InspectionPlanOption) *models.InspectionPlan {
	now := time.Now()
	plan := &models.InspectionPlan{
		PlanCode:        "PCI-" + generateSuffix(),
		PlanName:        "Plano de teste",
		PlanType:        models.PlanTypeProduct,
		Version:         models.FormatRevision(1),
		Status:          models.PlanStatusActive,
		ProductID:       productID,
		BusinessUnit:    models.BusinessUnitKitchenBeauty,
		InspectionType:  "mixed",
		AQLCritical:     0,
		AQLMajor:        2.5,
		AQLMinor:        4.0,
		SamplingMethod:  models.SamplingMethodNBR5426,
		InspectionLevel: "II",
		ApprovedBy:      "test",
		ApprovedAt:      &now,
		IsActive:        true,
		CreatedBy:       "test",
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := f.DB.Create(plan).Error; err != nil {
		panic(fmt.Sprintf("failed to create test inspection plan: %v", err))
	}
	return plan
}

// InspectionOption 检验选项函数类型
type InspectionOption func(*models.Inspection)

// CreateInspection 创建测试检验，默认为草稿
func (f *TestDataFactory) CreateInspection(productID, planID string, opts ...InspectionOption) *models.Inspection {
	inspection := &models.Inspection{
		InspectionCode: "INS-TEST-" + generateSuffix(),
		InspectionType: models.InspectionTypeStandard,
		ProductID:      productID,
		PlanID:         planID,
		InspectorID:    "inspector",
		Supplier:       "Fornecedor Teste",
		FresNF:         "NF-" + generateSuffix(),
		Status:         models.InspectionStatusDraft,
	}

	for _, opt := range opts {
		opt(inspection)
	}

	if err := f.DB.Create(inspection).Error; err != nil {
		panic(fmt.Sprintf("failed to create test inspection: %v", err))
	}
	return inspection
}

// SupplierOption 供应商选项函数类型
type SupplierOption func(*models.Supplier)

// CreateSupplier 创建测试供应商，默认为进口、启用状态
func (f *TestDataFactory) CreateSupplier(opts ...SupplierOption) *models.Supplier {
	suffix := generateSuffix()
	supplier := &models.Supplier{
		Code:          "FORN-" + suffix,
		Name:          "Fornecedor " + suffix,
		Type:          models.SupplierTypeImported,
		Country:       "China",
		Category:      "Eletroportáteis",
		Status:        models.SupplierStatusActive,
		ContactPerson: "Contato Teste",
		Email:         "contato@fornecedor.test",
		Phone:         "+86 21 0000-0000",
		CreatedBy:     "test",
	}

	for _, opt := range opts {
		opt(supplier)
	}

	if err := f.DB.Create(supplier).Error; err != nil {
		panic(fmt.Sprintf("failed to create test supplier: %v", err))
	}
	return supplier
}

// RNCOption RNC 选项函数类型
type RNCOption func(*models.RNC)

// CreateRNC 创建测试 RNC
func (f *TestDataFactory) CreateRNC(opts ...RNCOption) *models.RNC {
	due := time.Now().AddDate(0, 0, 30)
	rnc := &models.RNC{
		RNCCode:     "RNC-TEST-" + generateSuffix(),
		InspectorID: "inspector",
		Supplier:    "Fornecedor Teste",
		FresNF:      "NF-" + generateSuffix(),
		ProductCode: "TEST-PRODUCT",
		ProductName: "Produto de teste",
		Type:        models.RNCTypeCorrectiveAction,
		Status:      models.RNCStatusPending,
		SGQStatus:   models.SGQStatusPendingEvaluation,
		DueAt:       &due,
	}

	for _, opt := range opts {
		opt(rnc)
	}

	if err := f.DB.Create(rnc).Error; err != nil {
		panic(fmt.Sprintf("failed to create test rnc: %v", err))
	}
	return rnc
}

func generateSuffix() string {
	return uuid.New().String()[:8]
}

// MockPublisher Mock事件发布器
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// RecordingPublisher 记录已发布事件，供断言使用
type RecordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *RecordingPublisher) Publish(ctx context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *RecordingPublisher) Close() error { return nil }

// Types 已发布事件类型，按发布顺序
func (r *RecordingPublisher) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, evt := range r.events {
		types = append(types, evt.Type)
	}
	return types
}

// Events 已发布事件副本
func (r *RecordingPublisher) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// TestTransaction 测试事务辅助工具
type TestTransaction struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewTestTransaction 创建测试事务
func NewTestTransaction(db *gorm.DB) *TestTransaction {
	return &TestTransaction{db: db, tx: db.Begin()}
}

// DB 获取事务数据库
func (tt *TestTransaction) DB() *gorm.DB {
	return tt.tx
}

// Rollback 回滚事务
func (tt *TestTransaction) Rollback() {
	tt.tx.Rollback()
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DecodeResponse 解析统一响应体，返回 data 字段的原始 JSON
func (h *HTTPTestHelper) DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) (int, json.RawMessage) {
	t.Helper()
	var envelope struct {
		Status int             `json:"status"`
		Msg    string          `json:"msg"`
		Data   json.RawMessage `json:"data"`
	}
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String()) {
		return -1, nil
	}
	return envelope.Status, envelope.Data
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}
