/*
 * @module service/rnc/service_test
 * @description RNC 服务单元测试
 */

package rnc

import (
	"context"
	"testing"
	"time"

	"inspection-service/service/event"
	"inspection-service/service/models"
	"inspection-service/service/sampling"
	"inspection-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSettings struct{ days int }

func (f fixedSettings) RNCDueDays() int { return f.days }

type fixture struct {
	svc       *Service
	factory   *testutil.TestDataFactory
	publisher *testutil.RecordingPublisher
	db        *testutil.TestDB
	product   *models.Product
	plan      *models.InspectionPlan
}

func setup(t *testing.T) *fixture {
	t.Helper()
	testDB := testutil.NewTestDB()
	t.Cleanup(testDB.Close)
	factory := testutil.NewTestDataFactory(testDB.DB)
	publisher := &testutil.RecordingPublisher{}
	product := factory.CreateProduct(func(p *models.Product) {
		p.Code = "AF-BBQ-127"
		p.Description = "Air Fryer Barbecue"
	})
	return &fixture{
		svc:       NewService(testDB.DB, fixedSettings{days: 15}, publisher),
		factory:   factory,
		publisher: publisher,
		db:        testDB,
		product:   product,
		plan:      factory.CreateInspectionPlan(product.ID),
	}
}

func (f *fixture) request(inspectionID string) CreateRequest {
	return CreateRequest{
		InspectionID: inspectionID,
		InspectorID:  "inspetor",
		Supplier:     "Fornecedor ABC",
		FresNF:       "NF-1",
		ProductCode:  f.product.Code,
		ProductName:  f.product.Description,
		LotSize:      150,
		DefectDetails: []models.RNCDefectDetail{
			{Type: "major", Description: "Risco na tampa", Quantity: 3},
			{Type: "minor", Description: "Etiqueta torta", Quantity: 2},
		},
	}
}

func TestService_CreateAndRecurrence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inspection := f.factory.CreateInspection(f.product.ID, f.plan.ID)

	first, err := f.svc.Create(ctx, f.request(inspection.ID))
	require.NoError(t, err)
	assert.Regexp(t, `^RNC-\d+-[0-9a-f]{6}$`, first.RNCCode)
	assert.Equal(t, models.RNCTypeCorrectiveAction, first.Type)
	assert.Equal(t, models.RNCStatusPending, first.Status)
	assert.Equal(t, models.SGQStatusPendingEvaluation, first.SGQStatus)
	assert.True(t, first.LotBlocked)
	assert.False(t, first.IsRecurring)
	assert.Equal(t, 5, first.TotalNonConformities)
	require.NotNil(t, first.DueAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 15), *first.DueAt, time.Minute)

	req := f.request(inspection.ID)
	req.Type = models.RNCTypeInformation
	second, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.IsRecurring)
	assert.Equal(t, 1, second.PreviousRNCCount)
	assert.False(t, second.LotBlocked)

	other := f.request(inspection.ID)
	other.Supplier = "Outro"
	third, err := f.svc.Create(ctx, other)
	require.NoError(t, err)
	assert.False(t, third.IsRecurring)

	history, err := f.svc.History(ctx, f.product.Code, "Fornecedor ABC")
	require.NoError(t, err)
	assert.Len(t, history, 4)

	all, err := f.svc.History(ctx, f.product.Code, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	assert.Equal(t, []string{event.TypeRNCCreated, event.TypeRNCCreated, event.TypeRNCCreated}, f.publisher.Types())

	loaded, err := f.svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.DefectDetails, 2)
}

func TestService_RecurrenceByRegisteredSupplier(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inspection := f.factory.CreateInspection(f.product.ID, f.plan.ID)
	sup := f.factory.CreateSupplier(func(s *models.Supplier) { s.Name = "Ningbo Kitchen Co." })

	// 旧记录只有名称，大小写不同也算同一供应商
	legacy := f.request(inspection.ID)
	legacy.Supplier = "NINGBO KITCHEN CO."
	_, err := f.svc.Create(ctx, legacy)
	require.NoError(t, err)

	linked := f.request(inspection.ID)
	linked.SupplierID = sup.ID
	linked.Supplier = ""
	record, err := f.svc.Create(ctx, linked)
	require.NoError(t, err)
	assert.Equal(t, sup.ID, record.SupplierID)
	assert.Equal(t, "Ningbo Kitchen Co.", record.Supplier)
	assert.True(t, record.IsRecurring)
	assert.Equal(t, 1, record.PreviousRNCCount)

	// 供应商改名后仍按 ID 识别重复
	require.NoError(t, f.db.DB.Model(&models.Supplier{}).Where("id = ?", sup.ID).Update("name", "Ningbo Appliances").Error)
	renamed, err := f.svc.Create(ctx, linked)
	require.NoError(t, err)
	assert.Equal(t, "Ningbo Appliances", renamed.Supplier)
	assert.True(t, renamed.IsRecurring)
	assert.Equal(t, 1, renamed.PreviousRNCCount, "旧名称的记录不再匹配，按 ID 匹配到上一条")

	history, err := f.svc.History(ctx, f.product.Code, sup.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	items, total, err := f.svc.List(ctx, ListFilter{SupplierID: sup.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	events := f.publisher.Events()
	payload, ok := events[len(events)-1].Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, sup.ID, payload["supplier_id"])

	missing := f.request(inspection.ID)
	missing.SupplierID = "missing"
	_, err = f.svc.Create(ctx, missing)
	assert.ErrorIs(t, err, ErrInvalidRNC)
}

func TestService_CreateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inspection := f.factory.CreateInspection(f.product.ID, f.plan.ID)

	mutations := []func(*CreateRequest){
		func(r *CreateRequest) { r.InspectionID = "" },
		func(r *CreateRequest) { r.InspectionID = "missing" },
		func(r *CreateRequest) { r.Supplier = " " },
		func(r *CreateRequest) { r.FresNF = "" },
		func(r *CreateRequest) { r.ProductName = "" },
		func(r *CreateRequest) { r.Type = "warning" },
		func(r *CreateRequest) { r.DefectDetails[0].Quantity = -1 },
	}
	for i, mutate := range mutations {
		req := f.request(inspection.ID)
		mutate(&req)
		_, err := f.svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRNC, "case %d", i)
	}
}

func TestService_CreateFromInspection(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	approved := f.factory.CreateInspection(f.product.ID, f.plan.ID, func(i *models.Inspection) {
		i.SampleSize = 32
		i.CriticalRejection = 1
		i.MajorAcceptance, i.MajorRejection = 2, 3
		i.MinorAcceptance, i.MinorRejection = 3, 4
	})
	_, err := f.svc.CreateFromInspection(ctx, approved.ID, FromInspectionRequest{})
	assert.ErrorIs(t, err, ErrInspectionNotNC)

	sup := f.factory.CreateSupplier()
	rejected := f.factory.CreateInspection(f.product.ID, f.plan.ID, func(i *models.Inspection) {
		i.SupplierID = sup.ID
		i.Supplier = sup.Name
		i.LotSize = 150
		i.SampleSize = 32
		i.CriticalRejection = 1
		i.MajorAcceptance, i.MajorRejection = 2, 3
		i.MinorAcceptance, i.MinorRejection = 3, 4
		i.CriticalCount = 1
		i.Defects = models.DefectList{{Description: "Fio exposto", Severity: sampling.SeverityCritical}}
	})
	record, err := f.svc.CreateFromInspection(ctx, rejected.ID, FromInspectionRequest{ContainmentMeasures: "Segregar lote"})
	require.NoError(t, err)
	assert.Equal(t, f.product.Code, record.ProductCode)
	assert.Equal(t, "Air Fryer Barbecue", record.ProductName)
	assert.Equal(t, 150, record.LotSize)
	assert.Equal(t, 32, record.InspectedQuantity)
	assert.Equal(t, 1, record.TotalNonConformities)
	assert.Equal(t, rejected.InspectorID, record.InspectorID)
	assert.Equal(t, sup.ID, record.SupplierID)

	_, err = f.svc.CreateFromInspection(ctx, "missing", FromInspectionRequest{})
	assert.ErrorIs(t, err, ErrInvalidRNC)
}

func TestService_UpdateStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	record := f.factory.CreateRNC(func(r *models.RNC) { r.LotBlocked = true })
	f.db.DB.Create(&models.RNCHistory{ProductCode: record.ProductCode, Supplier: record.Supplier, RNCID: record.ID, Status: record.Status})

	_, err := f.svc.UpdateStatus(ctx, record.ID, models.RNCStatusClosed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	steps := []string{models.RNCStatusInAnalysis, models.RNCStatusActionPlan, models.RNCStatusVerification, models.RNCStatusActionPlan, models.RNCStatusVerification, models.RNCStatusClosed}
	var updated *models.RNC
	for _, step := range steps {
		updated, err = f.svc.UpdateStatus(ctx, record.ID, step)
		require.NoError(t, err, step)
	}
	assert.Equal(t, models.RNCStatusClosed, updated.Status)
	assert.Equal(t, models.SGQStatusEvaluated, updated.SGQStatus)
	assert.NotNil(t, updated.ClosedAt)
	assert.False(t, updated.LotBlocked)

	_, err = f.svc.UpdateStatus(ctx, record.ID, models.RNCStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	history, err := f.svc.History(ctx, record.ProductCode, "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.RNCStatusClosed, history[0].Status)

	cancelled := f.factory.CreateRNC()
	result, err := f.svc.UpdateStatus(ctx, cancelled.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.RNCStatusCancelled, result.Status)

	_, err = f.svc.UpdateStatus(ctx, "missing", models.RNCStatusInAnalysis)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_MarkOverdue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	past := time.Now().AddDate(0, 0, -1)

	late := f.factory.CreateRNC(func(r *models.RNC) { r.DueAt = &past })
	f.factory.CreateRNC()
	f.factory.CreateRNC(func(r *models.RNC) {
		r.DueAt = &past
		r.Status = models.RNCStatusClosed
	})

	count, err := f.svc.MarkOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	reloaded, err := f.svc.Get(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SGQStatusOverdue, reloaded.SGQStatus)

	count, err = f.svc.MarkOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Equal(t, []string{event.TypeRNCOverdue}, f.publisher.Types())

	items, total, err := f.svc.List(ctx, ListFilter{SGQStatus: models.SGQStatusOverdue})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, late.ID, items[0].ID)
}
