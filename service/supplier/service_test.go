/*
 * @module service/supplier/service_test
 * @description 供应商服务单元测试
 */

package supplier

import (
	"context"
	"testing"
	"time"

	"inspection-service/service/models"
	"inspection-service/testutil"

	"github.com/stretchr/testify/suite"
)

type SupplierServiceTestSuite struct {
	suite.Suite
	testDB  *testutil.TestDB
	factory *testutil.TestDataFactory
	service *Service
	ctx     context.Context
	now     time.Time
}

func (s *SupplierServiceTestSuite) SetupTest() {
	s.testDB = testutil.NewTestDB()
	s.factory = testutil.NewTestDataFactory(s.testDB.DB)
	s.service = NewService(s.testDB.DB)
	s.now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return s.now }
	s.ctx = context.Background()
}

func (s *SupplierServiceTestSuite) TearDownTest() {
	s.testDB.Close()
}

func (s *SupplierServiceTestSuite) newSupplier(code string) *models.Supplier {
	return &models.Supplier{
		Code:          code,
		Name:          "Fornecedor " + code,
		Type:          "Imported",
		Country:       "China",
		Category:      "Eletroportáteis",
		ContactPerson: "Li Wei",
		Email:         "li.wei@fornecedor.test",
		Phone:         "+86 574 0000-0000",
	}
}

// TestCreateAndValidate 测试创建时的规整与校验
func (s *SupplierServiceTestSuite) TestCreateAndValidate() {
	sup := s.newSupplier(" forn-001 ")
	sup.Rating = 5
	s.Require().NoError(s.service.Create(s.ctx, sup))
	s.NotEmpty(sup.ID)
	s.Equal("FORN-001", sup.Code)
	s.Equal(models.SupplierTypeImported, sup.Type)
	s.Equal(models.SupplierStatusActive, sup.Status)
	s.Zero(sup.Rating)

	s.ErrorIs(s.service.Create(s.ctx, s.newSupplier("FORN-001")), ErrDuplicateCode)

	mutations := map[string]func(*models.Supplier){
		"缺少名称":  func(m *models.Supplier) { m.Name = " " },
		"缺少电话":  func(m *models.Supplier) { m.Phone = "" },
		"类型无效":  func(m *models.Supplier) { m.Type = "local" },
		"状态无效":  func(m *models.Supplier) { m.Status = "closed" },
		"邮箱无效":  func(m *models.Supplier) { m.Email = "sem-arroba" },
		"缺少联系人": func(m *models.Supplier) { m.ContactPerson = "" },
	}
	for name, mutate := range mutations {
		candidate := s.newSupplier("FORN-NEW")
		mutate(candidate)
		s.ErrorIs(s.service.Create(s.ctx, candidate), ErrInvalidSupplier, name)
	}
}

// TestUpdateKeepsScores 测试更新不覆盖评分与审核信息
func (s *SupplierServiceTestSuite) TestUpdateKeepsScores() {
	sup := s.factory.CreateSupplier()
	other := s.factory.CreateSupplier()
	s.Require().NoError(s.testDB.DB.Model(sup).Updates(map[string]interface{}{"rating": 4.5, "audit_score": 90}).Error)

	changes := s.newSupplier(sup.Code)
	changes.Name = "Nome Novo"
	changes.Rating = 1
	changes.AuditScore = 10
	updated, err := s.service.Update(s.ctx, sup.ID, changes)
	s.Require().NoError(err)
	s.Equal("Nome Novo", updated.Name)
	s.Equal(4.5, updated.Rating)
	s.Equal(90.0, updated.AuditScore)
	s.Equal(models.SupplierStatusActive, updated.Status, "未传状态时保留原状态")

	_, err = s.service.Update(s.ctx, sup.ID, s.newSupplier(other.Code))
	s.ErrorIs(err, ErrDuplicateCode)

	_, err = s.service.Update(s.ctx, "missing", s.newSupplier("X"))
	s.ErrorIs(err, ErrSupplierNotFound)
}

// TestListFilters 测试列表过滤与搜索
func (s *SupplierServiceTestSuite) TestListFilters() {
	s.factory.CreateSupplier(func(m *models.Supplier) { m.Name = "Ningbo Kitchen" })
	s.factory.CreateSupplier(func(m *models.Supplier) {
		m.Name = "Metalúrgica Paulista"
		m.Type = models.SupplierTypeNational
		m.Country = "Brasil"
	})
	s.factory.CreateSupplier(func(m *models.Supplier) { m.Status = models.SupplierStatusSuspended })

	_, total, err := s.service.List(s.ctx, ListFilter{Status: "all"})
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	items, total, err := s.service.List(s.ctx, ListFilter{Type: models.SupplierTypeNational})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("Brasil", items[0].Country)

	_, total, err = s.service.List(s.ctx, ListFilter{Search: "NINGBO"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	_, total, err = s.service.List(s.ctx, ListFilter{Status: models.SupplierStatusActive, Country: "China"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	items, total, err = s.service.List(s.ctx, ListFilter{Page: 2, Size: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(items, 1)
}

// TestEvaluationRating 测试综合分与星级折算
func (s *SupplierServiceTestSuite) TestEvaluationRating() {
	sup := s.factory.CreateSupplier()

	first := &models.SupplierEvaluation{
		QualityScore: 90, DeliveryScore: 85, CostScore: 70, CommunicationScore: 95, TechnicalScore: 80,
	}
	s.Require().NoError(s.service.CreateEvaluation(s.ctx, sup.ID, first))
	s.Equal(84.0, first.OverallScore)
	s.Equal(s.now, first.EvaluationDate)

	second := &models.SupplierEvaluation{
		QualityScore: 60, DeliveryScore: 55, CostScore: 65, CommunicationScore: 60, TechnicalScore: 60,
	}
	s.Require().NoError(s.service.CreateEvaluation(s.ctx, sup.ID, second))
	s.Equal(60.0, second.OverallScore)

	loaded, err := s.service.Get(s.ctx, sup.ID)
	s.Require().NoError(err)
	// (84 + 60) / 2 = 72，折算 72 / 100 * 5
	s.InDelta(3.6, loaded.Rating, 0.001)

	err = s.service.CreateEvaluation(s.ctx, sup.ID, &models.SupplierEvaluation{QualityScore: -1})
	s.ErrorIs(err, ErrInvalidEvaluation)
	err = s.service.CreateEvaluation(s.ctx, sup.ID, &models.SupplierEvaluation{TechnicalScore: 100.5})
	s.ErrorIs(err, ErrInvalidEvaluation)
	err = s.service.CreateEvaluation(s.ctx, "missing", &models.SupplierEvaluation{})
	s.ErrorIs(err, ErrSupplierNotFound)

	items, total, err := s.service.ListEvaluations(s.ctx, sup.ID, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(items, 2)
}

// TestAuditUpdatesSupplier 测试审核写入刷新供应商审核信息
func (s *SupplierServiceTestSuite) TestAuditUpdatesSupplier() {
	sup := s.factory.CreateSupplier()
	auditDate := s.now.AddDate(0, 0, -3)
	next := auditDate.AddDate(1, 0, 0)

	audit := &models.SupplierAudit{
		AuditDate:     auditDate,
		Auditor:       "Auditor SGQ",
		AuditType:     "Renewal",
		Score:         76,
		Findings:      []string{"registro de calibração vencido"},
		NextAuditDate: &next,
	}
	s.Require().NoError(s.service.CreateAudit(s.ctx, sup.ID, audit))
	s.Equal(models.AuditTypeRenewal, audit.AuditType)
	s.Equal(models.AuditStatusCompleted, audit.Status)

	loaded, err := s.service.Get(s.ctx, sup.ID)
	s.Require().NoError(err)
	s.Equal(76.0, loaded.AuditScore)
	s.Require().NotNil(loaded.LastAudit)
	s.True(loaded.LastAudit.Equal(auditDate))
	s.Require().NotNil(loaded.NextAudit)
	s.True(loaded.NextAudit.Equal(next))

	invalid := []*models.SupplierAudit{
		{AuditType: "initial", Score: 80},
		{Auditor: "A", AuditType: "remote", Score: 80},
		{Auditor: "A", AuditType: "initial", Status: "done", Score: 80},
		{Auditor: "A", AuditType: "initial", Score: 101},
	}
	for i, a := range invalid {
		s.ErrorIs(s.service.CreateAudit(s.ctx, sup.ID, a), ErrInvalidAudit, "case %d", i)
	}

	before := auditDate.AddDate(0, 0, -1)
	err = s.service.CreateAudit(s.ctx, sup.ID, &models.SupplierAudit{
		AuditDate: auditDate, Auditor: "A", AuditType: "special", Score: 50, NextAuditDate: &before,
	})
	s.ErrorIs(err, ErrInvalidAudit)

	detail, err := s.service.GetDetail(s.ctx, sup.ID)
	s.Require().NoError(err)
	s.Len(detail.Audits, 1)
	s.Empty(detail.Evaluations)
}

// TestDeleteInUse 测试有关联记录的供应商不能删除
func (s *SupplierServiceTestSuite) TestDeleteInUse() {
	free := s.factory.CreateSupplier()
	s.Require().NoError(s.service.Delete(s.ctx, free.ID))
	_, err := s.service.Get(s.ctx, free.ID)
	s.ErrorIs(err, ErrSupplierNotFound)

	evaluated := s.factory.CreateSupplier()
	s.Require().NoError(s.service.CreateEvaluation(s.ctx, evaluated.ID, &models.SupplierEvaluation{QualityScore: 50}))
	s.ErrorIs(s.service.Delete(s.ctx, evaluated.ID), ErrSupplierInUse)

	inspected := s.factory.CreateSupplier()
	product := s.factory.CreateProduct()
	s.factory.CreateInspection(product.ID, "", func(i *models.Inspection) { i.SupplierID = inspected.ID })
	s.ErrorIs(s.service.Delete(s.ctx, inspected.ID), ErrSupplierInUse)

	reported := s.factory.CreateSupplier()
	s.factory.CreateRNC(func(r *models.RNC) { r.SupplierID = reported.ID })
	s.ErrorIs(s.service.Delete(s.ctx, reported.ID), ErrSupplierInUse)

	s.ErrorIs(s.service.Delete(s.ctx, "missing"), ErrSupplierNotFound)
}

// TestResolve 测试黑名单供应商不能被引用
func (s *SupplierServiceTestSuite) TestResolve() {
	active := s.factory.CreateSupplier()
	resolved, err := s.service.Resolve(s.ctx, active.ID)
	s.Require().NoError(err)
	s.Equal(active.Code, resolved.Code)

	blocked := s.factory.CreateSupplier(func(m *models.Supplier) { m.Status = models.SupplierStatusBlacklisted })
	_, err = s.service.Resolve(s.ctx, blocked.ID)
	s.ErrorIs(err, ErrSupplierBlocked)

	_, err = s.service.Resolve(s.ctx, "missing")
	s.ErrorIs(err, ErrSupplierNotFound)
}

// TestStats 测试概览统计
func (s *SupplierServiceTestSuite) TestStats() {
	a := s.factory.CreateSupplier()
	b := s.factory.CreateSupplier()
	s.factory.CreateSupplier(func(m *models.Supplier) {
		m.Type = models.SupplierTypeNational
		m.Country = "Brasil"
		m.Status = models.SupplierStatusUnderReview
	})
	s.Require().NoError(s.testDB.DB.Model(a).Update("rating", 4.0).Error)
	s.Require().NoError(s.testDB.DB.Model(b).Update("rating", 3.0).Error)

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.TotalSuppliers)
	s.Equal([]CountItem{{Key: "active", Count: 2}, {Key: "under_review", Count: 1}}, stats.SuppliersByStatus)
	s.Equal([]CountItem{{Key: "imported", Count: 2}, {Key: "national", Count: 1}}, stats.SuppliersByType)
	s.Equal([]CountItem{{Key: "China", Count: 2}, {Key: "Brasil", Count: 1}}, stats.SuppliersByCountry)
	s.Equal(3.5, stats.AverageRating, "未评估的供应商不计入平均星级")
}

func TestSupplierServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierServiceTestSuite))
}
