/*
 * @module service/supplier/service
 * @description 供应商服务：增删改查、绩效评估、审核记录与概览统计
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 创建 -> 评估/审核 -> 状态调整(暂停/黑名单)
 * @rules 编码唯一；有评估、审核、检验或 RNC 记录的供应商不可删除；评估写入后刷新星级，审核写入后刷新审核信息
 * @dependencies inspection-service/service/models, gorm.io/gorm
 * @refs service/inspection/service.go, service/rnc/service.go
 */

package supplier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"inspection-service/service/models"

	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound  = errors.New("供应商不存在")
	ErrDuplicateCode     = errors.New("供应商编码已存在")
	ErrInvalidSupplier   = errors.New("供应商数据无效")
	ErrInvalidEvaluation = errors.New("供应商评估数据无效")
	ErrInvalidAudit      = errors.New("供应商审核数据无效")
	ErrSupplierInUse     = errors.New("供应商已有评估、审核、检验或 RNC 记录")
	ErrSupplierBlocked   = errors.New("供应商已列入黑名单")
)

// 评分上限、星级满分与分页默认值
const (
	maxScore     = 100.0
	maxRating    = 5.0
	recentLimit  = 5
	defaultLimit = 10
)

// ListFilter 列表过滤条件
type ListFilter struct {
	Page     int
	Size     int
	Status   string
	Type     string
	Category string
	Country  string
	Search   string
}

// Detail 供应商详情，附最近的评估与审核
type Detail struct {
	*models.Supplier
	Evaluations []models.SupplierEvaluation `json:"evaluations"`
	Audits      []models.SupplierAudit      `json:"audits"`
}

// CountItem 分组统计项
type CountItem struct {
	Key   string `json:"key" example:"active"`
	Count int64  `json:"count" example:"12"`
}

// Stats 供应商概览
type Stats struct {
	TotalSuppliers     int64       `json:"total_suppliers" example:"20"`
	SuppliersByStatus  []CountItem `json:"suppliers_by_status"`
	SuppliersByType    []CountItem `json:"suppliers_by_type"`
	SuppliersByCountry []CountItem `json:"suppliers_by_country"`
	AverageRating      float64     `json:"average_rating" example:"4.1"`
}

// Service 供应商服务
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService 创建供应商服务实例
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Validate 校验并规整供应商字段
func Validate(s *models.Supplier) error {
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.Country = strings.TrimSpace(s.Country)
	s.Category = strings.TrimSpace(s.Category)
	s.ContactPerson = strings.TrimSpace(s.ContactPerson)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Status = strings.ToLower(strings.TrimSpace(s.Status))
	if s.Status == "" {
		s.Status = models.SupplierStatusActive
	}

	required := []struct{ field, value string }{
		{"code", s.Code}, {"name", s.Name}, {"type", s.Type}, {"country", s.Country},
		{"category", s.Category}, {"contact_person", s.ContactPerson}, {"email", s.Email}, {"phone", s.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s 不能为空", ErrInvalidSupplier, r.field)
		}
	}
	if s.Type != models.SupplierTypeImported && s.Type != models.SupplierTypeNational {
		return fmt.Errorf("%w: 类型无效 %q", ErrInvalidSupplier, s.Type)
	}
	if !contains(models.SupplierStatuses, s.Status) {
		return fmt.Errorf("%w: 状态无效 %q", ErrInvalidSupplier, s.Status)
	}
	if !strings.Contains(s.Email, "@") {
		return fmt.Errorf("%w: 邮箱格式错误 %q", ErrInvalidSupplier, s.Email)
	}
	return nil
}

// Create 创建供应商
func (s *Service) Create(ctx context.Context, sup *models.Supplier) error {
	if err := Validate(sup); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	if err := s.checkCode(db, sup.Code, ""); err != nil {
		return err
	}
	sup.Rating = 0
	sup.AuditScore = 0
	if err := db.Create(sup).Error; err != nil {
		return fmt.Errorf("创建供应商失败: %w", err)
	}
	slog.Info("供应商已创建", "code", sup.Code, "name", sup.Name)
	return nil
}

// Get 获取供应商
func (s *Service) Get(ctx context.Context, id string) (*models.Supplier, error) {
	var sup models.Supplier
	if err := s.db.WithContext(ctx).First(&sup, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("查询供应商失败: %w", err)
	}
	return &sup, nil
}

// GetDetail 获取供应商详情及最近 5 条评估和审核
func (s *Service) GetDetail(ctx context.Context, id string) (*Detail, error) {
	sup, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &Detail{Supplier: sup}
	db := s.db.WithContext(ctx)
	if err := db.Where("supplier_id = ?", id).Order("evaluation_date DESC").Limit(recentLimit).Find(&detail.Evaluations).Error; err != nil {
		return nil, fmt.Errorf("查询供应商评估失败: %w", err)
	}
	if err := db.Where("supplier_id = ?", id).Order("audit_date DESC").Limit(recentLimit).Find(&detail.Audits).Error; err != nil {
		return nil, fmt.Errorf("查询供应商审核失败: %w", err)
	}
	return detail, nil
}

// Resolve 供检验与 RNC 使用：按 ID 取供应商并拒绝黑名单
func (s *Service) Resolve(ctx context.Context, id string) (*models.Supplier, error) {
	sup, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sup.CanReceiveInspections() {
		return nil, fmt.Errorf("%w: %s", ErrSupplierBlocked, sup.Code)
	}
	return sup, nil
}

// List 分页查询供应商
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Supplier, int64, error) {
	var items []models.Supplier
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Supplier{})
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" && filter.Type != "all" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Country != "" && filter.Country != "all" {
		query = query.Where("country = ?", filter.Country)
	}
	if keyword := strings.ToLower(strings.TrimSpace(filter.Search)); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(contact_person) LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计供应商失败: %w", err)
	}
	page, size := normalizePage(filter.Page, filter.Size)
	if err := query.Order("name ASC").Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("查询供应商列表失败: %w", err)
	}
	return items, total, nil
}

// Update 更新供应商基础信息，评分与审核信息只由评估/审核写入
func (s *Service) Update(ctx context.Context, id string, changes *models.Supplier) (*models.Supplier, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes.ID = existing.ID
	changes.CreatedAt = existing.CreatedAt
	changes.CreatedBy = existing.CreatedBy
	changes.Rating = existing.Rating
	changes.AuditScore = existing.AuditScore
	changes.LastAudit = existing.LastAudit
	changes.NextAudit = existing.NextAudit
	if strings.TrimSpace(changes.Status) == "" {
		changes.Status = existing.Status
	}
	if err := Validate(changes); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if changes.Code != existing.Code {
		if err := s.checkCode(db, changes.Code, id); err != nil {
			return nil, err
		}
	}
	if err := db.Save(changes).Error; err != nil {
		return nil, fmt.Errorf("更新供应商失败: %w", err)
	}
	if changes.Status != existing.Status {
		slog.Info("供应商状态变更", "code", changes.Code, "from", existing.Status, "to", changes.Status)
	}
	return changes, nil
}

// Delete 删除没有任何历史记录的供应商
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)

	for _, model := range []interface{}{
		&models.SupplierEvaluation{},
		&models.SupplierAudit{},
		&models.Inspection{},
		&models.RNC{},
	} {
		var count int64
		if err := db.Model(model).Where("supplier_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("检查供应商引用失败: %w", err)
		}
		if count > 0 {
			return ErrSupplierInUse
		}
	}

	if err := db.Delete(&models.Supplier{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除供应商失败: %w", err)
	}
	return nil
}

// CreateEvaluation 写入绩效评估，综合分为五项平均，供应商星级为全部评估综合分均值折算到 0~5
func (s *Service) CreateEvaluation(ctx context.Context, supplierID string, eval *models.SupplierEvaluation) error {
	if _, err := s.Get(ctx, supplierID); err != nil {
		return err
	}
	scores := []float64{eval.QualityScore, eval.DeliveryScore, eval.CostScore, eval.CommunicationScore, eval.TechnicalScore}
	sum := 0.0
	for _, score := range scores {
		if score < 0 || score > maxScore {
			return fmt.Errorf("%w: 评分必须在 0~100 之间，实际为 %v", ErrInvalidEvaluation, score)
		}
		sum += score
	}

	eval.ID = ""
	eval.SupplierID = supplierID
	eval.OverallScore = round2(sum / float64(len(scores)))
	if eval.EvaluationDate.IsZero() {
		eval.EvaluationDate = s.now()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(eval).Error; err != nil {
			return fmt.Errorf("创建供应商评估失败: %w", err)
		}
		var avg float64
		err := tx.Model(&models.SupplierEvaluation{}).
			Where("supplier_id = ?", supplierID).
			Select("COALESCE(AVG(overall_score), 0)").
			Scan(&avg).Error
		if err != nil {
			return fmt.Errorf("计算供应商评分失败: %w", err)
		}
		rating := round2(avg / maxScore * maxRating)
		if err := tx.Model(&models.Supplier{}).Where("id = ?", supplierID).Update("rating", rating).Error; err != nil {
			return fmt.Errorf("更新供应商评分失败: %w", err)
		}
		return nil
	})
}

// ListEvaluations 分页查询供应商评估
func (s *Service) ListEvaluations(ctx context.Context, supplierID string, page, size int) ([]models.SupplierEvaluation, int64, error) {
	if _, err := s.Get(ctx, supplierID); err != nil {
		return nil, 0, err
	}
	var items []models.SupplierEvaluation
	var total int64
	query := s.db.WithContext(ctx).Model(&models.SupplierEvaluation{}).Where("supplier_id = ?", supplierID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计供应商评估失败: %w", err)
	}
	page, size = normalizePage(page, size)
	if err := query.Order("evaluation_date DESC").Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("查询供应商评估失败: %w", err)
	}
	return items, total, nil
}

// CreateAudit 写入审核记录，并刷新供应商最近审核日期、下次审核日期与审核得分
func (s *Service) CreateAudit(ctx context.Context, supplierID string, audit *models.SupplierAudit) error {
	if _, err := s.Get(ctx, supplierID); err != nil {
		return err
	}
	audit.Auditor = strings.TrimSpace(audit.Auditor)
	audit.AuditType = strings.ToLower(strings.TrimSpace(audit.AuditType))
	audit.Status = strings.ToLower(strings.TrimSpace(audit.Status))
	if audit.Status == "" {
		audit.Status = models.AuditStatusCompleted
	}
	switch {
	case audit.Auditor == "":
		return fmt.Errorf("%w: 审核员不能为空", ErrInvalidAudit)
	case !contains(models.AuditTypes, audit.AuditType):
		return fmt.Errorf("%w: 审核类型无效 %q", ErrInvalidAudit, audit.AuditType)
	case !contains(models.AuditStatuses, audit.Status):
		return fmt.Errorf("%w: 审核状态无效 %q", ErrInvalidAudit, audit.Status)
	case audit.Score < 0 || audit.Score > maxScore:
		return fmt.Errorf("%w: 审核得分必须在 0~100 之间，实际为 %v", ErrInvalidAudit, audit.Score)
	}

	audit.ID = ""
	audit.SupplierID = supplierID
	if audit.AuditDate.IsZero() {
		audit.AuditDate = s.now()
	}
	if audit.NextAuditDate != nil && audit.NextAuditDate.Before(audit.AuditDate) {
		return fmt.Errorf("%w: 下次审核日期早于审核日期", ErrInvalidAudit)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(audit).Error; err != nil {
			return fmt.Errorf("创建供应商审核失败: %w", err)
		}
		auditDate := audit.AuditDate
		updates := map[string]interface{}{
			"last_audit":  &auditDate,
			"next_audit":  audit.NextAuditDate,
			"audit_score": audit.Score,
		}
		if err := tx.Model(&models.Supplier{}).Where("id = ?", supplierID).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新供应商审核信息失败: %w", err)
		}
		return nil
	})
}

// ListAudits 分页查询供应商审核
func (s *Service) ListAudits(ctx context.Context, supplierID string, page, size int) ([]models.SupplierAudit, int64, error) {
	if _, err := s.Get(ctx, supplierID); err != nil {
		return nil, 0, err
	}
	var items []models.SupplierAudit
	var total int64
	query := s.db.WithContext(ctx).Model(&models.SupplierAudit{}).Where("supplier_id = ?", supplierID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计供应商审核失败: %w", err)
	}
	page, size = normalizePage(page, size)
	if err := query.Order("audit_date DESC").Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("查询供应商审核失败: %w", err)
	}
	return items, total, nil
}

// Stats 供应商概览统计
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	stats := &Stats{}
	if err := db.Model(&models.Supplier{}).Count(&stats.TotalSuppliers).Error; err != nil {
		return nil, fmt.Errorf("统计供应商失败: %w", err)
	}

	groups := []struct {
		column string
		out    *[]CountItem
	}{
		{"status", &stats.SuppliersByStatus},
		{"type", &stats.SuppliersByType},
		{"country", &stats.SuppliersByCountry},
	}
	for _, g := range groups {
		items := []CountItem{}
		err := db.Model(&models.Supplier{}).
			Select(g.column + " AS key, COUNT(*) AS count").
			Group(g.column).
			Order("count DESC, key ASC").
			Scan(&items).Error
		if err != nil {
			return nil, fmt.Errorf("按 %s 统计供应商失败: %w", g.column, err)
		}
		*g.out = items
	}

	var avg float64
	err := db.Model(&models.Supplier{}).
		Where("rating > 0").
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("统计供应商平均评分失败: %w", err)
	}
	stats.AverageRating = round2(avg)
	return stats, nil
}

func (s *Service) checkCode(db *gorm.DB, code, excludeID string) error {
	var count int64
	query := db.Model(&models.Supplier{}).Where("code = ?", code)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("检查供应商编码失败: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultLimit
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
