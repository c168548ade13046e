/*
 * @module service/inspection_plan/service
 * @description 检验计划服务：创建、修订、审批、停用以及按计划预览抽样方案
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow draft -> active -> inactive；每次修改生成新修订版本 Rev. NN
 * @rules 致命缺陷 AQL 恒为 0；同一产品同时只有一个生效计划；已被检验引用的计划不可删除
 * @dependencies inspection-service/service/models, inspection-service/service/sampling, inspection-service/service/event, gorm.io/gorm
 * @refs service/inspection/service.go
 */

package inspection_plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inspection-service/service/event"
	"inspection-service/service/models"
	"inspection-service/service/sampling"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound      = errors.New("检验计划不存在")
	ErrDuplicatePlanCode = errors.New("计划编码已存在")
	ErrInvalidPlan       = errors.New("检验计划数据无效")
	ErrInvalidPlanStatus = errors.New("检验计划状态不允许该操作")
	ErrPlanInUse         = errors.New("检验计划已被检验记录引用")
)

// Settings 计划服务依赖的运行时配置
type Settings interface {
	SamplingEngine() (*sampling.Engine, error)
	DefaultInspectionLevel() sampling.InspectionLevel
	DefaultAQLs() sampling.AQLSet
}

// ListFilter 列表过滤条件
type ListFilter struct {
	Page         int
	Size         int
	ProductID    string
	Status       string
	BusinessUnit string
}

// Service 检验计划服务
type Service struct {
	db        *gorm.DB
	settings  Settings
	publisher event.Publisher
}

// NewService 创建检验计划服务实例
func NewService(db *gorm.DB, settings Settings, publisher event.Publisher) *Service {
	return &Service{
		db:        db,
		settings:  settings,
		publisher: publisher,
	}
}

// Create 创建检验计划，初始版本为 Rev. 01，状态为草稿
func (s *Service) Create(ctx context.Context, plan *models.InspectionPlan) error {
	s.applyDefaults(plan)
	if err := validatePlan(plan); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.InspectionPlan{}).Where("plan_code = ?", plan.PlanCode).Count(&count).Error; err != nil {
		return fmt.Errorf("检查计划编码失败: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePlanCode, plan.PlanCode)
	}
	if err := s.resolveProduct(db, plan); err != nil {
		return err
	}

	plan.Version = models.FormatRevision(1)
	plan.Status = models.PlanStatusDraft
	plan.IsActive = false
	plan.ApprovedBy = ""
	plan.ApprovedAt = nil

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return fmt.Errorf("创建检验计划失败: %w", err)
		}
		revision := &models.InspectionPlanRevision{
			PlanID:         plan.ID,
			Version:        plan.Version,
			RevisionNumber: 1,
			Changes:        models.JSONB{"created": true},
			ChangedBy:      plan.CreatedBy,
		}
		if err := tx.Create(revision).Error; err != nil {
			return fmt.Errorf("写入修订记录失败: %w", err)
		}
		return nil
	})
}

// Get 获取检验计划
func (s *Service) Get(ctx context.Context, id string) (*models.InspectionPlan, error) {
	var plan models.InspectionPlan
	if err := s.db.WithContext(ctx).Preload("Product").First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("查询检验计划失败: %w", err)
	}
	return &plan, nil
}

// ActivePlanForProduct 获取产品当前生效的检验计划
func (s *Service) ActivePlanForProduct(ctx context.Context, productID string) (*models.InspectionPlan, error) {
	var plan models.InspectionPlan
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, models.PlanStatusActive).
		Order("approved_at DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("查询生效计划失败: %w", err)
	}
	return &plan, nil
}

// List 分页查询检验计划
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.InspectionPlan, int64, error) {
	var plans []models.InspectionPlan
	var total int64

	query := s.db.WithContext(ctx).Model(&models.InspectionPlan{})
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BusinessUnit != "" {
		query = query.Where("business_unit = ?", strings.ToUpper(filter.BusinessUnit))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计检验计划失败: %w", err)
	}

	page, size := normalizePage(filter.Page, filter.Size)
	err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&plans).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询检验计划列表失败: %w", err)
	}
	return plans, total, nil
}

// Update 修改检验计划，有变更时版本号加一并写入修订记录
func (s *Service) Update(ctx context.Context, id string, changes *models.InspectionPlan, changedBy string) (*models.InspectionPlan, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Product = nil
	mergeEditable(&updated, changes)
	s.applyDefaults(&updated)
	if err := validatePlan(&updated); err != nil {
		return nil, err
	}

	diff := diffPlans(existing, &updated)
	if len(diff) == 0 {
		return existing, nil
	}

	db := s.db.WithContext(ctx)
	if _, ok := diff["product_id"]; ok {
		if err := s.resolveProduct(db, &updated); err != nil {
			return nil, err
		}
	}

	next := models.ParseRevision(existing.Version) + 1
	updated.Version = models.FormatRevision(next)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return fmt.Errorf("更新检验计划失败: %w", err)
		}
		revision := &models.InspectionPlanRevision{
			PlanID:         updated.ID,
			Version:        updated.Version,
			RevisionNumber: next,
			Changes:        diff,
			ChangedBy:      changedBy,
		}
		if err := tx.Create(revision).Error; err != nil {
			return fmt.Errorf("写入修订记录失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("检验计划已修订", "plan_code", updated.PlanCode, "version", updated.Version, "fields", len(diff))
	return &updated, nil
}

// Approve 审批生效，同一产品的其他生效计划转为停用
func (s *Service) Approve(ctx context.Context, id, approvedBy string) (*models.InspectionPlan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == models.PlanStatusActive {
		return nil, fmt.Errorf("%w: 计划已生效", ErrInvalidPlanStatus)
	}
	if strings.TrimSpace(approvedBy) == "" {
		return nil, fmt.Errorf("%w: 审批人不能为空", ErrInvalidPlan)
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.ProductID != "" {
			err := tx.Model(&models.InspectionPlan{}).
				Where("product_id = ? AND status = ? AND id <> ?", plan.ProductID, models.PlanStatusActive, plan.ID).
				Updates(map[string]interface{}{"status": models.PlanStatusInactive, "is_active": false}).Error
			if err != nil {
				return fmt.Errorf("停用旧计划失败: %w", err)
			}
		}
		return tx.Model(plan).Updates(map[string]interface{}{
			"status":      models.PlanStatusActive,
			"is_active":   true,
			"approved_by": approvedBy,
			"approved_at": now,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("审批检验计划失败: %w", err)
	}

	plan.Status = models.PlanStatusActive
	plan.IsActive = true
	plan.ApprovedBy = approvedBy
	plan.ApprovedAt = &now

	event.Emit(ctx, s.publisher, event.New(event.TypePlanApproved, plan.ID, map[string]interface{}{
		"plan_id":     plan.ID,
		"plan_code":   plan.PlanCode,
		"version":     plan.Version,
		"product_id":  plan.ProductID,
		"approved_by": approvedBy,
	}))
	return plan, nil
}

// Deactivate 停用检验计划
func (s *Service) Deactivate(ctx context.Context, id string) (*models.InspectionPlan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == models.PlanStatusInactive {
		return plan, nil
	}
	err = s.db.WithContext(ctx).Model(plan).
		Updates(map[string]interface{}{"status": models.PlanStatusInactive, "is_active": false}).Error
	if err != nil {
		return nil, fmt.Errorf("停用检验计划失败: %w", err)
	}
	plan.Status = models.PlanStatusInactive
	plan.IsActive = false
	return plan, nil
}

// Delete 删除草稿或停用的检验计划
func (s *Service) Delete(ctx context.Context, id string) error {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if plan.Status == models.PlanStatusActive {
		return fmt.Errorf("%w: 生效中的计划需先停用", ErrInvalidPlanStatus)
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Inspection{}).Where("plan_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("检查计划引用失败: %w", err)
	}
	if count > 0 {
		return ErrPlanInUse
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&models.InspectionPlanRevision{}).Error; err != nil {
			return fmt.Errorf("删除修订记录失败: %w", err)
		}
		if err := tx.Delete(&models.InspectionPlan{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("删除检验计划失败: %w", err)
		}
		return nil
	})
}

// ListRevisions 按修订号升序列出修订记录
func (s *Service) ListRevisions(ctx context.Context, planID string) ([]models.InspectionPlanRevision, error) {
	if _, err := s.Get(ctx, planID); err != nil {
		return nil, err
	}
	var revisions []models.InspectionPlanRevision
	err := s.db.WithContext(ctx).Where("plan_id = ?", planID).Order("revision_number ASC").Find(&revisions).Error
	if err != nil {
		return nil, fmt.Errorf("查询修订记录失败: %w", err)
	}
	return revisions, nil
}

// SamplingPreview 按计划的检验水平与 AQL 预览给定批量的抽样方案
func (s *Service) SamplingPreview(ctx context.Context, planID string, lotSize int) (sampling.SamplingPlan, error) {
	plan, err := s.Get(ctx, planID)
	if err != nil {
		return sampling.SamplingPlan{}, err
	}
	engine, err := s.settings.SamplingEngine()
	if err != nil {
		return sampling.SamplingPlan{}, err
	}
	return PlanSampling(engine, plan, lotSize)
}

// PlanSampling 依据计划计算抽样方案；100% 检验时样本量等于批量
func PlanSampling(engine *sampling.Engine, plan *models.InspectionPlan, lotSize int) (sampling.SamplingPlan, error) {
	result, err := engine.ComputeSamplingPlan(lotSize, plan.Level(), plan.AQLs())
	if err != nil {
		return sampling.SamplingPlan{}, err
	}
	if plan.FullInspection() {
		result.SampleSize = lotSize
		result.FullInspection = true
	}
	return result, nil
}

func (s *Service) applyDefaults(plan *models.InspectionPlan) {
	plan.PlanCode = strings.TrimSpace(plan.PlanCode)
	plan.PlanName = strings.TrimSpace(plan.PlanName)
	plan.BusinessUnit = strings.ToUpper(strings.TrimSpace(plan.BusinessUnit))
	if plan.PlanType == "" {
		plan.PlanType = models.PlanTypeProduct
	}
	if plan.SamplingMethod == "" {
		plan.SamplingMethod = models.SamplingMethodNBR5426
	}
	if plan.InspectionLevel == "" && s.settings != nil {
		plan.InspectionLevel = string(s.settings.DefaultInspectionLevel())
	}
	if plan.AQLMajor == 0 && plan.AQLMinor == 0 && s.settings != nil {
		defaults := s.settings.DefaultAQLs()
		plan.AQLMajor = defaults.Major
		plan.AQLMinor = defaults.Minor
	}
}

func (s *Service) resolveProduct(db *gorm.DB, plan *models.InspectionPlan) error {
	if plan.ProductID == "" {
		if plan.PlanType == models.PlanTypeProduct {
			return fmt.Errorf("%w: 产品计划必须关联产品", ErrInvalidPlan)
		}
		return nil
	}
	var product models.Product
	if err := db.First(&product, "id = ?", plan.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 产品不存在 %s", ErrInvalidPlan, plan.ProductID)
		}
		return fmt.Errorf("查询产品失败: %w", err)
	}
	if plan.BusinessUnit == "" {
		plan.BusinessUnit = product.BusinessUnit
	}
	return nil
}

func validatePlan(plan *models.InspectionPlan) error {
	if plan.PlanCode == "" {
		return fmt.Errorf("%w: 计划编码不能为空", ErrInvalidPlan)
	}
	if plan.PlanName == "" {
		return fmt.Errorf("%w: 计划名称不能为空", ErrInvalidPlan)
	}
	if plan.PlanType != models.PlanTypeProduct && plan.PlanType != models.PlanTypeParts {
		return fmt.Errorf("%w: 计划类型无效 %q", ErrInvalidPlan, plan.PlanType)
	}
	if plan.InspectionType != "" && !contains(models.PlanInspectionTypes, plan.InspectionType) {
		return fmt.Errorf("%w: 检验类型无效 %q", ErrInvalidPlan, plan.InspectionType)
	}
	if plan.BusinessUnit != "" && !models.IsValidBusinessUnit(plan.BusinessUnit) {
		return fmt.Errorf("%w: 事业部无效 %q", ErrInvalidPlan, plan.BusinessUnit)
	}
	if plan.SamplingMethod != models.SamplingMethodNBR5426 && plan.SamplingMethod != models.SamplingMethodFull {
		return fmt.Errorf("%w: 抽样方法无效 %q", ErrInvalidPlan, plan.SamplingMethod)
	}

	level, err := sampling.ParseInspectionLevel(plan.InspectionLevel)
	if err != nil {
		return err
	}
	plan.InspectionLevel = string(level)

	if plan.AQLCritical != 0 {
		return fmt.Errorf("%w: 致命缺陷 AQL 必须为 0，实际为 %v", sampling.ErrUnsupportedAQLValue, plan.AQLCritical)
	}
	if !sampling.IsSupportedAQL(plan.AQLMajor) {
		return fmt.Errorf("%w: 严重缺陷 AQL %v", sampling.ErrUnsupportedAQLValue, plan.AQLMajor)
	}
	if !sampling.IsSupportedAQL(plan.AQLMinor) {
		return fmt.Errorf("%w: 轻微缺陷 AQL %v", sampling.ErrUnsupportedAQLValue, plan.AQLMinor)
	}
	return nil
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
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
