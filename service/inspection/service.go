/*
 * @module service/inspection/service
 * @description 检验向导服务：创建检验、配置抽样、录入缺陷、实时判定、最终决定
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md, NBR 5426
 * @stateFlow draft -> in_progress -> approved | conditionally_approved | rejected
 * @rules 判定结果始终由抽样引擎推导，不落库；拒收判定不可直接批准；偏离判定结果的决定需要说明理由
 * @dependencies inspection-service/service/models, inspection-service/service/sampling, inspection-service/service/inspection_plan, inspection-service/service/event, inspection-service/service/monitoring
 * @refs service/sampling/engine.go
 */

package inspection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inspection-service/service/event"
	"inspection-service/service/inspection_plan"
	"inspection-service/service/models"
	"inspection-service/service/monitoring"
	"inspection-service/service/sampling"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

var (
	ErrNotFound              = errors.New("检验记录不存在")
	ErrInvalidInspection     = errors.New("检验数据无效")
	ErrNoActivePlan          = errors.New("产品没有生效的检验计划")
	ErrInspectionFinalized   = errors.New("检验已作出最终决定")
	ErrSamplingNotConfigured = errors.New("检验尚未配置抽样方案")
	ErrInvalidDecision       = errors.New("最终决定无效")
	ErrJustificationRequired = errors.New("需要填写判定理由")
	ErrSupplierBlocked       = errors.New("供应商已列入黑名单，不能开检验")
)

// Settings 检验服务依赖的运行时配置
type Settings interface {
	SamplingEngine() (*sampling.Engine, error)
	DefaultInspectionLevel() sampling.InspectionLevel
}

// CreateRequest 创建检验请求
type CreateRequest struct {
	InspectionType  string `json:"inspection_type" example:"standard"`
	ProductID       string `json:"product_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PlanID          string `json:"plan_id,omitempty"`
	InspectorID     string `json:"inspector_id" example:"inspetor01"`
	SupplierID      string `json:"supplier_id,omitempty" example:"6f1c2d3e-0000-4000-8000-000000000001"`
	Supplier        string `json:"supplier" example:"Fornecedor ABC"`
	FresNF          string `json:"fres_nf" example:"NF-123456"`
	InspectionLevel string `json:"inspection_level,omitempty" example:"II"`
}

// FinalizeRequest 最终决定请求
type FinalizeRequest struct {
	Decision          string `json:"decision" example:"approved"`
	Justification     string `json:"justification,omitempty"`
	Observations      string `json:"observations,omitempty"`
	InspectedQuantity int    `json:"inspected_quantity,omitempty" example:"32"`
}

// EvaluationResult 实时判定结果
type EvaluationResult struct {
	sampling.Evaluation
	Label             string                  `json:"label" example:"Aprovado"`
	SampleSize        int                     `json:"sample_size" example:"32"`
	InspectedQuantity int                     `json:"inspected_quantity" example:"32"`
	QuantityStatus    sampling.QuantityStatus `json:"quantity_status,omitempty" example:"equal"`
	Limits            sampling.SeverityLimits `json:"severity_limits"`
}

// ListFilter 列表过滤条件
type ListFilter struct {
	Page           int
	Size           int
	Status         string
	InspectionType string
	ProductID      string
	InspectorID    string
	SupplierID     string
	Supplier       string
}

// Service 检验服务
type Service struct {
	db        *gorm.DB
	settings  Settings
	plans     *inspection_plan.Service
	publisher event.Publisher
	now       func() time.Time
}

// NewService 创建检验服务实例
func NewService(db *gorm.DB, settings Settings, plans *inspection_plan.Service, publisher event.Publisher) *Service {
	return &Service{
		db:        db,
		settings:  settings,
		plans:     plans,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create 创建草稿检验，复制计划的检验水平与 AQL；赠品检验固定使用默认 AQL
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Inspection, error) {
	req.InspectionType = strings.ToLower(strings.TrimSpace(req.InspectionType))
	if req.InspectionType == "" {
		req.InspectionType = models.InspectionTypeStandard
	}
	if !models.IsValidInspectionType(req.InspectionType) {
		return nil, fmt.Errorf("%w: 检验类别无效 %q", ErrInvalidInspection, req.InspectionType)
	}
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, fmt.Errorf("%w: 产品不能为空", ErrInvalidInspection)
	}
	if strings.TrimSpace(req.FresNF) == "" {
		return nil, fmt.Errorf("%w: FRES/NF 不能为空", ErrInvalidInspection)
	}

	db := s.db.WithContext(ctx)
	if err := resolveSupplier(db, &req); err != nil {
		return nil, err
	}
	var product models.Product
	if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 产品不存在 %s", ErrInvalidInspection, req.ProductID)
		}
		return nil, fmt.Errorf("查询产品失败: %w", err)
	}

	plan, err := s.resolvePlan(ctx, req)
	if err != nil {
		return nil, err
	}

	level := s.settings.DefaultInspectionLevel()
	if plan != nil {
		level = plan.Level()
	}
	if req.InspectionLevel != "" {
		if level, err = sampling.ParseInspectionLevel(req.InspectionLevel); err != nil {
			return nil, err
		}
	}

	aqls := sampling.DefaultAQLs
	if plan != nil && req.InspectionType != models.InspectionTypeBonification {
		aqls = plan.AQLs()
	}

	inspection := &models.Inspection{
		InspectionType:  req.InspectionType,
		ProductID:       product.ID,
		InspectorID:     strings.TrimSpace(req.InspectorID),
		SupplierID:      req.SupplierID,
		Supplier:        req.Supplier,
		FresNF:          strings.TrimSpace(req.FresNF),
		InspectionLevel: string(level),
		AQLCritical:     aqls.Critical,
		AQLMajor:        aqls.Major,
		AQLMinor:        aqls.Minor,
		Status:          models.InspectionStatusDraft,
		StartedAt:       s.now(),
	}
	if plan != nil {
		inspection.PlanID = plan.ID
		inspection.PlanVersion = plan.Version
	}
	if req.InspectionType == models.InspectionTypeBonification {
		inspection.InspectionLevel = ""
	}

	if err := s.insertWithCode(db, inspection); err != nil {
		return nil, err
	}
	slog.Info("检验已创建", "inspection_code", inspection.InspectionCode, "type", inspection.InspectionType, "product", product.Code)
	return inspection, nil
}

// Get 获取检验详情，加载时重新计算判定结果
func (s *Service) Get(ctx context.Context, id string) (*models.Inspection, error) {
	var inspection models.Inspection
	err := s.db.WithContext(ctx).Preload("Product").Preload("Plan").Preload("RegisteredSupplier").First(&inspection, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询检验失败: %w", err)
	}
	return &inspection, nil
}

// List 分页查询检验记录
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Inspection, int64, error) {
	var inspections []models.Inspection
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Inspection{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InspectionType != "" {
		query = query.Where("inspection_type = ?", filter.InspectionType)
	}
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.InspectorID != "" {
		query = query.Where("inspector_id = ?", filter.InspectorID)
	}
	if filter.SupplierID != "" {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Supplier != "" {
		query = query.Where("LOWER(supplier) LIKE ?", "%"+strings.ToLower(filter.Supplier)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计检验失败: %w", err)
	}

	page, size := normalizePage(filter.Page, filter.Size)
	err := query.Preload("Product").Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&inspections).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询检验列表失败: %w", err)
	}
	return inspections, total, nil
}

// ConfigureSampling 按批量计算抽样方案并写入检验，level 为空时沿用检验的检验水平
func (s *Service) ConfigureSampling(ctx context.Context, id string, lotSize int, level string) (*models.Inspection, error) {
	inspection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection.IsFinal() {
		return nil, ErrInspectionFinalized
	}

	engine, err := s.settings.SamplingEngine()
	if err != nil {
		return nil, err
	}

	var plan sampling.SamplingPlan
	if inspection.InspectionType == models.InspectionTypeBonification {
		plan, err = engine.ComputeBonificationSampling(lotSize)
	} else {
		lvl := inspection.Level()
		if level != "" {
			if lvl, err = sampling.ParseInspectionLevel(level); err != nil {
				return nil, err
			}
		}
		if !lvl.Valid() {
			lvl = s.settings.DefaultInspectionLevel()
		}
		plan, err = engine.ComputeSamplingPlan(lotSize, lvl, inspection.AQLs())
		if err == nil && inspection.Plan != nil && inspection.Plan.FullInspection() {
			plan.SampleSize = lotSize
			plan.FullInspection = true
		}
	}
	if err != nil {
		return nil, err
	}

	inspection.ApplySamplingPlan(plan)
	subSample := sampling.GraphicInspection
	if inspection.InspectionType == models.InspectionTypeBonification {
		subSample = sampling.BonificationGraphicInspection
	}
	graphic, err := subSample(plan.SampleSize)
	if err != nil {
		return nil, err
	}
	inspection.GraphicSample = graphic.GraphicSample
	inspection.PhotoSample = graphic.PhotoSample
	inspection.Status = models.InspectionStatusInProgress

	if err := s.save(ctx, inspection); err != nil {
		return nil, err
	}

	monitoring.RecordSamplingPlan(inspection.InspectionType, inspection.InspectionLevel, plan.SampleSize)
	event.Emit(ctx, s.publisher, event.New(event.TypeInspectionSamplingConfigured, inspection.ID, map[string]interface{}{
		"inspection_id":   inspection.ID,
		"inspection_code": inspection.InspectionCode,
		"lot_size":        plan.LotSize,
		"sample_code":     plan.Code,
		"sample_size":     plan.SampleSize,
		"full_inspection": plan.FullInspection,
		"severity_limits": plan.Limits,
	}))
	return inspection, nil
}

// RecordDefects 替换缺陷清单并重新汇总各严重度数量，返回实时判定
func (s *Service) RecordDefects(ctx context.Context, id string, defects models.DefectList, inspectedQuantity int) (*models.Inspection, *EvaluationResult, error) {
	inspection, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inspection.IsFinal() {
		return nil, nil, ErrInspectionFinalized
	}
	if !inspection.SamplingConfigured() {
		return nil, nil, ErrSamplingNotConfigured
	}
	if inspectedQuantity < 0 {
		return nil, nil, fmt.Errorf("%w: 实检数量 %d", sampling.ErrInvalidDefectCount, inspectedQuantity)
	}

	for i := range defects {
		severity, err := sampling.ParseSeverity(string(defects[i].Severity))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: 第 %d 条缺陷: %v", ErrInvalidInspection, i+1, err)
		}
		defects[i].Severity = severity
	}
	counts, err := defects.Counts()
	if err != nil {
		return nil, nil, err
	}

	inspection.Defects = defects
	inspection.ApplyCounts(counts)
	if inspectedQuantity > 0 {
		inspection.InspectedQuantity = inspectedQuantity
	}

	if err := s.save(ctx, inspection); err != nil {
		return nil, nil, err
	}

	result, err := evaluate(inspection)
	if err != nil {
		return nil, nil, err
	}
	inspection.Disposition = result.Disposition
	return inspection, result, nil
}

// Evaluate 计算当前判定、是否需要分级审批以及实检数量比较
func (s *Service) Evaluate(ctx context.Context, id string) (*EvaluationResult, error) {
	inspection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inspection.SamplingConfigured() {
		return nil, ErrSamplingNotConfigured
	}
	return evaluate(inspection)
}

// Finalize 作出最终决定
func (s *Service) Finalize(ctx context.Context, id string, req FinalizeRequest) (*models.Inspection, error) {
	inspection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection.IsFinal() {
		return nil, ErrInspectionFinalized
	}
	if !inspection.SamplingConfigured() {
		return nil, ErrSamplingNotConfigured
	}
	if req.InspectedQuantity < 0 {
		return nil, fmt.Errorf("%w: 实检数量 %d", sampling.ErrInvalidDefectCount, req.InspectedQuantity)
	}

	decision := strings.ToLower(strings.TrimSpace(req.Decision))
	justification := strings.TrimSpace(req.Justification)

	ev, err := inspection.Evaluation()
	if err != nil {
		return nil, err
	}
	if err := checkDecision(decision, ev.Disposition, justification); err != nil {
		return nil, err
	}

	now := s.now()
	inspection.Status = decision
	inspection.FinalDecision = decision
	inspection.Justification = justification
	inspection.Observations = strings.TrimSpace(req.Observations)
	inspection.CompletedAt = &now
	if req.InspectedQuantity > 0 {
		inspection.InspectedQuantity = req.InspectedQuantity
	}

	if err := s.save(ctx, inspection); err != nil {
		return nil, err
	}
	inspection.Disposition = ev.Disposition

	monitoring.RecordDisposition(string(ev.Disposition))
	monitoring.RecordFinalized(decision, inspection.InspectionType, inspection.StartedAt, now)
	event.Emit(ctx, s.publisher, event.New(event.TypeInspectionCompleted, inspection.ID, map[string]interface{}{
		"inspection_id":   inspection.ID,
		"inspection_code": inspection.InspectionCode,
		"product_id":      inspection.ProductID,
		"supplier":        inspection.Supplier,
		"supplier_id":     inspection.SupplierID,
		"disposition":     ev.Disposition,
		"decision":        decision,
		"observed":        ev.Observed,
		"sample_size":     inspection.SampleSize,
	}))

	slog.Info("检验已完成", "inspection_code", inspection.InspectionCode, "disposition", ev.Disposition, "decision", decision)
	return inspection, nil
}

// DeleteStaleDrafts 删除创建时间早于 cutoff 的草稿检验
func (s *Service) DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.InspectionStatusDraft, cutoff).
		Delete(&models.Inspection{})
	if result.Error != nil {
		return 0, fmt.Errorf("清理草稿检验失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// resolveSupplier 有 supplier_id 时以登记的供应商为准并拒绝黑名单，否则要求填写供应商名称
func resolveSupplier(db *gorm.DB, req *CreateRequest) error {
	req.SupplierID = strings.TrimSpace(req.SupplierID)
	req.Supplier = strings.TrimSpace(req.Supplier)
	if req.SupplierID == "" {
		if req.Supplier == "" {
			return fmt.Errorf("%w: 供应商不能为空", ErrInvalidInspection)
		}
		return nil
	}

	var supplier models.Supplier
	if err := db.First(&supplier, "id = ?", req.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 供应商不存在 %s", ErrInvalidInspection, req.SupplierID)
		}
		return fmt.Errorf("查询供应商失败: %w", err)
	}
	if !supplier.CanReceiveInspections() {
		return fmt.Errorf("%w: 供应商 %s 已列入黑名单", ErrSupplierBlocked, supplier.Code)
	}
	req.Supplier = supplier.Name
	return nil
}

// expectedDecision 判定结果对应的默认决定；待审判定默认拒收
func expectedDecision(disposition sampling.Disposition) string {
	if disposition == sampling.DispositionApproved {
		return models.InspectionStatusApproved
	}
	return models.InspectionStatusRejected
}

// checkDecision 拒收判定不可直接批准；偏离判定结果的决定都需要理由
func checkDecision(decision string, disposition sampling.Disposition, justification string) error {
	switch decision {
	case models.InspectionStatusApproved, models.InspectionStatusConditionallyApproved, models.InspectionStatusRejected:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}
	if decision == models.InspectionStatusApproved && disposition == sampling.DispositionRejected {
		return fmt.Errorf("%w: 致命缺陷超限，不能直接批准", ErrInvalidDecision)
	}
	if decision != expectedDecision(disposition) && strings.TrimSpace(justification) == "" {
		return ErrJustificationRequired
	}
	return nil
}

func evaluate(inspection *models.Inspection) (*EvaluationResult, error) {
	ev, err := inspection.Evaluation()
	if err != nil {
		return nil, err
	}
	result := &EvaluationResult{
		Evaluation:        ev,
		Label:             ev.Disposition.Label(),
		SampleSize:        inspection.SampleSize,
		InspectedQuantity: inspection.InspectedQuantity,
		Limits:            inspection.Limits(),
	}
	if inspection.InspectedQuantity > 0 {
		status, err := sampling.CheckInspectedQuantity(inspection.SampleSize, inspection.InspectedQuantity)
		if err != nil {
			return nil, err
		}
		result.QuantityStatus = status
	}
	return result, nil
}

func (s *Service) resolvePlan(ctx context.Context, req CreateRequest) (*models.InspectionPlan, error) {
	if req.PlanID != "" {
		plan, err := s.plans.Get(ctx, req.PlanID)
		if err != nil {
			return nil, err
		}
		if plan.Status != models.PlanStatusActive {
			return nil, fmt.Errorf("%w: 计划 %s 未生效", ErrNoActivePlan, plan.PlanCode)
		}
		if plan.ProductID != "" && plan.ProductID != req.ProductID {
			return nil, fmt.Errorf("%w: 计划不属于该产品", ErrInvalidInspection)
		}
		return plan, nil
	}

	plan, err := s.plans.ActivePlanForProduct(ctx, req.ProductID)
	switch {
	case err == nil:
		return plan, nil
	case errors.Is(err, inspection_plan.ErrPlanNotFound):
		// 赠品检验不依赖计划
		if req.InspectionType == models.InspectionTypeBonification {
			return nil, nil
		}
		return nil, ErrNoActivePlan
	default:
		return nil, err
	}
}

// maxCodeAttempts 并发创建时检验编号冲突的最大重试次数
const maxCodeAttempts = 5

// insertWithCode 分配检验编号并写入；编号被并发请求占用时重新分配
func (s *Service) insertWithCode(db *gorm.DB, inspection *models.Inspection) error {
	for attempt := 1; ; attempt++ {
		code, err := s.nextCode(db)
		if err != nil {
			return err
		}
		inspection.InspectionCode = code

		createErr := db.Create(inspection).Error
		if createErr == nil {
			return nil
		}
		taken, err := s.codeTaken(db, inspection.InspectionCode)
		if err != nil || !taken || attempt >= maxCodeAttempts {
			return fmt.Errorf("创建检验失败: %w", createErr)
		}
		slog.Warn("检验编号冲突，重新分配", "inspection_code", inspection.InspectionCode, "attempt", attempt)
	}
}

// nextCode 生成 INS-YYYYMMDD-NNNN，取当日最大编号加一
func (s *Service) nextCode(db *gorm.DB) (string, error) {
	prefix := fmt.Sprintf("INS-%s-", s.now().Format("20060102"))
	var codes []string
	err := db.Model(&models.Inspection{}).
		Where("inspection_code LIKE ?", prefix+"%").
		Order("inspection_code DESC").
		Limit(1).
		Pluck("inspection_code", &codes).Error
	if err != nil {
		return "", fmt.Errorf("生成检验编号失败: %w", err)
	}
	seq := 0
	if len(codes) > 0 {
		seq = cast.ToInt(strings.TrimLeft(strings.TrimPrefix(codes[0], prefix), "0"))
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

func (s *Service) codeTaken(db *gorm.DB, code string) (bool, error) {
	var count int64
	if err := db.Model(&models.Inspection{}).Where("inspection_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询检验编号失败: %w", err)
	}
	return count > 0, nil
}

func (s *Service) save(ctx context.Context, inspection *models.Inspection) error {
	product, plan, supplier := inspection.Product, inspection.Plan, inspection.RegisteredSupplier
	inspection.Product, inspection.Plan, inspection.RegisteredSupplier = nil, nil, nil
	err := s.db.WithContext(ctx).Save(inspection).Error
	inspection.Product, inspection.Plan, inspection.RegisteredSupplier = product, plan, supplier
	if err != nil {
		return fmt.Errorf("保存检验失败: %w", err)
	}
	return nil
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
