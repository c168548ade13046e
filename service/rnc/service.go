/*
 * @module service/rnc/service
 * @description 不合格报告(RNC)服务：创建、由检验生成、状态流转、重复发生识别、逾期标记
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow pending -> in_analysis -> action_plan -> verification -> closed；未结束状态可取消
 * @rules 纠正措施类 RNC 创建即冻结批次；同一产品+供应商已有历史即视为重复发生
 * @dependencies inspection-service/service/models, inspection-service/service/event, inspection-service/service/monitoring, gorm.io/gorm
 * @refs service/scheduler/jobs.go
 */

package rnc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inspection-service/service/event"
	"inspection-service/service/models"
	"inspection-service/service/monitoring"
	"inspection-service/service/sampling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("RNC 不存在")
	ErrInvalidRNC        = errors.New("RNC 数据无效")
	ErrInvalidTransition = errors.New("RNC 状态流转无效")
	ErrInspectionNotNC   = errors.New("检验结果不需要 RNC")
)

// Settings RNC 服务依赖的运行时配置
type Settings interface {
	RNCDueDays() int
}

// CreateRequest 创建 RNC 请求
type CreateRequest struct {
	InspectionID        string                   `json:"inspection_id"`
	InspectorID         string                   `json:"inspector_id" example:"inspetor01"`
	SupplierID          string                   `json:"supplier_id,omitempty"`
	Supplier            string                   `json:"supplier" example:"Fornecedor ABC"`
	FresNF              string                   `json:"fres_nf" example:"NF-123456"`
	ProductCode         string                   `json:"product_code" example:"AF-BBQ-127"`
	ProductName         string                   `json:"product_name" example:"Air Fryer Barbecue"`
	LotSize             int                      `json:"lot_size" example:"150"`
	InspectedQuantity   int                      `json:"inspected_quantity" example:"32"`
	DefectDetails       []models.RNCDefectDetail `json:"defect_details"`
	ContainmentMeasures string                   `json:"containment_measures"`
	EvidencePhotos      []string                 `json:"evidence_photos"`
	Type                string                   `json:"type" example:"corrective_action"`
}

// FromInspectionRequest 由检验生成 RNC 的补充信息
type FromInspectionRequest struct {
	Type                string   `json:"type" example:"corrective_action"`
	InspectorID         string   `json:"inspector_id,omitempty"`
	ContainmentMeasures string   `json:"containment_measures"`
	EvidencePhotos      []string `json:"evidence_photos"`
}

// ListFilter 列表过滤条件
type ListFilter struct {
	Page       int
	Size       int
	Status     string
	Type       string
	SGQStatus  string
	SupplierID string
	Supplier   string
}

// Service RNC 服务
type Service struct {
	db        *gorm.DB
	settings  Settings
	publisher event.Publisher
	now       func() time.Time
}

// NewService 创建 RNC 服务实例
func NewService(db *gorm.DB, settings Settings, publisher event.Publisher) *Service {
	return &Service{
		db:        db,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create 创建 RNC，识别重复发生并写入历史
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.RNC, error) {
	db := s.db.WithContext(ctx)
	if err := resolveSupplier(db, &req); err != nil {
		return nil, err
	}
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	var inspectionCount int64
	if err := db.Model(&models.Inspection{}).Where("id = ?", req.InspectionID).Count(&inspectionCount).Error; err != nil {
		return nil, fmt.Errorf("查询检验失败: %w", err)
	}
	if inspectionCount == 0 {
		return nil, fmt.Errorf("%w: 检验不存在 %s", ErrInvalidRNC, req.InspectionID)
	}

	previous, err := s.countPrevious(db, req.ProductCode, req.SupplierID, req.Supplier)
	if err != nil {
		return nil, err
	}

	now := s.now()
	due := now.AddDate(0, 0, s.settings.RNCDueDays())
	total := 0
	details := make(models.JSONBArray, 0, len(req.DefectDetails))
	for _, d := range req.DefectDetails {
		total += d.Quantity
		details = append(details, map[string]interface{}{
			"type":        d.Type,
			"description": d.Description,
			"quantity":    d.Quantity,
		})
	}

	record := &models.RNC{
		RNCCode:              newCode(now),
		InspectionID:         req.InspectionID,
		InspectorID:          req.InspectorID,
		SupplierID:           req.SupplierID,
		Supplier:             req.Supplier,
		FresNF:               req.FresNF,
		ProductCode:          req.ProductCode,
		ProductName:          req.ProductName,
		LotSize:              req.LotSize,
		InspectedQuantity:    req.InspectedQuantity,
		TotalNonConformities: total,
		IsRecurring:          previous > 0,
		PreviousRNCCount:     int(previous),
		DefectDetails:        details,
		ContainmentMeasures:  req.ContainmentMeasures,
		EvidencePhotos:       req.EvidencePhotos,
		Type:                 req.Type,
		Status:               models.RNCStatusPending,
		SGQStatus:            models.SGQStatusPendingEvaluation,
		LotBlocked:           req.Type == models.RNCTypeCorrectiveAction,
		DueAt:                &due,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("创建 RNC 失败: %w", err)
		}
		for _, h := range historyRows(record, req.DefectDetails, now) {
			if err := tx.Create(h).Error; err != nil {
				return fmt.Errorf("写入 RNC 历史失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordRNCCreated(record.Type, record.IsRecurring)
	event.Emit(ctx, s.publisher, event.New(event.TypeRNCCreated, record.ID, map[string]interface{}{
		"rnc_id":                 record.ID,
		"rnc_code":               record.RNCCode,
		"inspection_id":          record.InspectionID,
		"product_code":           record.ProductCode,
		"supplier":               record.Supplier,
		"supplier_id":            record.SupplierID,
		"type":                   record.Type,
		"is_recurring":           record.IsRecurring,
		"lot_blocked":            record.LotBlocked,
		"total_non_conformities": record.TotalNonConformities,
	}))
	slog.Info("RNC 已创建", "rnc_code", record.RNCCode, "recurring", record.IsRecurring, "lot_blocked", record.LotBlocked)
	return record, nil
}

// CreateFromInspection 由拒收或待审的检验生成 RNC
func (s *Service) CreateFromInspection(ctx context.Context, inspectionID string, req FromInspectionRequest) (*models.RNC, error) {
	var inspection models.Inspection
	err := s.db.WithContext(ctx).Preload("Product").First(&inspection, "id = ?", inspectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 检验不存在 %s", ErrInvalidRNC, inspectionID)
		}
		return nil, fmt.Errorf("查询检验失败: %w", err)
	}

	nonConforming := inspection.Status == models.InspectionStatusRejected ||
		inspection.Disposition == sampling.DispositionRejected ||
		inspection.Disposition == sampling.DispositionPendingReview
	if !nonConforming {
		return nil, fmt.Errorf("%w: %s", ErrInspectionNotNC, inspection.InspectionCode)
	}

	inspected := inspection.InspectedQuantity
	if inspected == 0 {
		inspected = inspection.SampleSize
	}
	inspector := req.InspectorID
	if inspector == "" {
		inspector = inspection.InspectorID
	}

	create := CreateRequest{
		InspectionID:        inspection.ID,
		InspectorID:         inspector,
		SupplierID:          inspection.SupplierID,
		Supplier:            inspection.Supplier,
		FresNF:              inspection.FresNF,
		LotSize:             inspection.LotSize,
		InspectedQuantity:   inspected,
		ContainmentMeasures: req.ContainmentMeasures,
		EvidencePhotos:      req.EvidencePhotos,
		Type:                req.Type,
	}
	if inspection.Product != nil {
		create.ProductCode = inspection.Product.Code
		create.ProductName = inspection.Product.Description
	}
	for _, d := range inspection.Defects {
		qty := d.Quantity
		if qty == 0 {
			qty = 1
		}
		create.DefectDetails = append(create.DefectDetails, models.RNCDefectDetail{
			Type:        string(d.Severity),
			Description: d.Description,
			Quantity:    qty,
		})
	}
	return s.Create(ctx, create)
}

// Get 获取 RNC
func (s *Service) Get(ctx context.Context, id string) (*models.RNC, error) {
	var record models.RNC
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询 RNC 失败: %w", err)
	}
	return &record, nil
}

// List 分页查询 RNC
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.RNC, int64, error) {
	var records []models.RNC
	var total int64

	query := s.db.WithContext(ctx).Model(&models.RNC{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.SGQStatus != "" {
		query = query.Where("sgq_status = ?", filter.SGQStatus)
	}
	if filter.SupplierID != "" {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Supplier != "" {
		query = query.Where("LOWER(supplier) LIKE ?", "%"+strings.ToLower(filter.Supplier)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计 RNC 失败: %w", err)
	}

	page, size := normalizePage(filter.Page, filter.Size)
	err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询 RNC 列表失败: %w", err)
	}
	return records, total, nil
}

// UpdateStatus 按合法流转更新状态，关闭或取消时解除批次冻结
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.RNC, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.CanTransitionRNC(record.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, record.Status, status)
	}

	previous := record.Status
	updates := map[string]interface{}{"status": status}
	if !models.IsOpenRNCStatus(status) {
		now := s.now()
		updates["closed_at"] = now
		updates["lot_blocked"] = false
		record.ClosedAt = &now
		record.LotBlocked = false
	}
	if status == models.RNCStatusInAnalysis && record.SGQStatus == models.SGQStatusPendingEvaluation {
		updates["sgq_status"] = models.SGQStatusUnderReview
		record.SGQStatus = models.SGQStatusUnderReview
	}
	if status == models.RNCStatusClosed {
		updates["sgq_status"] = models.SGQStatusEvaluated
		record.SGQStatus = models.SGQStatusEvaluated
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(record).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新 RNC 状态失败: %w", err)
		}
		return tx.Model(&models.RNCHistory{}).Where("rnc_id = ?", record.ID).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	record.Status = status

	event.Emit(ctx, s.publisher, event.New(event.TypeRNCStatusChanged, record.ID, map[string]interface{}{
		"rnc_id":   record.ID,
		"rnc_code": record.RNCCode,
		"from":     previous,
		"to":       status,
	}))
	return record, nil
}

// History 查询产品的不合格历史，supplier 可为供应商 ID 或名称，为空时不过滤供应商
func (s *Service) History(ctx context.Context, productCode, supplier string) ([]models.RNCHistory, error) {
	var rows []models.RNCHistory
	query := s.db.WithContext(ctx).Where("product_code = ?", productCode)
	if supplier = strings.TrimSpace(supplier); supplier != "" {
		query = query.Where("(supplier_id = ? OR LOWER(supplier) = ?)", supplier, strings.ToLower(supplier))
	}
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询 RNC 历史失败: %w", err)
	}
	return rows, nil
}

// MarkOverdue 将超过期限的未结束 RNC 标记为逾期，返回本次标记数量
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	var overdue []models.RNC
	err := s.db.WithContext(ctx).
		Where("status IN ? AND due_at < ? AND sgq_status <> ?", models.OpenRNCStatuses, now, models.SGQStatusOverdue).
		Find(&overdue).Error
	if err != nil {
		return 0, fmt.Errorf("查询逾期 RNC 失败: %w", err)
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(overdue))
	for _, r := range overdue {
		ids = append(ids, r.ID)
	}
	err = s.db.WithContext(ctx).Model(&models.RNC{}).Where("id IN ?", ids).
		Update("sgq_status", models.SGQStatusOverdue).Error
	if err != nil {
		return 0, fmt.Errorf("标记逾期 RNC 失败: %w", err)
	}

	for _, r := range overdue {
		event.Emit(ctx, s.publisher, event.New(event.TypeRNCOverdue, r.ID, map[string]interface{}{
			"rnc_id":   r.ID,
			"rnc_code": r.RNCCode,
			"supplier": r.Supplier,
			"due_at":   r.DueAt,
		}))
	}
	monitoring.RecordRNCOverdue(len(overdue))
	slog.Warn("RNC 已逾期", "count", len(overdue))
	return len(overdue), nil
}

// countPrevious 统计同一产品+供应商的历史 RNC；登记供应商按 ID 匹配，名称比较忽略大小写
func (s *Service) countPrevious(db *gorm.DB, productCode, supplierID, supplier string) (int64, error) {
	var count int64
	query := db.Model(&models.RNCHistory{}).Where("product_code = ?", productCode)
	if supplierID != "" {
		query = query.Where("(supplier_id = ? OR LOWER(supplier) = ?)", supplierID, strings.ToLower(supplier))
	} else {
		query = query.Where("LOWER(supplier) = ?", strings.ToLower(supplier))
	}
	err := query.
		Distinct("rnc_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("查询 RNC 历史失败: %w", err)
	}
	return count, nil
}

// resolveSupplier 有 supplier_id 时以登记的供应商名称为准
func resolveSupplier(db *gorm.DB, req *CreateRequest) error {
	req.SupplierID = strings.TrimSpace(req.SupplierID)
	if req.SupplierID == "" {
		return nil
	}
	var supplier models.Supplier
	if err := db.First(&supplier, "id = ?", req.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 供应商不存在 %s", ErrInvalidRNC, req.SupplierID)
		}
		return fmt.Errorf("查询供应商失败: %w", err)
	}
	req.Supplier = supplier.Name
	return nil
}

func validateCreate(req *CreateRequest) error {
	req.Supplier = strings.TrimSpace(req.Supplier)
	req.FresNF = strings.TrimSpace(req.FresNF)
	req.ProductCode = strings.TrimSpace(req.ProductCode)
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	if req.Type == "" {
		req.Type = models.RNCTypeCorrectiveAction
	}

	switch {
	case req.InspectionID == "":
		return fmt.Errorf("%w: 检验不能为空", ErrInvalidRNC)
	case req.Supplier == "":
		return fmt.Errorf("%w: 供应商不能为空", ErrInvalidRNC)
	case req.FresNF == "":
		return fmt.Errorf("%w: FRES/NF 不能为空", ErrInvalidRNC)
	case req.ProductCode == "" || req.ProductName == "":
		return fmt.Errorf("%w: 产品信息不能为空", ErrInvalidRNC)
	case req.Type != models.RNCTypeCorrectiveAction && req.Type != models.RNCTypeInformation:
		return fmt.Errorf("%w: 类型无效 %q", ErrInvalidRNC, req.Type)
	case req.LotSize < 0 || req.InspectedQuantity < 0:
		return fmt.Errorf("%w: 数量不能为负", ErrInvalidRNC)
	}
	for i, d := range req.DefectDetails {
		if d.Quantity < 0 {
			return fmt.Errorf("%w: 第 %d 条缺陷数量为负", ErrInvalidRNC, i+1)
		}
	}
	return nil
}

func historyRows(record *models.RNC, details []models.RNCDefectDetail, now time.Time) []*models.RNCHistory {
	if len(details) == 0 {
		return []*models.RNCHistory{{
			ProductCode: record.ProductCode,
			Supplier:    record.Supplier,
			SupplierID:  record.SupplierID,
			RNCID:       record.ID,
			DefectCount: record.TotalNonConformities,
			Status:      record.Status,
			Date:        now,
		}}
	}
	rows := make([]*models.RNCHistory, 0, len(details))
	for _, d := range details {
		rows = append(rows, &models.RNCHistory{
			ProductCode: record.ProductCode,
			Supplier:    record.Supplier,
			SupplierID:  record.SupplierID,
			RNCID:       record.ID,
			DefectType:  d.Type,
			DefectCount: d.Quantity,
			Status:      record.Status,
			Date:        now,
		})
	}
	return rows
}

// newCode 生成 RNC-<毫秒时间戳>-<随机串>
func newCode(now time.Time) string {
	return fmt.Sprintf("RNC-%d-%s", now.UnixMilli(), uuid.New().String()[:6])
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
