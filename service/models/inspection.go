/*
 * @module service/models/inspection
 * @description 检验记录模型，保存抽样方案、缺陷清单与最终决定
 * @architecture 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow draft -> in_progress -> approved / conditionally_approved / rejected
 * @rules 判定结果不落库，每次加载时由抽样引擎根据限值与缺陷数重新计算
 * @dependencies gorm.io/gorm, github.com/google/uuid, service/sampling
 * @refs service/inspection/service.go
 */

package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"inspection-service/service/sampling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 检验状态
const (
	InspectionStatusDraft                 = "draft"
	InspectionStatusInProgress            = "in_progress"
	InspectionStatusPending               = "pending"
	InspectionStatusApproved              = "approved"
	InspectionStatusConditionallyApproved = "conditionally_approved"
	InspectionStatusRejected              = "rejected"
)

// 检验类别
const (
	InspectionTypeStandard     = "standard"
	InspectionTypeBonification = "bonification"
	InspectionTypeContainer    = "container"
)

// IsValidInspectionType 检验类别是否合法
func IsValidInspectionType(t string) bool {
	switch t {
	case InspectionTypeStandard, InspectionTypeBonification, InspectionTypeContainer:
		return true
	}
	return false
}

// Defect 单条缺陷记录
type Defect struct {
	Description   string            `json:"description"`
	Severity      sampling.Severity `json:"severity"`
	Quantity      int               `json:"quantity"`
	ChecklistItem string            `json:"checklist_item,omitempty"`
	Photos        []string          `json:"photos,omitempty"`
}

// DefectList 缺陷清单，以 JSON 存储
type DefectList []Defect

func (d *DefectList) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	return scanJSON(value, d)
}

func (d DefectList) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return jsonValue(d)
}

// Counts 按严重度汇总缺陷数量，未填数量按 1 计
func (d DefectList) Counts() (sampling.DefectCounts, error) {
	var counts sampling.DefectCounts
	for i, defect := range d {
		qty := defect.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return counts, fmt.Errorf("%w: 第 %d 条缺陷数量 %d", sampling.ErrInvalidDefectCount, i+1, qty)
		}
		switch defect.Severity {
		case sampling.SeverityCritical:
			counts.Critical += qty
		case sampling.SeverityMajor:
			counts.Major += qty
		case sampling.SeverityMinor:
			counts.Minor += qty
		default:
			return counts, fmt.Errorf("第 %d 条缺陷严重度无效: %q", i+1, defect.Severity)
		}
	}
	return counts, nil
}

// Inspection 检验记录
type Inspection struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	InspectionCode string `json:"inspection_code" gorm:"not null;uniqueIndex;size:50" example:"INS-20240501-0001"`
	InspectionType string `json:"inspection_type" gorm:"not null;size:20" example:"standard"`
	ProductID      string `json:"product_id" gorm:"type:varchar(36);not null;index"`
	PlanID         string `json:"plan_id" gorm:"type:varchar(36);index"`
	PlanVersion    string `json:"plan_version" gorm:"size:20" example:"Rev. 01"`
	InspectorID    string `json:"inspector_id" gorm:"size:100;index"`
	SupplierID     string `json:"supplier_id,omitempty" gorm:"type:varchar(36);index"`
	Supplier       string `json:"supplier" gorm:"size:255"`
	FresNF         string `json:"fres_nf" gorm:"size:100" example:"NF-123456"`

	LotSize         int    `json:"lot_size" example:"150"`
	InspectionLevel string `json:"inspection_level" gorm:"size:5" example:"II"`
	SampleCode      string `json:"sample_code" gorm:"size:2" example:"G"`
	SampleSize      int    `json:"sample_size" example:"32"`
	FullInspection  bool   `json:"full_inspection"`

	AQLCritical        float64 `json:"aql_critical"`
	CriticalAcceptance int     `json:"critical_acceptance"`
	CriticalRejection  int     `json:"critical_rejection"`
	AQLMajor           float64 `json:"aql_major"`
	MajorAcceptance    int     `json:"major_acceptance"`
	MajorRejection     int     `json:"major_rejection"`
	AQLMinor           float64 `json:"aql_minor"`
	MinorAcceptance    int     `json:"minor_acceptance"`
	MinorRejection     int     `json:"minor_rejection"`

	CriticalCount     int `json:"critical_count"`
	MajorCount        int `json:"major_count"`
	MinorCount        int `json:"minor_count"`
	InspectedQuantity int `json:"inspected_quantity"`
	GraphicSample     int `json:"graphic_sample"`
	PhotoSample       int `json:"photo_sample"`

	Defects       DefectList `json:"defects" gorm:"type:jsonb"`
	Status        string     `json:"status" gorm:"not null;size:30;index" example:"draft"`
	FinalDecision string     `json:"final_decision,omitempty" gorm:"size:30"`
	Justification string     `json:"justification,omitempty" gorm:"type:text"`
	Observations  string     `json:"observations,omitempty" gorm:"type:text"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// 由抽样引擎计算，不落库
	Disposition sampling.Disposition `json:"disposition,omitempty" gorm:"-"`

	Product            *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Plan               *InspectionPlan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	RegisteredSupplier *Supplier       `json:"registered_supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

// TableName 指定表名
func (Inspection) TableName() string {
	return "inspections"
}

// BeforeCreate 创建前钩子
func (i *Inspection) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.StartedAt.IsZero() {
		i.StartedAt = time.Now()
	}
	return nil
}

// AfterFind 加载后重新计算判定结果
func (i *Inspection) AfterFind(tx *gorm.DB) error {
	i.Disposition = ""
	if !i.SamplingConfigured() {
		return nil
	}
	if ev, err := i.Evaluation(); err == nil {
		i.Disposition = ev.Disposition
	}
	return nil
}

// SamplingConfigured 是否已完成抽样配置
func (i *Inspection) SamplingConfigured() bool {
	return i.SampleSize > 0
}

// Level 检验水平
func (i *Inspection) Level() sampling.InspectionLevel {
	return sampling.InspectionLevel(i.InspectionLevel)
}

// AQLs 检验使用的 AQL 组合
func (i *Inspection) AQLs() sampling.AQLSet {
	return sampling.AQLSet{Critical: i.AQLCritical, Major: i.AQLMajor, Minor: i.AQLMinor}
}

// Limits 已保存的各严重度接收/拒收数
func (i *Inspection) Limits() sampling.SeverityLimits {
	return sampling.SeverityLimits{
		Critical: sampling.SeverityLimit{AQL: i.AQLCritical, Acceptance: i.CriticalAcceptance, Rejection: i.CriticalRejection},
		Major:    sampling.SeverityLimit{AQL: i.AQLMajor, Acceptance: i.MajorAcceptance, Rejection: i.MajorRejection},
		Minor:    sampling.SeverityLimit{AQL: i.AQLMinor, Acceptance: i.MinorAcceptance, Rejection: i.MinorRejection},
	}
}

// Observed 已记录的缺陷数
func (i *Inspection) Observed() sampling.DefectCounts {
	return sampling.DefectCounts{Critical: i.CriticalCount, Major: i.MajorCount, Minor: i.MinorCount}
}

// Evaluation 根据限值与缺陷数计算判定明细
func (i *Inspection) Evaluation() (sampling.Evaluation, error) {
	return sampling.EvaluateDetail(i.Limits(), i.Observed())
}

// ApplySamplingPlan 写入抽样方案
func (i *Inspection) ApplySamplingPlan(plan sampling.SamplingPlan) {
	i.LotSize = plan.LotSize
	i.InspectionLevel = string(plan.Level)
	i.SampleCode = string(plan.Code)
	i.SampleSize = plan.SampleSize
	i.FullInspection = plan.FullInspection
	i.AQLCritical = plan.Limits.Critical.AQL
	i.CriticalAcceptance = plan.Limits.Critical.Acceptance
	i.CriticalRejection = plan.Limits.Critical.Rejection
	i.AQLMajor = plan.Limits.Major.AQL
	i.MajorAcceptance = plan.Limits.Major.Acceptance
	i.MajorRejection = plan.Limits.Major.Rejection
	i.AQLMinor = plan.Limits.Minor.AQL
	i.MinorAcceptance = plan.Limits.Minor.Acceptance
	i.MinorRejection = plan.Limits.Minor.Rejection
}

// ApplyCounts 写入缺陷数
func (i *Inspection) ApplyCounts(counts sampling.DefectCounts) {
	i.CriticalCount = counts.Critical
	i.MajorCount = counts.Major
	i.MinorCount = counts.Minor
}

// IsFinal 是否已作出最终决定
func (i *Inspection) IsFinal() bool {
	switch i.Status {
	case InspectionStatusApproved, InspectionStatusConditionallyApproved, InspectionStatusRejected:
		return true
	}
	return false
}

// TotalDefects 缺陷总数
func (i *Inspection) TotalDefects() int {
	return i.CriticalCount + i.MajorCount + i.MinorCount
}
