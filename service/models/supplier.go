/*
 * @module service/models/supplier
 * @description 供应商及其绩效评估、审核记录模型
 * @architecture 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow active <-> under_review <-> suspended -> blacklisted
 * @rules 供应商编码全局唯一；评分 0~100，综合评分折算为 0~5 星级；黑名单供应商不能再开检验
 * @dependencies gorm.io/gorm, github.com/google/uuid, github.com/lib/pq
 * @refs service/supplier/service.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// 供应商类型
const (
	SupplierTypeImported = "imported"
	SupplierTypeNational = "national"
)

// 供应商状态
const (
	SupplierStatusActive      = "active"
	SupplierStatusSuspended   = "suspended"
	SupplierStatusUnderReview = "under_review"
	SupplierStatusBlacklisted = "blacklisted"
)

// SupplierStatuses 合法供应商状态
var SupplierStatuses = []string{
	SupplierStatusActive, SupplierStatusSuspended, SupplierStatusUnderReview, SupplierStatusBlacklisted,
}

// 审核类型与状态
const (
	AuditTypeInitial      = "initial"
	AuditTypeSurveillance = "surveillance"
	AuditTypeRenewal      = "renewal"
	AuditTypeSpecial      = "special"

	AuditStatusScheduled  = "scheduled"
	AuditStatusInProgress = "in_progress"
	AuditStatusCompleted  = "completed"
	AuditStatusCancelled  = "cancelled"
)

// AuditTypes 合法审核类型
var AuditTypes = []string{AuditTypeInitial, AuditTypeSurveillance, AuditTypeRenewal, AuditTypeSpecial}

// AuditStatuses 合法审核状态
var AuditStatuses = []string{AuditStatusScheduled, AuditStatusInProgress, AuditStatusCompleted, AuditStatusCancelled}

// Supplier 供应商
type Supplier struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code          string     `json:"code" gorm:"not null;uniqueIndex;size:50" example:"FORN-001"`
	Name          string     `json:"name" gorm:"not null;size:255;index" example:"Fornecedor ABC"`
	Type          string     `json:"type" gorm:"not null;size:20;index" example:"imported"`
	Country       string     `json:"country" gorm:"not null;size:100;index" example:"China"`
	Category      string     `json:"category" gorm:"not null;size:100" example:"Eletroportáteis"`
	Status        string     `json:"status" gorm:"not null;size:20;index" example:"active"`
	ContactPerson string     `json:"contact_person" gorm:"not null;size:255"`
	Email         string     `json:"email" gorm:"not null;size:255"`
	Phone         string     `json:"phone" gorm:"not null;size:50"`
	Address       string     `json:"address" gorm:"type:text"`
	Website       string     `json:"website" gorm:"size:255"`
	Rating        float64    `json:"rating" example:"4.2"`
	AuditScore    float64    `json:"audit_score" example:"85"`
	LastAudit     *time.Time `json:"last_audit,omitempty"`
	NextAudit     *time.Time `json:"next_audit,omitempty"`
	Observations  string     `json:"observations" gorm:"type:text"`
	CreatedBy     string     `json:"created_by" gorm:"size:100"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "suppliers"
}

// BeforeCreate 创建前钩子
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = SupplierStatusActive
	}
	return nil
}

// CanReceiveInspections 黑名单供应商不再接收来料检验
func (s *Supplier) CanReceiveInspections() bool {
	return s.Status != SupplierStatusBlacklisted
}

// SupplierEvaluation 供应商绩效评估
type SupplierEvaluation struct {
	ID                 string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SupplierID         string         `json:"supplier_id" gorm:"type:varchar(36);not null;index"`
	EvaluationDate     time.Time      `json:"evaluation_date" gorm:"index"`
	EventType          string         `json:"event_type" gorm:"size:50" example:"periodic"`
	EventDescription   string         `json:"event_description" gorm:"type:text"`
	QualityScore       float64        `json:"quality_score" example:"90"`
	DeliveryScore      float64        `json:"delivery_score" example:"80"`
	CostScore          float64        `json:"cost_score" example:"75"`
	CommunicationScore float64        `json:"communication_score" example:"85"`
	TechnicalScore     float64        `json:"technical_score" example:"70"`
	OverallScore       float64        `json:"overall_score" example:"80"`
	Strengths          pq.StringArray `json:"strengths" gorm:"type:text" swaggertype:"array,string"`
	Weaknesses         pq.StringArray `json:"weaknesses" gorm:"type:text" swaggertype:"array,string"`
	Recommendations    pq.StringArray `json:"recommendations" gorm:"type:text" swaggertype:"array,string"`
	Observations       string         `json:"observations" gorm:"type:text"`
	EvaluatedBy        string         `json:"evaluated_by" gorm:"size:100"`
	CreatedAt          time.Time      `json:"created_at"`
}

// TableName 指定表名
func (SupplierEvaluation) TableName() string {
	return "supplier_evaluations"
}

// BeforeCreate 创建前钩子
func (e *SupplierEvaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// SupplierAudit 供应商审核记录
type SupplierAudit struct {
	ID                string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SupplierID        string         `json:"supplier_id" gorm:"type:varchar(36);not null;index"`
	AuditDate         time.Time      `json:"audit_date" gorm:"index"`
	Auditor           string         `json:"auditor" gorm:"not null;size:255"`
	AuditType         string         `json:"audit_type" gorm:"not null;size:20" example:"surveillance"`
	Score             float64        `json:"score" example:"85"`
	Status            string         `json:"status" gorm:"not null;size:20" example:"completed"`
	Findings          pq.StringArray `json:"findings" gorm:"type:text" swaggertype:"array,string"`
	Recommendations   pq.StringArray `json:"recommendations" gorm:"type:text" swaggertype:"array,string"`
	CorrectiveActions pq.StringArray `json:"corrective_actions" gorm:"type:text" swaggertype:"array,string"`
	NextAuditDate     *time.Time     `json:"next_audit_date,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// TableName 指定表名
func (SupplierAudit) TableName() string {
	return "supplier_audits"
}

// BeforeCreate 创建前钩子
func (a *SupplierAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
