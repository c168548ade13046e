/*
 * @module service/models/rnc
 * @description 不合格报告(RNC)及其历史记录模型
 * @architecture 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow pending -> in_analysis -> action_plan -> verification -> closed；未关闭状态可取消
 * @rules 状态流转必须经 ValidRNCTransitions 校验；纠正措施类 RNC 冻结批次
 * @dependencies gorm.io/gorm, github.com/google/uuid, github.com/lib/pq
 * @refs service/rnc/service.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RNC 类型
const (
	RNCTypeCorrectiveAction = "corrective_action"
	RNCTypeInformation      = "information"
)

// RNC 状态
const (
	RNCStatusPending      = "pending"
	RNCStatusInAnalysis   = "in_analysis"
	RNCStatusActionPlan   = "action_plan"
	RNCStatusVerification = "verification"
	RNCStatusClosed       = "closed"
	RNCStatusCancelled    = "cancelled"
)

// SGQ 评估状态
const (
	SGQStatusPendingEvaluation = "pending_evaluation"
	SGQStatusUnderReview       = "under_review"
	SGQStatusEvaluated         = "evaluated"
	SGQStatusOverdue           = "overdue"
)

// ValidRNCTransitions 定义 RNC 合法的状态流转
var ValidRNCTransitions = map[string][]string{
	RNCStatusPending:      {RNCStatusInAnalysis, RNCStatusCancelled},
	RNCStatusInAnalysis:   {RNCStatusActionPlan, RNCStatusCancelled},
	RNCStatusActionPlan:   {RNCStatusVerification, RNCStatusCancelled},
	RNCStatusVerification: {RNCStatusClosed, RNCStatusActionPlan, RNCStatusCancelled},
	RNCStatusClosed:       {},
	RNCStatusCancelled:    {},
}

// CanTransitionRNC 判断状态流转是否合法
func CanTransitionRNC(from, to string) bool {
	for _, next := range ValidRNCTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsOpenRNCStatus 未关闭且未取消
func IsOpenRNCStatus(status string) bool {
	return status != RNCStatusClosed && status != RNCStatusCancelled
}

// OpenRNCStatuses 未结束的状态
var OpenRNCStatuses = []string{RNCStatusPending, RNCStatusInAnalysis, RNCStatusActionPlan, RNCStatusVerification}

// RNCDefectDetail RNC 中的缺陷明细
type RNCDefectDetail struct {
	Type        string `json:"type" example:"major"`
	Description string `json:"description" example:"Risco na tampa"`
	Quantity    int    `json:"quantity" example:"3"`
}

// RNC 不合格报告
type RNC struct {
	ID                   string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RNCCode              string         `json:"rnc_code" gorm:"not null;uniqueIndex;size:60" example:"RNC-1714557600000-ab12cd"`
	InspectionID         string         `json:"inspection_id" gorm:"type:varchar(36);not null;index"`
	InspectorID          string         `json:"inspector_id" gorm:"size:100"`
	SupplierID           string         `json:"supplier_id,omitempty" gorm:"type:varchar(36);index"`
	Supplier             string         `json:"supplier" gorm:"not null;size:255;index"`
	FresNF               string         `json:"fres_nf" gorm:"not null;size:100"`
	ProductCode          string         `json:"product_code" gorm:"not null;size:100;index"`
	ProductName          string         `json:"product_name" gorm:"not null;size:500"`
	LotSize              int            `json:"lot_size"`
	InspectedQuantity    int            `json:"inspected_quantity"`
	TotalNonConformities int            `json:"total_non_conformities"`
	IsRecurring          bool           `json:"is_recurring"`
	PreviousRNCCount     int            `json:"previous_rnc_count"`
	DefectDetails        JSONBArray     `json:"defect_details" gorm:"type:jsonb"`
	ContainmentMeasures  string         `json:"containment_measures" gorm:"type:text"`
	EvidencePhotos       pq.StringArray `json:"evidence_photos" gorm:"type:text" swaggertype:"array,string"`
	Type                 string         `json:"type" gorm:"not null;size:30" example:"corrective_action"`
	Status               string         `json:"status" gorm:"not null;size:30;index" example:"pending"`
	SGQStatus            string         `json:"sgq_status" gorm:"size:30;index" example:"pending_evaluation"`
	LotBlocked           bool           `json:"lot_blocked"`
	DueAt                *time.Time     `json:"due_at,omitempty" gorm:"index"`
	ClosedAt             *time.Time     `json:"closed_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (RNC) TableName() string {
	return "rncs"
}

// BeforeCreate 创建前钩子
func (r *RNC) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// RNCHistory 产品/供应商维度的不合格历史，用于识别重复发生
type RNCHistory struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductCode string    `json:"product_code" gorm:"not null;size:100;index:idx_rnc_history_product_supplier"`
	Supplier    string    `json:"supplier" gorm:"not null;size:255;index:idx_rnc_history_product_supplier"`
	SupplierID  string    `json:"supplier_id,omitempty" gorm:"type:varchar(36);index"`
	RNCID       string    `json:"rnc_id" gorm:"type:varchar(36);not null;index"`
	DefectType  string    `json:"defect_type" gorm:"size:30"`
	DefectCount int       `json:"defect_count"`
	Status      string    `json:"status" gorm:"size:30"`
	Date        time.Time `json:"date"`
}

// TableName 指定表名
func (RNCHistory) TableName() string {
	return "rnc_history"
}

// BeforeCreate 创建前钩子
func (h *RNCHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.Date.IsZero() {
		h.Date = time.Now()
	}
	return nil
}
