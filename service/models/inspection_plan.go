/*
 * @module service/models/inspection_plan
 * @description 检验计划与修订记录模型
 * @architecture 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow draft -> active -> inactive；每次修改生成一条修订记录
 * @rules 致命缺陷 AQL 恒为 0；版本号格式 "Rev. NN"
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/inspection_plan/service.go
 */

package models

import (
	"fmt"
	"time"

	"inspection-service/service/sampling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 检验计划状态
const (
	PlanStatusDraft    = "draft"
	PlanStatusActive   = "active"
	PlanStatusInactive = "inactive"
)

// 计划类型
const (
	PlanTypeProduct = "product"
	PlanTypeParts   = "parts"
)

// 检验类型
var PlanInspectionTypes = []string{"functional", "graphic", "dimensional", "electrical", "packaging", "mixed"}

// 抽样方法
const (
	SamplingMethodNBR5426 = "NBR 5426"
	SamplingMethodFull    = "100%"
)

// InspectionPlan 检验计划
type InspectionPlan struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PlanCode           string     `json:"plan_code" gorm:"not null;uniqueIndex;size:100" example:"PCI-AF-BBQ-127"`
	PlanName           string     `json:"plan_name" gorm:"not null;size:255" example:"Plano Air Fryer BBQ"`
	PlanType           string     `json:"plan_type" gorm:"not null;size:20" example:"product"`
	Version            string     `json:"version" gorm:"not null;size:20" example:"Rev. 01"`
	Status             string     `json:"status" gorm:"not null;size:20;index" example:"draft"`
	ProductID          string     `json:"product_id" gorm:"type:varchar(36);index"`
	BusinessUnit       string     `json:"business_unit" gorm:"size:30;index" example:"KITCHEN_BEAUTY"`
	InspectionType     string     `json:"inspection_type" gorm:"size:30" example:"mixed"`
	AQLCritical        float64    `json:"aql_critical" example:"0"`
	AQLMajor           float64    `json:"aql_major" example:"2.5"`
	AQLMinor           float64    `json:"aql_minor" example:"4.0"`
	SamplingMethod     string     `json:"sampling_method" gorm:"size:20" example:"NBR 5426"`
	InspectionLevel    string     `json:"inspection_level" gorm:"size:5" example:"II"`
	InspectionSteps    JSONBArray `json:"inspection_steps" gorm:"type:jsonb"`
	Checklists         JSONBArray `json:"checklists" gorm:"type:jsonb"`
	RequiredParameters JSONBArray `json:"required_parameters" gorm:"type:jsonb"`
	ApprovedBy         string     `json:"approved_by,omitempty" gorm:"size:100"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	IsActive           bool       `json:"is_active"`
	CreatedBy          string     `json:"created_by" gorm:"size:100"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName 指定表名
func (InspectionPlan) TableName() string {
	return "inspection_plans"
}

// BeforeCreate 创建前钩子
func (p *InspectionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// AQLs 计划的 AQL 组合
func (p *InspectionPlan) AQLs() sampling.AQLSet {
	return sampling.AQLSet{Critical: p.AQLCritical, Major: p.AQLMajor, Minor: p.AQLMinor}
}

// Level 计划的检验水平，非法值回退到 II
func (p *InspectionPlan) Level() sampling.InspectionLevel {
	level, err := sampling.ParseInspectionLevel(p.InspectionLevel)
	if err != nil {
		return sampling.LevelII
	}
	return level
}

// FullInspection 是否 100% 检验
func (p *InspectionPlan) FullInspection() bool {
	return p.SamplingMethod == SamplingMethodFull
}

// InspectionPlanRevision 检验计划修订记录
type InspectionPlanRevision struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PlanID         string    `json:"plan_id" gorm:"type:varchar(36);not null;index"`
	Version        string    `json:"version" gorm:"not null;size:20" example:"Rev. 02"`
	RevisionNumber int       `json:"revision_number" example:"2"`
	Changes        JSONB     `json:"changes" gorm:"type:jsonb"`
	ChangedBy      string    `json:"changed_by" gorm:"size:100"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName 指定表名
func (InspectionPlanRevision) TableName() string {
	return "inspection_plan_revisions"
}

// BeforeCreate 创建前钩子
func (r *InspectionPlanRevision) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// FormatRevision 生成版本号，如 "Rev. 03"
func FormatRevision(n int) string {
	return fmt.Sprintf("Rev. %02d", n)
}

// ParseRevision 解析版本号，无法解析时返回 1
func ParseRevision(version string) int {
	var n int
	if _, err := fmt.Sscanf(version, "Rev. %d", &n); err != nil || n < 1 {
		return 1
	}
	return n
}
