/*
 * @module service/models/product
 * @description 产品目录模型
 * @architecture 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 创建/导入 -> 被检验计划引用 -> 被检验记录引用
 * @rules 产品编码全局唯一；事业部取值受限
 * @dependencies gorm.io/gorm, github.com/google/uuid, github.com/lib/pq
 * @refs service/product/service.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// 事业部
const (
	BusinessUnitDIY           = "DIY"
	BusinessUnitTech          = "TECH"
	BusinessUnitKitchenBeauty = "KITCHEN_BEAUTY"
	BusinessUnitMotorComfort  = "MOTOR_COMFORT"
	BusinessUnitNA            = "N/A"
)

// BusinessUnits 合法事业部
var BusinessUnits = []string{
	BusinessUnitDIY, BusinessUnitTech, BusinessUnitKitchenBeauty, BusinessUnitMotorComfort, BusinessUnitNA,
}

// IsValidBusinessUnit 事业部是否合法
func IsValidBusinessUnit(unit string) bool {
	for _, u := range BusinessUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// Product 产品模型
type Product struct {
	ID                  string         `json:"id" gorm:"primaryKey;type:varchar(36)" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code                string         `json:"code" gorm:"not null;uniqueIndex;size:100" example:"AF-BBQ-127"`
	EAN                 string         `json:"ean" gorm:"size:20;index" example:"7899831312345"`
	Description         string         `json:"description" gorm:"not null;size:500" example:"Air Fryer Barbecue 127V"`
	Category            string         `json:"category" gorm:"not null;size:100" example:"Cozinha"`
	BusinessUnit        string         `json:"business_unit" gorm:"not null;size:30;index" example:"KITCHEN_BEAUTY"`
	Voltages            pq.StringArray `json:"voltages" gorm:"type:text" swaggertype:"array,string"`
	TechnicalParameters JSONB          `json:"technical_parameters" gorm:"type:jsonb"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 创建前钩子
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
