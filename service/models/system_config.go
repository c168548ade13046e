/*
 * @module service/models/system_config
 * @description 系统配置模型，保存运行时可修改的抽样默认值与作业参数
 * @architecture 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 配置存储 -> 配置读取 -> 配置更新
 * @rules 同一环境下配置键唯一
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/config/config_service.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultEnvironment 默认配置环境
const DefaultEnvironment = "default"

// SystemConfig 系统配置模型
type SystemConfig struct {
	ID          string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Key         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_config_key_env" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Environment string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_config_key_env" json:"environment"`
	Version     string    `gorm:"type:varchar(20)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (SystemConfig) TableName() string {
	return "system_configs"
}

// BeforeCreate 创建前钩子
func (c *SystemConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	return nil
}
