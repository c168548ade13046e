/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建和更新数据库表结构并写入默认配置
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/model.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致；默认配置只补缺，不覆盖已修改的值
 * @dependencies inspection-service/service/models, gorm.io/gorm
 * @refs dev_docs/backend_requirements.md
 */

package database

import (
	"fmt"
	"log/slog"

	"inspection-service/service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	slog.Info("开始数据库迁移...")

	// 产品与检验计划
	err := db.AutoMigrate(
		&models.Product{},
		&models.InspectionPlan{},
		&models.InspectionPlanRevision{},
	)
	if err != nil {
		return fmt.Errorf("迁移产品与检验计划表失败: %w", err)
	}

	// 供应商
	err = db.AutoMigrate(
		&models.Supplier{},
		&models.SupplierEvaluation{},
		&models.SupplierAudit{},
	)
	if err != nil {
		return fmt.Errorf("迁移供应商表失败: %w", err)
	}

	// 检验与不合格报告
	err = db.AutoMigrate(
		&models.Inspection{},
		&models.RNC{},
		&models.RNCHistory{},
	)
	if err != nil {
		return fmt.Errorf("迁移检验与RNC表失败: %w", err)
	}

	if err := db.AutoMigrate(&models.SystemConfig{}); err != nil {
		return fmt.Errorf("迁移系统配置表失败: %w", err)
	}

	slog.Info("数据库迁移完成")
	return nil
}

// InitializeData 写入缺失的默认配置项
func InitializeData(db *gorm.DB, defaults []models.SystemConfig) error {
	slog.Info("开始初始化基础数据...")

	for i := range defaults {
		item := defaults[i]
		if item.Environment == "" {
			item.Environment = models.DefaultEnvironment
		}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item)
		if result.Error != nil {
			return fmt.Errorf("写入默认配置 %s 失败: %w", item.Key, result.Error)
		}
		if result.RowsAffected > 0 {
			slog.Debug("写入默认配置", "key", item.Key, "value", item.Value)
		}
	}

	slog.Info("基础数据初始化完成", "defaults", len(defaults))
	return nil
}
