/*
 * @module service/config/config_service
 * @description 配置服务，提供抽样默认值、RNC 期限、草稿保留期等业务配置的类型化读写
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/config.md
 * @stateFlow 服务调用 -> 配置管理器 -> 数据库/配置文件/默认值
 * @rules 读取失败或解析失败时回退到默认值；写入时按键校验
 * @dependencies inspection-service/service/models, inspection-service/service/sampling, gorm.io/gorm, github.com/spf13/cast
 * @refs service/config/config_manager.go
 */

package config

import (
	"fmt"
	"sort"
	"strconv"

	"inspection-service/service/models"
	"inspection-service/service/sampling"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// 运行时配置键
const (
	ConfigKeySamplingCodeTable  = "sampling.code_table"
	ConfigKeyDefaultLevel       = "sampling.default_level"
	ConfigKeyDefaultAQLMajor    = "sampling.default_aql_major"
	ConfigKeyDefaultAQLMinor    = "sampling.default_aql_minor"
	ConfigKeyRNCDueDays         = "rnc.due_days"
	ConfigKeyDraftRetentionDays = "inspection.draft_retention_days"
)

// 默认值
const (
	DefaultCodeTable          = sampling.CodeTableApplication
	DefaultInspectionLevel    = string(sampling.LevelII)
	DefaultAQLMajor           = 2.5
	DefaultAQLMinor           = 4.0
	DefaultRNCDueDays         = 30
	DefaultDraftRetentionDays = 30
)

type definition struct {
	description string
	valueType   string
	fromConfig  func(*ApplicationConfig) string
	validate    func(string) error
}

var definitions = map[string]definition{
	ConfigKeySamplingCodeTable: {
		description: "批量-字码表 (application | ansi_z1.4)",
		valueType:   "string",
		fromConfig:  func(c *ApplicationConfig) string { return c.Sampling.CodeTable },
		validate: func(v string) error {
			_, err := sampling.CodeTableByName(v)
			return err
		},
	},
	ConfigKeyDefaultLevel: {
		description: "默认检验水平",
		valueType:   "string",
		fromConfig:  func(c *ApplicationConfig) string { return c.Sampling.DefaultLevel },
		validate: func(v string) error {
			_, err := sampling.ParseInspectionLevel(v)
			return err
		},
	},
	ConfigKeyDefaultAQLMajor: {
		description: "严重缺陷默认 AQL(%)",
		valueType:   "float",
		fromConfig:  func(c *ApplicationConfig) string { return formatFloat(c.Sampling.DefaultAQLMajor) },
		validate:    validateAQL,
	},
	ConfigKeyDefaultAQLMinor: {
		description: "轻微缺陷默认 AQL(%)",
		valueType:   "float",
		fromConfig:  func(c *ApplicationConfig) string { return formatFloat(c.Sampling.DefaultAQLMinor) },
		validate:    validateAQL,
	},
	ConfigKeyRNCDueDays: {
		description: "RNC 处理期限天数",
		valueType:   "int",
		fromConfig:  func(c *ApplicationConfig) string { return strconv.Itoa(c.RNC.DueDays) },
		validate:    validatePositiveInt,
	},
	ConfigKeyDraftRetentionDays: {
		description: "草稿检验保留天数",
		valueType:   "int",
		fromConfig:  func(c *ApplicationConfig) string { return strconv.Itoa(c.Scheduler.DraftRetentionDays) },
		validate:    validatePositiveInt,
	},
}

func validateAQL(v string) error {
	aql, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("AQL 必须为数字: %q", v)
	}
	if !sampling.IsSupportedAQL(aql) {
		return fmt.Errorf("%w: %v", sampling.ErrUnsupportedAQLValue, aql)
	}
	return nil
}

func validatePositiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("必须为正整数: %q", v)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ConfigService 配置服务
type ConfigService struct {
	db      *gorm.DB
	manager *ConfigManager
}

// NewConfigService 创建配置服务实例
func NewConfigService(db *gorm.DB, manager *ConfigManager) *ConfigService {
	if manager == nil {
		manager = NewConfigManager(db)
	}
	return &ConfigService{
		db:      db,
		manager: manager,
	}
}

// Manager 返回底层配置管理器
func (s *ConfigService) Manager() *ConfigManager {
	return s.manager
}

// GetSystemConfig 获取系统配置
func (s *ConfigService) GetSystemConfig(key string) (string, error) {
	return s.manager.GetValue(key)
}

// SetSystemConfig 设置系统配置
func (s *ConfigService) SetSystemConfig(key, value, description string) error {
	return s.manager.SetValue(key, value, description)
}

// GetAllSystemConfigs 获取所有已注册的系统配置，按键排序
func (s *ConfigService) GetAllSystemConfigs() ([]models.SystemConfigItem, error) {
	keys := make([]string, 0, len(definitions))
	for key := range definitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]models.SystemConfigItem, 0, len(keys))
	for _, key := range keys {
		value, err := s.manager.GetValue(key)
		if err != nil {
			return nil, err
		}
		items = append(items, models.SystemConfigItem{
			Key:         key,
			Value:       value,
			Description: definitions[key].description,
			ValueType:   definitions[key].valueType,
		})
	}
	return items, nil
}

// DefaultSystemConfigs 由当前文件配置生成的默认配置记录，用于启动时补齐数据库
func (s *ConfigService) DefaultSystemConfigs() []models.SystemConfig {
	cfg := s.manager.GetConfig()
	defaults := make([]models.SystemConfig, 0, len(definitions))
	for key, def := range definitions {
		defaults = append(defaults, models.SystemConfig{
			Key:         key,
			Value:       def.fromConfig(cfg),
			Environment: models.DefaultEnvironment,
			Version:     "1",
			Description: def.description,
		})
	}
	sort.Slice(defaults, func(i, j int) bool { return defaults[i].Key < defaults[j].Key })
	return defaults
}

// SamplingEngine 按配置的字码表构建抽样引擎
func (s *ConfigService) SamplingEngine() (*sampling.Engine, error) {
	name, err := s.manager.GetValue(ConfigKeySamplingCodeTable)
	if err != nil {
		return sampling.Default(), nil
	}
	if name == "" || name == sampling.CodeTableApplication {
		return sampling.Default(), nil
	}
	rows, err := sampling.CodeTableByName(name)
	if err != nil {
		return nil, err
	}
	return sampling.NewEngine(rows)
}

// DefaultInspectionLevel 默认检验水平
func (s *ConfigService) DefaultInspectionLevel() sampling.InspectionLevel {
	value, err := s.manager.GetValue(ConfigKeyDefaultLevel)
	if err != nil {
		return sampling.LevelII
	}
	level, err := sampling.ParseInspectionLevel(value)
	if err != nil {
		return sampling.LevelII
	}
	return level
}

// DefaultAQLs 默认 AQL 组合，致命缺陷恒为 0
func (s *ConfigService) DefaultAQLs() sampling.AQLSet {
	aqls := sampling.DefaultAQLs
	if v, err := s.manager.GetValue(ConfigKeyDefaultAQLMajor); err == nil {
		if f, err := cast.ToFloat64E(v); err == nil && sampling.IsSupportedAQL(f) {
			aqls.Major = f
		}
	}
	if v, err := s.manager.GetValue(ConfigKeyDefaultAQLMinor); err == nil {
		if f, err := cast.ToFloat64E(v); err == nil && sampling.IsSupportedAQL(f) {
			aqls.Minor = f
		}
	}
	return aqls
}

// RNCDueDays RNC 处理期限天数
func (s *ConfigService) RNCDueDays() int {
	return s.intValue(ConfigKeyRNCDueDays, DefaultRNCDueDays)
}

// DraftRetentionDays 草稿检验保留天数
func (s *ConfigService) DraftRetentionDays() int {
	return s.intValue(ConfigKeyDraftRetentionDays, DefaultDraftRetentionDays)
}

func (s *ConfigService) intValue(key string, fallback int) int {
	valueStr, err := s.manager.GetValue(key)
	if err != nil {
		return fallback // 返回默认值
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return fallback // 解析失败返回默认值
	}
	return value
}

// ClearCache 清除配置缓存
func (s *ConfigService) ClearCache() {
	s.manager.ClearCache()
}
