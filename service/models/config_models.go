/*
 * @module service/models/config_models
 * @description 配置管理相关模型定义，包含应用配置、抽样默认值、RNC 与调度配置
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 模型定义 -> 配置加载 -> 配置验证 -> 配置应用
 * @rules 确保配置模型的一致性和完整性
 * @dependencies gopkg.in/yaml.v3
 * @refs service/config
 */

package models

// ApplicationConfig 应用配置
type ApplicationConfig struct {
	App       AppConfig       `json:"app" yaml:"app"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Sampling  SamplingConfig  `json:"sampling" yaml:"sampling"`
	RNC       RNCConfig       `json:"rnc" yaml:"rnc"`
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Environment string `json:"environment" yaml:"environment"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int    `json:"port" yaml:"port"`
	BaseContext string `json:"base_context" yaml:"base_context"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// SamplingConfig 抽样默认值
type SamplingConfig struct {
	CodeTable       string  `json:"code_table" yaml:"code_table"`
	DefaultLevel    string  `json:"default_level" yaml:"default_level"`
	DefaultAQLMajor float64 `json:"default_aql_major" yaml:"default_aql_major"`
	DefaultAQLMinor float64 `json:"default_aql_minor" yaml:"default_aql_minor"`
}

// RNCConfig 不合格报告配置
type RNCConfig struct {
	DueDays int `json:"due_days" yaml:"due_days"`
}

// SchedulerConfig 调度器配置
type SchedulerConfig struct {
	Enabled            bool   `json:"enabled" yaml:"enabled"`
	OverdueCron        string `json:"overdue_cron" yaml:"overdue_cron"`
	DraftCleanupCron   string `json:"draft_cleanup_cron" yaml:"draft_cleanup_cron"`
	DraftRetentionDays int    `json:"draft_retention_days" yaml:"draft_retention_days"`
}

// EventsConfig 事件发布配置
type EventsConfig struct {
	Broker       string   `json:"broker" yaml:"broker"`
	Topic        string   `json:"topic" yaml:"topic"`
	KafkaBrokers []string `json:"kafka_brokers" yaml:"kafka_brokers"`
	MQTTBroker   string   `json:"mqtt_broker" yaml:"mqtt_broker"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled       bool `json:"enabled" yaml:"enabled"`
	Requests      int  `json:"requests" yaml:"requests"`
	WindowSeconds int  `json:"window_seconds" yaml:"window_seconds"`
}

// SystemConfigItem 系统配置项
type SystemConfigItem struct {
	Key         string `json:"key" example:"sampling.default_level"`
	Value       string `json:"value" example:"II"`
	Description string `json:"description"`
	ValueType   string `json:"value_type" example:"string"`
}
