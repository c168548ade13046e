/*
 * @module service/config/config_manager
 * @description 配置管理器，负责配置文件加载、环境变量覆盖、配置验证以及 system_configs 键值的缓存读写
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/config.md
 * @stateFlow 配置文件/默认值 -> 环境变量覆盖 -> 验证 -> 运行时键值(数据库优先)
 * @rules 运行时键值写入前必须通过校验；数据库中的值优先于文件配置
 * @dependencies inspection-service/service/models, gorm.io/gorm, gopkg.in/yaml.v3, github.com/spf13/cast
 * @refs service/config/config_service.go
 */

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"inspection-service/service/models"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// ErrUnknownConfigKey 未注册的配置键
var ErrUnknownConfigKey = errors.New("unknown config key")

// ErrInvalidConfigValue 配置值校验失败
var ErrInvalidConfigValue = errors.New("invalid config value")

// 使用models包中定义的类型
type ApplicationConfig = models.ApplicationConfig

// ConfigChangeNotifier 运行时配置变更通知
type ConfigChangeNotifier func(key, oldValue, newValue string)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// ConfigManager 配置管理器
type ConfigManager struct {
	db         *gorm.DB
	config     *ApplicationConfig
	configLock sync.RWMutex

	// 配置文件路径
	configFilePaths []string

	changeNotifiers []ConfigChangeNotifier

	// 缓存
	cacheLock   sync.RWMutex
	configCache map[string]cacheEntry
	cacheExpiry time.Duration
}

// NewConfigManager 创建配置管理器，CONFIG_FILE 指定配置文件路径
func NewConfigManager(db *gorm.DB) *ConfigManager {
	paths := []string{"config.yaml", "config.yml", "config.json"}
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		paths = []string{file}
	}
	return &ConfigManager{
		db:              db,
		configFilePaths: paths,
		configCache:     make(map[string]cacheEntry),
		cacheExpiry:     time.Minute,
	}
}

// LoadConfig 加载配置
func (c *ConfigManager) LoadConfig() error {
	// 1. 尝试从文件加载配置，失败时使用默认配置
	config, err := c.loadConfigFromFile()
	if err != nil {
		slog.Debug("未加载配置文件，使用默认配置", "reason", err.Error())
		config = DefaultApplicationConfig()
	}

	// 2. 应用环境变量覆盖
	applyEnvironmentOverrides(config)

	// 3. 验证配置
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}

	c.configLock.Lock()
	c.config = config
	c.configLock.Unlock()
	c.ClearCache()
	return nil
}

// GetConfig 获取完整配置，未加载时返回默认配置
func (c *ConfigManager) GetConfig() *ApplicationConfig {
	c.configLock.RLock()
	defer c.configLock.RUnlock()
	if c.config == nil {
		return DefaultApplicationConfig()
	}
	return c.config
}

// GetValue 获取运行时配置值：缓存 -> 数据库 -> 文件配置/默认值
func (c *ConfigManager) GetValue(key string) (string, error) {
	def, ok := definitions[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	if value, ok := c.cached(key); ok {
		return value, nil
	}

	value := def.fromConfig(c.GetConfig())
	if c.db != nil {
		var record models.SystemConfig
		err := c.db.Where("key = ? AND environment = ?", key, models.DefaultEnvironment).First(&record).Error
		switch {
		case err == nil:
			value = record.Value
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return "", fmt.Errorf("查询配置 %s 失败: %w", key, err)
		}
	}

	c.store(key, value)
	return value, nil
}

// SetValue 校验并写入运行时配置值
func (c *ConfigManager) SetValue(key, value, description string) error {
	def, ok := definitions[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	value = strings.TrimSpace(value)
	if err := def.validate(value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfigValue, key, err)
	}
	if description == "" {
		description = def.description
	}

	oldValue, _ := c.GetValue(key)

	if c.db != nil {
		var record models.SystemConfig
		err := c.db.Where("key = ? AND environment = ?", key, models.DefaultEnvironment).First(&record).Error
		switch {
		case err == nil:
			record.Value = value
			record.Description = description
			record.Version = bumpVersion(record.Version)
			if err := c.db.Save(&record).Error; err != nil {
				return fmt.Errorf("更新配置 %s 失败: %w", key, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.SystemConfig{
				Key:         key,
				Value:       value,
				Environment: models.DefaultEnvironment,
				Version:     "1",
				Description: description,
			}
			if err := c.db.Create(&record).Error; err != nil {
				return fmt.Errorf("创建配置 %s 失败: %w", key, err)
			}
		default:
			return fmt.Errorf("查询配置 %s 失败: %w", key, err)
		}
	}

	c.store(key, value)
	slog.Info("配置已更新", "key", key, "old", oldValue, "new", value)
	for _, notify := range c.changeNotifiers {
		notify(key, oldValue, value)
	}
	return nil
}

// AddChangeNotifier 注册配置变更通知
func (c *ConfigManager) AddChangeNotifier(notifier ConfigChangeNotifier) {
	c.changeNotifiers = append(c.changeNotifiers, notifier)
}

// ClearCache 清除配置缓存
func (c *ConfigManager) ClearCache() {
	c.cacheLock.Lock()
	c.configCache = make(map[string]cacheEntry)
	c.cacheLock.Unlock()
}

func (c *ConfigManager) cached(key string) (string, bool) {
	c.cacheLock.RLock()
	defer c.cacheLock.RUnlock()
	entry, ok := c.configCache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

func (c *ConfigManager) store(key, value string) {
	c.cacheLock.Lock()
	c.configCache[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.cacheExpiry)}
	c.cacheLock.Unlock()
}

func (c *ConfigManager) loadConfigFromFile() (*ApplicationConfig, error) {
	var configData []byte
	var configPath string

	// 尝试各个配置文件路径
	for _, path := range c.configFilePaths {
		data, err := os.ReadFile(path)
		if err == nil {
			configData = data
			configPath = path
			break
		}
	}

	if configData == nil {
		return nil, fmt.Errorf("未找到可用的配置文件")
	}

	// 文件中未出现的字段保留默认值
	config := DefaultApplicationConfig()

	var err error
	switch ext := strings.ToLower(filepath.Ext(configPath)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configData, config)
	case ".json":
		err = json.Unmarshal(configData, config)
	default:
		return nil, fmt.Errorf("不支持的配置文件格式: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", configPath, err)
	}

	slog.Info("已加载配置文件", "path", configPath)
	return config, nil
}

// DefaultApplicationConfig 默认配置
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		App: models.AppConfig{
			Name:        "inspection-service",
			Version:     "1.0.0",
			Environment: "development",
		},
		Server: models.ServerConfig{
			Port:        8080,
			BaseContext: "",
		},
		Logging: models.LoggingConfig{Level: "debug"},
		Sampling: models.SamplingConfig{
			CodeTable:       DefaultCodeTable,
			DefaultLevel:    DefaultInspectionLevel,
			DefaultAQLMajor: DefaultAQLMajor,
			DefaultAQLMinor: DefaultAQLMinor,
		},
		RNC: models.RNCConfig{DueDays: DefaultRNCDueDays},
		Scheduler: models.SchedulerConfig{
			Enabled:            true,
			OverdueCron:        "0 0 * * * *",
			DraftCleanupCron:   "0 30 2 * * *",
			DraftRetentionDays: DefaultDraftRetentionDays,
		},
		Events: models.EventsConfig{
			Broker: "none",
			Topic:  "inspection-events",
		},
		RateLimit: models.RateLimitConfig{
			Enabled:       false,
			Requests:      100,
			WindowSeconds: 60,
		},
	}
}

// 应用环境变量覆盖
func applyEnvironmentOverrides(config *ApplicationConfig) {
	if v := os.Getenv("LISTEN_PORT"); v != "" {
		config.Server.Port = cast.ToInt(v)
	}
	if v, ok := os.LookupEnv("BASE_CONTEXT"); ok {
		config.Server.BaseContext = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("SAMPLING_CODE_TABLE"); v != "" {
		config.Sampling.CodeTable = v
	}
	if v := os.Getenv("EVENT_BROKER"); v != "" {
		config.Events.Broker = v
	}
	if v := os.Getenv("EVENT_TOPIC"); v != "" {
		config.Events.Topic = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		config.Events.KafkaBrokers = strings.Split(v, ",")
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		config.Events.MQTTBroker = v
	}
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		config.Scheduler.Enabled = cast.ToBool(v)
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		config.RateLimit.Enabled = cast.ToBool(v)
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		config.RateLimit.Requests = cast.ToInt(v)
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		config.RateLimit.WindowSeconds = cast.ToInt(v)
	}
}

// 验证配置
func validateConfig(config *ApplicationConfig) error {
	if config.App.Name == "" {
		return fmt.Errorf("应用名称不能为空")
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("服务器端口无效: %d", config.Server.Port)
	}
	for key, def := range definitions {
		if err := def.validate(def.fromConfig(config)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	switch config.Events.Broker {
	case "none", "kafka", "mqtt":
	default:
		return fmt.Errorf("不支持的事件代理: %s", config.Events.Broker)
	}
	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("限流参数无效")
	}
	return nil
}

func bumpVersion(version string) string {
	return cast.ToString(cast.ToInt(version) + 1)
}
