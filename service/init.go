/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、配置加载、依赖组件与业务服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 应用启动时执行 Init -> 提供 API 服务 -> 退出时 Shutdown
 * @rules 数据库与配置必须可用；Redis 与消息代理为可选依赖，不可用时降级
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, github.com/go-redis/redis/v8
 * @refs dev_docs/model.md
 */

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"inspection-service/service/config"
	"inspection-service/service/database"
	"inspection-service/service/distributed_lock"
	"inspection-service/service/event"
	"inspection-service/service/inspection"
	"inspection-service/service/inspection_plan"
	"inspection-service/service/monitoring"
	"inspection-service/service/product"
	"inspection-service/service/rate_limiter"
	"inspection-service/service/rnc"
	"inspection-service/service/scheduler"
	"inspection-service/service/supplier"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cast"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB                      *gorm.DB
	RedisClient             *redis.Client
	GlobalConfigService     *config.ConfigService
	GlobalPublisher         event.Publisher
	GlobalProductService    *product.Service
	GlobalPlanService       *inspection_plan.Service
	GlobalInspectionService *inspection.Service
	GlobalRNCService        *rnc.Service
	GlobalSupplierService   *supplier.Service
	GlobalSchedulerService  *scheduler.SchedulerService
	GlobalHealthChecker     *monitoring.HealthChecker
	GlobalRateLimiter       *rate_limiter.RedisRateLimiter
)

// Init 初始化全部服务，任一必需依赖失败即返回错误
func Init() error {
	if err := initDatabase(); err != nil {
		return err
	}
	if err := initConfig(); err != nil {
		return err
	}
	if err := runMigrations(); err != nil {
		return err
	}
	initRedis()
	if err := initServices(); err != nil {
		return err
	}
	slog.Info("服务初始化完成")
	return nil
}

// Shutdown 停止调度器并释放外部连接
func Shutdown() {
	if GlobalSchedulerService != nil {
		GlobalSchedulerService.Stop()
	}
	if GlobalPublisher != nil {
		if err := GlobalPublisher.Close(); err != nil {
			slog.Error("关闭事件发布器失败", "error", err)
		}
	}
	if RedisClient != nil {
		RedisClient.Close()
	}
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// initDatabase 初始化数据库连接
func initDatabase() error {
	schema := getEnvWithDefault("DB_SCHEMA", "public")

	var dsn string
	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "inspection")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		timezone := getEnvWithDefault("DB_TIMEZONE", "America/Sao_Paulo")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=%s",
			host, port, user, password, dbname, sslmode, schema, timezone)
	}

	logLevel := logger.Warn
	if cast.ToBool(os.Getenv("DB_DEBUG")) {
		logLevel = logger.Info
	}

	var err error
	// plan_id、supplier_id 等可选关联以空串表示，不建外键约束
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("获取数据库连接池失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cast.ToInt(getEnvWithDefault("DB_MAX_OPEN_CONNS", "20")))
	sqlDB.SetMaxIdleConns(cast.ToInt(getEnvWithDefault("DB_MAX_IDLE_CONNS", "5")))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := database.EnsureSchema(DB, schema); err != nil {
		return err
	}

	slog.Info("数据库连接成功", "schema", schema)
	return nil
}

func initConfig() error {
	manager := config.NewConfigManager(DB)
	if err := manager.LoadConfig(); err != nil {
		return err
	}
	GlobalConfigService = config.NewConfigService(DB, manager)

	manager.AddChangeNotifier(func(key, oldValue, newValue string) {
		if key == config.ConfigKeySamplingCodeTable {
			slog.Info("抽样字码表已切换", "from", oldValue, "to", newValue)
		}
	})
	return nil
}

// runMigrations 运行数据库迁移
func runMigrations() error {
	if err := database.AutoMigrate(DB); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	if err := database.InitializeData(DB, GlobalConfigService.DefaultSystemConfigs()); err != nil {
		return fmt.Errorf("基础数据初始化失败: %w", err)
	}
	return nil
}

// initRedis 连接 Redis，未配置或不可用时降级为进程内锁且关闭限流
func initRedis() {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		slog.Info("未配置 REDIS_HOST，使用进程内锁")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, getEnvWithDefault("REDIS_PORT", "6379")),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       cast.ToInt(getEnvWithDefault("REDIS_DB", "0")),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis 不可用，使用进程内锁", "error", err)
		client.Close()
		return
	}

	RedisClient = client
	slog.Info("Redis 连接成功", "addr", client.Options().Addr)
}

// initServices 初始化服务
func initServices() error {
	cfg := GlobalConfigService.Manager().GetConfig()

	if _, err := GlobalConfigService.SamplingEngine(); err != nil {
		return fmt.Errorf("抽样字码表无效: %w", err)
	}

	publisher, err := event.NewPublisher(cfg.Events)
	if err != nil {
		return fmt.Errorf("初始化事件发布器失败: %w", err)
	}
	GlobalPublisher = publisher

	GlobalProductService = product.NewService(DB)
	GlobalPlanService = inspection_plan.NewService(DB, GlobalConfigService, GlobalPublisher)
	GlobalInspectionService = inspection.NewService(DB, GlobalConfigService, GlobalPlanService, GlobalPublisher)
	GlobalRNCService = rnc.NewService(DB, GlobalConfigService, GlobalPublisher)
	GlobalSupplierService = supplier.NewService(DB)

	GlobalHealthChecker = monitoring.NewHealthChecker(DB)

	var lock distributed_lock.DistributedLock = distributed_lock.NewLocalLock()
	if RedisClient != nil {
		lock = distributed_lock.NewRedisLock(RedisClient, "inspection")
		GlobalRateLimiter = rate_limiter.NewRedisRateLimiter(RedisClient, "inspection")
		GlobalHealthChecker.Register("redis", "cache", false, func(ctx context.Context) error {
			return RedisClient.Ping(ctx).Err()
		})
	}

	if cfg.Scheduler.Enabled {
		GlobalSchedulerService = scheduler.NewSchedulerService(lock)
		err := scheduler.RegisterJobs(GlobalSchedulerService, cfg.Scheduler,
			GlobalRNCService, GlobalInspectionService, GlobalConfigService)
		if err != nil {
			return err
		}
		GlobalSchedulerService.Start()
	}
	return nil
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
