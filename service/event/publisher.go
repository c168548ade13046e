/*
 * @module service/event/publisher
 * @description 按配置选择事件代理：kafka、mqtt 或 none
 * @architecture 事件驱动架构 - 基础设施层
 * @documentReference dev_docs/events.md
 * @stateFlow 启动时创建 -> 业务调用 Emit -> 关闭时释放连接
 * @rules 发布失败只记录日志和指标，不向调用方返回错误
 * @dependencies inspection-service/service/models, inspection-service/service/monitoring
 * @refs service/event/kafka_publisher.go, service/event/mqtt_publisher.go
 */

package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inspection-service/service/models"
	"inspection-service/service/monitoring"
)

// NewPublisher 根据配置创建事件发布器
func NewPublisher(cfg models.EventsConfig) (Publisher, error) {
	switch cfg.Broker {
	case "", "none":
		return NoopPublisher{}, nil
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("未配置 KAFKA_BROKERS")
		}
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.Topic), nil
	case "mqtt":
		if cfg.MQTTBroker == "" {
			return nil, fmt.Errorf("未配置 MQTT_BROKER")
		}
		return NewMQTTPublisher(cfg.MQTTBroker, cfg.Topic, "")
	default:
		return nil, fmt.Errorf("不支持的事件代理: %s", cfg.Broker)
	}
}

// NoopPublisher 不发布任何事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, evt Event) error {
	slog.Debug("事件未发布（未配置代理）", "type", evt.Type, "id", evt.ID)
	return nil
}

func (NoopPublisher) Close() error { return nil }

// Emit 发布事件并记录结果，p 为空时忽略
func Emit(ctx context.Context, p Publisher, evt Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := p.Publish(ctx, evt)
	monitoring.RecordEventPublished(evt.Type, err)
	if err != nil {
		slog.Error("事件发布失败", "type", evt.Type, "id", evt.ID, "error", err)
		return
	}
	slog.Debug("事件已发布", "type", evt.Type, "id", evt.ID)
}
