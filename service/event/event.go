/*
 * @module service/event/event
 * @description 领域事件定义与发布接口
 * @architecture 事件驱动架构 - 基础设施层
 * @documentReference dev_docs/events.md
 * @stateFlow 业务操作完成 -> 构造事件 -> 发布到 Kafka/MQTT
 * @rules 事件发布失败不回滚业务事务，只记录日志与指标
 * @dependencies github.com/google/uuid
 * @refs service/event/publisher.go
 */

package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// 事件类型
const (
	TypeInspectionSamplingConfigured = "inspection.sampling_configured"
	TypeInspectionCompleted          = "inspection.completed"
	TypeRNCCreated                   = "rnc.created"
	TypeRNCStatusChanged             = "rnc.status_changed"
	TypeRNCOverdue                   = "rnc.overdue"
	TypePlanApproved                 = "inspection_plan.approved"
)

// Event 领域事件
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Key        string      `json:"key,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New 创建事件，key 用于 Kafka 分区
func New(eventType, key string, payload interface{}) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Encode 序列化为 JSON
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}
