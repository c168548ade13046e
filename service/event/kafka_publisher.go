package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 将事件写入单个 Kafka topic，事件类型写入消息头
type KafkaPublisher struct {
	mutex  sync.Mutex
	writer messageWriter
	topic  string
	closed bool
}

// NewKafkaPublisher 创建 Kafka 发布器
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer, topic: topic}
}

// Publish 发送事件
func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	p.mutex.Lock()
	closed := p.closed
	p.mutex.Unlock()
	if closed {
		return fmt.Errorf("kafka 发布器已关闭")
	}

	value, err := evt.Encode()
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Key),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.Type)},
			{Key: "event-id", Value: []byte(evt.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("发送消息到 topic %s 失败: %w", p.topic, err)
	}
	return nil
}

// Close 关闭生产者
func (p *KafkaPublisher) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
