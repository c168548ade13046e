package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTTPublisher 将事件发布到 <prefix>/<事件类型> 主题
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
	qos    byte
}

// NewMQTTPublisher 创建并连接 MQTT 发布器
func NewMQTTPublisher(broker, prefix, clientID string) (*MQTTPublisher, error) {
	if clientID == "" {
		clientID = "inspection-service-" + uuid.New().String()[:8]
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		slog.Info("MQTT 已连接", "broker", broker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		slog.Warn("MQTT 连接断开", "broker", broker, "error", err)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(10*time.Second) && token.Error() != nil {
		return nil, fmt.Errorf("MQTT连接失败: %w", token.Error())
	}
	return newMQTTPublisherWithClient(client, prefix), nil
}

func newMQTTPublisherWithClient(client mqtt.Client, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: strings.TrimSuffix(prefix, "/"), qos: 1}
}

// Topic 事件对应的主题
func (p *MQTTPublisher) Topic(eventType string) string {
	return p.prefix + "/" + strings.ReplaceAll(eventType, ".", "/")
}

// Publish 发布事件
func (p *MQTTPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := evt.Encode()
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	token := p.client.Publish(p.Topic(evt.Type), p.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("发布消息超时: %w", ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}
	return nil
}

// Close 断开连接，等待 250ms 让消息发送完成
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
