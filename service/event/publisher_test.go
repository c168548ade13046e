package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"inspection-service/service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeToken struct {
	err  error
	done chan struct{}
}

func newFakeToken(err error) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

// fakeMQTTClient 只实现发布相关方法
type fakeMQTTClient struct {
	mqtt.Client
	topics   []string
	payloads [][]byte
	err      error
}

func (c *fakeMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload.([]byte))
	return newFakeToken(c.err)
}

func (c *fakeMQTTClient) Disconnect(quiesce uint) {}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := &KafkaPublisher{writer: writer, topic: "inspection-events"}

	evt := New(TypeRNCCreated, "AF-BBQ-127", map[string]interface{}{"rnc_code": "RNC-1"})
	require.NoError(t, p.Publish(context.Background(), evt))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "AF-BBQ-127", string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, TypeRNCCreated, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeRNCCreated, decoded["type"])
	assert.Equal(t, evt.ID, decoded["id"])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.Error(t, p.Publish(context.Background(), evt))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "t"}
	err := p.Publish(context.Background(), New(TypeRNCOverdue, "", nil))
	assert.ErrorContains(t, err, "broker down")
}

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeMQTTClient{}
	p := newMQTTPublisherWithClient(client, "inspection-events/")

	require.NoError(t, p.Publish(context.Background(), New(TypeInspectionCompleted, "id-1", nil)))
	assert.Equal(t, []string{"inspection-events/inspection/completed"}, client.topics)

	client.err = errors.New("not connected")
	assert.Error(t, p.Publish(context.Background(), New(TypeInspectionCompleted, "id-1", nil)))
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(models.EventsConfig{Broker: "none"})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)

	_, err = NewPublisher(models.EventsConfig{Broker: "kafka"})
	assert.Error(t, err)

	_, err = NewPublisher(models.EventsConfig{Broker: "mqtt"})
	assert.Error(t, err)

	_, err = NewPublisher(models.EventsConfig{Broker: "nats"})
	assert.Error(t, err)

	p, err = NewPublisher(models.EventsConfig{Broker: "kafka", KafkaBrokers: []string{"localhost:9092"}, Topic: "x"})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestEmit_SwallowsErrors(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("fail")}, topic: "t"}
	assert.NotPanics(t, func() {
		Emit(context.Background(), p, New(TypeRNCCreated, "", nil))
		Emit(context.Background(), nil, New(TypeRNCCreated, "", nil))
	})
}
