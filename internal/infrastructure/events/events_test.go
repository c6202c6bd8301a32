package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func varianceEvent() entity.VarianceDetectedEvent {
	return entity.VarianceDetectedEvent{
		PlanID:          "plan-1",
		ProductID:       "prod-1",
		VariancePercent: decimal.NewFromInt(-20),
		CountResultID:   "res-1",
		OccurredAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestKafkaPublisher_TopicoClaveYValor(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, "prod.")

	require.NoError(t, p.Publish(context.Background(), entity.TopicVarianceDetected, varianceEvent()))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "prod.inventory.count.variance_detected", msg.Topic)
	assert.Equal(t, "prod-1", string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "plan-1", got["plan_id"])
	assert.Equal(t, "-20", got["variance_percent"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PropagaError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	p := NewKafkaPublisher(w, "")
	err := p.Publish(context.Background(), "t", map[string]string{"a": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))

	require.NoError(t, p.Publish(context.Background(), entity.TopicVarianceDetected, varianceEvent()))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, entity.TopicVarianceDetected, line["topic"])
	assert.Equal(t, "prod-1", line["key"])
	payload, ok := line["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "res-1", payload["count_result_id"])

	err := p.Publish(context.Background(), "t", func() {})
	assert.Error(t, err)
}

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) Publish(context.Context, string, any) error {
	s.calls++
	return s.err
}

func TestMultiPublisher_PublicaEnTodos(t *testing.T) {
	failing := &stubPublisher{err: errors.New("x")}
	ok := &stubPublisher{}
	m := MultiPublisher{failing, ok}

	err := m.Publish(context.Background(), "t", nil)
	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)

	var _ inventory.Publisher = m
	assert.NoError(t, MultiPublisher{ok}.Publish(context.Background(), "t", nil))
}

func TestRedisPublisher(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := NewRedisClient(addr, "", 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	defer client.Close()

	sub := client.Subscribe(ctx, "test."+entity.TopicVarianceDetected)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	p := NewRedisPublisher(client, "test.")
	require.NoError(t, p.Publish(ctx, entity.TopicVarianceDetected, varianceEvent()))

	var msg *redis.Message
	select {
	case msg = <-sub.Channel():
	case <-ctx.Done():
		t.Fatal("sin mensaje")
	}
	var got entity.VarianceDetectedEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, "plan-1", got.PlanID)
	assert.True(t, got.VariancePercent.Equal(decimal.NewFromInt(-20)))
}
