package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter la parte de *kafka.Writer que usa el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos en Kafka: un tópico por tipo de evento (con prefijo opcional),
// clave = productId y valor JSON.
type KafkaPublisher struct {
	writer MessageWriter
	prefix string
}

// NewKafkaWriter crea el writer de kafka-go para los brokers dados. El tópico va en cada mensaje.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher crea el publicador sobre un writer (en producción *kafka.Writer).
func NewKafkaPublisher(writer MessageWriter, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, prefix: topicPrefix}
}

// Publish escribe un mensaje y espera el ack del broker.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload any) error {
	b, err := encode(topic, payload)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Topic: p.prefix + topic,
		Value: b,
		Time:  time.Now().UTC(),
	}
	if key := partitionKey(payload); key != "" {
		msg.Key = []byte(key)
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka %s: %w", msg.Topic, err)
	}
	return nil
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
