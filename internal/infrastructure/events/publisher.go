package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

var (
	_ inventory.Publisher = (*LogPublisher)(nil)
	_ inventory.Publisher = (*KafkaPublisher)(nil)
	_ inventory.Publisher = (*RedisPublisher)(nil)
	_ inventory.Publisher = MultiPublisher(nil)
)

// keyed lo implementan los eventos que definen su clave de partición.
type keyed interface {
	PartitionKey() string
}

func partitionKey(payload any) string {
	if k, ok := payload.(keyed); ok {
		return k.PartitionKey()
	}
	return ""
}

func encode(topic string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar evento %s: %w", topic, err)
	}
	return b, nil
}

// LogPublisher escribe cada evento en el log estructurado. Es el bus por defecto.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher crea el publicador sobre el logger dado.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish serializa el payload y lo registra en nivel info.
func (p *LogPublisher) Publish(_ context.Context, topic string, payload any) error {
	b, err := encode(topic, payload)
	if err != nil {
		return err
	}
	p.log.Info().
		Str("topic", topic).
		Str("key", partitionKey(payload)).
		RawJSON("payload", b).
		Msg("evento de dominio")
	return nil
}

// MultiPublisher reparte cada evento a todos los publicadores; junta los errores.
type MultiPublisher []inventory.Publisher

// Publish publica en todos aunque alguno falle.
func (m MultiPublisher) Publish(ctx context.Context, topic string, payload any) error {
	var err error
	for _, p := range m {
		err = errors.Join(err, p.Publish(ctx, topic, payload))
	}
	return err
}
