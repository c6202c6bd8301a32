package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publica eventos por Redis Pub/Sub; el canal es el tópico con prefijo opcional.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisClient crea el cliente go-redis.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisPublisher crea el publicador.
func NewRedisPublisher(client *redis.Client, channelPrefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: channelPrefix}
}

// Publish serializa a JSON y publica en el canal. Sin suscriptores el mensaje se pierde.
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	b, err := encode(topic, payload)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.prefix+topic, b).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", p.prefix+topic, err)
	}
	return nil
}

// Close cierra el cliente.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
