package inventory

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/jhoicas/inventory-ops/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/inventory-ops/internal/application/inventory")

// publish emite el evento sin propagar el error: el estado ya está confirmado.
func publish(ctx context.Context, p Publisher, log *logger.Logger, topic string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, payload); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("no se pudo publicar evento")
	}
}
