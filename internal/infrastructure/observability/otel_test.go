package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTracing_SinEndpointEsNoop(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), TracingConfig{ServiceName: "inventory-ops"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing_ConEndpoint(t *testing.T) {
	// El exportador HTTP no conecta hasta exportar; crear y cerrar sin spans no requiere collector.
	shutdown, err := SetupTracing(context.Background(), TracingConfig{
		ServiceName: "inventory-ops",
		Environment: "test",
		Endpoint:    "localhost:4318",
		Insecure:    true,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
