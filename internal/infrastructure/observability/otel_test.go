package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/pkg/config"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

func TestInitTracing_Deshabilitado(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.Nop(), config.OTelConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_Stdout(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.Nop(), config.OTelConfig{
		Enabled:     true,
		ServiceName: "metamorphocus-test",
		SampleRatio: 1,
	}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 0.0, sampleRatio(-1))
	assert.Equal(t, 1.0, sampleRatio(3))
	assert.Equal(t, 0.25, sampleRatio(0.25))
}
