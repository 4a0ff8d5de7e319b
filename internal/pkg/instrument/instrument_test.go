package instrument

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_normalize(t *testing.T) {
	got := Config{TraceSampleRatio: 3}.normalize()
	assert.Equal(t, defaultServiceName, got.ServiceName)
	assert.InDelta(t, 1.0, got.TraceSampleRatio, 0)
	assert.Equal(t, defaultMetricsInterval, got.MetricsInterval)

	got = Config{ServiceName: "api", TraceSampleRatio: -1, MetricsInterval: time.Second}.normalize()
	assert.Equal(t, "api", got.ServiceName)
	assert.InDelta(t, 0.0, got.TraceSampleRatio, 0)
	assert.Equal(t, time.Second, got.MetricsInterval)
}

func TestNew_Disabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	for _, cfg := range []*Config{nil, {Enabled: false, LogLevel: "debug"}} {
		ins, err := New(context.Background(), cfg)
		require.NoError(t, err)

		_, span := ins.Tracer("test").Start(context.Background(), "op")
		assert.False(t, span.SpanContext().IsValid())
		span.End()
		assert.NoError(t, ins.Shutdown(context.Background()))
	}
}
