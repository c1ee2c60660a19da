package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRebuild(RebuildFull, 10)
		m.SetChunksLoaded(3)
		m.ObserveCulled(CullFrustum, 2)
		m.ObserveDrawn(1)
		m.ObserveBlockWrite(true)
		m.AddCollisionTests(5)
		m.IncLanding()
		m.ObserveTick(time.Millisecond)
		m.ObserveRender(time.Millisecond)
	})
	assert.NoError(t, m.Register(prometheus.NewRegistry()))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("voxel")

	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Register(reg), "повторная регистрация не ошибка")

	other := NewMetrics("voxel")
	require.NoError(t, other.Register(reg))
	m.IncLanding()
	other.IncLanding()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.landings), "оба экземпляра пишут в один коллектор")
}

func TestMetrics_Values(t *testing.T) {
	m := NewMetrics("voxel")

	m.ObserveRebuild(RebuildFull, 6)
	m.ObserveRebuild(RebuildIncremental, 4)
	m.ObserveRebuild(RebuildIncremental, 2)
	m.ObserveCulled(CullDistance, 3)
	m.ObserveCulled(CullFrustum, 0)
	m.ObserveBlockWrite(false)
	m.SetChunksLoaded(7)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.chunkRebuilds.WithLabelValues(RebuildFull)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.chunkRebuilds.WithLabelValues(RebuildIncremental)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.quadsEmitted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.chunksCulled.WithLabelValues(CullDistance)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blockWrites.WithLabelValues("rejected")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.chunksLoaded))
}

func TestInitTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), TelemetryOptions{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTelemetrySampler(t *testing.T) {
	assert.Contains(t, TelemetryOptions{SampleRatio: 0.25}.sampler().Description(), "TraceIDRatioBased{0.25}")
	assert.Contains(t, TelemetryOptions{}.sampler().Description(), "root:AlwaysOnSampler")
	assert.Contains(t, TelemetryOptions{SampleRatio: 1}.sampler().Description(), "root:AlwaysOnSampler")
}
