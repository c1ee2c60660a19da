package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Метки режимов перестройки и причин отсечения
const (
	RebuildFull        = "full"
	RebuildIncremental = "incremental"

	CullDistance = "distance"
	CullFrustum  = "frustum"
)

// Metrics инкапсулирует Prometheus-метрики ядра мира.
// Все методы безопасны для nil-получателя: ядро работает и без метрик.
type Metrics struct {
	chunkRebuilds  *prometheus.CounterVec
	quadsEmitted   prometheus.Counter
	chunksLoaded   prometheus.Gauge
	chunksCulled   *prometheus.CounterVec
	chunksDrawn    prometheus.Counter
	blockWrites    *prometheus.CounterVec
	collisionTests prometheus.Counter
	landings       prometheus.Counter
	tickDuration   prometheus.Histogram
	renderDuration prometheus.Histogram
}

// NewMetrics создаёт метрики, но не регистрирует их
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		chunkRebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_rebuilds_total",
			Help:      "Число перестроек геометрии чанков.",
		}, []string{"mode"}),
		quadsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_quads_emitted_total",
			Help:      "Число граней, переданных бэкенду при перестройках.",
		}),
		chunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_loaded",
			Help:      "Текущее число чанков в мире.",
		}),
		chunksCulled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_culled_total",
			Help:      "Чанки, отброшенные проходом отрисовки.",
		}, []string{"reason"}),
		chunksDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_drawn_total",
			Help:      "Чанки, переданные на отрисовку.",
		}),
		blockWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_writes_total",
			Help:      "Запись блоков в мир.",
		}, []string{"result"}),
		collisionTests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collision_tests_total",
			Help:      "Проверки пересечения AABB в физике.",
		}),
		landings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actor_landings_total",
			Help:      "Приземления актора.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Длительность фазы обновления.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Длительность фазы отрисовки.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// Register регистрирует метрики. Если такая метрика уже есть в reg,
// Metrics начинает писать в существующий коллектор.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	var errs []error
	adoptInto(reg, &m.chunkRebuilds, &errs)
	adoptInto(reg, &m.quadsEmitted, &errs)
	adoptInto(reg, &m.chunksLoaded, &errs)
	adoptInto(reg, &m.chunksCulled, &errs)
	adoptInto(reg, &m.chunksDrawn, &errs)
	adoptInto(reg, &m.blockWrites, &errs)
	adoptInto(reg, &m.collisionTests, &errs)
	adoptInto(reg, &m.landings, &errs)
	adoptInto(reg, &m.tickDuration, &errs)
	adoptInto(reg, &m.renderDuration, &errs)
	return errors.Join(errs...)
}

func adoptInto[C prometheus.Collector](reg prometheus.Registerer, c *C, errs *[]error) {
	err := reg.Register(*c)
	if err == nil {
		return
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			*c = existing
			return
		}
	}
	*errs = append(*errs, err)
}

// ObserveRebuild учитывает перестройку чанка
func (m *Metrics) ObserveRebuild(mode string, quads int) {
	if m == nil {
		return
	}
	m.chunkRebuilds.WithLabelValues(mode).Inc()
	m.quadsEmitted.Add(float64(quads))
}

func (m *Metrics) SetChunksLoaded(n int) {
	if m == nil {
		return
	}
	m.chunksLoaded.Set(float64(n))
}

func (m *Metrics) ObserveCulled(reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.chunksCulled.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) ObserveDrawn(n int) {
	if m == nil {
		return
	}
	m.chunksDrawn.Add(float64(n))
}

// ObserveBlockWrite учитывает принятую или отклонённую запись блока
func (m *Metrics) ObserveBlockWrite(accepted bool) {
	if m == nil {
		return
	}
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	m.blockWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) AddCollisionTests(n int) {
	if m == nil {
		return
	}
	m.collisionTests.Add(float64(n))
}

func (m *Metrics) IncLanding() {
	if m == nil {
		return
	}
	m.landings.Inc()
}

func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
}
