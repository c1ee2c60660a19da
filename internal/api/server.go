package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/middleware"
)

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ServerOptions содержит конфигурацию отладочного сервера
type ServerOptions struct {
	Addr        string // адрес для запуска сервера
	ServiceName string // имя сервиса в трассировке
	Namespace   string // префикс HTTP-метрик
	Registry    *prometheus.Registry
	Snapshots   *SnapshotStore
	Logger      *logging.Logger
}

// DebugServer - HTTP-сервер со здоровьем процесса, снимком симуляции и метриками
type DebugServer struct {
	router    *gin.Engine
	http      *http.Server
	snapshots *SnapshotStore
	process   *ProcessMetrics
	logger    *logging.Logger
}

// NewDebugServer создает отладочный сервер
func NewDebugServer(opts ServerOptions) (*DebugServer, error) {
	if opts.Addr == "" {
		opts.Addr = ":8089"
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "voxelsim"
	}
	if opts.Snapshots == nil {
		opts.Snapshots = NewSnapshotStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger("api")
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.NewRequestLogger(logger).Handler())

	var registerer prometheus.Registerer
	var gatherer prometheus.Gatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	promMw, err := middleware.NewPrometheusMiddleware(opts.Namespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("регистрация HTTP-метрик: %w", err)
	}
	router.Use(promMw.Handler())
	middleware.RegisterMetricsEndpoint(router, gatherer)

	s := &DebugServer{
		router:    router,
		snapshots: opts.Snapshots,
		process:   NewProcessMetrics(),
		logger:    logger,
	}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)
	return s, nil
}

// Handler возвращает корневой обработчик, например для httptest
func (s *DebugServer) Handler() http.Handler {
	return s.router
}

// Addr возвращает адрес прослушивания
func (s *DebugServer) Addr() string {
	return s.http.Addr
}

// handleHealth проверка состояния процесса
func (s *DebugServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().Unix(),
		"process": s.process.Collect(),
	})
}

// handleStats возвращает последний снимок симуляции
func (s *DebugServer) handleStats(c *gin.Context) {
	snap, ok := s.snapshots.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Симуляция ещё не опубликовала состояние",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    snap,
	})
}

// Start запускает сервер и блокируется до Shutdown
func (s *DebugServer) Start() error {
	s.logger.Info("🌐 Отладочный сервер слушает %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("отладочный сервер: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *DebugServer) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
