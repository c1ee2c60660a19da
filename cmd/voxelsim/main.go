package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/voxel-world/internal/api"
	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/game"
	"github.com/annel0/voxel-world/internal/input"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/observability"
	"github.com/annel0/voxel-world/internal/render"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $"+config.EnvConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logOpts := logging.Options{
		Console:      os.Stdout,
		Dir:          cfg.Logging.Dir,
		ConsoleLevel: level,
		FileLevel:    logging.DEBUG,
	}
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("voxelsim", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.GetLoggerManager().Configure(logOpts)
	defer logging.GetLoggerManager().CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
	logging.Info("👋 Симуляция остановлена")
}

func run(ctx context.Context, cfg *config.Config) error {
	logging.Info("🎮 Запуск симуляции воксельного мира")

	// === ТРАССИРОВКА ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, observability.TelemetryOptions{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			logging.Warn("ошибка остановки трассировки: %v", err)
		}
	}()

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(cfg.Debug.MetricsNamespace)
	if err := metrics.Register(reg); err != nil {
		return err
	}

	// === ИГРА ===
	backend := render.NewRecorder()
	g, err := game.New(cfg, backend, game.Options{
		Logger:      logging.GetGameLogger(),
		WorldLogger: logging.GetWorldLogger(),
		Metrics:     metrics,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	// === ОТЛАДОЧНЫЙ СЕРВЕР ===
	snapshots := api.NewSnapshotStore()
	srv, err := api.NewDebugServer(api.ServerOptions{
		Addr:        cfg.Debug.GetHTTPAddr(),
		ServiceName: cfg.Telemetry.ServiceName,
		Namespace:   cfg.Debug.MetricsNamespace,
		Registry:    reg,
		Snapshots:   snapshots,
		Logger:      logging.GetAPILogger(),
	})
	if err != nil {
		return err
	}
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Start() }()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logging.Warn("ошибка остановки отладочного сервера: %v", err)
		}
	}()

	logging.Info("   ❤️  Health check: http://localhost%s/health", srv.Addr())
	logging.Info("   📊 Снимок: http://localhost%s/stats", srv.Addr())

	// === ЦИКЛ С ФИКСИРОВАННЫМ ШАГОМ ===
	var provider input.Provider = input.ProviderFunc(func() input.Set { return 0 })
	if cfg.Sim.Autopilot {
		provider = &input.Autopilot{JumpEvery: cfg.Sim.TickRate * 2}
	}

	dt := 1.0 / float64(cfg.Sim.TickRate)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if cfg.Sim.DurationSeconds > 0 {
		timer := time.NewTimer(time.Duration(cfg.Sim.DurationSeconds * float64(time.Second)))
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал завершения")
			return nil
		case <-deadline:
			logging.Info("⏱️ Время симуляции истекло, тиков: %d", g.Tick())
			return nil
		case err := <-srvErr:
			return err
		case <-ticker.C:
			g.Update(ctx, provider.Poll(), dt)
			g.Render(ctx)
			snapshots.Publish(g.Snapshot())
		}
	}
}
