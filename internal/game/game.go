// Package game связывает мир, актора, камеру и бэкенд отрисовки в две фазы
// кадра: обновление и отрисовку. Обе фазы вызываются из одной горутины.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/voxel-world/internal/camera"
	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/entity"
	"github.com/annel0/voxel-world/internal/input"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/observability"
	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/render"
	"github.com/annel0/voxel-world/internal/terrain"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Options - внешние зависимости игры. Пустые поля заменяются безопасными значениями.
type Options struct {
	Logger      *logging.Logger
	WorldLogger *logging.Logger
	Metrics     *observability.Metrics
	Tracer      trace.Tracer
}

// TickResult - итог одного тика обновления
type TickResult struct {
	Tick        uint64
	Mode        entity.Mode
	ModeChanged bool
	Edits       int
	Step        physics.StepResult
}

type blockEdit struct {
	x, y, z int
	typ     block.Type
}

// Game - одна симуляция мира с одним актором
type Game struct {
	cfg     *config.Config
	world   *world.World
	actor   *entity.Actor
	camera  *camera.Camera
	input   input.State
	backend render.Backend

	logger  *logging.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer

	runID     uuid.UUID
	startedAt time.Time
	tick      uint64
	pending   []blockEdit

	terrainStats terrain.Stats
	lastRender   world.RenderStats
	landings     int
}

// New строит мир по конфигурации, заполняет его и ставит актора в точку появления
func New(cfg *config.Config, backend render.Backend, opts Options) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}
	if backend == nil {
		return nil, fmt.Errorf("не задан бэкенд отрисовки")
	}

	policy, err := cfg.RebuildPolicy()
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	gen, err := cfg.TerrainGenerator()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger("game")
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(observability.TracerName)
	}

	w := world.New(cfg.WorldBounds(), world.Options{
		Layout:         cfg.WorldLayout(),
		Policy:         policy,
		RenderDistance: cfg.World.RenderDistance,
		Registry:       reg,
		Logger:         opts.WorldLogger,
		Metrics:        opts.Metrics,
	})

	g := &Game{
		cfg:       cfg,
		world:     w,
		backend:   backend,
		logger:    logger,
		metrics:   opts.Metrics,
		tracer:    tracer,
		runID:     uuid.New(),
		startedAt: time.Now(),
	}

	g.terrainStats = gen.Populate(w)
	logger.Info("🌍 Мир %dx%dx%d заполнен: блоков %d, отклонено %d, деревьев %d, чанков %d",
		cfg.World.Width, cfg.World.Height, cfg.World.Depth,
		g.terrainStats.Placed, g.terrainStats.Rejected, g.terrainStats.Trees, w.ChunkCount())

	resolver := physics.NewResolver(cfg.PhysicsTuning())
	g.actor = entity.NewActor(cfg.ActorSpawn(), cfg.ActorSize(), resolver)

	g.camera = camera.New(toVec32(g.actor.Viewer), cfg.CameraLens())
	g.camera.SetSensitivity(cfg.Camera.MouseSensitivity)

	logger.Info("🚀 Запуск %s, актор %s в точке %v", g.runID, g.actor.ID, g.actor.Body.Position)
	return g, nil
}

func toVec32(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func (g *Game) World() *world.World { return g.world }
func (g *Game) Actor() *entity.Actor { return g.actor }
func (g *Game) Camera() *camera.Camera { return g.camera }
func (g *Game) Config() *config.Config { return g.cfg }
func (g *Game) RunID() uuid.UUID { return g.runID }
func (g *Game) Tick() uint64 { return g.tick }
func (g *Game) Input() *input.State { return &g.input }
func (g *Game) TerrainStats() terrain.Stats { return g.terrainStats }

// Look поворачивает камеру смещением мыши
func (g *Game) Look(dx, dy float32) {
	g.camera.Look(dx, dy)
}

// PlaceBlock ставит блок в очередь правок следующего тика.
// Клетка вне мира отклоняется сразу.
func (g *Game) PlaceBlock(x, y, z int, t block.Type) bool {
	if !g.world.InBounds(x, y, z) {
		g.logger.Debug("правка вне мира отклонена: (%d,%d,%d)", x, y, z)
		return false
	}
	g.pending = append(g.pending, blockEdit{x: x, y: y, z: z, typ: t})
	return true
}

// BreakBlock эквивалентен PlaceBlock(x, y, z, block.Air)
func (g *Game) BreakBlock(x, y, z int) bool {
	return g.PlaceBlock(x, y, z, block.Air)
}

// Update выполняет фазу обновления: правки блоков, затем шаг актора и камера.
// Правки применяются до физики, поэтому актор сразу сталкивается с новыми блоками.
func (g *Game) Update(ctx context.Context, actions input.Set, dt float64) TickResult {
	started := time.Now()
	g.tick++

	_, span := g.tracer.Start(ctx, "game.update", trace.WithAttributes(
		attribute.Int64("tick", int64(g.tick)),
	))
	defer span.End()

	res := TickResult{Tick: g.tick}

	for _, e := range g.pending {
		if g.world.SetBlock(e.x, e.y, e.z, e.typ) {
			res.Edits++
		}
	}
	g.pending = g.pending[:0]

	g.input.Update(actions)
	before := g.actor.Mode()
	g.actor.Update(&entity.TickContext{
		Input: &g.input,
		Yaw:   float64(g.camera.Yaw()),
		Query: g.world,
		Dt:    dt,
	})
	res.Mode = g.actor.Mode()
	res.ModeChanged = res.Mode != before
	res.Step = g.actor.LastStep()

	if res.ModeChanged {
		g.logger.Info("🎮 Режим актора: %s -> %s", before, res.Mode)
	}
	if res.Step.Landed {
		g.landings++
		g.metrics.IncLanding()
		g.logger.Debug("актор приземлился на y=%.3f", g.actor.Body.Position[1])
	}
	g.metrics.AddCollisionTests(res.Step.Tests)

	g.camera.SetPosition(toVec32(g.actor.Viewer))

	span.SetAttributes(
		attribute.String("mode", res.Mode.String()),
		attribute.Int("collision_tests", res.Step.Tests),
		attribute.Int("edits", res.Edits),
	)
	g.metrics.ObserveTick(time.Since(started))
	return res
}

// Render выполняет фазу отрисовки: пирамида камеры, отсечение чанков,
// перестройка грязных и отправка геометрии в бэкенд.
func (g *Game) Render(ctx context.Context) world.RenderStats {
	started := time.Now()
	_, span := g.tracer.Start(ctx, "game.render")
	defer span.End()

	g.camera.Update()
	viewer := g.world.ChunkAt(g.actor.Viewer)
	stats := g.world.Render(viewer, g.camera.Frustum(), g.backend)
	g.lastRender = stats

	span.SetAttributes(
		attribute.Int("considered", stats.Considered),
		attribute.Int("drawn", stats.Drawn),
		attribute.Int("rebuilt", stats.Rebuilt()),
		attribute.Int("quads", stats.QuadsDrawn),
	)
	g.metrics.ObserveRender(time.Since(started))
	return stats
}

// LastRender возвращает статистику последнего прохода отрисовки
func (g *Game) LastRender() world.RenderStats {
	return g.lastRender
}

// Close освобождает всю геометрию мира
func (g *Game) Close() error {
	g.world.Cleanup(g.backend)
	g.logger.Info("🛑 Запуск %s завершён после %d тиков", g.runID, g.tick)
	return nil
}
