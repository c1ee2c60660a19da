package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/terrain"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Переменные окружения
const (
	EnvConfigPath = "VOXEL_CONFIG"
	EnvDebugAddr  = "VOXEL_DEBUG_ADDR"

	defaultDebugAddr = ":8089"
)

// Config корневая структура конфигурации симуляции.
// Поля, не указанные в файле, сохраняют значения из Default().
type Config struct {
	World     WorldConfig               `yaml:"world"`
	Physics   PhysicsConfig             `yaml:"physics"`
	Actor     ActorConfig               `yaml:"actor"`
	Camera    CameraConfig              `yaml:"camera"`
	Terrain   TerrainConfig             `yaml:"terrain"`
	Sim       SimConfig                 `yaml:"sim"`
	Debug     DebugConfig               `yaml:"debug"`
	Telemetry TelemetryConfig           `yaml:"telemetry"`
	Logging   LoggingConfig             `yaml:"logging"`
	Materials map[string]MaterialConfig `yaml:"materials"`
}

type WorldConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Depth          int     `yaml:"depth"`
	ChunkSize      int     `yaml:"chunk_size"`
	BlockSize      float64 `yaml:"block_size"`
	RenderDistance int     `yaml:"render_distance"`
	RebuildPolicy  string  `yaml:"rebuild_policy"`
}

type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	JumpImpulse       float64 `yaml:"jump_impulse"`
	MaxVelocity       float64 `yaml:"max_velocity"`
	WalkSpeed         float64 `yaml:"walk_speed"`
	SprintSpeed       float64 `yaml:"sprint_speed"`
	SpectatorSpeed    float64 `yaml:"spectator_speed"`
	GroundThreshold   float64 `yaml:"ground_threshold"`
	EyeHeightFraction float64 `yaml:"eye_height_fraction"`
}

type ActorConfig struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Depth  float64    `yaml:"depth"`
	Spawn  [3]float64 `yaml:"spawn"`
}

type CameraConfig struct {
	FOV              float32 `yaml:"fov"`
	Aspect           float32 `yaml:"aspect"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

type TerrainConfig struct {
	Kind        string   `yaml:"kind"`
	Seed        int64    `yaml:"seed"`
	Layer       string   `yaml:"layer"`
	BaseHeight  int      `yaml:"base_height"`
	Amplitude   float64  `yaml:"amplitude"`
	Scale       float64  `yaml:"scale"`
	TreeDensity float64  `yaml:"tree_density"`
	Stones      [][3]int `yaml:"stones"`
	Trees       [][3]int `yaml:"trees"`
}

type SimConfig struct {
	TickRate        int     `yaml:"tick_rate"`
	DurationSeconds float64 `yaml:"duration_seconds"`
	Autopilot       bool    `yaml:"autopilot"`
}

type DebugConfig struct {
	HTTPAddr         string `yaml:"http_addr"`
	MetricsNamespace string `yaml:"metrics_namespace"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// MaterialConfig - текстура и запасной цвет типа блока
type MaterialConfig struct {
	Texture string     `yaml:"texture"`
	Color   [3]float32 `yaml:"color"`
}

// GetHTTPAddr возвращает адрес отладочного сервера с приоритетом: config -> env -> default
func (d *DebugConfig) GetHTTPAddr() string {
	if d.HTTPAddr != "" {
		return d.HTTPAddr
	}
	if env := os.Getenv(EnvDebugAddr); env != "" {
		return env
	}
	return defaultDebugAddr
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:          64,
			Height:         32,
			Depth:          64,
			ChunkSize:      world.DefaultChunkSize,
			BlockSize:      world.DefaultBlockSize,
			RenderDistance: world.DefaultRenderDistance,
			RebuildPolicy:  world.PolicyIncremental.String(),
		},
		Physics: PhysicsConfig{
			Gravity:           -20,
			JumpImpulse:       10,
			MaxVelocity:       50,
			WalkSpeed:         6,
			SprintSpeed:       10,
			SpectatorSpeed:    12,
			GroundThreshold:   0.1,
			EyeHeightFraction: 0.75,
		},
		Actor: ActorConfig{
			Width:  0.6,
			Height: 1.8,
			Depth:  0.6,
			Spawn:  [3]float64{8, 10, 8},
		},
		Camera: CameraConfig{
			FOV:              60,
			Aspect:           16.0 / 9.0,
			Near:             0.1,
			Far:              10000,
			MouseSensitivity: 0.1,
		},
		Terrain: TerrainConfig{
			Kind:        string(terrain.KindFlat),
			Seed:        1337,
			Layer:       block.Dirt.String(),
			BaseHeight:  4,
			Amplitude:   3,
			Scale:       0.05,
			TreeDensity: 0.01,
			Stones:      [][3]int{{3, 5, 3}, {4, 4, 3}, {3, 3, 3}},
			Trees:       [][3]int{{5, 1, 5}, {10, 1, 10}, {3, 1, 12}, {22, 1, 12}},
		},
		Sim: SimConfig{
			TickRate:        60,
			DurationSeconds: 10,
			Autopilot:       true,
		},
		Debug: DebugConfig{
			MetricsNamespace: "voxel",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "voxelsim",
			Endpoint:    "localhost:4318",
			Insecure:    true,
			SampleRatio: 0.1,
		},
		Logging: LoggingConfig{
			Level: logging.INFO.String(),
			Dir:   "logs",
		},
	}
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV VOXEL_CONFIG; если и он пуст,
// возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil // конфиг не задан, используем значения по умолчанию
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("конфигурация %s: %w", path, err)
	}
	return cfg, nil
}

// Validate собирает все ошибки конфигурации
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	w := c.World
	if w.Width <= 0 || w.Height <= 0 || w.Depth <= 0 {
		add("world: размеры должны быть положительными, получено %dx%dx%d", w.Width, w.Height, w.Depth)
	}
	if w.ChunkSize <= 0 {
		add("world: chunk_size должен быть положительным, получено %d", w.ChunkSize)
	}
	if w.BlockSize <= 0 {
		add("world: block_size должен быть положительным, получено %g", w.BlockSize)
	}
	if w.RenderDistance < 0 {
		add("world: render_distance не может быть отрицательным")
	}
	if _, err := world.ParsePolicy(w.RebuildPolicy); err != nil {
		errs = append(errs, fmt.Errorf("world: %w", err))
	}

	p := c.Physics
	if p.EyeHeightFraction <= 0 || p.EyeHeightFraction > 1 {
		add("physics: eye_height_fraction вне (0, 1]: %g", p.EyeHeightFraction)
	}
	if p.MaxVelocity <= 0 {
		add("physics: max_velocity должен быть положительным")
	}
	if p.GroundThreshold < 0 {
		add("physics: ground_threshold не может быть отрицательным")
	}

	a := c.Actor
	if a.Width <= 0 || a.Height <= 0 || a.Depth <= 0 {
		add("actor: размеры должны быть положительными")
	}

	cam := c.Camera
	if cam.Near <= 0 || cam.Far <= cam.Near {
		add("camera: требуется 0 < near < far, получено near=%g far=%g", cam.Near, cam.Far)
	}
	if cam.FOV <= 0 || cam.FOV >= 180 {
		add("camera: fov вне (0, 180): %g", cam.FOV)
	}
	if cam.Aspect <= 0 {
		add("camera: aspect должен быть положительным")
	}

	if _, err := terrain.ParseKind(c.Terrain.Kind); err != nil {
		errs = append(errs, fmt.Errorf("terrain: %w", err))
	}
	if _, err := block.ParseType(c.Terrain.Layer); err != nil {
		errs = append(errs, fmt.Errorf("terrain: layer: %w", err))
	}

	if c.Sim.TickRate <= 0 {
		add("sim: tick_rate должен быть положительным, получено %d", c.Sim.TickRate)
	}
	if c.Sim.DurationSeconds < 0 {
		add("sim: duration_seconds не может быть отрицательным")
	}

	if r := c.Telemetry.SampleRatio; r < 0 || r > 1 {
		add("telemetry: sample_ratio вне [0, 1]: %g", r)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	for name := range c.Materials {
		if _, err := block.ParseType(name); err != nil {
			errs = append(errs, fmt.Errorf("materials: %w", err))
		}
	}

	return errors.Join(errs...)
}
