package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-world/internal/terrain"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, "world:\n  width: 16\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.World.Width)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  width: 16
  height: 16
  depth: 16
  rebuild_policy: full
physics:
  gravity: -9.8
terrain:
  kind: perlin
  seed: 7
materials:
  stone:
    texture: granite.png
    color: [0.4, 0.4, 0.45]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, world.Bounds{Width: 16, Height: 16, Depth: 16}, cfg.WorldBounds())
	assert.Equal(t, world.DefaultChunkSize, cfg.World.ChunkSize, "не указанное поле остаётся по умолчанию")
	assert.Equal(t, -9.8, cfg.PhysicsTuning().Gravity)
	assert.Equal(t, 10.0, cfg.PhysicsTuning().JumpImpulse)

	policy, err := cfg.RebuildPolicy()
	require.NoError(t, err)
	assert.Equal(t, world.PolicyFull, policy)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.Equal(t, "granite.png", reg.Material(block.Stone).Texture)
	assert.Equal(t, mgl32.Vec3{0.4, 0.4, 0.45}, reg.Material(block.Stone).Color)
	assert.Equal(t, "dirt.png", reg.Material(block.Dirt).Texture)

	gen, err := cfg.TerrainGenerator()
	require.NoError(t, err)
	p, ok := gen.(terrain.Perlin)
	require.True(t, ok)
	assert.Equal(t, int64(7), p.Seed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world:\n  chunk_size: 0\n"))
	assert.ErrorContains(t, err, "chunk_size")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.World.Width = 0
	cfg.World.BlockSize = -1
	cfg.World.RebuildPolicy = "lazy"
	cfg.Physics.EyeHeightFraction = 1.5
	cfg.Camera.Near = 10
	cfg.Camera.Far = 1
	cfg.Terrain.Kind = "islands"
	cfg.Sim.TickRate = 0
	cfg.Telemetry.SampleRatio = 2
	cfg.Materials = map[string]MaterialConfig{"lava": {}}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"размеры", "block_size", "lazy", "eye_height_fraction", "near", "islands", "tick_rate", "sample_ratio", "lava"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestDebugAddrFallback(t *testing.T) {
	d := DebugConfig{}

	t.Setenv(EnvDebugAddr, "")
	assert.Equal(t, ":8089", d.GetHTTPAddr())

	t.Setenv(EnvDebugAddr, "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", d.GetHTTPAddr())

	d.HTTPAddr = ":7000"
	assert.Equal(t, ":7000", d.GetHTTPAddr())
}

func TestFlatTerrainFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Layer = "grass"
	cfg.Terrain.Trees = nil

	gen, err := cfg.TerrainGenerator()
	require.NoError(t, err)
	f, ok := gen.(terrain.Flat)
	require.True(t, ok)
	assert.Equal(t, block.Grass, f.Layer)
	assert.Len(t, f.Stones, 3)
	assert.Empty(t, f.Trees)

	cfg.Terrain.Kind = "none"
	gen, err = cfg.TerrainGenerator()
	require.NoError(t, err)
	assert.Equal(t, terrain.None{}, gen)
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "voxelsim.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8089", cfg.Debug.GetHTTPAddr())
	assert.Equal(t, 30.0, cfg.Sim.DurationSeconds)

	gen, err := cfg.TerrainGenerator()
	require.NoError(t, err)
	_, ok := gen.(terrain.Perlin)
	assert.True(t, ok, "в примере рельеф perlin")

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.Equal(t, "log.png", reg.Material(block.Wood).Texture)
}
