package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-world/internal/camera"
	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/terrain"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// WorldBounds возвращает размеры мира в блоках
func (c *Config) WorldBounds() world.Bounds {
	return world.Bounds{Width: c.World.Width, Height: c.World.Height, Depth: c.World.Depth}
}

// WorldLayout возвращает размер чанка и блока
func (c *Config) WorldLayout() world.Layout {
	return world.Layout{ChunkSize: c.World.ChunkSize, BlockSize: c.World.BlockSize}
}

// RebuildPolicy возвращает политику перестройки чанков
func (c *Config) RebuildPolicy() (world.RebuildPolicy, error) {
	return world.ParsePolicy(c.World.RebuildPolicy)
}

// PhysicsTuning переводит секцию physics в параметры решателя
func (c *Config) PhysicsTuning() physics.Tuning {
	p := c.Physics
	return physics.Tuning{
		Gravity:           p.Gravity,
		JumpImpulse:       p.JumpImpulse,
		MaxVelocity:       p.MaxVelocity,
		WalkSpeed:         p.WalkSpeed,
		SprintSpeed:       p.SprintSpeed,
		SpectatorSpeed:    p.SpectatorSpeed,
		GroundThreshold:   p.GroundThreshold,
		EyeHeightFraction: p.EyeHeightFraction,
	}
}

// ActorSize возвращает размеры бокса актора
func (c *Config) ActorSize() mgl64.Vec3 {
	return mgl64.Vec3{c.Actor.Width, c.Actor.Height, c.Actor.Depth}
}

// ActorSpawn возвращает точку появления центра тела
func (c *Config) ActorSpawn() mgl64.Vec3 {
	return mgl64.Vec3(c.Actor.Spawn)
}

// CameraLens возвращает параметры проекции
func (c *Config) CameraLens() camera.Lens {
	return camera.Lens{FOV: c.Camera.FOV, Aspect: c.Camera.Aspect, Near: c.Camera.Near, Far: c.Camera.Far}
}

// Registry строит реестр материалов: значения по умолчанию плюс секция materials
func (c *Config) Registry() (*block.Registry, error) {
	reg := block.NewRegistry()
	for name, m := range c.Materials {
		t, err := block.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("materials: %w", err)
		}
		reg.Register(t, block.Material{Texture: m.Texture, Color: mgl32.Vec3(m.Color)})
	}
	return reg, nil
}

// TerrainGenerator строит генератор рельефа по секции terrain
func (c *Config) TerrainGenerator() (terrain.Generator, error) {
	tc := c.Terrain
	kind, err := terrain.ParseKind(tc.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case terrain.KindFlat:
		layer, err := block.ParseType(tc.Layer)
		if err != nil {
			return nil, fmt.Errorf("terrain: layer: %w", err)
		}
		f := terrain.DefaultFlat()
		f.Layer = layer
		f.Stones = toGrid(tc.Stones)
		f.Trees = toGrid(tc.Trees)
		return f, nil
	case terrain.KindPerlin:
		p := terrain.DefaultPerlin(tc.Seed)
		p.BaseHeight = tc.BaseHeight
		p.Amplitude = tc.Amplitude
		p.Scale = tc.Scale
		p.TreeDensity = tc.TreeDensity
		return p, nil
	default:
		return terrain.None{}, nil
	}
}

func toGrid(points [][3]int) []vec.Vec3 {
	out := make([]vec.Vec3, 0, len(points))
	for _, p := range points {
		out = append(out, vec.New(p[0], p[1], p[2]))
	}
	return out
}
