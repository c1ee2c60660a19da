package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-world/internal/observability"
	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/render"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

func newTestWorld(w, h, d int) *World {
	return New(Bounds{Width: w, Height: h, Depth: d}, DefaultOptions())
}

// rejectAll отсекает любой бокс
type rejectAll struct{}

func (rejectAll) IsBoxInFrustum(x, y, z, w, h, d float32) bool { return false }

func TestWorldToLocalCoordNegative(t *testing.T) {
	for _, l := range []Layout{DefaultLayout(), {ChunkSize: 8, BlockSize: 0.5}, {ChunkSize: 4, BlockSize: 2}} {
		assert.Equal(t, l.ChunkSize-1, l.WorldToLocalCoord(-1*l.BlockSize))
		assert.Equal(t, -1, l.WorldToChunkCoord(-1*l.BlockSize))
		assert.Equal(t, 0, l.WorldToLocalCoord(0))
		assert.Equal(t, 0, l.WorldToChunkCoord(0))

		for i := -3 * l.ChunkSize; i < 3*l.ChunkSize; i++ {
			local := l.WorldToLocalCoord(float64(i) * l.BlockSize)
			require.GreaterOrEqual(t, local, 0)
			require.Less(t, local, l.ChunkSize)
		}
	}
}

func TestWorldCoordinateRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Layout = Layout{ChunkSize: 4, BlockSize: 0.5}
	w := New(Bounds{Width: 10, Height: 9, Depth: 11}, opts)
	l := w.Layout()

	for x := 0; x < 10; x++ {
		for y := 0; y < 9; y++ {
			for z := 0; z < 11; z++ {
				require.True(t, w.SetBlock(x, y, z, block.Stone))
				b := w.GetBlock(x, y, z)
				require.NotNil(t, b)

				pos := b.Position()
				coord := vec.New(w.WorldToChunkCoord(pos[0]), w.WorldToChunkCoord(pos[1]), w.WorldToChunkCoord(pos[2]))
				local := vec.New(w.WorldToLocalCoord(pos[0]), w.WorldToLocalCoord(pos[1]), w.WorldToLocalCoord(pos[2]))

				chunk, ok := w.GetChunk(coord)
				require.True(t, ok)
				require.Same(t, b, chunk.GetBlock(local), "клетка (%d,%d,%d)", x, y, z)
				require.Equal(t, l.GridToChunk(vec.New(x, y, z)), coord)
			}
		}
	}
	assert.Equal(t, 3*3*3, w.ChunkCount())
	assert.Equal(t, 10*9*11, w.BlockCount())
}

func TestWorldSetBlockOutOfBounds(t *testing.T) {
	w := newTestWorld(16, 16, 16)

	for _, p := range []vec.Vec3{{X: -1}, {Y: -1}, {Z: -1}, {X: 16}, {Y: 16}, {Z: 16}, {X: 100, Y: 100, Z: 100}} {
		assert.False(t, w.SetBlock(p.X, p.Y, p.Z, block.Dirt), "клетка %v", p)
		assert.Equal(t, block.Air, w.GetBlockType(p.X, p.Y, p.Z))
		assert.Nil(t, w.GetBlock(p.X, p.Y, p.Z))
	}

	assert.Equal(t, 0, w.ChunkCount(), "отклонённая запись не создаёт чанков")
	assert.Equal(t, 7, w.Stats().Rejected)
	assert.Equal(t, 0, w.Stats().Writes)
}

func TestWorldMissingChunkIsAir(t *testing.T) {
	w := newTestWorld(64, 64, 64)
	require.True(t, w.SetBlock(1, 1, 1, block.Dirt))

	assert.Equal(t, block.Dirt, w.GetBlockType(1, 1, 1))
	assert.Equal(t, block.Air, w.GetBlockType(40, 40, 40))
	assert.Equal(t, block.Air, w.BlockType(vec.New(2, 1, 1)))
	_, ok := w.GetChunk(vec.New(2, 2, 2))
	assert.False(t, ok)
}

func TestWorldRemoveBlock(t *testing.T) {
	w := newTestWorld(16, 16, 16)
	require.True(t, w.SetBlock(3, 3, 3, block.Grass))
	require.True(t, w.RemoveBlock(3, 3, 3))

	assert.Equal(t, block.Air, w.GetBlockType(3, 3, 3))
	assert.False(t, w.RemoveBlock(-3, 3, 3))
	assert.Equal(t, 1, w.ChunkCount(), "чанк не удаляется после опустошения")
}

func TestWorldCrossChunkDirtyPropagation(t *testing.T) {
	w := newTestWorld(48, 16, 16)
	rec := render.NewRecorder()

	require.True(t, w.SetBlock(0, 0, 0, block.Dirt))
	require.True(t, w.SetBlock(16, 0, 0, block.Dirt))
	require.True(t, w.SetBlock(32, 0, 0, block.Dirt))
	w.Render(vec.Vec3{}, nil, rec)

	left, _ := w.GetChunk(vec.New(0, 0, 0))
	mid, _ := w.GetChunk(vec.New(1, 0, 0))
	right, _ := w.GetChunk(vec.New(2, 0, 0))
	require.False(t, left.IsDirty())
	require.False(t, mid.IsDirty())

	// Запись на западном краю среднего чанка задевает левый
	require.True(t, w.SetBlock(16, 5, 5, block.Stone))
	assert.True(t, mid.IsDirty())
	assert.True(t, left.IsDirty())
	assert.False(t, right.IsDirty())

	lo, hi, ok := left.DirtyRegion()
	require.True(t, ok)
	assert.Equal(t, vec.New(14, 4, 4), lo)
	assert.Equal(t, vec.New(15, 6, 6), hi, "окрестность обрезана краем чанка")

	w.Render(vec.Vec3{}, nil, rec)

	// Внутренняя запись соседей не трогает
	require.True(t, w.SetBlock(20, 5, 5, block.Stone))
	assert.True(t, mid.IsDirty())
	assert.False(t, left.IsDirty())
	assert.False(t, right.IsDirty())
}

func TestWorldFaceCullingAcrossChunks(t *testing.T) {
	w := newTestWorld(32, 16, 16)
	rec := render.NewRecorder()

	require.True(t, w.SetBlock(15, 0, 0, block.Stone))
	require.True(t, w.SetBlock(16, 0, 0, block.Stone))
	w.Render(vec.Vec3{}, nil, rec)

	left, _ := w.GetChunk(vec.New(0, 0, 0))
	right, _ := w.GetChunk(vec.New(1, 0, 0))
	assert.False(t, left.VisibleFaces(vec.New(15, 0, 0)).Has(vec.FaceEast))
	assert.False(t, right.VisibleFaces(vec.New(0, 0, 0)).Has(vec.FaceWest))
	assert.Equal(t, 5, left.QuadCount())
	assert.Equal(t, 5, right.QuadCount())

	require.True(t, w.RemoveBlock(16, 0, 0))
	stats := w.Render(vec.Vec3{}, nil, rec)
	assert.Equal(t, 2, stats.PartialRebuilds)
	assert.True(t, left.VisibleFaces(vec.New(15, 0, 0)).Has(vec.FaceEast), "грань снова открыта")
	assert.Equal(t, 6, left.QuadCount())
	assert.Equal(t, 0, right.QuadCount())
}

func TestWorldBoundaryFacesVisible(t *testing.T) {
	w := newTestWorld(16, 16, 16)
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				w.SetBlock(x, y, z, block.Stone)
			}
		}
	}

	rec := render.NewRecorder()
	stats := w.Render(vec.Vec3{}, nil, rec)

	assert.Equal(t, 1, stats.FullRebuilds)
	assert.Equal(t, 1536, stats.QuadsDrawn)
}

func TestWorldRenderCulling(t *testing.T) {
	opts := DefaultOptions()
	opts.RenderDistance = 1
	w := New(Bounds{Width: 64, Height: 16, Depth: 16}, opts)
	for cx := 0; cx < 4; cx++ {
		require.True(t, w.SetBlock(cx*16, 0, 0, block.Dirt))
	}
	rec := render.NewRecorder()

	stats := w.Render(vec.Vec3{}, nil, rec)
	assert.Equal(t, 4, stats.Considered)
	assert.Equal(t, 2, stats.DistanceCulled)
	assert.Equal(t, 2, stats.Drawn)
	assert.Equal(t, 2, stats.Rebuilt())

	// Отсечённые чанки остаются грязными до попадания в поле зрения
	far, _ := w.GetChunk(vec.New(3, 0, 0))
	assert.True(t, far.IsDirty())

	stats = w.Render(vec.Vec3{}, rejectAll{}, rec)
	assert.Equal(t, 2, stats.FrustumCulled)
	assert.Equal(t, 0, stats.Drawn)

	stats = w.Render(vec.New(2, 0, 0), nil, rec)
	assert.Equal(t, 1, stats.DistanceCulled)
	assert.Equal(t, 3, stats.Drawn)
	assert.Equal(t, 2, stats.Rebuilt(), "чанк (1,0,0) уже собран")
	assert.False(t, far.IsDirty())
}

func TestWorldCleanup(t *testing.T) {
	w := newTestWorld(48, 16, 16)
	for cx := 0; cx < 3; cx++ {
		w.SetBlock(cx*16+1, 1, 1, block.Sand)
	}
	rec := render.NewRecorder()
	w.Render(vec.Vec3{}, nil, rec)
	require.Equal(t, 3, rec.Stats().Live)

	w.Cleanup(rec)
	w.Cleanup(rec)

	assert.Equal(t, 0, w.ChunkCount())
	assert.Equal(t, 3, rec.Stats().Releases)
	assert.Equal(t, 0, rec.Stats().Live)
	assert.Empty(t, rec.Violations())
}

func TestWorldDeterministicOrder(t *testing.T) {
	w := newTestWorld(64, 64, 64)
	w.SetBlock(40, 0, 0, block.Dirt)
	w.SetBlock(0, 40, 0, block.Dirt)
	w.SetBlock(0, 0, 40, block.Dirt)
	w.SetBlock(0, 0, 0, block.Dirt)

	assert.Equal(t, []vec.Vec3{
		vec.New(0, 0, 0),
		vec.New(0, 0, 2),
		vec.New(0, 2, 0),
		vec.New(2, 0, 0),
	}, w.ChunkCoords())

	var grids []vec.Vec3
	w.ForEachBlock(func(g vec.Vec3, b *block.Block) { grids = append(grids, g) })
	assert.Equal(t, []vec.Vec3{vec.New(0, 0, 0), vec.New(0, 0, 40), vec.New(0, 40, 0), vec.New(40, 0, 0)}, grids)
}

func TestWorldSolidBoxes(t *testing.T) {
	w := newTestWorld(16, 16, 16)
	require.True(t, w.SetBlock(0, 0, 0, block.Dirt))
	require.True(t, w.SetBlock(1, 0, 0, block.Dirt))
	require.True(t, w.SetBlock(5, 5, 5, block.Dirt))

	region := physics.AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1.5, 0.5, 0.5}}
	boxes := w.SolidBoxes(region, nil)
	assert.Len(t, boxes, 2)

	// Касание не считается
	touching := physics.AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}
	assert.Empty(t, w.SolidBoxes(touching, nil))

	// Область за пределами мира
	outside := physics.AABB{Min: mgl64.Vec3{-10, -10, -10}, Max: mgl64.Vec3{-5, -5, -5}}
	assert.Empty(t, w.SolidBoxes(outside, nil))
}

func TestWorldActorSettlesOnSingleBlock(t *testing.T) {
	for _, blockSize := range []float64{1, 0.5} {
		opts := DefaultOptions()
		opts.Layout.BlockSize = blockSize
		w := New(Bounds{Width: 16, Height: 16, Depth: 16}, opts)
		require.True(t, w.SetBlock(0, 0, 0, block.Dirt))

		size := mgl64.Vec3{0.6, 1.8, 0.6}.Mul(blockSize)
		body := physics.NewBody(mgl64.Vec3{0, 5 * blockSize, 0}, size)
		r := physics.NewResolver(physics.DefaultTuning())

		dt := 1.0 / 120.0
		for i := 0; i < 1200 && !body.Grounded; i++ {
			r.Step(body, physics.Intent{}, w, dt)
		}
		require.True(t, body.Grounded, "размер блока %v", blockSize)

		want := blockSize + size[1]/2
		for i := 0; i < 300; i++ {
			r.Step(body, physics.Intent{}, w, dt)
			require.True(t, body.Grounded)
			require.InDelta(t, want, body.Position[1], 1e-9)
		}
	}
}

func TestWorldWithMetrics(t *testing.T) {
	m := observability.NewMetrics("test")
	require.NoError(t, m.Register(prometheus.NewRegistry()))

	opts := DefaultOptions()
	opts.Metrics = m
	w := New(Bounds{Width: 16, Height: 16, Depth: 16}, opts)

	assert.NotPanics(t, func() {
		w.SetBlock(1, 1, 1, block.Dirt)
		w.SetBlock(-1, 1, 1, block.Dirt)
		w.Render(vec.Vec3{}, rejectAll{}, render.NewRecorder())
		w.Render(vec.Vec3{}, nil, render.NewRecorder())
	})
}
