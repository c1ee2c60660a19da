package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/vec"
)

// Размеры по умолчанию
const (
	DefaultChunkSize = 16
	DefaultBlockSize = 1.0
)

// Layout хранит размер чанка и блока. И мир, и чанки переводят координаты
// только через него, поэтому принадлежность клетки чанку определяется одинаково.
type Layout struct {
	ChunkSize int     // ребро чанка в блоках
	BlockSize float64 // ребро блока в мировых единицах
}

// DefaultLayout возвращает раскладку 16 блоков по 1.0
func DefaultLayout() Layout {
	return Layout{ChunkSize: DefaultChunkSize, BlockSize: DefaultBlockSize}
}

// ChunkExtent возвращает ребро чанка в мировых единицах
func (l Layout) ChunkExtent() float64 {
	return float64(l.ChunkSize) * l.BlockSize
}

// WorldToChunkCoord переводит мировую координату в координату чанка
func (l Layout) WorldToChunkCoord(w float64) int {
	return int(math.Floor(w / l.ChunkExtent()))
}

// WorldToLocalCoord переводит мировую координату в локальную внутри чанка.
// Результат всегда в [0, ChunkSize), в том числе для отрицательных координат.
func (l Layout) WorldToLocalCoord(w float64) int {
	return vec.EuclidMod(int(math.Floor(w/l.BlockSize)), l.ChunkSize)
}

// WorldToGrid возвращает клетку сетки, содержащую мировую точку
func (l Layout) WorldToGrid(p mgl64.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: int(math.Floor(p[0] / l.BlockSize)),
		Y: int(math.Floor(p[1] / l.BlockSize)),
		Z: int(math.Floor(p[2] / l.BlockSize)),
	}
}

// GridToWorld возвращает мировую позицию минимального угла клетки
func (l Layout) GridToWorld(g vec.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(g.X) * l.BlockSize, float64(g.Y) * l.BlockSize, float64(g.Z) * l.BlockSize}
}

// GridToChunk возвращает координату чанка, которому принадлежит клетка
func (l Layout) GridToChunk(g vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: vec.FloorDiv(g.X, l.ChunkSize),
		Y: vec.FloorDiv(g.Y, l.ChunkSize),
		Z: vec.FloorDiv(g.Z, l.ChunkSize),
	}
}

// GridToLocal возвращает локальную координату клетки внутри её чанка
func (l Layout) GridToLocal(g vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: vec.EuclidMod(g.X, l.ChunkSize),
		Y: vec.EuclidMod(g.Y, l.ChunkSize),
		Z: vec.EuclidMod(g.Z, l.ChunkSize),
	}
}

// ChunkOrigin возвращает клетку сетки в минимальном углу чанка
func (l Layout) ChunkOrigin(c vec.Vec3) vec.Vec3 {
	return c.Scale(l.ChunkSize)
}

// ChunkBounds возвращает мировой бокс чанка
func (l Layout) ChunkBounds(c vec.Vec3) physics.AABB {
	lo := l.GridToWorld(l.ChunkOrigin(c))
	e := l.ChunkExtent()
	return physics.AABB{Min: lo, Max: lo.Add(mgl64.Vec3{e, e, e})}
}

// InChunk проверяет, лежит ли локальная координата внутри чанка
func (l Layout) InChunk(local vec.Vec3) bool {
	n := l.ChunkSize
	return local.InBox(vec.Vec3{}, vec.Vec3{X: n, Y: n, Z: n})
}

// Volume возвращает число клеток в чанке
func (l Layout) Volume() int {
	return l.ChunkSize * l.ChunkSize * l.ChunkSize
}
