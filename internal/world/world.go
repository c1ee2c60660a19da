package world

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/observability"
	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/render"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// DefaultRenderDistance - дальность прорисовки в чанках
const DefaultRenderDistance = 4

// Bounds - размеры мира в блоках. Допустимые клетки: [0, Width)×[0, Height)×[0, Depth).
type Bounds struct {
	Width  int
	Height int
	Depth  int
}

// Contains проверяет, лежит ли клетка внутри мира
func (b Bounds) Contains(g vec.Vec3) bool {
	return g.InBox(vec.Vec3{}, vec.New(b.Width, b.Height, b.Depth))
}

// Options - параметры мира, фиксируемые при создании
type Options struct {
	Layout         Layout
	Policy         RebuildPolicy
	RenderDistance int // в чанках, 0 - без ограничения
	Registry       *block.Registry
	Logger         *logging.Logger
	Metrics        *observability.Metrics
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		Layout:         DefaultLayout(),
		Policy:         PolicyIncremental,
		RenderDistance: DefaultRenderDistance,
	}
}

// WorldStats - счётчики записей в мир
type WorldStats struct {
	Writes   int
	Rejected int
}

// World хранит разреженную карту чанков ограниченного мира.
// Чанки создаются при первой записи и живут до Cleanup.
type World struct {
	bounds Bounds
	opts   Options

	chunks map[vec.Vec3]*Chunk
	order  []vec.Vec3 // координаты чанков в порядке Vec3.Less

	stats   WorldStats
	logger  *logging.Logger
	metrics *observability.Metrics
}

// New создаёт пустой мир
func New(bounds Bounds, opts Options) *World {
	if opts.Layout.ChunkSize == 0 {
		opts.Layout.ChunkSize = DefaultChunkSize
	}
	if opts.Layout.BlockSize == 0 {
		opts.Layout.BlockSize = DefaultBlockSize
	}
	if opts.Registry == nil {
		opts.Registry = block.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger("world")
	}

	return &World{
		bounds:  bounds,
		opts:    opts,
		chunks:  make(map[vec.Vec3]*Chunk),
		logger:  logger,
		metrics: opts.Metrics,
	}
}

func (w *World) Bounds() Bounds {
	return w.bounds
}

func (w *World) Layout() Layout {
	return w.opts.Layout
}

func (w *World) Registry() *block.Registry {
	return w.opts.Registry
}

func (w *World) RenderDistance() int {
	return w.opts.RenderDistance
}

func (w *World) Stats() WorldStats {
	return w.stats
}

// InBounds проверяет клетку сетки на принадлежность миру
func (w *World) InBounds(x, y, z int) bool {
	return w.bounds.Contains(vec.New(x, y, z))
}

// WorldToChunkCoord переводит мировую координату в координату чанка
func (w *World) WorldToChunkCoord(v float64) int {
	return w.opts.Layout.WorldToChunkCoord(v)
}

// WorldToLocalCoord переводит мировую координату в локальную внутри чанка
func (w *World) WorldToLocalCoord(v float64) int {
	return w.opts.Layout.WorldToLocalCoord(v)
}

// ChunkAt возвращает координату чанка, содержащего мировую точку
func (w *World) ChunkAt(p mgl64.Vec3) vec.Vec3 {
	l := w.opts.Layout
	return vec.New(l.WorldToChunkCoord(p[0]), l.WorldToChunkCoord(p[1]), l.WorldToChunkCoord(p[2]))
}

// SetBlock записывает блок в клетку сетки. Клетка вне мира отклоняется без
// побочных эффектов. Владелец клетки и соседние через грань чанки помечаются грязными.
func (w *World) SetBlock(x, y, z int, t block.Type) bool {
	g := vec.New(x, y, z)
	if !w.bounds.Contains(g) {
		w.stats.Rejected++
		w.metrics.ObserveBlockWrite(false)
		w.logger.Trace("запись вне мира отклонена: (%d,%d,%d)", x, y, z)
		return false
	}

	l := w.opts.Layout
	coord := l.GridToChunk(g)
	chunk := w.getOrCreateChunk(coord)
	chunk.SetBlock(l.GridToLocal(g), t)

	// Клетка на краю чанка влияет на видимость граней соседа
	for _, f := range vec.Faces() {
		n := g.Neighbor(f)
		nc := l.GridToChunk(n)
		if nc == coord {
			continue
		}
		if neighbor, ok := w.chunks[nc]; ok {
			neighbor.MarkBlockDirty(l.GridToLocal(n))
		}
	}

	w.stats.Writes++
	w.metrics.ObserveBlockWrite(true)
	return true
}

// RemoveBlock эквивалентен SetBlock(x, y, z, block.Air)
func (w *World) RemoveBlock(x, y, z int) bool {
	return w.SetBlock(x, y, z, block.Air)
}

// GetBlock возвращает блок клетки или nil, если клетка пуста или вне мира
func (w *World) GetBlock(x, y, z int) *block.Block {
	g := vec.New(x, y, z)
	if !w.bounds.Contains(g) {
		return nil
	}
	l := w.opts.Layout
	chunk, ok := w.chunks[l.GridToChunk(g)]
	if !ok {
		return nil
	}
	return chunk.GetBlock(l.GridToLocal(g))
}

// GetBlockType возвращает тип блока. Вне мира и в отсутствующем чанке - воздух.
func (w *World) GetBlockType(x, y, z int) block.Type {
	if b := w.GetBlock(x, y, z); b != nil {
		return b.Type()
	}
	return block.Air
}

// BlockType реализует BlockTypeSource
func (w *World) BlockType(g vec.Vec3) block.Type {
	return w.GetBlockType(g.X, g.Y, g.Z)
}

// GetChunk возвращает чанк по координате
func (w *World) GetChunk(coord vec.Vec3) (*Chunk, bool) {
	c, ok := w.chunks[coord]
	return c, ok
}

// ChunkCount возвращает число созданных чанков
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// ChunkCoords возвращает координаты чанков в детерминированном порядке
func (w *World) ChunkCoords() []vec.Vec3 {
	out := make([]vec.Vec3, len(w.order))
	copy(out, w.order)
	return out
}

// ForEachChunk обходит чанки в детерминированном порядке
func (w *World) ForEachChunk(fn func(c *Chunk)) {
	for _, coord := range w.order {
		fn(w.chunks[coord])
	}
}

// ForEachBlock обходит все блоки мира, передавая координаты сетки
func (w *World) ForEachBlock(fn func(grid vec.Vec3, b *block.Block)) {
	w.ForEachChunk(func(c *Chunk) {
		origin := c.Origin()
		c.ForEachBlock(func(local vec.Vec3, b *block.Block) {
			fn(origin.Add(local), b)
		})
	})
}

// BlockCount возвращает число непустых клеток мира
func (w *World) BlockCount() int {
	n := 0
	for _, c := range w.chunks {
		n += c.BlockCount()
	}
	return n
}

// SolidBoxes реализует physics.BlockQuery: дописывает боксы твёрдых блоков,
// строго пересекающих region. Клетки вне мира пропускаются.
func (w *World) SolidBoxes(region physics.AABB, dst []physics.AABB) []physics.AABB {
	l := w.opts.Layout
	lo := l.WorldToGrid(region.Min).Max(vec.Vec3{})
	hi := l.WorldToGrid(region.Max).Min(vec.New(w.bounds.Width-1, w.bounds.Height-1, w.bounds.Depth-1))

	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				b := w.GetBlock(x, y, z)
				if !b.IsSolid() {
					continue
				}
				if box := b.BoundingBox(); box.Intersects(region) {
					dst = append(dst, box)
				}
			}
		}
	}
	return dst
}

// Cleanup освобождает геометрию всех чанков и очищает карту
func (w *World) Cleanup(backend render.Backend) {
	for _, coord := range w.order {
		w.chunks[coord].Cleanup(backend)
	}
	released := len(w.chunks)
	w.chunks = make(map[vec.Vec3]*Chunk)
	w.order = nil
	w.metrics.SetChunksLoaded(0)
	w.logger.Debug("мир очищен, освобождено чанков: %d", released)
}

func (w *World) getOrCreateChunk(coord vec.Vec3) *Chunk {
	if c, ok := w.chunks[coord]; ok {
		return c
	}

	c := NewChunk(coord, w.opts.Layout, w.opts.Policy)
	w.chunks[coord] = c

	i := sort.Search(len(w.order), func(i int) bool { return !w.order[i].Less(coord) })
	w.order = append(w.order, vec.Vec3{})
	copy(w.order[i+1:], w.order[i:])
	w.order[i] = coord

	w.metrics.SetChunksLoaded(len(w.chunks))
	w.logger.Debug("создан чанк (%d,%d,%d)", coord.X, coord.Y, coord.Z)
	return c
}
