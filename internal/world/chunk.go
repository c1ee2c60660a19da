package world

import (
	"fmt"
	"strings"

	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/render"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// dirtyRadius - радиус окрестности, помечаемой вокруг изменённой клетки
const dirtyRadius = 1

// BlockTypeSource отвечает на запросы типа блока по координатам сетки,
// в том числе за пределами чанка. Отсутствующий чанк и клетка вне мира - воздух.
type BlockTypeSource interface {
	BlockType(grid vec.Vec3) block.Type
}

// RebuildPolicy определяет, как перестраивается грязный чанк
type RebuildPolicy uint8

const (
	// PolicyIncremental пересчитывает только грязную область
	PolicyIncremental RebuildPolicy = iota
	// PolicyFull всегда пересчитывает весь чанк
	PolicyFull
)

func (p RebuildPolicy) String() string {
	if p == PolicyFull {
		return "full"
	}
	return "incremental"
}

// ParsePolicy разбирает политику из конфигурации
func ParsePolicy(s string) (RebuildPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "incremental":
		return PolicyIncremental, nil
	case "full":
		return PolicyFull, nil
	default:
		return PolicyIncremental, fmt.Errorf("неизвестная политика перестройки %q", s)
	}
}

// RebuildMode - какая перестройка выполнена
type RebuildMode string

const (
	RebuildNone        RebuildMode = ""
	RebuildFull        RebuildMode = "full"
	RebuildIncremental RebuildMode = "incremental"
)

// ChunkStats - счётчики чанка
type ChunkStats struct {
	FullRebuilds    int
	PartialRebuilds int
	Renders         int
	Draws           int
	LastExamined    int // клеток пересчитано при последней перестройке
}

// RenderResult - итог одного вызова Chunk.Render
type RenderResult struct {
	Mode     RebuildMode
	Examined int
	Quads    int
	Drawn    bool
}

// Chunk представляет кубический участок мира размером ChunkSize³ блоков
type Chunk struct {
	coord  vec.Vec3
	layout Layout
	policy RebuildPolicy

	cells      []*block.Block
	faces      []vec.FaceMask
	blockCount int

	dirty      bool
	needFull   bool
	dirtyCells map[vec.Vec3]struct{}
	dirtyMin   vec.Vec3
	dirtyMax   vec.Vec3

	geometry  render.GeometryHandle
	quadCount int
	stats     ChunkStats

	ChangeCounter int // Счетчик изменений
}

// NewChunk создаёт новый пустой чанк. Новый чанк сразу грязный.
func NewChunk(coord vec.Vec3, layout Layout, policy RebuildPolicy) *Chunk {
	return &Chunk{
		coord:      coord,
		layout:     layout,
		policy:     policy,
		cells:      make([]*block.Block, layout.Volume()),
		faces:      make([]vec.FaceMask, layout.Volume()),
		dirty:      true,
		needFull:   true,
		dirtyCells: make(map[vec.Vec3]struct{}),
	}
}

// Coord возвращает координаты чанка
func (c *Chunk) Coord() vec.Vec3 {
	return c.coord
}

// Origin возвращает клетку сетки в минимальном углу чанка
func (c *Chunk) Origin() vec.Vec3 {
	return c.layout.ChunkOrigin(c.coord)
}

// Bounds возвращает мировой бокс чанка
func (c *Chunk) Bounds() physics.AABB {
	return c.layout.ChunkBounds(c.coord)
}

func (c *Chunk) index(local vec.Vec3) int {
	n := c.layout.ChunkSize
	return local.X + n*(local.Y+n*local.Z)
}

// GetBlock возвращает блок по локальным координатам или nil
func (c *Chunk) GetBlock(local vec.Vec3) *block.Block {
	if !c.layout.InChunk(local) {
		return nil
	}
	return c.cells[c.index(local)]
}

// BlockTypeAt возвращает тип блока по локальным координатам
func (c *Chunk) BlockTypeAt(local vec.Vec3) block.Type {
	if b := c.GetBlock(local); b != nil {
		return b.Type()
	}
	return block.Air
}

// SetBlock записывает блок по локальным координатам. Воздух освобождает клетку.
// Возвращает false, если координаты вне чанка.
func (c *Chunk) SetBlock(local vec.Vec3, t block.Type) bool {
	if !c.layout.InChunk(local) {
		return false
	}

	idx := c.index(local)
	if c.cells[idx] != nil {
		c.blockCount--
	}

	if t == block.Air {
		c.cells[idx] = nil
	} else {
		pos := c.layout.GridToWorld(c.Origin().Add(local))
		c.cells[idx] = block.New(pos, t, c.layout.BlockSize)
		c.blockCount++
	}

	c.ChangeCounter++
	c.MarkBlockDirty(local)
	return true
}

// MarkBlockDirty помечает клетку и её окрестность 3×3×3 для перестройки.
// Обход идёт по очереди с множеством посещённых и ограничен радиусом dirtyRadius.
// Клетки за пределами чанка пропускаются: соседние чанки помечает мир.
func (c *Chunk) MarkBlockDirty(local vec.Vec3) {
	c.dirty = true

	type item struct {
		pos   vec.Vec3
		depth int
	}

	visited := map[vec.Vec3]struct{}{local: {}}
	queue := []item{{pos: local}}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		if c.layout.InChunk(it.pos) {
			c.addDirtyCell(it.pos)
		}
		if it.depth >= dirtyRadius {
			continue
		}

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					n := it.pos.Add(vec.New(dx, dy, dz))
					if _, seen := visited[n]; seen {
						continue
					}
					visited[n] = struct{}{}
					queue = append(queue, item{pos: n, depth: it.depth + 1})
				}
			}
		}
	}
}

func (c *Chunk) addDirtyCell(p vec.Vec3) {
	if len(c.dirtyCells) == 0 {
		c.dirtyMin, c.dirtyMax = p, p
	} else {
		c.dirtyMin = c.dirtyMin.Min(p)
		c.dirtyMax = c.dirtyMax.Max(p)
	}
	c.dirtyCells[p] = struct{}{}
}

// MarkDirty требует полной перестройки при следующей отрисовке
func (c *Chunk) MarkDirty() {
	c.dirty = true
	c.needFull = true
}

// IsDirty сообщает, устарела ли геометрия
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// DirtyCellCount возвращает размер множества грязных клеток
func (c *Chunk) DirtyCellCount() int {
	return len(c.dirtyCells)
}

// DirtyRegion возвращает ограничивающую область грязных клеток
func (c *Chunk) DirtyRegion() (lo, hi vec.Vec3, ok bool) {
	if len(c.dirtyCells) == 0 {
		return vec.Vec3{}, vec.Vec3{}, false
	}
	return c.dirtyMin, c.dirtyMax, true
}

// Geometry возвращает текущий дескриптор геометрии
func (c *Chunk) Geometry() render.GeometryHandle {
	return c.geometry
}

// QuadCount возвращает число граней в текущей геометрии
func (c *Chunk) QuadCount() int {
	return c.quadCount
}

// BlockCount возвращает число непустых клеток
func (c *Chunk) BlockCount() int {
	return c.blockCount
}

func (c *Chunk) Stats() ChunkStats {
	return c.stats
}

// VisibleFaces возвращает маску видимых граней клетки по данным последней перестройки
func (c *Chunk) VisibleFaces(local vec.Vec3) vec.FaceMask {
	if !c.layout.InChunk(local) {
		return 0
	}
	return c.faces[c.index(local)]
}

// ForEachBlock обходит непустые клетки в порядке x, y, z
func (c *Chunk) ForEachBlock(fn func(local vec.Vec3, b *block.Block)) {
	n := c.layout.ChunkSize
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				local := vec.New(x, y, z)
				if b := c.cells[c.index(local)]; b != nil {
					fn(local, b)
				}
			}
		}
	}
}

// Render перестраивает геометрию, если чанк грязный, и рисует её.
// На чистом чанке повторно выдаёт ранее собранный дескриптор без пересчёта.
func (c *Chunk) Render(src BlockTypeSource, backend render.Backend, reg *block.Registry) RenderResult {
	var res RenderResult
	c.stats.Renders++

	if c.dirty {
		res.Mode, res.Examined = c.rebuild(src, backend, reg)
	}

	res.Quads = c.quadCount
	if c.geometry != render.NoGeometry && c.quadCount > 0 {
		backend.DrawGeometry(c.geometry)
		c.stats.Draws++
		res.Drawn = true
	}
	return res
}

// Rebuild принудительно перестраивает грязный чанк без отрисовки
func (c *Chunk) Rebuild(src BlockTypeSource, backend render.Backend, reg *block.Registry) RebuildMode {
	if !c.dirty {
		return RebuildNone
	}
	mode, _ := c.rebuild(src, backend, reg)
	return mode
}

func (c *Chunk) rebuild(src BlockTypeSource, backend render.Backend, reg *block.Registry) (RebuildMode, int) {
	n := c.layout.ChunkSize
	mode := RebuildIncremental
	lo, hi := vec.Vec3{}, vec.New(n-1, n-1, n-1)

	if c.needFull || c.policy == PolicyFull || c.geometry == render.NoGeometry || len(c.dirtyCells) == 0 {
		mode = RebuildFull
	} else {
		one := vec.New(1, 1, 1)
		lo = c.dirtyMin.Sub(one).Max(lo)
		hi = c.dirtyMax.Add(one).Min(hi)
	}

	examined := 0
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				local := vec.New(x, y, z)
				c.faces[c.index(local)] = c.computeFaces(src, local)
				examined++
			}
		}
	}

	c.quadCount = c.emit(backend, reg)

	c.dirty = false
	c.needFull = false
	clear(c.dirtyCells)
	c.dirtyMin, c.dirtyMax = vec.Vec3{}, vec.Vec3{}

	c.stats.LastExamined = examined
	if mode == RebuildFull {
		c.stats.FullRebuilds++
	} else {
		c.stats.PartialRebuilds++
	}
	return mode, examined
}

// computeFaces возвращает маску граней клетки, граничащих с прозрачными соседями
func (c *Chunk) computeFaces(src BlockTypeSource, local vec.Vec3) vec.FaceMask {
	b := c.cells[c.index(local)]
	if b == nil || b.Type().IsTransparent() {
		return 0
	}

	var mask vec.FaceMask
	for _, f := range vec.Faces() {
		if c.neighborType(src, local.Neighbor(f)).IsTransparent() {
			mask = mask.With(f)
		}
	}
	return mask
}

func (c *Chunk) neighborType(src BlockTypeSource, local vec.Vec3) block.Type {
	if c.layout.InChunk(local) {
		return c.BlockTypeAt(local)
	}
	if src == nil {
		return block.Air
	}
	return src.BlockType(c.Origin().Add(local))
}

// emit передаёт бэкенду все видимые грани, сохраняя дескриптор
func (c *Chunk) emit(backend render.Backend, reg *block.Registry) int {
	backend.BeginChunkGeometry(c.geometry)

	quads := 0
	c.ForEachBlock(func(local vec.Vec3, b *block.Block) {
		mask := c.faces[c.index(local)]
		if mask == 0 {
			return
		}
		mat := reg.Material(b.Type())
		for _, f := range vec.Faces() {
			if mask.Has(f) {
				backend.EmitQuad(faceQuad(b, f, c.layout.BlockSize, mat))
				quads++
			}
		}
	})

	c.geometry = backend.EndChunkGeometry()
	return quads
}

// Cleanup освобождает геометрию. Повторный вызов ничего не делает.
func (c *Chunk) Cleanup(backend render.Backend) {
	if c.geometry != render.NoGeometry {
		backend.ReleaseGeometry(c.geometry)
		c.geometry = render.NoGeometry
	}
	c.quadCount = 0
	c.MarkDirty()
}
