// Package terrain заполняет ограниченный мир блоками при старте.
package terrain

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Target - мир, который заполняется генератором
type Target interface {
	SetBlock(x, y, z int, t block.Type) bool
	Bounds() world.Bounds
}

// Stats - итог заполнения
type Stats struct {
	Placed   int // успешные записи
	Rejected int // записи за границами мира
	Trees    int
}

func (s *Stats) record(ok bool) {
	if ok {
		s.Placed++
	} else {
		s.Rejected++
	}
}

// Generator заполняет мир
type Generator interface {
	Populate(t Target) Stats
}

// Kind - вид генератора
type Kind string

const (
	KindNone   Kind = "none"
	KindFlat   Kind = "flat"
	KindPerlin Kind = "perlin"
)

// ParseKind разбирает вид генератора; пустая строка означает none
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindNone, nil
	case KindNone, KindFlat, KindPerlin:
		return k, nil
	default:
		return "", fmt.Errorf("неизвестный вид рельефа %q", s)
	}
}

// None ничего не ставит
type None struct{}

func (None) Populate(Target) Stats { return Stats{} }

// === Плоский мир ===

// Flat - слой одного типа на высоте Level по всей площади мира плюс
// отдельные блоки и деревья.
type Flat struct {
	Level  int
	Layer  block.Type
	Stones []vec.Vec3
	Trees  []vec.Vec3 // основание ствола
	Tree   TreeShape
}

// DefaultFlat воспроизводит стартовый мир: земля на y=0, три камня и четыре дерева
func DefaultFlat() Flat {
	return Flat{
		Level: 0,
		Layer: block.Dirt,
		Stones: []vec.Vec3{
			vec.New(3, 5, 3),
			vec.New(4, 4, 3),
			vec.New(3, 3, 3),
		},
		Trees: []vec.Vec3{
			vec.New(5, 1, 5),
			vec.New(10, 1, 10),
			vec.New(3, 1, 12),
			vec.New(22, 1, 12),
		},
		Tree: DefaultTreeShape(),
	}
}

func (f Flat) Populate(t Target) Stats {
	var st Stats
	b := t.Bounds()
	for x := 0; x < b.Width; x++ {
		for z := 0; z < b.Depth; z++ {
			st.record(t.SetBlock(x, f.Level, z, f.Layer))
		}
	}
	for _, s := range f.Stones {
		st.record(t.SetBlock(s.X, s.Y, s.Z, block.Stone))
	}
	for _, base := range f.Trees {
		f.Tree.Place(t, base, &st)
	}
	return st
}

// === Рельеф по шуму Перлина ===

// Perlin - карта высот: камень, над ним земля, сверху трава
type Perlin struct {
	Seed        int64
	BaseHeight  int
	Amplitude   float64
	Scale       float64
	DirtDepth   int
	TreeDensity float64 // вероятность дерева на клетке травы
	Tree        TreeShape
}

// DefaultPerlin возвращает параметры рельефа по умолчанию
func DefaultPerlin(seed int64) Perlin {
	return Perlin{
		Seed:        seed,
		BaseHeight:  4,
		Amplitude:   3,
		Scale:       0.05,
		DirtDepth:   2,
		TreeDensity: 0.01,
		Tree:        DefaultTreeShape(),
	}
}

// Height возвращает высоту поверхности в колонке (x, z), зажатую в [0, maxY]
func (p Perlin) Height(n *Noise, x, z, maxY int) int {
	v := n.At2D(float64(x)*p.Scale, float64(z)*p.Scale)
	h := p.BaseHeight + int(math.Round((v*2-1)*p.Amplitude))
	return max(0, min(h, maxY))
}

func (p Perlin) Populate(t Target) Stats {
	var st Stats
	b := t.Bounds()
	if b.Width <= 0 || b.Height <= 0 || b.Depth <= 0 {
		return st
	}

	noise := NewNoise(p.Seed)
	rng := rand.New(rand.NewSource(p.Seed))

	for x := 0; x < b.Width; x++ {
		for z := 0; z < b.Depth; z++ {
			h := p.Height(noise, x, z, b.Height-1)
			for y := 0; y <= h; y++ {
				typ := block.Stone
				switch {
				case y == h:
					typ = block.Grass
				case y >= h-p.DirtDepth:
					typ = block.Dirt
				}
				st.record(t.SetBlock(x, y, z, typ))
			}

			if p.TreeDensity > 0 && rng.Float64() < p.TreeDensity {
				p.Tree.Place(t, vec.New(x, h+1, z), &st)
			}
		}
	}
	return st
}

// === Деревья ===

// TreeShape - ствол из дерева и крона из листвы вокруг его верхушки
type TreeShape struct {
	TrunkHeight  int
	CanopyRadius int
	CanopyHeight int
}

// DefaultTreeShape возвращает форму дерева по умолчанию
func DefaultTreeShape() TreeShape {
	return TreeShape{TrunkHeight: 4, CanopyRadius: 1, CanopyHeight: 2}
}

// Place ставит дерево с основанием ствола в base. Клетки вне мира пропускаются.
func (s TreeShape) Place(t Target, base vec.Vec3, st *Stats) {
	if s.TrunkHeight <= 0 {
		return
	}
	placed := st.Placed
	for i := 0; i < s.TrunkHeight; i++ {
		st.record(t.SetBlock(base.X, base.Y+i, base.Z, block.Wood))
	}

	top := base.Y + s.TrunkHeight - 1
	r := s.CanopyRadius
	for dy := 0; dy < s.CanopyHeight; dy++ {
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if dx == 0 && dz == 0 && dy == 0 {
					continue // ствол
				}
				st.record(t.SetBlock(base.X+dx, top+dy, base.Z+dz, block.Leaves))
			}
		}
	}
	st.record(t.SetBlock(base.X, top+s.CanopyHeight, base.Z, block.Leaves))
	if st.Placed > placed {
		st.Trees++
	}
}
