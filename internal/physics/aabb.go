package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB - ограничивающий параллелепипед, выровненный по осям.
// Инвариант: Min <= Max покомпонентно. Значимый тип, копирование дешёвое.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB создаёт бокс по двум углам, упорядочивая компоненты
func NewAABB(a, b mgl64.Vec3) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// FromCenter создаёт бокс по центру и полным размерам
func FromCenter(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects возвращает true, если интервалы пересекаются строго по всем трём осям.
// Касающиеся боксы (Max == other.Min) не пересекаются.
func (b AABB) Intersects(other AABB) bool {
	return b.Max[0] > other.Min[0] && b.Min[0] < other.Max[0] &&
		b.Max[1] > other.Min[1] && b.Min[1] < other.Max[1] &&
		b.Max[2] > other.Min[2] && b.Min[2] < other.Max[2]
}

// IntersectsHorizontally проверяет пересечение только по X и Z
func (b AABB) IntersectsHorizontally(other AABB) bool {
	return b.Max[0] > other.Min[0] && b.Min[0] < other.Max[0] &&
		b.Max[2] > other.Min[2] && b.Min[2] < other.Max[2]
}

// IsOnTopOf - предикат опоры: горизонтальное перекрытие и низ этого бокса
// находится не дальше threshold от верха other.
func (b AABB) IsOnTopOf(other AABB, threshold float64) bool {
	return b.IntersectsHorizontally(other) && math.Abs(b.Min[1]-other.Max[1]) <= threshold
}

// Translated возвращает сдвинутую копию, исходный бокс не меняется
func (b AABB) Translated(dx, dy, dz float64) AABB {
	d := mgl64.Vec3{dx, dy, dz}
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Translate сдвигает бокс на месте
func (b *AABB) Translate(dx, dy, dz float64) {
	*b = b.Translated(dx, dy, dz)
}

// PenetrationDepth возвращает глубину перекрытия по каждой оси.
// Положительные значения означают перекрытие.
func (b AABB) PenetrationDepth(other AABB) mgl64.Vec3 {
	var depth mgl64.Vec3
	for i := 0; i < 3; i++ {
		depth[i] = math.Min(b.Max[i]-other.Min[i], other.Max[i]-b.Min[i])
	}
	return depth
}

// Expanded расширяет бокс на margin во все стороны
func (b AABB) Expanded(margin mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Sub(margin), Max: b.Max.Add(margin)}
}

// Union возвращает наименьший бокс, содержащий оба
func (b AABB) Union(other AABB) AABB {
	return NewAABB(
		mgl64.Vec3{math.Min(b.Min[0], other.Min[0]), math.Min(b.Min[1], other.Min[1]), math.Min(b.Min[2], other.Min[2])},
		mgl64.Vec3{math.Max(b.Max[0], other.Max[0]), math.Max(b.Max[1], other.Max[1]), math.Max(b.Max[2], other.Max[2])},
	)
}

func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}
