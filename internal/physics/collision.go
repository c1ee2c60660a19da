package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockQuery отдаёт боксы твёрдых блоков в ограниченной области.
// Клетки вне границ мира и пустые клетки в выборку не попадают.
type BlockQuery interface {
	// SolidBoxes дописывает в dst боксы всех твёрдых блоков, пересекающих region
	SolidBoxes(region AABB, dst []AABB) []AABB
}

// Body - физическое тело актора. Position - центр бокса.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Size     mgl64.Vec3
	Grounded bool
}

// NewBody создаёт тело с центром в pos
func NewBody(pos, size mgl64.Vec3) *Body {
	return &Body{Position: pos, Size: size}
}

// Box пересчитывает бокс тела из авторитетной позиции
func (b *Body) Box() AABB {
	return FromCenter(b.Position, b.Size)
}

// HalfHeight возвращает половину высоты тела
func (b *Body) HalfHeight() float64 {
	return b.Size[1] / 2
}

// EyePosition возвращает позицию глаз: фиксированная доля высоты над позицией тела
func (b *Body) EyePosition(eyeHeightFraction float64) mgl64.Vec3 {
	return b.Position.Add(mgl64.Vec3{0, eyeHeightFraction * b.Size[1], 0})
}

// CollidesAny проверяет, пересекает ли бокс хотя бы один из blocks.
// Второе значение - число выполненных проверок пересечения.
func CollidesAny(box AABB, blocks []AABB) (bool, int) {
	for i, other := range blocks {
		if box.Intersects(other) {
			return true, i + 1
		}
	}
	return false, len(blocks)
}

// HighestCollidingTop возвращает наибольшую верхнюю грань среди боксов, пересекающих box
func HighestCollidingTop(box AABB, blocks []AABB) (float64, bool) {
	top := math.Inf(-1)
	found := false
	for _, other := range blocks {
		if box.Intersects(other) && other.Max[1] > top {
			top = other.Max[1]
			found = true
		}
	}
	return top, found
}

// HighestSupport возвращает верх самой высокой опоры, на которой стоит box
func HighestSupport(box AABB, blocks []AABB, threshold float64) (float64, bool) {
	top := math.Inf(-1)
	found := false
	for _, other := range blocks {
		if box.IsOnTopOf(other, threshold) && other.Max[1] > top {
			top = other.Max[1]
			found = true
		}
	}
	return top, found
}

// HorizontalDisplacement переводит намерение движения в смещение по X и Z с учётом рыскания.
// yaw в градусах, forward и strafe в диапазоне [-1, 1], distance - путь за тик.
// Вперёд при yaw = 0 смотрит в -Z.
func HorizontalDisplacement(yaw, forward, strafe, distance float64) (dx, dz float64) {
	if forward == 0 && strafe == 0 {
		return 0, 0
	}

	if l := math.Hypot(forward, strafe); l > 1 {
		forward /= l
		strafe /= l
	}

	rad := mgl64.DegToRad(yaw)
	sin, cos := math.Sincos(rad)

	// forward = (sin, -cos), right = (cos, sin)
	dx = (sin*forward + cos*strafe) * distance
	dz = (-cos*forward + sin*strafe) * distance
	return dx, dz
}
