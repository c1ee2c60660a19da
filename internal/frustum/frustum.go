// Package frustum реализует отсечение по пирамиде видимости камеры.
package frustum

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Индексы плоскостей в порядке извлечения
const (
	Left = iota
	Right
	Bottom
	Top
	Near
	Far
	PlaneCount
)

// degenerateEpsilon - длина нормали, ниже которой плоскость считается вырожденной
const degenerateEpsilon = 1e-6

// Plane - плоскость n·p + d = 0, нормаль направлена внутрь пирамиды
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance возвращает расстояние от точки до плоскости со знаком.
// Для нулевой плоскости всегда 0, то есть точка считается внутри.
func (p Plane) SignedDistance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// IsZero сообщает, что плоскость не была задана
func (p Plane) IsZero() bool {
	return p.Normal == (mgl32.Vec3{}) && p.Distance == 0
}

func normalize(a, b, c, d float32) Plane {
	mag := float32(math.Sqrt(float64(a*a + b*b + c*c)))
	if mag < degenerateEpsilon {
		return Plane{}
	}
	return Plane{Normal: mgl32.Vec3{a / mag, b / mag, c / mag}, Distance: d / mag}
}

// Frustum хранит шесть плоскостей текущего состояния камеры.
// Нулевое значение ничего не отсекает.
type Frustum struct {
	planes [PlaneCount]Plane

	// nearSlack - расстояние от глаза до ближней плоскости. Добавляется к
	// допуску ближней плоскости, чтобы зазор между глазом и near не отсекался.
	nearSlack float32
	eye       mgl32.Vec3
	valid     bool
}

// New создаёт пирамиду по матрицам проекции и вида
func New(proj, view mgl32.Mat4) *Frustum {
	f := &Frustum{}
	f.Update(proj, view)
	return f
}

// Update пересчитывает плоскости по clip = proj·view (mgl32, column-major).
// Строка r матрицы m состоит из m[r], m[4+r], m[8+r], m[12+r].
func (f *Frustum) Update(proj, view mgl32.Mat4) {
	clip := proj.Mul4(view)

	row := func(r int) [4]float32 {
		return [4]float32{clip[r], clip[4+r], clip[8+r], clip[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	plane := func(sign float32, r [4]float32) Plane {
		return normalize(
			r3[0]+sign*r[0],
			r3[1]+sign*r[1],
			r3[2]+sign*r[2],
			r3[3]+sign*r[3],
		)
	}

	f.planes[Left] = plane(1, r0)
	f.planes[Right] = plane(-1, r0)
	f.planes[Bottom] = plane(1, r1)
	f.planes[Top] = plane(-1, r1)
	f.planes[Near] = plane(1, r2)
	f.planes[Far] = plane(-1, r2)

	f.nearSlack = 0
	f.valid = true
	if math.Abs(float64(view.Det())) < degenerateEpsilon {
		f.eye = mgl32.Vec3{}
		return
	}
	f.eye = view.Inv().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if d := f.planes[Near].SignedDistance(f.eye); d < 0 {
		f.nearSlack = -d
	}
}

// Planes возвращает копию плоскостей в порядке Left, Right, Bottom, Top, Near, Far
func (f *Frustum) Planes() [PlaneCount]Plane {
	return f.planes
}

// Plane возвращает плоскость по индексу
func (f *Frustum) Plane(i int) Plane {
	return f.planes[i]
}

// Eye возвращает положение глаза, восстановленное из матрицы вида
func (f *Frustum) Eye() mgl32.Vec3 {
	return f.eye
}

// Valid сообщает, вызывался ли Update
func (f *Frustum) Valid() bool {
	return f.valid
}

// IsBoxInFrustum - консервативная проверка бокса с углом (x, y, z) и размерами
// (w, h, d). Бокс вне пирамиды, если расстояние от его центра до какой-либо
// плоскости меньше -max(w, h, d). Ложные срабатывания "видим" допустимы.
func (f *Frustum) IsBoxInFrustum(x, y, z, w, h, d float32) bool {
	center := mgl32.Vec3{x + w*0.5, y + h*0.5, z + d*0.5}
	radius := max(w, h, d)

	for i, p := range f.planes {
		limit := -radius
		if i == Near {
			limit -= f.nearSlack
		}
		if p.SignedDistance(center) < limit {
			return false
		}
	}
	return true
}

// IsPointInFrustum проверяет точку против всех плоскостей без допуска
func (f *Frustum) IsPointInFrustum(p mgl32.Vec3) bool {
	for _, pl := range f.planes {
		if pl.SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}
