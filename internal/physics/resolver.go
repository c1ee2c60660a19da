package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Tuning - параметры физики актора
type Tuning struct {
	Gravity           float64 // ускорение по Y, блоков/с²
	JumpImpulse       float64 // вертикальная скорость в момент прыжка
	MaxVelocity       float64 // ограничение модуля вертикальной скорости
	WalkSpeed         float64 // блоков/с
	SprintSpeed       float64 // блоков/с
	SpectatorSpeed    float64 // блоков/с в режиме наблюдателя
	GroundThreshold   float64 // допуск предиката опоры
	EyeHeightFraction float64 // доля высоты тела для глаз
}

// DefaultTuning возвращает параметры по умолчанию
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:           -20,
		JumpImpulse:       10,
		MaxVelocity:       50,
		WalkSpeed:         6,
		SprintSpeed:       10,
		SpectatorSpeed:    12,
		GroundThreshold:   0.1,
		EyeHeightFraction: 0.75,
	}
}

// Intent - намерение движения на один тик
type Intent struct {
	Forward float64 // +1 вперёд, -1 назад
	Strafe  float64 // +1 вправо, -1 влево
	Jump    bool    // прыжок запрошен в этом тике
	Sprint  bool
	Yaw     float64 // рыскание наблюдателя в градусах
}

// AxisResult - итог покомпонентного разрешения смещения
type AxisResult struct {
	BlockedX bool
	BlockedZ bool
	BlockedY bool
	Landed   bool // тело опустилось на блок в этом тике
	Tests    int  // число проверок пересечения
}

// StepResult - итог тика физики
type StepResult struct {
	AxisResult
	Jumped       bool
	Displacement mgl64.Vec3 // желаемое смещение до разрешения
}

// Resolver двигает тело сквозь ограниченную окрестность блоков
type Resolver struct {
	tuning  Tuning
	scratch []AABB
}

// NewResolver создаёт резолвер с указанными параметрами
func NewResolver(tuning Tuning) *Resolver {
	return &Resolver{tuning: tuning}
}

// Tuning возвращает текущие параметры
func (r *Resolver) Tuning() Tuning {
	return r.tuning
}

// Step выполняет один тик: опора, прыжок, гравитация, горизонтальное намерение,
// затем раздельное разрешение по осям X, Z, Y.
func (r *Resolver) Step(body *Body, intent Intent, query BlockQuery, dt float64) StepResult {
	var res StepResult
	t := r.tuning

	// 1. Опора
	wasGrounded := body.Grounded
	box := body.Box()
	r.scratch = query.SolidBoxes(box.Expanded(mgl64.Vec3{0, t.GroundThreshold, 0}), r.scratch[:0])
	res.Tests += len(r.scratch)
	support, grounded := HighestSupport(box, r.scratch, t.GroundThreshold)
	body.Grounded = grounded
	if grounded {
		// Дотягиваем тело до опоры, иначе оно зависает в пределах допуска
		body.Position[1] = support + body.HalfHeight()
		body.Velocity[1] = 0
	}

	// 2. Прыжок
	if intent.Jump && body.Grounded {
		body.Velocity[1] = t.JumpImpulse
		body.Grounded = false
		res.Jumped = true
	}

	// 3. Гравитация
	if !body.Grounded {
		body.Velocity[1] += t.Gravity * dt
		body.Velocity[1] = mgl64.Clamp(body.Velocity[1], -t.MaxVelocity, t.MaxVelocity)
	}

	// 4. Горизонтальное намерение
	speed := t.WalkSpeed
	if intent.Sprint && intent.Forward > 0 {
		speed = t.SprintSpeed
	}
	dx, dz := HorizontalDisplacement(intent.Yaw, intent.Forward, intent.Strafe, speed*dt)
	disp := mgl64.Vec3{dx, body.Velocity[1] * dt, dz}
	res.Displacement = disp

	// 5. Раздельное разрешение по осям
	box = body.Box()
	region := box.Union(box.Translated(disp[0], disp[1], disp[2]))
	r.scratch = query.SolidBoxes(region, r.scratch[:0])
	axis := Resolve(body, disp, r.scratch)
	axis.Tests += res.Tests
	res.AxisResult = axis
	if grounded && !wasGrounded {
		// Касание опоры в пределах допуска тоже приземление
		res.Landed = true
	}

	return res
}

// Resolve применяет смещение к телу по одной оси за раз в порядке X, Z, Y.
// Ось либо проходит целиком, либо отклоняется целиком. Каждая следующая ось
// проверяется от уже сдвинутого бокса.
func Resolve(body *Body, disp mgl64.Vec3, blocks []AABB) AxisResult {
	var res AxisResult
	var hit bool
	var n int

	if disp[0] != 0 {
		hit, n = CollidesAny(body.Box().Translated(disp[0], 0, 0), blocks)
		res.Tests += n
		if hit {
			res.BlockedX = true
		} else {
			body.Position[0] += disp[0]
		}
	}

	if disp[2] != 0 {
		hit, n = CollidesAny(body.Box().Translated(0, 0, disp[2]), blocks)
		res.Tests += n
		if hit {
			res.BlockedZ = true
		} else {
			body.Position[2] += disp[2]
		}
	}

	moved := body.Box().Translated(0, disp[1], 0)
	hit, n = CollidesAny(moved, blocks)
	res.Tests += n
	if !hit {
		body.Position[1] += disp[1]
		return res
	}

	res.BlockedY = true
	body.Velocity[1] = 0
	if disp[1] < 0 {
		top, _ := HighestCollidingTop(moved, blocks)
		body.Position[1] = top + body.HalfHeight()
		body.Grounded = true
		res.Landed = true
	}
	return res
}
