// Package camera хранит положение и ориентацию наблюдателя и отдаёт матрицы
// проекции и вида вместе с актуальной пирамидой видимости.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-world/internal/frustum"
)

// Ограничения ориентации
const (
	MaxPitch = 89.0
	MinPitch = -89.0
)

// Lens - параметры перспективной проекции
type Lens struct {
	FOV    float32 // вертикальный угол обзора в градусах
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultLens возвращает параметры проекции по умолчанию
func DefaultLens() Lens {
	return Lens{FOV: 60, Aspect: 16.0 / 9.0, Near: 0.1, Far: 10000}
}

// Camera - наблюдатель с углами pitch/yaw в градусах.
// Положительный pitch опускает взгляд, yaw 0 смотрит в -Z, yaw 90 в +X.
type Camera struct {
	position mgl32.Vec3
	pitch    float32
	yaw      float32

	lens        Lens
	sensitivity float32

	projection mgl32.Mat4
	view       mgl32.Mat4
	frustum    frustum.Frustum

	matricesDirty bool
}

// New создаёт камеру в точке pos
func New(pos mgl32.Vec3, lens Lens) *Camera {
	c := &Camera{
		position:    pos,
		lens:        lens,
		sensitivity: 1,
	}
	c.matricesDirty = true
	return c
}

// SetSensitivity задаёт множитель для Look
func (c *Camera) SetSensitivity(s float32) {
	c.sensitivity = s
}

// Rotate меняет ориентацию: pitch уменьшается на dpitch, yaw растёт на dyaw.
// Pitch зажимается в [-89, 89], yaw заворачивается в [0, 360).
func (c *Camera) Rotate(dpitch, dyaw float32) {
	c.pitch = mgl32.Clamp(c.pitch-dpitch, MinPitch, MaxPitch)
	c.yaw = wrapYaw(c.yaw + dyaw)
	c.matricesDirty = true
}

// Look применяет смещение мыши с учётом чувствительности
func (c *Camera) Look(dx, dy float32) {
	c.Rotate(dy*c.sensitivity, dx*c.sensitivity)
}

// SetOrientation задаёт углы напрямую с теми же ограничениями
func (c *Camera) SetOrientation(pitch, yaw float32) {
	c.pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
	c.yaw = wrapYaw(yaw)
	c.matricesDirty = true
}

func wrapYaw(yaw float32) float32 {
	y := float32(math.Mod(float64(yaw), 360))
	if y < 0 {
		y += 360
	}
	return y
}

// SetPosition перемещает глаз камеры
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	if pos == c.position {
		return
	}
	c.position = pos
	c.matricesDirty = true
}

// SetAspect меняет соотношение сторон, например после изменения окна
func (c *Camera) SetAspect(aspect float32) {
	c.lens.Aspect = aspect
	c.matricesDirty = true
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Pitch() float32 { return c.pitch }
func (c *Camera) Yaw() float32 { return c.yaw }
func (c *Camera) Lens() Lens { return c.lens }

// Dirty сообщает, что матрицы устарели и пирамида требует пересчёта
func (c *Camera) Dirty() bool {
	return c.matricesDirty
}

// ProjectionMatrix строит перспективную проекцию
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.lens.FOV), c.lens.Aspect, c.lens.Near, c.lens.Far)
}

// ViewMatrix строит rotX(pitch)·rotY(yaw)·translate(-eye)
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(c.pitch))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(c.yaw))
	t := mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
	return rx.Mul4(ry).Mul4(t)
}

// Matrices возвращает матрицы, сохранённые последним Update
func (c *Camera) Matrices() (projection, view mgl32.Mat4) {
	return c.projection, c.view
}

// Update пересчитывает матрицы и пирамиду, только если камера менялась.
// Возвращает true, если пересчёт был.
func (c *Camera) Update() bool {
	if !c.matricesDirty {
		return false
	}
	c.projection = c.ProjectionMatrix()
	c.view = c.ViewMatrix()
	c.frustum.Update(c.projection, c.view)
	c.matricesDirty = false
	return true
}

// Frustum возвращает пирамиду последнего Update
func (c *Camera) Frustum() *frustum.Frustum {
	return &c.frustum
}

// IsBoxInView проверяет бокс против пирамиды последнего Update
func (c *Camera) IsBoxInView(x, y, z, w, h, d float32) bool {
	return c.frustum.IsBoxInFrustum(x, y, z, w, h, d)
}

// Forward возвращает горизонтальное направление взгляда
func (c *Camera) Forward() mgl32.Vec3 {
	s, co := math.Sincos(float64(mgl32.DegToRad(c.yaw)))
	return mgl32.Vec3{float32(s), 0, float32(-co)}
}
