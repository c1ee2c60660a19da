// Package entity описывает актора, которым управляет игрок, и автомат его
// режимов: физическое тело или свободный наблюдатель.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/annel0/voxel-world/internal/physics"
)

// Actor - тело с коллайдером и точка обзора камеры
type Actor struct {
	ID           uuid.UUID
	Body         *physics.Body
	Viewer       mgl64.Vec3 // положение глаза камеры
	CurrentState State

	resolver *physics.Resolver
	lastStep physics.StepResult
}

// NewActor создаёт актора с центром тела в spawn в физическом режиме
func NewActor(spawn, size mgl64.Vec3, resolver *physics.Resolver) *Actor {
	if resolver == nil {
		resolver = physics.NewResolver(physics.DefaultTuning())
	}
	a := &Actor{
		ID:       uuid.New(),
		Body:     physics.NewBody(spawn, size),
		resolver: resolver,
	}
	a.SetState(&PhysicsState{})
	return a
}

// Update выполняет один тик текущего состояния и переключает его при необходимости
func (a *Actor) Update(ctx *TickContext) {
	if a.CurrentState == nil {
		return
	}
	newState := a.CurrentState.Update(a, ctx)
	if newState != a.CurrentState {
		a.CurrentState.Exit(a)
		a.CurrentState = newState
		a.CurrentState.Enter(a)
	}
}

// SetState устанавливает новое состояние актора
func (a *Actor) SetState(state State) {
	if a.CurrentState != nil {
		a.CurrentState.Exit(a)
	}

	a.CurrentState = state

	if a.CurrentState != nil {
		a.CurrentState.Enter(a)
	}
}

// Mode возвращает текущий режим
func (a *Actor) Mode() Mode {
	if a.CurrentState == nil {
		return ModePhysics
	}
	return a.CurrentState.Mode()
}

// LastStep возвращает результат последнего физического шага.
// В режиме наблюдателя он пуст.
func (a *Actor) LastStep() physics.StepResult {
	return a.lastStep
}

// Resolver возвращает решатель столкновений актора
func (a *Actor) Resolver() *physics.Resolver {
	return a.resolver
}

// Respawn переносит тело в точку и сбрасывает скорость
func (a *Actor) Respawn(pos mgl64.Vec3) {
	a.Body.Position = pos
	a.Body.Velocity = mgl64.Vec3{}
	a.Body.Grounded = false
	a.attachViewer()
}

func (a *Actor) attachViewer() {
	a.Viewer = a.Body.EyePosition(a.resolver.Tuning().EyeHeightFraction)
}
