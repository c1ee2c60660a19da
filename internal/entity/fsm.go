package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-world/internal/input"
	"github.com/annel0/voxel-world/internal/physics"
)

// Mode - режим управления актором
type Mode uint8

const (
	ModePhysics Mode = iota
	ModeSpectator
)

func (m Mode) String() string {
	if m == ModeSpectator {
		return "spectator"
	}
	return "physics"
}

// TickContext - всё, что состояние читает за один тик
type TickContext struct {
	Input *input.State
	Yaw   float64 // градусы, 0 смотрит в -Z
	Query physics.BlockQuery
	Dt    float64
}

// State представляет состояние конечного автомата управления актором
type State interface {
	Enter(actor *Actor)
	Update(actor *Actor, ctx *TickContext) State
	Exit(actor *Actor)
	Mode() Mode
}

// === Конкретные состояния ===

// PhysicsState - обычное движение тела с гравитацией и столкновениями
type PhysicsState struct{}

func (s *PhysicsState) Mode() Mode { return ModePhysics }

func (s *PhysicsState) Enter(actor *Actor) {
	actor.attachViewer()
}

func (s *PhysicsState) Update(actor *Actor, ctx *TickContext) State {
	if ctx.Input != nil && ctx.Input.JustActivated(input.ToggleNoClip) {
		return &SpectatorState{}
	}

	intent := physics.Intent{Yaw: ctx.Yaw}
	if ctx.Input != nil {
		intent.Forward, intent.Strafe = ctx.Input.Axes()
		intent.Jump = ctx.Input.JustActivated(input.Jump)
		intent.Sprint = ctx.Input.IsActive(input.Sprint)
	}

	actor.lastStep = actor.resolver.Step(actor.Body, intent, ctx.Query, ctx.Dt)
	actor.attachViewer()
	return s
}

func (s *PhysicsState) Exit(actor *Actor) {
	// Ничего не делаем при выходе
}

// SpectatorState - свободный полёт наблюдателя сквозь блоки.
// Тело актора остаётся там, где было при входе в режим.
type SpectatorState struct{}

func (s *SpectatorState) Mode() Mode { return ModeSpectator }

func (s *SpectatorState) Enter(actor *Actor) {
	actor.lastStep = physics.StepResult{}
}

func (s *SpectatorState) Update(actor *Actor, ctx *TickContext) State {
	if ctx.Input == nil {
		return s
	}
	if ctx.Input.JustActivated(input.ToggleNoClip) {
		return &PhysicsState{}
	}

	dist := actor.resolver.Tuning().SpectatorSpeed * ctx.Dt
	fwd, strafe := ctx.Input.Axes()
	dx, dz := physics.HorizontalDisplacement(ctx.Yaw, fwd, strafe, dist)
	dy := ctx.Input.Vertical() * dist

	actor.Viewer = actor.Viewer.Add(mgl64.Vec3{dx, dy, dz})
	return s
}

func (s *SpectatorState) Exit(actor *Actor) {
	// Камера возвращается к глазам тела в PhysicsState.Enter
}
