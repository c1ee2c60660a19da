package game

import (
	"time"

	"github.com/annel0/voxel-world/internal/world"
)

// Snapshot - копия состояния симуляции для отладочного сервера.
// Не содержит ссылок на внутренние структуры и безопасна для передачи между горутинами.
type Snapshot struct {
	RunID     string    `json:"run_id"`
	ActorID   string    `json:"actor_id"`
	StartedAt time.Time `json:"started_at"`
	Tick      uint64    `json:"tick"`

	Mode     string     `json:"mode"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Viewer   [3]float64 `json:"viewer"`
	Grounded bool       `json:"grounded"`
	Landings int        `json:"landings"`
	Pitch    float32    `json:"pitch"`
	Yaw      float32    `json:"yaw"`

	Chunks        int `json:"chunks"`
	Blocks        int `json:"blocks"`
	Writes        int `json:"writes"`
	RejectedEdits int `json:"rejected_writes"`

	Render world.RenderStats `json:"render"`
}

// Snapshot снимает текущее состояние. Вызывается из горутины симуляции.
func (g *Game) Snapshot() Snapshot {
	ws := g.world.Stats()
	body := g.actor.Body
	return Snapshot{
		RunID:         g.runID.String(),
		ActorID:       g.actor.ID.String(),
		StartedAt:     g.startedAt,
		Tick:          g.tick,
		Mode:          g.actor.Mode().String(),
		Position:      body.Position,
		Velocity:      body.Velocity,
		Viewer:        g.actor.Viewer,
		Grounded:      body.Grounded,
		Landings:      g.landings,
		Pitch:         g.camera.Pitch(),
		Yaw:           g.camera.Yaw(),
		Chunks:        g.world.ChunkCount(),
		Blocks:        g.world.BlockCount(),
		Writes:        ws.Writes,
		RejectedEdits: ws.Rejected,
		Render:        g.lastRender,
	}
}
