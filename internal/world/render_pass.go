package world

import (
	"github.com/annel0/voxel-world/internal/observability"
	"github.com/annel0/voxel-world/internal/render"
	"github.com/annel0/voxel-world/internal/vec"
)

// Culler решает, попадает ли бокс (минимальный угол и размеры) в поле зрения
type Culler interface {
	IsBoxInFrustum(x, y, z, width, height, depth float32) bool
}

// RenderStats - итог одного прохода отрисовки
type RenderStats struct {
	Considered      int
	DistanceCulled  int
	FrustumCulled   int
	FullRebuilds    int
	PartialRebuilds int
	CellsExamined   int
	Drawn           int
	QuadsDrawn      int
}

// Rebuilt возвращает общее число перестроенных чанков
func (s RenderStats) Rebuilt() int {
	return s.FullRebuilds + s.PartialRebuilds
}

// Render отсекает чанки по дальности прорисовки от чанка наблюдателя,
// затем по пирамиде видимости, перестраивает грязные и рисует остальные.
// culler == nil отключает отсечение по пирамиде.
func (w *World) Render(viewer vec.Vec3, culler Culler, backend render.Backend) RenderStats {
	var stats RenderStats
	dist := w.opts.RenderDistance

	for _, coord := range w.order {
		chunk := w.chunks[coord]
		stats.Considered++

		if dist > 0 && coord.ChebyshevDistance(viewer) > dist {
			stats.DistanceCulled++
			continue
		}

		if culler != nil {
			b := chunk.Bounds()
			size := b.Size()
			if !culler.IsBoxInFrustum(
				float32(b.Min[0]), float32(b.Min[1]), float32(b.Min[2]),
				float32(size[0]), float32(size[1]), float32(size[2]),
			) {
				stats.FrustumCulled++
				continue
			}
		}

		res := chunk.Render(w, backend, w.opts.Registry)
		switch res.Mode {
		case RebuildFull:
			stats.FullRebuilds++
		case RebuildIncremental:
			stats.PartialRebuilds++
		}
		if res.Mode != RebuildNone {
			stats.CellsExamined += res.Examined
			w.metrics.ObserveRebuild(string(res.Mode), res.Quads)
			w.logger.Trace("чанк (%d,%d,%d) перестроен (%s): клеток %d, граней %d",
				coord.X, coord.Y, coord.Z, res.Mode, res.Examined, res.Quads)
		}
		if res.Drawn {
			stats.Drawn++
			stats.QuadsDrawn += res.Quads
		}
	}

	w.metrics.ObserveCulled(observability.CullDistance, stats.DistanceCulled)
	w.metrics.ObserveCulled(observability.CullFrustum, stats.FrustumCulled)
	w.metrics.ObserveDrawn(stats.Drawn)
	return stats
}
