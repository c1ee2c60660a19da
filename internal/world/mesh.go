package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-world/internal/render"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// faceCorners - углы каждой грани единичного куба против часовой стрелки,
// если смотреть снаружи
var faceCorners = [vec.FaceCount][4]mgl32.Vec3{
	vec.FaceWest:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	vec.FaceEast:   {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	vec.FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	vec.FaceTop:    {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	vec.FaceNorth:  {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	vec.FaceSouth:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
}

func faceNormal(f vec.Face) mgl32.Vec3 {
	o := f.Offset()
	return mgl32.Vec3{float32(o.X), float32(o.Y), float32(o.Z)}
}

// faceQuad строит грань блока в мировых координатах
func faceQuad(b *block.Block, f vec.Face, blockSize float64, mat block.Material) render.Quad {
	p := b.Position()
	origin := mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])}
	size := float32(blockSize)

	q := render.Quad{
		UVs:     render.DefaultUVs,
		Normal:  faceNormal(f),
		Texture: mat.Texture,
		Color:   mat.Color,
	}
	for i, corner := range faceCorners[f] {
		q.Positions[i] = origin.Add(corner.Mul(size))
	}
	return q
}
