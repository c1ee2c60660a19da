package block

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-world/internal/physics"
)

// Block - неизменяемая запись клетки: мировая позиция, тип и бокс.
// Бокс вычисляется один раз при создании. Для смены типа создаётся новый блок.
type Block struct {
	position mgl64.Vec3
	typ      Type
	box      physics.AABB
}

// New создаёт блок, занимающий [pos, pos+size] по каждой оси
func New(pos mgl64.Vec3, t Type, size float64) *Block {
	return &Block{
		position: pos,
		typ:      t,
		box: physics.AABB{
			Min: pos,
			Max: pos.Add(mgl64.Vec3{size, size, size}),
		},
	}
}

// Position возвращает мировую позицию минимального угла блока
func (b *Block) Position() mgl64.Vec3 {
	return b.position
}

func (b *Block) Type() Type {
	return b.typ
}

func (b *Block) BoundingBox() physics.AABB {
	return b.box
}

// IsSolid - nil и воздух считаются пустотой
func (b *Block) IsSolid() bool {
	return b != nil && b.typ.IsSolid()
}
