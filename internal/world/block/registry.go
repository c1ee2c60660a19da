package block

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Material описывает внешний вид типа блока
type Material struct {
	Texture string     // имя текстуры для бэкенда
	Color   mgl32.Vec3 // цвет на случай отсутствия текстуры
}

// Registry хранит материалы всех типов блоков.
// Создаётся один раз при старте и передаётся явно тем, кому нужен.
type Registry struct {
	materials [typeCount]Material
}

// NewRegistry создаёт реестр с материалами по умолчанию
func NewRegistry() *Registry {
	r := &Registry{}
	r.materials[Dirt] = Material{Texture: "dirt.png", Color: mgl32.Vec3{0.6, 0.4, 0.2}}
	r.materials[Stone] = Material{Texture: "stone.png", Color: mgl32.Vec3{0.5, 0.5, 0.5}}
	r.materials[Grass] = Material{Texture: "grass.png", Color: mgl32.Vec3{0.0, 0.8, 0.0}}
	r.materials[Sand] = Material{Texture: "sand.png", Color: mgl32.Vec3{0.9, 0.85, 0.55}}
	r.materials[Wood] = Material{Texture: "wood.png", Color: mgl32.Vec3{0.45, 0.3, 0.15}}
	r.materials[Leaves] = Material{Texture: "leaves.png", Color: mgl32.Vec3{0.1, 0.55, 0.1}}
	return r
}

// Register заменяет материал типа. Воздух и неизвестные типы игнорируются.
func (r *Registry) Register(t Type, m Material) {
	if t == Air || !t.Valid() {
		return
	}
	r.materials[t] = m
}

// Material возвращает материал типа. Для неизвестного типа - пустой материал.
func (r *Registry) Material(t Type) Material {
	if r == nil || !t.Valid() {
		return Material{}
	}
	return r.materials[t]
}
