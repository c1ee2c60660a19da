// Package render описывает границу с графическим бэкендом.
// Ядро мира выдаёт квады и дескрипторы геометрии, а загрузкой буферов
// и вызовами отрисовки занимается реализация Backend.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GeometryHandle - непрозрачный дескриптор собранной геометрии чанка.
// Нулевое значение означает отсутствие геометрии.
type GeometryHandle uint32

// NoGeometry - дескриптор без геометрии
const NoGeometry GeometryHandle = 0

// Quad - одна грань блока
type Quad struct {
	Positions [4]mgl32.Vec3
	UVs       [4]mgl32.Vec2
	Normal    mgl32.Vec3
	Texture   string
	Color     mgl32.Vec3
}

// Backend - потребляемый ядром интерфейс отрисовки
type Backend interface {
	// BeginChunkGeometry начинает запись геометрии. Если reuse != NoGeometry,
	// бэкенд перезаписывает существующий дескриптор, сохраняя его идентичность.
	BeginChunkGeometry(reuse GeometryHandle)
	// EmitQuad добавляет грань в текущую запись
	EmitQuad(q Quad)
	// EndChunkGeometry завершает запись и возвращает дескриптор
	EndChunkGeometry() GeometryHandle
	// DrawGeometry рисует ранее собранную геометрию
	DrawGeometry(h GeometryHandle)
	// ReleaseGeometry освобождает дескриптор
	ReleaseGeometry(h GeometryHandle)
}

// DefaultUVs - текстурные координаты квада на всю текстуру
var DefaultUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
