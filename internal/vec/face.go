package vec

// Face обозначает одну из шести граней блока
type Face uint8

const (
	FaceWest   Face = iota // -X
	FaceEast               // +X
	FaceBottom             // -Y
	FaceTop                // +Y
	FaceNorth              // -Z
	FaceSouth              // +Z

	FaceCount = 6
)

var faceOffsets = [FaceCount]Vec3{
	FaceWest:   {X: -1},
	FaceEast:   {X: 1},
	FaceBottom: {Y: -1},
	FaceTop:    {Y: 1},
	FaceNorth:  {Z: -1},
	FaceSouth:  {Z: 1},
}

var faceNames = [FaceCount]string{"west", "east", "bottom", "top", "north", "south"}

// Faces возвращает все грани в фиксированном порядке
func Faces() [FaceCount]Face {
	return [FaceCount]Face{FaceWest, FaceEast, FaceBottom, FaceTop, FaceNorth, FaceSouth}
}

// Offset возвращает единичный сдвиг к соседу через эту грань
func (f Face) Offset() Vec3 {
	return faceOffsets[f]
}

// Opposite возвращает противоположную грань
func (f Face) Opposite() Face {
	return f ^ 1
}

func (f Face) String() string {
	if f >= FaceCount {
		return "unknown"
	}
	return faceNames[f]
}

// Neighbor возвращает соседнюю клетку через грань
func (v Vec3) Neighbor(f Face) Vec3 {
	return v.Add(f.Offset())
}

// FaceMask - битовая маска видимых граней
type FaceMask uint8

// Has проверяет, установлена ли грань в маске
func (m FaceMask) Has(f Face) bool {
	return m&(1<<f) != 0
}

// With возвращает маску с добавленной гранью
func (m FaceMask) With(f Face) FaceMask {
	return m | (1 << f)
}

// Count возвращает количество установленных граней
func (m FaceMask) Count() int {
	n := 0
	for f := Face(0); f < FaceCount; f++ {
		if m.Has(f) {
			n++
		}
	}
	return n
}
