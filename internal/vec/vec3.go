package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется для координат блоков в сетке, локальных координат внутри чанка
// и координат самих чанков.
type Vec3 struct {
	X int
	Y int
	Z int
}

// New создаёт вектор из трёх компонент
func New(x, y, z int) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale умножает все компоненты на скаляр
func (v Vec3) Scale(k int) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Less задаёт лексикографический порядок X, Y, Z для детерминированного обхода
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

// Min возвращает покомпонентный минимум
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{X: min(v.X, other.X), Y: min(v.Y, other.Y), Z: min(v.Z, other.Z)}
}

// Max возвращает покомпонентный максимум
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{X: max(v.X, other.X), Y: max(v.Y, other.Y), Z: max(v.Z, other.Z)}
}

// ChebyshevDistance возвращает наибольшую из покомпонентных разниц.
// Так считается дальность прорисовки в чанках.
func (v Vec3) ChebyshevDistance(other Vec3) int {
	return max(abs(v.X-other.X), abs(v.Y-other.Y), abs(v.Z-other.Z))
}

// InBox проверяет, лежит ли вектор в полуинтервале [lo, hi) по всем осям
func (v Vec3) InBox(lo, hi Vec3) bool {
	return v.X >= lo.X && v.X < hi.X &&
		v.Y >= lo.Y && v.Y < hi.Y &&
		v.Z >= lo.Z && v.Z < hi.Z
}

// FloorDiv делит с округлением вниз (а не к нулю, как оператор /)
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// EuclidMod возвращает остаток в диапазоне [0, |b|) даже для отрицательного a
func EuclidMod(a, b int) int {
	m := a % b
	if m < 0 {
		if b < 0 {
			m -= b
		} else {
			m += b
		}
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
