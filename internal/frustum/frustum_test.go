package frustum

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-world/internal/world"
)

var _ world.Culler = (*Frustum)(nil)

const (
	testNear = float32(0.1)
	testFar  = float32(100)
)

func testProjection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(60), 1, testNear, testFar)
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := New(testProjection(), mgl32.Ident4())

	for i, p := range f.Planes() {
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-5, "плоскость %d", i)
	}

	near := f.Plane(Near)
	assert.InDelta(t, -1.0, near.Normal.Z(), 1e-5)
	assert.InDelta(t, -testNear, near.Distance, 1e-4)

	far := f.Plane(Far)
	assert.InDelta(t, 1.0, far.Normal.Z(), 1e-5)
	assert.InDelta(t, testFar, far.Distance, 1e-2)
}

func TestFrustumBoxClassification(t *testing.T) {
	f := New(testProjection(), mgl32.Ident4())

	tests := []struct {
		name    string
		x, y, z float32
		size    float32
		want    bool
	}{
		{"прямо перед камерой", -0.5, -0.5, -10.5, 1, true},
		{"за дальней плоскостью", -0.5, -0.5, -1000, 1, false},
		{"у дальней плоскости, частично", -0.5, -0.5, -100.5, 1, true},
		{"позади камеры", -0.5, -0.5, 50, 1, false},
		{"далеко справа", 1000, -0.5, -10.5, 1, false},
		{"далеко слева", -1000, -0.5, -10.5, 1, false},
		{"далеко сверху", -0.5, 1000, -10.5, 1, false},
		{"крупный бокс вокруг камеры", -50, -50, -50, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.IsBoxInFrustum(tt.x, tt.y, tt.z, tt.size, tt.size, tt.size)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrustumBoxCenteredOnCameraSmallerThanNear(t *testing.T) {
	f := New(testProjection(), mgl32.Ident4())

	e := testNear / 2
	assert.True(t, f.IsBoxInFrustum(-e/2, -e/2, -e/2, e, e, e), "бокс в зазоре до ближней плоскости не отсекается")
}

func TestFrustumFollowsView(t *testing.T) {
	view := mgl32.Translate3D(-100, 0, 0)
	f := New(testProjection(), view)

	eye := f.Eye()
	assert.InDelta(t, 100.0, eye.X(), 1e-3)

	assert.True(t, f.IsBoxInFrustum(99.5, -0.5, -10.5, 1, 1, 1))
	assert.False(t, f.IsBoxInFrustum(-0.5, -0.5, -10.5, 1, 1, 1), "старое положение больше не видно")

	// Поворот на 180 градусов вокруг Y: теперь видно то, что было сзади
	f.Update(testProjection(), mgl32.HomogRotate3DY(mgl32.DegToRad(180)))
	assert.True(t, f.IsBoxInFrustum(-0.5, -0.5, 9.5, 1, 1, 1))
	assert.False(t, f.IsBoxInFrustum(-0.5, -0.5, -10.5, 1, 1, 1))
}

func TestFrustumDegeneratePlane(t *testing.T) {
	var f Frustum
	f.Update(mgl32.Mat4{}, mgl32.Ident4())

	require.True(t, f.Valid())
	for i, p := range f.Planes() {
		assert.True(t, p.IsZero(), "плоскость %d должна быть нулевой", i)
	}
	assert.True(t, f.IsBoxInFrustum(1e6, 1e6, 1e6, 1, 1, 1), "нулевая плоскость ничего не отсекает")
}

func TestFrustumZeroValueAcceptsEverything(t *testing.T) {
	var f Frustum
	assert.False(t, f.Valid())
	assert.True(t, f.IsBoxInFrustum(-1e6, 0, 0, 1, 1, 1))
	assert.True(t, f.IsPointInFrustum(mgl32.Vec3{5, 5, 5}))
}

func TestFrustumPointTest(t *testing.T) {
	f := New(testProjection(), mgl32.Ident4())

	assert.True(t, f.IsPointInFrustum(mgl32.Vec3{0, 0, -5}))
	assert.False(t, f.IsPointInFrustum(mgl32.Vec3{0, 0, 5}))
	assert.False(t, f.IsPointInFrustum(mgl32.Vec3{0, 0, -0.05}), "ближе ближней плоскости")
}
