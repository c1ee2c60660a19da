package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
		{7, -2, -4},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorDiv(c.a, c.b), "FloorDiv(%d, %d)", c.a, c.b)
	}
}

func TestEuclidMod(t *testing.T) {
	assert.Equal(t, 15, EuclidMod(-1, 16))
	assert.Equal(t, 0, EuclidMod(-16, 16))
	assert.Equal(t, 3, EuclidMod(19, 16))
	assert.Equal(t, 1, EuclidMod(-3, -2))

	for a := -40; a < 40; a++ {
		m := EuclidMod(a, 16)
		assert.GreaterOrEqual(t, m, 0)
		assert.Less(t, m, 16)
		assert.Equal(t, a, FloorDiv(a, 16)*16+m, "разложение должно восстанавливать исходное число")
	}
}

func TestFaces(t *testing.T) {
	origin := New(1, 2, 3)
	for _, f := range Faces() {
		n := origin.Neighbor(f)
		assert.Equal(t, 1, n.ChebyshevDistance(origin))
		assert.Equal(t, origin, n.Neighbor(f.Opposite()), "грань %s", f)
	}

	var m FaceMask
	m = m.With(FaceTop).With(FaceWest)
	assert.True(t, m.Has(FaceTop))
	assert.False(t, m.Has(FaceBottom))
	assert.Equal(t, 2, m.Count())
}

func TestInBox(t *testing.T) {
	lo, hi := New(0, 0, 0), New(16, 16, 16)
	assert.True(t, New(0, 15, 3).InBox(lo, hi))
	assert.False(t, New(16, 0, 0).InBox(lo, hi))
	assert.False(t, New(0, -1, 0).InBox(lo, hi))
}

func TestLess(t *testing.T) {
	assert.True(t, New(0, 5, 5).Less(New(1, 0, 0)))
	assert.True(t, New(1, 0, 5).Less(New(1, 1, 0)))
	assert.True(t, New(1, 1, 0).Less(New(1, 1, 1)))
	assert.False(t, New(1, 1, 1).Less(New(1, 1, 1)))
}
