package block

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_BoundingBoxFromPosition(t *testing.T) {
	b := New(mgl64.Vec3{2, 3, 4}, Stone, 1)

	assert.Equal(t, Stone, b.Type())
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, b.Position())
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, b.BoundingBox().Min)
	assert.Equal(t, mgl64.Vec3{3, 4, 5}, b.BoundingBox().Max)

	half := New(mgl64.Vec3{1, 1, 1}, Dirt, 0.5)
	assert.Equal(t, mgl64.Vec3{1.5, 1.5, 1.5}, half.BoundingBox().Max)
}

func TestBlock_IsSolid(t *testing.T) {
	var missing *Block
	assert.False(t, missing.IsSolid())
	assert.False(t, New(mgl64.Vec3{}, Air, 1).IsSolid())
	assert.True(t, New(mgl64.Vec3{}, Grass, 1).IsSolid())
}

func TestType_Transparency(t *testing.T) {
	assert.True(t, Air.IsTransparent())
	for _, typ := range Types() {
		assert.False(t, typ.IsTransparent(), "тип %s должен быть непрозрачным", typ)
	}
	assert.True(t, Type(200).IsTransparent())
}

func TestParseType(t *testing.T) {
	for _, typ := range append(Types(), Air) {
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	parsed, err := ParseType("  Stone ")
	require.NoError(t, err)
	assert.Equal(t, Stone, parsed)

	_, err = ParseType("lava")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "dirt.png", r.Material(Dirt).Texture)
	assert.Equal(t, Material{}, r.Material(Air))

	r.Register(Stone, Material{Texture: "granite.png", Color: mgl32.Vec3{1, 0, 0}})
	assert.Equal(t, "granite.png", r.Material(Stone).Texture)

	r.Register(Air, Material{Texture: "nope.png"})
	assert.Equal(t, Material{}, r.Material(Air), "воздух не получает материал")

	var empty *Registry
	assert.Equal(t, Material{}, empty.Material(Dirt))
}
