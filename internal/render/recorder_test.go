package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_BuildDrawRelease(t *testing.T) {
	r := NewRecorder()

	r.BeginChunkGeometry(NoGeometry)
	r.EmitQuad(Quad{Texture: "dirt.png"})
	r.EmitQuad(Quad{Texture: "stone.png"})
	h := r.EndChunkGeometry()
	require.NotEqual(t, NoGeometry, h)
	assert.Len(t, r.Quads(h), 2)

	r.DrawGeometry(h)
	r.DrawGeometry(h)
	r.ReleaseGeometry(h)

	stats := r.Stats()
	assert.Equal(t, 1, stats.Builds)
	assert.Equal(t, 2, stats.Draws)
	assert.Equal(t, 4, stats.DrawnQuads)
	assert.Equal(t, 1, stats.Releases)
	assert.Equal(t, 0, stats.Live)
	assert.Empty(t, r.Violations())
}

func TestRecorder_ReuseKeepsHandle(t *testing.T) {
	r := NewRecorder()

	r.BeginChunkGeometry(NoGeometry)
	r.EmitQuad(Quad{})
	h := r.EndChunkGeometry()

	r.BeginChunkGeometry(h)
	r.EmitQuad(Quad{})
	r.EmitQuad(Quad{})
	r.EmitQuad(Quad{})
	again := r.EndChunkGeometry()

	assert.Equal(t, h, again)
	assert.Len(t, r.Quads(h), 3, "перезапись заменяет содержимое")
	assert.Equal(t, 1, r.Stats().Live)
}

func TestRecorder_Violations(t *testing.T) {
	r := NewRecorder()

	r.DrawGeometry(42)
	r.EmitQuad(Quad{})

	r.BeginChunkGeometry(NoGeometry)
	h := r.EndChunkGeometry()
	r.ReleaseGeometry(h)
	r.ReleaseGeometry(h)

	v := r.Violations()
	require.Len(t, v, 3)
	assert.ErrorIs(t, v[0], ErrUnknownGeometry)
	assert.ErrorIs(t, v[1], ErrNotRecording)
	assert.ErrorIs(t, v[2], ErrDoubleRelease)
}
