package vgtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_RecordsVertexStream(t *testing.T) {
	b := NewBuilder()
	b.Reset()
	assert.True(t, b.Point(true, 0, 0))
	assert.True(t, b.Point(false, 1, 0))

	poly := b.Build().(*Polygon)
	assert.Equal(t, []Vertex{{First: true, X: 0, Y: 0}, {First: false, X: 1, Y: 0}}, poly.Vertices)
	assert.Equal(t, 1, b.ResetCount)
}

func TestBuilder_RefuseAfterLimit(t *testing.T) {
	b := NewBuilder()
	b.RefuseAfter = 1
	b.Reset()

	assert.True(t, b.Point(true, 0, 0))
	assert.False(t, b.Point(false, 1, 0))
}

func TestBuilder_BuildFreezesAgainstLaterReset(t *testing.T) {
	b := NewBuilder()
	b.Reset()
	b.Point(true, 0, 0)
	poly := b.Build().(*Polygon)

	b.Reset()
	b.Point(true, 9, 9)

	assert.Len(t, poly.Vertices, 1)
	assert.Equal(t, float32(0), poly.Vertices[0].X)
}
