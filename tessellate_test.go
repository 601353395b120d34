package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glyphtess/glyph/vg/vgtest"
)

// TestTessellator_NaiveSquare is spec scenario 1: a four-point on-curve
// square tessellated in naive mode must emit each point once in order.
func TestTessellator_NaiveSquare(t *testing.T) {
	g := &GlyphRecord{
		ID:          1,
		Points:      []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Tags:        []Tag{On, On, On, On},
		ContourEnds: []int32{3},
	}
	builder := vgtest.NewBuilder()

	poly, err := NewTessellator().Build(g, builder, 0, 0)
	assert.NoError(t, err)
	assert.NotNil(t, poly)

	want := []vgtest.Vertex{
		{First: true, X: 0, Y: 0},
		{First: false, X: 1, Y: 0},
		{First: false, X: 1, Y: 1},
		{First: false, X: 0, Y: 1},
	}
	assert.Equal(t, want, poly.(*vgtest.Polygon).Vertices)
}

// TestTessellator_TriangleOneOffCurve is spec scenario 2: the truth table
// (not the scenario's prose) governs the exact vertex count and values.
func TestTessellator_TriangleOneOffCurve(t *testing.T) {
	g := &GlyphRecord{
		ID:          2,
		Points:      []Point{{0, 0}, {1, 2}, {2, 0}},
		Tags:        []Tag{On, Off, On},
		ContourEnds: []int32{2},
	}
	builder := vgtest.NewBuilder()

	poly, err := NewTessellator().Build(g, builder, 2, 0)
	assert.NoError(t, err)

	want := []vgtest.Vertex{
		{First: true, X: 0, Y: 0},
		{First: false, X: 1, Y: 1},
		{First: false, X: 2, Y: 0},
	}
	assert.Equal(t, want, poly.(*vgtest.Polygon).Vertices)
}

// TestTessellator_ConsecutiveOffCurve is spec scenario 3: two consecutive
// off-curve points synthesize a virtual on-curve midpoint.
func TestTessellator_ConsecutiveOffCurve(t *testing.T) {
	g := &GlyphRecord{
		ID:          3,
		Points:      []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}},
		Tags:        []Tag{On, Off, Off, On},
		ContourEnds: []int32{3},
	}
	builder := vgtest.NewBuilder()

	poly, err := NewTessellator().Build(g, builder, 4, 0)
	assert.NoError(t, err)

	verts := poly.(*vgtest.Polygon).Vertices
	assert.Equal(t, vgtest.Vertex{First: true, X: 0, Y: 0}, verts[0])
	// first arc: (0,0) -> (2,0) -> mid((2,0),(2,2))=(2,1) at t=0.25,0.5,0.75,1
	assert.Equal(t, vgtest.Vertex{X: 2, Y: 1}, verts[4])
	assert.Len(t, verts, 9)
}

func TestTessellator_AdaptivePicksSingleStepOnNearStraightArc(t *testing.T) {
	g := &GlyphRecord{
		ID:          4,
		Points:      []Point{{0, 0}, {0.5, 0.01}, {1, 0}},
		Tags:        []Tag{On, Off, On},
		ContourEnds: []int32{2},
	}
	builder := vgtest.NewBuilder()
	tess := NewTessellator()

	poly, err := tess.Build(g, builder, 0, 10)
	assert.NoError(t, err)

	verts := poly.(*vgtest.Polygon).Vertices
	assert.Len(t, verts, 2)
	assert.Equal(t, vgtest.Vertex{First: false, X: 1, Y: 0}, verts[1])
}

func TestTessellator_CacheHitReturnsSameHandle(t *testing.T) {
	g := square()
	builder := vgtest.NewBuilder()
	tess := NewTessellator()

	h1, err := tess.Build(g, builder, 4, 0)
	assert.NoError(t, err)
	h2, err := tess.Build(g, builder, 4, 0)
	assert.NoError(t, err)
	assert.Same(t, h1, h2)

	h3, err := tess.Build(g, builder, 5, 0)
	assert.NoError(t, err)
	assert.NotSame(t, h1, h3)
}

func TestTessellator_DegenerateGlyphReturnsNilWithoutError(t *testing.T) {
	g := &GlyphRecord{ID: 5, Points: []Point{{0, 0}, {1, 0}}, Tags: []Tag{On, On}, ContourEnds: []int32{1}}
	builder := vgtest.NewBuilder()

	poly, err := NewTessellator().Build(g, builder, 0, 0)
	assert.NoError(t, err)
	assert.Nil(t, poly)
}

func TestTessellator_BuildErrorOnRefusedVertex(t *testing.T) {
	g := square()
	builder := vgtest.NewBuilder()
	builder.RefuseAfter = 1

	_, err := NewTessellator().Build(g, builder, 0, 0)
	assert.Error(t, err)
	var buildErr BuildError
	assert.ErrorAs(t, err, &buildErr)
}
