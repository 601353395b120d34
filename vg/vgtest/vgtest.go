// Package vgtest is a recording fake for glyph/vg, letting tessellation
// tests assert on the exact vertex-event stream a PolygonBuilder receives
// without touching a real renderer.
package vgtest

import "github.com/glyphtess/glyph/vg"

// Vertex is one recorded call to PolygonBuilder.Point.
type Vertex struct {
	First bool
	X, Y  float32
}

// Polygon is the handle Builder.Build returns: the vertex stream captured
// at the time of the call, frozen so later Reset calls cannot mutate it.
type Polygon struct {
	Vertices []Vertex
}

// Builder is a vg.PolygonBuilder that records every call instead of
// feeding a real rasterizer. ResetCount lets tests assert the tessellator
// reset the builder exactly once per Build call. RefuseAfter, when
// non-negative, makes Point return false starting at that many recorded
// vertices in the current stream, to exercise BuildError propagation.
type Builder struct {
	ResetCount  int
	RefuseAfter int
	vertices    []Vertex
}

// NewBuilder returns a Builder that never refuses a point.
func NewBuilder() *Builder {
	return &Builder{RefuseAfter: -1}
}

func (b *Builder) Reset() {
	b.ResetCount++
	b.vertices = nil
}

func (b *Builder) Point(first bool, x, y float32) bool {
	if b.RefuseAfter >= 0 && len(b.vertices) >= b.RefuseAfter {
		return false
	}
	b.vertices = append(b.vertices, Vertex{First: first, X: x, Y: y})
	return true
}

func (b *Builder) Build() vg.Polygon {
	frozen := make([]Vertex, len(b.vertices))
	copy(frozen, b.vertices)
	return &Polygon{Vertices: frozen}
}

// Vertices reports the vertex stream captured since the last Reset, for
// assertions that don't need to go through Build.
func (b *Builder) Vertices() []Vertex {
	return b.vertices
}
