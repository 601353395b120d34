// Package vg defines the collaborator interfaces the glyph package draws
// through: a PolygonBuilder that receives a tessellated vertex stream, the
// Polygon handle it produces, and a Renderer/VGContext pair that frames a
// draw call. Concrete adapters live in subpackages: vgtest records calls
// for assertions, giovg drives gioui.org.
package vg

// Style carries the paint applied to a drawn Polygon.
type Style struct {
	Color [4]float32
}

// Polygon is an opaque handle returned by a PolygonBuilder. Its only
// consumer is the Renderer/VGContext pair that eventually draws it; the
// glyph package never inspects its contents.
type Polygon interface{}

// PolygonBuilder receives the vertex stream produced by tessellation.
//
// Reset discards any in-progress polygon and prepares the builder for a
// new vertex stream. Point appends one vertex; first is true for the
// first vertex of each contour (a "move to" in path-building terms) and
// false for every subsequent vertex in that contour (a "line to"). Point
// returns false if the builder refuses the vertex (allocation failure,
// capacity exceeded); the caller must stop tessellating and surface a
// BuildError. Build finalizes the accumulated vertices into a Polygon
// handle; it is only ever called after a successful vertex stream.
type PolygonBuilder interface {
	Reset()
	Point(first bool, x, y float32) bool
	Build() Polygon
}

// Renderer frames a single draw pass: begin, draw through a VGContext,
// end. BeginDefault starts a pass against the default framebuffer,
// clearing it to clear; it returns false if the pass could not start.
// Viewport and Scissor set up the GL-style viewport/scissor rectangles a
// caller applies before issuing draws. SurfaceSize reports the current
// drawable size in pixels.
type Renderer interface {
	BeginDefault(clear [4]float32) bool
	End()
	SurfaceSize() (width, height uint32)
	Viewport(x, y, width, height float32)
	Scissor(x, y, width, height int32)
}

// VGContext issues draws within a Renderer pass. Reset installs the
// model-view-projection matrix (row-major, 16 elements) future DrawPolygon
// calls are transformed by. DrawPolygon draws p with the given style.
type VGContext interface {
	Reset(mvp [16]float32)
	DrawPolygon(p Polygon, style Style)
}
