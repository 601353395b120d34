// Package giovg adapts glyph/vg onto gioui.org, building clip.Path outlines
// from the tessellator's vertex stream and filling them with op/paint.
package giovg

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/glyphtess/glyph/utils"
	"github.com/glyphtess/glyph/vg"
)

// Polygon wraps a finished gioui.org path outline.
type Polygon struct {
	spec clip.PathSpec
}

// Builder is a vg.PolygonBuilder backed by a clip.Path. It must be driven
// against a live op.Ops; call Reset before each tessellation pass.
type Builder struct {
	ops  *op.Ops
	path clip.Path
}

// NewBuilder returns a Builder that records into ops.
func NewBuilder(ops *op.Ops) *Builder {
	return &Builder{ops: ops}
}

func (b *Builder) Reset() {
	b.path.Begin(b.ops)
}

func (b *Builder) Point(first bool, x, y float32) bool {
	pt := f32.Pt(x, y)
	if first {
		b.path.MoveTo(pt)
	} else {
		b.path.LineTo(pt)
	}
	return true
}

func (b *Builder) Build() vg.Polygon {
	b.path.Close()
	return &Polygon{spec: b.path.End()}
}

// Renderer drives a single gioui.org frame against ops, clearing the
// default framebuffer and tracking the surface size reported by the host
// window.
type Renderer struct {
	ops         *op.Ops
	width       uint32
	height      uint32
	vx, vy      float32
	vw, vh      float32
	sx, sy      int32
	sw, sh      int32
}

// NewRenderer returns a Renderer for the given surface size in pixels.
func NewRenderer(ops *op.Ops, width, height uint32) *Renderer {
	return &Renderer{ops: ops, width: width, height: height}
}

func (r *Renderer) BeginDefault(clear [4]float32) bool {
	paint.ColorOp{Color: toNRGBA(clear)}.Add(r.ops)
	paint.PaintOp{}.Add(r.ops)
	return true
}

func (r *Renderer) End() {}

func (r *Renderer) SurfaceSize() (uint32, uint32) { return r.width, r.height }

func (r *Renderer) Viewport(x, y, w, h float32) {
	r.vx, r.vy, r.vw, r.vh = x, y, w, h
}

func (r *Renderer) Scissor(x, y, w, h int32) {
	r.sx, r.sy, r.sw, r.sh = x, y, w, h
}

// Context is a vg.VGContext that paints clip outlines into a Renderer's
// op.Ops, pushing each clip outline straight into the ops the way the
// teacher's draw code does, without a matrix stack. Reset stores the MVP
// but DrawPolygon does not apply it: polygons are painted at their raw
// vertex coordinates (glyph em-space units, as emitted by the
// tessellator), not mapped through the orthographic projection.
type Context struct {
	ops *op.Ops
	mvp [16]float32
}

// NewContext returns a Context painting into ops.
func NewContext(ops *op.Ops) *Context {
	return &Context{ops: ops}
}

func (c *Context) Reset(mvp [16]float32) {
	c.mvp = mvp
}

func (c *Context) DrawPolygon(p vg.Polygon, style vg.Style) {
	poly, ok := p.(*Polygon)
	if !ok || poly == nil {
		return
	}
	defer clip.Outline{Path: poly.spec}.Op().Push(c.ops).Pop()
	paint.ColorOp{Color: toNRGBA(style.Color)}.Add(c.ops)
	paint.PaintOp{}.Add(c.ops)
}

func toNRGBA(c [4]float32) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: uint8(clamp01(c[3]) * 255),
	}
}

func clamp01(v float32) float32 {
	return utils.Max(0, utils.Min(1, v))
}
