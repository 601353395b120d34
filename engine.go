package glyph

import (
	"log"
	"time"

	"github.com/glyphtess/glyph/vg"
)

// Key codes consumed by EngineState.HandleEvent. Printable ASCII is
// passed through as its own code point; KeyEscape is a sentinel outside
// that range for the platform layer to map its own escape key to.
const KeyEscape int32 = -1

const doubleTapWindow = 500 * time.Millisecond

// contentRect mirrors the original engine's stored fields: width is
// computed from bottom-top and height from right-left. That axis swap
// looks like a bug but is preserved bit-exactly per the design notes
// rather than silently "corrected" — see DESIGN.md.
type contentRect struct {
	set           bool
	top, left     int32
	width, height int32
}

// KeyEvent is a key press or release, matching the platform's
// {type, keycode, repeat} shape.
type KeyEvent struct {
	Down   bool
	Repeat bool
	Code   int32
}

// ContentRectEvent reports the surface's visible content rectangle as
// four edge coordinates.
type ContentRectEvent struct {
	Top, Left, Bottom, Right int32
}

// EngineState holds the loaded glyph table, the current selection, the
// content-rect, and the polygon cache handles, and dispatches draw/event
// calls the way the platform lifecycle demands.
type EngineState struct {
	table       GlyphTable
	tess        *Tessellator
	builder     vg.PolygonBuilder
	defaultPoly vg.Polygon

	currentID     int32
	currentSteps  int32
	currentThresh int32
	rect          contentRect
	escapeT0      time.Time
	haveEscapeT0  bool

	requestExit func()
}

// NewEngineState constructs an EngineState over an already-loaded table.
// defaultPoly is drawn whenever the current selection is absent or
// degenerate. requestExit is invoked when a double-tap-to-exit is
// detected; it may be nil.
func NewEngineState(table GlyphTable, tess *Tessellator, builder vg.PolygonBuilder, defaultPoly vg.Polygon, requestExit func()) *EngineState {
	return &EngineState{
		table:         table,
		tess:          tess,
		builder:       builder,
		defaultPoly:   defaultPoly,
		currentID:     'g',
		currentSteps:  4,
		currentThresh: 0,
		requestExit:   requestExit,
	}
}

// Pause is a reserved no-op, matching the platform lifecycle's pause hook.
func (e *EngineState) Pause() {}

// SetSelection overrides the current glyph id, step count, and threshold,
// for callers (such as the platform layer applying the CLI's -steps seed)
// that need a starting point other than the §3 defaults.
func (e *EngineState) SetSelection(id, steps, thresh int32) {
	e.currentID = id
	e.currentSteps = steps
	e.currentThresh = thresh
}

// CurrentSelection reports the engine's current glyph id, step count, and
// threshold.
func (e *EngineState) CurrentSelection() (id, steps, thresh int32) {
	return e.currentID, e.currentSteps, e.currentThresh
}

// Draw begins a renderer pass, installs viewport/scissor from the
// content-rect when set, builds the current selection's polygon, and
// draws it with an orthographic projection centered on the glyph (or the
// default polygon over [0,10]x[0,10] when there is nothing to draw).
func (e *EngineState) Draw(r vg.Renderer, ctx vg.VGContext) {
	if !r.BeginDefault([4]float32{0, 0, 0, 1}) {
		return
	}
	defer r.End()

	w, h := r.SurfaceSize()
	if e.rect.set {
		r.Viewport(float32(e.rect.left), float32(e.rect.top), float32(e.rect.width), float32(e.rect.height))
		r.Scissor(e.rect.left, e.rect.top, e.rect.width, e.rect.height)
	} else {
		r.Viewport(0, 0, float32(w), float32(h))
		r.Scissor(0, 0, int32(w), int32(h))
	}

	style := vg.Style{Color: [4]float32{1, 0, 1, 1}}

	rec, ok := e.table[e.currentID]
	if !ok {
		ctx.Reset(orthoMVP(0, 10, 10, 0))
		ctx.DrawPolygon(e.defaultPoly, style)
		return
	}

	poly, err := e.tess.Build(rec, e.builder, e.currentSteps, e.currentThresh)
	if err != nil {
		log.Printf("glyph: build %d failed: %v", e.currentID, err)
		ctx.Reset(orthoMVP(0, 10, 10, 0))
		ctx.DrawPolygon(e.defaultPoly, style)
		return
	}
	if poly == nil {
		ctx.Reset(orthoMVP(0, 10, 10, 0))
		ctx.DrawPolygon(e.defaultPoly, style)
		return
	}

	l := -(rec.H - rec.W) / 2
	right := l + rec.H
	ctx.Reset(orthoMVP(l, right, rec.H, 0))
	ctx.DrawPolygon(poly, style)
}

// orthoMVP builds a row-major 4x4 orthographic projection over
// [l,r]x[t,b] with a fixed depth range [0,2], matching draw()'s bounds.
func orthoMVP(l, r, b, t float32) [16]float32 {
	const near, far = float32(0), float32(2)
	return [16]float32{
		2 / (r - l), 0, 0, -(r + l) / (r - l),
		0, 2 / (b - t), 0, -(b + t) / (b - t),
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	}
}

// HandleEvent dispatches a key or content-rect event per §4.3. Key events
// are acted on for key_up, or for key_down when repeat is set; a bare
// initial key_down is ignored.
func (e *EngineState) HandleEvent(ev interface{}, now time.Time) {
	switch v := ev.(type) {
	case KeyEvent:
		if v.Down && !v.Repeat {
			return
		}
		e.handleKey(v.Code, now)
	case ContentRectEvent:
		e.rect.set = true
		e.rect.top = v.Top
		e.rect.left = v.Left
		e.rect.width = v.Bottom - v.Top
		e.rect.height = v.Right - v.Left
	}
}

func (e *EngineState) handleKey(code int32, now time.Time) {
	switch {
	case code == KeyEscape:
		if e.haveEscapeT0 && now.Sub(e.escapeT0) < doubleTapWindow {
			if e.requestExit != nil {
				e.requestExit()
			}
		}
		e.escapeT0 = now
		e.haveEscapeT0 = true

	case code >= '0' && code <= '9':
		steps := code - '0'
		if steps == 9 {
			steps = 16
		}
		e.currentSteps = steps

	case code >= 32 && code <= 126:
		e.currentID = code
	}
}
