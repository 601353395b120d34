package glyph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glyphtess/glyph/vg"
	"github.com/glyphtess/glyph/vg/vgtest"
)

type fakeRenderer struct {
	w, h             uint32
	began            bool
	vx, vy, vw, vh   float32
	sx, sy, sw, sh   int32
}

func (r *fakeRenderer) BeginDefault(clear [4]float32) bool { r.began = true; return true }
func (r *fakeRenderer) End()                                {}
func (r *fakeRenderer) SurfaceSize() (uint32, uint32)       { return r.w, r.h }
func (r *fakeRenderer) Viewport(x, y, w, h float32)         { r.vx, r.vy, r.vw, r.vh = x, y, w, h }
func (r *fakeRenderer) Scissor(x, y, w, h int32)            { r.sx, r.sy, r.sw, r.sh = x, y, w, h }

type fakeVGContext struct {
	mvp    [16]float32
	drawn  []vg.Polygon
	styles []vg.Style
}

func (c *fakeVGContext) Reset(mvp [16]float32) { c.mvp = mvp }
func (c *fakeVGContext) DrawPolygon(p vg.Polygon, style vg.Style) {
	c.drawn = append(c.drawn, p)
	c.styles = append(c.styles, style)
}

func testTable() GlyphTable {
	return GlyphTable{
		'g': square(),
	}
}

func TestEngineState_DrawsSelectedGlyph(t *testing.T) {
	table := testTable()
	tess := NewTessellator()
	builder := vgtest.NewBuilder()
	defaultPoly := builder.Build()

	state := NewEngineState(table, tess, builder, defaultPoly, nil)
	r := &fakeRenderer{w: 100, h: 100}
	ctx := &fakeVGContext{}

	state.Draw(r, ctx)

	assert.True(t, r.began)
	assert.Len(t, ctx.drawn, 1)
	assert.NotNil(t, ctx.drawn[0])
}

func TestEngineState_DrawsDefaultWhenSelectionMissing(t *testing.T) {
	table := testTable()
	tess := NewTessellator()
	builder := vgtest.NewBuilder()
	defaultPoly := builder.Build()

	state := NewEngineState(table, tess, builder, defaultPoly, nil)
	state.SetSelection('z', 4, 0)

	r := &fakeRenderer{w: 100, h: 100}
	ctx := &fakeVGContext{}
	state.Draw(r, ctx)

	assert.Len(t, ctx.drawn, 1)
	assert.Equal(t, defaultPoly, ctx.drawn[0])
}

func TestEngineState_ContentRectAxisSwapPreserved(t *testing.T) {
	table := testTable()
	state := NewEngineState(table, NewTessellator(), vgtest.NewBuilder(), nil, nil)

	state.HandleEvent(ContentRectEvent{Top: 10, Left: 20, Bottom: 50, Right: 80}, time.Now())

	r := &fakeRenderer{w: 100, h: 100}
	ctx := &fakeVGContext{}
	state.Draw(r, ctx)

	assert.Equal(t, float32(20), r.vx)
	assert.Equal(t, float32(10), r.vy)
	assert.Equal(t, float32(40), r.vw) // bottom(50) - top(10), the preserved axis swap
	assert.Equal(t, float32(60), r.vh) // right(80) - left(20)
}

func TestEngineState_DoubleTapExitWithinWindow(t *testing.T) {
	var exited bool
	state := NewEngineState(testTable(), NewTessellator(), vgtest.NewBuilder(), nil, func() { exited = true })

	t0 := time.Now()
	state.HandleEvent(KeyEvent{Down: false, Code: KeyEscape}, t0)
	state.HandleEvent(KeyEvent{Down: false, Code: KeyEscape}, t0.Add(300*time.Millisecond))

	assert.True(t, exited)
}

func TestEngineState_NoExitOutsideWindow(t *testing.T) {
	var exited bool
	state := NewEngineState(testTable(), NewTessellator(), vgtest.NewBuilder(), nil, func() { exited = true })

	t0 := time.Now()
	state.HandleEvent(KeyEvent{Down: false, Code: KeyEscape}, t0)
	state.HandleEvent(KeyEvent{Down: false, Code: KeyEscape}, t0.Add(800*time.Millisecond))

	assert.False(t, exited)
}

func TestEngineState_DigitSelectsStepsWithNineMappedToSixteen(t *testing.T) {
	state := NewEngineState(testTable(), NewTessellator(), vgtest.NewBuilder(), nil, nil)

	state.HandleEvent(KeyEvent{Down: false, Code: '9'}, time.Now())
	_, steps, _ := state.CurrentSelection()
	assert.Equal(t, int32(16), steps)

	state.HandleEvent(KeyEvent{Down: false, Code: '3'}, time.Now())
	_, steps, _ = state.CurrentSelection()
	assert.Equal(t, int32(3), steps)
}

func TestEngineState_PrintableKeySelectsGlyph(t *testing.T) {
	state := NewEngineState(testTable(), NewTessellator(), vgtest.NewBuilder(), nil, nil)

	state.HandleEvent(KeyEvent{Down: false, Code: 'A'}, time.Now())
	id, _, _ := state.CurrentSelection()
	assert.Equal(t, int32('A'), id)
}

func TestEngineState_BareKeyDownWithoutRepeatIgnored(t *testing.T) {
	state := NewEngineState(testTable(), NewTessellator(), vgtest.NewBuilder(), nil, nil)

	state.HandleEvent(KeyEvent{Down: true, Repeat: false, Code: 'A'}, time.Now())
	id, _, _ := state.CurrentSelection()
	assert.Equal(t, int32('g'), id)
}

func TestEngineState_RepeatedKeyDownActs(t *testing.T) {
	state := NewEngineState(testTable(), NewTessellator(), vgtest.NewBuilder(), nil, nil)

	state.HandleEvent(KeyEvent{Down: true, Repeat: true, Code: 'A'}, time.Now())
	id, _, _ := state.CurrentSelection()
	assert.Equal(t, int32('A'), id)
}
