// Package platform drives the glyph engine's draw/event lifecycle against
// a gioui.org window, grounded on the teacher's gui.go event loop: a
// for/switch over app.Window.Event(), a key.Filter drain on each
// app.FrameEvent, and w.Perform(system.ActionClose) for the exit path.
package platform

import (
	"fmt"
	"image"
	"log"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	gtext "gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/glyphtess/glyph"
	"github.com/glyphtess/glyph/asset"
	"github.com/glyphtess/glyph/text"
	"github.com/glyphtess/glyph/vg/giovg"
)

// Config describes the window and asset the platform should bring up,
// mirroring the original's app-metadata record (name "Glyph", version
// "1.0.0", app dir "Glyph").
type Config struct {
	Title     string
	Width     float32
	Height    float32
	AssetName string
	StepsSeed int32
}

// Run implements onCreate/onDraw/onEvent/onDestroy: it loads the glyph
// table, builds an EngineState, opens a window, and drives frames until
// the window closes or a double-tap-escape requests exit.
func Run(cfg Config, store asset.Store) error {
	loader := glyph.NewGlyphLoader(text.JSONParser{})
	table, err := loader.Load(store, cfg.AssetName)
	if err != nil {
		return err
	}

	tess := glyph.NewTessellator()
	ops := new(op.Ops)
	builder := giovg.NewBuilder(ops)
	defaultPoly := buildDefaultPolygon(builder)

	w := new(app.Window)
	w.Option(
		app.Title(cfg.Title),
		app.Size(unit.Dp(cfg.Width), unit.Dp(cfg.Height)),
	)
	w.Perform(system.ActionCenter)

	state := glyph.NewEngineState(table, tess, builder, defaultPoly, func() {
		w.Perform(system.ActionClose)
	})
	if cfg.StepsSeed != 0 {
		id, _, thresh := state.CurrentSelection()
		state.SetSelection(id, cfg.StepsSeed, thresh)
	}

	theme := material.NewTheme()
	theme.Shaper = gtext.NewShaper(gtext.WithCollection(gofont.Collection()))

	return runLoop(w, ops, state, theme)
}

// buildDefaultPolygon matches the original's static 5-vertex square used
// when the selected glyph is absent or degenerate: four corners of the
// [0,10]x[0,10] square plus the closing vertex back to the start.
func buildDefaultPolygon(builder *giovg.Builder) *giovg.Polygon {
	builder.Reset()
	verts := [][2]float32{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	for i, v := range verts {
		builder.Point(i == 0, v[0], v[1])
	}
	poly, _ := builder.Build().(*giovg.Polygon)
	return poly
}

func runLoop(w *app.Window, ops *op.Ops, state *glyph.EngineState, theme *material.Theme) error {
	var lastSize image.Point
	for {
		switch e := w.Event().(type) {
		case app.FrameEvent:
			gtx := app.NewContext(ops, e)
			drainKeys(gtx, state)
			if e.Size != lastSize {
				lastSize = e.Size
				state.HandleEvent(glyph.ContentRectEvent{
					Top: 0, Left: 0, Bottom: int32(e.Size.Y), Right: int32(e.Size.X),
				}, time.Now())
			}

			renderer := giovg.NewRenderer(ops, uint32(e.Size.X), uint32(e.Size.Y))
			vgctx := giovg.NewContext(ops)
			state.Draw(renderer, vgctx)
			drawHUD(gtx, theme, state)

			e.Frame(gtx.Ops)
		case app.DestroyEvent:
			return e.Err
		}
	}
}

// drawHUD overlays the current selection, matching the teacher's
// material.Label/layout.Inset HUD pattern in gui.go rather than raw text
// rendering through the vg adapter (the glyph polygon itself never goes
// through gioui's text shaper).
func drawHUD(gtx layout.Context, theme *material.Theme, state *glyph.EngineState) {
	id, steps, thresh := state.CurrentSelection()
	label := fmt.Sprintf("glyph %c  steps=%d  thresh=%d", rune(id), steps, thresh)
	layout.Inset{Top: unit.Dp(8), Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.Label(theme, unit.Sp(14), label).Layout(gtx)
	})
}

// drainKeys mirrors the teacher's escape-only drain in gui.go, generalized
// to every key: the empty Filter.Name matches any key not claimed by a
// more specific filter, per io/key's doc comment. Only key.Release events
// drive the engine; this gio release's key.Event carries no repeat flag,
// so the "key_down && repeat" branch of EngineState.HandleEvent's contract
// is never exercised by this adapter (see DESIGN.md).
func drainKeys(gtx layout.Context, state *glyph.EngineState) {
	for {
		ev, ok := gtx.Event(key.Filter{})
		if !ok {
			break
		}
		kev, ok := ev.(key.Event)
		if !ok || kev.State != key.Release {
			continue
		}
		code, ok := keyCode(kev.Name)
		if !ok {
			continue
		}
		state.HandleEvent(glyph.KeyEvent{Down: false, Code: code}, time.Now())
	}
}

func keyCode(name key.Name) (int32, bool) {
	if name == key.NameEscape {
		return glyph.KeyEscape, true
	}
	r := []rune(string(name))
	if len(r) != 1 {
		return 0, false
	}
	c := r[0]
	if c < 32 || c > 126 {
		return 0, false
	}
	return int32(c), true
}

func init() {
	log.SetFlags(0)
}
