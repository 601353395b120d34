package glyph

import "github.com/glyphtess/glyph/vg"

// mode selects how a contour's points are walked.
type mode int

const (
	modeNaive mode = iota
	modeFixed
	modeAdaptive
)

func selectMode(steps, thresh int32) mode {
	switch {
	case thresh > 0:
		return modeAdaptive
	case steps > 0:
		return modeFixed
	default:
		return modeNaive
	}
}

// Tessellator walks a GlyphRecord's contours under FreeType-style
// decomposition rules and drives an external vg.PolygonBuilder with the
// resulting vertex stream.
type Tessellator struct {
	lastAdaptiveError float32
}

// NewTessellator returns a ready Tessellator.
func NewTessellator() *Tessellator {
	return &Tessellator{}
}

// LastAdaptiveError reports the accumulated per-arc error total from the
// most recent adaptive-mode Build call (zero in naive/fixed mode, or for
// every arc that fell back to the steps=16 ceiling).
func (t *Tessellator) LastAdaptiveError() float32 {
	return t.lastAdaptiveError
}

// Build tessellates g into a polygon using builder, honoring the record's
// cache: a call with the same (steps, thresh) as the last successful
// build returns the cached handle without re-walking the contours. A
// degenerate glyph (fewer than 3 points) returns (nil, nil) and leaves
// any existing cache untouched.
func (t *Tessellator) Build(g *GlyphRecord, builder vg.PolygonBuilder, steps, thresh int32) (vg.Polygon, error) {
	if g.hasCachedPoly && g.cacheSteps == steps && g.cacheThresh == thresh {
		return g.cachedPoly, nil
	}

	if len(g.Points) < 3 {
		return nil, nil
	}

	g.hasCachedPoly = false
	g.cachedPoly = nil
	t.lastAdaptiveError = 0

	builder.Reset()

	var err error
	switch selectMode(steps, thresh) {
	case modeNaive:
		err = t.emitNaive(g, builder)
	case modeFixed:
		err = t.emitQuadratic(g, builder, fixedSteps(steps))
	case modeAdaptive:
		err = t.emitQuadratic(g, builder, t.adaptiveSteps(thresh))
	}
	if err != nil {
		return nil, err
	}

	poly := builder.Build()
	g.cachedPoly = poly
	g.cacheSteps = steps
	g.cacheThresh = thresh
	g.hasCachedPoly = true
	return poly, nil
}

// emitNaive implements §4.2.1: on-curve points only, one vertex per ON
// point, contour boundaries reset the first flag.
func (t *Tessellator) emitNaive(g *GlyphRecord, builder vg.PolygonBuilder) error {
	c := 0
	first := true
	for p := 0; p < len(g.Points); p++ {
		if first && g.Tags[p] == Off {
			// leading control point: skip until the first ON point
		} else if g.Tags[p] == On {
			pt := g.Points[p]
			if !builder.Point(first, pt.X, pt.Y) {
				return BuildError("naive emission refused")
			}
			first = false
		}
		if int32(p) == g.ContourEnds[c] {
			first = true
			c++
		}
	}
	return nil
}

// stepFunc picks the number of quadratic subdivisions to emit for one
// arc; fixedSteps always returns the same count, adaptiveSteps measures
// the arc first.
type stepFunc func(a, ctrl, b Point) int32

func fixedSteps(steps int32) stepFunc {
	return func(a, ctrl, b Point) int32 { return steps }
}

// emitQuadratic implements §4.2.2: per-index truth table over wrapped
// neighbor tags, synthesizing virtual on-curve midpoints for consecutive
// off-curve points.
func (t *Tessellator) emitQuadratic(g *GlyphRecord, builder vg.PolygonBuilder, steps stepFunc) error {
	prevEnd := int32(-1)
	for _, end := range g.ContourEnds {
		start := prevEnd + 1
		first := true
		for p := start; p <= end; p++ {
			p0 := p - 1
			if p0 < start {
				p0 = end
			}
			p2 := p + 1
			if p2 > end {
				p2 = start
			}
			t0, t1, t2 := g.Tags[p0], g.Tags[p], g.Tags[p2]
			pp0, pp1, pp2 := g.Points[p0], g.Points[p], g.Points[p2]

			switch {
			case t1 == On && t0 == On:
				if err := emitOne(builder, &first, pp1); err != nil {
					return err
				}
			case t1 == On && t0 == Off:
				// skip: handled by the neighboring iteration that owns
				// this point as an arc endpoint.
			default: // t1 == Off
				var a, b Point
				if t0 == On {
					a = pp0
				} else {
					a = mid(pp0, pp1)
				}
				if t2 == On {
					b = pp2
				} else {
					b = mid(pp1, pp2)
				}
				k := steps(a, pp1, b)
				if err := emitArc(builder, &first, a, pp1, b, k); err != nil {
					return err
				}
			}
		}
		prevEnd = end
	}
	return nil
}

func emitOne(builder vg.PolygonBuilder, first *bool, pt Point) error {
	if !builder.Point(*first, pt.X, pt.Y) {
		return BuildError("straight segment emission refused")
	}
	*first = false
	return nil
}

// emitArc emits the anchor point a only if it is the very first vertex
// of the whole contour (first == true); otherwise a is implied to be the
// pen position left by the previous emission. It then emits steps
// vertices at t = i/steps for i = 1..steps.
func emitArc(builder vg.PolygonBuilder, first *bool, a, ctrl, b Point, steps int32) error {
	if *first {
		if !builder.Point(true, a.X, a.Y) {
			return BuildError("arc anchor emission refused")
		}
		*first = false
	}
	for i := int32(1); i <= steps; i++ {
		tt := float32(i) / float32(steps)
		pt := quadAt(a, ctrl, b, tt)
		if !builder.Point(false, pt.X, pt.Y) {
			return BuildError("arc step emission refused")
		}
	}
	return nil
}

// quadAt evaluates B(t) = (1-t)^2 p0 + 2(1-t)t p1 + t^2 p2.
func quadAt(p0, p1, p2 Point, t float32) Point {
	u := 1 - t
	a := u * u
	b := 2 * u * t
	c := t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}
