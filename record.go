package glyph

import "github.com/glyphtess/glyph/vg"

// Tag marks whether a point lies on the outline (On) or is a quadratic
// control point (Off).
type Tag int32

const (
	Off Tag = 0
	On  Tag = 1
)

// Point is a coordinate in a glyph's em-space.
type Point struct {
	X, Y float32
}

func mid(a, b Point) Point {
	return Point{X: a.X + (b.X-a.X)/2, Y: a.Y + (b.Y-a.Y)/2}
}

// GlyphRecord is one glyph's immutable contour data plus its mutable
// tessellation cache. The point/tag/contour-end slices are never mutated
// or resized after a successful Load; only the cache fields change, and
// only from within Tessellator.Build.
type GlyphRecord struct {
	ID int32
	W  float32
	H  float32

	Points      []Point
	Tags        []Tag
	ContourEnds []int32

	cachedPoly    vg.Polygon
	cacheSteps    int32
	cacheThresh   int32
	hasCachedPoly bool
}

// NP is the glyph's point count.
func (g *GlyphRecord) NP() int { return len(g.Points) }

// NC is the glyph's contour count.
func (g *GlyphRecord) NC() int { return len(g.ContourEnds) }

// validate checks the §3 invariants against an already-populated record.
// It does not check field-order or duplicate-field rules; those are the
// loader's job during the scan itself.
func (g *GlyphRecord) validate() error {
	if g.ID < 0 {
		return fieldErrorf("id %d is negative", g.ID)
	}
	if g.W < 0 || g.H < 0 {
		return fieldErrorf("glyph %d: w/h must be non-negative, got w=%v h=%v", g.ID, g.W, g.H)
	}
	if len(g.Points) != len(g.Tags) {
		return fieldErrorf("glyph %d: len(points)=%d != len(tags)=%d", g.ID, len(g.Points), len(g.Tags))
	}
	np := len(g.Points)
	nc := len(g.ContourEnds)
	if np == 0 {
		if nc != 0 {
			return fieldErrorf("glyph %d: np=0 requires nc=0, got nc=%d", g.ID, nc)
		}
		return nil
	}
	if nc == 0 {
		return fieldErrorf("glyph %d: np=%d requires at least one contour", g.ID, np)
	}
	prev := int32(-1)
	for k, end := range g.ContourEnds {
		if end <= prev {
			return fieldErrorf("glyph %d: contour_ends not strictly increasing at index %d", g.ID, k)
		}
		prev = end
	}
	if g.ContourEnds[nc-1] != int32(np-1) {
		return fieldErrorf("glyph %d: last contour_end %d != np-1 (%d)", g.ID, g.ContourEnds[nc-1], np-1)
	}
	return nil
}

// GlyphTable maps a glyph id to its record. Insertion order is
// irrelevant; the table owns its records for as long as it lives.
type GlyphTable map[int32]*GlyphRecord
