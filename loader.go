package glyph

import (
	"github.com/glyphtess/glyph/asset"
	"github.com/glyphtess/glyph/text"
)

// GlyphLoader validates a parsed structured-text tree into a GlyphTable,
// mirroring the sentinel-based duplicate/order detection of the original
// glyph_object_new ingest: every scalar field starts at a sentinel value
// and is rejected if seen twice, and the array fields may only appear
// after the count field they depend on has been set.
type GlyphLoader struct {
	Parser text.Parser
}

// NewGlyphLoader returns a GlyphLoader using parser to decode asset blobs.
func NewGlyphLoader(parser text.Parser) *GlyphLoader {
	return &GlyphLoader{Parser: parser}
}

// Load fetches name from store, parses it, and validates it into a
// GlyphTable. On any failure the whole table is abandoned: Load never
// returns a partially populated table.
func (l *GlyphLoader) Load(store asset.Store, name string) (GlyphTable, error) {
	blob, err := store.Load(name)
	if err != nil {
		return nil, ResourceError(err.Error())
	}
	root, err := l.Parser.Parse(blob)
	if err != nil {
		return nil, fieldErrorf("parse %q: %v", name, err)
	}
	if root.Kind != text.Array {
		return nil, fieldErrorf("%q: root is not an array", name)
	}

	table := make(GlyphTable, len(root.Array))
	for i, obj := range root.Array {
		rec, err := parseGlyphObject(obj)
		if err != nil {
			return nil, fieldErrorf("%q: entry %d: %v", name, i, err)
		}
		if _, exists := table[rec.ID]; exists {
			return nil, fieldErrorf("%q: duplicate glyph id %d", name, rec.ID)
		}
		table[rec.ID] = rec
	}
	return table, nil
}

// sentinel values mirroring the original's self->i=-1, self->w=-1.0f, ...
const (
	sentinelInt   = -1
	sentinelFloat = -1.0
)

func parseGlyphObject(obj text.Node) (*GlyphRecord, error) {
	if obj.Kind != text.Object {
		return nil, fieldErrorf("glyph entry is not an object")
	}

	id := int64(sentinelInt)
	w := float64(sentinelFloat)
	h := float64(sentinelFloat)
	np := int64(sentinelInt)
	nc := int64(sentinelInt)
	var points []Point
	var tags []Tag
	var contourEnds []int32
	var havePoints, haveTags, haveContourEnds bool

	for _, kv := range obj.Fields {
		switch kv.Key {
		case "i":
			if id != sentinelInt {
				return nil, fieldErrorf("duplicate field %q", "i")
			}
			v, err := kv.Value.Int()
			if err != nil {
				return nil, fieldErrorf("field %q: %v", "i", err)
			}
			id = v

		case "w":
			if w != sentinelFloat {
				return nil, fieldErrorf("duplicate field %q", "w")
			}
			v, err := kv.Value.Float()
			if err != nil {
				return nil, fieldErrorf("field %q: %v", "w", err)
			}
			w = v

		case "h":
			if h != sentinelFloat {
				return nil, fieldErrorf("duplicate field %q", "h")
			}
			v, err := kv.Value.Float()
			if err != nil {
				return nil, fieldErrorf("field %q: %v", "h", err)
			}
			h = v

		case "np":
			if np != sentinelInt {
				return nil, fieldErrorf("duplicate field %q", "np")
			}
			v, err := kv.Value.Int()
			if err != nil {
				return nil, fieldErrorf("field %q: %v", "np", err)
			}
			np = v

		case "nc":
			if nc != sentinelInt {
				return nil, fieldErrorf("duplicate field %q", "nc")
			}
			v, err := kv.Value.Int()
			if err != nil {
				return nil, fieldErrorf("field %q: %v", "nc", err)
			}
			nc = v

		case "p":
			if np == sentinelInt {
				return nil, fieldErrorf("field %q appears before %q", "p", "np")
			}
			if havePoints {
				return nil, fieldErrorf("duplicate field %q", "p")
			}
			pts, err := parsePoints(kv.Value, np)
			if err != nil {
				return nil, err
			}
			points = pts
			havePoints = true

		case "t":
			if np == sentinelInt {
				return nil, fieldErrorf("field %q appears before %q", "t", "np")
			}
			if haveTags {
				return nil, fieldErrorf("duplicate field %q", "t")
			}
			ts, err := parseTags(kv.Value, np)
			if err != nil {
				return nil, err
			}
			tags = ts
			haveTags = true

		case "c":
			if nc == sentinelInt {
				return nil, fieldErrorf("field %q appears before %q", "c", "nc")
			}
			if haveContourEnds {
				return nil, fieldErrorf("duplicate field %q", "c")
			}
			cs, err := parseContourEnds(kv.Value, nc)
			if err != nil {
				return nil, err
			}
			contourEnds = cs
			haveContourEnds = true

		default:
			// unknown keys are ignored
		}
	}

	if id == sentinelInt || w == sentinelFloat || h == sentinelFloat || np == sentinelInt || nc == sentinelInt {
		return nil, fieldErrorf("missing required field(s)")
	}
	if np > 0 && !havePoints {
		return nil, fieldErrorf("missing field %q", "p")
	}
	if np > 0 && !haveTags {
		return nil, fieldErrorf("missing field %q", "t")
	}
	if nc > 0 && !haveContourEnds {
		return nil, fieldErrorf("missing field %q", "c")
	}

	rec := &GlyphRecord{
		ID:          int32(id),
		W:           float32(w),
		H:           float32(h),
		Points:      points,
		Tags:        tags,
		ContourEnds: contourEnds,
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func parsePoints(n text.Node, np int64) ([]Point, error) {
	if n.Kind != text.Array {
		return nil, fieldErrorf("field %q is not an array", "p")
	}
	if int64(len(n.Array)) != 2*np {
		return nil, fieldErrorf("field %q has %d elements, want %d", "p", len(n.Array), 2*np)
	}
	pts := make([]Point, np)
	for i := range pts {
		x, err := n.Array[2*i].Float()
		if err != nil {
			return nil, fieldErrorf("field %q[%d]: %v", "p", 2*i, err)
		}
		y, err := n.Array[2*i+1].Float()
		if err != nil {
			return nil, fieldErrorf("field %q[%d]: %v", "p", 2*i+1, err)
		}
		pts[i] = Point{X: float32(x), Y: float32(y)}
	}
	return pts, nil
}

func parseTags(n text.Node, np int64) ([]Tag, error) {
	if n.Kind != text.Array {
		return nil, fieldErrorf("field %q is not an array", "t")
	}
	if int64(len(n.Array)) != np {
		return nil, fieldErrorf("field %q has %d elements, want %d", "t", len(n.Array), np)
	}
	tags := make([]Tag, np)
	for i := range tags {
		v, err := n.Array[i].Int()
		if err != nil {
			return nil, fieldErrorf("field %q[%d]: %v", "t", i, err)
		}
		if v != 0 {
			tags[i] = On
		} else {
			tags[i] = Off
		}
	}
	return tags, nil
}

func parseContourEnds(n text.Node, nc int64) ([]int32, error) {
	if n.Kind != text.Array {
		return nil, fieldErrorf("field %q is not an array", "c")
	}
	if int64(len(n.Array)) != nc {
		return nil, fieldErrorf("field %q has %d elements, want %d", "c", len(n.Array), nc)
	}
	ends := make([]int32, nc)
	for i := range ends {
		v, err := n.Array[i].Int()
		if err != nil {
			return nil, fieldErrorf("field %q[%d]: %v", "c", i, err)
		}
		ends[i] = int32(v)
	}
	return ends, nil
}
