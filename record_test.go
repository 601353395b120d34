package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square() *GlyphRecord {
	return &GlyphRecord{
		ID:          103,
		W:           8,
		H:           10,
		Points:      []Point{{0, 0}, {8, 0}, {8, 10}, {0, 10}},
		Tags:        []Tag{On, On, On, On},
		ContourEnds: []int32{3},
	}
}

func TestGlyphRecord_ValidateAccepts(t *testing.T) {
	g := square()
	assert.NoError(t, g.validate())
	assert.Equal(t, 4, g.NP())
	assert.Equal(t, 1, g.NC())
}

func TestGlyphRecord_ValidateRejectsNegativeID(t *testing.T) {
	g := square()
	g.ID = -1
	assert.Error(t, g.validate())
}

func TestGlyphRecord_ValidateRejectsNegativeSize(t *testing.T) {
	g := square()
	g.H = -1
	assert.Error(t, g.validate())
}

func TestGlyphRecord_ValidateRejectsMismatchedLengths(t *testing.T) {
	g := square()
	g.Tags = g.Tags[:3]
	assert.Error(t, g.validate())
}

func TestGlyphRecord_ValidateAcceptsEmptyGlyph(t *testing.T) {
	g := &GlyphRecord{ID: 32, W: 4, H: 10}
	assert.NoError(t, g.validate())
}

func TestGlyphRecord_ValidateRejectsPointsWithoutContours(t *testing.T) {
	g := square()
	g.ContourEnds = nil
	assert.Error(t, g.validate())
}

func TestGlyphRecord_ValidateRejectsNonIncreasingContourEnds(t *testing.T) {
	g := &GlyphRecord{
		ID:          1,
		Points:      make([]Point, 6),
		Tags:        make([]Tag, 6),
		ContourEnds: []int32{2, 2, 5},
	}
	assert.Error(t, g.validate())
}

func TestGlyphRecord_ValidateRejectsLastContourEndMismatch(t *testing.T) {
	g := square()
	g.ContourEnds = []int32{2}
	assert.Error(t, g.validate())
}

func TestMid(t *testing.T) {
	assert.Equal(t, Point{X: 1, Y: 1}, mid(Point{0, 0}, Point{2, 2}))
}
