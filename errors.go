package glyph

import "fmt"

// IngestError reports a structural or invariant violation discovered while
// turning a parsed value tree into a GlyphRecord or GlyphTable. Ingest
// errors are always fatal to the Load call that produced them: the whole
// table is abandoned rather than partially populated.
type IngestError string

func (e IngestError) Error() string { return "glyph: invalid glyph data: " + string(e) }

// ResourceError reports a failure in a collaborator outside the engine's
// control, such as a missing asset or a read failure. A builder refusing
// a vertex is reported as a BuildError instead.
type ResourceError string

func (e ResourceError) Error() string { return "glyph: resource error: " + string(e) }

// BuildError reports that a PolygonBuilder refused a vertex during
// tessellation. Unlike a degenerate glyph (too few points to form a
// contour, which is not an error), a BuildError means the collaborator
// itself failed partway through a build that should have succeeded.
type BuildError string

func (e BuildError) Error() string { return "glyph: build refused: " + string(e) }

func fieldErrorf(format string, args ...interface{}) IngestError {
	return IngestError(fmt.Sprintf(format, args...))
}
