// Package glyph decomposes pre-extracted TrueType-style glyph contours into
// tessellated polygons suitable for a vector-graphics rasterizer.
//
// The core pipeline is: an asset store returns a structured-text blob, a
// parser turns it into a value tree, a GlyphLoader validates that tree into
// a GlyphTable of GlyphRecords, and a Tessellator walks a record's contours
// under FreeType decomposition rules to produce a vertex stream for an
// external polygon builder. EngineState ties the pipeline to a draw/event
// loop; see the glyph/platform package for a runnable adapter.
package glyph
