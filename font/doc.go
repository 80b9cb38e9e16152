// Package font recovers Unicode text from the embedded font subsets
// referenced by the renderer's positioned-span markup.
//
// Subset fonts produced by a pixel-faithful renderer frequently carry glyph
// references that do not correspond to any character-encoding standard: the
// original encoding is stripped and unmapped glyphs are parked in the
// Private Use Area. This package reads each subset's internal tables and
// resolves glyph references back to real characters.
//
// # Font Tables
//
// [LoadTable] parses one embedded font binary and exposes its internal
// mappings:
//
//	table, err := font.LoadTable("ff1", data)
//
// A malformed binary yields an encoding-opaque table rather than a failure;
// every lookup against it reports unresolved.
//
// # Resolution
//
// The [Resolver] merges the available mapping sources with a fixed
// precedence:
//
//  1. the subset's own character map, when it maps the glyph to a real
//     (non Private Use Area) codepoint
//  2. the glyph's PostScript name translated via the Adobe Glyph List
//  3. a width-signature match against Standard 14 reference metrics
//     (low confidence)
//  4. the unresolved placeholder
//
// Results are memoized per (font, glyph) pair, so resolution is
// deterministic within one conversion.
//
// # Caching
//
// A [Cache] owns the loaded tables for one document conversion. It is an
// explicit per-conversion object, safe for concurrent readers, with
// synchronized single-writer population.
package font
