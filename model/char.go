package model

// Unresolved is the placeholder emitted for glyph references that no
// resolution tier could map to a character. It stays visible in the final
// transcript so conversion defects can be audited.
const Unresolved = '�'

// PositionedChar is one character recovered from a positioned span, with its
// page-local geometry. Created by the span decoder; immutable afterwards.
type PositionedChar struct {
	// Rune is the resolved Unicode scalar, or Unresolved when no mapping
	// tier produced a character.
	Rune rune

	// FontID is the document-local font identifier the glyph was drawn with.
	FontID string

	// FontSize is the rendered font size in page units.
	FontSize float64

	// Page is the 1-based page number the character appears on.
	Page int

	// BBox is the character's bounding box on the page.
	BBox BBox

	// Seq is the source-order index of the glyph reference within the
	// document, used only as a tie-break for exactly-overlapping positions.
	Seq int

	// Resolved reports whether Rune came from an actual mapping rather
	// than the placeholder.
	Resolved bool

	// LowConfidence marks characters recovered by the heuristic width
	// tier rather than an exact mapping table.
	LowConfidence bool

	// Degenerate marks characters whose source span had unusable geometry
	// (zero area or out-of-page position). They are excluded from structure
	// grouping but still counted in audit totals.
	Degenerate bool
}

// IsSpace reports whether the character is plain whitespace.
func (c PositionedChar) IsSpace() bool {
	switch c.Rune {
	case ' ', '\t', '\n', '\r', ' ':
		return true
	}
	return false
}
