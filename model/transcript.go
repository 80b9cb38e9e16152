package model

// PageFailure records a page whose markup could not be decoded. The page is
// skipped; the rest of the document still converts.
type PageFailure struct {
	Page int
	Err  error
}

// Transcript is the final, ordered result of one document conversion,
// together with the accounting metadata needed to audit its quality.
type Transcript struct {
	// Blocks in reading order.
	Blocks []TextBlock

	// GlyphCount is the total number of glyph references consumed from the
	// renderer's markup, including unresolved and degenerate ones.
	GlyphCount int

	// UnresolvedCount is the number of glyph references no mapping tier
	// could resolve.
	UnresolvedCount int

	// LowConfidenceCount is the number of characters recovered only by the
	// heuristic width tier.
	LowConfidenceCount int

	// LowConfidence is set when the unresolved ratio exceeded the
	// configured threshold. The transcript is still produced in full.
	LowConfidence bool

	// FailedPages lists pages whose markup was missing or unreadable.
	FailedPages []PageFailure
}

// UnresolvedRatio returns the fraction of glyph references that stayed
// unresolved, or 0 for an empty document.
func (t *Transcript) UnresolvedRatio() float64 {
	if t.GlyphCount == 0 {
		return 0
	}
	return float64(t.UnresolvedCount) / float64(t.GlyphCount)
}

// CharCount returns the total number of characters across all blocks,
// excluding synthesized joining spaces.
func (t *Transcript) CharCount() int {
	n := 0
	for _, b := range t.Blocks {
		n += b.CharCount()
	}
	return n
}

// Headings returns the blocks tagged as headings, in reading order.
func (t *Transcript) Headings() []TextBlock {
	var result []TextBlock
	for _, b := range t.Blocks {
		if b.IsHeading() {
			result = append(result, b)
		}
	}
	return result
}
