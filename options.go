package pdftranscript

// ConvertOptions controls conversion behavior. The zero value is not
// usable; start from DefaultConvertOptions.
type ConvertOptions struct {
	// Title overrides the document title in the HTML output. When empty
	// the first heading is used.
	Title string

	// SpaceThreshold is the horizontal gap that splits words, as a
	// fraction of the font size.
	SpaceThreshold float64

	// LineTolerance is the vertical distance for grouping characters
	// into one line, as a fraction of character height.
	LineTolerance float64

	// ParagraphSpacing is the vertical gap that starts a new paragraph,
	// as a multiple of the line height.
	ParagraphSpacing float64

	// IndentTolerance is the horizontal start drift that starts a new
	// paragraph, as a multiple of the line font size.
	IndentTolerance float64

	// HeadingRatio is how much larger than the body size a block must
	// be to become a heading.
	HeadingRatio float64

	// SpanningThreshold is the fraction of the content width a block
	// must cover to be read as full-width rather than column content.
	SpanningThreshold float64

	// WidthTolerance is the advance-width distance for the glyph
	// identification fallback, in 1000ths of em.
	WidthTolerance float64

	// UnresolvedThreshold is the unresolved glyph ratio above which the
	// whole transcript is flagged low confidence.
	UnresolvedThreshold float64

	// RemoveHeaders drops running headers repeated across pages.
	RemoveHeaders bool

	// MergeParagraphs joins paragraphs split by page breaks.
	MergeParagraphs bool

	// Workers is the number of pages decoded concurrently. Zero means
	// one worker per CPU.
	Workers int
}

// DefaultConvertOptions returns sensible default options
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		SpaceThreshold:      0.25,
		LineTolerance:       0.5,
		ParagraphSpacing:    1.5,
		IndentTolerance:     1.0,
		HeadingRatio:        1.15,
		SpanningThreshold:   0.7,
		WidthTolerance:      2.0,
		UnresolvedThreshold: 0.1,
		RemoveHeaders:       true,
		MergeParagraphs:     true,
	}
}

// clone returns a copy of the options. ConvertOptions holds no reference
// types, so a value copy is a deep copy; the method keeps the call sites
// honest if that ever changes.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}
