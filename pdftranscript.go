// Package pdftranscript converts paginated HTML rendered from PDFs into
// semantic HTML transcripts.
//
// The input is the output of a PDF renderer: absolutely positioned text
// spans whose glyphs reference embedded subset fonts with arbitrary
// encodings. Conversion recovers the characters behind those glyphs,
// rebuilds words, lines, paragraphs and headings from the geometry, and
// emits a clean document with nothing but headings and paragraphs.
//
// The API is a fluent chain. Configuration methods return new Converter
// instances, so a configured converter is safe to share:
//
//	transcript, warnings, err := pdftranscript.Open("report.html").
//	    KeepHeaders().
//	    Transcript()
//	if len(warnings) > 0 {
//	    log.Println(pdftranscript.FormatWarnings(warnings))
//	}
//
// HTML is the other terminal operation:
//
//	html, warnings, err := pdftranscript.Open("report.html").HTML()
package pdftranscript

import "io"

// Converter provides a fluent interface for converting rendered documents.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	filename string
	input    io.Reader

	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// Open creates a converter for a rendered HTML file. The file is read when
// a terminal operation runs.
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  DefaultConvertOptions(),
	}
}

// FromReader creates a converter reading rendered HTML from r. The reader
// is consumed by the first terminal operation.
func FromReader(r io.Reader) *Converter {
	return &Converter{
		input:   r,
		options: DefaultConvertOptions(),
	}
}

// clone creates a copy of the Converter with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		input:    c.input,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// WithOptions replaces the full option set.
func (c *Converter) WithOptions(options ConvertOptions) *Converter {
	n := c.clone()
	n.options = options.clone()
	return n
}

// WithTitle sets the document title in the HTML output.
func (c *Converter) WithTitle(title string) *Converter {
	n := c.clone()
	n.options.Title = title
	return n
}

// SpaceThreshold sets the word-splitting gap as a fraction of font size.
func (c *Converter) SpaceThreshold(v float64) *Converter {
	n := c.clone()
	n.options.SpaceThreshold = v
	return n
}

// LineTolerance sets the same-line grouping distance as a fraction of
// character height.
func (c *Converter) LineTolerance(v float64) *Converter {
	n := c.clone()
	n.options.LineTolerance = v
	return n
}

// ParagraphSpacing sets the paragraph break gap as a multiple of line
// height.
func (c *Converter) ParagraphSpacing(v float64) *Converter {
	n := c.clone()
	n.options.ParagraphSpacing = v
	return n
}

// IndentTolerance sets the horizontal start drift that begins a new
// paragraph, as a multiple of the line font size.
func (c *Converter) IndentTolerance(v float64) *Converter {
	n := c.clone()
	n.options.IndentTolerance = v
	return n
}

// HeadingRatio sets the font size ratio above which blocks become headings.
func (c *Converter) HeadingRatio(v float64) *Converter {
	n := c.clone()
	n.options.HeadingRatio = v
	return n
}

// UnresolvedThreshold sets the unresolved glyph ratio that flags the whole
// transcript low confidence.
func (c *Converter) UnresolvedThreshold(v float64) *Converter {
	n := c.clone()
	n.options.UnresolvedThreshold = v
	return n
}

// KeepHeaders disables removal of running headers repeated across pages.
func (c *Converter) KeepHeaders() *Converter {
	n := c.clone()
	n.options.RemoveHeaders = false
	return n
}

// KeepPageSplits disables joining of paragraphs split by page breaks.
func (c *Converter) KeepPageSplits() *Converter {
	n := c.clone()
	n.options.MergeParagraphs = false
	return n
}

// Workers sets how many pages decode concurrently. Zero means one worker
// per CPU.
func (c *Converter) Workers(n int) *Converter {
	nc := c.clone()
	nc.options.Workers = n
	return nc
}
