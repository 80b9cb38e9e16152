package pdftranscript

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/fmalina/PDFtranscript/font"
	"github.com/fmalina/PDFtranscript/htmlout"
	"github.com/fmalina/PDFtranscript/layout"
	"github.com/fmalina/PDFtranscript/markup"
	"github.com/fmalina/PDFtranscript/model"
)

// Transcript runs the full conversion and returns the structured result.
// Warnings report recoverable problems: unreadable fonts, skipped pages,
// low overall confidence. The returned error means no transcript could be
// produced at all.
func (c *Converter) Transcript() (*model.Transcript, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	doc, err := c.parse()
	if err != nil {
		return nil, nil, err
	}
	return c.convert(doc)
}

// HTML runs the full conversion and renders the transcript as a semantic
// HTML document.
func (c *Converter) HTML() (string, []Warning, error) {
	var sb strings.Builder
	warnings, err := c.WriteHTML(&sb)
	if err != nil {
		return "", warnings, err
	}
	return sb.String(), warnings, nil
}

// WriteHTML runs the full conversion and writes semantic HTML to w.
func (c *Converter) WriteHTML(w io.Writer) ([]Warning, error) {
	tr, warnings, err := c.Transcript()
	if err != nil {
		return warnings, err
	}
	if err := htmlout.Render(w, tr, c.options.Title); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// FontInfo describes one embedded font and how much of it was readable.
type FontInfo struct {
	// Family is the document-local font family name.
	Family string

	// Glyphs is the number of glyph references the font's character map
	// covers.
	Glyphs int

	// NamedGlyphs is the number of glyphs carrying PostScript names.
	NamedGlyphs int

	// Opaque marks a font whose binary could not be parsed.
	Opaque bool

	// Error is the load failure, if any.
	Error string
}

// FontInfo loads every embedded font and reports its mapping coverage,
// sorted by family name. Useful for diagnosing documents that convert
// with many placeholders.
func (c *Converter) FontInfo() ([]FontInfo, error) {
	if c.err != nil {
		return nil, c.err
	}

	doc, err := c.parse()
	if err != nil {
		return nil, err
	}

	families := doc.Styles.FontFamilies()
	sort.Strings(families)

	infos := make([]FontInfo, 0, len(families))
	for _, family := range families {
		tbl, err := font.LoadTable(family, doc.Styles.Font(family))
		info := FontInfo{
			Family:      family,
			Glyphs:      tbl.Glyphs(),
			NamedGlyphs: tbl.NamedGlyphs(),
			Opaque:      tbl.Opaque,
		}
		if err != nil {
			info.Error = err.Error()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (c *Converter) parse() (*markup.Document, error) {
	if c.input != nil {
		return markup.Parse(c.input)
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no input specified")
	}
	return markup.Open(c.filename)
}

// convert runs the pipeline: decode pages concurrently, reconstruct
// structure per page, then order, clean and merge across the document.
func (c *Converter) convert(doc *markup.Document) (*model.Transcript, []Warning, error) {
	opts := c.options

	cache := font.NewCache()
	resolver := font.NewResolverWithConfig(font.ResolverConfig{
		WidthTolerance: opts.WidthTolerance,
	})
	decoder := markup.NewDecoder(doc.Styles, cache, resolver)

	lineDetector := layout.NewLineDetectorWithConfig(layout.LineConfig{
		LineTolerance:  opts.LineTolerance,
		SpaceThreshold: opts.SpaceThreshold,
	})
	blockDetector := layout.NewBlockDetectorWithConfig(layout.BlockConfig{
		ParagraphSpacing:  opts.ParagraphSpacing,
		FontSizeTolerance: layout.DefaultBlockConfig().FontSizeTolerance,
		IndentTolerance:   opts.IndentTolerance,
	})
	orderDetector := layout.NewReadingOrderDetectorWithConfig(layout.ReadingOrderConfig{
		SpanningThreshold: opts.SpanningThreshold,
	})

	// Pages are independent until the document-wide passes, so decode and
	// reconstruct them in parallel and rejoin in page order.
	pageBlocks := make([][]model.TextBlock, len(doc.Pages))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(doc.Pages) {
		workers = len(doc.Pages)
	}

	sem := make(chan struct{}, max(workers, 1))
	var wg sync.WaitGroup
	for i, page := range doc.Pages {
		wg.Add(1)
		go func(i int, page markup.Page) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			chars := decoder.DecodePage(page)
			lines := lineDetector.Detect(chars)
			blocks := blockDetector.Detect(lines, page.Number)
			pageBlocks[i] = orderDetector.Order(blocks)
		}(i, page)
	}
	wg.Wait()

	var blocks []model.TextBlock
	for _, pb := range pageBlocks {
		blocks = append(blocks, pb...)
	}

	if opts.RemoveHeaders {
		blocks = layout.RemoveRepeatedHeaders(blocks)
	}
	layout.NewHeadingDetectorWithConfig(layout.HeadingConfig{
		Ratio: opts.HeadingRatio,
	}).Detect(blocks)
	if opts.MergeParagraphs {
		blocks = layout.MergeContinuations(blocks)
	}
	for i := range blocks {
		blocks[i].Rank = i
	}

	stats := resolver.Stats()
	tr := &model.Transcript{
		Blocks:             blocks,
		GlyphCount:         stats.Total,
		UnresolvedCount:    stats.Unresolved,
		LowConfidenceCount: stats.LowConfidence,
		FailedPages:        doc.Failures,
	}
	tr.LowConfidence = tr.UnresolvedRatio() > opts.UnresolvedThreshold

	return tr, c.collectWarnings(tr, decoder), nil
}

func (c *Converter) collectWarnings(tr *model.Transcript, decoder *markup.Decoder) []Warning {
	var warnings []Warning

	fontErrs := decoder.FontErrors()
	sort.Slice(fontErrs, func(i, j int) bool {
		return fontErrs[i].Error() < fontErrs[j].Error()
	})
	for _, err := range fontErrs {
		warnings = append(warnings, Warning{
			Type:    WarnFontUnreadable,
			Message: err.Error(),
		})
	}

	for _, f := range tr.FailedPages {
		warnings = append(warnings, Warning{
			Type:    WarnPageFailed,
			Message: fmt.Sprintf("page %d skipped: %v", f.Page, f.Err),
		})
	}

	if tr.LowConfidence {
		warnings = append(warnings, Warning{
			Type: WarnLowConfidence,
			Message: fmt.Sprintf("%.1f%% of glyphs unresolved",
				tr.UnresolvedRatio()*100),
		})
	}

	return warnings
}
