package markup

import (
	"fmt"
	"sync"

	"github.com/fmalina/PDFtranscript/font"
	"github.com/fmalina/PDFtranscript/model"
)

// Decoder turns parsed pages into positioned characters. Glyph references
// go through the resolver, advances come from the font tables, and
// coordinates come out top-origin. Safe for concurrent page decoding.
type Decoder struct {
	styles   *Stylesheet
	cache    *font.Cache
	resolver *font.Resolver

	mu       sync.Mutex
	fontErrs map[string]error
}

// NewDecoder creates a decoder over the document's stylesheet. The cache
// and resolver are shared across all pages of one conversion.
func NewDecoder(styles *Stylesheet, cache *font.Cache, resolver *font.Resolver) *Decoder {
	return &Decoder{
		styles:   styles,
		cache:    cache,
		resolver: resolver,
		fontErrs: make(map[string]error),
	}
}

// DecodePage resolves every glyph on the page into a positioned character.
// Nothing is dropped: unresolvable glyphs come back as placeholder
// characters, and zero-sized or out-of-page text is flagged degenerate
// rather than skipped.
func (d *Decoder) DecodePage(p Page) []model.PositionedChar {
	var chars []model.PositionedChar
	seq := 0

	for _, run := range p.Runs {
		tbl := d.table(run.FontID)
		top := p.Height - run.Bottom - run.Height
		degenerate := run.FontSize <= 0 || run.Height <= 0
		x := run.Left

		fallback := 0.5 * run.FontSize
		if n := glyphCount(run); run.Width > 0 && n > 0 {
			fallback = run.Width / float64(n)
		}

		for _, item := range run.Items {
			x += item.Shift
			for _, g := range item.Glyphs {
				res := d.resolver.Resolve(tbl, g)
				w := d.glyphWidth(tbl, g, run.FontSize, fallback)

				// Geometry outside the page is a structural anomaly;
				// the character stays in the stream but out of grouping.
				offPage := x < 0 || top < 0 || x+w > p.Width || top+run.Height > p.Height

				chars = append(chars, model.PositionedChar{
					Rune:          res.Rune,
					FontID:        run.FontID,
					FontSize:      run.FontSize,
					Page:          p.Number,
					Seq:           seq,
					Resolved:      res.Ok(),
					LowConfidence: res.LowConfidence,
					Degenerate:    degenerate || offPage,
					BBox: model.BBox{
						X:      x,
						Y:      top,
						Width:  w,
						Height: run.Height,
					},
				})
				seq++
				x += w
			}
		}
	}

	return chars
}

// FontErrors returns one error per font that failed to load, in no
// particular order.
func (d *Decoder) FontErrors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	errs := make([]error, 0, len(d.fontErrs))
	for _, err := range d.fontErrs {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// table fetches the font table for a family, loading it on first use.
// A family with no embedded binary, or a broken one, degrades to an opaque
// table and the error is kept for reporting.
func (d *Decoder) table(fontID string) *font.Table {
	tbl, err := d.cache.GetOrLoad(fontID, func() (*font.Table, error) {
		data := d.styles.Font(fontID)
		if data == nil {
			t, _ := font.LoadTable(fontID, nil)
			return t, fmt.Errorf("font %s: not embedded", fontID)
		}
		return font.LoadTable(fontID, data)
	})
	if err != nil {
		d.mu.Lock()
		if _, seen := d.fontErrs[fontID]; !seen {
			d.fontErrs[fontID] = err
		}
		d.mu.Unlock()
	}
	return tbl
}

// glyphWidth is the horizontal step after placing a glyph. When the font
// gives no advance the step falls back to an even split of the run's
// declared width, or half an em for runs without one, which keeps later
// glyphs in roughly the right order even for opaque fonts.
func (d *Decoder) glyphWidth(tbl *font.Table, g font.GlyphRef, size, fallback float64) float64 {
	if adv, ok := tbl.Advance(g); ok {
		return adv / 1000 * size
	}
	return fallback
}

func glyphCount(run TextRun) int {
	n := 0
	for _, item := range run.Items {
		n += len(item.Glyphs)
	}
	return n
}
