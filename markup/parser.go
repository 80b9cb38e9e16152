package markup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/fmalina/PDFtranscript/font"
	"github.com/fmalina/PDFtranscript/model"
)

// RunItem is a stretch of glyphs inside a text run, optionally preceded by a
// horizontal displacement from a spacing span.
type RunItem struct {
	Shift  float64
	Glyphs []font.GlyphRef
}

// TextRun is one absolutely positioned text element. Coordinates are the
// renderer's: left and bottom offsets from the page's bottom-left corner,
// in pixels.
type TextRun struct {
	FontID   string
	FontSize float64
	Left     float64
	Bottom   float64
	Height   float64
	Width    float64
	Items    []RunItem
}

// Page holds the runs of one rendered page.
type Page struct {
	Number int
	Width  float64
	Height float64
	Runs   []TextRun
}

// Document is the parsed form of a rendered file: the stylesheet's class
// tables plus the pages that could be read. Pages whose geometry could not
// be recovered are listed in Failures and absent from Pages.
type Document struct {
	Styles   *Stylesheet
	Pages    []Page
	Failures []model.PageFailure
}

// Open parses a rendered HTML file. Fonts referenced by url() paths are
// read relative to the file's directory.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	doc.Styles.LoadFontFiles(filepath.Dir(filename))
	return doc, nil
}

// Parse reads a rendered document from r. The HTML parser itself never
// fails on malformed input, so an error here means the document has no
// pages at all.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &Document{Styles: NewStylesheet()}

	// Style blocks first: page geometry depends on the class tables.
	collectStyles(root, doc.Styles)
	collectPages(root, doc)

	if len(doc.Pages) == 0 && len(doc.Failures) == 0 {
		return nil, fmt.Errorf("no pages found in document")
	}
	return doc, nil
}

func collectStyles(n *html.Node, s *Stylesheet) {
	if n.Type == html.ElementNode && n.Data == "style" {
		var css strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				css.WriteString(c.Data)
			}
		}
		s.Parse(css.String())
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyles(c, s)
	}
}

func collectPages(n *html.Node, doc *Document) {
	if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "pf") {
		num := len(doc.Pages) + len(doc.Failures) + 1
		page, err := parsePage(n, doc.Styles, num)
		if err != nil {
			doc.Failures = append(doc.Failures, model.PageFailure{Page: num, Err: err})
		} else {
			doc.Pages = append(doc.Pages, page)
		}
		return // pages do not nest
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectPages(c, doc)
	}
}

func parsePage(n *html.Node, s *Stylesheet, num int) (Page, error) {
	page := Page{Number: num}

	for _, class := range classes(n) {
		if v, ok := s.Width(class); ok {
			page.Width = v
		}
		if v, ok := s.Height(class); ok {
			page.Height = v
		}
	}
	if page.Width <= 0 || page.Height <= 0 {
		return Page{}, fmt.Errorf("page %d: no usable dimensions", num)
	}

	collectRuns(n, s, &page, 0, 0)
	return page, nil
}

// collectRuns descends through the page, accumulating clip box offsets.
// Text runs inside a clip box are positioned relative to the box.
func collectRuns(n *html.Node, s *Stylesheet, page *Page, offX, offY float64) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "div" {
			continue
		}
		switch {
		case hasClass(c, "t"):
			if run, ok := parseRun(c, s, offX, offY); ok {
				page.Runs = append(page.Runs, run)
			}
		case hasClass(c, "c"):
			x, y := offX, offY
			for _, class := range classes(c) {
				if v, ok := s.Left(class); ok {
					x += v
				}
				if v, ok := s.Bottom(class); ok {
					y += v
				}
			}
			collectRuns(c, s, page, x, y)
		default:
			collectRuns(c, s, page, offX, offY)
		}
	}
}

// parseRun reads one text element. Elements missing position or font
// classes are dropped; the renderer always emits them, so their absence
// means the markup was hand-damaged.
func parseRun(n *html.Node, s *Stylesheet, offX, offY float64) (TextRun, bool) {
	run := TextRun{Left: offX, Bottom: offY}
	var haveX, haveY bool

	for _, class := range classes(n) {
		switch {
		case strings.HasPrefix(class, "ff"):
			run.FontID = class
		case strings.HasPrefix(class, "fs"):
			if v, ok := s.FontSize(class); ok {
				run.FontSize = v
			}
		case strings.HasPrefix(class, "x"):
			if v, ok := s.Left(class); ok {
				run.Left += v
				haveX = true
			}
		case strings.HasPrefix(class, "y"):
			if v, ok := s.Bottom(class); ok {
				run.Bottom += v
				haveY = true
			}
		case strings.HasPrefix(class, "h"):
			if v, ok := s.Height(class); ok {
				run.Height = v
			}
		case strings.HasPrefix(class, "w"):
			if v, ok := s.Width(class); ok {
				run.Width = v
			}
		}
	}
	if !haveX || !haveY || run.FontID == "" {
		return TextRun{}, false
	}

	collectItems(n, s, &run)
	if len(run.Items) == 0 {
		return TextRun{}, false
	}
	return run, true
}

func collectItems(n *html.Node, s *Stylesheet, run *TextRun) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			appendGlyphs(run, c.Data)
		case html.ElementNode:
			if c.Data == "span" && hasClass(c, "_") {
				shift := 0.0
				for _, class := range classes(c) {
					if v, ok := s.Shift(class); ok {
						shift = v
					}
				}
				// The span's own space character is a visual filler,
				// not a glyph; the shift replaces it.
				run.Items = append(run.Items, RunItem{Shift: shift})
				continue
			}
			collectItems(c, s, run)
		}
	}
}

func appendGlyphs(run *TextRun, text string) {
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if len(run.Items) == 0 {
			run.Items = append(run.Items, RunItem{})
		}
		last := &run.Items[len(run.Items)-1]
		last.Glyphs = append(last.Glyphs, font.GlyphRef(r))
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func classes(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}
