// Package htmlout serializes a transcript as semantic HTML.
//
// Output is a plain document: headings h1 to h3, paragraphs, and nothing
// else. No styling, no positioning, no leftover page structure. A meta tag
// records the conversion confidence so downstream consumers can decide how
// much to trust the text.
package htmlout

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/fmalina/PDFtranscript/model"
)

// Render writes the transcript as an HTML document. Output for a given
// transcript is byte for byte identical across runs.
func Render(w io.Writer, tr *model.Transcript, title string) error {
	doc := buildDocument(tr, title)
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	// html.Render leaves no trailing newline.
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func buildDocument(tr *model.Transcript, title string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "html")
	doc.AppendChild(root)

	root.AppendChild(buildHead(tr, title))
	root.AppendChild(buildBody(tr))
	return doc
}

func buildHead(tr *model.Transcript, title string) *html.Node {
	head := element(atom.Head, "head")

	charset := element(atom.Meta, "meta")
	charset.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(charset)

	if title == "" {
		title = firstHeading(tr)
	}
	titleNode := element(atom.Title, "title")
	titleNode.AppendChild(textNode(title))
	head.AppendChild(titleNode)

	confidence := element(atom.Meta, "meta")
	confidence.Attr = []html.Attribute{
		{Key: "name", Val: "confidence"},
		{Key: "content", Val: formatConfidence(tr)},
	}
	head.AppendChild(confidence)

	return head
}

func buildBody(tr *model.Transcript) *html.Node {
	body := element(atom.Body, "body")
	for _, block := range tr.Blocks {
		text := block.Text()
		if text == "" {
			continue
		}
		node := element(blockAtom(block), blockTag(block))
		node.AppendChild(textNode(text))
		body.AppendChild(node)
	}
	return body
}

func blockTag(b model.TextBlock) string {
	if b.IsHeading() {
		switch b.HeadingLevel {
		case 1:
			return "h1"
		case 2:
			return "h2"
		default:
			return "h3"
		}
	}
	return "p"
}

func blockAtom(b model.TextBlock) atom.Atom {
	if b.IsHeading() {
		switch b.HeadingLevel {
		case 1:
			return atom.H1
		case 2:
			return atom.H2
		default:
			return atom.H3
		}
	}
	return atom.P
}

// firstHeading falls back to the opening heading so untitled documents
// still get a usable title.
func firstHeading(tr *model.Transcript) string {
	for _, b := range tr.Blocks {
		if b.IsHeading() {
			return b.Text()
		}
	}
	return ""
}

// formatConfidence is the resolved fraction of all glyphs, rounded to four
// places so noise in huge documents does not churn the output.
func formatConfidence(tr *model.Transcript) string {
	return strconv.FormatFloat(1-tr.UnresolvedRatio(), 'f', 4, 64)
}

func element(a atom.Atom, tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag}
}

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}
