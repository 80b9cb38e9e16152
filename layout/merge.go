package layout

import (
	"math"
	"strings"

	"github.com/fmalina/PDFtranscript/model"
)

// MergeContinuations joins paragraphs split by page breaks. A block merges
// into its predecessor when the predecessor closed the previous page
// mid-sentence and the block opens the next one in the same body style.
// Headings never merge. Blocks must be in reading order.
func MergeContinuations(blocks []model.TextBlock) []model.TextBlock {
	if len(blocks) == 0 {
		return blocks
	}

	merged := make([]model.TextBlock, 0, len(blocks))
	merged = append(merged, blocks[0])

	for _, b := range blocks[1:] {
		prev := &merged[len(merged)-1]
		if continues(*prev, b) {
			prev.Lines = append(prev.Lines, b.Lines...)
			// The merged block now ends on the later page, so the next
			// block on that page is an ordinary neighbor.
			prev.Page = b.Page
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

func continues(prev, next model.TextBlock) bool {
	if next.Page != prev.Page+1 {
		return false
	}
	if prev.Role != model.RoleParagraph || next.Role != model.RoleParagraph {
		return false
	}
	if math.Abs(prev.FontSize-next.FontSize) > 0.1 {
		return false
	}
	return !endsSentence(prev.Text())
}

func endsSentence(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	switch text[len(text)-1] {
	case '.', '!', '?', ':', ';':
		return true
	}
	// Closing quotes after a full stop still end the sentence.
	if strings.HasSuffix(text, ".”") || strings.HasSuffix(text, ".’") || strings.HasSuffix(text, `."`) {
		return true
	}
	return false
}
