package layout

import (
	"strings"

	"github.com/fmalina/PDFtranscript/model"
)

// RemoveRepeatedHeaders drops page furniture: when the topmost block of two
// or more pages carries the same text after stripping digits, the repeats
// are running headers. The first occurrence stays so a real title on page
// one survives; later pages lose theirs. Blocks must already carry page
// numbers and geometry.
func RemoveRepeatedHeaders(blocks []model.TextBlock) []model.TextBlock {
	top := topmostPerPage(blocks)

	counts := make(map[string]int)
	for _, b := range top {
		if key := headerKey(b.Text()); key != "" {
			counts[key]++
		}
	}

	firstPage := 0
	for page := range top {
		if firstPage == 0 || page < firstPage {
			firstPage = page
		}
	}

	kept := make([]model.TextBlock, 0, len(blocks))
	for _, b := range blocks {
		t, isTop := top[b.Page]
		if isTop && sameBlock(t, b) && b.Page != firstPage {
			if counts[headerKey(b.Text())] >= 2 {
				continue
			}
		}
		kept = append(kept, b)
	}
	return kept
}

func topmostPerPage(blocks []model.TextBlock) map[int]model.TextBlock {
	top := make(map[int]model.TextBlock)
	for _, b := range blocks {
		cur, ok := top[b.Page]
		if !ok || b.BBox.Top() < cur.BBox.Top() {
			top[b.Page] = b
		}
	}
	return top
}

func sameBlock(a, b model.TextBlock) bool {
	return a.Page == b.Page && a.BBox == b.BBox && a.Text() == b.Text()
}

// headerKey normalizes header text so "Chapter 3" on one page matches
// "Chapter 4" on the next: digits vary with the page, the rest repeats.
func headerKey(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}
