package layout

import (
	"sort"

	"github.com/fmalina/PDFtranscript/model"
)

// ReadingOrderConfig holds configuration for reading order detection
type ReadingOrderConfig struct {
	// SpanningThreshold is the fraction of the content width a block must
	// cover to be treated as full-width rather than column content
	// (default: 0.7)
	SpanningThreshold float64
}

// DefaultReadingOrderConfig returns sensible default configuration
func DefaultReadingOrderConfig() ReadingOrderConfig {
	return ReadingOrderConfig{
		SpanningThreshold: 0.7,
	}
}

// ReadingOrderDetector sequences a page's blocks for reading
type ReadingOrderDetector struct {
	config ReadingOrderConfig
}

// NewReadingOrderDetector creates a detector with default configuration
func NewReadingOrderDetector() *ReadingOrderDetector {
	return &ReadingOrderDetector{config: DefaultReadingOrderConfig()}
}

// NewReadingOrderDetectorWithConfig creates a detector with custom configuration
func NewReadingOrderDetectorWithConfig(config ReadingOrderConfig) *ReadingOrderDetector {
	return &ReadingOrderDetector{config: config}
}

// Order sequences one page's blocks. Full-width blocks split the page into
// horizontal bands; within a band, columns read left to right and each
// column top to bottom. A single-column page degenerates to plain top to
// bottom order.
func (d *ReadingOrderDetector) Order(blocks []model.TextBlock) []model.TextBlock {
	if len(blocks) <= 1 {
		return blocks
	}

	contentWidth := contentWidth(blocks)

	var spanning, column []model.TextBlock
	for _, b := range blocks {
		if b.BBox.Width >= d.config.SpanningThreshold*contentWidth {
			spanning = append(spanning, b)
		} else {
			column = append(column, b)
		}
	}
	sort.SliceStable(spanning, func(i, j int) bool {
		return spanning[i].BBox.Top() < spanning[j].BBox.Top()
	})

	// Band n holds the column content between spanning block n-1 and n.
	bands := make([][]model.TextBlock, len(spanning)+1)
	for _, b := range column {
		n := 0
		for _, s := range spanning {
			if s.BBox.Top() <= b.BBox.Top() {
				n++
			}
		}
		bands[n] = append(bands[n], b)
	}

	ordered := make([]model.TextBlock, 0, len(blocks))
	for i, band := range bands {
		ordered = append(ordered, orderColumns(band)...)
		if i < len(spanning) {
			ordered = append(ordered, spanning[i])
		}
	}
	return ordered
}

// orderColumns clusters blocks into columns by horizontal overlap, then
// reads columns left to right, each top to bottom.
func orderColumns(blocks []model.TextBlock) []model.TextBlock {
	if len(blocks) <= 1 {
		return blocks
	}

	type column struct {
		left, right float64
		blocks      []model.TextBlock
	}

	sorted := make([]model.TextBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})

	var columns []*column
	for _, b := range sorted {
		var home *column
		for _, col := range columns {
			if b.BBox.Left() < col.right && b.BBox.Right() > col.left {
				home = col
				break
			}
		}
		if home == nil {
			home = &column{left: b.BBox.Left(), right: b.BBox.Right()}
			columns = append(columns, home)
		} else {
			if b.BBox.Left() < home.left {
				home.left = b.BBox.Left()
			}
			if b.BBox.Right() > home.right {
				home.right = b.BBox.Right()
			}
		}
		home.blocks = append(home.blocks, b)
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].left < columns[j].left
	})

	var ordered []model.TextBlock
	for _, col := range columns {
		sort.SliceStable(col.blocks, func(i, j int) bool {
			ti, tj := col.blocks[i].BBox.Top(), col.blocks[j].BBox.Top()
			if ti != tj {
				return ti < tj
			}
			return col.blocks[i].BBox.Left() < col.blocks[j].BBox.Left()
		})
		ordered = append(ordered, col.blocks...)
	}
	return ordered
}

func contentWidth(blocks []model.TextBlock) float64 {
	left := blocks[0].BBox.Left()
	right := blocks[0].BBox.Right()
	for _, b := range blocks[1:] {
		if b.BBox.Left() < left {
			left = b.BBox.Left()
		}
		if b.BBox.Right() > right {
			right = b.BBox.Right()
		}
	}
	if right <= left {
		return 1
	}
	return right - left
}
