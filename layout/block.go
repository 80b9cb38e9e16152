package layout

import (
	"math"

	"github.com/fmalina/PDFtranscript/model"
)

// BlockConfig holds configuration for block detection
type BlockConfig struct {
	// ParagraphSpacing is the vertical gap that breaks a block, as a
	// multiple of the running line height (default: 1.5)
	ParagraphSpacing float64

	// FontSizeTolerance is the relative size change that breaks a block
	// even without extra spacing (default: 0.15)
	FontSizeTolerance float64

	// IndentTolerance is the horizontal start drift that breaks a block,
	// as a multiple of the line font size (default: 1.0)
	IndentTolerance float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		ParagraphSpacing:  1.5,
		FontSizeTolerance: 0.15,
		IndentTolerance:   1.0,
	}
}

// BlockDetector groups lines into text blocks
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a block detector with default configuration
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{config: DefaultBlockConfig()}
}

// NewBlockDetectorWithConfig creates a block detector with custom configuration
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{config: config}
}

// Detect groups a page's lines into blocks. Consecutive lines stay
// together while they keep normal spacing, a similar font size, a
// consistent left edge, and overlapping horizontal extents. Lines must
// already be top to bottom.
func (d *BlockDetector) Detect(lines []model.Line, page int) []model.TextBlock {
	if len(lines) == 0 {
		return nil
	}

	var blocks []model.TextBlock
	current := newBlock(lines[0], page)

	for i := 1; i < len(lines); i++ {
		prev := lines[i-1]
		line := lines[i]

		if d.breaksBlock(prev, line) {
			blocks = append(blocks, finishBlock(current))
			current = newBlock(line, page)
			continue
		}
		current.Lines = append(current.Lines, line)
		current.BBox = current.BBox.Union(line.BBox)
	}
	blocks = append(blocks, finishBlock(current))
	return blocks
}

func (d *BlockDetector) breaksBlock(prev, line model.Line) bool {
	// Side-by-side lines belong to different columns, never one block.
	if line.BBox.HorizontalOverlap(prev.BBox) <= 0 {
		return true
	}

	gap := line.BBox.Top() - prev.BBox.Bottom()
	height := math.Max(prev.BBox.Height, line.BBox.Height)
	if height > 0 && gap > d.config.ParagraphSpacing*height {
		return true
	}

	// A shifted start at normal spacing is an indented new paragraph.
	ref := math.Max(prev.FontSize, line.FontSize)
	if ref > 0 && math.Abs(line.BBox.Left()-prev.BBox.Left()) > d.config.IndentTolerance*ref {
		return true
	}

	if prev.FontSize > 0 {
		change := math.Abs(line.FontSize-prev.FontSize) / prev.FontSize
		if change > d.config.FontSizeTolerance {
			return true
		}
	}
	return false
}

func newBlock(line model.Line, page int) model.TextBlock {
	return model.TextBlock{
		Lines: []model.Line{line},
		BBox:  line.BBox,
		Page:  page,
		Role:  model.RoleParagraph,
	}
}

func finishBlock(b model.TextBlock) model.TextBlock {
	b.FontSize = blockFontSize(b.Lines)
	return b
}

// blockFontSize is the dominant line size weighted by character count.
func blockFontSize(lines []model.Line) float64 {
	counts := make(map[float64]int)
	for _, l := range lines {
		counts[l.FontSize] += l.CharCount()
	}
	var best float64
	var bestCount int
	for size, count := range counts {
		if count > bestCount || (count == bestCount && size > best) {
			best = size
			bestCount = count
		}
	}
	return best
}
