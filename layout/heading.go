package layout

import (
	"sort"

	"github.com/fmalina/PDFtranscript/model"
)

// HeadingConfig holds configuration for heading detection
type HeadingConfig struct {
	// Ratio is how much larger than the body size a block must be to
	// count as a heading (default: 1.15)
	Ratio float64
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		Ratio: 1.15,
	}
}

// HeadingDetector ranks oversized blocks into heading levels
type HeadingDetector struct {
	config HeadingConfig
}

// NewHeadingDetector creates a detector with default configuration
func NewHeadingDetector() *HeadingDetector {
	return &HeadingDetector{config: DefaultHeadingConfig()}
}

// NewHeadingDetectorWithConfig creates a detector with custom configuration
func NewHeadingDetectorWithConfig(config HeadingConfig) *HeadingDetector {
	return &HeadingDetector{config: config}
}

// Detect marks heading blocks in place. The body size is the document's
// dominant font size by character count; the distinct sizes above it map
// to levels one to three, largest first. Sizes ranked past three stay
// paragraphs, as do documents too small to establish a body size.
func (d *HeadingDetector) Detect(blocks []model.TextBlock) {
	body := bodyFontSize(blocks)
	if body <= 0 {
		return
	}

	levelOf := make(map[float64]int)
	var sizes []float64
	seen := make(map[float64]bool)
	for _, b := range blocks {
		if b.FontSize >= d.config.Ratio*body && !seen[b.FontSize] {
			seen[b.FontSize] = true
			sizes = append(sizes, b.FontSize)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	for i, size := range sizes {
		if i < 3 {
			levelOf[size] = i + 1
		}
	}

	for i := range blocks {
		if level, ok := levelOf[blocks[i].FontSize]; ok {
			blocks[i].Role = model.RoleHeading
			blocks[i].HeadingLevel = level
		}
	}
}

// bodyFontSize is the dominant size across the document, weighted by
// character count so a big title cannot outvote the running text.
func bodyFontSize(blocks []model.TextBlock) float64 {
	counts := make(map[float64]int)
	for _, b := range blocks {
		counts[b.FontSize] += b.CharCount()
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
