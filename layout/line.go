package layout

import (
	"math"
	"sort"

	"github.com/fmalina/PDFtranscript/model"
)

// LineConfig holds configuration for line and word detection
type LineConfig struct {
	// LineTolerance is the vertical distance for grouping characters into
	// the same line, as a fraction of character height (default: 0.5)
	LineTolerance float64

	// SpaceThreshold is the horizontal gap that splits words, as a
	// fraction of the font size (default: 0.25)
	SpaceThreshold float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineTolerance:  0.5,
		SpaceThreshold: 0.25,
	}
}

// LineDetector groups positioned characters into lines and words
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{config: DefaultLineConfig()}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{config: config}
}

// Detect groups one page's characters into lines. Degenerate characters
// are ignored; they carry no usable geometry. Lines come back top to
// bottom, characters within a line left to right.
func (d *LineDetector) Detect(chars []model.PositionedChar) []model.Line {
	usable := make([]model.PositionedChar, 0, len(chars))
	for _, c := range chars {
		if !c.Degenerate {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	tolerance := d.tolerance(usable)

	// Sort by exact vertical position, keeping decode order for ties.
	// The tolerance only applies in the sequential grouping below, so a
	// chain of slowly drifting baselines cannot scramble the sort.
	sorted := make([]model.PositionedChar, len(usable))
	copy(sorted, usable)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y < sorted[j].BBox.Y // smaller Y is higher on the page
	})

	var groups [][]model.PositionedChar
	var current []model.PositionedChar

	for _, c := range sorted {
		if len(current) == 0 {
			current = append(current, c)
			continue
		}
		if math.Abs(c.BBox.Y-averageTop(current)) <= tolerance {
			current = append(current, c)
		} else {
			groups = append(groups, current)
			current = []model.PositionedChar{c}
		}
	}
	groups = append(groups, current)

	lines := make([]model.Line, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].BBox.X < group[j].BBox.X
		})
		lines = append(lines, d.buildLine(group))
	}
	return lines
}

// buildLine splits a left-to-right character group into words. Explicit
// spaces separate words and so do gaps wider than the space threshold.
func (d *LineDetector) buildLine(chars []model.PositionedChar) model.Line {
	var line model.Line
	var word model.Word

	flush := func() {
		if len(word.Chars) > 0 {
			line.Words = append(line.Words, word)
			word = model.Word{}
		}
	}

	for i, c := range chars {
		if c.IsSpace() {
			flush()
			continue
		}
		if i > 0 && len(word.Chars) > 0 {
			prev := word.Chars[len(word.Chars)-1]
			gap := c.BBox.X - prev.BBox.Right()
			if gap > d.config.SpaceThreshold*prev.FontSize {
				flush()
			}
		}
		if len(word.Chars) == 0 {
			word.BBox = c.BBox
		} else {
			word.BBox = word.BBox.Union(c.BBox)
		}
		word.Chars = append(word.Chars, c)
	}
	flush()

	for i, w := range line.Words {
		if i == 0 {
			line.BBox = w.BBox
		} else {
			line.BBox = line.BBox.Union(w.BBox)
		}
	}
	line.FontSize = dominantFontSize(chars)
	return line
}

// tolerance derives the same-line distance from the characters themselves,
// so documents with unusual line heights still group correctly.
func (d *LineDetector) tolerance(chars []model.PositionedChar) float64 {
	var sum float64
	var n int
	for _, c := range chars {
		if c.BBox.Height > 0 {
			sum += c.BBox.Height
			n++
		}
	}
	if n == 0 {
		return 1.0
	}
	return (sum / float64(n)) * d.config.LineTolerance
}

func averageTop(chars []model.PositionedChar) float64 {
	var sum float64
	for _, c := range chars {
		sum += c.BBox.Y
	}
	return sum / float64(len(chars))
}

// dominantFontSize picks the most common size in the group; ties go to the
// larger size so headings never get demoted by their punctuation.
func dominantFontSize(chars []model.PositionedChar) float64 {
	counts := make(map[float64]int)
	for _, c := range chars {
		counts[c.FontSize]++
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
