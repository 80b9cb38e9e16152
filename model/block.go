package model

import "strings"

// Role is the semantic role assigned to a text block.
type Role int

const (
	RoleParagraph Role = iota
	RoleHeading
)

// String returns a string representation of the role.
func (r Role) String() string {
	if r == RoleHeading {
		return "heading"
	}
	return "paragraph"
}

// Word is an unbroken run of characters on one line.
type Word struct {
	Chars []PositionedChar
	BBox  BBox
}

// Text returns the word's characters as a string.
func (w Word) Text() string {
	var sb strings.Builder
	for _, c := range w.Chars {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Line is an ordered sequence of words sharing a baseline.
type Line struct {
	Words []Word
	BBox  BBox

	// FontSize is the dominant font size of the line's characters.
	FontSize float64
}

// Text returns the line's words joined by single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text()
	}
	return strings.Join(parts, " ")
}

// CharCount returns the number of characters in the line, excluding the
// joining spaces synthesized between words.
func (l Line) CharCount() int {
	n := 0
	for _, w := range l.Words {
		n += len(w.Chars)
	}
	return n
}

// TextBlock is a paragraph-level grouping of lines with a reading-order
// rank and a semantic role. Built once per document by layout analysis and
// consumed once by the transcript assembler.
type TextBlock struct {
	Lines []Line
	BBox  BBox

	// Page is the 1-based page number the block belongs to.
	Page int

	// Rank is the block's position in document reading order (0-based).
	Rank int

	// Role distinguishes headings from body paragraphs.
	Role Role

	// HeadingLevel is 1..3 for heading blocks, rank-ordered by font size
	// (largest first). Zero for paragraphs.
	HeadingLevel int

	// FontSize is the dominant font size across the block's lines.
	FontSize float64
}

// Text returns the block's lines joined by single spaces, the way paragraph
// text flows when soft line breaks are removed.
func (b TextBlock) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, " ")
}

// CharCount returns the number of characters in the block, excluding
// synthesized joining spaces.
func (b TextBlock) CharCount() int {
	n := 0
	for _, l := range b.Lines {
		n += l.CharCount()
	}
	return n
}

// IsHeading reports whether the block was tagged as a heading.
func (b TextBlock) IsHeading() bool {
	return b.Role == RoleHeading
}
