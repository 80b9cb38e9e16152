package pdftranscript

import (
	"fmt"
	"strings"
)

// WarningType categorizes non-fatal conversion issues.
type WarningType int

const (
	// WarnFontUnreadable means an embedded font could not be parsed and
	// its glyphs degraded to placeholders or literal passthrough.
	WarnFontUnreadable WarningType = iota

	// WarnPageFailed means a page could not be read and was skipped.
	WarnPageFailed

	// WarnLowConfidence means too many glyphs stayed unresolved for the
	// transcript to be trusted without review.
	WarnLowConfidence
)

// String returns a string representation of the warning type.
func (t WarningType) String() string {
	switch t {
	case WarnFontUnreadable:
		return "font-unreadable"
	case WarnPageFailed:
		return "page-failed"
	case WarnLowConfidence:
		return "low-confidence"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue encountered during conversion.
// The transcript is still produced; warnings tell the caller where it may
// be imperfect.
type Warning struct {
	Type    WarningType
	Message string
}

// String returns the warning formatted for display.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Type, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
