package font

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ResolverConfig holds configuration for glyph resolution
type ResolverConfig struct {
	// WidthTolerance is the maximum distance, in 1000ths of em, between a
	// glyph's advance and a reference width for the width tier to consider
	// the character a candidate.
	WidthTolerance float64
}

// DefaultResolverConfig returns the default resolver configuration
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		WidthTolerance: 2.0,
	}
}

// Resolved is the outcome of resolving one glyph reference.
type Resolved struct {
	Rune          rune
	Source        Source
	LowConfidence bool
}

// Ok reports whether any tier produced a character.
func (r Resolved) Ok() bool {
	return r.Source != SourceNone
}

// ResolverStats counts resolution outcomes across a conversion.
type ResolverStats struct {
	Total         int
	Unresolved    int
	LowConfidence int
}

// Resolver maps glyph references to characters, trying each tier in order:
// the font's own character map, PostScript glyph names, then reference width
// matching. Results are memoized per font and glyph, so a glyph resolves the
// same way every time it appears. Safe for concurrent use.
type Resolver struct {
	config ResolverConfig

	mu    sync.Mutex
	memo  map[memoKey]Resolved
	stats ResolverStats
}

type memoKey struct {
	fontID string
	glyph  GlyphRef
}

// NewResolver creates a resolver with default configuration
func NewResolver() *Resolver {
	return NewResolverWithConfig(DefaultResolverConfig())
}

// NewResolverWithConfig creates a resolver with custom configuration
func NewResolverWithConfig(config ResolverConfig) *Resolver {
	return &Resolver{
		config: config,
		memo:   make(map[memoKey]Resolved),
	}
}

// Resolve maps one glyph reference through the tier chain. Unresolvable
// glyphs yield the replacement character with SourceNone; the caller renders
// the placeholder rather than dropping the glyph.
func (rv *Resolver) Resolve(t *Table, g GlyphRef) Resolved {
	key := memoKey{fontID: t.ID, glyph: g}

	rv.mu.Lock()
	if res, ok := rv.memo[key]; ok {
		rv.count(res)
		rv.mu.Unlock()
		return res
	}
	rv.mu.Unlock()

	res := rv.resolve(t, g)

	rv.mu.Lock()
	rv.memo[key] = res
	rv.count(res)
	rv.mu.Unlock()

	return res
}

func (rv *Resolver) resolve(t *Table, g GlyphRef) Resolved {
	if r, src := t.Lookup(g); src != SourceNone {
		return Resolved{Rune: normalize(r), Source: src}
	}

	if adv, ok := t.Advance(g); ok {
		if r, ok := matchWidth(adv, rv.config.WidthTolerance); ok {
			return Resolved{Rune: normalize(r), Source: SourceWidth, LowConfidence: true}
		}
	}

	// A reference outside the Private Use Area is already a real
	// character. The renderer only parks unmapped glyphs in the PUA, so
	// when the font tables have nothing to say the codepoint itself is
	// the answer.
	if r := rune(g); !isPrivateUse(r) && unicode.IsGraphic(r) {
		return Resolved{Rune: normalize(r), Source: SourceLiteral}
	}

	return Resolved{Rune: utf8.RuneError, Source: SourceNone}
}

// count must be called with rv.mu held.
func (rv *Resolver) count(res Resolved) {
	rv.stats.Total++
	if res.Source == SourceNone {
		rv.stats.Unresolved++
	}
	if res.LowConfidence {
		rv.stats.LowConfidence++
	}
}

// Stats returns a snapshot of the resolution counters.
func (rv *Resolver) Stats() ResolverStats {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	return rv.stats
}

// normalize brings a resolved character to composed normal form so that the
// same text always serializes identically.
func normalize(r rune) rune {
	s := norm.NFC.String(string(r))
	out, _ := utf8.DecodeRuneInString(s)
	return out
}
