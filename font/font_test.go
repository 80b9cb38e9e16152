package font

import (
	"errors"
	"sync"
	"testing"
	"unicode/utf8"

	gofont "github.com/go-text/typesetting/font"
)

// newTestTable builds a table by hand so tests do not depend on real font
// binaries.
func newTestTable(id string) *Table {
	return &Table{
		ID:        id,
		gidOf:     make(map[GlyphRef]gofont.GID),
		runesOf:   make(map[gofont.GID][]rune),
		nameOf:    make(map[gofont.GID]string),
		advanceOf: make(map[gofont.GID]float64),
	}
}

func TestLookupCmapTier(t *testing.T) {
	tbl := newTestTable("f0")
	tbl.gidOf[0xE001] = 5
	tbl.runesOf[5] = []rune{'A'}

	r, src := tbl.Lookup(0xE001)
	if src != SourceCmap {
		t.Errorf("Expected cmap source, got %v", src)
	}
	if r != 'A' {
		t.Errorf("Expected 'A', got %q", r)
	}
}

func TestLookupPicksSmallestCandidate(t *testing.T) {
	// Two real codepoints share the glyph. The smaller one wins so that
	// repeated conversions agree.
	tbl := newTestTable("f0")
	tbl.gidOf[0x41] = 7
	tbl.runesOf[7] = []rune{'A', 'Α'}

	r, _ := tbl.Lookup(0x41)
	if r != 'A' {
		t.Errorf("Expected 'A', got %q", r)
	}
}

func TestLookupGlyphNameTier(t *testing.T) {
	tbl := newTestTable("f0")
	tbl.gidOf[0xE002] = 9
	tbl.nameOf[9] = "ampersand"

	r, src := tbl.Lookup(0xE002)
	if src != SourceGlyphName {
		t.Errorf("Expected glyph-name source, got %v", src)
	}
	if r != '&' {
		t.Errorf("Expected '&', got %q", r)
	}
}

func TestLookupUnknownGlyph(t *testing.T) {
	tbl := newTestTable("f0")
	if _, src := tbl.Lookup(0xE003); src != SourceNone {
		t.Errorf("Expected no source for unmapped glyph, got %v", src)
	}
}

func TestOpaqueTableResolvesNothing(t *testing.T) {
	tbl := newTestTable("broken")
	tbl.Opaque = true
	tbl.gidOf[0x41] = 1
	tbl.runesOf[1] = []rune{'A'}

	if _, src := tbl.Lookup(0x41); src != SourceNone {
		t.Errorf("Expected opaque table to leave glyphs unresolved, got %v", src)
	}
	if tbl.HasGlyph(0x41) {
		t.Error("Expected opaque table to report no glyphs")
	}
}

func TestLoadTableMalformed(t *testing.T) {
	tbl, err := LoadTable("bad", []byte("not a font"))
	if err == nil {
		t.Fatal("Expected error for malformed font data")
	}
	if tbl == nil {
		t.Fatal("Expected a table even on parse failure")
	}
	if !tbl.Opaque {
		t.Error("Expected malformed font to produce an opaque table")
	}
}

func TestGlyphNameTranslation(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		{"a", 'a', true},
		{"Z", 'Z', true},
		{"seven", '7', true},
		{"ampersand", '&', true},
		{"eacute", 'é', true},
		{"quotedblleft", '“', true},
		{"uni0041", 'A', true},
		{"uni20AC", '€', true},
		{"u1F600", '\U0001F600', true},
		{"fi", 'ﬁ', true},
		{"f_i", 'ﬁ', true},
		{"f_f_l", 'ﬄ', true},
		{"T_h", 'T', true}, // no presentation form, first component kept
		{"uniE001", 0, false}, // private use stays unresolved
		{"g12345", 0, false},
		{".notdef", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		r, ok := runeForGlyphName(tt.name)
		if ok != tt.ok {
			t.Errorf("runeForGlyphName(%q): expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if ok && r != tt.want {
			t.Errorf("runeForGlyphName(%q): expected %q, got %q", tt.name, tt.want, r)
		}
	}
}

func TestMatchWidthUnique(t *testing.T) {
	// 1015 is the Helvetica at sign and nothing else.
	r, ok := matchWidth(1015, 2.0)
	if !ok {
		t.Fatal("Expected a unique match for width 1015")
	}
	if r != '@' {
		t.Errorf("Expected '@', got %q", r)
	}
}

func TestMatchWidthAmbiguous(t *testing.T) {
	// 722 is shared by many capitals across the reference tables.
	if _, ok := matchWidth(722, 2.0); ok {
		t.Error("Expected ambiguous width to produce no match")
	}
}

func TestMatchWidthOutOfTolerance(t *testing.T) {
	if _, ok := matchWidth(1100, 2.0); ok {
		t.Error("Expected no match far from every reference width")
	}
}

func TestResolverFallsThroughToWidth(t *testing.T) {
	tbl := newTestTable("f0")
	tbl.gidOf[0xE004] = 3
	tbl.advanceOf[3] = 1015

	rv := NewResolver()
	res := rv.Resolve(tbl, 0xE004)
	if res.Source != SourceWidth {
		t.Fatalf("Expected width source, got %v", res.Source)
	}
	if res.Rune != '@' {
		t.Errorf("Expected '@', got %q", res.Rune)
	}
	if !res.LowConfidence {
		t.Error("Expected width match to be low confidence")
	}
}

func TestResolverPlaceholder(t *testing.T) {
	tbl := newTestTable("f0")
	tbl.gidOf[0xE005] = 4
	tbl.advanceOf[4] = 722 // ambiguous

	rv := NewResolver()
	res := rv.Resolve(tbl, 0xE005)
	if res.Ok() {
		t.Error("Expected unresolved outcome")
	}
	if res.Rune != utf8.RuneError {
		t.Errorf("Expected replacement character, got %q", res.Rune)
	}
}

func TestResolverKeepsLiteralCharacters(t *testing.T) {
	// An opaque font cannot vouch for anything, but a non-private-use
	// reference is already text.
	tbl := newTestTable("broken")
	tbl.Opaque = true

	rv := NewResolver()
	res := rv.Resolve(tbl, GlyphRef('k'))
	if res.Source != SourceLiteral {
		t.Fatalf("Expected literal source, got %v", res.Source)
	}
	if res.Rune != 'k' {
		t.Errorf("Expected 'k', got %q", res.Rune)
	}
	if res.LowConfidence {
		t.Error("Expected literal passthrough at full confidence")
	}
}

func TestResolverMemoIsStable(t *testing.T) {
	tbl := newTestTable("f0")
	tbl.gidOf[0x42] = 2
	tbl.runesOf[2] = []rune{'B'}

	rv := NewResolver()
	first := rv.Resolve(tbl, 0x42)
	second := rv.Resolve(tbl, 0x42)
	if first != second {
		t.Errorf("Expected identical outcomes, got %+v then %+v", first, second)
	}
}

func TestResolverStats(t *testing.T) {
	tbl := newTestTable("f0")
	tbl.gidOf[0x41] = 1
	tbl.runesOf[1] = []rune{'A'}
	tbl.gidOf[0xE006] = 6
	tbl.advanceOf[6] = 1015
	tbl.gidOf[0xE007] = 8

	rv := NewResolver()
	rv.Resolve(tbl, 0x41)
	rv.Resolve(tbl, 0x41) // memo hit still counts an occurrence
	rv.Resolve(tbl, 0xE006)
	rv.Resolve(tbl, 0xE007)

	stats := rv.Stats()
	if stats.Total != 4 {
		t.Errorf("Expected 4 total, got %d", stats.Total)
	}
	if stats.Unresolved != 1 {
		t.Errorf("Expected 1 unresolved, got %d", stats.Unresolved)
	}
	if stats.LowConfidence != 1 {
		t.Errorf("Expected 1 low confidence, got %d", stats.LowConfidence)
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	c := NewCache()
	calls := 0
	load := func() (*Table, error) {
		calls++
		return newTestTable("f0"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetOrLoad("f0", load); err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("Expected a single load, got %d", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 cached font, got %d", c.Len())
	}
}

func TestCacheKeepsFailedLoad(t *testing.T) {
	c := NewCache()
	calls := 0
	load := func() (*Table, error) {
		calls++
		tbl := newTestTable("bad")
		tbl.Opaque = true
		return tbl, errors.New("truncated binary")
	}

	for i := 0; i < 3; i++ {
		tbl, err := c.GetOrLoad("bad", load)
		if err == nil {
			t.Fatal("Expected cached error")
		}
		if tbl == nil || !tbl.Opaque {
			t.Fatal("Expected the opaque table back")
		}
	}
	if calls != 1 {
		t.Errorf("Expected a single load attempt, got %d", calls)
	}
}
