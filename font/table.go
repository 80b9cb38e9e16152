package font

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// GlyphRef is a glyph reference as it appears in the renderer's markup: the
// codepoint a positioned span uses to address a glyph in its subset font.
// It is a font-internal index, not guaranteed to be a real character.
type GlyphRef uint32

// Source identifies which mapping tier produced a resolved character.
type Source int

const (
	// SourceNone means no tier resolved the glyph.
	SourceNone Source = iota
	// SourceCmap is an exact hit in the font's internal Unicode map.
	SourceCmap
	// SourceGlyphName is a PostScript glyph name translated via the
	// Adobe Glyph List.
	SourceGlyphName
	// SourceWidth is a heuristic width-signature match (low confidence).
	SourceWidth
	// SourceLiteral is a glyph reference outside the Private Use Area,
	// kept as the character it already is.
	SourceLiteral
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceCmap:
		return "cmap"
	case SourceGlyphName:
		return "glyph-name"
	case SourceWidth:
		return "width"
	case SourceLiteral:
		return "literal"
	default:
		return "unresolved"
	}
}

// Table holds the parsed glyph-to-character mappings of one embedded font.
// Immutable once loaded.
type Table struct {
	// ID is the document-local font identifier (e.g. a font-family name).
	ID string

	// Opaque marks a font whose binary could not be parsed. Every lookup
	// against an opaque table is unresolved.
	Opaque bool

	gidOf     map[GlyphRef]gofont.GID
	runesOf   map[gofont.GID][]rune // non-PUA candidates, sorted ascending
	nameOf    map[gofont.GID]string
	advanceOf map[gofont.GID]float64 // normalized to 1000 units per em
}

// LoadTable parses an embedded font binary and builds its mapping tables.
// A malformed binary returns an opaque table together with the parse error;
// the caller records the error and conversion continues with that font
// degraded to unresolved placeholders.
func LoadTable(id string, data []byte) (*Table, error) {
	t := &Table{
		ID:        id,
		gidOf:     make(map[GlyphRef]gofont.GID),
		runesOf:   make(map[gofont.GID][]rune),
		nameOf:    make(map[gofont.GID]string),
		advanceOf: make(map[gofont.GID]float64),
	}

	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		t.Opaque = true
		return t, fmt.Errorf("font %s: parsing binary: %w", id, err)
	}

	upem := float64(face.Upem())
	if upem <= 0 {
		upem = 1000
	}

	// Walk the BMP once to invert the subset's cmap. The forward direction
	// (glyph ref -> GID) and the reverse candidates (GID -> real runes)
	// come from the same pass.
	for r := rune(0x20); r <= 0xFFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue // surrogates
		}
		gid, ok := face.NominalGlyph(r)
		if !ok {
			continue
		}
		t.gidOf[GlyphRef(r)] = gid
		if !isPrivateUse(r) {
			t.runesOf[gid] = append(t.runesOf[gid], r)
		}
		if _, seen := t.advanceOf[gid]; !seen {
			t.advanceOf[gid] = float64(face.HorizontalAdvance(gid)) * 1000 / upem
		}
	}

	for gid, runes := range t.runesOf {
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
		t.runesOf[gid] = runes
	}

	// Glyph names come from the post table when the subset kept one.
	if err := t.parsePostNames(data); err != nil {
		// Nameless subsets are common; resolution falls through to the
		// remaining tiers.
		_ = err
	}

	return t, nil
}

// Lookup resolves a glyph reference against the font's internal tables.
// Returns the character and the tier that produced it, or SourceNone when
// neither the character map nor the glyph names cover the reference. The
// width tier lives in the Resolver because it needs reference metrics.
func (t *Table) Lookup(g GlyphRef) (rune, Source) {
	if t.Opaque {
		return 0, SourceNone
	}

	gid, ok := t.gidOf[g]
	if !ok {
		return 0, SourceNone
	}

	// Tier 1: the cmap maps a real codepoint to the same glyph. The
	// smallest candidate keeps resolution deterministic.
	if candidates := t.runesOf[gid]; len(candidates) > 0 {
		return candidates[0], SourceCmap
	}

	// Tier 2: PostScript glyph name.
	if name, ok := t.nameOf[gid]; ok {
		if r, ok := runeForGlyphName(name); ok {
			return r, SourceGlyphName
		}
	}

	return 0, SourceNone
}

// GlyphName returns the PostScript name the font records for a glyph
// reference, or "" when the subset kept no names.
func (t *Table) GlyphName(g GlyphRef) string {
	if t.Opaque {
		return ""
	}
	gid, ok := t.gidOf[g]
	if !ok {
		return ""
	}
	return t.nameOf[gid]
}

// Advance returns the glyph's advance width in 1000-per-em units.
func (t *Table) Advance(g GlyphRef) (float64, bool) {
	if t.Opaque {
		return 0, false
	}
	gid, ok := t.gidOf[g]
	if !ok {
		return 0, false
	}
	adv, ok := t.advanceOf[gid]
	return adv, ok
}

// Glyphs returns how many glyph references the character map covers.
func (t *Table) Glyphs() int {
	return len(t.gidOf)
}

// NamedGlyphs returns how many glyphs carry PostScript names.
func (t *Table) NamedGlyphs() int {
	return len(t.nameOf)
}

// HasGlyph reports whether the font's character map covers the reference.
func (t *Table) HasGlyph(g GlyphRef) bool {
	if t.Opaque {
		return false
	}
	_, ok := t.gidOf[g]
	return ok
}

// isPrivateUse reports whether r falls in the BMP Private Use Area, where
// the renderer parks glyphs it could not map to real characters.
func isPrivateUse(r rune) bool {
	return r >= 0xE000 && r <= 0xF8FF
}

// parsePostNames reads glyph names from the font's post table (version 2.0).
// Subsets that stripped the table, or that carry version 3.0 (no names),
// simply leave the name map empty.
func (t *Table) parsePostNames(data []byte) error {
	loader, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("opening sfnt directory: %w", err)
	}

	postTag := opentype.NewTag('p', 'o', 's', 't')
	if !loader.HasTable(postTag) {
		return fmt.Errorf("no post table")
	}
	post, err := loader.RawTable(postTag)
	if err != nil {
		return fmt.Errorf("reading post table: %w", err)
	}

	if len(post) < 34 {
		return fmt.Errorf("post table too short")
	}
	version := binary.BigEndian.Uint32(post[0:4])
	if version != 0x00020000 {
		return nil // only format 2.0 stores names
	}

	r := bytes.NewReader(post[32:])
	var numGlyphs uint16
	if err := binary.Read(r, binary.BigEndian, &numGlyphs); err != nil {
		return fmt.Errorf("reading glyph count: %w", err)
	}

	indices := make([]uint16, numGlyphs)
	if err := binary.Read(r, binary.BigEndian, &indices); err != nil {
		return fmt.Errorf("reading name indices: %w", err)
	}

	// Pascal strings for custom names follow the index array, in order.
	var custom []string
	for r.Len() > 0 {
		n, err := r.ReadByte()
		if err != nil {
			break
		}
		buf := make([]byte, n)
		if _, err := r.Read(buf); err != nil {
			break
		}
		custom = append(custom, string(buf))
	}

	for gid, idx := range indices {
		var name string
		if idx < macGlyphCount {
			name = macGlyphNames[idx]
		} else if i := int(idx) - macGlyphCount; i < len(custom) {
			name = custom[i]
		}
		if name != "" && name != ".notdef" {
			t.nameOf[gofont.GID(gid)] = name
		}
	}

	return nil
}
