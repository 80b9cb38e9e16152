package markup

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Stylesheet holds the class tables recovered from the document's CSS.
// Class names are stored verbatim; the hex suffix convention is an encoding
// detail the tables do not need to understand.
type Stylesheet struct {
	left     map[string]float64
	bottom   map[string]float64
	height   map[string]float64
	width    map[string]float64
	fontSize map[string]float64
	shift    map[string]float64

	fonts    map[string][]byte
	fontRefs map[string]string
}

// NewStylesheet returns an empty stylesheet. Parse feeds it one or more
// style blocks.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{
		left:     make(map[string]float64),
		bottom:   make(map[string]float64),
		height:   make(map[string]float64),
		width:    make(map[string]float64),
		fontSize: make(map[string]float64),
		shift:    make(map[string]float64),
		fonts:    make(map[string][]byte),
		fontRefs: make(map[string]string),
	}
}

// Parse scans one CSS block and fills the class tables. Rules it does not
// recognize are skipped; the renderer emits plenty of styling that has no
// bearing on geometry.
func (s *Stylesheet) Parse(css string) {
	for _, rule := range splitRules(css) {
		sel := strings.TrimSpace(rule.selector)
		switch {
		case sel == "@font-face":
			s.parseFontFace(rule.body)
		case strings.HasPrefix(sel, "@"):
			// @media and friends wrap nested rules.
			s.Parse(rule.body)
		case strings.HasPrefix(sel, "."):
			s.parseClassRule(sel[1:], rule.body)
		}
	}
}

// Left returns the left offset for a class like "x1c".
func (s *Stylesheet) Left(class string) (float64, bool) {
	v, ok := s.left[class]
	return v, ok
}

// Bottom returns the bottom offset for a class like "y8".
func (s *Stylesheet) Bottom(class string) (float64, bool) {
	v, ok := s.bottom[class]
	return v, ok
}

// Height returns the height for a class like "h3".
func (s *Stylesheet) Height(class string) (float64, bool) {
	v, ok := s.height[class]
	return v, ok
}

// Width returns the width for a class like "w0".
func (s *Stylesheet) Width(class string) (float64, bool) {
	v, ok := s.width[class]
	return v, ok
}

// FontSize returns the size for a class like "fs2".
func (s *Stylesheet) FontSize(class string) (float64, bool) {
	v, ok := s.fontSize[class]
	return v, ok
}

// Shift returns the horizontal displacement of a spacing class like "_4".
// Negative displacements come from negative margins.
func (s *Stylesheet) Shift(class string) (float64, bool) {
	v, ok := s.shift[class]
	return v, ok
}

// Font returns the embedded binary for a font family, or nil when the
// family was not embedded.
func (s *Stylesheet) Font(family string) []byte {
	return s.fonts[family]
}

// FontFamilies lists the families the document declared, embedded or
// referenced by file.
func (s *Stylesheet) FontFamilies() []string {
	out := make([]string, 0, len(s.fonts)+len(s.fontRefs))
	for f := range s.fonts {
		out = append(out, f)
	}
	for f := range s.fontRefs {
		if _, embedded := s.fonts[f]; !embedded {
			out = append(out, f)
		}
	}
	return out
}

// LoadFontFiles reads fonts referenced by url() paths relative to dir.
// Families already carrying inline data keep it; an unreadable file
// leaves its family without a binary, which the decoder reports.
func (s *Stylesheet) LoadFontFiles(dir string) {
	for family, ref := range s.fontRefs {
		if s.fonts[family] != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
		if err != nil {
			continue
		}
		s.fonts[family] = data
	}
}

func (s *Stylesheet) parseClassRule(class, body string) {
	decls := parseDeclarations(body)
	switch {
	case strings.HasPrefix(class, "x"):
		if v, ok := pxValue(decls["left"]); ok {
			s.left[class] = v
		}
	case strings.HasPrefix(class, "y"):
		if v, ok := pxValue(decls["bottom"]); ok {
			s.bottom[class] = v
		}
	case strings.HasPrefix(class, "h"):
		if v, ok := pxValue(decls["height"]); ok {
			s.height[class] = v
		}
	case strings.HasPrefix(class, "w"):
		if v, ok := pxValue(decls["width"]); ok {
			s.width[class] = v
		}
	case strings.HasPrefix(class, "fs"):
		if v, ok := pxValue(decls["font-size"]); ok {
			s.fontSize[class] = v
		}
	case strings.HasPrefix(class, "_"):
		if v, ok := pxValue(decls["width"]); ok {
			s.shift[class] = v
		} else if v, ok := pxValue(decls["margin-left"]); ok {
			s.shift[class] = v
		}
	}
}

func (s *Stylesheet) parseFontFace(body string) {
	decls := parseDeclarations(body)
	family := strings.Trim(decls["font-family"], `"'`)
	if family == "" {
		return
	}
	data, ref := decodeFontSrc(decls["src"])
	switch {
	case data != nil:
		s.fonts[family] = data
	case ref != "":
		s.fontRefs[family] = ref
	}
}

// decodeFontSrc extracts the binary from a src declaration carrying a
// base64 data URI, or the relative path of a file reference. Remote
// urls yield neither.
func decodeFontSrc(src string) ([]byte, string) {
	start := strings.Index(src, "url(")
	if start < 0 {
		return nil, ""
	}
	rest := src[start+4:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return nil, ""
	}
	uri := strings.Trim(strings.TrimSpace(rest[:end]), `"'`)
	if strings.HasPrefix(uri, "data:") {
		const marker = ";base64,"
		i := strings.Index(uri, marker)
		if i < 0 {
			return nil, ""
		}
		data, err := base64.StdEncoding.DecodeString(uri[i+len(marker):])
		if err != nil {
			return nil, ""
		}
		return data, ""
	}
	if uri == "" || strings.Contains(uri, "://") {
		return nil, ""
	}
	return nil, uri
}

type cssRule struct {
	selector string
	body     string
}

// splitRules walks the block brace by brace. Nested bodies (from @media)
// stay intact for the caller to recurse into.
func splitRules(css string) []cssRule {
	var rules []cssRule
	depth := 0
	selStart := 0
	bodyStart := 0
	for i := 0; i < len(css); i++ {
		switch css[i] {
		case '{':
			if depth == 0 {
				bodyStart = i + 1
			}
			depth++
		case '}':
			depth--
			if depth == 0 {
				rules = append(rules, cssRule{
					selector: css[selStart:bodyStart-1],
					body:     css[bodyStart:i],
				})
				selStart = i + 1
			}
			if depth < 0 {
				depth = 0
				selStart = i + 1
			}
		}
	}
	return rules
}

// parseDeclarations splits "prop:value;prop:value" into a map. Values keep
// their internal punctuation so data URIs survive.
func parseDeclarations(body string) map[string]string {
	decls := make(map[string]string)
	for _, part := range splitDeclarations(body) {
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:colon]))
		val := strings.TrimSpace(part[colon+1:])
		if _, exists := decls[prop]; !exists {
			decls[prop] = val
		}
	}
	return decls
}

// splitDeclarations splits on semicolons outside parentheses, since base64
// data URIs contain semicolons of their own.
func splitDeclarations(body string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	if start < len(body) {
		parts = append(parts, body[start:])
	}
	return parts
}

// pxValue parses "12.5px" into 12.5. Unitless zero is accepted.
func pxValue(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
