package font

import (
	"strconv"
	"strings"
)

// runeForGlyphName translates a PostScript glyph name to a character.
// Covers the Adobe Glyph List entries seen in practice plus the uniXXXX
// and uXXXX[XX] conventions used by subsetting tools.
func runeForGlyphName(name string) (rune, bool) {
	if r, ok := adobeGlyphList[name]; ok {
		return r, ok
	}

	// uni004A style: exactly four hex digits.
	if len(name) == 7 && name[:3] == "uni" {
		if v, err := strconv.ParseUint(name[3:], 16, 32); err == nil {
			r := rune(v)
			if !isPrivateUse(r) && (r < 0xD800 || r > 0xDFFF) {
				return r, true
			}
		}
	}

	// u1F600 style: four to six hex digits.
	if len(name) >= 5 && len(name) <= 7 && name[0] == 'u' {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil && v <= 0x10FFFF {
			r := rune(v)
			if !isPrivateUse(r) && (r < 0xD800 || r > 0xDFFF) {
				return r, true
			}
		}
	}

	// Ligature names like f_i carry several characters in one glyph. The
	// single-codepoint presentation form keeps the character count intact;
	// ligatures with no such form fall back to their first component.
	if i := strings.IndexByte(name, '_'); i > 0 {
		if r, ok := adobeGlyphList[strings.ReplaceAll(name, "_", "")]; ok {
			return r, true
		}
		if r, ok := runeForGlyphName(name[:i]); ok {
			return r, ok
		}
	}

	return 0, false
}

// adobeGlyphList maps the common subset of AGL names to characters.
// Single letters and digits are generated; everything else is listed.
var adobeGlyphList = buildGlyphList()

func buildGlyphList() map[string]rune {
	m := map[string]rune{
		"space":          ' ',
		"exclam":         '!',
		"quotedbl":       '"',
		"numbersign":     '#',
		"dollar":         '$',
		"percent":        '%',
		"ampersand":      '&',
		"quotesingle":    '\'',
		"parenleft":      '(',
		"parenright":     ')',
		"asterisk":       '*',
		"plus":           '+',
		"comma":          ',',
		"hyphen":         '-',
		"period":         '.',
		"slash":          '/',
		"colon":          ':',
		"semicolon":      ';',
		"less":           '<',
		"equal":          '=',
		"greater":        '>',
		"question":       '?',
		"at":             '@',
		"bracketleft":    '[',
		"backslash":      '\\',
		"bracketright":   ']',
		"asciicircum":    '^',
		"underscore":     '_',
		"grave":          '`',
		"braceleft":      '{',
		"bar":            '|',
		"braceright":     '}',
		"asciitilde":     '~',
		"exclamdown":     '¡',
		"cent":           '¢',
		"sterling":       '£',
		"currency":       '¤',
		"yen":            '¥',
		"brokenbar":      '¦',
		"section":        '§',
		"dieresis":       '¨',
		"copyright":      '©',
		"ordfeminine":    'ª',
		"guillemotleft":  '«',
		"logicalnot":     '¬',
		"registered":     '®',
		"macron":         '¯',
		"degree":         '°',
		"plusminus":      '±',
		"acute":          '´',
		"mu":             'µ',
		"paragraph":      '¶',
		"periodcentered": '·',
		"cedilla":        '¸',
		"ordmasculine":   'º',
		"guillemotright": '»',
		"onequarter":     '¼',
		"onehalf":        '½',
		"threequarters":  '¾',
		"questiondown":   '¿',
		"Agrave":         'À',
		"Aacute":         'Á',
		"Acircumflex":    'Â',
		"Atilde":         'Ã',
		"Adieresis":      'Ä',
		"Aring":          'Å',
		"AE":             'Æ',
		"Ccedilla":       'Ç',
		"Egrave":         'È',
		"Eacute":         'É',
		"Ecircumflex":    'Ê',
		"Edieresis":      'Ë',
		"Igrave":         'Ì',
		"Iacute":         'Í',
		"Icircumflex":    'Î',
		"Idieresis":      'Ï',
		"Eth":            'Ð',
		"Ntilde":         'Ñ',
		"Ograve":         'Ò',
		"Oacute":         'Ó',
		"Ocircumflex":    'Ô',
		"Otilde":         'Õ',
		"Odieresis":      'Ö',
		"multiply":       '×',
		"Oslash":         'Ø',
		"Ugrave":         'Ù',
		"Uacute":         'Ú',
		"Ucircumflex":    'Û',
		"Udieresis":      'Ü',
		"Yacute":         'Ý',
		"Thorn":          'Þ',
		"germandbls":     'ß',
		"agrave":         'à',
		"aacute":         'á',
		"acircumflex":    'â',
		"atilde":         'ã',
		"adieresis":      'ä',
		"aring":          'å',
		"ae":             'æ',
		"ccedilla":       'ç',
		"egrave":         'è',
		"eacute":         'é',
		"ecircumflex":    'ê',
		"edieresis":      'ë',
		"igrave":         'ì',
		"iacute":         'í',
		"icircumflex":    'î',
		"idieresis":      'ï',
		"eth":            'ð',
		"ntilde":         'ñ',
		"ograve":         'ò',
		"oacute":         'ó',
		"ocircumflex":    'ô',
		"otilde":         'õ',
		"odieresis":      'ö',
		"divide":         '÷',
		"oslash":         'ø',
		"ugrave":         'ù',
		"uacute":         'ú',
		"ucircumflex":    'û',
		"udieresis":      'ü',
		"yacute":         'ý',
		"thorn":          'þ',
		"ydieresis":      'ÿ',
		"OE":             'Œ',
		"oe":             'œ',
		"Scaron":         'Š',
		"scaron":         'š',
		"Ydieresis":      'Ÿ',
		"Zcaron":         'Ž',
		"zcaron":         'ž',
		"florin":         'ƒ',
		"circumflex":     'ˆ',
		"caron":          'ˇ',
		"breve":          '˘',
		"dotaccent":      '˙',
		"ring":           '˚',
		"ogonek":         '˛',
		"tilde":          '˜',
		"hungarumlaut":   '˝',
		"endash":         '–',
		"emdash":         '—',
		"quoteleft":      '‘',
		"quoteright":     '’',
		"quotesinglbase": '‚',
		"quotedblleft":   '“',
		"quotedblright":  '”',
		"quotedblbase":   '„',
		"dagger":         '†',
		"daggerdbl":      '‡',
		"bullet":         '•',
		"ellipsis":       '…',
		"perthousand":    '‰',
		"guilsinglleft":  '‹',
		"guilsinglright": '›',
		"fraction":       '⁄',
		"Euro":           '€',
		"trademark":      '™',
		"minus":          '−',
		"ff":             'ﬀ',
		"fi":             'ﬁ',
		"fl":             'ﬂ',
		"ffi":            'ﬃ',
		"ffl":            'ﬄ',
	}

	for r := 'A'; r <= 'Z'; r++ {
		m[string(r)] = r
	}
	for r := 'a'; r <= 'z'; r++ {
		m[string(r)] = r
	}
	digits := []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	for i, name := range digits {
		m[name] = rune('0' + i)
	}

	return m
}

// macGlyphCount is the size of the Macintosh standard glyph order referenced
// by post table format 2.0 name indices below this value.
const macGlyphCount = 258

var macGlyphNames = [macGlyphCount]string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "colon", "semicolon", "less", "equal",
	"greater", "question", "at", "A", "B", "C", "D", "E", "F", "G", "H",
	"I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T", "U", "V",
	"W", "X", "Y", "Z", "bracketleft", "backslash", "bracketright",
	"asciicircum", "underscore", "grave", "a", "b", "c", "d", "e", "f",
	"g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r", "s", "t",
	"u", "v", "w", "x", "y", "z", "braceleft", "bar", "braceright",
	"asciitilde", "Adieresis", "Aring", "Ccedilla", "Eacute", "Ntilde",
	"Odieresis", "Udieresis", "aacute", "agrave", "acircumflex",
	"adieresis", "atilde", "aring", "ccedilla", "eacute", "egrave",
	"ecircumflex", "edieresis", "iacute", "igrave", "icircumflex",
	"idieresis", "ntilde", "oacute", "ograve", "ocircumflex", "odieresis",
	"otilde", "uacute", "ugrave", "ucircumflex", "udieresis", "dagger",
	"degree", "cent", "sterling", "section", "bullet", "paragraph",
	"germandbls", "registered", "copyright", "trademark", "acute",
	"dieresis", "notequal", "AE", "Oslash", "infinity", "plusminus",
	"lessequal", "greaterequal", "yen", "mu", "partialdiff", "summation",
	"product", "pi", "integral", "ordfeminine", "ordmasculine", "Omega",
	"ae", "oslash", "questiondown", "exclamdown", "logicalnot", "radical",
	"florin", "approxequal", "Delta", "guillemotleft", "guillemotright",
	"ellipsis", "nonbreakingspace", "Agrave", "Atilde", "Otilde", "OE",
	"oe", "endash", "emdash", "quotedblleft", "quotedblright",
	"quoteleft", "quoteright", "divide", "lozenge", "ydieresis",
	"Ydieresis", "fraction", "currency", "guilsinglleft",
	"guilsinglright", "fi", "fl", "daggerdbl", "periodcentered",
	"quotesinglbase", "quotedblbase", "perthousand", "Acircumflex",
	"Ecircumflex", "Aacute", "Edieresis", "Egrave", "Iacute",
	"Icircumflex", "Idieresis", "Igrave", "Oacute", "Ocircumflex",
	"apple", "Ograve", "Uacute", "Ucircumflex", "Ugrave", "dotlessi",
	"circumflex", "tilde", "macron", "breve", "dotaccent", "ring",
	"cedilla", "hungarumlaut", "ogonek", "caron", "Lslash", "lslash",
	"Scaron", "scaron", "Zcaron", "zcaron", "brokenbar", "Eth", "eth",
	"Yacute", "yacute", "Thorn", "thorn", "minus", "multiply",
	"onesuperior", "twosuperior", "threesuperior", "onehalf",
	"onequarter", "threequarters", "franc", "Gbreve", "gbreve",
	"Idotaccent", "Scedilla", "scedilla", "Cacute", "cacute", "Ccaron",
	"ccaron", "dcroat",
}
