package font

// Reference advance widths for the width-signature tier, in 1000ths of em.
// When a subset font carries neither usable character mappings nor glyph
// names, a glyph's advance compared against these tables can still identify
// it, but only when exactly one character matches within tolerance.

// matchWidth scans the reference tables for characters whose advance lies
// within tolerance of the observed one. The match is accepted only when all
// hits across all tables agree on a single character; anything ambiguous
// returns false.
func matchWidth(advance, tolerance float64) (rune, bool) {
	var found rune
	var any bool
	for _, widths := range referenceWidths {
		for r, w := range widths {
			if w < advance-tolerance || w > advance+tolerance {
				continue
			}
			if any && r != found {
				return 0, false
			}
			found = r
			any = true
		}
	}
	return found, any
}

var referenceWidths = []map[rune]float64{
	refHelveticaWidths,
	refHelveticaBoldWidths,
	refTimesWidths,
	refTimesBoldWidths,
}

// Helvetica widths, common ASCII characters.
var refHelveticaWidths = map[rune]float64{
	' ':  278,
	'!':  278,
	'"':  355,
	'#':  556,
	'$':  556,
	'%':  889,
	'&':  667,
	'\'': 191,
	'(':  333,
	')':  333,
	'*':  389,
	'+':  584,
	',':  278,
	'-':  333,
	'.':  278,
	'/':  278,
	'0':  556,
	'1':  556,
	'2':  556,
	'3':  556,
	'4':  556,
	'5':  556,
	'6':  556,
	'7':  556,
	'8':  556,
	'9':  556,
	':':  278,
	';':  278,
	'<':  584,
	'=':  584,
	'>':  584,
	'?':  556,
	'@':  1015,
	'A':  667,
	'B':  667,
	'C':  722,
	'D':  722,
	'E':  667,
	'F':  611,
	'G':  778,
	'H':  722,
	'I':  278,
	'J':  500,
	'K':  667,
	'L':  556,
	'M':  833,
	'N':  722,
	'O':  778,
	'P':  667,
	'Q':  778,
	'R':  722,
	'S':  667,
	'T':  611,
	'U':  722,
	'V':  667,
	'W':  944,
	'X':  667,
	'Y':  667,
	'Z':  611,
	'[':  278,
	'\\': 278,
	']':  278,
	'^':  469,
	'_':  556,
	'`':  333,
	'a':  556,
	'b':  556,
	'c':  500,
	'd':  556,
	'e':  556,
	'f':  278,
	'g':  556,
	'h':  556,
	'i':  222,
	'j':  222,
	'k':  500,
	'l':  222,
	'm':  833,
	'n':  556,
	'o':  556,
	'p':  556,
	'q':  556,
	'r':  333,
	's':  500,
	't':  278,
	'u':  556,
	'v':  500,
	'w':  722,
	'x':  500,
	'y':  500,
	'z':  500,
	'{':  334,
	'|':  260,
	'}':  334,
	'~':  584,
}

// Helvetica-Bold widths, letters only.
var refHelveticaBoldWidths = map[rune]float64{
	'A': 722,
	'B': 722,
	'C': 722,
	'D': 722,
	'E': 667,
	'F': 611,
	'G': 778,
	'H': 722,
	'I': 278,
	'J': 556,
	'K': 722,
	'L': 611,
	'M': 833,
	'N': 722,
	'O': 778,
	'P': 667,
	'Q': 778,
	'R': 722,
	'S': 667,
	'T': 611,
	'U': 722,
	'V': 667,
	'W': 944,
	'X': 667,
	'Y': 667,
	'Z': 611,
	'a': 556,
	'b': 611,
	'c': 556,
	'd': 611,
	'e': 556,
	'f': 333,
	'g': 611,
	'h': 611,
	'i': 278,
	'j': 278,
	'k': 556,
	'l': 278,
	'm': 889,
	'n': 611,
	'o': 611,
	'p': 611,
	'q': 611,
	'r': 389,
	's': 556,
	't': 333,
	'u': 611,
	'v': 556,
	'w': 778,
	'x': 556,
	'y': 556,
	'z': 500,
}

// Times-Roman widths, common ASCII characters.
var refTimesWidths = map[rune]float64{
	' ':  250,
	'!':  333,
	'"':  408,
	'#':  500,
	'$':  500,
	'%':  833,
	'&':  778,
	'\'': 180,
	'(':  333,
	')':  333,
	'*':  500,
	'+':  564,
	',':  250,
	'-':  333,
	'.':  250,
	'/':  278,
	'0':  500,
	'1':  500,
	'2':  500,
	'3':  500,
	'4':  500,
	'5':  500,
	'6':  500,
	'7':  500,
	'8':  500,
	'9':  500,
	':':  278,
	';':  278,
	'<':  564,
	'=':  564,
	'>':  564,
	'?':  444,
	'@':  921,
	'A':  722,
	'B':  667,
	'C':  667,
	'D':  722,
	'E':  611,
	'F':  556,
	'G':  722,
	'H':  722,
	'I':  333,
	'J':  389,
	'K':  722,
	'L':  611,
	'M':  889,
	'N':  722,
	'O':  722,
	'P':  556,
	'Q':  722,
	'R':  667,
	'S':  556,
	'T':  611,
	'U':  722,
	'V':  722,
	'W':  944,
	'X':  722,
	'Y':  722,
	'Z':  611,
	'[':  333,
	'\\': 278,
	']':  333,
	'^':  469,
	'_':  500,
	'`':  333,
	'a':  444,
	'b':  500,
	'c':  444,
	'd':  500,
	'e':  444,
	'f':  333,
	'g':  500,
	'h':  500,
	'i':  278,
	'j':  278,
	'k':  500,
	'l':  278,
	'm':  778,
	'n':  500,
	'o':  500,
	'p':  500,
	'q':  500,
	'r':  333,
	's':  389,
	't':  278,
	'u':  500,
	'v':  500,
	'w':  722,
	'x':  500,
	'y':  500,
	'z':  444,
	'{':  480,
	'|':  200,
	'}':  480,
	'~':  541,
}

// Times-Bold widths, letters only.
var refTimesBoldWidths = map[rune]float64{
	'A': 722,
	'B': 667,
	'C': 722,
	'D': 722,
	'E': 667,
	'F': 611,
	'G': 778,
	'H': 778,
	'I': 389,
	'J': 500,
	'K': 778,
	'L': 667,
	'M': 944,
	'N': 722,
	'O': 778,
	'P': 611,
	'Q': 778,
	'R': 722,
	'S': 556,
	'T': 667,
	'U': 722,
	'V': 722,
	'W': 1000,
	'X': 722,
	'Y': 722,
	'Z': 667,
	'a': 500,
	'b': 556,
	'c': 444,
	'd': 556,
	'e': 444,
	'f': 333,
	'g': 500,
	'h': 556,
	'i': 278,
	'j': 333,
	'k': 556,
	'l': 278,
	'm': 833,
	'n': 556,
	'o': 500,
	'p': 556,
	'q': 556,
	'r': 444,
	's': 389,
	't': 333,
	'u': 556,
	'v': 500,
	'w': 722,
	'x': 500,
	'y': 500,
	'z': 444,
}
