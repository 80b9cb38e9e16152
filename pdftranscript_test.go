package pdftranscript

import (
	"fmt"
	"strings"
	"testing"
)

const fixtureCSS = `
.pf{position:relative}
.w0{width:612px}
.h0{height:792px}
.x0{left:50px}
.y0{bottom:760px}
.y1{bottom:700px}
.y2{bottom:660px}
.y3{bottom:645px}
.y4{bottom:40px}
.y5{bottom:720px}
.y6{bottom:650px}
.h1{height:12px}
.h2{height:24px}
.fs1{font-size:12px}
.fs2{font-size:24px}
.ff1{font-family:ff1}
@font-face{font-family:ff1;src:url(data:application/font-woff;base64,ZmFrZQ==)format("woff")}
`

var fixtureTexts = []string{
	"Acme Corp 1",
	"Annual Report",
	"The quick brown fox jumps",
	"over the lazy dog.",
	"This sentence continues onto the",
	"Acme Corp 2",
	"next page with more words.",
	"A final paragraph ends here.",
}

func fixture() string {
	return fmt.Sprintf(`<html><head><style>%s</style></head><body>
<div id="pf1" class="pf w0 h0">
<div class="t x0 y0 h1 ff1 fs1">%s</div>
<div class="t x0 y1 h2 ff1 fs2">%s</div>
<div class="t x0 y2 h1 ff1 fs1">%s</div>
<div class="t x0 y3 h1 ff1 fs1">%s</div>
<div class="t x0 y4 h1 ff1 fs1">%s</div>
</div>
<div id="pf2" class="pf w0 h0">
<div class="t x0 y0 h1 ff1 fs1">%s</div>
<div class="t x0 y5 h1 ff1 fs1">%s</div>
<div class="t x0 y6 h1 ff1 fs1">%s</div>
</div>
</body></html>`, fixtureCSS,
		fixtureTexts[0], fixtureTexts[1], fixtureTexts[2], fixtureTexts[3],
		fixtureTexts[4], fixtureTexts[5], fixtureTexts[6], fixtureTexts[7])
}

func TestTranscriptStructure(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{
		"Acme Corp 1",
		"Annual Report",
		"The quick brown fox jumps over the lazy dog.",
		"This sentence continues onto the next page with more words.",
		"A final paragraph ends here.",
	}
	if len(tr.Blocks) != len(want) {
		for _, b := range tr.Blocks {
			t.Logf("block: %q", b.Text())
		}
		t.Fatalf("Expected %d blocks, got %d", len(want), len(tr.Blocks))
	}
	for i, text := range want {
		if tr.Blocks[i].Text() != text {
			t.Errorf("Block %d: expected %q, got %q", i, text, tr.Blocks[i].Text())
		}
	}
}

func TestTranscriptHeadings(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	headings := tr.Headings()
	if len(headings) != 1 {
		t.Fatalf("Expected 1 heading, got %d", len(headings))
	}
	if headings[0].Text() != "Annual Report" || headings[0].HeadingLevel != 1 {
		t.Errorf("Expected %q at level 1, got %q at level %d",
			"Annual Report", headings[0].Text(), headings[0].HeadingLevel)
	}
}

func TestTranscriptRemovesRepeatedHeaders(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, b := range tr.Blocks {
		if b.Text() == "Acme Corp 2" {
			t.Error("Expected the repeated page header removed")
		}
	}
}

func TestTranscriptKeepHeaders(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).KeepHeaders().Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var found bool
	for _, b := range tr.Blocks {
		if b.Text() == "Acme Corp 2" {
			found = true
		}
	}
	if !found {
		t.Error("Expected KeepHeaders to retain the page header")
	}
}

func TestTranscriptKeepPageSplits(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).KeepPageSplits().Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, b := range tr.Blocks {
		if strings.Contains(b.Text(), "onto the next page") {
			t.Error("Expected split paragraphs left unmerged")
		}
	}
}

func TestTranscriptAccounting(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	total := 0
	for _, text := range fixtureTexts {
		total += len([]rune(text))
	}
	if tr.GlyphCount != total {
		t.Errorf("Expected %d glyphs accounted for, got %d", total, tr.GlyphCount)
	}
	if tr.UnresolvedCount != 0 {
		t.Errorf("Expected no unresolved glyphs, got %d", tr.UnresolvedCount)
	}
	if tr.LowConfidence {
		t.Error("Expected a fully resolved transcript")
	}
}

func TestTranscriptRanksFollowReadingOrder(t *testing.T) {
	tr, _, err := FromReader(strings.NewReader(fixture())).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, b := range tr.Blocks {
		if b.Rank != i {
			t.Errorf("Block %d: expected rank %d, got %d", i, i, b.Rank)
		}
	}
}

func TestTranscriptWarnsOnUnreadableFont(t *testing.T) {
	_, warnings, err := FromReader(strings.NewReader(fixture())).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var found bool
	for _, w := range warnings {
		if w.Type == WarnFontUnreadable {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a font warning, got: %s", FormatWarnings(warnings))
	}
}

func TestTranscriptDeterministic(t *testing.T) {
	first, _, err := FromReader(strings.NewReader(fixture())).HTML()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, _, err := FromReader(strings.NewReader(fixture())).HTML()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first != second {
		t.Error("Expected identical output across runs")
	}
}

func TestTranscriptSingleWorkerMatchesParallel(t *testing.T) {
	serial, _, err := FromReader(strings.NewReader(fixture())).Workers(1).HTML()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	parallel, _, err := FromReader(strings.NewReader(fixture())).Workers(8).HTML()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if serial != parallel {
		t.Error("Expected worker count not to affect output")
	}
}

func TestHTMLOutput(t *testing.T) {
	out, _, err := FromReader(strings.NewReader(fixture())).HTML()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Annual Report</title>",
		"<h1>Annual Report</h1>",
		"<p>The quick brown fox jumps over the lazy dog.</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "class=") {
		t.Error("Expected no positioning classes in semantic output")
	}
}

const puaFixture = `<html><head><style>
.w0{width:100px}.h0{height:100px}
.x0{left:10px}.y0{bottom:50px}
.h1{height:12px}.fs1{font-size:12px}
</style></head><body>
<div class="pf w0 h0"><div class="t x0 y0 h1 ff1 fs1">A&#xE000;</div></div>
</body></html>`

func TestTranscriptUnresolvedGlyphs(t *testing.T) {
	tr, warnings, err := FromReader(strings.NewReader(puaFixture)).Transcript()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tr.GlyphCount != 2 {
		t.Errorf("Expected 2 glyphs, got %d", tr.GlyphCount)
	}
	if tr.UnresolvedCount != 1 {
		t.Errorf("Expected 1 unresolved glyph, got %d", tr.UnresolvedCount)
	}
	if !tr.LowConfidence {
		t.Error("Expected the transcript flagged low confidence")
	}

	var found bool
	for _, w := range warnings {
		if w.Type == WarnLowConfidence {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a low confidence warning, got: %s", FormatWarnings(warnings))
	}

	if len(tr.Blocks) != 1 || !strings.Contains(tr.Blocks[0].Text(), "�") {
		t.Error("Expected the placeholder kept in the text")
	}
}

func TestFontInfo(t *testing.T) {
	infos, err := FromReader(strings.NewReader(fixture())).FontInfo()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(infos) != 1 {
		t.Fatalf("Expected 1 font, got %d", len(infos))
	}
	if infos[0].Family != "ff1" {
		t.Errorf("Expected family ff1, got %s", infos[0].Family)
	}
	if !infos[0].Opaque || infos[0].Error == "" {
		t.Error("Expected the fake binary reported as unreadable")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open("testdata/does-not-exist.html").Transcript()
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestConverterChainIsImmutable(t *testing.T) {
	base := FromReader(strings.NewReader(fixture()))
	tuned := base.SpaceThreshold(0.9)

	if base.options.SpaceThreshold == tuned.options.SpaceThreshold {
		t.Error("Expected chained configuration to leave the original untouched")
	}
}
