package htmlout

import (
	"strings"
	"testing"

	"github.com/fmalina/PDFtranscript/model"
)

func textBlock(text string, role model.Role, level int) model.TextBlock {
	var line model.Line
	for _, token := range strings.Fields(text) {
		var word model.Word
		for _, r := range token {
			word.Chars = append(word.Chars, model.PositionedChar{Rune: r, Resolved: true})
		}
		line.Words = append(line.Words, word)
	}
	return model.TextBlock{
		Lines:        []model.Line{line},
		Role:         role,
		HeadingLevel: level,
	}
}

func testTranscript() *model.Transcript {
	return &model.Transcript{
		Blocks: []model.TextBlock{
			textBlock("Annual Report", model.RoleHeading, 1),
			textBlock("Findings", model.RoleHeading, 2),
			textBlock("Results improved <significantly> & steadily.", model.RoleParagraph, 0),
		},
		GlyphCount: 1000,
	}
}

func render(t *testing.T, tr *model.Transcript, title string) string {
	t.Helper()
	var sb strings.Builder
	if err := Render(&sb, tr, title); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return sb.String()
}

func TestRenderDocumentShape(t *testing.T) {
	out := render(t, testTranscript(), "Report")

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<meta charset=\"utf-8\"/>",
		"<title>Report</title>",
		"<h1>Annual Report</h1>",
		"<h2>Findings</h2>",
		"<p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "class=") || strings.Contains(out, "style") {
		t.Error("Expected no styling in semantic output")
	}
}

func TestRenderEscapesText(t *testing.T) {
	out := render(t, testTranscript(), "Report")

	if !strings.Contains(out, "&lt;significantly&gt; &amp; steadily.") {
		t.Errorf("Expected markup characters escaped, got:\n%s", out)
	}
}

func TestRenderTitleFallsBackToFirstHeading(t *testing.T) {
	out := render(t, testTranscript(), "")

	if !strings.Contains(out, "<title>Annual Report</title>") {
		t.Errorf("Expected first heading as title, got:\n%s", out)
	}
}

func TestRenderConfidence(t *testing.T) {
	tr := testTranscript()
	tr.UnresolvedCount = 13

	out := render(t, tr, "Report")
	if !strings.Contains(out, `<meta name="confidence" content="0.9870"/>`) {
		t.Errorf("Expected confidence meta tag, got:\n%s", out)
	}
}

func TestRenderKeepsPlaceholders(t *testing.T) {
	tr := &model.Transcript{
		Blocks: []model.TextBlock{
			textBlock("usable � text", model.RoleParagraph, 0),
		},
	}

	out := render(t, tr, "x")
	if !strings.Contains(out, "�") {
		t.Error("Expected unresolved placeholder visible in output")
	}
}

func TestRenderSkipsEmptyBlocks(t *testing.T) {
	tr := &model.Transcript{
		Blocks: []model.TextBlock{
			textBlock("", model.RoleParagraph, 0),
			textBlock("real", model.RoleParagraph, 0),
		},
	}

	out := render(t, tr, "x")
	if strings.Contains(out, "<p></p>") {
		t.Error("Expected empty blocks skipped")
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := render(t, testTranscript(), "Report")
	b := render(t, testTranscript(), "Report")
	if a != b {
		t.Error("Expected identical output for identical transcripts")
	}
}

func TestRenderDeepHeadingClampsToH3(t *testing.T) {
	tr := &model.Transcript{
		Blocks: []model.TextBlock{
			textBlock("Deep", model.RoleHeading, 5),
		},
	}

	out := render(t, tr, "x")
	if !strings.Contains(out, "<h3>Deep</h3>") {
		t.Errorf("Expected deep heading rendered as h3, got:\n%s", out)
	}
}
