package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"phCV/internal/cv"
)

// textTokens 按文档顺序抽取全部文本节点，空白归一化。
// 用同一把尺子量两个模板，断言语义内容一致。
func textTokens(t *testing.T, rendered string) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		t.Fatalf("parse rendered html: %v", err)
	}

	var tokens []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "style" || n.Data == "script") {
			return
		}
		if n.Type == html.TextNode {
			for _, f := range strings.Fields(n.Data) {
				tokens = append(tokens, f)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return tokens
}

func fixtureData() cv.CVData {
	data := cv.Default()
	data = cv.AddCustomSection(data, cv.StyleTimeline)
	timelineID := data.CustomSections[0].ID
	data.CustomSections[0].Items = []cv.CustomSectionItem{
		{ID: "i1", Title: "Side Project", Subtitle: "Solo", StartDate: "2022", Description: "<p>Built <strong>things</strong></p>"},
	}
	data = cv.RenameSection(data, timelineID, "Projects")

	data = cv.AddCustomSection(data, cv.StyleReference)
	refID := data.CustomSections[1].ID
	data.CustomSections[1].Items = []cv.CustomSectionItem{
		{ID: "i2", Title: "Jane Doe", Subtitle: "CTO", Email: "jane@example.com"},
	}
	data = cv.MoveSection(data, refID, cv.MoveUp)
	return data
}

func TestRender_PreviewAndPrintSameContent(t *testing.T) {
	data := fixtureData()

	preview, err := Render(data, TargetPreview)
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	printed, err := Render(data, TargetPrint)
	if err != nil {
		t.Fatalf("render print: %v", err)
	}

	got := textTokens(t, preview)
	want := textTokens(t, printed)
	if len(got) != len(want) {
		t.Fatalf("token count differs: preview=%d print=%d\npreview=%v\nprint=%v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d differs: preview=%q print=%q", i, got[i], want[i])
		}
	}
}

func TestRender_SectionOrderFollowsEngine(t *testing.T) {
	data := fixtureData()
	out, err := Render(data, TargetPrint)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// fixture 里 reference 区块被上移到 Projects 之前。
	refIdx := strings.Index(out, "New Reference Section")
	projIdx := strings.Index(out, "Projects")
	if refIdx < 0 || projIdx < 0 {
		t.Fatal("expected both custom sections in output")
	}
	if refIdx > projIdx {
		t.Fatal("render order must follow sectionOrder")
	}
}

func TestRender_DisabledSectionExcluded(t *testing.T) {
	data := cv.ToggleSection(cv.Default(), "references", false)
	out, err := Render(data, TargetPreview)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "Cheng Mich") {
		t.Fatal("disabled section must not be rendered")
	}
}

func TestBuildDocument_ClampsBarLevels(t *testing.T) {
	data := cv.Default()
	data.Skills = []cv.Skill{{Name: "Over", Level: 150}, {Name: "Under", Level: -20}}
	data.Languages = []cv.Language{{Name: "Exact", Level: 100}}

	doc := BuildDocument(data)
	if doc.Skills[0].Width != 100 || doc.Skills[1].Width != 0 {
		t.Fatalf("levels must be clamped, got %d and %d", doc.Skills[0].Width, doc.Skills[1].Width)
	}
	// 标签保留原始数值，裁剪只作用于条宽。
	if doc.Skills[0].Label != "Over (150%)" {
		t.Fatalf("unexpected label %q", doc.Skills[0].Label)
	}
	if doc.Languages[0].Width != 100 {
		t.Fatalf("unexpected width %d", doc.Languages[0].Width)
	}

	if _, err := Render(data, TargetPrint); err != nil {
		t.Fatalf("out-of-range levels must still render: %v", err)
	}
}

func TestRender_EdgeCases(t *testing.T) {
	data := cv.Default()
	data.PersonalDetails.ProfileImage = ""
	data.PersonalDetails.Github = ""
	data.PersonalDetails.Linkedin = ""
	data.Education[0].Description = ""

	for _, target := range []Target{TargetPreview, TargetPrint} {
		out, err := Render(data, target)
		if err != nil {
			t.Fatalf("render %s: %v", target, err)
		}
		if !strings.Contains(out, "Photo") {
			t.Fatalf("%s: missing photo placeholder", target)
		}
		if strings.Contains(out, "github.com") {
			t.Fatalf("%s: absent contact row must be omitted", target)
		}
	}
}

func TestRender_RichTextPassthrough(t *testing.T) {
	data := cv.Default()
	out, err := Render(data, TargetPrint)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<strong>Key Skills</strong>") {
		t.Fatal("rich-text description must not be escaped")
	}
}

func TestParseTarget(t *testing.T) {
	if _, err := ParseTarget("pdf"); err == nil {
		t.Fatal("expected error for unknown target")
	}
	target, err := ParseTarget(" print ")
	if err != nil || target != TargetPrint {
		t.Fatalf("unexpected %v %v", target, err)
	}
}
