package cv

import "testing"

func TestResolveSection_EmptyBuiltinsOmitted(t *testing.T) {
	data := Default()
	data.Experience = nil
	data.Education = nil
	data.References = nil

	for _, section := range data.SectionOrder {
		if got := ResolveSection(section, data); got != nil {
			t.Fatalf("expected nil for empty %s section, got %+v", section.ID, got)
		}
	}
}

func TestResolveSection_Experience(t *testing.T) {
	data := Default()
	data.Experience = []Experience{{
		Title:       "Backend Developer",
		Company:     "Acme",
		Location:    "Phnom Penh",
		StartDate:   "2020",
		EndDate:     "2023",
		Level:       "Senior",
		Type:        "Full-time",
		Description: "<p>things</p>",
	}}

	resolved := ResolveSection(data.SectionOrder[0], data)
	if resolved == nil {
		t.Fatal("expected resolved section")
	}
	if resolved.Style != StyleTimeline {
		t.Fatalf("expected timeline style, got %s", resolved.Style)
	}
	entry := resolved.Timeline[0]
	if entry.Subtitle != "Acme | Phnom Penh" {
		t.Fatalf("unexpected subtitle %q", entry.Subtitle)
	}
	if entry.Dates != "2020 - 2023" {
		t.Fatalf("unexpected dates %q", entry.Dates)
	}
	if entry.Details != "Senior | Full-time" {
		t.Fatalf("unexpected details %q", entry.Details)
	}
	if entry.Description != "<p>things</p>" {
		t.Fatalf("description must pass through verbatim, got %q", entry.Description)
	}
}

func customFixture(style SectionStyle, items ...CustomSectionItem) (CVData, CVSection) {
	data := Default()
	data.CustomSections = []CustomSection{{
		ID:          "custom-1",
		Title:       "Projects",
		SectionType: style,
		Items:       items,
	}}
	section := CVSection{ID: "custom-1", Type: SectionCustom, Title: "Projects", Order: 4, Enabled: true, Style: style}
	data.SectionOrder = append(data.SectionOrder, section)
	return data, section
}

func TestResolveSection_CustomTimelineJoins(t *testing.T) {
	data, section := customFixture(StyleTimeline, CustomSectionItem{
		ID: "i1", Title: "A", Subtitle: "B", Location: "C",
		StartDate: "2020", EndDate: "2021", Description: "D",
	})

	resolved := ResolveSection(section, data)
	if resolved == nil {
		t.Fatal("expected resolved section")
	}
	entry := resolved.Timeline[0]
	if entry.Title != "A" || entry.Subtitle != "B | C" || entry.Dates != "2020 - 2021" || entry.Description != "D" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestResolveSection_CustomTimelinePartialJoins(t *testing.T) {
	cases := []struct {
		name      string
		item      CustomSectionItem
		wantSub   string
		wantDates string
	}{
		{"start only", CustomSectionItem{ID: "i", Title: "A", StartDate: "2020"}, "", "2020"},
		{"end only", CustomSectionItem{ID: "i", Title: "A", EndDate: "2021"}, "", "2021"},
		{"subtitle only", CustomSectionItem{ID: "i", Title: "A", Subtitle: "B"}, "B", ""},
		{"location only", CustomSectionItem{ID: "i", Title: "A", Location: "C"}, "C", ""},
		{"neither", CustomSectionItem{ID: "i", Title: "A"}, "", ""},
	}

	for _, tc := range cases {
		data, section := customFixture(StyleTimeline, tc.item)
		entry := ResolveSection(section, data).Timeline[0]
		if entry.Subtitle != tc.wantSub {
			t.Fatalf("%s: subtitle %q, want %q", tc.name, entry.Subtitle, tc.wantSub)
		}
		if entry.Dates != tc.wantDates {
			t.Fatalf("%s: dates %q, want %q", tc.name, entry.Dates, tc.wantDates)
		}
	}
}

func TestResolveSection_CustomReferenceMapping(t *testing.T) {
	data, section := customFixture(StyleReference, CustomSectionItem{
		ID: "i1", Title: "Jane", Subtitle: "CTO", Phone: "123", Email: "jane@example.com",
	})

	resolved := ResolveSection(section, data)
	if resolved.Style != StyleReference {
		t.Fatalf("expected reference style, got %s", resolved.Style)
	}
	entry := resolved.References[0]
	if entry.Name != "Jane" || entry.Position != "CTO" || entry.Phone != "123" || entry.Email != "jane@example.com" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestResolveSection_CustomEmptyOrMissing(t *testing.T) {
	data, section := customFixture(StyleTimeline)
	if got := ResolveSection(section, data); got != nil {
		t.Fatalf("empty custom section must resolve to nil, got %+v", got)
	}

	orphan := CVSection{ID: "no-such", Type: SectionCustom, Title: "X", Order: 9, Enabled: true}
	if got := ResolveSection(orphan, data); got != nil {
		t.Fatalf("missing custom section must resolve to nil, got %+v", got)
	}
}

func TestResolveSection_Deterministic(t *testing.T) {
	data := Default()
	first := ResolveSection(data.SectionOrder[0], data)
	second := ResolveSection(data.SectionOrder[0], data)
	if len(first.Timeline) != len(second.Timeline) {
		t.Fatal("resolver must be deterministic")
	}
	for i := range first.Timeline {
		if first.Timeline[i] != second.Timeline[i] {
			t.Fatalf("entry %d differs between identical calls", i)
		}
	}
}

func TestResolveEnabled_SkipsDisabled(t *testing.T) {
	data := Default()
	data = ToggleSection(data, "education", false)

	for _, resolved := range ResolveEnabled(data) {
		if resolved.ID == "education" {
			t.Fatal("disabled section must not be resolved")
		}
	}

	// 记录仍然保留在顺序表里，只是 enabled=false。
	found := false
	for _, s := range data.SectionOrder {
		if s.ID == "education" {
			found = true
			if s.Enabled {
				t.Fatal("toggle must persist enabled=false")
			}
		}
	}
	if !found {
		t.Fatal("toggled section must survive in sectionOrder")
	}
}
