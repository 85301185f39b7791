package cv

import (
	"testing"
)

func orderByID(t *testing.T, data CVData, id string) CVSection {
	t.Helper()
	for _, s := range data.SectionOrder {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("section %q not found in sectionOrder", id)
	return CVSection{}
}

func TestAddCustomSection_PairsRecords(t *testing.T) {
	data := Default()
	updated := AddCustomSection(data, StyleReference)

	if len(data.CustomSections) != 0 {
		t.Fatal("input aggregate must not be mutated")
	}
	if len(updated.CustomSections) != 1 {
		t.Fatalf("expected 1 custom section, got %d", len(updated.CustomSections))
	}

	custom := updated.CustomSections[0]
	if custom.Title != "New Reference Section" {
		t.Fatalf("unexpected default title %q", custom.Title)
	}
	if len(custom.Items) != 0 {
		t.Fatal("new custom section must start empty")
	}

	section := orderByID(t, updated, custom.ID)
	if section.Type != SectionCustom || !section.Enabled {
		t.Fatalf("unexpected paired section %+v", section)
	}
	if section.Order != 4 {
		t.Fatalf("expected order 4, got %d", section.Order)
	}
	if section.Style != StyleReference {
		t.Fatalf("expected mirrored style, got %q", section.Style)
	}

	// 空区块在解析阶段被整体跳过，直到添加第一条内容。
	if got := ResolveSection(section, updated); got != nil {
		t.Fatalf("empty custom section must resolve to nil, got %+v", got)
	}
}

func TestAddCustomSection_UniqueIDs(t *testing.T) {
	data := Default()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		data = AddCustomSection(data, StyleTimeline)
		id := data.CustomSections[len(data.CustomSections)-1].ID
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate section id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestRemoveCustomSection_RemovesExactlyPair(t *testing.T) {
	data := AddCustomSection(Default(), StyleTimeline)
	data = AddCustomSection(data, StyleReference)
	victim := data.CustomSections[0].ID

	before := make(map[string]int)
	for _, s := range data.SectionOrder {
		before[s.ID] = s.Order
	}

	updated := RemoveCustomSection(data, victim)

	if len(updated.CustomSections) != 1 {
		t.Fatalf("expected 1 remaining custom section, got %d", len(updated.CustomSections))
	}
	if len(updated.SectionOrder) != len(data.SectionOrder)-1 {
		t.Fatalf("expected exactly one sectionOrder row removed")
	}
	for _, s := range updated.SectionOrder {
		if s.ID == victim {
			t.Fatal("paired sectionOrder row must be removed")
		}
		if before[s.ID] != s.Order {
			t.Fatalf("order of %q changed from %d to %d", s.ID, before[s.ID], s.Order)
		}
	}
}

func TestRenameAndRetype_MirrorBothRecords(t *testing.T) {
	data := AddCustomSection(Default(), StyleTimeline)
	id := data.CustomSections[0].ID
	item := CustomSectionItem{ID: "i1", Title: "X", StartDate: "2020", Phone: "555"}
	data.CustomSections[0].Items = []CustomSectionItem{item}

	data = RenameSection(data, id, "Projects")
	if data.CustomSections[0].Title != "Projects" {
		t.Fatal("rename must reach the CustomSection")
	}
	if orderByID(t, data, id).Title != "Projects" {
		t.Fatal("rename must reach the CVSection")
	}

	data = RetypeSection(data, id, StyleReference)
	if data.CustomSections[0].SectionType != StyleReference {
		t.Fatal("retype must reach the CustomSection")
	}
	if orderByID(t, data, id).Style != StyleReference {
		t.Fatal("retype must reach the CVSection")
	}
	// 条目数据不转换：timeline 字段失活但保留。
	if data.CustomSections[0].Items[0].StartDate != "2020" {
		t.Fatal("retype must not transform item data")
	}

	data = RetypeSection(data, id, StyleTimeline)
	if data.CustomSections[0].Items[0].StartDate != "2020" {
		t.Fatal("switching back must restore timeline fields untouched")
	}
}

func TestRenameSection_BuiltinTitleOverride(t *testing.T) {
	data := RenameSection(Default(), "experience", "Work History")
	if orderByID(t, data, "experience").Title != "Work History" {
		t.Fatal("builtin display title must be overridable")
	}
}

func assertDense(t *testing.T, data CVData) {
	t.Helper()
	sorted := sortedSections(data.SectionOrder)
	for i, s := range sorted {
		if s.Order != i+1 {
			t.Fatalf("orders not dense: position %d has order %d (%+v)", i, s.Order, sorted)
		}
	}
}

func TestMoveSection_SwapsAndRenumbers(t *testing.T) {
	data := AddCustomSection(Default(), StyleTimeline)

	moved := MoveSection(data, "education", MoveUp)
	assertDense(t, moved)
	sorted := sortedSections(moved.SectionOrder)
	if sorted[0].ID != "education" || sorted[1].ID != "experience" {
		t.Fatalf("unexpected order after move up: %s, %s", sorted[0].ID, sorted[1].ID)
	}

	moved = MoveSection(moved, "references", MoveDown)
	assertDense(t, moved)
	sorted = sortedSections(moved.SectionOrder)
	if sorted[len(sorted)-1].ID != "references" {
		t.Fatalf("expected references last, got %s", sorted[len(sorted)-1].ID)
	}
}

func TestMoveSection_BoundaryNoop(t *testing.T) {
	data := Default()
	if got := MoveSection(data, "experience", MoveUp); len(got.SectionOrder) != 3 || orderByID(t, got, "experience").Order != 1 {
		t.Fatal("moving first section up must be a no-op")
	}
	if got := MoveSection(data, "references", MoveDown); orderByID(t, got, "references").Order != 3 {
		t.Fatal("moving last section down must be a no-op")
	}
}

func TestMoveSection_NormalizesSparseOrders(t *testing.T) {
	data := Default()
	// 模拟外部写入的非致密 Order。
	data.SectionOrder[0].Order = 2
	data.SectionOrder[1].Order = 7
	data.SectionOrder[2].Order = 40

	moved := MoveSection(data, "references", MoveUp)
	assertDense(t, moved)
}

func TestSyncCustomSections_Idempotent(t *testing.T) {
	data := Default()
	// 表单只写了 customSections，还没有配对的顺序记录。
	data.CustomSections = []CustomSection{
		{ID: "a", Title: "A", SectionType: StyleTimeline},
		{ID: "b", Title: "B", SectionType: StyleReference},
	}

	once := SyncCustomSections(data)
	if len(once.SectionOrder) != 5 {
		t.Fatalf("expected 5 sectionOrder rows, got %d", len(once.SectionOrder))
	}
	a := orderByID(t, once, "a")
	if a.Type != SectionCustom || !a.Enabled || a.Order != 4 {
		t.Fatalf("unexpected synthesized row %+v", a)
	}
	if orderByID(t, once, "b").Order != 5 {
		t.Fatalf("unexpected order for second synthesized row")
	}

	twice := SyncCustomSections(once)
	if len(twice.SectionOrder) != len(once.SectionOrder) {
		t.Fatal("sync must be idempotent")
	}
	for i := range twice.SectionOrder {
		if twice.SectionOrder[i] != once.SectionOrder[i] {
			t.Fatalf("row %d changed on second sync", i)
		}
	}
}

func TestSyncCustomSections_NeverRemoves(t *testing.T) {
	data := AddCustomSection(Default(), StyleTimeline)
	id := data.CustomSections[0].ID
	// 孤儿顺序记录（底层 CustomSection 已不在）也不能被 sync 清理。
	data.CustomSections = nil

	synced := SyncCustomSections(data)
	if _, ok := synced.CustomSectionByID(id); ok {
		t.Fatal("fixture broken")
	}
	orderByID(t, synced, id)
}

func TestDecode_FallsBackToDefault(t *testing.T) {
	if got := Decode([]byte("{not json")); got.PersonalDetails.FullName != Default().PersonalDetails.FullName {
		t.Fatal("malformed input must fall back to the seed document")
	}
	if got := Decode(nil); len(got.SectionOrder) != 3 {
		t.Fatal("empty input must fall back to the seed document")
	}

	raw, err := Encode(AddCustomSection(Default(), StyleReference))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := Decode(raw)
	if len(decoded.CustomSections) != 1 || len(decoded.SectionOrder) != 4 {
		t.Fatal("valid aggregate must round-trip")
	}
	// 停用标记需要在编解码往返后保留。
	toggled := ToggleSection(decoded, "experience", false)
	raw2, _ := Encode(toggled)
	if orderByID(t, Decode(raw2), "experience").Enabled {
		t.Fatal("enabled=false must survive a round trip")
	}
}
