package cv

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MoveDirection 是 MoveSection 的方向参数。
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

const (
	defaultTimelineTitle  = "New Timeline Section"
	defaultReferenceTitle = "New Reference Section"
)

// newSectionID 生成"毫秒时间戳-随机后缀"形式的区块 id。
// 同一文档内重复属于正确性缺陷，因此这里显式查重后才返回。
func newSectionID(data CVData) string {
	for {
		id := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
		if _, exists := data.CustomSectionByID(id); !exists {
			return id
		}
	}
}

// sortedSections 返回按 Order 升序排列的副本。
func sortedSections(sections []CVSection) []CVSection {
	out := append([]CVSection(nil), sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// EnabledSections 返回启用中的区块，按 Order 升序。
// 两个渲染器共享同一份顺序来源。
func EnabledSections(data CVData) []CVSection {
	sorted := sortedSections(data.SectionOrder)
	out := make([]CVSection, 0, len(sorted))
	for _, s := range sorted {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func maxOrder(sections []CVSection) int {
	max := 0
	for _, s := range sections {
		if s.Order > max {
			max = s.Order
		}
	}
	return max
}

// AddCustomSection 创建一个空的自定义区块，并在顺序表尾部追加配对记录。
func AddCustomSection(data CVData, style SectionStyle) CVData {
	if style != StyleReference {
		style = StyleTimeline
	}

	title := defaultTimelineTitle
	if style == StyleReference {
		title = defaultReferenceTitle
	}

	out := data.Clone()
	section := CustomSection{
		ID:          newSectionID(out),
		Title:       title,
		SectionType: style,
		Items:       []CustomSectionItem{},
	}
	out.CustomSections = append(out.CustomSections, section)
	out.SectionOrder = append(out.SectionOrder, CVSection{
		ID:      section.ID,
		Type:    SectionCustom,
		Title:   section.Title,
		Order:   maxOrder(out.SectionOrder) + 1,
		Enabled: true,
		Style:   style,
	})
	return out
}

// RemoveCustomSection 删除自定义区块及其配对顺序记录。
// 内建区块不可删除；剩余区块的 Order 保持原值（允许出现空洞）。
func RemoveCustomSection(data CVData, id string) CVData {
	out := data.Clone()

	kept := out.CustomSections[:0]
	for _, cs := range out.CustomSections {
		if cs.ID != id {
			kept = append(kept, cs)
		}
	}
	out.CustomSections = kept

	sections := out.SectionOrder[:0]
	for _, s := range out.SectionOrder {
		if s.ID == id && s.Type == SectionCustom {
			continue
		}
		sections = append(sections, s)
	}
	out.SectionOrder = sections
	return out
}

// RenameSection 更新顺序记录的标题；自定义区块同时镜像到 CustomSection。
func RenameSection(data CVData, id, title string) CVData {
	out := data.Clone()
	for i := range out.SectionOrder {
		if out.SectionOrder[i].ID == id {
			out.SectionOrder[i].Title = title
		}
	}
	for i := range out.CustomSections {
		if out.CustomSections[i].ID == id {
			out.CustomSections[i].Title = title
		}
	}
	return out
}

// RetypeSection 切换自定义区块的展示风格，两条记录同步更新。
// 条目数据不做转换：与新风格无关的字段失活但保留，切回后恢复可见。
func RetypeSection(data CVData, id string, style SectionStyle) CVData {
	if style != StyleReference {
		style = StyleTimeline
	}
	out := data.Clone()
	for i := range out.SectionOrder {
		if out.SectionOrder[i].ID == id {
			out.SectionOrder[i].Style = style
		}
	}
	for i := range out.CustomSections {
		if out.CustomSections[i].ID == id {
			out.CustomSections[i].SectionType = style
		}
	}
	return out
}

// ToggleSection 只翻转可见性，从不调整顺序。
func ToggleSection(data CVData, id string, enabled bool) CVData {
	out := data.Clone()
	for i := range out.SectionOrder {
		if out.SectionOrder[i].ID == id {
			out.SectionOrder[i].Enabled = enabled
		}
	}
	return out
}

// MoveSection 将区块与排序后相邻的一项交换位置。
// 边界处为 no-op。交换后对全表做 1..N 的致密重编号，
// 因此即使外部写入过非致密的 Order，连续移动也保持一致。
func MoveSection(data CVData, id string, direction MoveDirection) CVData {
	sections := sortedSections(data.SectionOrder)

	current := -1
	for i, s := range sections {
		if s.ID == id {
			current = i
			break
		}
	}
	if current < 0 {
		return data
	}
	if (direction == MoveUp && current == 0) || (direction == MoveDown && current == len(sections)-1) {
		return data
	}

	next := current + 1
	if direction == MoveUp {
		next = current - 1
	}
	sections[current], sections[next] = sections[next], sections[current]

	for i := range sections {
		sections[i].Order = i + 1
	}

	out := data.Clone()
	out.SectionOrder = sections
	return out
}

// SyncCustomSections 幂等补齐：为每个缺少顺序记录的 CustomSection 合成一条。
// 只新增、不删除（删除只走 RemoveCustomSection），每次表单变更后调用都是安全的。
func SyncCustomSections(data CVData) CVData {
	known := make(map[string]struct{})
	for _, s := range data.SectionOrder {
		if s.Type == SectionCustom {
			known[s.ID] = struct{}{}
		}
	}

	var missing []CustomSection
	for _, cs := range data.CustomSections {
		if _, ok := known[cs.ID]; !ok {
			missing = append(missing, cs)
		}
	}
	if len(missing) == 0 {
		return data
	}

	out := data.Clone()
	base := len(out.SectionOrder)
	for i, cs := range missing {
		out.SectionOrder = append(out.SectionOrder, CVSection{
			ID:      cs.ID,
			Type:    SectionCustom,
			Title:   cs.Title,
			Order:   base + i + 1,
			Enabled: true,
			Style:   cs.SectionType,
		})
	}
	out.SectionOrder = sortedSections(out.SectionOrder)
	return out
}

// ParseStyle 将外部输入归一化为合法风格标签。
func ParseStyle(raw string) (SectionStyle, error) {
	switch SectionStyle(strings.TrimSpace(raw)) {
	case StyleTimeline:
		return StyleTimeline, nil
	case StyleReference:
		return StyleReference, nil
	default:
		return "", fmt.Errorf("unknown section style %q", raw)
	}
}

// ParseDirection 将外部输入归一化为合法移动方向。
func ParseDirection(raw string) (MoveDirection, error) {
	switch MoveDirection(strings.TrimSpace(raw)) {
	case MoveUp:
		return MoveUp, nil
	case MoveDown:
		return MoveDown, nil
	default:
		return "", fmt.Errorf("unknown move direction %q", raw)
	}
}
