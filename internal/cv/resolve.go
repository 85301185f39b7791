package cv

// TimelineEntry 是 timeline 风格区块的一条归一化渲染条目。
// Description 为富文本 HTML，逐字透传，渲染层负责以原样输出。
type TimelineEntry struct {
	Title       string
	Subtitle    string
	Dates       string
	Details     string
	Description string
}

// ReferenceEntry 是 reference 风格区块的一条归一化渲染条目。
type ReferenceEntry struct {
	Name     string
	Position string
	Phone    string
	Email    string
}

// ResolvedSection 是解析后的区块内容，两个渲染器共同消费。
// Style 决定 Timeline 与 References 中哪一个有效。
type ResolvedSection struct {
	ID         string
	Title      string
	Style      SectionStyle
	Timeline   []TimelineEntry
	References []ReferenceEntry
}

// joinPair 按"两者都有才加分隔符"的规则拼接两个可选字段。
func joinPair(left, right, sep string) string {
	switch {
	case left != "" && right != "":
		return left + sep + right
	case left != "":
		return left
	default:
		return right
	}
}

// ResolveSection 把一条顺序记录解析为归一化条目列表。
// 纯函数：输出只取决于两个入参。内容为空的区块返回 nil，整体不渲染。
func ResolveSection(section CVSection, data CVData) *ResolvedSection {
	switch section.Type {
	case SectionExperience:
		if len(data.Experience) == 0 {
			return nil
		}
		entries := make([]TimelineEntry, 0, len(data.Experience))
		for _, exp := range data.Experience {
			entries = append(entries, TimelineEntry{
				Title:       exp.Title,
				Subtitle:    exp.Company + " | " + exp.Location,
				Dates:       exp.StartDate + " - " + exp.EndDate,
				Details:     exp.Level + " | " + exp.Type,
				Description: exp.Description,
			})
		}
		return &ResolvedSection{ID: section.ID, Title: section.Title, Style: StyleTimeline, Timeline: entries}

	case SectionEducation:
		if len(data.Education) == 0 {
			return nil
		}
		entries := make([]TimelineEntry, 0, len(data.Education))
		for _, edu := range data.Education {
			entries = append(entries, TimelineEntry{
				Title:       edu.Degree,
				Subtitle:    edu.Institution + " | " + edu.Location,
				Dates:       edu.StartDate + " - " + edu.EndDate,
				Description: edu.Description,
			})
		}
		return &ResolvedSection{ID: section.ID, Title: section.Title, Style: StyleTimeline, Timeline: entries}

	case SectionReferences:
		if len(data.References) == 0 {
			return nil
		}
		entries := make([]ReferenceEntry, 0, len(data.References))
		for _, ref := range data.References {
			entries = append(entries, ReferenceEntry{
				Name:     ref.Name,
				Position: ref.Position,
				Phone:    ref.Phone,
				Email:    ref.Email,
			})
		}
		return &ResolvedSection{ID: section.ID, Title: section.Title, Style: StyleReference, References: entries}

	case SectionCustom:
		custom, ok := data.CustomSectionByID(section.ID)
		if !ok || len(custom.Items) == 0 {
			return nil
		}

		if custom.SectionType == StyleReference {
			entries := make([]ReferenceEntry, 0, len(custom.Items))
			for _, item := range custom.Items {
				entries = append(entries, ReferenceEntry{
					Name:     item.Title,
					Position: item.Subtitle,
					Phone:    item.Phone,
					Email:    item.Email,
				})
			}
			return &ResolvedSection{ID: section.ID, Title: section.Title, Style: StyleReference, References: entries}
		}

		entries := make([]TimelineEntry, 0, len(custom.Items))
		for _, item := range custom.Items {
			entries = append(entries, TimelineEntry{
				Title:       item.Title,
				Subtitle:    joinPair(item.Subtitle, item.Location, " | "),
				Dates:       joinPair(item.StartDate, item.EndDate, " - "),
				Description: item.Description,
			})
		}
		return &ResolvedSection{ID: section.ID, Title: section.Title, Style: StyleTimeline, Timeline: entries}
	}

	return nil
}

// ResolveEnabled 依序解析所有启用区块，内容为空的被整体跳过。
func ResolveEnabled(data CVData) []ResolvedSection {
	sections := EnabledSections(data)
	out := make([]ResolvedSection, 0, len(sections))
	for _, s := range sections {
		if resolved := ResolveSection(s, data); resolved != nil {
			out = append(out, *resolved)
		}
	}
	return out
}
