package cv

// SectionType 是 CVSection 的类型标签。
type SectionType string

const (
	SectionExperience SectionType = "experience"
	SectionEducation  SectionType = "education"
	SectionReferences SectionType = "references"
	SectionCustom     SectionType = "custom"
)

// SectionStyle 描述自定义区块的展示风格。
type SectionStyle string

const (
	StyleTimeline  SectionStyle = "timeline"
	StyleReference SectionStyle = "reference"
)

// PersonalDetails 是文档级单例的个人信息。
// ProfileImage 保存的是对象存储 key 或 data URI，渲染前由调用方内联。
type PersonalDetails struct {
	FullName     string `json:"fullName"`
	Position     string `json:"position"`
	AboutMe      string `json:"aboutMe"`
	ProfileImage string `json:"profileImage,omitempty"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Github       string `json:"github,omitempty"`
	Linkedin     string `json:"linkedin,omitempty"`
	Location     string `json:"location"`
}

// Experience 的日期为自由文本，不做解析；Description 为富文本 HTML。
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Level       string `json:"level"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description,omitempty"`
}

type Training struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Details string `json:"details,omitempty"`
}

// Skill.Level 表示进度条填充百分比 [0,100]。
// 模型层不校验；越界值由渲染层裁剪。
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type Language struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type Reference struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// CustomSection 是用户自建区块，id 在文档内唯一。
type CustomSection struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	SectionType SectionStyle        `json:"sectionType"`
	Items       []CustomSectionItem `json:"items"`
}

// CustomSectionItem 同时承载 timeline 与 reference 两种风格所需的字段，
// 与当前风格无关的字段保持原样但不会被渲染。
type CustomSectionItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// CVSection 是区块顺序表中的一行。
// 内建区块的 id 等于其名称（experience/education/references），
// 自定义区块的 id 与对应 CustomSection.ID 相同。
type CVSection struct {
	ID      string       `json:"id"`
	Type    SectionType  `json:"type"`
	Title   string       `json:"title"`
	Order   int          `json:"order"`
	Enabled bool         `json:"enabled"`
	Style   SectionStyle `json:"sectionType,omitempty"`
}

// CVData 是整份简历文档的聚合根。
// 所有变更操作遵循 copy-on-write：返回新聚合，绝不原地修改。
type CVData struct {
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Experience      []Experience    `json:"experience"`
	Education       []Education     `json:"education"`
	Training        []Training      `json:"training"`
	Skills          []Skill         `json:"skills"`
	Languages       []Language      `json:"languages"`
	References      []Reference     `json:"references"`
	CustomSections  []CustomSection `json:"customSections"`
	SectionOrder    []CVSection     `json:"sectionOrder"`
}

// Clone 返回深拷贝，供变更操作在副本上工作。
func (d CVData) Clone() CVData {
	out := d
	out.Experience = append([]Experience(nil), d.Experience...)
	out.Education = append([]Education(nil), d.Education...)
	out.Training = append([]Training(nil), d.Training...)
	out.Skills = append([]Skill(nil), d.Skills...)
	out.Languages = append([]Language(nil), d.Languages...)
	out.References = append([]Reference(nil), d.References...)
	out.SectionOrder = append([]CVSection(nil), d.SectionOrder...)
	out.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, cs := range d.CustomSections {
		copied := cs
		copied.Items = append([]CustomSectionItem(nil), cs.Items...)
		out.CustomSections[i] = copied
	}
	return out
}

// CustomSectionByID 返回指定 id 的自定义区块。
func (d CVData) CustomSectionByID(id string) (CustomSection, bool) {
	for _, cs := range d.CustomSections {
		if cs.ID == id {
			return cs, true
		}
	}
	return CustomSection{}, false
}
