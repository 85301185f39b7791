// Package render 把 CVData 渲染成 HTML 文档。
//
// 同一份 Document 视图模型驱动两个互相独立的模板：
// 交互式预览（preview）与定尺寸打印稿（print）。
// 两者的文本内容与顺序必须一致，只允许布局/样式不同。
package render

import (
	"fmt"
	"strings"

	"phCV/internal/cv"
)

// Target 选择输出模板。
type Target string

const (
	TargetPreview Target = "preview"
	TargetPrint   Target = "print"
)

// ParseTarget 归一化外部输入的渲染目标。
func ParseTarget(raw string) (Target, error) {
	switch Target(strings.TrimSpace(raw)) {
	case TargetPreview:
		return TargetPreview, nil
	case TargetPrint:
		return TargetPrint, nil
	default:
		return "", fmt.Errorf("unknown render target %q", raw)
	}
}

// Bar 是左栏技能/语言进度条的一行。
// Width 已被裁剪进 [0,100]；Label 保留原始数值，越界只影响视觉填充。
type Bar struct {
	Label string
	Width int
}

// Document 是两个模板共同消费的视图模型。
// 渲染是 (启用区块, 解析条目, 个人信息) 的纯函数，模板之间不共享状态。
type Document struct {
	Personal    cv.PersonalDetails
	GithubLabel string
	Training    []cv.Training
	Skills      []Bar
	Languages   []Bar
	Sections    []cv.ResolvedSection
}

// clampLevel 把进度值裁剪进 [0,100]，越界输入不报错只裁剪。
func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// BuildDocument 组装视图模型：解析启用区块并准备左栏数据。
func BuildDocument(data cv.CVData) Document {
	doc := Document{
		Personal:    data.PersonalDetails,
		GithubLabel: strings.TrimPrefix(data.PersonalDetails.Github, "https://github.com/"),
		Training:    data.Training,
		Sections:    cv.ResolveEnabled(data),
	}
	for _, s := range data.Skills {
		doc.Skills = append(doc.Skills, Bar{
			Label: fmt.Sprintf("%s (%d%%)", s.Name, s.Level),
			Width: clampLevel(s.Level),
		})
	}
	for _, l := range data.Languages {
		doc.Languages = append(doc.Languages, Bar{
			Label: l.Name,
			Width: clampLevel(l.Level),
		})
	}
	return doc
}

// Render 按目标渲染整份文档。
func Render(data cv.CVData, target Target) (string, error) {
	doc := BuildDocument(data)
	switch target {
	case TargetPrint:
		return renderPrint(doc)
	case TargetPreview:
		return renderPreview(doc)
	default:
		return "", fmt.Errorf("unknown render target %q", target)
	}
}
