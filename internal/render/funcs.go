package render

import (
	"fmt"
	"html/template"
)

// templateFuncs 提供两个模板共用的辅助函数。
// Go 模板默认转义 HTML，富文本描述必须经 safeHTML 原样输出。
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"safeCSS":  func(s string) template.CSS { return template.CSS(s) },
		"safeURL":  func(s string) template.URL { return template.URL(s) },
		"pct":      func(w int) template.CSS { return template.CSS(fmt.Sprintf("width: %d%%", w)) },
	}
}
