package render

import (
	"bytes"
	"html/template"
)

// previewTemplateString 是交互式预览模板。
// 目标是编辑器旁边的实时预览 DOM：类名留给前端样式表与脚本挂载，
// 尺寸用 mm 表达并随容器缩放。内容与顺序必须与打印模板保持一致。
const previewTemplateString = `<div class="cv-page cv-preview" data-renderer="preview">
  <div class="cv-col cv-col-left">
    <div class="cv-profile">
      <div class="cv-photo">
        {{if .Personal.ProfileImage}}<img src="{{.Personal.ProfileImage | safeURL}}" alt="Profile" />{{else}}<div class="cv-photo-placeholder">Photo</div>{{end}}
      </div>
      <h2 class="cv-name">{{.Personal.FullName}}</h2>
      <span class="cv-position">{{.Personal.Position}}</span>
    </div>

    <div class="cv-block">
      <h2 class="cv-heading">About me</h2>
      <div class="cv-about">{{.Personal.AboutMe}}</div>
    </div>

    {{if .Training}}
    <div class="cv-block">
      <h2 class="cv-heading">Training</h2>
      {{range .Training}}
      <div class="cv-training">
        <h3>{{.Title}}</h3>
        <p>{{.Date}}</p>
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Skills}}
    <div class="cv-block">
      <h2 class="cv-heading">Skill</h2>
      {{range .Skills}}
      <div class="cv-bar-row">
        <span>{{.Label}}</span>
        <div class="cv-bar"><div class="cv-bar-fill" style="{{.Width | pct}}"></div></div>
      </div>
      {{end}}
    </div>
    {{end}}

    {{if .Languages}}
    <div class="cv-block">
      <h2 class="cv-heading">Language</h2>
      {{range .Languages}}
      <div class="cv-bar-row">
        <span>{{.Label}}</span>
        <div class="cv-bar"><div class="cv-bar-fill" style="{{.Width | pct}}"></div></div>
      </div>
      {{end}}
    </div>
    {{end}}

    <div class="cv-block">
      <h2 class="cv-heading">Contact me</h2>
      <ul class="cv-contact">
        {{if .Personal.Phone}}<li><a href="tel:{{.Personal.Phone | safeURL}}">{{.Personal.Phone}}</a></li>{{end}}
        {{if .Personal.Email}}<li><a href="mailto:{{.Personal.Email | safeURL}}">{{.Personal.Email}}</a></li>{{end}}
        {{if .Personal.Github}}<li><a href="{{.Personal.Github | safeURL}}">{{.GithubLabel}}</a></li>{{end}}
        {{if .Personal.Linkedin}}<li><a href="{{.Personal.Linkedin | safeURL}}">{{.Personal.FullName}}</a></li>{{end}}
        {{if .Personal.Location}}<li><span>{{.Personal.Location}}</span></li>{{end}}
      </ul>
    </div>
  </div>

  <div class="cv-col cv-col-right">
    {{range .Sections}}
    <div class="cv-section" data-section-id="{{.ID}}">
      <h2 class="cv-heading">{{.Title}}</h2>
      {{if eq .Style "reference"}}
      {{range .References}}
      <div class="cv-reference">
        <h3>{{.Name}}</h3>
        <p>{{.Position}}</p>
        {{if .Phone}}<div><span>Phone: </span><a href="tel:{{.Phone | safeURL}}">{{.Phone}}</a></div>{{end}}
        {{if .Email}}<div><span>Email: </span><a href="mailto:{{.Email | safeURL}}">{{.Email}}</a></div>{{end}}
      </div>
      {{end}}
      {{else}}
      <ul class="cv-timeline">
        {{range .Timeline}}
        <li class="cv-timeline-item">
          <h3>{{.Title}}</h3>
          {{if or .Subtitle .Dates .Details}}
          <p>
            {{if .Subtitle}}{{.Subtitle}}{{end}}
            {{if .Dates}}<br />{{.Dates}}{{end}}
            {{if .Details}}<br />{{.Details}}{{end}}
          </p>
          {{end}}
          {{if .Description}}<div class="cv-description">{{.Description | safeHTML}}</div>{{end}}
        </li>
        {{end}}
      </ul>
      {{end}}
    </div>
    {{end}}
  </div>
</div>
`

var previewTemplate = template.Must(template.New("preview").Funcs(templateFuncs()).Parse(previewTemplateString))

func renderPreview(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
