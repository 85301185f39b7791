package render

import (
	"bytes"
	"html/template"
)

// printTemplateString 是 PDF 渲染的 Go HTML 模板。
// 独立成篇：自带全部 CSS，按 A4 @ 96 DPI 定尺寸，交给无头浏览器直接打印。
// 区块内容与顺序必须与预览模板 100% 一致，允许不同的只有布局技术。
const printTemplateString = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        * { box-sizing: border-box; }
        body {
            margin: 0;
            padding: 0;
            font-family: Arial, Helvetica, sans-serif;
            font-size: 12px;
            color: #333333;
            background: white;
        }
        .cv-page {
            width: 794px;  /* A4 @ 96 DPI */
            min-height: 1122px;
            margin: 0;
            display: flex;
            background: white;
            overflow: hidden;
        }
        .col-left {
            width: 35%;
            min-height: 1122px;
            background: #eeeeee;
            padding: 20px;
        }
        .col-right {
            width: 65%;
            background: white;
            padding: 20px;
        }
        .photo {
            width: 175px;
            height: 175px;
            margin: 0 auto 8px;
            border: 3px solid #149ac5;
            border-radius: 50%;
            overflow: hidden;
            background: white;
            display: flex;
            align-items: center;
            justify-content: center;
        }
        .photo img { width: 100%; height: 100%; object-fit: cover; }
        .photo-placeholder { color: #9ca3af; }
        .profile { text-align: center; margin-bottom: 44px; }
        .name { font-weight: bold; font-size: 24px; text-transform: uppercase; color: #149ac5; margin: 0 0 4px; }
        .position { font-size: 14px; text-transform: uppercase; color: black; }
        .heading {
            position: relative;
            font-weight: bold;
            font-size: 15px;
            text-transform: uppercase;
            color: #149ac5;
            border: 1px solid #149ac5;
            padding: 6px 16px 6px 44px;
            margin: 0 0 16px;
        }
        .heading::before {
            content: '';
            position: absolute;
            left: 0; top: 0;
            width: 34px; height: 34px;
            background: #149ac5;
        }
        .block { margin-bottom: 32px; }
        .training { margin-bottom: 16px; }
        .training h3 { font-size: 13px; text-transform: uppercase; color: #149ac5; margin: 0; }
        .training p { margin: 0 0 4px; }
        .bar-row { margin-bottom: 8px; }
        .bar { width: 100%; height: 16px; background: #333333; }
        .bar-fill { height: 16px; background: #149ac5; }
        .contact { list-style: none; padding: 0; margin: 0; }
        .contact li { margin-bottom: 4px; }
        .contact a { color: #333333; text-decoration: none; }
        .section { margin-bottom: 32px; }
        .timeline { list-style: none; padding: 0; margin: 0; }
        .timeline li {
            position: relative;
            padding-left: 44px;
            margin-bottom: 36px;
            overflow: hidden;
        }
        .timeline li::after {
            content: '';
            position: absolute;
            width: 2px; height: 100%;
            background: #149ac5;
            top: 0; left: 8px;
        }
        .timeline li::before {
            content: '';
            position: absolute;
            width: 18px; height: 18px;
            left: 0; top: 0;
            border-radius: 50%;
            background: #149ac5;
            z-index: 2;
        }
        .timeline h3 { font-size: 14px; text-transform: uppercase; color: #149ac5; margin: 0 0 4px; }
        .timeline p { margin: 0 0 8px; }
        .reference { margin-bottom: 24px; }
        .reference h3 { font-size: 14px; font-weight: bold; text-transform: uppercase; color: #149ac5; margin: 0 0 4px; }
        .reference p { margin: 0 0 8px; }
        .reference a { color: #333333; text-decoration: none; }
        @page { size: A4; margin: 0; }
        @media print {
            * { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
        }
    </style>
</head>
<body>
<div class="cv-page">
    <div class="col-left">
        <div class="profile">
            <div class="photo">
                {{if .Personal.ProfileImage}}<img src="{{.Personal.ProfileImage | safeURL}}" alt="Profile" />{{else}}<div class="photo-placeholder">Photo</div>{{end}}
            </div>
            <h2 class="name">{{.Personal.FullName}}</h2>
            <span class="position">{{.Personal.Position}}</span>
        </div>

        <div class="block">
            <h2 class="heading">About me</h2>
            <div>{{.Personal.AboutMe}}</div>
        </div>

        {{if .Training}}
        <div class="block">
            <h2 class="heading">Training</h2>
            {{range .Training}}
            <div class="training">
                <h3>{{.Title}}</h3>
                <p>{{.Date}}</p>
            </div>
            {{end}}
        </div>
        {{end}}

        {{if .Skills}}
        <div class="block">
            <h2 class="heading">Skill</h2>
            {{range .Skills}}
            <div class="bar-row">
                <span>{{.Label}}</span>
                <div class="bar"><div class="bar-fill" style="{{.Width | pct}}"></div></div>
            </div>
            {{end}}
        </div>
        {{end}}

        {{if .Languages}}
        <div class="block">
            <h2 class="heading">Language</h2>
            {{range .Languages}}
            <div class="bar-row">
                <span>{{.Label}}</span>
                <div class="bar"><div class="bar-fill" style="{{.Width | pct}}"></div></div>
            </div>
            {{end}}
        </div>
        {{end}}

        <div class="block">
            <h2 class="heading">Contact me</h2>
            <ul class="contact">
                {{if .Personal.Phone}}<li><a href="tel:{{.Personal.Phone | safeURL}}">{{.Personal.Phone}}</a></li>{{end}}
                {{if .Personal.Email}}<li><a href="mailto:{{.Personal.Email | safeURL}}">{{.Personal.Email}}</a></li>{{end}}
                {{if .Personal.Github}}<li><a href="{{.Personal.Github | safeURL}}">{{.GithubLabel}}</a></li>{{end}}
                {{if .Personal.Linkedin}}<li><a href="{{.Personal.Linkedin | safeURL}}">{{.Personal.FullName}}</a></li>{{end}}
                {{if .Personal.Location}}<li><span>{{.Personal.Location}}</span></li>{{end}}
            </ul>
        </div>
    </div>

    <div class="col-right">
        {{range .Sections}}
        <div class="section">
            <h2 class="heading">{{.Title}}</h2>
            {{if eq .Style "reference"}}
            {{range .References}}
            <div class="reference">
                <h3>{{.Name}}</h3>
                <p>{{.Position}}</p>
                {{if .Phone}}<div><span>Phone: </span><a href="tel:{{.Phone | safeURL}}">{{.Phone}}</a></div>{{end}}
                {{if .Email}}<div><span>Email: </span><a href="mailto:{{.Email | safeURL}}">{{.Email}}</a></div>{{end}}
            </div>
            {{end}}
            {{else}}
            <ul class="timeline">
                {{range .Timeline}}
                <li>
                    <h3>{{.Title}}</h3>
                    {{if or .Subtitle .Dates .Details}}
                    <p>
                        {{if .Subtitle}}{{.Subtitle}}{{end}}
                        {{if .Dates}}<br />{{.Dates}}{{end}}
                        {{if .Details}}<br />{{.Details}}{{end}}
                    </p>
                    {{end}}
                    {{if .Description}}<div>{{.Description | safeHTML}}</div>{{end}}
                </li>
                {{end}}
            </ul>
            {{end}}
        </div>
        {{end}}
    </div>
</div>
</body>
</html>
`

var printTemplate = template.Must(template.New("print").Funcs(templateFuncs()).Parse(printTemplateString))

func renderPrint(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
