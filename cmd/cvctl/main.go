package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"phCV/internal/cv"
	"phCV/internal/pdf"
	"phCV/internal/render"
)

// cvctl 是离线调试工具：读取 CV JSON，按需应用一次分区操作，
// 然后输出规整后的 JSON、渲染的 HTML 或 PDF。
func main() {
	var (
		input  = flag.String("in", "", "CV JSON 文件路径（缺省使用种子文档）")
		output = flag.String("out", "", "输出文件路径（缺省写到标准输出；PDF 必填）")
		format = flag.String("format", "json", "输出格式：json | preview | print | pdf")

		addStyle  = flag.String("add", "", "追加自定义分区：timeline | reference")
		removeID  = flag.String("remove", "", "删除自定义分区 ID")
		sectionID = flag.String("section", "", "rename/retype/toggle/move 作用的分区 ID")
		rename    = flag.String("rename", "", "重命名分区标题")
		retype    = flag.String("retype", "", "切换分区展示形态：timeline | reference")
		toggle    = flag.String("toggle", "", "启用状态：on | off")
		move      = flag.String("move", "", "移动方向：up | down")
	)
	flag.Parse()

	data := cv.Default()
	if strings.TrimSpace(*input) != "" {
		raw, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("read input: %v", err)
		}
		data = cv.Decode(raw)
	}

	data, err := applyMutation(data, *addStyle, *removeID, *sectionID, *rename, *retype, *toggle, *move)
	if err != nil {
		log.Fatalf("apply mutation: %v", err)
	}
	data = cv.SyncCustomSections(data)

	result, err := renderOutput(data, *format)
	if err != nil {
		log.Fatalf("render output: %v", err)
	}

	if strings.TrimSpace(*output) == "" {
		if *format == "pdf" {
			log.Fatal("pdf output requires --out")
		}
		fmt.Print(string(result))
		return
	}
	if err := os.WriteFile(*output, result, 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

func applyMutation(data cv.CVData, addStyle, removeID, sectionID, rename, retype, toggle, move string) (cv.CVData, error) {
	if addStyle != "" {
		style, err := cv.ParseStyle(addStyle)
		if err != nil {
			return cv.CVData{}, err
		}
		return cv.AddCustomSection(data, style), nil
	}
	if removeID != "" {
		return cv.RemoveCustomSection(data, removeID), nil
	}

	if rename == "" && retype == "" && toggle == "" && move == "" {
		return data, nil
	}
	if strings.TrimSpace(sectionID) == "" {
		return cv.CVData{}, fmt.Errorf("missing --section for section mutation")
	}

	switch {
	case rename != "":
		return cv.RenameSection(data, sectionID, rename), nil
	case retype != "":
		style, err := cv.ParseStyle(retype)
		if err != nil {
			return cv.CVData{}, err
		}
		return cv.RetypeSection(data, sectionID, style), nil
	case toggle != "":
		switch toggle {
		case "on":
			return cv.ToggleSection(data, sectionID, true), nil
		case "off":
			return cv.ToggleSection(data, sectionID, false), nil
		default:
			return cv.CVData{}, fmt.Errorf("invalid --toggle value %q", toggle)
		}
	default:
		direction, err := cv.ParseDirection(move)
		if err != nil {
			return cv.CVData{}, err
		}
		return cv.MoveSection(data, sectionID, direction), nil
	}
}

func renderOutput(data cv.CVData, format string) ([]byte, error) {
	switch format {
	case "json":
		return cv.Encode(data)
	case "preview", "print":
		target, err := render.ParseTarget(format)
		if err != nil {
			return nil, err
		}
		html, err := render.Render(data, target)
		if err != nil {
			return nil, err
		}
		return []byte(html), nil
	case "pdf":
		html, err := render.Render(data, render.TargetPrint)
		if err != nil {
			return nil, err
		}
		return pdf.FromHTML(html)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
