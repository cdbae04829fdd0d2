package layout

import (
	"math"
	"strings"
)

const defaultLineFactor = 1.3

// ComposeText 在 (x, y) 处排出一个文本块；返回的 TextBox.Height 满足
// Height == Σ(line.GapBefore + line.Height)。
func ComposeText(ts Typesetter, fonts map[string]FontResource, content string, st TextStyle, x, y, width float64) (TextBox, error) {
	fontSize := st.Size
	if fontSize <= 0 {
		fontSize = Pt(11)
	}
	lineHeight := st.LineHeight
	if lineHeight <= 0 {
		lineHeight = fontSize * defaultLineFactor
	}
	wrap := normalizeWrap(st.Wrap)

	lines, err := layoutLines(ts, content, width, resolveFont(st.Font, fonts), fontSize, lineHeight, wrap)
	if err != nil {
		return TextBox{}, err
	}

	totalHeight := 0.0
	defaultLeading := math.Max(lineHeight-fontSize, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = fontSize
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = defaultLeading
		}
		totalHeight += lines[i].GapBefore + lines[i].Height
	}

	tb := TextBox{
		Content:    content,
		X:          x,
		Y:          y,
		Width:      width,
		LineHeight: lineHeight,
		Font:       st.Font,
		FontSize:   fontSize,
		Color:      st.Color,
		Lines:      lines,
		Height:     totalHeight,
		Wrap:       wrap,
	}
	switch a := strings.ToLower(strings.TrimSpace(st.Align)); a {
	case "center", "right":
		tb.Align = a
	case "end":
		tb.Align = "right"
	}
	return tb, nil
}

func normalizeWrap(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "break-word":
		return "break-word"
	case "nowrap", "no-wrap":
		return "nowrap"
	default:
		return "anywhere"
	}
}

func resolveFont(name string, fonts map[string]FontResource) FontResource {
	if font, ok := fonts[name]; ok {
		return font
	}
	if font, ok := fonts["Body"]; ok {
		return font
	}
	return FontResource{Name: name}
}

// layoutLines 在没有排版后端时退化为按换行符拆分，宽度取容器宽度。
func layoutLines(ts Typesetter, content string, width float64, font FontResource, fontSize, lineHeight float64, wrap string) ([]TextLine, error) {
	if ts == nil {
		parts := strings.Split(content, "\n")
		out := make([]TextLine, 0, len(parts))
		leading := math.Max(lineHeight-fontSize, 0)
		for _, l := range parts {
			out = append(out, TextLine{Content: l, Width: width, Height: fontSize, GapBefore: leading})
		}
		out[0].GapBefore = 0
		return out, nil
	}
	lines, err := ts.LayoutLines(content, width, font, fontSize, lineHeight, wrap)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: width, Height: fontSize}}
	}
	lines[0].GapBefore = 0
	return lines, nil
}
