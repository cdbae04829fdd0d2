package canvasrenderer

import (
	"math"
	"strings"
	"unicode"

	"github.com/ByLCY/lessonpress/layout"
)

// wrapLines 把 content 拆成不超过 width（mm）的行并回填行高与行距。
// 首行 GapBefore 为 0，其余行为 max(lineHeight-textHeight, 0)。
func wrapLines(content string, width float64, measure func(string) float64, wrap string, textHeight, lineHeight float64) []layout.TextLine {
	var lines []layout.TextLine
	switch wrap {
	case "nowrap":
		for _, p := range strings.Split(strings.ReplaceAll(content, "\r", ""), "\n") {
			lines = append(lines, layout.TextLine{Content: p, Width: measure(p)})
		}
	case "break-word":
		lines = breakRunes(content, limitOf(width), measure)
	default:
		lines = breakTokens(content, limitOf(width), measure)
	}
	if len(lines) == 0 {
		lines = []layout.TextLine{{}}
	}
	leading := math.Max(lineHeight-textHeight, 0)
	for i := range lines {
		lines[i].Height = textHeight
		lines[i].GapBefore = leading
	}
	lines[0].GapBefore = 0
	return lines
}

func limitOf(width float64) float64 {
	if width <= 0 {
		return math.MaxFloat64
	}
	return width
}

// lineBuilder 累积当前行内容与宽度。
type lineBuilder struct {
	lines   []layout.TextLine
	b       strings.Builder
	current float64
	wrapped bool // 上一行因宽度不足而结束
}

func (lb *lineBuilder) add(s string, w float64) {
	lb.b.WriteString(s)
	lb.current += w
}

// emit 结束当前行；force 为真时即使为空也输出（显式换行产生的空行）。
func (lb *lineBuilder) emit(force bool) {
	if lb.b.Len() == 0 && !force {
		return
	}
	lb.lines = append(lb.lines, layout.TextLine{Content: lb.b.String(), Width: lb.current})
	lb.b.Reset()
	lb.current = 0
	lb.wrapped = !force
}

// breakRunes 忽略空白机会，纯按宽度逐字符切分（仍然尊重显式换行）。
func breakRunes(content string, limit float64, measure func(string) float64) []layout.TextLine {
	var lb lineBuilder
	for _, r := range content {
		switch r {
		case '\r':
			continue
		case '\n':
			lb.emit(true)
			continue
		}
		s := string(r)
		w := measure(s)
		if lb.current > 0 && lb.current+w > limit {
			lb.emit(false)
		}
		lb.add(s, w)
	}
	lb.emit(true)
	return lb.lines
}

// breakTokens 优先在空白处分割，单个词超过限制时在词内拆分。
func breakTokens(content string, limit float64, measure func(string) float64) []layout.TextLine {
	var lb lineBuilder
	place := func(s string) {
		w := measure(s)
		if lb.current > 0 && lb.current+w > limit {
			lb.emit(false)
		}
		if lb.b.Len() == 0 && lb.wrapped && strings.TrimSpace(s) == "" {
			return // 折行后的行首空白
		}
		lb.add(s, w)
	}
	for _, token := range tokenize(content) {
		if token == "\n" {
			lb.emit(true)
			continue
		}
		if measure(token) <= limit {
			place(token)
			continue
		}
		for _, chunk := range splitByWidth(token, limit, measure) {
			place(chunk)
		}
	}
	lb.emit(true)
	return trimTrailingSpace(lb.lines, measure)
}

// trimTrailingSpace 去掉折行处行尾的空白，使行宽只包含可见内容。
func trimTrailingSpace(lines []layout.TextLine, measure func(string) float64) []layout.TextLine {
	for i := range lines {
		trimmed := strings.TrimRightFunc(lines[i].Content, unicode.IsSpace)
		if trimmed != lines[i].Content {
			lines[i].Content = trimmed
			lines[i].Width = measure(trimmed)
		}
	}
	return lines
}

// tokenize 把文本切成交替的空白/非空白片段，换行单独成为 "\n"。
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	lastSpace := false
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			continue
		}
		space := unicode.IsSpace(r)
		if b.Len() > 0 && space != lastSpace {
			flush()
		}
		lastSpace = space
		b.WriteRune(r)
	}
	flush()
	return tokens
}

func splitByWidth(token string, limit float64, measure func(string) float64) []string {
	if limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var cur []rune
	for _, r := range token {
		cur = append(cur, r)
		if len(cur) > 1 && measure(string(cur)) > limit {
			parts = append(parts, string(cur[:len(cur)-1]))
			cur = []rune{r}
		}
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}
