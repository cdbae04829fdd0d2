package layout

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// fontSize/lineHeight/width 均为毫米。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontResource, fontSize float64, lineHeight float64, wrap string) ([]TextLine, error)
}

// TextStyle 描述一段文本的排版参数。
type TextStyle struct {
	Font       string  // ResourceSet.Fonts 中的名称
	Size       float64 // 字号（mm）
	LineHeight float64 // 行高（mm），<=0 时取 Size*1.3
	Color      Color
	Align      string
	Wrap       string
}

// WithColor 返回替换颜色后的副本。
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}

// WithAlign 返回替换对齐方式后的副本。
func (s TextStyle) WithAlign(align string) TextStyle {
	s.Align = align
	return s
}
