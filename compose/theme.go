package compose

import "github.com/ByLCY/lessonpress/layout"

// Theme holds the colours and body text metrics shared by all strategies.
type Theme struct {
	Ink    layout.Color
	Muted  layout.Color
	Accent layout.Color
	Tint   layout.Color // handout band and practice block background
	Rule   layout.Color // thin rules and blank answer lines

	SlideDark  layout.Color
	SlideLight layout.Color
	OnDark     layout.Color

	BodySize   float64 // pt
	LineFactor float64
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		Ink:        layout.Color{R: 31, G: 41, B: 55},
		Muted:      layout.Color{R: 107, G: 114, B: 128},
		Accent:     layout.Color{R: 37, G: 99, B: 235},
		Tint:       layout.Color{R: 239, G: 246, B: 255},
		Rule:       layout.Color{R: 156, G: 163, B: 175},
		SlideDark:  layout.Color{R: 15, G: 23, B: 42},
		SlideLight: layout.Color{R: 248, G: 250, B: 252},
		OnDark:     layout.Color{R: 241, G: 245, B: 249},
		BodySize:   11,
		LineFactor: 1.35,
	}
}

func (t Theme) lineFactor() float64 {
	if t.LineFactor <= 0 {
		return 1.3
	}
	return t.LineFactor
}

func (t Theme) bodySize() float64 {
	if t.BodySize <= 0 {
		return 11
	}
	return t.BodySize
}

// style builds a text style from a point size.
func (t Theme) style(font string, sizePt float64, color layout.Color) layout.TextStyle {
	return layout.TextStyle{
		Font:       font,
		Size:       layout.Pt(sizePt),
		LineHeight: layout.Pt(sizePt * t.lineFactor()),
		Color:      color,
	}
}

func (t Theme) body() layout.TextStyle { return t.style(FontBody, t.bodySize(), t.Ink) }
