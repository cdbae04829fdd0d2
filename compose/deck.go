package compose

import (
	"fmt"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
)

// 16:9 slide, 10in × 5.625in, in millimetres.
const (
	SlideWidth  = 254.0
	SlideHeight = 142.875
	slideMargin = 15.0
)

// Deck lays out one page per slide. The first slide is the title slide; an empty deck gets a title
// slide built from title alone.
func (c *Composer) Deck(title string, deck *content.Deck) (*layout.Result, error) {
	flow := layout.NewFlow(layout.FlowOptions{
		Width:      SlideWidth,
		Height:     SlideHeight,
		Margin:     layout.Margin{Top: slideMargin, Right: slideMargin, Bottom: slideMargin, Left: slideMargin},
		Typesetter: c.ts,
		Fonts:      c.fonts,
	})

	slides := deck.Slides
	if len(slides) == 0 {
		slides = []content.Slide{{Title: title}}
	}
	for i, s := range slides {
		if i > 0 {
			flow.NewPage()
		}
		if i == 0 {
			c.titleSlide(flow, s)
		} else {
			c.contentSlide(flow, s)
		}
		if s.SpeakerNotes != "" {
			flow.SetNotes(s.SpeakerNotes)
		}
	}

	res, err := flow.Result(c.meta(title, content.FormatDeck))
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", content.FormatDeck, err)
	}
	return res, nil
}

func (c *Composer) titleSlide(f *layout.Flow, s content.Slide) {
	t := c.theme
	f.SetBackground(t.SlideDark)
	x, w := f.Margin().Left, f.ContentWidth()

	titleStyle := t.style(FontBold, 36, t.OnDark).WithAlign("center")
	h := f.MeasureText(s.Title, titleStyle, w)
	f.Y = SlideHeight*0.42 - h/2
	f.Text(s.Title, titleStyle, x, w, layout.RoleTitle)

	f.Advance(layout.Pt(10))
	ruleW := layout.Pt(96)
	f.AddLine(layout.Line{X1: (SlideWidth - ruleW) / 2, Y1: f.Y, X2: (SlideWidth + ruleW) / 2, Y2: f.Y, Color: t.Accent, Width: layout.Pt(3)})
	f.Advance(layout.Pt(14))

	if len(s.Bullets) > 0 {
		f.Text(s.Bullets[0], t.style(FontBody, 18, t.OnDark).WithAlign("center"), x, w, layout.RoleSubtitle)
	}
}

func (c *Composer) contentSlide(f *layout.Flow, s content.Slide) {
	t := c.theme
	f.SetBackground(t.SlideLight)
	x, w := f.Margin().Left, f.ContentWidth()

	f.Text(s.Title, t.style(FontBold, 28, t.Ink), x, w, layout.RoleHeading)
	f.Advance(layout.Pt(6))
	f.AddLine(layout.Line{X1: x, Y1: f.Y, X2: x + layout.Pt(72), Y2: f.Y, Color: t.Accent, Width: layout.Pt(3)})
	f.Advance(layout.Pt(16))

	st := t.style(FontBody, 18, t.Ink)
	indent := layout.Pt(20)
	for _, b := range s.Bullets {
		f.TextAt("•", st.WithColor(t.Accent), x, f.Y, indent, layout.RoleMarker)
		f.Text(b, st, x+indent, w-indent, layout.RoleBullet)
		f.Advance(layout.Pt(8))
	}
}
