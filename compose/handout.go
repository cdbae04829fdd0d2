package compose

import (
	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
)

// Handout lays out the plain-section document. Key terms and practice questions are not rendered.
func (c *Composer) Handout(title string, h *content.Handout) (*layout.Result, error) {
	d := c.newDocument(title)
	d.titleBlock()
	for i, sec := range h.Sections {
		d.section(i, sec)
		d.flow.Advance(layout.Pt(14))
	}
	return d.result(content.FormatHandout)
}

// section draws heading, accent rule, body and bullets. Odd sections get a tinted heading band.
func (d *document) section(i int, sec content.Section) {
	t := d.c.theme
	f := d.flow
	f.BreakIfPast(blockLimit)

	if i%2 == 1 {
		hst := t.style(FontBold, 16, t.Ink)
		hh := f.MeasureText(sec.Heading, hst, d.width())
		pad := layout.Pt(5)
		f.AddRect(layout.Rect{
			X: d.x() - pad, Y: f.Y - pad,
			Width: d.width() + 2*pad, Height: hh + 2*pad,
			Radius:    layout.Pt(3),
			FillColor: t.Tint.Ptr(),
		})
	}
	d.heading(sec.Heading, 16)
	f.Advance(layout.Pt(6))
	d.rule(t.Accent, 1.5, layout.Pt(72))
	f.Advance(layout.Pt(8))

	if sec.Content != "" {
		f.Text(sec.Content, t.body(), d.x(), d.width(), layout.RoleBody)
		f.Advance(layout.Pt(6))
	}
	for _, b := range sec.Bullets {
		f.BreakIfPast(itemLimit)
		d.bullet(b, 8, layout.RoleBullet)
		f.Advance(layout.Pt(3))
	}
}
