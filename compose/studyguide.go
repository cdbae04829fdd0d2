package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/glyph"
	"github.com/ByLCY/lessonpress/layout"
)

// StudyGuide lays out objectives, then sections with key terms and practice questions.
func (c *Composer) StudyGuide(title string, sg *content.StudyGuide) (*layout.Result, error) {
	d := c.newDocument(title)
	d.titleBlock()

	if len(sg.Objectives) > 0 {
		d.flow.BreakIfPast(blockLimit)
		d.heading("Objectives", 15)
		d.flow.Advance(layout.Pt(6))
		for i, o := range sg.Objectives {
			d.flow.BreakIfPast(itemLimit)
			d.flow.Text(fmt.Sprintf("%d. %s", i+1, o), c.theme.body(), d.x()+layout.Pt(8), d.width()-layout.Pt(8), layout.RoleObjective)
			d.flow.Advance(layout.Pt(3))
		}
		d.flow.Advance(layout.Pt(14))
	}

	for i, sec := range sg.Sections {
		d.section(i, sec)
		if len(sec.KeyTerms) > 0 {
			d.keyTerms(sec.KeyTerms)
		}
		if len(sec.PracticeQuestions) > 0 {
			d.practice(sec.PracticeQuestions)
		}
		d.flow.Advance(layout.Pt(14))
	}
	return d.result(content.FormatStudyGuide)
}

// keyTerms draws the terms beside a left accent bar, one bar segment per page.
func (d *document) keyTerms(terms []content.KeyTerm) {
	t := d.c.theme
	f := d.flow
	f.BreakIfPast(blockLimit)
	f.Advance(layout.Pt(6))
	f.Text("Key Terms", t.style(FontBold, 13, t.Ink), d.x(), d.width(), layout.RoleHeading)
	f.Advance(layout.Pt(4))

	barX := d.x()
	bar := func(top, bottom float64) {
		if bottom > top {
			f.AddRect(layout.Rect{X: barX, Y: top, Width: layout.Pt(3), Height: bottom - top, FillColor: t.Accent.Ptr()})
		}
	}
	start := f.Y
	indent := layout.Pt(14)
	for _, kt := range terms {
		if f.Y > itemLimit {
			bar(start, f.Y)
			f.NewPage()
			start = f.Y
		}
		text := kt.Term
		if kt.Definition != "" {
			text += ": " + kt.Definition
		}
		term := strings.TrimSpace(kt.Term)
		if utf8.RuneCountInString(term) == 1 {
			ch, _ := utf8.DecodeRuneInString(term)
			y := f.Y
			if cw, ok := d.c.glyphs.DrawChar(f, ch, d.x()+indent, y, glyph.CellOptions{Size: glyph.SizeSmall}); ok {
				tx := d.x() + indent + cw + layout.Pt(8)
				th := f.TextAt(text, t.body(), tx, y+layout.Pt(6), d.x()+d.width()-tx, layout.RoleKeyTerm)
				f.Y = y + max(d.c.glyphs.CharHeight(ch, glyph.SizeSmall), th+layout.Pt(6))
				f.Advance(layout.Pt(4))
				continue
			}
		}
		d.bullet(text, 14, layout.RoleKeyTerm)
		f.Advance(layout.Pt(4))
	}
	bar(start, f.Y)
}

// practice draws the practice questions on a tinted block using two passes: a dry run learns the
// block's height, then the background is painted at that height and the questions on top of it.
// A block that would cross a page boundary but fits on one page moves to a fresh page.
func (d *document) practice(questions []string) {
	t := d.c.theme
	f := d.flow
	f.BreakIfPast(blockLimit)
	f.Advance(layout.Pt(6))

	pad := layout.Pt(8)
	paint := func(fl *layout.Flow, segment func(top, bottom float64)) {
		top := fl.Y
		fl.Advance(pad)
		fl.Text("Practice Questions", t.style(FontBold, 13, t.Ink), d.x()+pad, d.width()-2*pad, layout.RoleHeading)
		fl.Advance(layout.Pt(4))
		for i, q := range questions {
			if fl.Y > itemLimit {
				if segment != nil {
					segment(top, fl.Y+pad)
				}
				fl.NewPage()
				top = fl.Y
				fl.Advance(pad)
			}
			fl.Text(fmt.Sprintf("%d. %s", i+1, q), t.body(), d.x()+pad, d.width()-2*pad, layout.RolePractice)
			fl.Advance(layout.Pt(4))
		}
		fl.Advance(pad)
		if segment != nil {
			segment(top, fl.Y)
		}
	}
	dry := func(fl *layout.Flow) { paint(fl, nil) }
	background := func(top, bottom float64) {
		f.AddRect(layout.Rect{
			X: d.x(), Y: top, Width: d.width(), Height: bottom - top,
			Radius:    layout.Pt(4),
			FillColor: t.Tint.Ptr(),
		})
	}

	height, crossed := f.Measure(dry)
	if crossed {
		if _, tooTall := f.MeasureAt(f.Top(), dry); !tooTall {
			f.NewPage()
			height, crossed = f.Measure(dry)
		}
	}
	if !crossed {
		background(f.Y, f.Y+height)
		paint(f, nil)
		return
	}
	paint(f, background)
}
