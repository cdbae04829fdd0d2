package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/glyph"
	"github.com/ByLCY/lessonpress/layout"
)

// answerKey starts a new page and replays the sections in their original order. Matching sections
// list "{i}: answer" in prompt order; all other items reuse the body's running number.
func (d *document) answerKey(sections []content.WorksheetSection) {
	t := d.c.theme
	f := d.flow
	f.NewPage()
	f.Text("Answer Key", t.style(FontBold, 18, t.Ink), d.x(), d.width(), layout.RoleKeyHeading)
	f.Advance(layout.Pt(4))
	d.rule(t.Accent, 1.5, layout.Pt(72))
	f.Advance(layout.Pt(10))

	n := 0
	for _, sec := range sections {
		f.BreakIfPast(blockLimit)
		f.Text(sec.Heading, t.style(FontBold, 12, t.Ink), d.x(), d.width(), layout.RoleHeading)
		f.Advance(layout.Pt(4))
		for i, it := range sec.Items {
			f.BreakIfPast(itemLimit)
			if sec.Type == content.ItemMatching {
				d.keyLine(fmt.Sprintf("%d: %s", i+1, it.Answer), "")
				continue
			}
			n++
			inline := ""
			if sec.Type.BrailleSpecific() {
				inline = it.Answer
			}
			d.keyLine(fmt.Sprintf("%d. %s", n, it.Answer), inline)
		}
		f.Advance(layout.Pt(10))
	}
}

// keyLine prints one answer. When inline is a single character the table maps, a small cell is drawn
// beside the text.
func (d *document) keyLine(text, inline string) {
	t := d.c.theme
	f := d.flow
	x := d.x() + layout.Pt(8)
	width := d.width() - layout.Pt(8)

	inline = strings.TrimSpace(inline)
	if utf8.RuneCountInString(inline) == 1 {
		ch, _ := utf8.DecodeRuneInString(inline)
		if _, ok := d.c.glyphs.Table().Lookup(ch); ok {
			y := f.Y
			cw := glyph.CellWidth(glyph.SizeSmall)
			tb := f.TextBoxAt(text, t.body(), x, y, width-cw-layout.Pt(10), layout.RoleAnswer)
			cx := x + layout.Pt(10)
			if len(tb.Lines) > 0 {
				cx += tb.Lines[0].Width
			}
			cx = min(cx, d.x()+d.width()-cw)
			d.c.glyphs.DrawChar(f, ch, cx, y, glyph.CellOptions{Size: glyph.SizeSmall})
			f.Y = y + max(tb.Height, d.c.glyphs.CharHeight(ch, glyph.SizeSmall))
			f.Advance(layout.Pt(4))
			return
		}
	}
	f.Text(text, t.body(), x, width, layout.RoleAnswer)
	f.Advance(layout.Pt(4))
}
