package compose

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/glyph"
	"github.com/ByLCY/lessonpress/layout"
)

// maxDrillCells caps the ghost cells drawn for one practice-drill answer.
const maxDrillCells = 10

// Worksheet lays out the worksheet body followed by its answer key.
func (c *Composer) Worksheet(title string, w *content.Worksheet) (*layout.Result, error) {
	d := c.newDocument(title)
	d.titleBlock()
	d.nameDateLine()

	n := 0
	for _, sec := range w.Sections {
		d.worksheetSection(sec, &n)
		d.flow.Advance(layout.Pt(12))
	}
	d.answerKey(w.Sections)
	return d.result(content.FormatWorksheet)
}

// worksheetSection draws one section. counter is the running number shared by all non-matching items.
func (d *document) worksheetSection(sec content.WorksheetSection, counter *int) {
	t := d.c.theme
	f := d.flow
	f.BreakIfPast(blockLimit)
	d.heading(sec.Heading, 15)
	f.Text(sec.Type.Label(), t.style(FontItalic, 9, t.Muted), d.x(), d.width(), layout.RoleSubtitle)
	f.Advance(layout.Pt(4))
	if sec.Instructions != "" {
		f.Text(sec.Instructions, t.style(FontItalic, t.bodySize(), t.Ink), d.x(), d.width(), layout.RoleInstruction)
		f.Advance(layout.Pt(6))
	}

	switch sec.Type {
	case content.ItemMatching:
		d.matching(sec.Items)
	case content.ItemPracticeDrill:
		for _, it := range sec.Items {
			*counter++
			d.drillItem(*counter, it)
		}
	default:
		for _, it := range sec.Items {
			*counter++
			f.BreakIfPast(itemLimit)
			f.Text(fmt.Sprintf("%d. %s", *counter, it.Prompt), t.body(), d.x(), d.width(), layout.RoleItem)
			if sec.Type.BrailleSpecific() {
				d.blank(d.x()+layout.Pt(14), d.width()-layout.Pt(14))
			} else {
				f.Advance(layout.Pt(8))
			}
		}
	}
}

// matching draws prompts in order on the left and a shuffled, lettered answer column on the right.
func (d *document) matching(items []content.WorksheetItem) {
	t := d.c.theme
	f := d.flow
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	d.c.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	gutter := layout.Pt(24)
	colW := (d.width() - gutter) / 2
	right := d.x() + colW + gutter
	st := t.body()
	for i := range items {
		f.BreakIfPast(itemLimit)
		y := f.Y
		hl := f.TextAt(fmt.Sprintf("%d. %s", i+1, items[i].Prompt), st, d.x(), y, colW, layout.RoleMatchLeft)
		hr := f.TextAt(fmt.Sprintf("%s. %s", letter(i), items[order[i]].Answer), st, right, y, colW, layout.RoleMatchRight)
		f.Advance(max(hl, hr) + layout.Pt(8))
	}

	f.BreakIfPast(itemLimit)
	f.Advance(layout.Pt(4))
	h := f.TextAt("Answers:", t.style(FontBold, t.bodySize(), t.Ink), d.x(), f.Y, layout.Pt(60), layout.RoleBlank)
	lineY := f.Y + h
	f.AddLine(layout.Line{X1: d.x() + layout.Pt(60), Y1: lineY, X2: d.x() + d.width(), Y2: lineY, Color: t.Rule, Width: layout.Pt(0.75)})
	f.Advance(h + layout.Pt(8))
}

// drillLetters keeps only A-Z from answer, upper-cased.
func drillLetters(answer string) string {
	var b strings.Builder
	for _, r := range answer {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return cases.Upper(language.Und).String(b.String())
}

// drillItem draws a prompt followed by one empty ghost cell per answer letter, or a plain answer line
// when the answer has no letters or more than maxDrillCells.
func (d *document) drillItem(n int, it content.WorksheetItem) {
	t := d.c.theme
	f := d.flow
	f.BreakIfPast(itemLimit)
	f.Text(fmt.Sprintf("%d. %s", n, it.Prompt), t.body(), d.x(), d.width(), layout.RoleItem)

	letters := len(drillLetters(it.Answer))
	if letters == 0 || letters > maxDrillCells {
		d.blank(d.x()+layout.Pt(14), d.width()-layout.Pt(14))
		return
	}
	f.Advance(layout.Pt(6))
	x := d.x() + layout.Pt(14)
	opts := glyph.CellOptions{Size: glyph.SizeMedium, Ghost: true}
	for i := 0; i < letters; i++ {
		x += d.c.glyphs.DrawCell(f, glyph.DotPattern{}, x, f.Y, opts) + glyph.Gap(glyph.SizeMedium)
	}
	f.Advance(glyph.CellHeight(glyph.SizeMedium, false) + layout.Pt(10))
}
