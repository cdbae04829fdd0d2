package compose

import (
	"fmt"
	"unicode/utf8"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
)

// US Letter geometry, in points.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	pageMargin = 50.0

	// Cursor positions past which the next element starts a new page.
	limitBlock = 650.0 // heading followed by a multi-line block
	limitItem  = 685.0 // single item

	headerTitleY = 30.0
	headerRuleY  = 46.0
	pageTop      = 56.0

	maxHeaderTitle = 60
)

var (
	blockLimit = layout.Pt(limitBlock)
	itemLimit  = layout.Pt(limitItem)
)

// document is the per-render state of a paginated artifact.
type document struct {
	c      *Composer
	flow   *layout.Flow
	title  string
	header string
}

func (c *Composer) newDocument(title string) *document {
	flow := layout.NewFlow(layout.FlowOptions{
		Width:  layout.Pt(pageWidth),
		Height: layout.Pt(pageHeight),
		Margin: layout.Margin{
			Top:    layout.Pt(pageMargin),
			Right:  layout.Pt(pageMargin),
			Bottom: layout.Pt(pageMargin),
			Left:   layout.Pt(pageMargin),
		},
		Top:        layout.Pt(pageTop),
		Typesetter: c.ts,
		Fonts:      c.fonts,
	})
	d := &document{c: c, flow: flow, title: title, header: truncateTitle(title, maxHeaderTitle)}
	flow.OnNewPage(d.decorate)
	return d
}

// truncateTitle shortens s to at most limit runes, ending in an ellipsis when cut.
func truncateTitle(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}

func (d *document) x() float64     { return d.flow.Margin().Left }
func (d *document) width() float64 { return d.flow.ContentWidth() }

// decorate draws the running header of pages 2 and later.
func (d *document) decorate(f *layout.Flow) {
	t := d.c.theme
	st := t.style(FontBody, 9, t.Muted)
	x, w := d.x(), d.width()
	f.TextAt(d.header, st.WithAlign("left"), x, layout.Pt(headerTitleY), w*0.75, layout.RoleHeader)
	f.TextAt(fmt.Sprintf("Page %d", f.Page()), st.WithAlign("right"), x, layout.Pt(headerTitleY), w, layout.RolePageNumber)
	f.AddLine(layout.Line{
		X1: x, Y1: layout.Pt(headerRuleY), X2: x + w, Y2: layout.Pt(headerRuleY),
		Color: t.Rule, Width: layout.Pt(0.5),
	})
}

// titleBlock draws the page-1 title, generation date and accent rule.
func (d *document) titleBlock() {
	t := d.c.theme
	f := d.flow
	f.Text(d.title, t.style(FontBold, 22, t.Ink), d.x(), d.width(), layout.RoleTitle)
	f.Advance(layout.Pt(4))
	f.Text("Generated "+d.c.now().Format("January 2, 2006"), t.style(FontBody, 10, t.Muted), d.x(), d.width(), layout.RoleSubtitle)
	f.Advance(layout.Pt(6))
	d.rule(t.Accent, 2, d.width())
	f.Advance(layout.Pt(16))
}

// rule draws a horizontal rule of weight pt at the cursor.
func (d *document) rule(color layout.Color, weight, width float64) {
	y := d.flow.Y
	d.flow.AddLine(layout.Line{X1: d.x(), Y1: y, X2: d.x() + width, Y2: y, Color: color, Width: layout.Pt(weight)})
	d.flow.Advance(layout.Pt(weight))
}

// nameDateLine draws the "Name / Date" blanks used by worksheets and quizzes.
func (d *document) nameDateLine() {
	t := d.c.theme
	f := d.flow
	st := t.body()
	half := d.width() / 2
	h := f.TextAt("Name:", st, d.x(), f.Y, half, layout.RoleBlank)
	f.TextAt("Date:", st, d.x()+half, f.Y, half, layout.RoleBlank)
	lineY := f.Y + h
	f.AddLine(layout.Line{X1: d.x() + layout.Pt(36), Y1: lineY, X2: d.x() + half - layout.Pt(16), Y2: lineY, Color: t.Rule, Width: layout.Pt(0.5)})
	f.AddLine(layout.Line{X1: d.x() + half + layout.Pt(32), Y1: lineY, X2: d.x() + d.width(), Y2: lineY, Color: t.Rule, Width: layout.Pt(0.5)})
	f.Advance(h + layout.Pt(12))
}

// heading draws a section heading.
func (d *document) heading(text string, sizePt float64) float64 {
	t := d.c.theme
	return d.flow.Text(text, t.style(FontBold, sizePt, t.Ink), d.x(), d.width(), layout.RoleHeading)
}

// blank draws an answer line starting at x.
func (d *document) blank(x, width float64) {
	f := d.flow
	y := f.Y + layout.Pt(16)
	f.AddLine(layout.Line{X1: x, Y1: y, X2: x + width, Y2: y, Color: d.c.theme.Rule, Width: layout.Pt(0.75)})
	f.Advance(layout.Pt(22))
}

// bullet draws one bulleted line at indent pt and returns its height.
func (d *document) bullet(text string, indent float64, role layout.Role) float64 {
	t := d.c.theme
	f := d.flow
	st := t.body()
	x := d.x() + layout.Pt(indent)
	f.TextAt("•", st.WithColor(t.Accent), x, f.Y, layout.Pt(10), layout.RoleMarker)
	return f.Text(text, st, x+layout.Pt(12), d.width()-layout.Pt(indent+12), role)
}

// letter returns A, B, … Z, AA, AB, … for index i.
func letter(i int) string {
	s := ""
	for i++; i > 0; i = (i - 1) / 26 {
		s = string(rune('A'+(i-1)%26)) + s
	}
	return s
}

func (d *document) result(format content.Format) (*layout.Result, error) {
	res, err := d.flow.Result(d.c.meta(d.title, format))
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", format, err)
	}
	return res, nil
}
