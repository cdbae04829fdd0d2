// Package pptxrenderer writes layout results as an Office Open XML presentation.
//
// Each layout page becomes one slide drawn with preset shapes in the same z-order as the PDF
// renderer (background, lines, rects, circles, texts). Page notes become notes slides.
package pptxrenderer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ByLCY/lessonpress/layout"
	"github.com/ByLCY/lessonpress/renderer"
)

const (
	emuPerMM         = 36000
	defaultLineWidth = 0.2 // mm
	defaultTypeface  = "Calibri"
)

// Renderer implements renderer.Renderer for pptx output.
type Renderer struct {
	typeface string
	now      func() time.Time
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the pptx renderer.
type Options struct {
	// Typeface is the font family name written into every run; empty uses Calibri.
	Typeface string
	// Now stamps docProps/core.xml; nil uses time.Now.
	Now func() time.Time
}

// NewRenderer creates a pptx renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{typeface: opts.Typeface, now: opts.Now}
	if r.typeface == "" {
		r.typeface = defaultTypeface
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

type relationship struct {
	ID, Type, Target string
}

type slidePart struct {
	Index   int
	SlideID int
	RID     string
	Notes   bool
}

type packageData struct {
	Slides         []slidePart
	HasNotes       bool
	NoteCount      int
	NotesMasterRID string
	Width, Height  int64
	Creator        string
}

type slideData struct {
	Background string
	Shapes     []shape
}

type shape struct {
	ID           int
	Name         string
	Geom         string
	X, Y, CX, CY int64
	Adj          int64
	Fill, Stroke string
	StrokeW      int64
	FlipH, FlipV bool
	Paras        []paragraph
}

type paragraph struct {
	Text     string
	Align    string
	Size     int
	Bold     bool
	Italic   bool
	Color    string
	Typeface string
}

// Render packages every page of result as a slide.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	pkg := packageData{
		Width:   emu(result.Pages[0].Width),
		Height:  emu(result.Pages[0].Height),
		Creator: xmlEscape(orDefault(result.Meta.Creator, "lessonpress")),
	}
	for i, p := range result.Pages {
		notes := strings.TrimSpace(p.Notes) != ""
		pkg.Slides = append(pkg.Slides, slidePart{
			Index:   i + 1,
			SlideID: 256 + i,
			RID:     fmt.Sprintf("rId%d", i+2),
			Notes:   notes,
		})
		if notes {
			pkg.HasNotes = true
			pkg.NoteCount++
		}
	}
	pkg.NotesMasterRID = fmt.Sprintf("rId%d", len(pkg.Slides)+2)

	w := &partWriter{}
	w.template("[Content_Types].xml", "contentTypes", pkg)
	w.template("_rels/.rels", "rels", []relationship{
		{"rId1", relBase + "officeDocument", "ppt/presentation.xml"},
		{"rId2", "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties", "docProps/core.xml"},
		{"rId3", relBase + "extended-properties", "docProps/app.xml"},
	})
	w.template("docProps/core.xml", "core", r.coreProps(result.Meta))
	w.template("docProps/app.xml", "app", pkg)
	w.template("ppt/presentation.xml", "presentation", pkg)
	w.template("ppt/_rels/presentation.xml.rels", "rels", presentationRels(pkg))
	w.raw("ppt/presProps.xml", presProps)
	w.raw("ppt/viewProps.xml", viewProps)
	w.raw("ppt/tableStyles.xml", tableStyles)
	w.raw("ppt/theme/theme1.xml", theme)
	w.template("ppt/slideMasters/slideMaster1.xml", "master", nil)
	w.template("ppt/slideMasters/_rels/slideMaster1.xml.rels", "rels", []relationship{
		{"rId1", relBase + "slideLayout", "../slideLayouts/slideLayout1.xml"},
		{"rId2", relBase + "theme", "../theme/theme1.xml"},
	})
	w.template("ppt/slideLayouts/slideLayout1.xml", "layout", nil)
	w.template("ppt/slideLayouts/_rels/slideLayout1.xml.rels", "rels", []relationship{
		{"rId1", relBase + "slideMaster", "../slideMasters/slideMaster1.xml"},
	})
	if pkg.HasNotes {
		w.template("ppt/notesMasters/notesMaster1.xml", "notesMaster", nil)
		w.template("ppt/notesMasters/_rels/notesMaster1.xml.rels", "rels", []relationship{
			{"rId1", relBase + "theme", "../theme/theme2.xml"},
		})
		w.raw("ppt/theme/theme2.xml", theme)
	}

	for i, page := range result.Pages {
		part := pkg.Slides[i]
		rels := []relationship{{"rId1", relBase + "slideLayout", "../slideLayouts/slideLayout1.xml"}}
		if part.Notes {
			rels = append(rels, relationship{"rId2", relBase + "notesSlide", fmt.Sprintf("../notesSlides/notesSlide%d.xml", part.Index)})
		}
		w.template(fmt.Sprintf("ppt/slides/slide%d.xml", part.Index), "slide", r.slide(page, result.Resources))
		w.template(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", part.Index), "rels", rels)
		if !part.Notes {
			continue
		}
		w.template(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", part.Index), "notes", noteParagraphs(page.Notes))
		w.template(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", part.Index), "rels", []relationship{
			{"rId1", relBase + "notesMaster", "../notesMasters/notesMaster1.xml"},
			{"rId2", relBase + "slide", fmt.Sprintf("../slides/slide%d.xml", part.Index)},
		})
	}
	return w.finish()
}

func presentationRels(pkg packageData) []relationship {
	rels := []relationship{{"rId1", relBase + "slideMaster", "slideMasters/slideMaster1.xml"}}
	for _, s := range pkg.Slides {
		rels = append(rels, relationship{s.RID, relBase + "slide", fmt.Sprintf("slides/slide%d.xml", s.Index)})
	}
	next := len(pkg.Slides) + 2
	if pkg.HasNotes {
		rels = append(rels, relationship{pkg.NotesMasterRID, relBase + "notesMaster", "notesMasters/notesMaster1.xml"})
		next++
	}
	for _, name := range []string{"presProps", "viewProps", "theme", "tableStyles"} {
		target := name + ".xml"
		if name == "theme" {
			target = "theme/theme1.xml"
		}
		rels = append(rels, relationship{fmt.Sprintf("rId%d", next), relBase + name, target})
		next++
	}
	return rels
}

func (r *Renderer) coreProps(meta layout.DocumentMeta) map[string]string {
	return map[string]string{
		"Title":    xmlEscape(meta.Title),
		"Subject":  xmlEscape(meta.Subject),
		"Author":   xmlEscape(orDefault(meta.Author, meta.Creator)),
		"Keywords": xmlEscape(strings.Join(meta.Keywords, ", ")),
		"Created":  r.now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// slide converts one page into shapes; ids start at 2 because 1 is the group.
func (r *Renderer) slide(page layout.Page, res layout.ResourceSet) slideData {
	var sd slideData
	if page.Background != nil {
		sd.Background = hex(*page.Background)
	}
	id := 2
	next := func(kind string) (int, string) {
		n := id
		id++
		return n, fmt.Sprintf("%s %d", kind, n)
	}

	for _, l := range page.Lines {
		s := shape{Geom: "line", Stroke: hex(l.Color), StrokeW: emu(orWidth(l.Width))}
		s.ID, s.Name = next("Line")
		s.X, s.CX, s.FlipH = span(l.X1, l.X2)
		s.Y, s.CY, s.FlipV = span(l.Y1, l.Y2)
		sd.Shapes = append(sd.Shapes, s)
	}
	for _, rc := range page.Rects {
		s := shape{Geom: "rect", X: emu(rc.X), Y: emu(rc.Y), CX: emu(rc.Width), CY: emu(rc.Height)}
		s.ID, s.Name = next("Rectangle")
		if rc.Radius > 0 {
			s.Geom = "roundRect"
			s.Adj = roundRectAdj(rc)
		}
		s.Fill, s.Stroke, s.StrokeW = paint(rc.FillColor, rc.StrokeColor, rc.StrokeWidth)
		sd.Shapes = append(sd.Shapes, s)
	}
	for _, c := range page.Circles {
		s := shape{Geom: "ellipse", X: emu(c.CX - c.R), Y: emu(c.CY - c.R), CX: emu(2 * c.R), CY: emu(2 * c.R)}
		s.ID, s.Name = next("Oval")
		s.Fill, s.Stroke, s.StrokeW = paint(c.FillColor, c.StrokeColor, c.StrokeWidth)
		sd.Shapes = append(sd.Shapes, s)
	}
	for _, tb := range page.Texts {
		s := shape{Geom: "rect", X: emu(tb.X), Y: emu(tb.Y), CX: emu(tb.Width), CY: emu(math.Max(tb.Height, tb.FontSize))}
		s.ID, s.Name = next("TextBox")
		s.Paras = r.paragraphs(tb, res)
		sd.Shapes = append(sd.Shapes, s)
	}
	return sd
}

func (r *Renderer) paragraphs(tb layout.TextBox, res layout.ResourceSet) []paragraph {
	style := strings.ToLower(res.Fonts[tb.Font].Style)
	base := paragraph{
		Align:    align(tb.Align),
		Size:     int(math.Round(tb.FontSize * layout.MmToPt * 100)),
		Bold:     strings.Contains(style, "bold"),
		Italic:   strings.Contains(style, "italic") || strings.Contains(style, "oblique"),
		Color:    hex(tb.Color),
		Typeface: r.typeface,
	}
	var out []paragraph
	for _, line := range strings.Split(tb.Content, "\n") {
		p := base
		p.Text = xmlEscape(line)
		out = append(out, p)
	}
	return out
}

func noteParagraphs(notes string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(notes), "\n") {
		out = append(out, xmlEscape(line))
	}
	return out
}

// partWriter streams package parts into a zip archive and keeps the first error.
type partWriter struct {
	buf bytes.Buffer
	zw  *zip.Writer
	err error
}

func newPartWriter() *partWriter {
	w := &partWriter{}
	w.zw = zip.NewWriter(&w.buf)
	return w
}

func (w *partWriter) raw(name, body string) {
	if w.err != nil {
		return
	}
	f, err := w.zw.Create(name)
	if err != nil {
		w.err = fmt.Errorf("create %s: %w", name, err)
		return
	}
	if _, err := f.Write([]byte(body)); err != nil {
		w.err = fmt.Errorf("write %s: %w", name, err)
	}
}

func (w *partWriter) template(name, tmpl string, data any) {
	if w.err != nil {
		return
	}
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, tmpl, data); err != nil {
		w.err = fmt.Errorf("render %s: %w", name, err)
		return
	}
	w.raw(name, b.String())
}

func (w *partWriter) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if err := w.zw.Close(); err != nil {
		return nil, fmt.Errorf("close pptx: %w", err)
	}
	return w.buf.Bytes(), nil
}

func emu(mm float64) int64 { return int64(math.Round(mm * emuPerMM)) }

// span returns offset, extent and whether the segment runs backwards along one axis.
func span(a, b float64) (int64, int64, bool) {
	if b < a {
		return emu(b), emu(a - b), true
	}
	return emu(a), emu(b - a), false
}

// roundRectAdj expresses the corner radius as the preset's 1/100000 fraction of the shorter side.
func roundRectAdj(rc layout.Rect) int64 {
	short := math.Min(rc.Width, rc.Height)
	if short <= 0 {
		return 0
	}
	return int64(math.Min(rc.Radius/short*100000, 50000))
}

func paint(fill, stroke *layout.Color, width float64) (string, string, int64) {
	var f, s string
	if fill != nil {
		f = hex(*fill)
	}
	if stroke != nil {
		s = hex(*stroke)
	}
	return f, s, emu(orWidth(width))
}

func orWidth(w float64) float64 {
	if w <= 0 {
		return defaultLineWidth
	}
	return w
}

func hex(c layout.Color) string {
	return fmt.Sprintf("%02X%02X%02X", clamp(c.R), clamp(c.G), clamp(c.B))
}

func clamp(v int) int { return max(0, min(255, v)) }

func align(a string) string {
	switch a {
	case "center":
		return "ctr"
	case "right":
		return "r"
	default:
		return "l"
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
