package glyph

import (
	"unicode"

	"github.com/ByLCY/lessonpress/layout"
)

// Size selects one of the two cell geometries.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
)

// geometry is expressed in points.
type geometry struct {
	radius  float64
	spacing float64
	padding float64
	gap     float64
	label   float64
}

func geometryFor(s Size) geometry {
	if s == SizeMedium {
		return geometry{radius: 3, spacing: 12, padding: 4, gap: 4, label: 9}
	}
	return geometry{radius: 2, spacing: 8, padding: 3, gap: 3, label: 7}
}

const labelGap = 2.0 // pt between cell and label

// CellWidth returns the cell boundary width in mm.
func CellWidth(s Size) float64 {
	g := geometryFor(s)
	return layout.Pt(2*g.padding + 2*g.radius + g.spacing)
}

// CellHeight returns the vertical space a cell occupies in mm, including its label when labelled.
func CellHeight(s Size, labelled bool) float64 {
	g := geometryFor(s)
	h := 2*g.padding + 2*g.radius + 2*g.spacing
	if labelled {
		h += labelGap + g.label*1.2
	}
	return layout.Pt(h)
}

// Gap returns the horizontal gap between adjacent cells in mm.
func Gap(s Size) float64 { return layout.Pt(geometryFor(s).gap) }

// Sink receives the primitives of a drawn cell. *layout.Flow implements it.
type Sink interface {
	AddRect(layout.Rect)
	AddCircle(layout.Circle)
	AddText(layout.TextBox)
	AddGlyph(layout.GlyphCell)
}

// CellOptions controls one cell.
type CellOptions struct {
	Size  Size
	Label string
	// Ghost draws lowered dots as faint filled guides for tracing.
	Ghost bool
}

// Palette holds the colours used for cells.
type Palette struct {
	Ink     layout.Color // raised dots, labels
	Outline layout.Color // lowered dots
	Ghost   layout.Color // lowered dots in ghost mode
	Frame   layout.Color // cell boundary
}

// DefaultPalette is a print-friendly grey scale.
var DefaultPalette = Palette{
	Ink:     layout.Color{R: 17, G: 24, B: 39},
	Outline: layout.Color{R: 107, G: 114, B: 128},
	Ghost:   layout.Color{R: 229, G: 231, B: 235},
	Frame:   layout.Color{R: 156, G: 163, B: 175},
}

// Renderer draws cells for characters of its table.
type Renderer struct {
	table   *Table
	palette Palette
	font    string
}

// NewRenderer binds a table. A nil table means DefaultTable().
func NewRenderer(table *Table) *Renderer {
	if table == nil {
		table = DefaultTable()
	}
	return &Renderer{table: table, palette: DefaultPalette, font: "Body"}
}

// Table returns the lookup table in use.
func (r *Renderer) Table() *Table { return r.table }

// DrawCell draws pattern with its top-left corner at (x, y) mm and returns the cell width.
func (r *Renderer) DrawCell(sink Sink, p DotPattern, x, y float64, opts CellOptions) float64 {
	g := geometryFor(opts.Size)
	w := CellWidth(opts.Size)
	h := CellHeight(opts.Size, false)

	sink.AddRect(layout.Rect{
		X: x, Y: y, Width: w, Height: h,
		Radius:      layout.Pt(g.radius + 1),
		StrokeColor: r.palette.Frame.Ptr(),
		StrokeWidth: layout.Pt(0.5),
	})
	rad := layout.Pt(g.radius)
	for i := 0; i < 6; i++ {
		row, col := i/2, i%2
		dot := layout.Circle{
			CX: x + layout.Pt(g.padding+g.radius+float64(col)*g.spacing),
			CY: y + layout.Pt(g.padding+g.radius+float64(row)*g.spacing),
			R:  rad,
		}
		switch {
		case p[i]:
			dot.FillColor = r.palette.Ink.Ptr()
		case opts.Ghost:
			dot.FillColor = r.palette.Ghost.Ptr()
		default:
			dot.StrokeColor = r.palette.Outline.Ptr()
			dot.StrokeWidth = layout.Pt(0.6)
		}
		sink.AddCircle(dot)
	}

	if opts.Label != "" {
		size := layout.Pt(g.label)
		sink.AddText(layout.TextBox{
			Content:    opts.Label,
			X:          x,
			Y:          y + h + layout.Pt(labelGap),
			Width:      w,
			LineHeight: size * 1.2,
			Font:       r.font,
			FontSize:   size,
			Color:      r.palette.Ink,
			Lines:      []layout.TextLine{{Content: opts.Label, Width: w, Height: size}},
			Height:     size,
			Align:      "center",
			Wrap:       "nowrap",
			Role:       layout.RoleGlyphLabel,
		})
	}

	sink.AddGlyph(layout.GlyphCell{
		Pattern: p,
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		Size:    string(sizeOrDefault(opts.Size)),
		Label:   opts.Label,
		Ghost:   opts.Ghost,
	})
	return w
}

// DrawChar draws the cell for ch if the table maps it; ok is false otherwise and nothing is drawn.
// Characters other than letters and digits carry the table's label (for example "comma") under the
// cell unless opts already names one.
func (r *Renderer) DrawChar(sink Sink, ch rune, x, y float64, opts CellOptions) (width float64, ok bool) {
	p, found := r.table.Lookup(ch)
	if !found {
		return 0, false
	}
	if opts.Label == "" && needsLabel(ch) {
		opts.Label = r.table.Label(ch)
	}
	return r.DrawCell(sink, p, x, y, opts), true
}

// CharHeight returns the vertical space DrawChar uses for ch with an automatic label.
func (r *Renderer) CharHeight(ch rune, s Size) float64 {
	return CellHeight(s, needsLabel(ch))
}

func needsLabel(ch rune) bool { return !unicode.IsLetter(ch) && !unicode.IsDigit(ch) }

func sizeOrDefault(s Size) Size {
	if s == SizeMedium {
		return SizeMedium
	}
	return SizeSmall
}
