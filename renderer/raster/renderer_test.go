package rasterrenderer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/ByLCY/lessonpress/layout"
)

func samplePage() *layout.Result {
	accent := layout.Color{R: 37, G: 99, B: 235}
	return &layout.Result{
		Resources: layout.ResourceSet{Fonts: map[string]layout.FontResource{"Bold": {Name: "Bold", Style: "bold"}}},
		Pages: []layout.Page{
			{
				Number: 1, Width: 215.9, Height: 279.4,
				Lines:   []layout.Line{{X1: 17.6, Y1: 16, X2: 198.3, Y2: 16}},
				Rects:   []layout.Rect{{X: 17.6, Y: 20, Width: 50, Height: 8, Radius: 1, FillColor: &accent}},
				Circles: []layout.Circle{{CX: 30, CY: 40, R: 1, StrokeColor: &accent, StrokeWidth: 0.2}},
				Texts: []layout.TextBox{{
					Content: "Worksheet", X: 17.6, Y: 8, Width: 180, FontSize: 5, Font: "Bold", Align: "center",
					Lines: []layout.TextLine{{Content: "Worksheet", Height: 5}},
				}},
			},
			{Number: 2, Width: 215.9, Height: 279.4},
		},
	}
}

func TestRenderThumbnailWidth(t *testing.T) {
	data, err := NewRenderer(Options{Width: 200}).Render(samplePage())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 {
		t.Fatalf("expected width 200, got %d", b.Dx())
	}
	if b.Dy() != 259 {
		t.Fatalf("expected height 259 for letter aspect, got %d", b.Dy())
	}
}

func TestRenderDefaultsAndBounds(t *testing.T) {
	r := NewRenderer(Options{})
	if r.width != DefaultWidth || r.page != 1 {
		t.Fatalf("unexpected defaults: width=%d page=%d", r.width, r.page)
	}
	if _, err := NewRenderer(Options{Page: 3}).Render(samplePage()); err == nil {
		t.Fatalf("expected error for page out of range")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected error for empty result")
	}
	if _, err := NewRenderer(Options{Page: 2, Width: 50}).Render(samplePage()); err != nil {
		t.Fatalf("blank second page should render: %v", err)
	}
}
