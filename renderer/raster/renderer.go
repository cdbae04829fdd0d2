// Package rasterrenderer paints a single layout page to PNG, used for thumbnails.
package rasterrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/ByLCY/lessonpress/fonts"
	"github.com/ByLCY/lessonpress/layout"
	"github.com/ByLCY/lessonpress/renderer"
)

// DefaultWidth is the thumbnail width in pixels when none is configured.
const DefaultWidth = 480

const defaultStrokeWidth = 0.2 // mm

// Renderer rasterizes one page of a layout result.
type Renderer struct {
	width int
	page  int
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options selects the output width and the page (1-based, 0 means the first page).
type Options struct {
	Width int
	Page  int
}

// NewRenderer creates a PNG renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{width: opts.Width, page: opts.Page}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	if r.page <= 0 {
		r.page = 1
	}
	return r
}

// Render paints the configured page, scaling millimetres to the output width.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil || len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	if r.page > len(result.Pages) {
		return nil, fmt.Errorf("页码 %d 超出范围（共 %d 页）", r.page, len(result.Pages))
	}
	page := result.Pages[r.page-1]
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸无效: %gx%g", page.Width, page.Height)
	}

	scale := float64(r.width) / page.Width
	height := int(math.Ceil(page.Height * scale))
	dc := gg.NewContext(r.width, height)
	dc.Scale(scale, scale)

	bg := color.Color(color.White)
	if page.Background != nil {
		bg = rgba(*page.Background)
	}
	dc.SetColor(bg)
	dc.Clear()

	for _, l := range page.Lines {
		dc.SetColor(rgba(l.Color))
		dc.SetLineWidth(strokeWidth(l.Width) * scale)
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}
	for _, rc := range page.Rects {
		if rc.Radius > 0 {
			dc.DrawRoundedRectangle(rc.X, rc.Y, rc.Width, rc.Height, rc.Radius)
		} else {
			dc.DrawRectangle(rc.X, rc.Y, rc.Width, rc.Height)
		}
		paint(dc, rc.FillColor, rc.StrokeColor, rc.StrokeWidth*scale)
	}
	for _, c := range page.Circles {
		dc.DrawCircle(c.CX, c.CY, c.R)
		paint(dc, c.FillColor, c.StrokeColor, c.StrokeWidth*scale)
	}

	faces := newFaceCache(scale)
	for _, tb := range page.Texts {
		if err := drawText(dc, faces, tb, result.Resources.Fonts[tb.Font].Style); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// paint fills then strokes the current path; a nil colour skips that step. Line widths are
// in pixels because gg does not scale strokes with the transform.
func paint(dc *gg.Context, fill, stroke *layout.Color, width float64) {
	if fill != nil {
		dc.SetColor(rgba(*fill))
		if stroke != nil {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if stroke != nil {
		dc.SetColor(rgba(*stroke))
		dc.SetLineWidth(math.Max(width, 1))
		dc.Stroke()
	}
	dc.ClearPath()
}

func drawText(dc *gg.Context, faces *faceCache, tb layout.TextBox, style string) error {
	face, err := faces.get(style, tb.FontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(rgba(tb.Color))

	// 字体按像素尺寸加载，绘制时临时退出缩放，坐标自行换算。
	scale := faces.scale
	dc.Push()
	dc.Identity()
	defer dc.Pop()

	y := tb.Y
	for _, line := range tb.Lines {
		y += line.GapBefore
		baseline := (y + line.Height*0.8) * scale
		content := strings.TrimRight(line.Content, " ")
		w, _ := dc.MeasureString(content)
		x := tb.X * scale
		switch tb.Align {
		case "center":
			x += (tb.Width*scale - w) / 2
		case "right":
			x += tb.Width*scale - w
		}
		dc.DrawString(content, x, baseline)
		y += line.Height
	}
	return nil
}

type faceCache struct {
	scale float64
	fonts map[string]*truetype.Font
	faces map[string]font.Face
}

func newFaceCache(scale float64) *faceCache {
	return &faceCache{scale: scale, fonts: map[string]*truetype.Font{}, faces: map[string]font.Face{}}
}

func (fc *faceCache) get(style string, sizeMM float64) (font.Face, error) {
	style = strings.ToLower(strings.TrimSpace(style))
	px := math.Max(sizeMM*fc.scale, 1)
	key := fmt.Sprintf("%s@%.2f", style, px)
	if face, ok := fc.faces[key]; ok {
		return face, nil
	}
	f, ok := fc.fonts[style]
	if !ok {
		parsed, err := truetype.Parse(fonts.Raster(style))
		if err != nil {
			return nil, fmt.Errorf("解析位图字体失败: %w", err)
		}
		fc.fonts[style] = parsed
		f = parsed
	}
	// gg 以 72 DPI 解释 Size，此处 Size 直接取像素值。
	face := truetype.NewFace(f, &truetype.Options{Size: px, DPI: 72, Hinting: font.HintingFull})
	fc.faces[key] = face
	return face, nil
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return defaultStrokeWidth
	}
	return w
}

func rgba(c layout.Color) color.Color {
	return color.NRGBA{R: uint8(clamp(c.R)), G: uint8(clamp(c.G)), B: uint8(clamp(c.B)), A: 255}
}

func clamp(v int) int { return max(0, min(255, v)) }
