// Package artifact maps a format identifier to its layout strategy and renderer and produces the
// finished files, including the three-file session bundle.
package artifact

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/ByLCY/lessonpress/compose"
	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
	"github.com/ByLCY/lessonpress/logger"
	"github.com/ByLCY/lessonpress/renderer"
)

// ErrUnsupportedFormat and FormatError are re-exported so callers need only this package.
var ErrUnsupportedFormat = content.ErrUnsupportedFormat

type FormatError = content.FormatError

// Kind tells deck artifacts apart from paginated documents.
type Kind string

const (
	KindDeck     Kind = "deck"
	KindDocument Kind = "document"
	KindBundle   Kind = "bundle"
)

// Artifact is one rendered file.
type Artifact struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Format      content.Format `json:"format"`
	Kind        Kind           `json:"kind"`
	Category    string         `json:"category"`
	ContentType string         `json:"contentType"`
	Extension   string         `json:"extension"`
	Data        []byte         `json:"-"`
	Pages       int            `json:"pages"`
	Layout      *layout.Result `json:"-"`
}

// FileName is Name plus the extension.
func (a Artifact) FileName() string { return a.Name + "." + a.Extension }

// FormatInfo describes one supported format for listings.
type FormatInfo struct {
	Format    content.Format `json:"format"`
	Category  string         `json:"category"`
	Kind      Kind           `json:"kind"`
	Extension string         `json:"extension"`
}

// Formats lists every supported format with its category and output kind.
func Formats() []FormatInfo {
	var out []FormatInfo
	for _, f := range content.Formats() {
		info := FormatInfo{Format: f, Category: content.CategoryLabel(f), Kind: KindDocument, Extension: "pdf"}
		switch {
		case f.IsDeck():
			info.Kind, info.Extension = KindDeck, "pptx"
		case f == content.FormatBundle:
			info.Kind, info.Extension = KindBundle, "zip"
		}
		out = append(out, info)
	}
	return out
}

// Dispatcher renders content models into artifacts.
type Dispatcher struct {
	composer *compose.Composer
	document renderer.Renderer
	deck     renderer.Renderer
	log      *logger.Logger
}

// NewDispatcher wires the composer with the PDF and pptx renderers. A nil logger discards output.
func NewDispatcher(c *compose.Composer, document, deck renderer.Renderer, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{composer: c, document: document, deck: deck, log: log.With("component", "artifact")}
}

// part is one strategy run of a render request.
type part struct {
	format content.Format
	title  string
	suffix string
	model  content.Model
}

// Render produces one artifact, or three for a session bundle (deck, handout, worksheet with key).
// Cancellation is checked before each artifact; a cancelled request returns no partial result.
func (d *Dispatcher) Render(ctx context.Context, format content.Format, title string, m content.Model) ([]Artifact, error) {
	parts, err := plan(format, title, m)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	d.log.Debug("render started", "format", format, "parts", len(parts))
	out := make([]Artifact, 0, len(parts))
	total := 0
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			d.log.Warn("render cancelled", "format", format, "completed", len(out))
			return nil, err
		}
		a, err := d.renderPart(p)
		if err != nil {
			d.log.Error("render failed", "format", p.format, "error", err)
			return nil, err
		}
		total += len(a.Data)
		out = append(out, a)
	}
	d.log.Info("render finished",
		"format", format,
		"artifacts", len(out),
		"bytes", total,
		"duration", time.Since(start),
	)
	return out, nil
}

// Layout composes without rendering; bundles yield their deck sub-model.
func (d *Dispatcher) Layout(format content.Format, title string, m content.Model) (*layout.Result, error) {
	parts, err := plan(format, title, m)
	if err != nil {
		return nil, err
	}
	return d.composer.Compose(parts[0].format, parts[0].title, parts[0].model)
}

func plan(format content.Format, title string, m content.Model) ([]part, error) {
	if content.CategoryLabel(format) == "" {
		return nil, &FormatError{Format: string(format)}
	}
	if content.IsNil(m) {
		return nil, fmt.Errorf("render %s: missing content", format)
	}
	if format != content.FormatBundle {
		return []part{{format: format, title: title, model: m}}, nil
	}
	b, ok := m.(*content.Bundle)
	if !ok {
		return nil, fmt.Errorf("render %s: unexpected content model %T", format, m)
	}
	return []part{
		{format: content.FormatDeck, title: title, suffix: "slides", model: b.Deck()},
		{format: content.FormatHandout, title: title + " Handout", suffix: "handout", model: b.HandoutModel()},
		{format: content.FormatWorksheet, title: title + " Worksheet", suffix: "worksheet", model: b.WorksheetModel()},
	}, nil
}

func (d *Dispatcher) renderPart(p part) (Artifact, error) {
	result, err := d.composer.Compose(p.format, p.title, p.model)
	if err != nil {
		return Artifact{}, fmt.Errorf("layout %s: %w", p.format, err)
	}

	a := Artifact{
		ID:          uuid.NewString(),
		Format:      p.format,
		Category:    content.CategoryLabel(p.format),
		Kind:        KindDocument,
		ContentType: renderer.ContentTypePDF,
		Extension:   "pdf",
		Pages:       len(result.Pages),
		Layout:      result,
	}
	r := d.document
	if p.format.IsDeck() {
		r = d.deck
		a.Kind, a.ContentType, a.Extension = KindDeck, renderer.ContentTypePPTX, "pptx"
	}
	if r == nil {
		return Artifact{}, fmt.Errorf("render %s: no %s renderer configured", p.format, a.Kind)
	}
	a.Data, err = r.Render(result)
	if err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", p.format, err)
	}
	a.Name = name(p.title, p.suffix, a.ID)
	return a, nil
}

// name slugs the title; an empty slug falls back to the artifact id.
func name(title, suffix, id string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = id
	}
	if suffix != "" && !strings.HasSuffix(slug, suffix) {
		slug += "-" + suffix
	}
	return slug
}
