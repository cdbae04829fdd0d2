// Package compose lays out lesson content into pages of positioned primitives.
//
// Each strategy owns one layout.Flow for the duration of a call, so a Composer can be shared
// between goroutines as long as it was not built WithRand.
package compose

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/fonts"
	"github.com/ByLCY/lessonpress/glyph"
	"github.com/ByLCY/lessonpress/layout"
)

// Font names referenced by the produced text boxes.
const (
	FontBody   = "Body"
	FontBold   = "Bold"
	FontItalic = "Italic"
)

// DefaultFonts maps the font names to the embedded Latin Modern Sans faces.
func DefaultFonts() map[string]layout.FontResource {
	return map[string]layout.FontResource{
		FontBody:   {Name: FontBody, Src: fonts.Src(fonts.SansRegular), Style: "regular"},
		FontBold:   {Name: FontBold, Src: fonts.Src(fonts.SansBold), Style: "bold"},
		FontItalic: {Name: FontItalic, Src: fonts.Src(fonts.SansOblique), Style: "italic"},
	}
}

// Composer turns content models into layout results.
type Composer struct {
	ts     layout.Typesetter
	glyphs *glyph.Renderer
	theme  Theme
	fonts  map[string]layout.FontResource
	now    func() time.Time
	rng    *rand.Rand
}

// Option configures a Composer.
type Option func(*Composer)

// WithTheme overrides colours and body text metrics.
func WithTheme(t Theme) Option { return func(c *Composer) { c.theme = t } }

// WithClock sets the clock used for the "Generated" date line.
func WithClock(now func() time.Time) Option { return func(c *Composer) { c.now = now } }

// WithRand makes matching shuffles draw from r. *rand.Rand is not safe for concurrent use.
func WithRand(r *rand.Rand) Option { return func(c *Composer) { c.rng = r } }

// WithFonts replaces the font resources attached to every result.
func WithFonts(f map[string]layout.FontResource) Option {
	return func(c *Composer) { c.fonts = f }
}

// New builds a Composer. ts may be nil, in which case text is split on newlines only.
// A nil glyph renderer uses the embedded default table.
func New(ts layout.Typesetter, glyphs *glyph.Renderer, opts ...Option) *Composer {
	if glyphs == nil {
		glyphs = glyph.NewRenderer(nil)
	}
	c := &Composer{
		ts:     ts,
		glyphs: glyphs,
		theme:  DefaultTheme(),
		fonts:  DefaultFonts(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose lays out a single-artifact format. Bundles are split by the caller into their sub-models.
func (c *Composer) Compose(format content.Format, title string, m content.Model) (*layout.Result, error) {
	if content.IsNil(m) && content.CategoryLabel(format) != "" {
		return nil, fmt.Errorf("compose %s: missing content", format)
	}
	switch format {
	case content.FormatDeck:
		if d, ok := m.(*content.Deck); ok {
			return c.Deck(title, d)
		}
	case content.FormatHandout:
		if h, ok := m.(*content.Handout); ok {
			return c.Handout(title, h)
		}
	case content.FormatStudyGuide:
		if sg, ok := m.(*content.StudyGuide); ok {
			return c.StudyGuide(title, sg)
		}
	case content.FormatWorksheet:
		if w, ok := m.(*content.Worksheet); ok {
			return c.Worksheet(title, w)
		}
	case content.FormatQuiz:
		if q, ok := m.(*content.Quiz); ok {
			return c.Quiz(title, q)
		}
	case content.FormatBundle:
		return nil, fmt.Errorf("compose %s: bundles are composed per sub-model", format)
	default:
		return nil, &content.FormatError{Format: string(format)}
	}
	return nil, fmt.Errorf("compose %s: unexpected content model %T", format, m)
}

func (c *Composer) shuffle(n int, swap func(i, j int)) {
	if c.rng != nil {
		c.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

func (c *Composer) meta(title string, format content.Format) layout.DocumentMeta {
	return layout.DocumentMeta{
		Title:    title,
		Subject:  content.CategoryLabel(format),
		Creator:  "lessonpress",
		Keywords: []string{string(format)},
	}
}
