package compose

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ByLCY/lessonpress/layout"
)

// stubTypesetter wraps on spaces assuming every rune is half the font size wide.
type stubTypesetter struct{}

func (stubTypesetter) LayoutLines(content string, width float64, font layout.FontResource, fontSize, lineHeight float64, wrap string) ([]layout.TextLine, error) {
	charW := fontSize * 0.5
	var lines []layout.TextLine
	for _, para := range strings.Split(content, "\n") {
		cur := ""
		flush := func() {
			lines = append(lines, layout.TextLine{
				Content:   cur,
				Width:     float64(utf8.RuneCountInString(cur)) * charW,
				Height:    fontSize,
				GapBefore: lineHeight - fontSize,
			})
			cur = ""
		}
		for _, w := range strings.Fields(para) {
			cand := w
			if cur != "" {
				cand = cur + " " + w
			}
			if cur != "" && float64(utf8.RuneCountInString(cand))*charW > width {
				flush()
				cand = w
			}
			cur = cand
		}
		flush()
	}
	return lines, nil
}

var fixedNow = func() time.Time { return time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC) }

func newTestComposer(seed uint64) *Composer {
	return New(stubTypesetter{}, nil, WithClock(fixedNow), WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

func contents(boxes []layout.TextBox) []string {
	out := make([]string, len(boxes))
	for i, b := range boxes {
		out[i] = b.Content
	}
	return out
}

// pageOf returns the 1-based page holding the first text box with content s, or 0.
func pageOf(res *layout.Result, role layout.Role, s string) int {
	for _, p := range res.Pages {
		for _, tb := range p.Texts {
			if tb.Role == role && tb.Content == s {
				return p.Number
			}
		}
	}
	return 0
}

func countRole(p layout.Page, role layout.Role) int {
	n := 0
	for _, tb := range p.Texts {
		if tb.Role == role {
			n++
		}
	}
	return n
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
