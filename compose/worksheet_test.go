package compose

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
)

func scenarioWorksheet() *content.Worksheet {
	return &content.Worksheet{Sections: []content.WorksheetSection{
		{
			Heading: "Complete the sentence", Type: content.ItemFillInTheBlank, Instructions: "Write the missing word.",
			Items: []content.WorksheetItem{
				{Prompt: "Dot 1 is in the ___ row", Answer: "top"},
				{Prompt: "A cell has ___ dots", Answer: "six"},
			},
		},
		{
			Heading: "Match the letters", Type: content.ItemMatching, Instructions: "Match each letter to its dots.",
			Items: []content.WorksheetItem{
				{Prompt: "a", Answer: "dot 1"},
				{Prompt: "b", Answer: "dots 1-2"},
				{Prompt: "c", Answer: "dots 1-4"},
			},
		},
	}}
}

func TestWorksheetScenario(t *testing.T) {
	c := newTestComposer(7)
	res, err := c.Worksheet("Braille Basics", scenarioWorksheet())
	mustNoErr(t, err)

	items := contents(res.TextsWithRole(layout.RoleItem))
	if want := []string{"1. Dot 1 is in the ___ row", "2. A cell has ___ dots"}; !slices.Equal(items, want) {
		t.Fatalf("expected items %v, got %v", want, items)
	}
	left := contents(res.TextsWithRole(layout.RoleMatchLeft))
	if want := []string{"1. a", "2. b", "3. c"}; !slices.Equal(left, want) {
		t.Fatalf("expected left column %v, got %v", want, left)
	}

	right := res.TextsWithRole(layout.RoleMatchRight)
	if len(right) != 3 {
		t.Fatalf("expected 3 right-column entries, got %d", len(right))
	}
	var shown []string
	for i, tb := range right {
		prefix := fmt.Sprintf("%s. ", letter(i))
		if !strings.HasPrefix(tb.Content, prefix) {
			t.Fatalf("right entry %d should start with %q, got %q", i, prefix, tb.Content)
		}
		shown = append(shown, strings.TrimPrefix(tb.Content, prefix))
	}
	slices.Sort(shown)
	if want := []string{"dot 1", "dots 1-2", "dots 1-4"}; !slices.Equal(shown, want) {
		t.Fatalf("right column must be a permutation of the answers, got %v", shown)
	}

	keyPage := pageOf(res, layout.RoleKeyHeading, "Answer Key")
	if keyPage < 2 {
		t.Fatalf("answer key must start on its own page, got page %d", keyPage)
	}
	for _, p := range res.Pages {
		if p.Number < keyPage && countRole(p, layout.RoleAnswer) > 0 {
			t.Fatalf("answers found before the key page")
		}
		if p.Number >= keyPage && countRole(p, layout.RoleItem)+countRole(p, layout.RoleMatchLeft) > 0 {
			t.Fatalf("body items found on key pages")
		}
	}
	answers := contents(res.TextsWithRole(layout.RoleAnswer))
	want := []string{"1. top", "2. six", "1: dot 1", "2: dots 1-2", "3: dots 1-4"}
	if !slices.Equal(answers, want) {
		t.Fatalf("expected key %v, got %v", want, answers)
	}
}

func TestMatchingShuffleDivergesFromKey(t *testing.T) {
	items := make([]content.WorksheetItem, 6)
	for i := range items {
		items[i] = content.WorksheetItem{Prompt: fmt.Sprintf("p%d", i), Answer: fmt.Sprintf("answer %d", i)}
	}
	ws := &content.Worksheet{Sections: []content.WorksheetSection{{Heading: "Match", Type: content.ItemMatching, Items: items}}}

	const trials = 40
	diverged := 0
	for seed := uint64(1); seed <= trials; seed++ {
		c := New(stubTypesetter{}, nil, WithClock(fixedNow), WithRand(rand.New(rand.NewPCG(seed, 99))))
		res, err := c.Worksheet("Matching", ws)
		mustNoErr(t, err)

		right := res.TextsWithRole(layout.RoleMatchRight)
		identity := true
		for i, tb := range right {
			if tb.Content != fmt.Sprintf("%s. answer %d", letter(i), i) {
				identity = false
			}
		}
		if !identity {
			diverged++
		}

		answers := contents(res.TextsWithRole(layout.RoleAnswer))
		for i, a := range answers {
			if a != fmt.Sprintf("%d: answer %d", i+1, i) {
				t.Fatalf("seed %d: key entry %d out of order: %q", seed, i, a)
			}
		}
	}
	if diverged < trials-3 {
		t.Fatalf("expected the body order to diverge from identity in most trials, got %d/%d", diverged, trials)
	}
}

func TestDrillGhostCellGuard(t *testing.T) {
	cases := []struct {
		answer string
		cells  int
	}{
		{"abcdefghij", 10},
		{"abcdefghijk", 0},
		{"1 2 3!", 0},
		{"c-a-t", 3},
	}
	for _, tc := range cases {
		ws := &content.Worksheet{Sections: []content.WorksheetSection{{
			Heading: "Drill", Type: content.ItemPracticeDrill,
			Items: []content.WorksheetItem{{Prompt: "Write it", Answer: tc.answer}},
		}}}
		res, err := newTestComposer(1).Worksheet("Drill", ws)
		mustNoErr(t, err)

		ghosts := 0
		for _, p := range res.Pages {
			for _, g := range p.Glyphs {
				if g.Ghost {
					if g.Pattern != [6]bool{} || g.Size != "medium" {
						t.Fatalf("%q: ghost cells must be empty medium cells, got %+v", tc.answer, g)
					}
					ghosts++
				}
			}
		}
		if ghosts != tc.cells {
			t.Fatalf("%q: expected %d ghost cells, got %d", tc.answer, tc.cells, ghosts)
		}
	}
}

func TestBrailleKeyGetsInlineCell(t *testing.T) {
	ws := &content.Worksheet{Sections: []content.WorksheetSection{{
		Heading: "Identify", Type: content.ItemDotIdentification,
		Items: []content.WorksheetItem{
			{Prompt: "Which letter is dots 1-2?", Answer: "b"},
			{Prompt: "Which word is this?", Answer: "bat"},
		},
	}}}
	res, err := newTestComposer(1).Worksheet("Identify", ws)
	mustNoErr(t, err)

	last := res.Pages[len(res.Pages)-1]
	if len(last.Glyphs) != 1 {
		t.Fatalf("expected exactly one inline cell on the key page, got %d", len(last.Glyphs))
	}
	if got := last.Glyphs[0].Pattern; got != [6]bool{true, false, true, false, false, false} {
		t.Fatalf("expected dots 1-2, got %v", got)
	}
	// braille-specific body items carry an answer line each
	if len(res.Pages[0].Lines) < 2+2 {
		t.Fatalf("expected answer lines under braille-specific prompts")
	}
}

func TestPaginationConservation(t *testing.T) {
	var items []content.WorksheetItem
	for i := 0; i < 90; i++ {
		items = append(items, content.WorksheetItem{Prompt: fmt.Sprintf("Prompt number %d", i+1), Answer: "x"})
	}
	ws := &content.Worksheet{Sections: []content.WorksheetSection{
		{Heading: "Part one", Type: content.ItemFillInTheBlank, Items: items[:45]},
		{Heading: "Part two", Type: content.ItemBrailleToPrint, Items: items[45:]},
	}}
	title := strings.Repeat("A very long worksheet title ", 4)
	res, err := newTestComposer(3).Worksheet(title, ws)
	mustNoErr(t, err)

	body := res.TextsWithRole(layout.RoleItem)
	if len(body) != 90 {
		t.Fatalf("expected 90 body items, got %d", len(body))
	}
	for i, tb := range body {
		if !strings.HasPrefix(tb.Content, fmt.Sprintf("%d. ", i+1)) {
			t.Fatalf("item %d numbered wrong: %q", i, tb.Content)
		}
		if tb.Y > itemLimit+1e-9 {
			t.Fatalf("item %d placed past the page threshold (y=%.2f)", i, tb.Y)
		}
	}
	if len(res.TextsWithRole(layout.RoleAnswer)) != 90 {
		t.Fatalf("expected 90 key answers")
	}
	if len(res.Pages) < 3 {
		t.Fatalf("expected several pages, got %d", len(res.Pages))
	}

	header := truncateTitle(title, maxHeaderTitle)
	for _, p := range res.Pages {
		headers := 0
		for _, tb := range p.Texts {
			switch tb.Role {
			case layout.RoleHeader:
				headers++
				if tb.Content != header {
					t.Fatalf("page %d header %q, want %q", p.Number, tb.Content, header)
				}
			case layout.RolePageNumber:
				if tb.Content != fmt.Sprintf("Page %d", p.Number) {
					t.Fatalf("page %d numbered %q", p.Number, tb.Content)
				}
			}
		}
		if p.Number == 1 && headers != 0 {
			t.Fatalf("page 1 must not be decorated")
		}
		if p.Number > 1 && headers != 1 {
			t.Fatalf("page %d should carry one header, got %d", p.Number, headers)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	if got := truncateTitle("Short", 60); got != "Short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("é", 61)
	got := truncateTitle(long, 60)
	if !strings.HasSuffix(got, "…") || len([]rune(got)) != 60 {
		t.Fatalf("unexpected truncation %q (%d runes)", got, len([]rune(got)))
	}
	if got := truncateTitle(strings.Repeat("x", 60), 60); strings.HasSuffix(got, "…") {
		t.Fatalf("exactly 60 runes must not be truncated")
	}
}

func TestLetters(t *testing.T) {
	for i, want := range map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB"} {
		if letter(i) != want {
			t.Fatalf("letter(%d) = %q, want %q", i, letter(i), want)
		}
	}
}

func TestDrillLettersIgnoresNonASCIILetters(t *testing.T) {
	for in, want := range map[string]string{
		"cat":     "CAT",
		"ſun":     "UN",
		"ıt":      "T",
		"Ça va":   "AVA",
		"c-a-t 1": "CAT",
	} {
		if got := drillLetters(in); got != want {
			t.Fatalf("drillLetters(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeyPunctuationCellCarriesTableLabel(t *testing.T) {
	ws := &content.Worksheet{Sections: []content.WorksheetSection{{
		Heading: "Identify", Type: content.ItemDotIdentification,
		Items: []content.WorksheetItem{
			{Prompt: "Which sign is dot 2?", Answer: ","},
			{Prompt: "Which letter is dot 1?", Answer: "a"},
		},
	}}}
	res, err := newTestComposer(1).Worksheet("Identify", ws)
	mustNoErr(t, err)

	last := res.Pages[len(res.Pages)-1]
	if len(last.Glyphs) != 2 {
		t.Fatalf("expected two inline cells on the key page, got %d", len(last.Glyphs))
	}
	if last.Glyphs[0].Label != "comma" {
		t.Fatalf("expected comma label, got %q", last.Glyphs[0].Label)
	}
	if last.Glyphs[1].Label != "" {
		t.Fatalf("letter cells stay unlabelled, got %q", last.Glyphs[1].Label)
	}
	labels := contents(res.TextsWithRole(layout.RoleGlyphLabel))
	if !slices.Equal(labels, []string{"comma"}) {
		t.Fatalf("expected the comma label to be drawn, got %v", labels)
	}
}
