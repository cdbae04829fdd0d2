package content

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("  Study-Guide ")
	if !ok || f != FormatStudyGuide {
		t.Fatalf("expected study-guide, got %q ok=%v", f, ok)
	}
	if _, ok := ParseFormat("docx"); ok {
		t.Fatalf("docx must not parse")
	}
	_, err := ResolveFormat("docx")
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Format != "docx" || !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected FormatError wrapping ErrUnsupportedFormat, got %v", err)
	}
}

func TestCategoryLabels(t *testing.T) {
	want := map[Format]string{
		FormatDeck:       "Presentations",
		FormatHandout:    "Handouts",
		FormatStudyGuide: "Study Guides",
		FormatWorksheet:  "Worksheets",
		FormatQuiz:       "Quizzes",
		FormatBundle:     "Session Bundles",
	}
	for _, f := range Formats() {
		if CategoryLabel(f) != want[f] {
			t.Fatalf("%s: got %q want %q", f, CategoryLabel(f), want[f])
		}
	}
	if CategoryLabel("docx") != "" {
		t.Fatalf("unknown format should have no label")
	}
}

func TestDecodeNormalizes(t *testing.T) {
	m, err := Decode(FormatQuiz, []byte(`{"questions":[{"type":"true-false","question":"Dot 1 is top-left","answer":"True","explanation":"x"},{"type":"short-answer","question":"?","answer":"a"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	q := m.(*Quiz)
	if len(q.Questions[0].Options) != 2 || q.Questions[0].Options[0] != "True" {
		t.Fatalf("expected default true/false options, got %v", q.Questions[0].Options)
	}
	if q.Questions[1].Options == nil {
		t.Fatalf("expected empty options slice")
	}
}

func TestDecodeBareArrayAndBundle(t *testing.T) {
	m, err := Decode(FormatDeck, []byte(`[{"title":"Intro"},{"title":"Letters","bullets":["a"]}]`))
	if err != nil {
		t.Fatalf("decode deck: %v", err)
	}
	d := m.(*Deck)
	if len(d.Slides) != 2 || d.Slides[0].Bullets == nil {
		t.Fatalf("unexpected deck %+v", d)
	}

	m, err = Decode(FormatBundle, []byte(`{"slides":[{"title":"A"}],"handout":[{"heading":"H","content":"c"}],"worksheet":[{"heading":"W","type":"matching","items":[{"prompt":"a","answer":"1"}]}]}`))
	if err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	b := m.(*Bundle)
	if len(b.Deck().Slides) != 1 || len(b.HandoutModel().Sections) != 1 || len(b.WorksheetModel().Sections[0].Items) != 1 {
		t.Fatalf("unexpected bundle %+v", b)
	}
	if b.Handout[0].KeyTerms == nil {
		t.Fatalf("expected normalised key terms")
	}

	if _, err := Decode(FormatBundle, []byte(`[]`)); err == nil {
		t.Fatalf("bundle must be an object")
	}
	if _, err := Decode("docx", []byte(`{}`)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
	if _, err := Decode(FormatQuiz, []byte(`{"questions":`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNormalizeKeepsMissingHeading(t *testing.T) {
	h := &Handout{Sections: []Section{{Content: "body"}}}
	Normalize(h)
	if h.Sections[0].Heading != "" || h.Sections[0].Bullets == nil {
		t.Fatalf("unexpected normalisation %+v", h.Sections[0])
	}
}

func TestQuestionTags(t *testing.T) {
	cases := map[QuestionType]string{
		QuestionMultipleChoice: "MC",
		QuestionTrueFalse:      "T/F",
		QuestionShortAnswer:    "SA",
		"essay":                "SA",
	}
	for qt, tag := range cases {
		if qt.Tag() != tag {
			t.Fatalf("%s: got %s want %s", qt, qt.Tag(), tag)
		}
	}
	if !ItemDotIdentification.BrailleSpecific() || ItemMatching.BrailleSpecific() {
		t.Fatalf("braille-specific classification wrong")
	}
}

func TestBind(t *testing.T) {
	data := map[string]any{"student": map[string]any{"name": "Ada"}}
	w := &Worksheet{Sections: []WorksheetSection{{
		Heading: "For ${student.name}",
		Items:   []WorksheetItem{{Prompt: "${student.name}, write a", Answer: "a"}},
	}}}
	Bind(w, data)
	if w.Sections[0].Heading != "For Ada" || w.Sections[0].Items[0].Prompt != "Ada, write a" {
		t.Fatalf("binding not applied: %+v", w.Sections[0])
	}
}
