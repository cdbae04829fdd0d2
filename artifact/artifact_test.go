package artifact_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ByLCY/lessonpress/artifact"
	"github.com/ByLCY/lessonpress/compose"
	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
	"github.com/ByLCY/lessonpress/renderer"
	canvasrenderer "github.com/ByLCY/lessonpress/renderer/canvas"
	pptxrenderer "github.com/ByLCY/lessonpress/renderer/pptx"
)

func newDispatcher(deck renderer.Renderer) *artifact.Dispatcher {
	pdf := canvasrenderer.NewRenderer("")
	c := compose.New(pdf, nil, compose.WithClock(func() time.Time { return time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) }))
	if deck == nil {
		deck = pptxrenderer.NewRenderer(pptxrenderer.Options{})
	}
	return artifact.NewDispatcher(c, pdf, deck, nil)
}

func sampleBundle() *content.Bundle {
	return &content.Bundle{
		Slides: []content.Slide{
			{Title: "Braille Letters A-J", SpeakerNotes: "Welcome the class"},
			{Title: "The cell", Bullets: []string{"Six dots", "Two columns"}},
		},
		Handout: []content.Section{{Heading: "History", Content: "Louis Braille published the system in 1829."}},
		Worksheet: []content.WorksheetSection{{
			Heading: "Letters", Type: content.ItemBrailleToPrint, Instructions: "Write the letter.",
			Items: []content.WorksheetItem{{Prompt: "Dots 1-2", Answer: "b"}},
		}},
	}
}

func TestBundleProducesThreeArtifacts(t *testing.T) {
	arts, err := newDispatcher(nil).Render(context.Background(), content.FormatBundle, "Braille Letters", sampleBundle())
	if err != nil {
		t.Fatalf("render bundle: %v", err)
	}
	if len(arts) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(arts))
	}
	if arts[0].Kind != artifact.KindDeck || arts[0].Extension != "pptx" {
		t.Fatalf("first artifact should be the deck, got %+v", arts[0])
	}
	if _, err := zip.NewReader(bytes.NewReader(arts[0].Data), int64(len(arts[0].Data))); err != nil {
		t.Fatalf("deck is not a zip package: %v", err)
	}
	for _, a := range arts[1:] {
		if a.Kind != artifact.KindDocument || !bytes.HasPrefix(a.Data, []byte("%PDF")) {
			t.Fatalf("expected PDF document, got %s (%d bytes)", a.Kind, len(a.Data))
		}
		if a.Pages < 1 || a.Layout == nil {
			t.Fatalf("document artifact must carry its layout")
		}
	}
	want := []string{"braille-letters-slides", "braille-letters-handout", "braille-letters-worksheet"}
	for i, a := range arts {
		if a.Name != want[i] {
			t.Fatalf("artifact %d: expected name %q, got %q", i, want[i], a.Name)
		}
	}
	if len(arts[2].Layout.TextsWithRole(layout.RoleKeyHeading)) == 0 {
		t.Fatalf("worksheet artifact must include its answer key")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := newDispatcher(nil).Render(context.Background(), "poster", "x", &content.Deck{})
	if !errors.Is(err, artifact.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	var fe *artifact.FormatError
	if !errors.As(err, &fe) || fe.Format != "poster" {
		t.Fatalf("expected *FormatError for poster, got %v", err)
	}
}

func TestMismatchedBundleModel(t *testing.T) {
	if _, err := newDispatcher(nil).Render(context.Background(), content.FormatBundle, "x", &content.Deck{}); err == nil {
		t.Fatalf("expected error for bundle format with deck model")
	}
}

func TestTypedNilModelIsRejected(t *testing.T) {
	d := newDispatcher(nil)
	for format, m := range map[content.Format]content.Model{
		content.FormatDeck:      (*content.Deck)(nil),
		content.FormatWorksheet: (*content.Worksheet)(nil),
		content.FormatBundle:    (*content.Bundle)(nil),
	} {
		if _, err := d.Render(context.Background(), format, "x", m); err == nil {
			t.Fatalf("%s: expected error for nil %T", format, m)
		}
		if _, err := d.Layout(format, "x", m); err == nil {
			t.Fatalf("%s: expected layout error for nil %T", format, m)
		}
	}
}

func TestDeckRendersPresentation(t *testing.T) {
	deck := &content.Deck{Slides: []content.Slide{{Title: "Dots", SpeakerNotes: "Start here"}, {Title: "Cells"}}}
	arts, err := newDispatcher(nil).Render(context.Background(), content.FormatDeck, "Dots", deck)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(arts) != 1 || arts[0].Pages != 2 || arts[0].Extension != "pptx" {
		t.Fatalf("unexpected artifacts %+v", arts)
	}
	if _, err := zip.NewReader(bytes.NewReader(arts[0].Data), int64(len(arts[0].Data))); err != nil {
		t.Fatalf("deck is not a zip package: %v", err)
	}
}

func TestCancelledBundleReturnsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deck := renderer.Func(func(*layout.Result) ([]byte, error) {
		cancel()
		return []byte("deck"), nil
	})
	arts, err := newDispatcher(deck).Render(ctx, content.FormatBundle, "Braille", sampleBundle())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if arts != nil {
		t.Fatalf("cancelled bundle must not return partial artifacts")
	}
}

func TestFormatsListsEveryFormat(t *testing.T) {
	infos := artifact.Formats()
	if len(infos) != len(content.Formats()) {
		t.Fatalf("expected %d formats, got %d", len(content.Formats()), len(infos))
	}
	for _, info := range infos {
		if info.Category == "" {
			t.Fatalf("%s has no category", info.Format)
		}
		if info.Format == content.FormatBundle && info.Kind != artifact.KindBundle {
			t.Fatalf("bundle should be listed as bundle kind")
		}
	}
}

func TestArchiveNamesFiles(t *testing.T) {
	data, err := artifact.Archive([]artifact.Artifact{
		{Name: "quiz", Extension: "pdf", Data: []byte("a")},
		{Name: "quiz", Extension: "pdf", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "quiz.pdf" || zr.File[1].Name != "quiz-2.pdf" {
		t.Fatalf("unexpected archive entries")
	}
}
