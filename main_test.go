package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/lessonpress/config"
	"github.com/ByLCY/lessonpress/logger"
)

const worksheetJSON = `{"sections": [
  {"heading": "Letters", "type": "braille-to-print", "instructions": "Write each letter.",
   "items": [{"prompt": "Read the cell", "answer": "a"}, {"prompt": "Read the cell", "answer": "b"}]},
  {"heading": "Match", "type": "matching", "instructions": "Match ${student}.",
   "items": [{"prompt": "dot 1", "answer": "a"}, {"prompt": "dots 1-2", "answer": "b"}]}
]}`

func setup(t *testing.T, body string) (string, config.Config) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "letters.json")
	if err := os.WriteFile(in, []byte(body), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg, err := config.Parse(nil, nil)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return in, cfg
}

func TestRunWorksheet(t *testing.T) {
	in, cfg := setup(t, worksheetJSON)
	d, err := newDispatcher(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	dir := filepath.Dir(in)
	opts := options{
		format: "worksheet",
		input:  in,
		output: filepath.Join(dir, "out", "letters.pdf"),
		data:   `{"student": "Sam"}`,
		debug:  filepath.Join(dir, "out", "layout.json"),
		thumb:  filepath.Join(dir, "out", "letters.png"),
	}
	if err := run(context.Background(), opts, cfg, d); err != nil {
		t.Fatalf("run: %v", err)
	}
	pdf, err := os.ReadFile(opts.output)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF output, err=%v", err)
	}
	debug, err := os.ReadFile(opts.debug)
	if err != nil || !bytes.Contains(debug, []byte("Match Sam.")) {
		t.Fatalf("debug layout should contain bound instructions, err=%v", err)
	}
	if _, err := os.Stat(opts.thumb); err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
}

func TestRunPreview(t *testing.T) {
	in, cfg := setup(t, worksheetJSON)
	d, err := newDispatcher(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	out := filepath.Join(filepath.Dir(in), "preview.json")
	if err := run(context.Background(), options{format: "worksheet", input: in, output: out, preview: true}, cfg, d); err != nil {
		t.Fatalf("run: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read preview: %v", err)
	}
	var s struct {
		TotalItems int `json:"totalItems"`
	}
	if err := json.Unmarshal(raw, &s); err != nil || s.TotalItems != 4 {
		t.Fatalf("unexpected preview %s (%v)", raw, err)
	}
}

func TestRunBundleDirectory(t *testing.T) {
	body := `{"slides": [{"title": "Letters"}], "handout": [{"heading": "Intro", "content": "Hi"}], "worksheet": []}`
	in, cfg := setup(t, body)
	d, err := newDispatcher(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	out := filepath.Join(filepath.Dir(in), "bundle")
	if err := run(context.Background(), options{format: "session-bundle", input: in, output: out, title: "Letters"}, cfg, d); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"letters-slides.pptx", "letters-handout.pdf", "letters-worksheet.pdf"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	in, cfg := setup(t, worksheetJSON)
	d, err := newDispatcher(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	if err := run(context.Background(), options{format: "poster", input: in}, cfg, d); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
