package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/lessonpress/dsl"
)

const sampleTable = `
// letters
table "Sample" {
  a = 1
  b = 12; c = 14
  "," = 2 label "comma"
  /* blank cell */
  " " = 0 label "space"
}
`

func TestParseTable(t *testing.T) {
	tf, err := dsl.ParseString(sampleTable)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tf.Name != "Sample" {
		t.Fatalf("expected table name Sample, got %q", tf.Name)
	}
	if len(tf.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(tf.Entries))
	}

	want := []struct {
		key, dots, label string
	}{
		{"a", "1", ""},
		{"b", "12", ""},
		{"c", "14", ""},
		{",", "2", "comma"},
		{" ", "0", "space"},
	}
	for i, w := range want {
		e := tf.Entries[i]
		if e.Key() != w.key || e.Dots != w.dots || e.LabelText() != w.label {
			t.Fatalf("entry %d: got key=%q dots=%q label=%q, want %+v", i, e.Key(), e.Dots, e.LabelText(), w)
		}
	}
}

func TestParseTableRejectsMissingDots(t *testing.T) {
	if _, err := dsl.Parse(strings.NewReader(`table "x" { a = }`)); err == nil {
		t.Fatalf("expected parse error for entry without dots")
	}
}

func TestParseTableRejectsMissingHeader(t *testing.T) {
	if _, err := dsl.ParseString(`{ a = 1 }`); err == nil {
		t.Fatalf("expected parse error without table header")
	}
}
