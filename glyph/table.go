package glyph

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/lessonpress/dsl"
)

//go:embed tables/grade1.table
var grade1Table string

// Table is a read-only character → dot pattern lookup plus an optional label per character.
// Letters are stored upper-case; Lookup folds case.
type Table struct {
	name     string
	patterns map[rune]DotPattern
	labels   map[rune]string
}

// NewTable copies the given maps into a Table. Letter keys are upper-cased.
func NewTable(name string, patterns map[rune]DotPattern, labels map[rune]string) *Table {
	t := &Table{
		name:     name,
		patterns: make(map[rune]DotPattern, len(patterns)),
		labels:   make(map[rune]string, len(labels)),
	}
	for r, p := range patterns {
		t.patterns[unicode.ToUpper(r)] = p
	}
	for r, l := range labels {
		t.labels[unicode.ToUpper(r)] = l
	}
	return t
}

// ParseTable reads a table resource written in the dsl table grammar.
func ParseTable(r io.Reader) (*Table, error) {
	tf, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse glyph table: %w", err)
	}
	patterns := make(map[rune]DotPattern, len(tf.Entries))
	labels := map[rune]string{}
	for _, e := range tf.Entries {
		key := e.Key()
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("glyph table %q line %d: key %q must be a single character", tf.Name, e.Pos.Line, key)
		}
		ch, _ := utf8.DecodeRuneInString(key)
		p, err := ParseDots(e.Dots)
		if err != nil {
			return nil, fmt.Errorf("glyph table %q line %d: %w", tf.Name, e.Pos.Line, err)
		}
		ch = unicode.ToUpper(ch)
		if _, dup := patterns[ch]; dup {
			return nil, fmt.Errorf("glyph table %q line %d: duplicate key %q", tf.Name, e.Pos.Line, key)
		}
		patterns[ch] = p
		if l := e.LabelText(); l != "" {
			labels[ch] = l
		}
	}
	return &Table{name: string(tf.Name), patterns: patterns, labels: labels}, nil
}

// LoadTable parses a table resource from disk.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glyph table: %w", err)
	}
	defer f.Close()
	return ParseTable(f)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the embedded uncontracted English table.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := ParseTable(strings.NewReader(grade1Table))
		if err != nil {
			panic(fmt.Sprintf("embedded glyph table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Name returns the table's declared name.
func (t *Table) Name() string { return t.name }

// Lookup returns the pattern for r; ok is false when the table has no mapping.
func (t *Table) Lookup(r rune) (DotPattern, bool) {
	p, ok := t.patterns[unicode.ToUpper(r)]
	return p, ok
}

// Label returns the display label for r, falling back to the character itself.
func (t *Table) Label(r rune) string {
	if l, ok := t.labels[unicode.ToUpper(r)]; ok {
		return l
	}
	return string(unicode.ToUpper(r))
}

// Len reports the number of mapped characters.
func (t *Table) Len() int { return len(t.patterns) }

// Runes returns every mapped character in ascending order.
func (t *Table) Runes() []rune {
	out := make([]rune, 0, len(t.patterns))
	for r := range t.patterns {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
