package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The dot-pattern table resource looks like:
//
//	table "English grade 1" {
//	  a = 1
//	  b = 12
//	  "," = 2 label "comma"
//	  " " = 0 label "space"
//	}
//
// Keys are bare letters or quoted strings; values are braille dot numbers (1-6, 0 for a blank cell).

var (
	tableLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Dots", Pattern: `\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[=;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tableParser = participle.MustBuild[TableFile](
		participle.Lexer(tableLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// TableFile is the root AST node of a dot-pattern table resource.
type TableFile struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    StringLiteral  `parser:"Newline* 'table' @String"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry maps one character to a dot pattern and an optional display label.
type Entry struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Ident  string         `parser:"(  @Ident"`
	Quoted *StringLiteral `parser:"| @String )"`
	Dots   string         `parser:"'=' @Dots"`
	Label  *StringLiteral `parser:"( 'label' @String )?"`
}

// Key returns the character (as written) this entry defines.
func (e *Entry) Key() string {
	if e.Quoted != nil {
		return string(*e.Quoted)
	}
	return e.Ident
}

// LabelText returns the label or "" when absent.
func (e *Entry) LabelText() string {
	if e.Label == nil {
		return ""
	}
	return string(*e.Label)
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a table resource from an io.Reader.
func Parse(r io.Reader) (*TableFile, error) {
	return tableParser.Parse("", r)
}

// ParseString parses a table resource from a string.
func ParseString(input string) (*TableFile, error) {
	return tableParser.ParseString("", input)
}
