package content

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies what a render request produces.
type Format string

const (
	FormatDeck       Format = "pptx"
	FormatHandout    Format = "pdf"
	FormatStudyGuide Format = "study-guide"
	FormatWorksheet  Format = "worksheet"
	FormatQuiz       Format = "quiz"
	FormatBundle     Format = "session-bundle"
)

var allFormats = []Format{FormatDeck, FormatHandout, FormatStudyGuide, FormatWorksheet, FormatQuiz, FormatBundle}

var categoryLabels = map[Format]string{
	FormatDeck:       "Presentations",
	FormatHandout:    "Handouts",
	FormatStudyGuide: "Study Guides",
	FormatWorksheet:  "Worksheets",
	FormatQuiz:       "Quizzes",
	FormatBundle:     "Session Bundles",
}

// ErrUnsupportedFormat is matched by every *FormatError.
var ErrUnsupportedFormat = errors.New("unsupported format")

// FormatError reports a format identifier outside the supported set.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Format)
}

func (e *FormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// Formats lists every supported format in a stable order.
func Formats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// ParseFormat normalises s and reports whether it names a supported format.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categoryLabels[f]
	return f, ok
}

// ResolveFormat is ParseFormat returning a *FormatError for unknown identifiers.
func ResolveFormat(s string) (Format, error) {
	f, ok := ParseFormat(s)
	if !ok {
		return "", &FormatError{Format: s}
	}
	return f, nil
}

// CategoryLabel returns the filing label for f, or "" when f is unsupported.
func CategoryLabel(f Format) string { return categoryLabels[f] }

// IsDeck reports whether f renders to a slide deck rather than a paginated document.
func (f Format) IsDeck() bool { return f == FormatDeck }

func (f Format) String() string { return string(f) }
