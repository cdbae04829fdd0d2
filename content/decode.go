package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// New returns an empty model of the given format.
func New(f Format) (Model, error) {
	switch f {
	case FormatDeck:
		return &Deck{}, nil
	case FormatHandout:
		return &Handout{}, nil
	case FormatStudyGuide:
		return &StudyGuide{}, nil
	case FormatWorksheet:
		return &Worksheet{}, nil
	case FormatQuiz:
		return &Quiz{}, nil
	case FormatBundle:
		return &Bundle{}, nil
	}
	return nil, &FormatError{Format: string(f)}
}

// Decode parses raw JSON into the model for f and normalises it.
// Single-list formats also accept the bare array (e.g. a JSON array of slides for pptx).
func Decode(f Format, raw []byte) (Model, error) {
	m, err := New(f)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode %s content: empty body", f)
	}
	var target any = m
	if raw[0] == '[' {
		if target = listField(m); target == nil {
			return nil, fmt.Errorf("decode %s content: expected a JSON object", f)
		}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", f, err)
	}
	Normalize(m)
	return m, nil
}

func listField(m Model) any {
	switch v := m.(type) {
	case *Deck:
		return &v.Slides
	case *Handout:
		return &v.Sections
	case *Worksheet:
		return &v.Sections
	case *Quiz:
		return &v.Questions
	}
	return nil
}
