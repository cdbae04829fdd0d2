// Package glyph renders six-dot braille cells as vector primitives.
//
// A DotPattern stores the six dots in canonical order [1, 4, 2, 5, 3, 6]: slot i sits in row i/2 and
// column i%2 of the cell, so the slice reads left-to-right, top-to-bottom.
package glyph

import (
	"fmt"
	"strconv"
	"strings"
)

// DotPattern is one cell's raised/lowered state in canonical order.
type DotPattern [6]bool

// slot maps a braille dot number (1-6) to its canonical index.
func slot(dot int) int {
	if dot <= 3 {
		return (dot - 1) * 2
	}
	return (dot-4)*2 + 1
}

// Pattern builds a DotPattern from raised dot numbers; numbers outside 1-6 are ignored.
func Pattern(dots ...int) DotPattern {
	var p DotPattern
	for _, d := range dots {
		if d >= 1 && d <= 6 {
			p[slot(d)] = true
		}
	}
	return p
}

// ParseDots parses dot-number notation such as "1245". "0" is the blank cell.
func ParseDots(s string) (DotPattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DotPattern{}, fmt.Errorf("empty dot list")
	}
	if s == "0" {
		return DotPattern{}, nil
	}
	var p DotPattern
	for _, ch := range s {
		if ch < '1' || ch > '6' {
			return DotPattern{}, fmt.Errorf("invalid dot %q in %q", ch, s)
		}
		p[slot(int(ch-'0'))] = true
	}
	return p, nil
}

// Raised reports whether dot (1-6) is raised.
func (p DotPattern) Raised(dot int) bool {
	if dot < 1 || dot > 6 {
		return false
	}
	return p[slot(dot)]
}

// Dots returns the raised dot numbers in ascending order.
func (p DotPattern) Dots() []int {
	var out []int
	for d := 1; d <= 6; d++ {
		if p.Raised(d) {
			out = append(out, d)
		}
	}
	return out
}

// Empty reports whether no dot is raised.
func (p DotPattern) Empty() bool { return p == DotPattern{} }

// String renders the pattern in dot-number notation ("124", "0" for blank).
func (p DotPattern) String() string {
	dots := p.Dots()
	if len(dots) == 0 {
		return "0"
	}
	var b strings.Builder
	for _, d := range dots {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}
