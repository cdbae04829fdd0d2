package canvasrenderer

import (
	"math"
	"testing"
	"unicode/utf8"
)

// fixedWidth 每个字符宽 1mm，便于精确断言折行位置。
func fixedWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapTokensAtSpaces(t *testing.T) {
	lines := wrapLines("hello world again", 11, fixedWidth, "anywhere", 4, 5)
	want := []string{"hello world", "again"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i].Content != w || lines[i].Width != fixedWidth(w) {
			t.Fatalf("line %d: got %q (%.0f), want %q", i, lines[i].Content, lines[i].Width, w)
		}
	}
	if lines[0].GapBefore != 0 || lines[1].GapBefore != 1 || lines[1].Height != 4 {
		t.Fatalf("unexpected metrics: %+v", lines)
	}
}

func TestWrapDropsLeadingSpaceAfterBreak(t *testing.T) {
	lines := wrapLines("abcde fgh", 5, fixedWidth, "", 1, 1)
	if len(lines) != 2 || lines[1].Content != "fgh" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestWrapSplitsLongWords(t *testing.T) {
	lines := wrapLines("aaaaaaaaaaaa", 5, fixedWidth, "anywhere", 1, 1)
	if len(lines) != 3 {
		t.Fatalf("expected 3 chunks, got %+v", lines)
	}
	for _, l := range lines {
		if l.Width > 5 {
			t.Fatalf("line exceeds limit: %+v", l)
		}
	}
}

func TestWrapModes(t *testing.T) {
	if lines := wrapLines("ab cd\nef", 2, fixedWidth, "nowrap", 1, 1); len(lines) != 2 || lines[0].Content != "ab cd" {
		t.Fatalf("nowrap should only split on newlines: %+v", lines)
	}
	if lines := wrapLines("ab cd", 2, fixedWidth, "break-word", 1, 1); len(lines) != 3 || lines[1].Content != " c" {
		t.Fatalf("break-word should cut by width only: %+v", lines)
	}
	if lines := wrapLines("", 10, fixedWidth, "", 2, 3); len(lines) != 1 || lines[0].Height != 2 {
		t.Fatalf("empty content should yield one blank line: %+v", lines)
	}
	if lines := wrapLines("x y z", 0, fixedWidth, "", 1, 1); len(lines) != 1 || math.IsInf(lines[0].Width, 0) {
		t.Fatalf("zero width means unlimited: %+v", lines)
	}
}
