package binding

import (
	"reflect"
	"testing"
)

func sampleData() map[string]any {
	return map[string]any{
		"student": map[string]any{"name": "Ada", "grade": float64(4)},
		"units":   []any{map[string]any{"title": "Letters"}, map[string]any{"title": "Numbers"}},
		"flags":   map[string]string{"mode": "practice"},
	}
}

func TestInterpolate(t *testing.T) {
	data := sampleData()
	cases := map[string]string{
		"Welcome, ${student.name}":        "Welcome, Ada",
		"Grade ${ student.grade }":        "Grade 4",
		"Unit: ${units[1].title}":         "Unit: Numbers",
		"Mode ${flags.mode}":              "Mode practice",
		"Missing ${student.age}":          "Missing ${student.age}",
		"Fallback ${instructor.name|friend}": "Fallback friend",
		"Bad index ${units[x].title}":     "Bad index ${units[x].title}",
		"No placeholders":                 "No placeholders",
	}
	for in, want := range cases {
		if got := Interpolate(in, data); got != want {
			t.Fatalf("Interpolate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("Hi ${a}", nil); got != "Hi ${a}" {
		t.Fatalf("nil data should leave text unchanged, got %q", got)
	}
	if !NewScope(nil).Empty() {
		t.Fatalf("expected empty scope")
	}
}

func TestUnresolved(t *testing.T) {
	s := NewScope(sampleData())
	got := s.Unresolved("${student.name} ${a.b} ${c|x} ${a.b} ${units[9]}")
	want := []string{"a.b", "units[9]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
