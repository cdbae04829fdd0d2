package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 612, 792}
	for _, pt := range samples {
		back := Pt(pt) * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

// TestLengthToConversions 覆盖 Length 在常见单位上的转换（到 mm/pt）。
func TestLengthToConversions(t *testing.T) {
	cases := []struct {
		in   Length
		mm   float64
		name string
	}{
		{Length{Value: 1, Unit: UnitIN}, 25.4, "1in"},
		{Length{Value: 2.54, Unit: UnitCM}, 25.4, "2.54cm"},
		{Length{Value: 12, Unit: UnitPT}, 12 * PtToMm, "12pt"},
		{Length{Value: 10, Unit: UnitMM}, 10, "10mm"},
	}
	for _, c := range cases {
		if got := c.in.ToMM(); math.Abs(got-c.mm) > 1e-9 {
			t.Fatalf("%s 转 mm 期望 %g，实际 %g", c.name, c.mm, got)
		}
		if got := c.in.ToPT(); math.Abs(got-c.mm*MmToPt) > 1e-9 {
			t.Fatalf("%s 转 pt 期望 %g，实际 %g", c.name, c.mm*MmToPt, got)
		}
	}
}

func TestParseRawLengthStr(t *testing.T) {
	if l := ParseRawLengthStr(" 11PT "); l.Unit != UnitPT || l.Value != 11 {
		t.Fatalf("期望 11pt，实际 %+v", l)
	}
	if l := ParseRawLengthStr("4.5mm"); l.Unit != UnitMM || l.Value != 4.5 {
		t.Fatalf("期望 4.5mm，实际 %+v", l)
	}
	if l := ParseRawLengthStr("abc"); l.Unit != UnitNone || l.Value != 0 {
		t.Fatalf("非法长度应返回零值，实际 %+v", l)
	}
}

// TestLineHeightResolve 验证行高解析：倍数与绝对值两种语义在目标单位（mm）下的结果。
func TestLineHeightResolve(t *testing.T) {
	fontSize := Length{Value: 12, Unit: UnitPT}
	cases := []struct {
		raw  string
		want float64
	}{
		{"1.2x", 12 * 1.2 * PtToMm},
		{"1.5", 12 * 1.5 * PtToMm},
		{"18pt", 18 * PtToMm},
		{"6mm", 6},
	}
	for _, c := range cases {
		spec, ok := ParseLineHeight(c.raw)
		if !ok {
			t.Fatalf("%s 解析失败", c.raw)
		}
		if got := spec.Resolve(fontSize, UnitMM); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s 解析为 mm 错误: got=%g want=%g", c.raw, got, c.want)
		}
	}
	for _, bad := range []string{"", "-1x", "tall"} {
		if _, ok := ParseLineHeight(bad); ok {
			t.Fatalf("%q 不应解析成功", bad)
		}
	}
}
