package fonts

import "testing"

func TestLoad(t *testing.T) {
	for _, name := range Names() {
		for _, src := range []string{name, Src(name)} {
			data, err := Load(src)
			if err != nil {
				t.Fatalf("load %s: %v", src, err)
			}
			if len(data) == 0 {
				t.Fatalf("font %s is empty", src)
			}
		}
	}
	if _, err := Load("embed:no-such-face"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}

func TestStyles(t *testing.T) {
	if ForStyle("bold") != SansBold || ForStyle("italic") != SansOblique || ForStyle("") != SansRegular {
		t.Fatalf("unexpected style mapping")
	}
	if len(Raster("bold")) == 0 || len(Raster("regular")) == 0 {
		t.Fatalf("raster fonts missing")
	}
}
