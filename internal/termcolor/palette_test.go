package termcolor

import (
	"testing"

	"github.com/phyten/tagx/internal/colorutil"
)

func TestHeaderStyle(t *testing.T) {
	s := HeaderStyle()
	if !s.Bold || !s.Underline {
		t.Fatalf("header style should enable bold+underline: %+v", s)
	}
}

func TestStateStyleRespectsScheme(t *testing.T) {
	warnDark := StateStyle("warning", SchemeDark, ProfileBasic8)
	if warnDark.FGBasic == nil || *warnDark.FGBasic != 3 || !warnDark.Bold {
		t.Fatalf("warning dark basic style mismatch: %+v", warnDark)
	}
	warnLight := StateStyle("warning", SchemeLight, ProfileANSI256)
	if warnLight.FG256 == nil || *warnLight.FG256 != 130 {
		t.Fatalf("warning light 256 color mismatch: %+v", warnLight)
	}
	for _, state := range []string{"warning", "rejected", "allowed"} {
		style := StateStyle(state, SchemeLight, ProfileTrueColor)
		if style.FGTrue == nil {
			t.Fatalf("%s light truecolor missing fg: %+v", state, style)
		}
		rgb := *style.FGTrue
		contrast := colorutil.ContrastRatio(
			colorutil.RGB{R: rgb[0], G: rgb[1], B: rgb[2]},
			colorutil.RGB{R: 249, G: 250, B: 251},
		)
		if contrast < 4.5 {
			t.Fatalf("%s light truecolor contrast %.2f < 4.5 (rgb=%v)", state, contrast, rgb)
		}
	}
	rejectedDark := StateStyle("REJECTED", SchemeDark, ProfileTrueColor)
	if rejectedDark.FGTrue == nil {
		t.Fatalf("state matching should ignore case: %+v", rejectedDark)
	}
	none := StateStyle("other", SchemeDark, ProfileBasic8)
	if none.FGBasic != nil || none.FG256 != nil || none.FGTrue != nil {
		t.Fatalf("unknown state should have no color: %+v", none)
	}
}

func TestSizeStyleBasicBuckets(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 2},
		{3, 2},
		{10, 3},
		{30, 5},
		{120, 1},
	}
	for _, tc := range tests {
		style := SizeStyle(tc.lines, ProfileBasic8, 80)
		if style.FGBasic == nil {
			t.Fatalf("lines %d missing basic color", tc.lines)
		}
		if *style.FGBasic != tc.want {
			t.Fatalf("lines %d expected color %d, got %d", tc.lines, tc.want, *style.FGBasic)
		}
	}
}

func TestSizeStyleGradient(t *testing.T) {
	style := SizeStyle(0, ProfileANSI256, 80)
	if style.FG256 == nil || *style.FG256 != rgbToANSI256(0, 255, 0) {
		t.Fatalf("lines 0 should map to green in 256 palette, got %+v", style)
	}
	style = SizeStyle(200, ProfileTrueColor, 80)
	if style.FGTrue == nil {
		t.Fatalf("true color style missing value")
	}
	rgb := *style.FGTrue
	if rgb[0] != 255 || rgb[1] != 0 || rgb[2] != 0 {
		t.Fatalf("lines beyond max should be red, got %v", rgb)
	}
}
