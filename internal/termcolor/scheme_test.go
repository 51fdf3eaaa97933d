package termcolor

import "testing"

func TestDetectSchemeはCOLORFGBGの背景値で判定する(t *testing.T) {
	cases := []struct {
		raw  string
		want Scheme
	}{
		{"7;0", SchemeDark},
		{"15;7", SchemeLight},
		{"15;15", SchemeLight},
		{"0;default;15", SchemeLight},
	}
	for _, tc := range cases {
		if got := DetectScheme(map[string]string{"COLORFGBG": tc.raw}); got != tc.want {
			t.Fatalf("COLORFGBG=%q: got=%v want=%v", tc.raw, got, tc.want)
		}
	}
}

func TestDetectSchemeはTERM名にフォールバックする(t *testing.T) {
	if got := DetectScheme(map[string]string{"TERM": "xterm-light"}); got != SchemeLight {
		t.Fatalf("TERMにlightを含む場合はlight: got=%v", got)
	}
	if got := DetectScheme(map[string]string{}); got != SchemeDark {
		t.Fatalf("手がかりがなければdark: got=%v", got)
	}
	if got := DetectScheme(nil); got != SchemeDark {
		t.Fatalf("nil環境はdark: got=%v", got)
	}
}
