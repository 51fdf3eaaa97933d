package opts

import (
	"math"
	"net/url"
	"testing"
)

func TestParseBoolは同義語を受け付ける(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"1", true}, {"true", true}, {"TRUE", true}, {"yes", true}, {"On", true},
		{"0", false}, {"false", false}, {"FALSE", false}, {"no", false}, {"OFF", false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseBool(tc.raw, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseBool(%q)=%t want %t", tc.raw, got, tc.want)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("未知の値は拒否するはずです")
	}
}

func TestParseIntInRangeの境界(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		min, max int
		want     int
		wantErr  bool
	}{
		{"範囲内", "42", 1, 64, 42, false},
		{"下限ちょうど", "1", 1, 64, 1, false},
		{"上限超過", "65", 1, 64, 0, true},
		{"上限なしでも下限は効く", "-1", 0, math.MinInt, 0, true},
		{"数値以外", "many", 1, 64, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseIntInRange(tc.raw, "jobs", tc.min, tc.max)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseIntInRange(%q) はエラーのはずです", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIntInRange(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseIntInRange(%q)=%d want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeAndValidateは値を正規化する(t *testing.T) {
	o := Defaults("/repo")
	o.Tag = "  @ai-gen "
	o.AllowedStates = []string{"OK", "ok", " "}
	o.Langs = []string{" TS ", "py"}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate: %v", err)
	}
	if o.Tag != "@ai-gen" {
		t.Fatalf("Tag=%q", o.Tag)
	}
	if len(o.AllowedStates) != 1 || o.AllowedStates[0] != "ok" {
		t.Fatalf("AllowedStates=%v want [ok]", o.AllowedStates)
	}
	if len(o.Langs) != 2 || o.Langs[0] != "typescript" || o.Langs[1] != "python" {
		t.Fatalf("Langs=%v", o.Langs)
	}
}

func TestNormalizeAndValidateは不正な組み合わせを拒否する(t *testing.T) {
	empty := Defaults("/repo")
	empty.Tag = "  "
	if err := NormalizeAndValidate(&empty); err == nil {
		t.Fatal("空タグはエラーのはずです")
	}

	overlap := Defaults("/repo")
	overlap.AllowedStates = []string{"ok"}
	overlap.RejectedStates = []string{"OK"}
	if err := NormalizeAndValidate(&overlap); err == nil {
		t.Fatal("allowed と rejected の重複はエラーのはずです")
	}

	jobs := Defaults("/repo")
	jobs.Jobs = 1024
	if err := NormalizeAndValidate(&jobs); err == nil {
		t.Fatal("jobs の上限超過はエラーのはずです")
	}
}

func TestNormalizeAndValidateはpath_regexをコンパイルする(t *testing.T) {
	o := Defaults("/repo")
	o.PathRegex = []string{"^src/"}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate: %v", err)
	}
	if len(o.PathRegexCompiled) != 1 {
		t.Fatalf("PathRegexCompiled=%v", o.PathRegexCompiled)
	}

	bad := Defaults("/repo")
	bad.PathRegex = []string{"["}
	if err := NormalizeAndValidate(&bad); err == nil {
		t.Fatal("壊れた正規表現はエラーのはずです")
	}
}

func TestApplyWebQueryToOptionsはクエリを反映する(t *testing.T) {
	q := url.Values{}
	q.Set("tag", "@generated")
	q.Set("allowed_states", "ok,approved")
	q.Set("include_allowed", "yes")
	q.Set("with_code", "1")
	q.Set("jobs", "4")
	q.Set("langs", "ts,py")

	got, err := ApplyWebQueryToOptions(Defaults("/repo"), q)
	if err != nil {
		t.Fatalf("ApplyWebQueryToOptions: %v", err)
	}
	if got.Tag != "@generated" {
		t.Fatalf("Tag=%q", got.Tag)
	}
	if len(got.AllowedStates) != 2 || got.AllowedStates[1] != "approved" {
		t.Fatalf("AllowedStates=%v", got.AllowedStates)
	}
	if !got.IncludeAllowed || !got.WithCode {
		t.Fatalf("bool フラグが反映されていません: %+v", got)
	}
	if got.Jobs != 4 {
		t.Fatalf("Jobs=%d want 4", got.Jobs)
	}
	if len(got.Langs) != 2 {
		t.Fatalf("Langs=%v", got.Langs)
	}
}

func TestApplyWebQueryToOptionsは不正な値を拒否する(t *testing.T) {
	def := Defaults("/repo")
	if _, err := ApplyWebQueryToOptions(def, url.Values{"with_code": []string{"maybe"}}); err == nil {
		t.Fatal("bool 以外の値はエラーのはずです")
	}
	if _, err := ApplyWebQueryToOptions(def, url.Values{"jobs": []string{"0"}}); err == nil {
		t.Fatal("jobs=0 はエラーのはずです")
	}
}

func TestNormalizeOutputの別名と拒否(t *testing.T) {
	for _, v := range []string{"table", "TSV", "json", "ndjson", "csv", "md"} {
		if _, err := NormalizeOutput(v); err != nil {
			t.Fatalf("NormalizeOutput(%q): %v", v, err)
		}
	}
	if got, _ := NormalizeOutput("Markdown"); got != "md" {
		t.Fatalf("markdown の別名が効いていません: %q", got)
	}
	if _, err := NormalizeOutput("xml"); err == nil {
		t.Fatal("未知の形式は拒否するはずです")
	}
}

func TestSplitMultiはカンマと繰り返しを平坦化する(t *testing.T) {
	got := SplitMulti([]string{"a,b", " c ", "", ",d"})
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitMulti=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitMulti[%d]=%q want %q", i, got[i], want[i])
		}
	}
}
