package termcolor

import (
	"os"
	"testing"
)

func TestParseModeは既知の値だけ受け付ける(t *testing.T) {
	cases := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"always", ModeAlways, false},
		{"ALWAYS", ModeAlways, false},
		{" never ", ModeNever, false},
		{"rainbow", ModeAuto, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseMode(%q) はエラーを返すべきです", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q)=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestDetectModeは抑制を強制より優先する(t *testing.T) {
	_, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	cases := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"NO_COLOR", map[string]string{"NO_COLOR": "1"}, ModeNever},
		{"CLICOLOR=0", map[string]string{"CLICOLOR": "0"}, ModeNever},
		{"TERM=dumb", map[string]string{"TERM": "dumb"}, ModeNever},
		{"CLICOLOR_FORCE", map[string]string{"CLICOLOR_FORCE": "1"}, ModeAlways},
		{"CLICOLOR_FORCE=2", map[string]string{"CLICOLOR_FORCE": "2"}, ModeAlways},
		{"FORCE_COLOR", map[string]string{"FORCE_COLOR": "2"}, ModeAlways},
		{"FORCE_COLOR=0", map[string]string{"FORCE_COLOR": "0"}, ModeNever},
		{"NO_COLORが強制に勝つ", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, ModeNever},
		{"dumbが強制に勝つ", map[string]string{"TERM": "dumb", "FORCE_COLOR": "1"}, ModeNever},
		{"パイプ出力", map[string]string{}, ModeNever},
	}
	for _, tc := range cases {
		if got := DetectMode(w, tc.env); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}

	if got := DetectMode(nil, nil); got != ModeNever {
		t.Fatalf("stdoutなしはneverであるべきです: got=%v", got)
	}
}

func TestDetectProfile(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want Profile
	}{
		{map[string]string{"COLORTERM": "truecolor"}, ProfileTrueColor},
		{map[string]string{"COLORTERM": "24bit"}, ProfileTrueColor},
		{map[string]string{"TERM": "xterm-256color"}, ProfileANSI256},
		{map[string]string{"TERM": "xterm"}, ProfileBasic8},
		{map[string]string{}, ProfileBasic8},
	}
	for _, tc := range cases {
		if got := DetectProfile(tc.env); got != tc.want {
			t.Fatalf("env=%v: got=%v want=%v", tc.env, got, tc.want)
		}
	}
}

func TestEnvMapは最初の等号で分割する(t *testing.T) {
	env := EnvMap([]string{"FOO=bar", "BAZ", "QUX=1=2", ""})
	if env["FOO"] != "bar" || env["BAZ"] != "" || env["QUX"] != "1=2" {
		t.Fatalf("EnvMapの結果が不正です: %v", env)
	}
}
