package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ColorMode は --color フラグの値に対応します。
type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	}
	return "auto"
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
}

// Profile は端末が扱える色数の段階です。
type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// EnvMap converts os.Environ-style "KEY=VALUE" entries into a lookup map.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, kv := range values {
		if kv == "" {
			continue
		}
		key, val, found := strings.Cut(kv, "=")
		if !found {
			env[kv] = ""
			continue
		}
		env[key] = val
	}
	return env
}

// DetectMode resolves auto mode against the environment. Suppression wins
// over forcing: TERM=dumb, NO_COLOR and CLICOLOR=0 all disable color even
// when CLICOLOR_FORCE or FORCE_COLOR is set. With no environment signal the
// decision falls back to whether stdout is a terminal.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	if suppressed(env) {
		return ModeNever
	}
	if forced(env) {
		return ModeAlways
	}
	if isTerminal(stdout) {
		return ModeAlways
	}
	return ModeNever
}

func suppressed(env map[string]string) bool {
	if strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb") {
		return true
	}
	if strings.TrimSpace(env["NO_COLOR"]) != "" {
		return true
	}
	return strings.TrimSpace(env["CLICOLOR"]) == "0"
}

func forced(env map[string]string) bool {
	for _, key := range []string{"CLICOLOR_FORCE", "FORCE_COLOR"} {
		v := strings.TrimSpace(env[key])
		if v != "" && v != "0" {
			return true
		}
	}
	return false
}

// DetectProfile は COLORTERM と TERM からカラープロファイルを推定します。
// 判定できないときは基本 8 色に倒します。
func DetectProfile(env map[string]string) Profile {
	colorterm := strings.ToLower(strings.TrimSpace(env["COLORTERM"]))
	for _, marker := range []string{"truecolor", "24bit", "24-bit"} {
		if strings.Contains(colorterm, marker) {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(strings.TrimSpace(env["TERM"])), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
