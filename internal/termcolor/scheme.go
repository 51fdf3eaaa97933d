package termcolor

import (
	"strconv"
	"strings"
)

// Scheme は端末の背景が明るいか暗いかの推定結果です。
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// DetectScheme guesses the background from COLORFGBG (last field is the
// background color index; 7 and up is treated as light) and falls back to a
// "light" substring in TERM. Unknown environments default to dark.
func DetectScheme(env map[string]string) Scheme {
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(strings.TrimSpace(env["TERM"])), "light") {
		return SchemeLight
	}
	return SchemeDark
}

func colorfgbgBackground(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	parts := strings.Split(raw, ";")
	bgRaw := strings.TrimSpace(parts[len(parts)-1])
	if bgRaw == "" && len(parts) >= 2 {
		bgRaw = strings.TrimSpace(parts[len(parts)-2])
	}
	bg, err := strconv.Atoi(bgRaw)
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}
