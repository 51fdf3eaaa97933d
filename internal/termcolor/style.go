package termcolor

import (
	"fmt"
	"strings"
)

// Style は 1 セル分の装飾指定です。前景色はプロファイルに応じて
// FGTrue > FG256 > FGBasic の順で採用されます。
type Style struct {
	Bold      bool
	Underline bool
	Dim       bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

func (s Style) isZero() bool {
	return !s.Bold && !s.Underline && !s.Dim && s.FGBasic == nil && s.FG256 == nil && s.FGTrue == nil
}

// Apply wraps text in the SGR sequence for s. Disabled or empty styles
// return the text untouched.
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" || s.isZero() {
		return text
	}
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	switch {
	case s.FGTrue != nil:
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", s.FGTrue[0], s.FGTrue[1], s.FGTrue[2]))
	case s.FG256 != nil:
		codes = append(codes, fmt.Sprintf("38;5;%d", *s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, fmt.Sprintf("3%d", *s.FGBasic))
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}
