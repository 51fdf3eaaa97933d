package scan

import (
	"fmt"
	"strings"
)

// Family は 1 回の走査で使用するコメント文法ファミリを選択します。
type Family int

const (
	FamilyCStyle Family = iota
	FamilyPython
	FamilyHashOnly
)

func (f Family) String() string {
	switch f {
	case FamilyPython:
		return "python"
	case FamilyHashOnly:
		return "hash-only"
	default:
		return "c-style"
	}
}

// ParseFamily converts a user-facing family name into a Family value.
func ParseFamily(raw string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "c", "c-style", "cstyle":
		return FamilyCStyle, nil
	case "python", "py":
		return FamilyPython, nil
	case "hash", "hash-only", "hashonly":
		return FamilyHashOnly, nil
	default:
		return FamilyCStyle, fmt.Errorf("unknown language family: %s", raw)
	}
}

type docDelim struct {
	open  []rune
	close []rune
}

// profile describes how one language family writes comments. It is selected
// once per scan and passed by value; no behavior is re-dispatched on the
// family name afterwards.
type profile struct {
	family     Family
	docs       []docDelim // empty for hash-only
	linePrefix []rune
}

var (
	cProfile = profile{
		family:     FamilyCStyle,
		docs:       []docDelim{{open: []rune("/**"), close: []rune("*/")}},
		linePrefix: []rune("//"),
	}
	pythonProfile = profile{
		family: FamilyPython,
		docs: []docDelim{
			{open: []rune(`"""`), close: []rune(`"""`)},
			{open: []rune("'''"), close: []rune("'''")},
		},
		linePrefix: []rune("#"),
	}
	hashProfile = profile{
		family:     FamilyHashOnly,
		linePrefix: []rune("#"),
	}
)

func profileFor(f Family) profile {
	switch f {
	case FamilyPython:
		return pythonProfile
	case FamilyHashOnly:
		return hashProfile
	default:
		return cProfile
	}
}
