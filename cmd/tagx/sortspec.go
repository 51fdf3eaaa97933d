package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/tagx/internal/engine"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// stateRank orders by severity: rejected first, allowed last.
var stateRank = map[string]int{
	"rejected": 0,
	"warning":  1,
	"allowed":  2,
}

func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "size":
			name = "lines"
		case "location":
			keys = append(keys, SortKey{Name: "file", Desc: desc}, SortKey{Name: "line", Desc: desc})
			continue
		case "state", "lang", "family", "file", "line", "lines":
			// accepted as is
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

func ApplySort(items []engine.Item, spec SortSpec) {
	keys := spec.Keys
	if len(keys) == 0 {
		keys = []SortKey{{Name: "file"}, {Name: "line"}}
	} else {
		keys = append(append([]SortKey{}, keys...), SortKey{Name: "file"}, SortKey{Name: "line"})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a := &items[i]
		b := &items[j]
		for _, key := range keys {
			switch key.Name {
			case "state":
				ra, rb := stateRankOf(a.State), stateRankOf(b.State)
				if ra != rb {
					if key.Desc {
						return ra > rb
					}
					return ra < rb
				}
			case "lang":
				if a.Lang != b.Lang {
					if key.Desc {
						return a.Lang > b.Lang
					}
					return a.Lang < b.Lang
				}
			case "family":
				if a.Family != b.Family {
					if key.Desc {
						return a.Family > b.Family
					}
					return a.Family < b.Family
				}
			case "file":
				if a.File != b.File {
					if key.Desc {
						return a.File > b.File
					}
					return a.File < b.File
				}
			case "line":
				if a.Line != b.Line {
					if key.Desc {
						return a.Line > b.Line
					}
					return a.Line < b.Line
				}
			case "lines":
				la, lb := a.Code.Lines(), b.Code.Lines()
				if la != lb {
					if key.Desc {
						return la > lb
					}
					return la < lb
				}
			}
		}
		return false
	})
}

func applySort(items []engine.Item, raw string) error {
	spec, err := ParseSortSpec(raw)
	if err != nil {
		return err
	}
	ApplySort(items, spec)
	return nil
}

func stateRankOf(state string) int {
	if rank, ok := stateRank[strings.ToLower(state)]; ok {
		return rank
	}
	return len(stateRank)
}
