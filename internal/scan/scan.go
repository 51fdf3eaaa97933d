// Package scan locates marker tags inside source comments and resolves the
// span of code each marker governs. It is a pure function of (text, config):
// no state survives between calls and concurrent scans of distinct inputs
// are safe.
package scan

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"
	"unicode"
)

// State は tag の後続テキストの分類結果です。
type State string

const (
	StateWarning  State = "warning"
	StateRejected State = "rejected"
	StateAllowed  State = "allowed"
)

// Match is one detected tag paired with the code span it governs. Offsets
// are 0-based rune indices into the scanned text.
type Match struct {
	TagStart  int
	TagEnd    int
	CodeStart int
	CodeEnd   int
	State     State
	FileLevel bool
}

// Config controls one scan. It is read once at the start of Scan and never
// mutated; supply a fresh value per call.
type Config struct {
	Tag             string
	AllowedStates   []string
	RejectedStates  []string
	DetectInline    bool
	DetectFileLevel bool
	IncludeAllowed  bool
	Family          Family
}

// DefaultConfig returns the stock configuration for a family: tag @ai-gen,
// allowed state "ok", rejected states "rejected"/"reject", inline and
// file-level detection on.
func DefaultConfig(f Family) Config {
	return Config{
		Tag:             "@ai-gen",
		AllowedStates:   []string{"ok"},
		RejectedStates:  []string{"rejected", "reject"},
		DetectInline:    true,
		DetectFileLevel: true,
		IncludeAllowed:  false,
		Family:          f,
	}
}

// Validate rejects configurations that cannot be scanned with. This is the
// only error surface besides cancellation; malformed source text never
// fails a scan.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Tag) == "" {
		return errors.New("scan: tag must not be empty")
	}
	return nil
}

// yieldBudget is the wall-clock interval between cooperative yields. The
// check happens only at comment boundaries so extent resolution for one
// comment stays atomic.
const yieldBudget = 12 * time.Millisecond

// Scan returns all accepted tag matches in text, ordered by TagStart. On
// cancellation the result is empty (never partial) and ctx.Err() is
// returned.
func Scan(ctx context.Context, text string, cfg Config) ([]Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := []rune(text)
	p := profileFor(cfg.Family)
	m := newMatcher(cfg)

	var out []Match
	skipUntil := -1
	if cfg.DetectFileLevel && cfg.DetectInline {
		if fl, cend := fileLevelMatch(src, p, m); fl != nil {
			skipUntil = cend
			if fl.CodeStart < fl.CodeEnd {
				out = append(out, *fl)
			}
		}
	}

	lastYield := time.Now()
	pos := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Since(lastYield) > yieldBudget {
			runtime.Gosched()
			lastYield = time.Now()
		}
		c, ok := nextComment(src, pos, p, cfg.DetectInline)
		if !ok {
			break
		}
		pos = c.end
		if c.start < skipUntil {
			continue
		}
		mt, ok := m.tagIn(src, c)
		if !ok {
			continue
		}
		if mt.State == StateAllowed && !cfg.IncludeAllowed {
			continue
		}
		cs := firstNonSpace(src, c.end)
		if cs < 0 {
			// tag with no code after it: nothing to govern
			continue
		}
		var ce int
		if c.line {
			ce = lineEnd(src, cs)
		} else {
			ce = blockEnd(src, cs, cfg.Family)
		}
		if ce <= cs {
			continue
		}
		mt.CodeStart = cs
		mt.CodeEnd = ce
		out = append(out, mt)
	}
	return out, nil
}

// comment is one located comment: start of the opening delimiter, the body
// between delimiters, and end (first rune offset after the construct).
type comment struct {
	start     int
	bodyStart int
	bodyEnd   int
	end       int
	line      bool
}

// nextComment finds the next comment at or after pos. Line comments are
// only considered when inline detection is on.
func nextComment(src []rune, pos int, p profile, inline bool) (comment, bool) {
	for i := pos; i < len(src); i++ {
		for _, d := range p.docs {
			if hasPrefixAt(src, i, d.open) {
				end := len(src)
				bodyEnd := len(src)
				if j := indexAt(src, i+len(d.open), d.close); j >= 0 {
					bodyEnd = j
					end = j + len(d.close)
				}
				return comment{start: i, bodyStart: i + len(d.open), bodyEnd: bodyEnd, end: end}, true
			}
		}
		if inline && hasPrefixAt(src, i, p.linePrefix) {
			end := skipLineComment(src, i)
			return comment{start: i, bodyStart: i + len(p.linePrefix), bodyEnd: end, end: end, line: true}, true
		}
	}
	return comment{}, false
}

// fileLevelMatch checks whether the text opens (after only whitespace) with
// a line comment carrying the tag in a non-allowed state. The governed span
// is the whole remainder of the file, starting right after the comment even
// when that is whitespace.
func fileLevelMatch(src []rune, p profile, m *matcher) (*Match, int) {
	i := firstNonSpace(src, 0)
	if i < 0 || !hasPrefixAt(src, i, p.linePrefix) {
		return nil, 0
	}
	end := skipLineComment(src, i)
	c := comment{start: i, bodyStart: i + len(p.linePrefix), bodyEnd: end, end: end, line: true}
	mt, ok := m.tagIn(src, c)
	if !ok || mt.State == StateAllowed {
		return nil, 0
	}
	mt.CodeStart = c.end
	mt.CodeEnd = len(src)
	mt.FileLevel = true
	return &mt, c.end
}

// matcher holds the per-scan tag needle and state sets. It is built fresh
// for every Scan call; nothing is shared across calls.
type matcher struct {
	tag      []rune
	allowed  map[string]struct{}
	rejected map[string]struct{}
}

func newMatcher(cfg Config) *matcher {
	m := &matcher{
		tag:      foldRunes(cfg.Tag),
		allowed:  make(map[string]struct{}, len(cfg.AllowedStates)),
		rejected: make(map[string]struct{}, len(cfg.RejectedStates)),
	}
	for _, s := range cfg.AllowedStates {
		m.allowed[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, s := range cfg.RejectedStates {
		m.rejected[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return m
}

// tagIn searches the comment body for the tag and classifies its trailing
// text. CodeStart/CodeEnd are left for the caller to fill in.
func (m *matcher) tagIn(src []rune, c comment) (Match, bool) {
	idx := indexFold(src, m.tag, c.bodyStart, c.bodyEnd)
	if idx < 0 {
		return Match{}, false
	}
	tagEnd := idx + len(m.tag)
	trailing, trailEnd := normalizeTrailing(src, tagEnd, c.bodyEnd)
	mt := Match{TagStart: idx, TagEnd: trailEnd, State: StateWarning}
	if _, ok := m.allowed[trailing]; ok {
		mt.State = StateAllowed
	} else if _, ok := m.rejected[trailing]; ok {
		mt.State = StateRejected
	}
	return mt, true
}

// closing-delimiter remnants that can leak into trailing text when a body
// was cut at end of text
var trailingRemnants = []string{"*/", `"""`, "'''"}

// normalizeTrailing lower-cases and trims the free text following the tag
// inside [from, to) and returns it together with the rune offset just past
// its last significant rune (from itself when there is none). Remnants are
// stripped from the suffix only, so the offset stays aligned with the text.
func normalizeTrailing(src []rune, from, to int) (string, int) {
	raw := string(src[from:to])
	for {
		t := strings.TrimRightFunc(raw, unicode.IsSpace)
		stripped := false
		for _, rem := range trailingRemnants {
			if strings.HasSuffix(t, rem) {
				t = strings.TrimSuffix(t, rem)
				stripped = true
			}
		}
		raw = t
		if !stripped {
			break
		}
	}
	end := from + len([]rune(raw))
	norm := strings.ToLower(strings.TrimSpace(raw))
	return norm, end
}

func hasPrefixAt(src []rune, i int, needle []rune) bool {
	if i+len(needle) > len(src) {
		return false
	}
	for k, r := range needle {
		if src[i+k] != r {
			return false
		}
	}
	return true
}

func indexAt(src []rune, from int, needle []rune) int {
	for i := from; i+len(needle) <= len(src); i++ {
		if hasPrefixAt(src, i, needle) {
			return i
		}
	}
	return -1
}

// indexFold finds the lower-cased needle in src[from:to] ignoring case.
func indexFold(src []rune, needle []rune, from, to int) int {
	if len(needle) == 0 {
		return -1
	}
	limit := to - len(needle)
	for i := from; i <= limit; i++ {
		match := true
		for k, r := range needle {
			if unicode.ToLower(src[i+k]) != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func foldRunes(s string) []rune {
	rs := []rune(strings.TrimSpace(s))
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}
