// Package opts は CLI と Web が共有する走査オプションの既定値・変換・
// 検証をまとめます。入口が違っても同じ正規化とエラーメッセージを通る
// ようにするための層です。
package opts

import (
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/tagx/internal/detect"
	"github.com/phyten/tagx/internal/engine"
)

const maxJobs = 64

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the shared baseline options for both CLI and Web inputs.
func Defaults(repoDir string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		Tag:             "@ai-gen",
		AllowedStates:   []string{"ok"},
		RejectedStates:  []string{"rejected", "reject"},
		DetectInline:    true,
		DetectFileLevel: true,
		Jobs:            jobs,
		RepoDir:         repoDir,
	}
}

// ApplyWebQueryToOptions copies recognised values from the query string into
// the provided options. Range checks beyond parseability happen later in
// NormalizeAndValidate so the CLI and Web share one set of messages.
func ApplyWebQueryToOptions(def engine.Options, q url.Values) (engine.Options, error) {
	out := def
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	boolQ := func(key string, dst *bool) {
		raw, ok := lastLiteralValue(q[key])
		if !ok {
			return
		}
		v, err := ParseBool(raw, key)
		keep(err)
		if err == nil {
			*dst = v
		}
	}
	intQ := func(key string, dst *int) {
		raw, ok := lastLiteralValue(q[key])
		if !ok {
			return
		}
		n, err := parseInt(raw, key)
		keep(err)
		if err == nil {
			*dst = n
		}
	}
	listQ := func(key string, dst *[]string) {
		if raw := q[key]; len(raw) > 0 {
			*dst = SplitMulti(raw)
		}
	}

	if raw, ok := lastRawValue(q["tag"]); ok {
		out.Tag = raw
	}
	if raw, ok := lastRawValue(q["repo"]); ok {
		out.RepoDir = raw
	}
	listQ("allowed_states", &out.AllowedStates)
	listQ("rejected_states", &out.RejectedStates)
	listQ("path", &out.Paths)
	listQ("exclude", &out.Excludes)
	listQ("path_regex", &out.PathRegex)
	listQ("langs", &out.Langs)

	boolQ("detect_inline", &out.DetectInline)
	boolQ("detect_file_level", &out.DetectFileLevel)
	boolQ("include_allowed", &out.IncludeAllowed)
	boolQ("with_comment", &out.WithComment)
	boolQ("with_code", &out.WithCode)
	boolQ("with_url", &out.WithURL)
	boolQ("exclude_typical", &out.ExcludeTypical)
	boolQ("no_prefilter", &out.NoPrefilter)
	boolQ("progress", &out.Progress)

	intQ("truncate", &out.TruncAll)
	intQ("truncate_comment", &out.TruncComment)
	intQ("truncate_code", &out.TruncCode)
	intQ("max_file_bytes", &out.MaxFileBytes)

	if raw, ok := lastLiteralValue(q["jobs"]); ok {
		n, err := ParseIntInRange(raw, "jobs", 1, maxJobs)
		keep(err)
		if err == nil {
			out.Jobs = n
		}
	}

	return out, firstErr
}

// NormalizeAndValidate ensures the options are canonical and within the
// allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	o.Tag = strings.TrimSpace(o.Tag)
	if o.Tag == "" {
		return fmt.Errorf("tag must not be empty")
	}

	o.AllowedStates = normalizeStates(o.AllowedStates)
	o.RejectedStates = normalizeStates(o.RejectedStates)
	for _, s := range o.AllowedStates {
		for _, r := range o.RejectedStates {
			if s == r {
				return fmt.Errorf("state %q cannot be both allowed and rejected", s)
			}
		}
	}

	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if o.TruncAll < 0 {
		return fmt.Errorf("truncate must be >= 0")
	}
	if o.TruncComment < 0 {
		return fmt.Errorf("truncate_comment must be >= 0")
	}
	if o.TruncCode < 0 {
		return fmt.Errorf("truncate_code must be >= 0")
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}

	// コメントと抜粋の両方を出すときだけ既定の切り詰めを効かせる。
	if o.WithComment && o.WithCode && o.TruncAll == 0 && o.TruncComment == 0 && o.TruncCode == 0 {
		o.TruncAll = 120
	}

	if strings.TrimSpace(o.RepoDir) == "" {
		o.RepoDir = "."
	}

	o.Paths = trimSlice(o.Paths)
	o.Excludes = trimSlice(o.Excludes)
	o.PathRegex = trimSlice(o.PathRegex)
	o.Langs = trimSlice(o.Langs)
	if len(o.Langs) > 0 {
		o.Langs = detect.CanonicalDetectLangs(o.Langs)
	}

	compiled, err := engine.CompilePathRegex(o.PathRegex)
	if err != nil {
		return fmt.Errorf("invalid --path-regex: %w", err)
	}
	o.PathRegexCompiled = compiled
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple
// synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within
// [min, max]. If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	bounded := max >= min
	if n < min {
		if bounded {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if bounded && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the CLI/Web output format value.
func NormalizeOutput(value string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "markdown":
		return "md", nil
	case "table", "tsv", "json", "ndjson", "csv", "md":
		return v, nil
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti turns repeated query parameters (and comma-separated values)
// into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			if part := strings.TrimSpace(piece); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeStates(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}

func lastRawValue(vals []string) (string, bool) {
	for i := len(vals) - 1; i >= 0; i-- {
		if v := strings.TrimSpace(vals[i]); v != "" {
			return v, true
		}
	}
	return "", false
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
