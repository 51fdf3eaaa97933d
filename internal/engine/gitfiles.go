package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var typicalExcludePatterns = []string{
	":(glob,exclude)vendor/**",
	":(glob,exclude)node_modules/**",
	":(glob,exclude)dist/**",
	":(glob,exclude)build/**",
	":(glob,exclude)target/**",
	":(glob,exclude)*.min.*",
}

// buildGrepPathspecs builds the list to append after "--" for `git grep`
// and `git ls-files`.
func buildGrepPathspecs(includes, excludes []string, typical bool) []string {
	normalized := make([]string, 0, len(includes))
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, filepath.ToSlash(trimmed))
	}

	out := make([]string, 0, len(normalized)+len(excludes)+len(typicalExcludePatterns)+1)
	if len(normalized) == 0 {
		out = append(out, ".")
	} else {
		out = append(out, normalized...)
	}

	if typical {
		out = append(out, typicalExcludePatterns...)
	}

	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

// CompilePathRegex compiles user-supplied path filters, skipping blanks.
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func filterPathsByRegex(paths []string, rx []*regexp.Regexp) []string {
	if len(rx) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if matchAny(rx, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchAny(rx []*regexp.Regexp, text string) bool {
	for _, r := range rx {
		if r.MatchString(text) {
			return true
		}
	}
	return false
}

// gitGrepFiles lists tracked text files containing the tag. The tag is
// matched as a fixed string and case-insensitively, mirroring the scanner's
// own tag matching, so the prefilter can only over-select, never miss.
func gitGrepFiles(repo, tag string, includes, excludes []string, typical bool) ([]string, error) {
	pathspecs := buildGrepPathspecs(includes, excludes, typical)
	args := []string{"-c", "core.quotePath=false", "grep", "-Ilz", "-i", "-F", tag, "--"}
	args = append(args, pathspecs...)
	cmd := exec.Command("git", args...)
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		// exit code 1 means "no matches"
		var ee *exec.ExitError
		if errors.As(err, &ee) && ee.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("git grep -l: %w", err)
	}
	return splitNulPaths(out), nil
}

func gitListFiles(repo string, includes, excludes []string, typical bool) ([]string, error) {
	args := []string{"ls-files", "-z"}
	args = append(args, buildGrepPathspecs(includes, excludes, typical)...)
	cmd := exec.Command("git", args...)
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}
	return splitNulPaths(out), nil
}

func gitHeadSHA(repo string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func splitNulPaths(out []byte) []string {
	if len(out) == 0 {
		return nil
	}
	parts := bytes.Split(out, []byte{0})
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		paths = append(paths, filepath.ToSlash(string(p)))
	}
	return paths
}
