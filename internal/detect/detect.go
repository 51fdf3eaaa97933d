// Package detect maps file paths and contents to a language name and to the
// comment family the scanner should use for that language.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/phyten/tagx/internal/scan"
)

type Info struct {
	Name string
}

// FromPathAndContent は拡張子・ファイル名・shebang から言語を推定します。
// 拡張子 .m は Objective-C と MATLAB で衝突するため内容で判別します。
func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	if name != "" {
		if strings.EqualFold(filepath.Ext(p), ".m") && name == "objective-c" && looksLikeMatlab(data) {
			return Info{Name: ""}
		}
		return Info{Name: name}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang}
	}
	return Info{Name: ""}
}

func detectByPath(p string) string {
	base := filepath.Base(p)
	lowerBase := strings.ToLower(base)
	if lang, ok := basenameLanguages[lowerBase]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	// two-part extensions such as .tar.gz style names: try the inner one
	stem := strings.TrimSuffix(lowerBase, ext)
	if stem == lowerBase {
		return ""
	}
	if lang, ok := extensionLanguages[filepath.Ext(stem)]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	line := strings.ToLower(string(data[:end]))
	for key, lang := range shebangLanguages {
		if strings.Contains(line, key) {
			return lang
		}
	}
	return ""
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

// FamilyFor returns the comment family used when scanning sources written in
// the given language. ok is false for languages the scanner has no grammar
// profile for.
func FamilyFor(name string) (scan.Family, bool) {
	f, ok := languageFamilies[NormalizeLangName(name)]
	return f, ok
}

// KnownLanguage reports whether the language can be scanned at all.
func KnownLanguage(name string) bool {
	_, ok := FamilyFor(name)
	return ok
}

func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

// CanonicalDetectLangs normalizes a user-supplied language filter, dropping
// blanks and duplicates while preserving order.
func CanonicalDetectLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var basenameLanguages = map[string]string{
	"makefile":         "make",
	"gnumakefile":      "make",
	"cmakelists.txt":   "cmake",
	"dockerfile":       "dockerfile",
	"justfile":         "make",
	"gemfile":          "ruby",
	"rakefile":         "ruby",
	"vagrantfile":      "ruby",
	"jenkinsfile":      "groovy",
	"setup.py":         "python",
	"requirements.txt": "pip",
	"pyproject.toml":   "toml",
	"cargo.toml":       "toml",
	"config.ru":        "ruby",
}

var extensionLanguages = map[string]string{
	".c":      "c",
	".h":      "c",
	".cc":     "cpp",
	".cpp":    "cpp",
	".cxx":    "cpp",
	".hh":     "cpp",
	".hpp":    "cpp",
	".hxx":    "cpp",
	".m":      "objective-c",
	".mm":     "objective-cpp",
	".go":     "go",
	".js":     "javascript",
	".mjs":    "javascript",
	".cjs":    "javascript",
	".jsx":    "javascriptreact",
	".ts":     "typescript",
	".tsx":    "typescriptreact",
	".java":   "java",
	".kt":     "kotlin",
	".kts":    "kotlin",
	".scala":  "scala",
	".groovy": "groovy",
	".gradle": "gradle",
	".swift":  "swift",
	".rs":     "rust",
	".dart":   "dart",
	".cs":     "csharp",
	".php":    "php",
	".phtml":  "php",
	".proto":  "proto",
	".css":    "css",
	".scss":   "scss",
	".less":   "less",
	".sql":    "sql",
	".py":     "python",
	".pyw":    "python",
	".pyi":    "python",
	".pyx":    "cython",
	".pxd":    "cython",
	".rb":     "ruby",
	".rake":   "ruby",
	".gemspec": "ruby",
	".sh":     "shell",
	".bash":   "shell",
	".zsh":    "shell",
	".ksh":    "shell",
	".csh":    "shell",
	".fish":   "fish",
	".pl":     "perl",
	".pm":     "perl",
	".r":      "r",
	".jl":     "julia",
	".ex":     "elixir",
	".exs":    "elixir",
	".nim":    "nim",
	".tcl":    "tcl",
	".yaml":   "yaml",
	".yml":    "yaml",
	".toml":   "toml",
	".ini":    "ini",
	".cfg":    "ini",
	".conf":   "ini",
	".env":    "dotenv",
	".properties": "properties",
	".mk":     "make",
	".make":   "make",
	".cmake":  "cmake",
	".hcl":    "hcl",
	".tf":     "terraform",
	".tfvars": "terraform",
	".bzl":    "starlark",
	".star":   "starlark",
	".bazel":  "starlark",
	".rego":   "rego",
	".dockerfile": "dockerfile",
}

var langAliases = map[string]string{
	"c#":     "csharp",
	"cs":     "csharp",
	"c++":    "cpp",
	"js":     "javascript",
	"mjs":    "javascript",
	"cjs":    "javascript",
	"jsx":    "javascriptreact",
	"ts":     "typescript",
	"tsx":    "typescriptreact",
	"kt":     "kotlin",
	"golang": "go",
	"rb":     "ruby",
	"py":     "python",
	"bash":   "shell",
	"sh":     "shell",
	"zsh":    "shell",
	"mk":     "make",
	"tf":     "terraform",
	"yml":    "yaml",
}

var shebangLanguages = map[string]string{
	"python":  "python",
	"python3": "python",
	"python2": "python",
	"pypy":    "python",
	"node":    "javascript",
	"deno":    "javascript",
	"bun":     "javascript",
	"perl":    "perl",
	"ruby":    "ruby",
	"php":     "php",
	"bash":    "shell",
	"sh":      "shell",
	"zsh":     "shell",
	"ksh":     "shell",
	"fish":    "fish",
	"elixir":  "elixir",
	"tclsh":   "tcl",
	"rscript": "r",
	"julia":   "julia",
	"awk":     "awk",
}

// languageFamilies ties each scannable language to its grammar profile.
// Languages absent here are detected but never scanned.
var languageFamilies = map[string]scan.Family{
	"c":               scan.FamilyCStyle,
	"cpp":             scan.FamilyCStyle,
	"objective-c":     scan.FamilyCStyle,
	"objective-cpp":   scan.FamilyCStyle,
	"go":              scan.FamilyCStyle,
	"javascript":      scan.FamilyCStyle,
	"javascriptreact": scan.FamilyCStyle,
	"typescript":      scan.FamilyCStyle,
	"typescriptreact": scan.FamilyCStyle,
	"java":            scan.FamilyCStyle,
	"kotlin":          scan.FamilyCStyle,
	"scala":           scan.FamilyCStyle,
	"groovy":          scan.FamilyCStyle,
	"gradle":          scan.FamilyCStyle,
	"swift":           scan.FamilyCStyle,
	"rust":            scan.FamilyCStyle,
	"dart":            scan.FamilyCStyle,
	"csharp":          scan.FamilyCStyle,
	"php":             scan.FamilyCStyle,
	"proto":           scan.FamilyCStyle,
	"css":             scan.FamilyCStyle,
	"scss":            scan.FamilyCStyle,
	"less":            scan.FamilyCStyle,

	"python": scan.FamilyPython,
	"cython": scan.FamilyPython,

	"ruby":       scan.FamilyHashOnly,
	"shell":      scan.FamilyHashOnly,
	"fish":       scan.FamilyHashOnly,
	"perl":       scan.FamilyHashOnly,
	"r":          scan.FamilyHashOnly,
	"julia":      scan.FamilyHashOnly,
	"elixir":     scan.FamilyHashOnly,
	"nim":        scan.FamilyHashOnly,
	"tcl":        scan.FamilyHashOnly,
	"awk":        scan.FamilyHashOnly,
	"yaml":       scan.FamilyHashOnly,
	"toml":       scan.FamilyHashOnly,
	"ini":        scan.FamilyHashOnly,
	"dotenv":     scan.FamilyHashOnly,
	"properties": scan.FamilyHashOnly,
	"make":       scan.FamilyHashOnly,
	"cmake":      scan.FamilyHashOnly,
	"dockerfile": scan.FamilyHashOnly,
	"hcl":        scan.FamilyHashOnly,
	"terraform":  scan.FamilyHashOnly,
	"starlark":   scan.FamilyHashOnly,
	"rego":       scan.FamilyHashOnly,
	"pip":        scan.FamilyHashOnly,
}

// looksLikeMatlab samples the head of a .m file for MATLAB-only constructs.
func looksLikeMatlab(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	sawMatlabKeyword := false
	for _, line := range strings.Split(string(sample), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "@interface") || strings.HasPrefix(lower, "@implementation") || strings.HasPrefix(lower, "#import") {
			return false
		}
		if strings.HasPrefix(lower, "function") || strings.HasPrefix(lower, "classdef") {
			return true
		}
		if strings.HasPrefix(lower, "properties") || strings.HasPrefix(lower, "methods") {
			sawMatlabKeyword = true
		}
	}
	return sawMatlabKeyword
}
