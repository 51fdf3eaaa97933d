package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/tagx/internal/engine/opts"
)

// engineKeyMap maps accepted spellings to canonical engine keys.
var engineKeyMap = map[string]string{
	"tag":               "tag",
	"allowed_states":    "allowed_states",
	"allowed":           "allowed_states",
	"rejected_states":   "rejected_states",
	"rejected":          "rejected_states",
	"detect_inline":     "detect_inline",
	"detect_file_level": "detect_file_level",
	"include_allowed":   "include_allowed",
	"path":              "path",
	"paths":             "path",
	"exclude":           "exclude",
	"excludes":          "exclude",
	"path_regex":        "path_regex",
	"path_regexes":      "path_regex",
	"langs":             "langs",
	"languages":         "langs",
	"exclude_typical":   "exclude_typical",
	"with_comment":      "with_comment",
	"with_code":         "with_code",
	"with_url":          "with_url",
	"truncate":          "truncate",
	"truncate_comment":  "truncate_comment",
	"truncate_code":     "truncate_code",
	"max_file_bytes":    "max_file_bytes",
	"max_bytes":         "max_file_bytes",
	"jobs":              "jobs",
	"repo":              "repo",
	"output":            "output",
	"color":             "color",
	"no_prefilter":      "no_prefilter",
}

var uiKeyMap = map[string]string{
	"fields": "fields",
	"sort":   "sort",
}

// Load は拡張子から形式を判別して設定ファイルを読み込みます。
// 未知のキーはエラーにします。タイポを黙って無視しないためです。
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw == nil {
		return cfg, nil
	}
	cfg, err = decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// decodeConfigMap accepts both sectioned ([engine] / [ui]) and flat layouts.
// Flat keys are routed to whichever section knows them.
func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)
	uiSection := make(map[string]any)

	collect := func(name string, keyMap map[string]string, dst map[string]any) error {
		block, ok := raw[name]
		if !ok {
			return nil
		}
		sub, err := toStringKeyMap(block)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		for key, value := range sub {
			canonical, ok := keyMap[normalizeKey(key)]
			if !ok {
				return fmt.Errorf("unknown %s key: %s", name, key)
			}
			dst[canonical] = value
		}
		return nil
	}
	if err := collect("engine", engineKeyMap, engineSection); err != nil {
		return cfg, err
	}
	if err := collect("ui", uiKeyMap, uiSection); err != nil {
		return cfg, err
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		if norm == "engine" || norm == "ui" {
			continue
		}
		if canonical, ok := engineKeyMap[norm]; ok {
			engineSection[canonical] = value
			continue
		}
		if canonical, ok := uiKeyMap[norm]; ok {
			uiSection[canonical] = value
			continue
		}
		return cfg, fmt.Errorf("unknown config key: %s", key)
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, fmt.Errorf("engine: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

// setField converts value with conv and stores the result through a pointer
// field, keeping the nil-means-unset convention intact.
func setField[T any](dst **T, value any, key string, conv func(any, string) (T, error)) error {
	v, err := conv(value, key)
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

func expectTrimmedString(value any, field string) (string, error) {
	s, err := expectString(value, field)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	for key, value := range section {
		var err error
		switch key {
		case "tag":
			err = setField(&dst.Tag, value, key, expectString)
		case "allowed_states":
			err = setField(&dst.AllowedStates, value, key, expectStringList)
		case "rejected_states":
			err = setField(&dst.RejectedStates, value, key, expectStringList)
		case "detect_inline":
			err = setField(&dst.DetectInline, value, key, expectBool)
		case "detect_file_level":
			err = setField(&dst.DetectFileLevel, value, key, expectBool)
		case "include_allowed":
			err = setField(&dst.IncludeAllowed, value, key, expectBool)
		case "path":
			err = setField(&dst.Paths, value, key, expectStringList)
		case "exclude":
			err = setField(&dst.Excludes, value, key, expectStringList)
		case "path_regex":
			err = setField(&dst.PathRegex, value, key, expectStringList)
		case "langs":
			err = setField(&dst.Langs, value, key, expectStringList)
		case "exclude_typical":
			err = setField(&dst.ExcludeTypical, value, key, expectBool)
		case "with_comment":
			err = setField(&dst.WithComment, value, key, expectBool)
		case "with_code":
			err = setField(&dst.WithCode, value, key, expectBool)
		case "with_url":
			err = setField(&dst.WithURL, value, key, expectBool)
		case "truncate":
			err = setField(&dst.TruncAll, value, key, expectInt)
		case "truncate_comment":
			err = setField(&dst.TruncComment, value, key, expectInt)
		case "truncate_code":
			err = setField(&dst.TruncCode, value, key, expectInt)
		case "max_file_bytes":
			err = setField(&dst.MaxFileBytes, value, key, expectInt)
		case "jobs":
			err = setField(&dst.Jobs, value, key, expectInt)
		case "repo":
			err = setField(&dst.Repo, value, key, expectString)
		case "output":
			err = setField(&dst.Output, value, key, expectTrimmedString)
		case "color":
			err = setField(&dst.Color, value, key, expectTrimmedString)
		case "no_prefilter":
			err = setField(&dst.NoPrefilter, value, key, expectBool)
		default:
			err = fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		var err error
		switch key {
		case "fields":
			err = setField(&dst.Fields, value, key, expectString)
		case "sort":
			err = setField(&dst.Sort, value, key, expectString)
		default:
			err = fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected string for %s, got %T", field, value)
	}
	return s, nil
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	}
	return false, fmt.Errorf("expected bool for %s, got %T", field, value)
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// YAML/JSON deliver numbers as float64; reject fractions.
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return normalizeList(engineopts.SplitMulti([]string{v})), nil
	case []string:
		return normalizeList(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return normalizeList(out), nil
	}
	return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected map, got %T", v)
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
