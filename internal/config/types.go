package config

import (
	"strings"

	"github.com/phyten/tagx/internal/engine"
)

type EngineConfig struct {
	Tag             *string   `yaml:"tag" toml:"tag" json:"tag"`
	AllowedStates   *[]string `yaml:"allowed_states" toml:"allowed_states" json:"allowed_states"`
	RejectedStates  *[]string `yaml:"rejected_states" toml:"rejected_states" json:"rejected_states"`
	DetectInline    *bool     `yaml:"detect_inline" toml:"detect_inline" json:"detect_inline"`
	DetectFileLevel *bool     `yaml:"detect_file_level" toml:"detect_file_level" json:"detect_file_level"`
	IncludeAllowed  *bool     `yaml:"include_allowed" toml:"include_allowed" json:"include_allowed"`
	Paths           *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes        *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex       *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical  *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	WithComment     *bool     `yaml:"with_comment" toml:"with_comment" json:"with_comment"`
	WithCode        *bool     `yaml:"with_code" toml:"with_code" json:"with_code"`
	WithURL         *bool     `yaml:"with_url" toml:"with_url" json:"with_url"`
	Langs           *[]string `yaml:"langs" toml:"langs" json:"langs"`
	TruncAll        *int      `yaml:"truncate" toml:"truncate" json:"truncate"`
	TruncComment    *int      `yaml:"truncate_comment" toml:"truncate_comment" json:"truncate_comment"`
	TruncCode       *int      `yaml:"truncate_code" toml:"truncate_code" json:"truncate_code"`
	Jobs            *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Repo            *string   `yaml:"repo" toml:"repo" json:"repo"`
	Output          *string   `yaml:"output" toml:"output" json:"output"`
	Color           *string   `yaml:"color" toml:"color" json:"color"`
	MaxFileBytes    *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	NoPrefilter     *bool     `yaml:"no_prefilter" toml:"no_prefilter" json:"no_prefilter"`
}

type UIConfig struct {
	Fields *string `yaml:"fields" toml:"fields" json:"fields"`
	Sort   *string `yaml:"sort" toml:"sort" json:"sort"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	Tag             string
	AllowedStates   []string
	RejectedStates  []string
	DetectInline    bool
	DetectFileLevel bool
	IncludeAllowed  bool
	Paths           []string
	Excludes        []string
	PathRegex       []string
	ExcludeTypical  bool
	WithComment     bool
	WithCode        bool
	WithURL         bool
	Langs           []string
	TruncAll        int
	TruncComment    int
	TruncCode       int
	Jobs            int
	Repo            string
	Output          string
	Color           string
	MaxFileBytes    int
	NoPrefilter     bool
}

type UISettings struct {
	Fields string
	Sort   string
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Tag:             opts.Tag,
		AllowedStates:   cloneStrings(opts.AllowedStates),
		RejectedStates:  cloneStrings(opts.RejectedStates),
		DetectInline:    opts.DetectInline,
		DetectFileLevel: opts.DetectFileLevel,
		IncludeAllowed:  opts.IncludeAllowed,
		Paths:           cloneStrings(opts.Paths),
		Excludes:        cloneStrings(opts.Excludes),
		PathRegex:       cloneStrings(opts.PathRegex),
		ExcludeTypical:  opts.ExcludeTypical,
		WithComment:     opts.WithComment,
		WithCode:        opts.WithCode,
		WithURL:         opts.WithURL,
		Langs:           cloneStrings(opts.Langs),
		TruncAll:        opts.TruncAll,
		TruncComment:    opts.TruncComment,
		TruncCode:       opts.TruncCode,
		Jobs:            opts.Jobs,
		Repo:            opts.RepoDir,
		Output:          "table",
		Color:           "auto",
		MaxFileBytes:    opts.MaxFileBytes,
		NoPrefilter:     opts.NoPrefilter,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Tag = s.Tag
	opts.AllowedStates = cloneStrings(s.AllowedStates)
	opts.RejectedStates = cloneStrings(s.RejectedStates)
	opts.DetectInline = s.DetectInline
	opts.DetectFileLevel = s.DetectFileLevel
	opts.IncludeAllowed = s.IncludeAllowed
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.WithComment = s.WithComment
	opts.WithCode = s.WithCode
	opts.WithURL = s.WithURL
	opts.Langs = cloneStrings(s.Langs)
	opts.TruncAll = s.TruncAll
	opts.TruncComment = s.TruncComment
	opts.TruncCode = s.TruncCode
	opts.Jobs = s.Jobs
	if trimmed := strings.TrimSpace(s.Repo); trimmed != "" {
		opts.RepoDir = trimmed
	}
	opts.MaxFileBytes = s.MaxFileBytes
	opts.NoPrefilter = s.NoPrefilter
}

func DefaultUISettings() UISettings {
	return UISettings{
		Fields: "",
		Sort:   "",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
