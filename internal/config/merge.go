package config

import "strings"

// overlay は nil でないフィールドだけを dst に上書きします。
func (c EngineConfig) overlay(dst *EngineSettings) {
	dst.Tag = ResolveAndTrim(dst.Tag, c.Tag)
	dst.AllowedStates = ResolveStrings(dst.AllowedStates, c.AllowedStates)
	dst.RejectedStates = ResolveStrings(dst.RejectedStates, c.RejectedStates)
	dst.DetectInline = ResolveBool(dst.DetectInline, c.DetectInline)
	dst.DetectFileLevel = ResolveBool(dst.DetectFileLevel, c.DetectFileLevel)
	dst.IncludeAllowed = ResolveBool(dst.IncludeAllowed, c.IncludeAllowed)
	dst.Paths = ResolveStrings(dst.Paths, c.Paths)
	dst.Excludes = ResolveStrings(dst.Excludes, c.Excludes)
	dst.PathRegex = ResolveStrings(dst.PathRegex, c.PathRegex)
	dst.ExcludeTypical = ResolveBool(dst.ExcludeTypical, c.ExcludeTypical)
	dst.WithComment = ResolveBool(dst.WithComment, c.WithComment)
	dst.WithCode = ResolveBool(dst.WithCode, c.WithCode)
	dst.WithURL = ResolveBool(dst.WithURL, c.WithURL)
	dst.Langs = ResolveStrings(dst.Langs, c.Langs)
	dst.TruncAll = ResolveInt(dst.TruncAll, c.TruncAll)
	dst.TruncComment = ResolveInt(dst.TruncComment, c.TruncComment)
	dst.TruncCode = ResolveInt(dst.TruncCode, c.TruncCode)
	dst.Jobs = ResolveInt(dst.Jobs, c.Jobs)
	dst.Repo = ResolveAndTrim(dst.Repo, c.Repo)
	dst.Output = ResolveAndTrim(dst.Output, c.Output)
	dst.Color = ResolveAndTrim(dst.Color, c.Color)
	dst.MaxFileBytes = ResolveInt(dst.MaxFileBytes, c.MaxFileBytes)
	dst.NoPrefilter = ResolveBool(dst.NoPrefilter, c.NoPrefilter)
}

func (c UIConfig) overlay(dst *UISettings) {
	dst.Fields = ResolveAndTrim(dst.Fields, c.Fields)
	dst.Sort = ResolveAndTrim(dst.Sort, c.Sort)
}

// MergeEngine はファイル・環境変数・フラグの各レイヤを順に重ねます。
// 後のレイヤほど優先です。
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		layer.overlay(&out)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		layer.overlay(&out)
	}
	return out
}
