package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/tagx/internal/engine/opts"
)

// envReader は TAGX_* 変数の読み取りと型変換をまとめ、
// 変換エラーを溜め込みます。
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(r.getenv(key))
	return v, v != ""
}

func (r *envReader) str(dst **string, key string) {
	if v, ok := r.lookup(key); ok {
		*dst = &v
	}
}

func (r *envReader) list(dst **[]string, key string) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	items := engineopts.SplitMulti([]string{v})
	if items == nil {
		// 空リストの明示指定は「既定値を消す」という意味を持つ。
		items = []string{}
	}
	*dst = &items
}

func (r *envReader) flag(dst **bool, key string) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	b, err := engineopts.ParseBool(v, key)
	if err != nil {
		r.errs = append(r.errs, err)
		return
	}
	*dst = &b
}

func (r *envReader) num(dst **int, key string, min, max int) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	n, err := engineopts.ParseIntInRange(v, key, min, max)
	if err != nil {
		r.errs = append(r.errs, err)
		return
	}
	*dst = &n
}

// FromEnv builds a config layer from TAGX_* environment variables. Unset or
// blank variables leave the corresponding field nil.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	r := envReader{getenv: getenv}

	var cfg Config
	eng := &cfg.Engine
	r.str(&eng.Tag, "TAGX_TAG")
	r.list(&eng.AllowedStates, "TAGX_ALLOWED_STATES")
	r.list(&eng.RejectedStates, "TAGX_REJECTED_STATES")
	r.flag(&eng.DetectInline, "TAGX_DETECT_INLINE")
	r.flag(&eng.DetectFileLevel, "TAGX_DETECT_FILE_LEVEL")
	r.flag(&eng.IncludeAllowed, "TAGX_INCLUDE_ALLOWED")
	r.list(&eng.Paths, "TAGX_PATH")
	r.list(&eng.Excludes, "TAGX_EXCLUDE")
	r.list(&eng.PathRegex, "TAGX_PATH_REGEX")
	r.list(&eng.Langs, "TAGX_LANGS")
	r.flag(&eng.ExcludeTypical, "TAGX_EXCLUDE_TYPICAL")
	r.str(&eng.Output, "TAGX_OUTPUT")
	r.str(&eng.Color, "TAGX_COLOR")
	r.flag(&eng.WithComment, "TAGX_WITH_COMMENT")
	r.flag(&eng.WithCode, "TAGX_WITH_CODE")
	r.flag(&eng.WithURL, "TAGX_WITH_URL")
	r.num(&eng.TruncAll, "TAGX_TRUNCATE", 0, math.MaxInt)
	r.num(&eng.TruncComment, "TAGX_TRUNCATE_COMMENT", 0, math.MaxInt)
	r.num(&eng.TruncCode, "TAGX_TRUNCATE_CODE", 0, math.MaxInt)
	r.num(&eng.MaxFileBytes, "TAGX_MAX_FILE_BYTES", 0, math.MaxInt)
	// jobs の上限はここでは見ない。NormalizeAndValidate に任せることで
	// CLI / Web / 環境変数が同じエラーメッセージを共有する。
	r.num(&eng.Jobs, "TAGX_JOBS", 0, math.MaxInt)
	r.str(&eng.Repo, "TAGX_REPO")
	r.flag(&eng.NoPrefilter, "TAGX_NO_PREFILTER")

	r.str(&cfg.UI.Fields, "TAGX_FIELDS")
	r.str(&cfg.UI.Sort, "TAGX_SORT")

	return cfg, errors.Join(r.errs...)
}
