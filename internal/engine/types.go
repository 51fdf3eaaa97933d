package engine

import (
	"regexp"

	"github.com/phyten/tagx/internal/model"
	"github.com/phyten/tagx/internal/progress"
)

// Item は 1 件の検出結果を表す
type Item struct {
	File      string     `json:"file"`
	Lang      string     `json:"lang,omitempty"`
	Family    string     `json:"family,omitempty"`
	State     string     `json:"state"`
	FileLevel bool       `json:"file_level,omitempty"`
	Line      int        `json:"line"`
	Tag       model.Span `json:"tag"`
	Code      model.Span `json:"code"`
	Comment   string     `json:"comment,omitempty"`
	Snippet   string     `json:"snippet,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	Tag             string
	AllowedStates   []string
	RejectedStates  []string
	DetectInline    bool
	DetectFileLevel bool
	IncludeAllowed  bool

	WithComment bool
	WithCode    bool
	WithURL     bool

	TruncAll     int
	TruncComment int
	TruncCode    int

	Jobs     int
	RepoDir  string
	Progress bool

	Langs             []string
	Paths             []string
	Excludes          []string
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	MaxFileBytes      int
	ExcludeTypical    bool
	NoPrefilter       bool

	ProgressObserver progress.Observer `json:"-"`
}

// Result は出力
type Result struct {
	Items      []Item      `json:"items"`
	HasComment bool        `json:"has_comment"`
	HasCode    bool        `json:"has_code"`
	HasURL     bool        `json:"has_url"`
	Total      int         `json:"total"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Errors     []ItemError `json:"errors,omitempty"`
	ErrorCount int         `json:"error_count"`
}
