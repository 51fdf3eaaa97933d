package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/phyten/tagx/internal/detect"
	"github.com/phyten/tagx/internal/gitremote"
	"github.com/phyten/tagx/internal/link"
	"github.com/phyten/tagx/internal/model"
	"github.com/phyten/tagx/internal/progress"
	"github.com/phyten/tagx/internal/scan"
)

type fileResult struct {
	items []Item
	errs  []ItemError
}

type remoteInfo struct {
	info gitremote.Info
	sha  string
}

// Run は指定されたオプションに従ってリポジトリを走査し、検出結果の一覧と
// メタデータを返します。
//
// 途中で発生したファイル単位のエラーは Result.Errors に集約され、走査自体は
// 継続します。コンテキストの取消だけが走査全体を中断させます。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if strings.TrimSpace(opts.Tag) == "" {
		return nil, fmt.Errorf("tag must not be empty")
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Jobs > 64 {
		opts.Jobs = 64
	}
	if opts.PathRegexCompiled == nil && len(opts.PathRegex) > 0 {
		rx, err := CompilePathRegex(opts.PathRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --path-regex: %w", err)
		}
		opts.PathRegexCompiled = rx
	}

	observer := opts.ProgressObserver
	if observer == nil {
		if opts.Progress {
			observer = progress.NewAutoObserver(os.Stderr)
		} else {
			observer = progress.NoopObserver{}
		}
	}
	est := progress.NewEstimator(0, progress.DefaultConfig())
	if snap, ok := est.Stage(progress.StageList); ok {
		observer.Publish(snap)
	}

	var files []string
	var err error
	if opts.NoPrefilter {
		files, err = gitListFiles(opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	} else {
		files, err = gitGrepFiles(opts.RepoDir, opts.Tag, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	}
	if err != nil {
		return nil, err
	}
	files = filterPathsByRegex(files, opts.PathRegexCompiled)

	est.SetTotal(len(files))
	if snap, ok := est.Stage(progress.StageScan); ok {
		observer.Publish(snap)
	}

	var errs []ItemError
	var remote *remoteInfo
	if opts.WithURL {
		info, derr := gitremote.Detect(ctx, nil, opts.RepoDir)
		if derr != nil {
			errs = append(errs, newItemError("", 0, "remote", derr))
		} else if sha, serr := gitHeadSHA(opts.RepoDir); serr != nil {
			errs = append(errs, newItemError("", 0, "remote", serr))
		} else {
			remote = &remoteInfo{info: info, sha: sha}
		}
	}

	jobs := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	wg.Add(opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				items, ferrs := processFile(ctx, opts, path, remote)
				results <- fileResult{items: items, errs: ferrs}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var items []Item
	for res := range results {
		items = append(items, res.items...)
		errs = append(errs, res.errs...)
		if snap, ok := est.Advance(1); ok {
			observer.Publish(snap)
		}
	}
	observer.Done(est.Complete())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].File == items[j].File {
			return items[i].Tag.RuneStart < items[j].Tag.RuneStart
		}
		return items[i].File < items[j].File
	})
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			if errs[i].Line == errs[j].Line {
				return errs[i].Stage < errs[j].Stage
			}
			return errs[i].Line < errs[j].Line
		}
		return errs[i].File < errs[j].File
	})

	return &Result{
		Items:      items,
		HasComment: opts.WithComment,
		HasCode:    opts.WithCode,
		HasURL:     opts.WithURL && remote != nil,
		Total:      len(items),
		ElapsedMS:  time.Since(start).Milliseconds(),
		Errors:     errs,
		ErrorCount: len(errs),
	}, nil
}

func processFile(ctx context.Context, opts Options, relPath string, remote *remoteInfo) ([]Item, []ItemError) {
	full := filepath.Join(opts.RepoDir, relPath)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, []ItemError{newItemError(relPath, 0, "read", err)}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, nil
	}
	if !utf8.Valid(data) {
		return nil, nil
	}
	if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
		return nil, nil
	}
	info := detect.FromPathAndContent(relPath, data)
	if len(opts.Langs) > 0 && !detect.MatchesLang(info, opts.Langs) {
		return nil, nil
	}
	lang := detect.NormalizeLangName(info.Name)
	fam, ok := detect.FamilyFor(lang)
	if !ok {
		return nil, nil
	}

	text := string(data)
	matches, err := scan.Scan(ctx, text, scan.Config{
		Tag:             opts.Tag,
		AllowedStates:   opts.AllowedStates,
		RejectedStates:  opts.RejectedStates,
		DetectInline:    opts.DetectInline,
		DetectFileLevel: opts.DetectFileLevel,
		IncludeAllowed:  opts.IncludeAllowed,
		Family:          fam,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil
		}
		return nil, []ItemError{newItemError(relPath, 0, "scan", err)}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	src := []rune(text)
	ix := model.NewLineIndex(src)
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		tagSpan := ix.Span(m.TagStart, m.TagEnd)
		codeSpan := ix.Span(m.CodeStart, m.CodeEnd)
		it := Item{
			File:      relPath,
			Lang:      lang,
			Family:    fam.String(),
			State:     string(m.State),
			FileLevel: m.FileLevel,
			Line:      tagSpan.StartLine,
			Tag:       tagSpan,
			Code:      codeSpan,
		}
		if opts.WithComment {
			it.Comment = truncateRunes(string(src[m.TagStart:m.TagEnd]), effectiveTrunc(opts.TruncComment, opts.TruncAll))
		}
		if opts.WithCode {
			it.Snippet = truncateRunes(string(src[m.CodeStart:m.CodeEnd]), effectiveTrunc(opts.TruncCode, opts.TruncAll))
		}
		if remote != nil {
			it.URL = link.Blob(remote.info, remote.sha, relPath, codeSpan.StartLine, codeSpan.EndLine)
		}
		items = append(items, it)
	}
	return items, nil
}

func newItemError(file string, line int, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Line: line, Stage: stage, Message: msg}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	if n <= 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}

func effectiveTrunc(specific, all int) int {
	if specific > 0 {
		return specific
	}
	return all
}
