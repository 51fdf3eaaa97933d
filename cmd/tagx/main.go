package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phyten/tagx/internal/config"
	"github.com/phyten/tagx/internal/engine"
	engineopts "github.com/phyten/tagx/internal/engine/opts"
	"github.com/phyten/tagx/internal/output"
	"github.com/phyten/tagx/internal/progress"
	"github.com/phyten/tagx/internal/termcolor"
	"github.com/phyten/tagx/internal/textutil"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serveCmd(os.Args[2:])
		return
	}
	scanCmd(os.Args[1:])
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// scanConfig は CLI 引数の解析結果。flagEngine / flagUI には明示的に
// 指定されたフラグだけが入り、設定ファイル・環境変数より優先される。
type scanConfig struct {
	flagEngine config.EngineConfig
	flagUI     config.UIConfig
	configPath string
	showHelp   bool
	helpLang   string
	forceProg  bool
	noProg     bool
}

func parseScanArgs(args []string, uiLang string) (*scanConfig, error) {
	cfg := &scanConfig{helpLang: uiLang}

	rest := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			cfg.showHelp = true
		case strings.HasPrefix(arg, "--help="):
			cfg.showHelp = true
			cfg.helpLang = strings.TrimPrefix(arg, "--help=")
		case arg == "--help-ja":
			cfg.showHelp = true
			cfg.helpLang = "ja"
		default:
			rest = append(rest, arg)
		}
	}

	fs := flag.NewFlagSet("tagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tag          = fs.String("tag", "", "marker tag to search for")
		allowed      = fs.String("allowed", "", "comma separated allowed state words")
		rejected     = fs.String("rejected", "", "comma separated rejected state words")
		noInline     = fs.Bool("no-inline", false, "disable inline tag detection")
		noFileLevel  = fs.Bool("no-file-level", false, "disable file level tag detection")
		includeAllow = fs.Bool("include-allowed", false, "report allowed markers too")
		withComment  = fs.Bool("with-comment", false, "show the comment that carries the tag")
		withCode     = fs.Bool("with-code", false, "show the governed code block")
		withURL      = fs.Bool("with-url", false, "add repository blob links")
		full         = fs.Bool("full", false, "shortcut for --with-comment --with-code (with default truncate)")
		truncAll     = fs.Int("truncate", 0, "truncate comment/code to N runes (0=unlimited)")
		truncComment = fs.Int("truncate-comment", 0, "truncate comment only (0=unlimited)")
		truncCode    = fs.Int("truncate-code", 0, "truncate code only (0=unlimited)")
		jobs         = fs.Int("jobs", 0, "max parallel workers (1..64)")
		repo         = fs.String("repo", "", "repo root (default: current dir)")
		outputFmt    = fs.String("output", "", "table|tsv|json|ndjson|csv|md")
		color        = fs.String("color", "", "auto|always|never")
		fields       = fs.String("fields", "", "comma separated output columns")
		sortSpec     = fs.String("sort", "", "sort keys, e.g. -lines,file")
		langsFlag    = fs.String("langs", "", "limit scan to these languages")
		exclTypical  = fs.Bool("exclude-typical", false, "exclude vendor/build/dependency directories")
		maxBytes     = fs.Int("max-file-bytes", 0, "skip files larger than N bytes (0=unlimited)")
		noPrefilter  = fs.Bool("no-prefilter", false, "scan every tracked file instead of git grep candidates")
		configPath   = fs.String("config", "", "explicit config file path")
		langFlag     = fs.String("lang", "", "help language (en|ja)")
		forceProg    = fs.Bool("progress", false, "force progress even when piped")
		noProg       = fs.Bool("no-progress", false, "disable progress/ETA")
	)
	_ = forceProg
	_ = noProg
	var paths, excludes, pathRegex multiFlag
	fs.Var(&paths, "path", "limit scan to these pathspecs (repeatable)")
	fs.Var(&excludes, "exclude", "exclude pathspecs (repeatable)")
	fs.Var(&pathRegex, "path-regex", "keep only paths matching the regex (repeatable)")

	fs.StringVar(tag, "t", "", "alias of --tag")
	fs.StringVar(outputFmt, "o", "", "alias of --output")
	fs.IntVar(jobs, "j", 0, "alias of --jobs")
	fs.BoolVar(withCode, "with-snippet", false, "alias of --with-code")
	fs.BoolVar(withURL, "u", false, "alias of --with-url")

	if err := fs.Parse(rest); err != nil {
		return nil, err
	}

	if *langFlag != "" && !cfg.showHelp {
		cfg.helpLang = *langFlag
	}

	truncSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tag", "t":
			cfg.flagEngine.Tag = tag
		case "allowed":
			list := engineopts.SplitMulti([]string{*allowed})
			cfg.flagEngine.AllowedStates = &list
		case "rejected":
			list := engineopts.SplitMulti([]string{*rejected})
			cfg.flagEngine.RejectedStates = &list
		case "no-inline":
			v := !*noInline
			cfg.flagEngine.DetectInline = &v
		case "no-file-level":
			v := !*noFileLevel
			cfg.flagEngine.DetectFileLevel = &v
		case "include-allowed":
			cfg.flagEngine.IncludeAllowed = includeAllow
		case "with-comment":
			cfg.flagEngine.WithComment = withComment
		case "with-code", "with-snippet":
			cfg.flagEngine.WithCode = withCode
		case "with-url", "u":
			cfg.flagEngine.WithURL = withURL
		case "truncate":
			cfg.flagEngine.TruncAll = truncAll
			truncSet = true
		case "truncate-comment":
			cfg.flagEngine.TruncComment = truncComment
			truncSet = true
		case "truncate-code":
			cfg.flagEngine.TruncCode = truncCode
			truncSet = true
		case "jobs", "j":
			cfg.flagEngine.Jobs = jobs
		case "repo":
			cfg.flagEngine.Repo = repo
		case "output", "o":
			cfg.flagEngine.Output = outputFmt
		case "color":
			cfg.flagEngine.Color = color
		case "fields":
			cfg.flagUI.Fields = fields
		case "sort":
			cfg.flagUI.Sort = sortSpec
		case "langs":
			list := engineopts.SplitMulti([]string{*langsFlag})
			cfg.flagEngine.Langs = &list
		case "path":
			list := engineopts.SplitMulti(paths)
			cfg.flagEngine.Paths = &list
		case "exclude":
			list := engineopts.SplitMulti(excludes)
			cfg.flagEngine.Excludes = &list
		case "path-regex":
			list := append([]string{}, pathRegex...)
			cfg.flagEngine.PathRegex = &list
		case "exclude-typical":
			cfg.flagEngine.ExcludeTypical = exclTypical
		case "max-file-bytes":
			cfg.flagEngine.MaxFileBytes = maxBytes
		case "no-prefilter":
			cfg.flagEngine.NoPrefilter = noPrefilter
		case "config":
			cfg.configPath = *configPath
		case "progress":
			cfg.forceProg = true
		case "no-progress":
			cfg.noProg = true
		}
	})

	if *full {
		t := true
		cfg.flagEngine.WithComment = &t
		cfg.flagEngine.WithCode = &t
		if !truncSet {
			n := 120
			cfg.flagEngine.TruncAll = &n
		}
	}

	return cfg, nil
}

func scanCmd(args []string) {
	cfg, err := parseScanArgs(args, detectUILang())
	if err != nil {
		log.Fatal(err)
	}
	if cfg.showHelp {
		printHelp(cfg.helpLang)
		return
	}

	repoDir := "."
	if cfg.flagEngine.Repo != nil && strings.TrimSpace(*cfg.flagEngine.Repo) != "" {
		repoDir = *cfg.flagEngine.Repo
	}

	explicit := cfg.configPath
	if explicit == "" {
		explicit = os.Getenv("TAGX_CONFIG")
	}
	path, _, err := config.Find(repoDir, explicit, os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME"))
	if err != nil {
		log.Fatal(err)
	}
	var fileCfg config.Config
	if path != "" {
		fileCfg, err = config.Load(path)
		if err != nil {
			log.Fatal(err)
		}
	}
	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}

	base := config.EngineSettingsFromOptions(engineopts.Defaults(repoDir))
	engSettings := config.MergeEngine(base, fileCfg.Engine, envCfg.Engine, cfg.flagEngine)
	uiSettings := config.MergeUI(config.DefaultUISettings(), fileCfg.UI, envCfg.UI, cfg.flagUI)
	uiSettings, err = config.NormalizeUI(uiSettings)
	if err != nil {
		log.Fatal(err)
	}

	outFmt, err := engineopts.NormalizeOutput(engSettings.Output)
	if err != nil {
		log.Fatal(err)
	}
	colorMode, err := termcolor.ParseMode(engSettings.Color)
	if err != nil {
		log.Fatal(err)
	}

	options := engineopts.Defaults(repoDir)
	engSettings.ApplyToOptions(&options)

	sel, err := output.ResolveFields(uiSettings.Fields, options.WithComment, options.WithCode, options.WithURL)
	if err != nil {
		log.Fatal(err)
	}
	options.WithComment = sel.NeedComment
	options.WithCode = sel.NeedCode
	options.WithURL = sel.NeedURL

	if err := engineopts.NormalizeAndValidate(&options); err != nil {
		log.Fatal(err)
	}
	options.Progress = progress.ShouldShowProgress(cfg.forceProg, cfg.noProg)

	spec, err := ParseSortSpec(uiSettings.Sort)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := engine.Run(ctx, options)
	if err != nil {
		log.Fatal(err)
	}
	ApplySort(res.Items, spec)

	switch outFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatal(err)
		}
	case "ndjson":
		if err := output.WriteNDJSON(os.Stdout, res.Items); err != nil {
			log.Fatal(err)
		}
	case "csv":
		if err := output.WriteCSV(os.Stdout, res.Items, sel); err != nil {
			log.Fatal(err)
		}
	case "md":
		if err := output.WriteMarkdownTable(os.Stdout, res.Items, sel); err != nil {
			log.Fatal(err)
		}
	case "tsv":
		printTSV(res, sel)
	default:
		printTable(res, sel, colorEnabled(colorMode))
	}

	reportErrors(res)
}

func detectUILang() string {
	for _, key := range []string{"TAGX_LANG", "LC_ALL", "LANG"} {
		raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		if strings.HasPrefix(raw, "ja") {
			return "ja"
		}
		if raw != "" {
			return "en"
		}
	}
	return "en"
}

func colorEnabled(mode termcolor.ColorMode) bool {
	if mode == termcolor.ModeAuto {
		mode = termcolor.DetectMode(os.Stdout, termcolor.EnvMap(os.Environ()))
	}
	return mode == termcolor.ModeAlways
}

func printTSV(res *engine.Result, sel output.FieldSelection) {
	w := os.Stdout
	fmt.Fprintln(w, strings.Join(output.Headers(sel.Fields), "\t"))
	for _, it := range res.Items {
		row := output.RowValues(it, sel.Fields)
		for i := range row {
			row[i] = flattenCell(row[i])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

// flattenCell は TSV セル内の改行・タブを空白 1 個に潰す
func flattenCell(s string) string {
	if s == "" {
		return ""
	}
	replacer := strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")
	return replacer.Replace(s)
}

func printTable(res *engine.Result, sel output.FieldSelection, colorOn bool) {
	env := map[string]string{
		"TERM":      os.Getenv("TERM"),
		"COLORTERM": os.Getenv("COLORTERM"),
		"COLORFGBG": os.Getenv("COLORFGBG"),
	}
	profile := termcolor.DetectProfile(env)
	scheme := termcolor.DetectScheme(env)

	headers := output.Headers(sel.Fields)
	rows := make([][]string, 0, len(res.Items))
	maxLines := 0
	for _, it := range res.Items {
		row := output.RowValues(it, sel.Fields)
		for i := range row {
			row[i] = flattenCell(row[i])
		}
		rows = append(rows, row)
		if n := it.Code.Lines(); n > maxLines {
			maxLines = n
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := textutil.VisibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := os.Stdout
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		// PadRight measures visible width, so styled text pads correctly.
		headerCells[i] = textutil.PadRight(termcolor.Apply(termcolor.HeaderStyle(), h, colorOn), widths[i])
	}
	fmt.Fprintln(out, strings.TrimRight(strings.Join(headerCells, "  "), " "))

	for rowIdx, row := range rows {
		it := res.Items[rowIdx]
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle(sel.Fields[i].Key, it, scheme, profile, maxLines)
			cells[i] = textutil.PadRight(termcolor.Apply(style, cell, colorOn), widths[i])
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func cellStyle(key string, it engine.Item, scheme termcolor.Scheme, profile termcolor.Profile, maxLines int) termcolor.Style {
	switch key {
	case "state":
		return termcolor.StateStyle(it.State, scheme, profile)
	case "lines":
		return termcolor.SizeStyle(it.Code.Lines(), profile, float64(maxLines))
	default:
		return termcolor.Style{}
	}
}

func reportErrors(res *engine.Result) {
	if res == nil || res.ErrorCount == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d error(s) occurred while scanning\n", res.ErrorCount)
	for _, e := range res.Errors {
		loc := "(unknown location)"
		if e.File != "" {
			loc = fmt.Sprintf("%s:%d", e.File, e.Line)
		}
		stage := e.Stage
		if stage == "" {
			stage = "scan"
		}
		fmt.Fprintf(os.Stderr, "  %s [%s] %s\n", loc, stage, e.Message)
	}
}
