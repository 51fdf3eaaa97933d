package main

import (
	"os/exec"
	"strings"
	"testing"
)

func TestParseScanArgsShortAliases(t *testing.T) {
	cfg, err := parseScanArgs([]string{"-t", "@generated", "-o", "tsv", "-j", "4", "--with-snippet"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}

	if cfg.flagEngine.Tag == nil || *cfg.flagEngine.Tag != "@generated" {
		t.Fatalf("Tag mismatch: got %+v", cfg.flagEngine.Tag)
	}
	if cfg.flagEngine.Output == nil || *cfg.flagEngine.Output != "tsv" {
		t.Fatalf("Output mismatch: got %+v", cfg.flagEngine.Output)
	}
	if cfg.flagEngine.Jobs == nil || *cfg.flagEngine.Jobs != 4 {
		t.Fatalf("Jobs mismatch: got %+v", cfg.flagEngine.Jobs)
	}
	if cfg.flagEngine.WithCode == nil || !*cfg.flagEngine.WithCode {
		t.Fatalf("WithCode should be true when --with-snippet is passed")
	}
}

func TestParseScanArgsLeavesUnsetFlagsNil(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--tag", "@ai-gen"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.flagEngine.Tag == nil {
		t.Fatal("Tag should be set")
	}
	if cfg.flagEngine.Jobs != nil || cfg.flagEngine.Output != nil || cfg.flagEngine.WithComment != nil {
		t.Fatalf("unset flags must stay nil so config/env layers survive: %+v", cfg.flagEngine)
	}
}

func TestParseScanArgsInverseFlags(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--no-inline", "--no-file-level"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.flagEngine.DetectInline == nil || *cfg.flagEngine.DetectInline {
		t.Fatalf("--no-inline should disable inline detection: %+v", cfg.flagEngine.DetectInline)
	}
	if cfg.flagEngine.DetectFileLevel == nil || *cfg.flagEngine.DetectFileLevel {
		t.Fatalf("--no-file-level should disable file level detection: %+v", cfg.flagEngine.DetectFileLevel)
	}
}

func TestParseScanArgsHelpLanguageFallback(t *testing.T) {
	cfg, err := parseScanArgs([]string{"-h"}, "ja")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if !cfg.showHelp {
		t.Fatal("showHelp should be true")
	}
	if cfg.helpLang != "ja" {
		t.Fatalf("expected helpLang ja, got %q", cfg.helpLang)
	}
}

func TestParseScanArgsHelpOverridesLanguage(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--lang", "en", "--help=ja"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if !cfg.showHelp {
		t.Fatal("showHelp should be true")
	}
	if cfg.helpLang != "ja" {
		t.Fatalf("expected helpLang ja, got %q", cfg.helpLang)
	}
}

func TestParseScanArgsHelpJaFlag(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--help-ja"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if !cfg.showHelp {
		t.Fatal("showHelp should be true")
	}
	if cfg.helpLang != "ja" {
		t.Fatalf("expected helpLang ja, got %q", cfg.helpLang)
	}
}

func TestParseScanArgsFullSetsDefaultTrunc(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--full"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.flagEngine.TruncAll == nil || *cfg.flagEngine.TruncAll != 120 {
		t.Fatalf("expected default truncation 120, got %+v", cfg.flagEngine.TruncAll)
	}
	if cfg.flagEngine.WithComment == nil || !*cfg.flagEngine.WithComment ||
		cfg.flagEngine.WithCode == nil || !*cfg.flagEngine.WithCode {
		t.Fatalf("--full should enable both comment and code columns")
	}
}

func TestParseScanArgsFullKeepsExplicitTrunc(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--full", "--truncate", "40"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.flagEngine.TruncAll == nil || *cfg.flagEngine.TruncAll != 40 {
		t.Fatalf("explicit --truncate should win over --full default: %+v", cfg.flagEngine.TruncAll)
	}
}

func TestParseScanArgsRepeatableFilters(t *testing.T) {
	cfg, err := parseScanArgs([]string{"--path", "src", "--path", "lib,tools", "--exclude", "vendor/**"}, "en")
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.flagEngine.Paths == nil {
		t.Fatal("paths should be set")
	}
	got := strings.Join(*cfg.flagEngine.Paths, "|")
	if got != "src|lib|tools" {
		t.Fatalf("paths mismatch: %q", got)
	}
	if cfg.flagEngine.Excludes == nil || len(*cfg.flagEngine.Excludes) != 1 || (*cfg.flagEngine.Excludes)[0] != "vendor/**" {
		t.Fatalf("excludes mismatch: %+v", cfg.flagEngine.Excludes)
	}
}

func TestParseSortSpecRejectsUnknownKey(t *testing.T) {
	if _, err := ParseSortSpec("-unknown"); err == nil {
		t.Fatal("未知キーに対するエラーを期待しました")
	}
}

func TestHelpOutputEnglish(t *testing.T) {
	output := runTagx(t, "-h")
	if !strings.Contains(output, "tagx — Find tagged code") {
		t.Fatalf("help output missing heading: %s", output)
	}
}

func TestHelpOutputJapanese(t *testing.T) {
	output := runTagx(t, "--help=ja")
	if !strings.Contains(output, "tagx — リポジトリ内のタグ付きコード") {
		t.Fatalf("Japanese help output missing heading: %s", output)
	}
}

func runTagx(t *testing.T, args ...string) string {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "."}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\noutput: %s", err, out)
	}
	return string(out)
}
