package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/phyten/tagx/internal/engine"
	"github.com/phyten/tagx/internal/model"
	"github.com/phyten/tagx/internal/output"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()
	_ = w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("出力の読み込みに失敗しました: %v", err)
	}
	return string(out)
}

func mustFields(t *testing.T, raw string, withComment, withCode, withURL bool) output.FieldSelection {
	t.Helper()
	sel, err := output.ResolveFields(raw, withComment, withCode, withURL)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	return sel
}

func TestPrintTSVはヘッダーを出力する(t *testing.T) {
	res := &engine.Result{
		Items: []engine.Item{{
			File:  "main.go",
			Lang:  "go",
			State: "warning",
			Line:  42,
			Code:  model.Span{StartLine: 42, EndLine: 45},
		}},
	}

	out := captureStdout(t, func() {
		printTSV(res, mustFields(t, "", false, false, false))
	})

	if !strings.Contains(out, "STATE\tLANG") {
		t.Fatalf("TSVヘッダーが出力されていません: %q", out)
	}
	if !strings.Contains(out, "main.go:42") {
		t.Fatalf("ロケーション列が出力されていません: %q", out)
	}
	if !strings.Contains(out, "42-45") {
		t.Fatalf("行範囲列が出力されていません: %q", out)
	}
}

func TestPrintTSVはコメント改行を空白に変換する(t *testing.T) {
	res := &engine.Result{
		HasComment: true,
		Items: []engine.Item{{
			File:    "util.go",
			Lang:    "go",
			State:   "warning",
			Line:    10,
			Code:    model.Span{StartLine: 10, EndLine: 10},
			Comment: "調査中\n要確認",
		}},
	}

	out := captureStdout(t, func() {
		printTSV(res, mustFields(t, "", true, false, false))
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("改行が期待より多いです: %q", out)
	}
	if !strings.Contains(lines[1], "調査中 要確認") {
		t.Fatalf("改行が空白に置換されていません: %q", lines[1])
	}
}

func TestPrintTableは列幅を揃える(t *testing.T) {
	res := &engine.Result{
		Items: []engine.Item{
			{File: "a.go", Lang: "go", State: "warning", Line: 1, Code: model.Span{StartLine: 1, EndLine: 3}},
			{File: "internal/deep/path.py", Lang: "python", State: "rejected", Line: 7, Code: model.Span{StartLine: 7, EndLine: 7}},
		},
	}

	out := captureStdout(t, func() {
		printTable(res, mustFields(t, "", false, false, false), false)
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("行数が期待と異なります: %q", out)
	}
	headerIdx := strings.Index(lines[0], "LOCATION")
	rowIdx := strings.Index(lines[1], "a.go:1")
	if headerIdx < 0 || rowIdx < 0 {
		t.Fatalf("列が見つかりません: %q", out)
	}
	if headerIdx != rowIdx {
		t.Fatalf("LOCATION列の開始位置が揃っていません: header=%d row=%d\n%s", headerIdx, rowIdx, out)
	}
}

func TestReportErrorsは標準エラーに概要を出力する(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	oldStderr := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = oldStderr })

	res := &engine.Result{
		ErrorCount: 3,
		Errors: []engine.ItemError{
			{File: "a.go", Line: 10, Stage: "read", Message: "permission denied"},
			{File: "b.go", Line: 20, Stage: "remote", Message: "no remote"},
			{File: "", Line: 0, Stage: "", Message: "mystery"},
		},
	}

	reportErrors(res)
	_ = w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("出力の読み込みに失敗しました: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "3 error(s)") {
		t.Fatalf("エラー件数が出力されていません: %q", text)
	}
	if !strings.Contains(text, "a.go:10 [read] permission denied") {
		t.Fatalf("詳細行が出力されていません: %q", text)
	}
	if !strings.Contains(text, "(unknown location) [scan] mystery") {
		t.Fatalf("不明位置の行が期待通りではありません: %q", text)
	}
}
