//go:build e2e

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/phyten/tagx/internal/web"
)

func TestRenderはHTMLエスケープでXSSを防止する(t *testing.T) {
	t.Parallel()

	if !hasBrowser() {
		t.Skip("Chrome/Chromiumが見つからないためスキップします")
	}

	mux := http.NewServeMux()
	web.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// chromedp navigation can take some time in CI environments.
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	fixture := `({
                items: [{
                        state: 'warning',
                        lang: 'ts',
                        file: 'dir/<file>&.ts',
                        line: 12,
                        file_level: false,
                        code: {start_line: 12, end_line: 18},
                        comment: 'hello <img src=x onerror=alert(1)> & <>',
                        snippet: 'const x = "<b>bold</b> & <>";',
                }],
                errors: [{
                        file: 'err<file>&',
                        line: 0,
                        stage: 'git<stage>',
                        message: 'failed <script>alert(1)</script>',
                }],
                error_count: 1
        })`

	var state, lang, location, lineRange, comment, snippet string
	var commentCellHTML, snippetCellHTML string
	var nodeCount int

	err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitVisible(`#out`, chromedp.ByID),
		chromedp.Evaluate(`document.getElementById('out').innerHTML = '';`, nil),
		chromedp.Evaluate(fmt.Sprintf(`const data = %s; document.getElementById('out').innerHTML = render(data);`, fixture), nil),
		chromedp.Text(`#out tbody tr td:nth-child(1)`, &state, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(2)`, &lang, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(3) code`, &location, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(4)`, &lineRange, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(5)`, &comment, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(5)`, &commentCellHTML, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(6) pre`, &snippet, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(6)`, &snippetCellHTML, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelectorAll('#out img, #out script').length`, &nodeCount),
	)
	if err != nil {
		t.Fatalf("chromedpの操作に失敗しました: %v", err)
	}

	if state != "warning" {
		t.Fatalf("状態が期待値と異なります: %q", state)
	}
	if lang != "ts" {
		t.Fatalf("言語が期待値と異なります: %q", lang)
	}
	if location != "dir/<file>&.ts:12" {
		t.Fatalf("ロケーションが期待値と異なります: %q", location)
	}
	if lineRange != "12-18" {
		t.Fatalf("行範囲が期待値と異なります: %q", lineRange)
	}
	if !strings.Contains(comment, "<img src=x onerror=alert(1)>") || !strings.Contains(comment, "&") {
		t.Fatalf("コメントのテキストが期待値と異なります: %q", comment)
	}
	if !strings.Contains(commentCellHTML, "&lt;img") || !strings.Contains(commentCellHTML, "&amp;") {
		t.Fatalf("コメントセルがエスケープされていません: %q", commentCellHTML)
	}
	if !strings.Contains(snippet, `<b>bold</b> & <>`) {
		t.Fatalf("コードのテキストが期待値と異なります: %q", snippet)
	}
	if !strings.Contains(snippetCellHTML, "&lt;b&gt;") {
		t.Fatalf("コードセルがエスケープされていません: %q", snippetCellHTML)
	}
	if nodeCount != 0 {
		t.Fatalf("危険なノードが挿入されています: %d", nodeCount)
	}
}

func hasBrowser() bool {
	candidates := []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
