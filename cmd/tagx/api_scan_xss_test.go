package main

import (
	"encoding/json"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"github.com/phyten/tagx/internal/engine"
)

func TestAPIScanHandlerはJSONをエスケープせず返す(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git が見つからないためスキップします")
	}
	repoDir := t.TempDir()
	runGit(t, repoDir, "init")
	runGit(t, repoDir, "config", "user.name", "テストユーザー")
	runGit(t, repoDir, "config", "user.email", "tester@example.com")

	src := "// @ai-gen <script>alert('xss')</script> & <>\nconst payload = \"<b>bold</b> & <>\";\n"
	writeFixtureFile(t, repoDir, "main.ts", src)
	runGit(t, repoDir, "add", ".")
	runGit(t, repoDir, "commit", "-m", "feat: tagged payload")

	handler := apiScanHandler(repoDir)
	req := httptest.NewRequest("GET", "/api/scan?with_comment=1&with_code=1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("予期しないステータス: %d\n%s", rr.Code, rr.Body.String())
	}
	raw := rr.Body.String()
	if strings.Contains(raw, "\\u003c") {
		t.Fatalf("JSONがHTMLエスケープされています: %q", raw)
	}

	var res engine.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("JSONのデコードに失敗しました: %v", err)
	}

	if len(res.Items) == 0 {
		t.Fatalf("タグ付き項目が見つかりません: %+v", res)
	}

	item := res.Items[0]
	if !strings.Contains(item.Comment, "<script>alert('xss')</script> & <>") {
		t.Fatalf("コメントがエスケープされて返却されました: %q", item.Comment)
	}
	if !strings.Contains(item.Snippet, "<b>bold</b> & <>") {
		t.Fatalf("コードがエスケープされて返却されました: %q", item.Snippet)
	}
}
