// Package link はホスティングサービス上のファイル・コミットへの URL を
// 組み立てます。行アンカーは GitHub 互換の #L 形式です。
package link

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/phyten/tagx/internal/gitremote"
)

// Blob returns a blob URL pinned to sha with a line-range anchor. Markdown
// files get ?plain=1 so the anchor lands on the source view instead of the
// rendered page. Missing sha, file or line yields an empty string.
func Blob(info gitremote.Info, sha, file string, startLine, endLine int) string {
	if sha == "" || file == "" || startLine <= 0 {
		return ""
	}
	anchor := fmt.Sprintf("#L%d", startLine)
	if endLine > startLine {
		anchor = fmt.Sprintf("#L%d-L%d", startLine, endLine)
	}
	query := ""
	if isMarkdown(file) {
		query = "?plain=1"
	}
	return fmt.Sprintf("%s/blob/%s/%s%s%s", repoBase(info), sha, gitremote.BlobPath(file), query, anchor)
}

// Commit はコミット詳細ページの URL を返します。
func Commit(info gitremote.Info, sha string) string {
	if sha == "" {
		return ""
	}
	return fmt.Sprintf("%s/commit/%s", repoBase(info), sha)
}

func repoBase(info gitremote.Info) string {
	return fmt.Sprintf("%s://%s/%s/%s",
		info.NormalizedScheme(),
		strings.TrimSuffix(info.Host, "/"),
		url.PathEscape(info.Owner),
		url.PathEscape(info.Repo))
}

func isMarkdown(file string) bool {
	lower := strings.ToLower(file)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
