// Package textutil は端末表示幅を意識した文字列操作を提供します。
// 幅の計算は ANSI エスケープを取り除いた上で書記素クラスタ単位で行います。
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI sequences plus OSC sequences terminated by BEL or ST.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes escape sequences so that only printable text remains.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiPattern.ReplaceAllString(s, "")
}

// VisibleWidth は端末上の表示幅を返します。結合文字や絵文字の連結も
// 1 クラスタとして数えます。
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	total := 0
	for _, c := range clusters(StripANSI(s)) {
		total += c.width
	}
	return total
}

type cluster struct {
	text  string
	width int
}

func clusters(s string) []cluster {
	var out []cluster
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		seg := g.Str()
		out = append(out, cluster{text: seg, width: runewidth.StringWidth(seg)})
	}
	return out
}

// TruncateByWidth shortens s so its visible width fits in w, never splitting
// a grapheme cluster. A non-empty ellipsis is appended when something was cut
// and there is room for it.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	cs := clusters(StripANSI(s))
	ellW := runewidth.StringWidth(ellipsis)

	// keep[i] = prefix width after taking i clusters
	kept := 0
	used := 0
	for kept < len(cs) && used+cs[kept].width <= w {
		used += cs[kept].width
		kept++
	}
	if ellipsis != "" && ellW <= w {
		for kept > 0 && used+ellW > w {
			kept--
			used -= cs[kept].width
		}
		if used+ellW <= w {
			return joinClusters(cs[:kept]) + ellipsis
		}
	}
	return joinClusters(cs[:kept])
}

func joinClusters(cs []cluster) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.text)
	}
	return b.String()
}

// PadRight は表示幅が w になるまで右側に空白を足します。
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft は表示幅が w になるまで左側に空白を足します。
func PadLeft(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
