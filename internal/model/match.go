package model

import "sort"

// Span は 1 件の検出範囲を行・桁・ルーンオフセットで表します。
// 行・桁は 1 始まり、オフセットは 0 始まり（終端は排他的）です。
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	RuneStart int `json:"rune_start"`
	RuneEnd   int `json:"rune_end"`
}

// Lines returns the number of lines the span covers.
func (s Span) Lines() int {
	if s.EndLine < s.StartLine {
		return 0
	}
	return s.EndLine - s.StartLine + 1
}

// LineIndex は rune オフセットから行・桁への変換表です。
type LineIndex struct {
	offsets []int
	size    int
}

func NewLineIndex(src []rune) *LineIndex {
	offsets := make([]int, 0, 64)
	offsets = append(offsets, 0)
	for i, r := range src {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &LineIndex{offsets: offsets, size: len(src)}
}

// LineCol converts a rune offset into a 1-based line and column.
func (ix *LineIndex) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > ix.size {
		offset = ix.size
	}
	idx := sort.Search(len(ix.offsets), func(i int) bool { return ix.offsets[i] > offset })
	lineStart := ix.offsets[idx-1]
	return idx, offset - lineStart + 1
}

// Span builds a Span for the half-open rune range [start, end). The end
// position points at the last rune of the range so single-line spans report
// the same start and end line.
func (ix *LineIndex) Span(start, end int) Span {
	sl, sc := ix.LineCol(start)
	last := end
	if last > start {
		last--
	}
	el, ec := ix.LineCol(last)
	return Span{
		StartLine: sl,
		StartCol:  sc,
		EndLine:   el,
		EndCol:    ec,
		RuneStart: start,
		RuneEnd:   end,
	}
}
