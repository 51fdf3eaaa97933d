package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/tagx/internal/engine"
	"github.com/phyten/tagx/internal/model"
)

type Field struct {
	Key    string
	Header string
}

// FieldSelection は出力列の選択結果を表す。Need* はエンジン側で
// 対応するデータを収集する必要があるかどうかを示す。
type FieldSelection struct {
	Fields      []Field
	ShowComment bool
	ShowCode    bool
	ShowURL     bool
	NeedComment bool
	NeedCode    bool
	NeedURL     bool
}

type fieldMeta struct {
	header    string
	isComment bool
	isCode    bool
	isURL     bool
}

var fieldRegistry = map[string]fieldMeta{
	"state":      {header: "STATE"},
	"lang":       {header: "LANG"},
	"family":     {header: "FAMILY"},
	"location":   {header: "LOCATION"},
	"line":       {header: "LINE"},
	"lines":      {header: "LINES"},
	"span":       {header: "SPAN"},
	"file_level": {header: "FILE_LEVEL"},
	"comment":    {header: "COMMENT", isComment: true},
	"code":       {header: "CODE", isCode: true},
	"snippet":    {header: "CODE", isCode: true},
	"url":        {header: "URL", isURL: true},
}

// ResolveFields parses a comma separated field list. An empty list selects
// the default columns, extended by whichever optional columns are enabled.
func ResolveFields(raw string, withComment, withCode, withURL bool) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	sel := FieldSelection{}
	if raw == "" {
		keys := []string{"state", "lang", "location", "lines"}
		if withURL {
			keys = append(keys, "url")
		}
		if withComment {
			keys = append(keys, "comment")
		}
		if withCode {
			keys = append(keys, "code")
		}
		sel.Fields = make([]Field, 0, len(keys))
		for _, key := range keys {
			meta := fieldRegistry[key]
			sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		}
		sel.ShowComment = withComment
		sel.ShowCode = withCode
		sel.ShowURL = withURL
		sel.NeedComment = withComment
		sel.NeedCode = withCode
		sel.NeedURL = withURL
		return sel, nil
	}

	parts := strings.Split(raw, ",")
	sel.Fields = make([]Field, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		meta, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		if meta.isComment {
			sel.ShowComment = true
		}
		if meta.isCode {
			sel.ShowCode = true
		}
		if meta.isURL {
			sel.ShowURL = true
		}
	}
	sel.NeedComment = withComment || sel.ShowComment
	sel.NeedCode = withCode || sel.ShowCode
	sel.NeedURL = withURL || sel.ShowURL
	return sel, nil
}

// Headers returns the header row for the selected fields.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

// RowValues formats one item into a row matching the selected fields.
func RowValues(it engine.Item, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = FormatFieldValue(it, f.Key)
	}
	return out
}

func FormatFieldValue(it engine.Item, key string) string {
	switch key {
	case "state":
		return it.State
	case "lang":
		return it.Lang
	case "family":
		return it.Family
	case "location":
		return fmt.Sprintf("%s:%d", it.File, it.Line)
	case "line":
		return strconv.Itoa(it.Line)
	case "lines":
		return formatLines(it.Code)
	case "span":
		return formatSpan(it.Code)
	case "file_level":
		if it.FileLevel {
			return "yes"
		}
		return ""
	case "comment":
		return it.Comment
	case "code", "snippet":
		return it.Snippet
	case "url":
		return it.URL
	default:
		return ""
	}
}

func formatLines(sp model.Span) string {
	if sp.EndLine > sp.StartLine {
		return fmt.Sprintf("%d-%d", sp.StartLine, sp.EndLine)
	}
	return strconv.Itoa(sp.StartLine)
}

func formatSpan(sp model.Span) string {
	return fmt.Sprintf("%d:%d-%d:%d", sp.StartLine, sp.StartCol, sp.EndLine, sp.EndCol)
}
