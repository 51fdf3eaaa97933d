package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/tagx/internal/engine"
)

// WriteCSV は選択された列を RFC 4180 の CSV として書き出します。
// 行末は CRLF で、セル内の改行は encoding/csv の引用規則に従います。
func WriteCSV(w io.Writer, items []engine.Item, sel FieldSelection) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	records := make([][]string, 0, len(items)+1)
	records = append(records, Headers(sel.Fields))
	for _, it := range items {
		records = append(records, RowValues(it, sel.Fields))
	}
	return cw.WriteAll(records)
}
