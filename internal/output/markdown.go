package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/tagx/internal/engine"
)

// WriteMarkdownTable renders items as a GitHub Flavored Markdown table.
// Cell text is escaped so embedded pipes and newlines cannot break the row
// structure.
func WriteMarkdownTable(w io.Writer, items []engine.Item, sel FieldSelection) error {
	headers := Headers(sel.Fields)
	if err := writeMarkdownRow(w, headers); err != nil {
		return err
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	if err := writeMarkdownRow(w, sep); err != nil {
		return err
	}
	for _, it := range items {
		cells := RowValues(it, sel.Fields)
		for i, cell := range cells {
			cells[i] = escapeMarkdownCell(cell)
		}
		if err := writeMarkdownRow(w, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string) error {
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	return err
}

var markdownCellEscaper = strings.NewReplacer(
	"\r\n", "<br>",
	"\r", "",
	"\n", "<br>",
	"|", "\\|",
)

func escapeMarkdownCell(s string) string {
	return markdownCellEscaper.Replace(s)
}
