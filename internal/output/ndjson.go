package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/tagx/internal/engine"
)

// WriteNDJSON は 1 件 1 行の JSON を書き出します。HTML エスケープは
// 行わないため、コメントや抜粋が元のまま残ります。
func WriteNDJSON(w io.Writer, items []engine.Item) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
