// Package web serves the embedded single-page UI for browsing scan results.
package web

import (
	_ "embed"
	"html/template"
	"net/http"
	"sync"
)

const (
	stylesPath = "/assets/styles.css"
	scriptPath = "/assets/ui.js"
)

//go:embed templates/index.html
var indexHTML string

//go:embed assets/styles.css
var stylesCSS string

//go:embed assets/ui.js
var scriptJS string

var indexTmpl = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("index").Parse(indexHTML))
})

// Register は UI のハンドラを mux に登録します。API ハンドラの登録は
// 呼び出し側の責務です。
func Register(mux *http.ServeMux) {
	mux.HandleFunc("/", indexHandler)
	mux.HandleFunc(stylesPath, assetHandler("text/css; charset=utf-8", stylesCSS))
	mux.HandleFunc(scriptPath, assetHandler("application/javascript; charset=utf-8", scriptJS))
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Content-Security-Policy", "default-src 'none'; style-src 'self'; script-src 'self'; img-src 'self'; connect-src 'self'; form-action 'self'; base-uri 'none'")

	data := struct {
		StylesPath string
		ScriptPath string
	}{StylesPath: stylesPath, ScriptPath: scriptPath}
	if err := indexTmpl().Execute(w, data); err != nil {
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
	}
}

func assetHandler(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write([]byte(body))
	}
}
