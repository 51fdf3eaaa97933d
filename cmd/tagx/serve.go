package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/browser"

	"github.com/phyten/tagx/internal/engine"
	engineopts "github.com/phyten/tagx/internal/engine/opts"
	"github.com/phyten/tagx/internal/progress"
	"github.com/phyten/tagx/internal/web"
)

func serveCmd(args []string) {
	fset := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port   = fset.Int("p", 8080, "port")
		repo   = fset.String("repo", ".", "repo root")
		openUI = fset.Bool("open", false, "open the UI in a browser")
		watch  = fset.Bool("watch", false, "invalidate cached results when files change")
	)
	_ = fset.Parse(args)

	cache := newResultCache()

	mux := http.NewServeMux()
	web.Register(mux)
	mux.Handle("/api/scan", apiScanHandlerWithCache(*repo, cache))
	mux.HandleFunc("/api/scan/stream", apiScanStreamHandler(*repo))

	if *watch {
		go watchRepo(context.Background(), *repo, cache)
	}

	addr := fmt.Sprintf(":%d", *port)
	url := fmt.Sprintf("http://localhost%s/", addr)
	if *openUI {
		go func() {
			time.Sleep(200 * time.Millisecond)
			if err := browser.OpenURL(url); err != nil {
				log.Printf("failed to open browser: %v", err)
			}
		}()
	}

	log.Printf("tagx serve listening on %s (repo=%s)", addr, mustAbs(*repo))
	log.Fatal(http.ListenAndServe(addr, mux))
}

// resultCache はクエリ文字列をキーにした走査結果のキャッシュ。
// --watch 有効時はファイル変更のたびに丸ごと破棄される。
type resultCache struct {
	mu      sync.Mutex
	results map[string]*engine.Result
}

func newResultCache() *resultCache {
	return &resultCache{results: make(map[string]*engine.Result)}
}

func (c *resultCache) Get(key string) (*engine.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.results[key]
	return res, ok
}

func (c *resultCache) Put(key string, res *engine.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = res
}

func (c *resultCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]*engine.Result)
}

func apiScanHandler(repoDir string) http.Handler {
	return apiScanHandlerWithCache(repoDir, newResultCache())
}

func apiScanHandlerWithCache(repoDir string, cache *resultCache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts, err := scanOptionsFromQuery(repoDir, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		key := r.URL.Query().Encode()
		if res, ok := cache.Get(key); ok {
			writeJSON(w, res)
			return
		}

		res, err := engine.Run(r.Context(), opts)
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ApplySort(res.Items, SortSpec{})
		cache.Put(key, res)
		writeJSON(w, res)
	})
}

// apiScanStreamHandler は Server-Sent Events で進捗と結果を配信する。
func apiScanStreamHandler(repoDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := scanOptionsFromQuery(repoDir, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		writeEvent := func(event string, payload any) {
			data, err := json.Marshal(payload)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
			flusher.Flush()
		}

		type progressPayload struct {
			Stage string `json:"stage"`
			Done  int    `json:"done"`
			Total int    `json:"total"`
		}

		opts.Progress = false
		opts.ProgressObserver = progress.ObserverFunc(func(s progress.Snapshot) {
			writeEvent("progress", progressPayload{Stage: string(s.Stage), Done: s.Done, Total: s.Total})
		})

		res, err := engine.Run(r.Context(), opts)
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			writeEvent("error", map[string]string{"message": err.Error()})
			return
		}
		ApplySort(res.Items, SortSpec{})
		writeEvent("result", res)
	}
}

func scanOptionsFromQuery(repoDir string, r *http.Request) (engine.Options, error) {
	opts, err := engineopts.ApplyWebQueryToOptions(engineopts.Defaults(repoDir), r.URL.Query())
	if err != nil {
		return opts, err
	}
	opts.RepoDir = repoDir
	opts.Progress = false
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, res *engine.Result) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(res)
}

func watchRepo(ctx context.Context, repoDir string, cache *resultCache) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watch disabled: %v", err)
		return
	}
	defer watcher.Close()

	addDirs := func(root string) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if d.Name() == ".git" || d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			_ = watcher.Add(path)
			return nil
		})
	}
	addDirs(repoDir)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			cache.Invalidate()
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addDirs(event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func mustAbs(p string) string {
	a, _ := filepath.Abs(p)
	return a
}
