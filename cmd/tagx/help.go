package main

import "fmt"

const helpEN = `tagx — Find tagged code and the extent it governs

Usage:
  tagx [flags]
  tagx serve [flags]

Scan flags:
  -t, --tag STRING          marker tag to search for (default "@ai-gen")
      --allowed LIST        state words treated as allowed (default "ok")
      --rejected LIST       state words treated as rejected (default "rejected,reject")
      --no-inline           disable inline tag detection
      --no-file-level       disable file level tag detection
      --include-allowed     report allowed markers too
      --with-comment        show the comment that carries the tag
      --with-code           show the governed code block (--with-snippet)
  -u, --with-url            add repository blob links
      --full                shortcut for --with-comment --with-code
      --truncate N          truncate comment/code to N runes (0=unlimited)
      --truncate-comment N  truncate comment only
      --truncate-code N     truncate code only
      --path SPEC           limit scan to pathspecs (repeatable)
      --exclude SPEC        exclude pathspecs (repeatable)
      --path-regex RE       keep only paths matching RE (repeatable)
      --langs LIST          limit scan to these languages
      --exclude-typical     exclude vendor/build/dependency directories
      --max-file-bytes N    skip files larger than N bytes
      --no-prefilter        scan every tracked file instead of git grep candidates
  -j, --jobs N              max parallel workers (1..64)
      --repo DIR            repo root (default: current dir)
  -o, --output FORMAT       table|tsv|json|ndjson|csv|md (default "table")
      --color MODE          auto|always|never
      --fields LIST         output columns (state,lang,family,location,line,
                            lines,span,file_level,comment,code,url)
      --sort KEYS           sort keys, e.g. -lines,file
      --config PATH         explicit config file
      --progress            force progress even when piped
      --no-progress         disable progress/ETA
  -h, --help[=LANG]         show this help (en|ja)

Serve flags:
  -p PORT       listen port (default 8080)
  --repo DIR    repo root
  --open        open the UI in a browser
  --watch       invalidate cached results when files change

Config files: .tagx.yaml/.yml/.toml/.json searched upward from the repo,
then $XDG_CONFIG_HOME/tagx/config.*, then the home directory.
Environment: TAGX_TAG, TAGX_ALLOWED_STATES, TAGX_LANGS, ... (see README).`

const helpJA = `tagx — リポジトリ内のタグ付きコードとその適用範囲を検索します

使い方:
  tagx [フラグ]
  tagx serve [フラグ]

主なフラグ:
  -t, --tag STRING          検索するマーカータグ (既定 "@ai-gen")
      --allowed LIST        許可として扱う状態語 (既定 "ok")
      --rejected LIST       拒否として扱う状態語 (既定 "rejected,reject")
      --no-inline           インラインタグ検出を無効化
      --no-file-level       ファイルレベルタグ検出を無効化
      --include-allowed     許可済みマーカーも出力する
      --with-comment        タグを含むコメントを表示
      --with-code           適用範囲のコードを表示 (--with-snippet)
  -u, --with-url            リポジトリの blob リンクを付与
      --full                --with-comment --with-code の省略形
      --truncate N          コメント/コードを N 文字で切り詰め (0=無制限)
      --path SPEC           走査対象の pathspec (複数指定可)
      --exclude SPEC        除外する pathspec (複数指定可)
      --path-regex RE       正規表現に一致するパスのみ残す
      --langs LIST          対象言語を限定
      --exclude-typical     vendor などの定型ディレクトリを除外
      --no-prefilter        git grep による事前絞り込みを行わない
  -j, --jobs N              並列ワーカー数 (1..64)
      --repo DIR            リポジトリルート (既定: カレント)
  -o, --output FORMAT       table|tsv|json|ndjson|csv|md (既定 "table")
      --fields LIST         出力カラムの選択
      --sort KEYS           並び替えキー (例: -lines,file)
  -h, --help[=LANG]         このヘルプを表示 (en|ja)

設定ファイルは .tagx.yaml/.yml/.toml/.json をリポジトリから上方向に探索し、
次に $XDG_CONFIG_HOME/tagx/config.*、最後にホームディレクトリを参照します。`

func printHelp(lang string) {
	if lang == "ja" {
		fmt.Println(helpJA)
		return
	}
	fmt.Println(helpEN)
}
