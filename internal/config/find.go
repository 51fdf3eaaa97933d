package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	dotfileNames = []string{".tagx.yaml", ".tagx.yml", ".tagx.toml", ".tagx.json"}
	xdgNames     = []string{"config.yaml", "config.yml", "config.toml", "config.json"}
)

// Find は設定ファイルを探し、パスと発見元 (explicit / cwd-up / xdg / home)
// を返します。どこにも無ければ空文字列を返します。
//
// 探索順:
//  1. explicitPath (TAGX_CONFIG / --config)。存在しなければエラー。
//  2. repoDir から親方向に .tagx.* を探す。
//  3. $XDG_CONFIG_HOME/tagx/config.* (未設定なら ~/.config)。
//  4. ホームディレクトリ直下の .tagx.*。
func Find(repoDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := resolveExplicit(explicit)
		if err != nil {
			return "", "", err
		}
		return path, "explicit", nil
	}

	if path := findUpward(repoDir); path != "" {
		return path, "cwd-up", nil
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		homeDir, _ = os.UserHomeDir()
	}

	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if path := firstRegular(filepath.Join(xdgRoot, "tagx"), xdgNames); path != "" {
			return path, "xdg", nil
		}
	}

	if homeDir != "" {
		if path := firstRegular(homeDir, dotfileNames); path != "" {
			return path, "home", nil
		}
	}
	return "", "", nil
}

func resolveExplicit(path string) (string, error) {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = filepath.Join(cwd, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("TAGX_CONFIG %q points to a directory", path)
	}
	return path, nil
}

func findUpward(start string) string {
	start = strings.TrimSpace(start)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if path := firstRegular(dir, dotfileNames); path != "" {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func firstRegular(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
