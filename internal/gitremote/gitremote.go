// Package gitremote は git のリモート URL から blob リンク生成に必要な
// ホスト・オーナー・リポジトリ名を取り出します。
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/tagx/internal/execx"
)

// Info identifies one hosted repository. Scheme is only set for http(s)
// remotes; everything else links via https.
type Info struct {
	Host   string
	Owner  string
	Repo   string
	Scheme string
}

// Detect reads the link remote's URL from git config and parses it. The
// remote defaults to origin and can be overridden with TAGX_LINK_REMOTE.
func Detect(ctx context.Context, runner execx.Runner, repoDir string) (Info, error) {
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	remote := strings.TrimSpace(os.Getenv("TAGX_LINK_REMOTE"))
	if remote == "" {
		remote = "origin"
	}
	key := "remote." + remote + ".url"
	stdout, stderr, err := runner.Run(ctx, repoDir, "git", "config", "--get", key)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return Info{}, fmt.Errorf("git config failed for %s: %w: %s", key, err, msg)
		}
		return Info{}, fmt.Errorf("git config failed for %s: %w", key, err)
	}
	raw := strings.TrimSpace(string(stdout))
	if raw == "" {
		return Info{}, fmt.Errorf("%s is empty", key)
	}
	info, err := Parse(raw)
	if err != nil {
		return Info{}, err
	}
	if s := schemeOverride(); s != "" {
		info.Scheme = s
	}
	return info, nil
}

// Parse は scp 風 (git@host:owner/repo.git)、ssh/git スキーム、http(s) の
// 3 形式のリモート URL を受け付けます。
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Info{}, errors.New("empty remote url")
	case strings.HasPrefix(raw, "git@"):
		host, rest, ok := strings.Cut(strings.TrimPrefix(raw, "git@"), ":")
		if !ok {
			return Info{}, fmt.Errorf("invalid ssh remote: %s", raw)
		}
		return assemble(host, rest, "")
	case hasAnyPrefix(raw, "ssh://", "git://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Info{}, fmt.Errorf("invalid remote url: %w", err)
		}
		rest, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return Info{}, fmt.Errorf("invalid remote path: %w", err)
		}
		return assemble(u.Host, rest, "")
	case hasAnyPrefix(raw, "http://", "https://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Info{}, fmt.Errorf("invalid remote url: %w", err)
		}
		rest, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return Info{}, fmt.Errorf("invalid remote path: %w", err)
		}
		return assemble(u.Host, rest, u.Scheme)
	}
	return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func assemble(host, repoPath, scheme string) (Info, error) {
	owner, repo, err := ownerRepo(repoPath)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Host:   strings.ToLower(strings.TrimSpace(host)),
		Owner:  owner,
		Repo:   repo,
		Scheme: strings.ToLower(strings.TrimSpace(scheme)),
	}, nil
}

// ownerRepo takes the last two path segments so that deep paths on GitHub
// Enterprise style hosts still resolve.
func ownerRepo(p string) (string, string, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(p), ".git")
	cleaned = strings.ReplaceAll(strings.Trim(cleaned, "/\\"), "\\", "/")
	if cleaned == "" {
		return "", "", errors.New("missing owner/repo in remote url")
	}
	seg := strings.Split(cleaned, "/")
	if len(seg) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	owner, repo := seg[len(seg)-2], seg[len(seg)-1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// BlobPath escapes each path segment for use inside a blob URL.
func BlobPath(file string) string {
	parts := strings.Split(filepath.ToSlash(file), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return path.Join(parts...)
}

// NormalizedScheme はリンク生成に使うスキームです。http 以外はすべて
// https に倒し、TAGX_LINK_SCHEME があればそちらを優先します。
func (i Info) NormalizedScheme() string {
	if s := schemeOverride(); s != "" {
		return s
	}
	if strings.ToLower(strings.TrimSpace(i.Scheme)) == "http" {
		return "http"
	}
	return "https"
}

func schemeOverride() string {
	switch s := strings.ToLower(strings.TrimSpace(os.Getenv("TAGX_LINK_SCHEME"))); s {
	case "http", "https":
		return s
	}
	return ""
}
