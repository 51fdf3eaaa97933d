// Package execx は外部コマンド実行を差し替え可能にする薄い層です。
// テストでは Runner を偽物に置き換えて git の出力を再現します。
package execx

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner runs one external command and returns both output streams.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// DefaultRunner returns the exec.CommandContext-backed implementation.
func DefaultRunner() Runner {
	return commandRunner{}
}

type commandRunner struct{}

func (commandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return out.Bytes(), errBuf.Bytes(), err
}
