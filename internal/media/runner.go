package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"livesplit/internal/services"
)

// RunOptions tweaks a single process invocation.
type RunOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult carries the captured output of a finished process.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}

// CmdRunner runs commands through os/exec.
type CmdRunner struct{}

// Run executes command and captures stdout and stderr, teeing them to the
// writers in opts when set.
func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	stdoutWriter := io.Writer(&stdoutBuf)
	if opts.Stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, opts.Stdout)
	}
	stderrWriter := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderrWriter = io.MultiWriter(&stderrBuf, opts.Stderr)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	err := cmd.Run()
	return RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}, err
}

var _ Runner = CmdRunner{}

// Exec runs a tool and converts a failed invocation into an ErrExternalTool
// error that quotes the tail of stderr. Context cancellation is returned
// unwrapped so callers can exit quietly.
func Exec(ctx context.Context, runner Runner, stage, binary string, args []string) (RunResult, error) {
	if runner == nil {
		runner = CmdRunner{}
	}
	result, err := runner.Run(ctx, binary, args, RunOptions{})
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	detail := stderrTail(result.Stderr)
	msg := fmt.Sprintf("%s exited with failure", binary)
	if detail != "" {
		msg = fmt.Sprintf("%s exited with failure (%s)", binary, detail)
	}
	return result, services.Wrap(services.ErrExternalTool, stage, "exec", msg, err)
}

func stderrTail(stderr []byte) string {
	text := strings.TrimSpace(string(stderr))
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "; ")
}
