package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"livesplit/internal/services"
)

type failingRunner struct {
	stderr string
}

func (f failingRunner) Run(context.Context, string, []string, RunOptions) (RunResult, error) {
	return RunResult{Stderr: []byte(f.stderr)}, errors.New("exit status 1")
}

func TestExecWrapsFailures(t *testing.T) {
	runner := failingRunner{stderr: "line1\nline2\nline3\nInvalid data found\n"}
	_, err := Exec(context.Background(), runner, "probe", "ffprobe", []string{"x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("expected stderr tail in error, got %q", err.Error())
	}
	if strings.Contains(err.Error(), "line1") {
		t.Fatalf("expected only the stderr tail, got %q", err.Error())
	}
}

func TestExecReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Exec(ctx, failingRunner{}, "probe", "ffprobe", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCmdRunnerCapturesOutput(t *testing.T) {
	result, err := CmdRunner{}.Run(context.Background(), "sh", []string{"-c", "echo out; echo err 1>&2"}, RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "out" {
		t.Fatalf("stdout = %q", result.Stdout)
	}
	if strings.TrimSpace(string(result.Stderr)) != "err" {
		t.Fatalf("stderr = %q", result.Stderr)
	}
}
