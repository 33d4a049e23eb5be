package executor

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecuteCapturesStdout(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	result, err := e.Execute(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !result.Ran || result.ExitCode != 0 {
		t.Fatalf("result %+v", result)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Fatalf("stdout %q", result.Stdout)
	}
}

func TestExecuteNonZeroExitIsNotAnError(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	result, err := e.Execute(context.Background(), "exit 3")
	if err != nil {
		t.Fatalf("non-zero exit must not surface as an adapter error, got %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("exit code %d", result.ExitCode)
	}
	if result.Err == nil {
		t.Fatal("result must carry the underlying exit error")
	}
}

func TestExecuteCapturesStderr(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	result, err := e.Execute(context.Background(), "echo oops >&2; exit 1")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if strings.TrimSpace(result.Stderr) != "oops" {
		t.Fatalf("stderr %q", result.Stderr)
	}
	if result.ExitCode != 1 {
		t.Fatalf("exit code %d", result.ExitCode)
	}
}

func TestResolveShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	if got := ResolveShell("/bin/zsh"); got != "/bin/zsh" {
		t.Fatalf("configured shell must win, got %q", got)
	}
	if got := ResolveShell(""); got != "/bin/bash" {
		t.Fatalf("$SHELL fallback, got %q", got)
	}
	t.Setenv("SHELL", "")
	if got := ResolveShell(""); got != "/bin/sh" {
		t.Fatalf("final fallback, got %q", got)
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	e := NewLocalExecutor("/bin/sh")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := e.Execute(ctx, "sleep 5")
	if err == nil {
		t.Fatal("expected an error when the context deadline fires")
	}
}
