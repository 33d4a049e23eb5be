package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quiverlabs/nlsh/internal/domain"
)

type fakeExecutor struct {
	commands []string
	exitCode int
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return domain.ExecutionResult{}, f.err
	}
	return domain.ExecutionResult{Ran: true, ExitCode: f.exitCode}, nil
}

type fakeClipboard struct {
	copied  []string
	enabled bool
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakeClipboard) Enabled() bool { return f.enabled }

func safeVerdict() domain.SafetyVerdict {
	return domain.SafetyVerdict{Severity: domain.SeverityLow}
}

func dangerousVerdict() domain.SafetyVerdict {
	return domain.SafetyVerdict{
		Dangerous: true,
		Severity:  domain.SeverityHigh,
		Reason:    "this command makes significant, hard-to-undo changes",
		Patterns:  []string{"forced-recursive-delete"},
	}
}

func TestProposeSafeAutoExecutes(t *testing.T) {
	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, t.TempDir())

	outcome, err := sess.Propose(context.Background(), "list files", "ls -la", safeVerdict())
	if err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if outcome.State != domain.StateExecuted {
		t.Fatalf("expected Executed, got %v", outcome.State)
	}
	if len(exec.commands) != 1 || exec.commands[0] != "ls -la" {
		t.Fatalf("executor saw %v", exec.commands)
	}
	if _, pending := sess.Pending(); pending {
		t.Fatal("safe command must not occupy the pending slot")
	}
}

func TestProposeDangerousParks(t *testing.T) {
	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, t.TempDir())

	outcome, err := sess.Propose(context.Background(), "delete build dir", "rm -rf ./build", dangerousVerdict())
	if err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if outcome.State != domain.StatePendingConfirmation {
		t.Fatalf("expected PendingConfirmation, got %v", outcome.State)
	}
	if len(exec.commands) != 0 {
		t.Fatalf("nothing may execute before confirmation, executor saw %v", exec.commands)
	}
	pending, ok := sess.Pending()
	if !ok || pending.CommandText != "rm -rf ./build" {
		t.Fatalf("pending slot not populated: %+v", pending)
	}
	if pending.ID == "" {
		t.Fatal("pending command must carry an identifier")
	}
}

func TestConfirmExecutesAndClearsSlot(t *testing.T) {
	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, t.TempDir())
	ctx := context.Background()

	if _, err := sess.Propose(ctx, "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}

	outcome, err := sess.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if outcome.State != domain.StateExecuted {
		t.Fatalf("expected Executed, got %v", outcome.State)
	}
	if len(exec.commands) != 1 {
		t.Fatalf("executor saw %v", exec.commands)
	}
	if _, pending := sess.Pending(); pending {
		t.Fatal("confirm must clear the pending slot")
	}
	// The slot is empty: a second confirm is an error.
	if _, err := sess.Confirm(ctx); !errors.Is(err, ErrNoPending) {
		t.Fatalf("expected ErrNoPending, got %v", err)
	}
}

func TestConfirmNonZeroExitIsFailed(t *testing.T) {
	exec := &fakeExecutor{exitCode: 2}
	sess := New(exec, nil, nil, t.TempDir())
	ctx := context.Background()

	if _, err := sess.Propose(ctx, "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	outcome, err := sess.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if outcome.State != domain.StateFailed {
		t.Fatalf("expected Failed on exit 2, got %v", outcome.State)
	}
}

func TestCancelDiscardsWithoutExecution(t *testing.T) {
	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, t.TempDir())

	if _, err := sess.Propose(context.Background(), "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	cancelled, err := sess.Cancel()
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.State != domain.StateCancelled {
		t.Fatalf("expected Cancelled, got %v", cancelled.State)
	}
	if len(exec.commands) != 0 {
		t.Fatalf("cancel must not execute, executor saw %v", exec.commands)
	}
	if _, err := sess.Cancel(); !errors.Is(err, ErrNoPending) {
		t.Fatalf("expected ErrNoPending, got %v", err)
	}
}

func TestEditReturnsDraft(t *testing.T) {
	sess := New(&fakeExecutor{}, nil, nil, t.TempDir())

	if _, err := sess.Propose(context.Background(), "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	draft, err := sess.Edit()
	if err != nil {
		t.Fatalf("Edit error: %v", err)
	}
	if draft != "rm -rf ./build" {
		t.Fatalf("draft %q", draft)
	}
	if _, pending := sess.Pending(); pending {
		t.Fatal("edit must clear the pending slot")
	}
}

func TestCopyIsNonTerminal(t *testing.T) {
	clip := &fakeClipboard{enabled: true}
	sess := New(&fakeExecutor{}, clip, nil, t.TempDir())

	if _, err := sess.Propose(context.Background(), "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if err := sess.Copy(); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if err := sess.Copy(); err != nil {
		t.Fatalf("second Copy error: %v", err)
	}
	if len(clip.copied) != 2 {
		t.Fatalf("clipboard saw %v", clip.copied)
	}
	if _, pending := sess.Pending(); !pending {
		t.Fatal("copy must keep the command pending")
	}
}

func TestCopyWithoutClipboard(t *testing.T) {
	sess := New(&fakeExecutor{}, &fakeClipboard{enabled: false}, nil, t.TempDir())

	if _, err := sess.Propose(context.Background(), "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if err := sess.Copy(); err == nil {
		t.Fatal("expected an error when clipboard is unavailable")
	}
	if _, pending := sess.Pending(); !pending {
		t.Fatal("a failed copy must not discard the pending command")
	}
}

func TestProposeReplacesPending(t *testing.T) {
	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, t.TempDir())
	ctx := context.Background()

	if _, err := sess.Propose(ctx, "", "rm -rf ./build", dangerousVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if _, err := sess.Propose(ctx, "", "sudo rm /etc/hosts", dangerousVerdict()); err != nil {
		t.Fatalf("second Propose error: %v", err)
	}

	pending, ok := sess.Pending()
	if !ok || pending.CommandText != "sudo rm /etc/hosts" {
		t.Fatalf("latest proposal must win, got %+v", pending)
	}

	outcome, err := sess.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if outcome.State != domain.StateExecuted || exec.commands[0] != "sudo rm /etc/hosts" {
		t.Fatalf("confirm must act on the replacement: %v", exec.commands)
	}
}

func TestDryRunHoldsNoState(t *testing.T) {
	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, t.TempDir())
	sess.SetDryRun(true)

	outcome, err := sess.Propose(context.Background(), "", "rm -rf ./build", dangerousVerdict())
	if err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if !outcome.DryRun {
		t.Fatalf("expected a dry-run outcome, got %+v", outcome)
	}
	if len(exec.commands) != 0 {
		t.Fatalf("dry-run must not execute, executor saw %v", exec.commands)
	}
	if _, pending := sess.Pending(); pending {
		t.Fatal("dry-run must not hold pending state")
	}
	// Safe commands are skipped too.
	if outcome, _ := sess.Propose(context.Background(), "", "ls", safeVerdict()); outcome.State == domain.StateExecuted {
		t.Fatal("dry-run must never reach Executed")
	}
	if len(exec.commands) != 0 {
		t.Fatalf("executor saw %v", exec.commands)
	}
}

func TestChdirUpdatesWorkdir(t *testing.T) {
	origin, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origin) })

	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	exec := &fakeExecutor{}
	sess := New(exec, nil, nil, root)

	outcome, err := sess.Propose(context.Background(), "", "cd sub", safeVerdict())
	if err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if outcome.State != domain.StateExecuted {
		t.Fatalf("cd must report success, got %v", outcome.State)
	}
	if outcome.Result == nil || outcome.Result.ExitCode != 0 {
		t.Fatalf("cd must report exit 0, got %+v", outcome.Result)
	}
	if sess.Workdir() != sub {
		t.Fatalf("workdir = %q, want %q", sess.Workdir(), sub)
	}
	// No process was spawned for the directory change.
	if len(exec.commands) != 0 {
		t.Fatalf("executor saw %v", exec.commands)
	}
}

func TestChdirRelativeAndAbsolute(t *testing.T) {
	origin, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origin) })

	root := t.TempDir()
	sess := New(&fakeExecutor{}, nil, nil, root)
	ctx := context.Background()

	if _, err := sess.Propose(ctx, "", "cd "+root, safeVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if sess.Workdir() != root {
		t.Fatalf("absolute cd failed: %q", sess.Workdir())
	}

	if _, err := sess.Propose(ctx, "", "cd ..", safeVerdict()); err != nil {
		t.Fatalf("Propose error: %v", err)
	}
	if sess.Workdir() != filepath.Dir(root) {
		t.Fatalf("relative cd failed: %q", sess.Workdir())
	}
}

func TestParseChdir(t *testing.T) {
	tests := []struct {
		command string
		target  string
		ok      bool
	}{
		{"cd", "", true},
		{"cd /tmp", "/tmp", true},
		{"cd ..", "..", true},
		{"cdx /tmp", "", false},
		{"cd /tmp && ls", "", false},
		{"ls", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		target, ok := parseChdir(tc.command)
		if target != tc.target || ok != tc.ok {
			t.Fatalf("parseChdir(%q) = (%q, %v), want (%q, %v)", tc.command, target, ok, tc.target, tc.ok)
		}
	}
}
