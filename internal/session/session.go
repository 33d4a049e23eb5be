// Package session implements the confirmation state machine that tracks a
// proposed command from proposal to execution, cancellation or edit. Each
// interactive session owns exactly one pending-command slot.
package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/pkg/filesystem"
	"github.com/quiverlabs/nlsh/internal/ports"
)

// ErrNoPending is returned when a confirm, cancel, edit or copy action
// arrives without a command in the pending slot.
var ErrNoPending = errors.New("no command pending confirmation")

// Session owns the single pending-command slot for one interactive run.
// It is not safe for concurrent use; each terminal instance gets its own.
type Session struct {
	executor  ports.CommandExecutor
	clipboard ports.Clipboard
	logger    ports.Logger
	workdir   string
	dryRun    bool
	pending   *domain.PendingCommand
}

// New builds a session rooted at workdir (defaults to the process cwd).
func New(executor ports.CommandExecutor, clipboard ports.Clipboard, logger ports.Logger, workdir string) *Session {
	if workdir == "" {
		if cwd, err := os.Getwd(); err == nil {
			workdir = cwd
		}
	}
	return &Session{
		executor:  executor,
		clipboard: clipboard,
		logger:    logger,
		workdir:   workdir,
	}
}

// SetDryRun toggles dry-run mode: proposals are reported but nothing
// executes and no state is held.
func (s *Session) SetDryRun(enabled bool) {
	s.dryRun = enabled
}

// DryRun reports whether dry-run mode is active.
func (s *Session) DryRun() bool {
	return s.dryRun
}

// Workdir returns the session's current working directory.
func (s *Session) Workdir() string {
	return s.workdir
}

// Pending returns a copy of the pending command, if any.
func (s *Session) Pending() (domain.PendingCommand, bool) {
	if s.pending == nil {
		return domain.PendingCommand{}, false
	}
	return *s.pending, true
}

// Outcome describes how a proposal was resolved by the state machine.
type Outcome struct {
	State   domain.PendingState
	Pending *domain.PendingCommand
	Result  *domain.ExecutionResult
	DryRun  bool
}

// Propose feeds a classified command into the state machine. Safe commands
// are auto-approved and executed immediately; dangerous ones are parked in
// the pending slot. A proposal arriving while another is pending replaces it
// ("latest proposal wins").
func (s *Session) Propose(ctx context.Context, originInput, command string, verdict domain.SafetyVerdict) (Outcome, error) {
	if s.pending != nil {
		if s.logger != nil {
			s.logger.Warn("discarding unresolved pending command", map[string]interface{}{
				"id":      s.pending.ID,
				"command": s.pending.CommandText,
			})
		}
		s.pending = nil
	}

	cmd := &domain.PendingCommand{
		ID:          uuid.NewString(),
		OriginInput: originInput,
		CommandText: strings.TrimSpace(command),
		Verdict:     verdict,
		State:       domain.StateProposed,
	}

	if s.dryRun {
		// Dry-run reports the would-be command and verdict but performs no
		// state change and never reaches Executed.
		return Outcome{State: domain.StateProposed, Pending: cmd, DryRun: true}, nil
	}

	if verdict.Dangerous {
		cmd.State = domain.StatePendingConfirmation
		s.pending = cmd
		return Outcome{State: cmd.State, Pending: cmd}, nil
	}

	cmd.State = domain.StateAutoApproved
	result, err := s.run(ctx, cmd.CommandText)
	if err != nil || result.ExitCode != 0 {
		cmd.State = domain.StateFailed
	} else {
		cmd.State = domain.StateExecuted
	}
	return Outcome{State: cmd.State, Pending: cmd, Result: &result}, err
}

// Confirm executes the pending command and clears the slot. The resulting
// state is Executed on success, Failed on a non-zero exit or adapter error.
func (s *Session) Confirm(ctx context.Context) (Outcome, error) {
	if s.pending == nil {
		return Outcome{}, ErrNoPending
	}
	cmd := s.pending
	s.pending = nil

	result, err := s.run(ctx, cmd.CommandText)
	if err != nil || result.ExitCode != 0 {
		cmd.State = domain.StateFailed
	} else {
		cmd.State = domain.StateExecuted
	}
	return Outcome{State: cmd.State, Pending: cmd, Result: &result}, err
}

// Cancel discards the pending command without execution or side effects.
func (s *Session) Cancel() (domain.PendingCommand, error) {
	if s.pending == nil {
		return domain.PendingCommand{}, ErrNoPending
	}
	cmd := *s.pending
	s.pending = nil
	cmd.State = domain.StateCancelled
	return cmd, nil
}

// Edit discards the pending command as a command and returns its text as an
// editable draft. Nothing executes.
func (s *Session) Edit() (string, error) {
	if s.pending == nil {
		return "", ErrNoPending
	}
	draft := s.pending.CommandText
	s.pending.State = domain.StateEdited
	s.pending = nil
	return draft, nil
}

// Copy sends the pending command text to the clipboard. It is a non-terminal
// side channel: the slot stays occupied and Copy may be invoked repeatedly.
func (s *Session) Copy() error {
	if s.pending == nil {
		return ErrNoPending
	}
	if s.clipboard == nil || !s.clipboard.Enabled() {
		return errors.New("clipboard unavailable")
	}
	return s.clipboard.Copy(s.pending.CommandText)
}

// run dispatches to the execution adapter, special-casing directory changes:
// cd applies to the session's working-directory state directly and always
// reports success, without spawning a process.
func (s *Session) run(ctx context.Context, command string) (domain.ExecutionResult, error) {
	if target, ok := parseChdir(command); ok {
		s.chdir(target)
		return domain.ExecutionResult{Ran: true, ExitCode: 0}, nil
	}
	if s.executor == nil {
		return domain.ExecutionResult{}, errors.New("no execution adapter configured")
	}
	return s.executor.Execute(ctx, command)
}

func (s *Session) chdir(target string) {
	switch {
	case target == "" || target == "~":
		target = filesystem.UserHomeDir()
	case strings.HasPrefix(target, "~/"):
		target = filepath.Join(filesystem.UserHomeDir(), target[2:])
	case !filepath.IsAbs(target):
		target = filepath.Join(s.workdir, target)
	}
	s.workdir = filepath.Clean(target)
	// Keep the process cwd aligned so spawned commands inherit it.
	_ = os.Chdir(s.workdir)
}

// parseChdir recognizes a plain directory-change command ("cd", "cd <dir>").
func parseChdir(command string) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 || fields[0] != "cd" || len(fields) > 2 {
		return "", false
	}
	if len(fields) == 1 {
		return "", true
	}
	return fields[1], true
}
