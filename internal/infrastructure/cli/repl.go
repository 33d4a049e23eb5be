package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/ports"
	"github.com/quiverlabs/nlsh/internal/session"
)

func newReplCommand(container *app.Container) *cobra.Command {
	var (
		model  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"interactive", "i"},
		Short:   "Start an interactive session",
		Long: `Start an interactive session. Type natural language to generate commands,
or prefix a line with ! to submit a literal shell command. Dangerous commands
park in a confirmation prompt; safe ones run immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clipboard := NewClipboard()
			sess := session.New(container.Executor, clipboard, container.Logger, "")
			sess.SetDryRun(dryRun)

			// One prompter owns the input buffer; the loop reads through it
			// so prompt answers and loop lines cannot steal each other.
			loop := replLoop{
				container: container,
				sess:      sess,
				prompter:  NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:       cmd.OutOrStdout(),
				model:     model,
			}
			return loop.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show commands and verdicts without executing anything")
	return cmd
}

type replLoop struct {
	container *app.Container
	sess      *session.Session
	prompter  *Prompter
	out       io.Writer
	model     string
}

func (l *replLoop) run(ctx context.Context) error {
	fmt.Fprintln(l.out, "nlsh interactive session. Type a request, !<command> for a literal command,")
	fmt.Fprintln(l.out, ":dry-run on|off to toggle dry-run, exit to leave.")

	for {
		fmt.Fprintf(l.out, "\n%s> ", l.sess.Workdir())
		line, err := l.prompter.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		switch {
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, ":dry-run"):
			l.toggleDryRun(line)
			continue
		case strings.HasPrefix(line, "!"):
			l.submit(ctx, line, strings.TrimSpace(line[1:]))
			continue
		}

		resp, err := l.container.AskService.Suggest(ctx, line, l.model, false)
		if err != nil {
			fmt.Fprintf(l.out, "translation failed: %v\n", err)
			continue
		}
		fmt.Fprintf(l.out, "=> %s\n", resp.Command)
		if resp.Reasoning != "" {
			fmt.Fprintf(l.out, "   %s\n", resp.Reasoning)
		}
		l.submit(ctx, line, resp.Command)
	}
}

func (l *replLoop) toggleDryRun(line string) {
	arg := strings.TrimSpace(strings.TrimPrefix(line, ":dry-run"))
	switch arg {
	case "on":
		l.sess.SetDryRun(true)
	case "off":
		l.sess.SetDryRun(false)
	case "":
		l.sess.SetDryRun(!l.sess.DryRun())
	default:
		fmt.Fprintf(l.out, "usage: :dry-run [on|off]\n")
		return
	}
	fmt.Fprintf(l.out, "dry-run: %v\n", l.sess.DryRun())
}

// submit classifies a command and drives it through the state machine,
// including the confirmation dialogue for dangerous commands.
func (l *replLoop) submit(ctx context.Context, origin, command string) {
	if command == "" {
		return
	}

	cfg, err := l.container.ConfigProvider.Load(ctx)
	if err != nil {
		fmt.Fprintf(l.out, "load config: %v\n", err)
		return
	}
	verdict := l.container.Classifier.Classify(command, cfg.SafetyConfig())

	outcome, err := l.sess.Propose(ctx, origin, command, verdict)
	if err != nil {
		fmt.Fprintf(l.out, "execution failed: %v\n", err)
	}
	l.report(outcome)

	for outcome.State == domain.StatePendingConfirmation {
		outcome = l.resolvePending(ctx)
	}
}

// resolvePending runs one round of the confirmation dialogue. Copy keeps the
// slot occupied, so the caller loops until a terminal state is reached.
func (l *replLoop) resolvePending(ctx context.Context) session.Outcome {
	pending, ok := l.sess.Pending()
	if !ok {
		return session.Outcome{State: domain.StateCancelled}
	}

	if !l.prompter.Enabled() {
		fmt.Fprintln(l.out, "no interactive terminal; cancelling dangerous command")
		cancelled, _ := l.sess.Cancel()
		return session.Outcome{State: cancelled.State, Pending: &cancelled}
	}

	choice, err := l.prompter.Confirm(pending)
	if err != nil {
		cancelled, _ := l.sess.Cancel()
		return session.Outcome{State: cancelled.State, Pending: &cancelled}
	}

	switch choice {
	case ports.ChoiceConfirm:
		outcome, err := l.sess.Confirm(ctx)
		if err != nil {
			fmt.Fprintf(l.out, "execution failed: %v\n", err)
		}
		l.report(outcome)
		return outcome
	case ports.ChoiceEdit:
		draft, err := l.sess.Edit()
		if err != nil {
			return session.Outcome{State: domain.StateCancelled}
		}
		fmt.Fprintf(l.out, "edit> %s\n", draft)
		fmt.Fprint(l.out, "new command (empty keeps the draft): ")
		if edited, err := l.prompter.ReadLine(); err == nil && edited != "" {
			draft = edited
		}
		l.submit(ctx, pending.OriginInput, draft)
		return session.Outcome{State: domain.StateEdited}
	case ports.ChoiceCopy:
		if err := l.sess.Copy(); err != nil {
			fmt.Fprintf(l.out, "copy failed: %v\n", err)
		} else {
			fmt.Fprintln(l.out, "copied to clipboard")
		}
		// Non-terminal: the command stays pending.
		return session.Outcome{State: domain.StatePendingConfirmation}
	default:
		cancelled, err := l.sess.Cancel()
		if err != nil {
			return session.Outcome{State: domain.StateCancelled}
		}
		fmt.Fprintln(l.out, "cancelled")
		return session.Outcome{State: cancelled.State, Pending: &cancelled}
	}
}

func (l *replLoop) report(outcome session.Outcome) {
	if outcome.DryRun {
		fmt.Fprintf(l.out, "[dry-run] would submit: %s\n", outcome.Pending.CommandText)
		RenderVerdict(l.out, outcome.Pending.Verdict)
		return
	}
	switch outcome.State {
	case domain.StatePendingConfirmation:
		// The prompter renders the verdict.
	case domain.StateExecuted, domain.StateFailed:
		if outcome.Result != nil {
			RenderExecution(l.out, *outcome.Result)
		}
	}
}
