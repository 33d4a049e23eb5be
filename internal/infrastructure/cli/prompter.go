package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	isTTY bool
}

// NewPrompter constructs a prompter over the given streams. When reading the
// real stdin, confirmation is only offered on a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	isTTY := true
	if in == nil {
		in = os.Stdin
	}
	if in == os.Stdin {
		isTTY = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		isTTY: isTTY,
	}
}

// Enabled reports whether an interactive confirmation is possible.
func (p *Prompter) Enabled() bool {
	return p.isTTY
}

// ReadLine reads one trimmed input line. The REPL shares this reader for all
// of its input so no second buffer can swallow lines meant for the prompt.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm presents a pending command and reads the user's resolution.
// Critical-severity commands demand an explicit typed "yes".
func (p *Prompter) Confirm(pending domain.PendingCommand) (ports.ConfirmChoice, error) {
	fmt.Fprintf(p.out, "\n%s risk detected\n", strings.ToUpper(pending.Verdict.Severity.String()))
	if pending.Verdict.Reason != "" {
		fmt.Fprintf(p.out, " - %s\n", pending.Verdict.Reason)
	}
	for _, pattern := range pending.Verdict.Patterns {
		fmt.Fprintf(p.out, " - matched: %s\n", pattern)
	}
	fmt.Fprintf(p.out, "Command:\n  %s\n", pending.CommandText)

	for {
		fmt.Fprint(p.out, "[y]es run / [n]o cancel / [e]dit / [c]opy: ")
		line, err := p.ReadLine()
		if err != nil {
			return ports.ChoiceCancel, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			if pending.Verdict.Severity == domain.SeverityCritical {
				ok, err := p.askExplicit()
				if err != nil {
					return ports.ChoiceCancel, err
				}
				if !ok {
					return ports.ChoiceCancel, nil
				}
			}
			return ports.ChoiceConfirm, nil
		case "n", "no", "":
			return ports.ChoiceCancel, nil
		case "e", "edit":
			return ports.ChoiceEdit, nil
		case "c", "copy":
			return ports.ChoiceCopy, nil
		}
	}
}

func (p *Prompter) askExplicit() (bool, error) {
	fmt.Fprint(p.out, "Type 'yes' to confirm this critical operation: ")
	line, err := p.ReadLine()
	if err != nil {
		return false, err
	}
	return line == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
