package safety

import (
	"fmt"

	"github.com/quiverlabs/nlsh/internal/domain"
)

// Decision is the policy gate's answer for one classified command.
type Decision string

const (
	// DecisionShow displays the command and verdict without executing.
	DecisionShow Decision = "show"
	// DecisionExecute allows unattended execution.
	DecisionExecute Decision = "execute"
	// DecisionRefuse forbids unattended execution; the caller must surface
	// the verdict and exit non-zero.
	DecisionRefuse Decision = "refuse"
	// DecisionConfirm parks the command for an explicit human decision.
	DecisionConfirm Decision = "confirm"
)

// Decide applies the execution policy for the given entry point. Every entry
// point must route through this function so the gate behaves identically
// across preview, direct execution and interactive sessions.
func Decide(verdict domain.SafetyVerdict, mode domain.GateMode) Decision {
	switch mode {
	case domain.ModeExecute:
		if verdict.Dangerous && verdict.Severity.AtLeast(domain.SeverityMedium) {
			return DecisionRefuse
		}
		return DecisionExecute
	case domain.ModeInteractive:
		if verdict.Dangerous {
			return DecisionConfirm
		}
		return DecisionExecute
	default: // preview
		return DecisionShow
	}
}

// RefusalError is returned when the gate forbids unattended execution of a
// dangerous command. It carries the verdict so callers can render severity
// and reason before exiting non-zero.
type RefusalError struct {
	Command string
	Verdict domain.SafetyVerdict
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("refusing to execute %s-severity command %q: %s (preview it or run it manually)",
		e.Verdict.Severity, e.Command, e.Verdict.Reason)
}
