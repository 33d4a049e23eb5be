package safety

import (
	"strings"
	"testing"

	"github.com/quiverlabs/nlsh/internal/domain"
)

func TestDecide(t *testing.T) {
	dangerousHigh := domain.SafetyVerdict{Dangerous: true, Severity: domain.SeverityHigh}
	dangerousLow := domain.SafetyVerdict{Dangerous: true, Severity: domain.SeverityLow}
	safe := domain.SafetyVerdict{Severity: domain.SeverityMedium}

	tests := []struct {
		name    string
		verdict domain.SafetyVerdict
		mode    domain.GateMode
		want    Decision
	}{
		{"preview always shows", dangerousHigh, domain.ModePreview, DecisionShow},
		{"execute refuses dangerous", dangerousHigh, domain.ModeExecute, DecisionRefuse},
		{"execute allows safe", safe, domain.ModeExecute, DecisionExecute},
		{"execute allows dangerous low", dangerousLow, domain.ModeExecute, DecisionExecute},
		{"interactive confirms dangerous", dangerousHigh, domain.ModeInteractive, DecisionConfirm},
		{"interactive runs safe", safe, domain.ModeInteractive, DecisionExecute},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.verdict, tc.mode); got != tc.want {
				t.Fatalf("Decide(%+v, %v) = %v, want %v", tc.verdict, tc.mode, got, tc.want)
			}
		})
	}
}

func TestRefusalErrorMessage(t *testing.T) {
	err := &RefusalError{
		Command: "sudo rm -rf /var",
		Verdict: domain.SafetyVerdict{
			Dangerous: true,
			Severity:  domain.SeverityHigh,
			Reason:    "this command makes significant, hard-to-undo changes",
		},
	}
	msg := err.Error()
	for _, want := range []string{"high", "sudo rm -rf /var", "preview it or run it manually"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message missing %q: %s", want, msg)
		}
	}
}
