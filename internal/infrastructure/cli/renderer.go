package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/quiverlabs/nlsh/internal/domain"
)

// RenderResponse prints a response in a friendly, ASCII-only format.
func RenderResponse(out io.Writer, resp domain.AskResponse) {
	if resp.NaturalLanguage != "" {
		fmt.Fprintf(out, "Prompt: %s\n", resp.NaturalLanguage)
	}
	if resp.ModelUsed != "" {
		fmt.Fprintf(out, "Model: %s\n", resp.ModelUsed)
	}
	if resp.FromCache {
		fmt.Fprintln(out, "Note: result served from cache")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Command:")
	fmt.Fprintf(out, "  %s\n", resp.Command)

	RenderVerdict(out, resp.Verdict)

	if resp.ExecutionResult != nil {
		RenderExecution(out, *resp.ExecutionResult)
	}
}

// RenderVerdict prints the safety verdict.
func RenderVerdict(out io.Writer, verdict domain.SafetyVerdict) {
	badge := "SAFE"
	if verdict.Dangerous {
		badge = "DANGEROUS"
	}
	fmt.Fprintf(out, "\nRisk: %s (%s)\n", strings.ToUpper(verdict.Severity.String()), badge)
	if verdict.Reason != "" {
		fmt.Fprintf(out, " - %s\n", verdict.Reason)
	}
	for _, pattern := range verdict.Patterns {
		fmt.Fprintf(out, " - matched: %s\n", pattern)
	}
}

// RenderExecution prints the execution adapter's result.
func RenderExecution(out io.Writer, result domain.ExecutionResult) {
	switch {
	case result.Ran && result.ExitCode == 0:
		fmt.Fprintln(out, "\nCommand executed successfully.")
	case result.Err != nil:
		fmt.Fprintf(out, "\nCommand failed: %v\n", result.Err)
	default:
		fmt.Fprintf(out, "\nCommand exited with code %d.\n", result.ExitCode)
	}
	if result.Stdout != "" {
		fmt.Fprintln(out, "\nstdout:")
		fmt.Fprintln(out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(out, "\nstderr:")
		fmt.Fprintln(out, result.Stderr)
	}
}
