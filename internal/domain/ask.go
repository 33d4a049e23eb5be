package domain

import "context"

// GateMode selects which execution policy applies to a classified command.
type GateMode string

const (
	// ModePreview always shows the verdict and never executes.
	ModePreview GateMode = "preview"
	// ModeExecute runs unattended but refuses dangerous commands above low
	// severity.
	ModeExecute GateMode = "execute"
	// ModeInteractive auto-approves safe commands and parks dangerous ones
	// in the session's pending slot.
	ModeInteractive GateMode = "interactive"
)

// AskRequest captures user intent originating from the CLI.
type AskRequest struct {
	Context         context.Context
	Prompt          string
	ModelOverride   string
	Mode            GateMode
	CopyToClipboard bool
	NoCache         bool
	Debug           bool
}

// AskResponse is the canonical response propagated back to the CLI.
type AskResponse struct {
	Command         string
	NaturalLanguage string
	Reasoning       string
	Verdict         SafetyVerdict
	ModelUsed       string
	FromCache       bool
	ExecutionResult *ExecutionResult
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Err        error
}

// CacheEntry stores cached translator responses.
type CacheEntry struct {
	Key       string `json:"key"`
	Command   string `json:"command"`
	Reasoning string `json:"reasoning"`
	Model     string `json:"model"`
	CreatedAt int64  `json:"created_at"`
}
