package domain

import "time"

// HistoryRecord captures generated or executed command metadata.
type HistoryRecord struct {
	ID         string       `json:"id"`
	Timestamp  time.Time    `json:"timestamp"`
	Prompt     string       `json:"prompt"`
	Command    string       `json:"command"`
	Model      string       `json:"model"`
	Severity   Severity     `json:"severity"`
	Dangerous  bool         `json:"dangerous"`
	State      PendingState `json:"state"`
	ExitCode   int          `json:"exit_code"`
	DurationMS int64        `json:"duration_ms"`
}
