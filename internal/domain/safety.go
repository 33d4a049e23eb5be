package domain

// Severity grades how dangerous a matched command pattern is. Values form a
// total order (low < medium < high < critical); the zero value is SeverityLow
// so an unmatched command carries the mildest grade.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the severity label used in output and persistence.
func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "low"
	}
}

// AtLeast reports whether s is at least as dangerous as other.
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}

// ParseSeverity maps a label back to a Severity. Unknown labels parse as low.
func ParseSeverity(value string) Severity {
	switch value {
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityLow
	}
}

// SafetyLevel is the user-configured strictness that decides which severities
// require confirmation before execution.
type SafetyLevel string

const (
	SafetyStrict   SafetyLevel = "strict"
	SafetyModerate SafetyLevel = "moderate"
	SafetyRelaxed  SafetyLevel = "relaxed"
)

// ParseSafetyLevel normalizes a configured level, falling back to moderate
// for anything unrecognized.
func ParseSafetyLevel(value string) SafetyLevel {
	switch SafetyLevel(value) {
	case SafetyStrict, SafetyModerate, SafetyRelaxed:
		return SafetyLevel(value)
	default:
		return SafetyModerate
	}
}

// SafetyConfig carries the three policy inputs the classifier reads. It is
// derived from the persisted configuration and treated as read-only.
type SafetyConfig struct {
	Level SafetyLevel

	// BlockedCommands are substrings that are unconditionally fatal; a match
	// short-circuits classification with a critical verdict.
	BlockedCommands []string

	// ConfirmedPatterns are substrings the user has previously approved.
	// A match suppresses the dangerous flag unless severity is critical.
	ConfirmedPatterns []string
}

// SafetyVerdict is the immutable result of classifying one command string.
type SafetyVerdict struct {
	// Dangerous reports whether the active safety level requires the command
	// to be confirmed or refused rather than run unattended.
	Dangerous bool

	// Severity is the highest tier that actually matched, or low if nothing
	// matched at all.
	Severity Severity

	// Reason is a human-readable explanation, present only when Dangerous.
	Reason string

	// Patterns lists the identifiers of every rule that matched.
	Patterns []string
}
