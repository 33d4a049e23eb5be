package safety

import (
	"fmt"
	"strings"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/ports"
)

// Classifier evaluates candidate commands against the pattern catalog plus
// the user's blocked and confirmed lists. Classify is a pure function: no
// side effects, deterministic, total over its input domain.
type Classifier struct {
	catalog *Catalog
}

// NewClassifier builds a classifier over the given catalog.
func NewClassifier(catalog *Catalog) *Classifier {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Classifier{catalog: catalog}
}

// Classify produces a SafetyVerdict for one command string.
//
// Evaluation order is load-bearing: blocked list short-circuits everything,
// high rules run only when no critical rule matched, medium rules run
// unconditionally but never downgrade, and low rules run only when nothing
// else matched at all.
func (c *Classifier) Classify(command string, cfg domain.SafetyConfig) domain.SafetyVerdict {
	// Normalization is for matching only; the executed command is never
	// mutated here.
	normalized := strings.ToLower(strings.TrimSpace(command))

	for _, entry := range cfg.BlockedCommands {
		needle := strings.ToLower(strings.TrimSpace(entry))
		if needle == "" {
			continue
		}
		if strings.Contains(normalized, needle) {
			return domain.SafetyVerdict{
				Dangerous: true,
				Severity:  domain.SeverityCritical,
				Reason:    fmt.Sprintf("blocked pattern: %s", entry),
				Patterns:  []string{entry},
			}
		}
	}

	severity := domain.SeverityLow
	var patterns []string

	if matched := matchTier(c.catalog.critical, normalized); len(matched) > 0 {
		severity = domain.SeverityCritical
		patterns = append(patterns, matched...)
	} else if matched := matchTier(c.catalog.high, normalized); len(matched) > 0 {
		severity = domain.SeverityHigh
		patterns = append(patterns, matched...)
	}

	// Medium rules always run for reporting; they only raise an otherwise
	// unclassified command.
	if matched := matchTier(c.catalog.medium, normalized); len(matched) > 0 {
		if severity == domain.SeverityLow {
			severity = domain.SeverityMedium
		}
		patterns = append(patterns, matched...)
	}

	if len(patterns) == 0 {
		patterns = append(patterns, matchTier(c.catalog.low, normalized)...)
	}

	dangerous := false
	switch cfg.Level {
	case domain.SafetyStrict:
		dangerous = len(patterns) > 0
	case domain.SafetyRelaxed:
		dangerous = severity == domain.SeverityCritical
	default: // moderate
		dangerous = severity.AtLeast(domain.SeverityHigh)
	}

	// A previously confirmed pattern silences the verdict, but a critical
	// match can never be pre-approved.
	if severity != domain.SeverityCritical {
		for _, entry := range cfg.ConfirmedPatterns {
			needle := strings.ToLower(strings.TrimSpace(entry))
			if needle == "" {
				continue
			}
			if strings.Contains(normalized, needle) {
				dangerous = false
				break
			}
		}
	}

	verdict := domain.SafetyVerdict{
		Dangerous: dangerous,
		Severity:  severity,
		Patterns:  patterns,
	}
	if dangerous {
		verdict.Reason = reasonForSeverity(severity)
	}
	return verdict
}

func reasonForSeverity(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical:
		return "this command can cause irreversible damage to your system"
	case domain.SeverityHigh:
		return "this command makes significant, hard-to-undo changes"
	case domain.SeverityMedium:
		return "this command runs privileged or mutating operations"
	default:
		return "this command changes state and is worth reviewing"
	}
}

var _ ports.Classifier = (*Classifier)(nil)
