// Package safety implements the command-risk classification engine: a tiered
// pattern catalog, a pure classifier over untrusted command strings, and the
// policy gate that turns verdicts into execution decisions.
package safety

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/pkg/filesystem"
)

// Rule is one immutable risk rule: a severity tier, a regex predicate over
// the normalized command text, and a label used in reporting.
type Rule struct {
	Label    string
	Severity domain.Severity
	re       *regexp.Regexp
}

// Matches reports whether the rule applies to the normalized command.
func (r Rule) Matches(normalized string) bool {
	return r.re.MatchString(normalized)
}

// Pattern returns the rule's source regex, for reporting and inspection.
func (r Rule) Pattern() string {
	return r.re.String()
}

// Catalog holds the four ordered rule tiers. It is built once at startup and
// never mutated afterwards.
type Catalog struct {
	critical []Rule
	high     []Rule
	medium   []Rule
	low      []Rule
}

// rulesFile is the YAML schema for an optional user policy override.
type rulesFile struct {
	Rules struct {
		Critical []ruleSpec `yaml:"critical"`
		High     []ruleSpec `yaml:"high"`
		Medium   []ruleSpec `yaml:"medium"`
		Low      []ruleSpec `yaml:"low"`
	} `yaml:"rules"`
}

type ruleSpec struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

// NewCatalog loads catalog rules from disk, falling back to the built-in
// defaults when the file is missing or a tier is empty.
func NewCatalog(path string) (*Catalog, error) {
	spec, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return buildCatalog(spec)
}

// DefaultCatalog builds the catalog from the built-in rule tables only. It
// never touches the filesystem, so the defaults cannot be shadowed by any
// file a user (or another local user) plants.
func DefaultCatalog() *Catalog {
	var spec rulesFile
	applyDefaultRules(&spec)
	catalog, err := buildCatalog(spec)
	if err != nil {
		// Built-in patterns are compile-tested; reaching this is a bug.
		panic(err)
	}
	return catalog
}

func buildCatalog(spec rulesFile) (*Catalog, error) {
	catalog := &Catalog{}
	for _, tier := range []struct {
		specs    []ruleSpec
		severity domain.Severity
		dest     *[]Rule
	}{
		{spec.Rules.Critical, domain.SeverityCritical, &catalog.critical},
		{spec.Rules.High, domain.SeverityHigh, &catalog.high},
		{spec.Rules.Medium, domain.SeverityMedium, &catalog.medium},
		{spec.Rules.Low, domain.SeverityLow, &catalog.low},
	} {
		for _, rs := range tier.specs {
			re, err := regexp.Compile(rs.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", rs.Label, err)
			}
			*tier.dest = append(*tier.dest, Rule{
				Label:    rs.Label,
				Severity: tier.severity,
				re:       re,
			})
		}
	}
	return catalog, nil
}

// All returns every rule in tier order (critical through low).
func (c *Catalog) All() []Rule {
	out := make([]Rule, 0, len(c.critical)+len(c.high)+len(c.medium)+len(c.low))
	out = append(out, c.critical...)
	out = append(out, c.high...)
	out = append(out, c.medium...)
	out = append(out, c.low...)
	return out
}

// matchTier returns the labels of every rule in the tier that matches.
func matchTier(rules []Rule, normalized string) []string {
	var labels []string
	for _, rule := range rules {
		if rule.Matches(normalized) {
			labels = append(labels, rule.Label)
		}
	}
	return labels
}

func loadRules(path string) (rulesFile, error) {
	var spec rulesFile
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to defaults
		applyDefaultRules(&spec)
		return spec, nil
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return rulesFile{}, err
	}
	applyDefaultRules(&spec)
	return spec, nil
}

func applyDefaultRules(spec *rulesFile) {
	if len(spec.Rules.Critical) == 0 {
		spec.Rules.Critical = defaultCriticalRules()
	}
	if len(spec.Rules.High) == 0 {
		spec.Rules.High = defaultHighRules()
	}
	if len(spec.Rules.Medium) == 0 {
		spec.Rules.Medium = defaultMediumRules()
	}
	if len(spec.Rules.Low) == 0 {
		spec.Rules.Low = defaultLowRules()
	}
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(filesystem.UserHomeDir(), ".nlsh", "policy.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	// Relative paths resolve against the working directory, matching the
	// config loader's expansion.
	return filepath.Clean(path)
}

// Patterns below match against trimmed, lowercased command text.

func defaultCriticalRules() []ruleSpec {
	return []ruleSpec{
		{Pattern: `rm\s+(-[a-z]+\s+)*(/|/\*)(\s|$)`, Label: "recursive-delete-root"},
		{Pattern: `rm\s+(-[a-z]+\s+)*(~|\$home)/?(\s|$)`, Label: "recursive-delete-home"},
		{Pattern: `dd\s+[^|]*of=/dev/`, Label: "raw-disk-write"},
		{Pattern: `mkfs(\.[a-z0-9]+)?\s`, Label: "filesystem-format"},
		{Pattern: `>\s*/dev/(sd[a-z]|nvme|hd[a-z])`, Label: "block-device-overwrite"},
		{Pattern: `:\s*\(\s*\)\s*\{[^}]*:\s*\|\s*:`, Label: "fork-bomb"},
		{Pattern: `(curl|wget)\s+[^|]*\|\s*(sudo\s+)?(ba|z)?sh`, Label: "remote-script-pipe"},
		{Pattern: `chmod\s+(-[a-z]+\s+)*777\s+/(\s|$)`, Label: "permission-bomb-root"},
	}
}

func defaultHighRules() []ruleSpec {
	return []ruleSpec{
		{Pattern: `rm\s+(-[a-z]*[rf][a-z]*)(\s|$)`, Label: "forced-recursive-delete"},
		{Pattern: `sudo\s+rm\s`, Label: "privileged-delete"},
		{Pattern: `(pkill|killall)\s`, Label: "mass-process-kill"},
		{Pattern: `kill\s+-9\s+-1(\s|$)`, Label: "kill-all-processes"},
		{Pattern: `(shutdown|reboot|halt|poweroff)(\s|$)`, Label: "system-shutdown"},
		{Pattern: `systemctl\s+(stop|disable)\s`, Label: "service-stop"},
	}
}

func defaultMediumRules() []ruleSpec {
	return []ruleSpec{
		{Pattern: `(^|\s|\|)(sudo|doas)\s`, Label: "privilege-escalation"},
		{Pattern: `(^|\s|\|)rm\s`, Label: "file-delete"},
		{Pattern: `chmod\s+-[a-z]*r`, Label: "recursive-chmod"},
		{Pattern: `chown\s+-[a-z]*r`, Label: "recursive-chown"},
		{Pattern: `(apt(-get)?|yum|dnf|brew|npm|pip3?)\s+(remove|uninstall|purge)(\s|$)`, Label: "package-removal"},
		{Pattern: `git\s+push\s+[^|]*(--force|-f)(\s|$)`, Label: "git-force-push"},
		{Pattern: `git\s+reset\s+--hard`, Label: "git-hard-reset"},
	}
}

func defaultLowRules() []ruleSpec {
	return []ruleSpec{
		{Pattern: `git\s+checkout(\s|$)`, Label: "git-checkout"},
		{Pattern: `git\s+stash(\s|$)`, Label: "git-stash"},
		{Pattern: `(apt(-get)?|yum|dnf|brew|npm|pip3?)\s+install(\s|$)`, Label: "package-install"},
	}
}
