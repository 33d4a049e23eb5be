package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quiverlabs/nlsh/internal/domain"
)

func TestDefaultCatalogCompiles(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog.All()) == 0 {
		t.Fatal("default catalog must not be empty")
	}
}

func TestNewCatalogMissingFileFallsBack(t *testing.T) {
	catalog, err := NewCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	if len(catalog.critical) == 0 || len(catalog.low) == 0 {
		t.Fatalf("missing file must load built-in defaults, got %d rules", len(catalog.All()))
	}
}

func TestNewCatalogCustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	raw := `rules:
  critical:
    - pattern: 'drop\s+database'
      label: drop-database
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	catalog, err := NewCatalog(path)
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	if len(catalog.critical) != 1 || catalog.critical[0].Label != "drop-database" {
		t.Fatalf("custom critical tier not loaded: %+v", catalog.critical)
	}
	// Tiers absent from the file keep the defaults.
	if len(catalog.high) == 0 || len(catalog.medium) == 0 {
		t.Fatal("unspecified tiers must fall back to built-in rules")
	}

	verdict := NewClassifier(catalog).Classify("DROP DATABASE prod", domain.SafetyConfig{Level: domain.SafetyModerate})
	if verdict.Severity != domain.SeverityCritical {
		t.Fatalf("custom rule did not match: %+v", verdict)
	}
}

func TestNewCatalogInvalidRegex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	raw := `rules:
  high:
    - pattern: '([unclosed'
      label: broken
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	if _, err := NewCatalog(path); err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestDefaultCatalogIgnoresFilesystem(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	raw := `rules:
  critical:
    - pattern: zzz-never-matches
      label: planted-rule
`
	if err := os.WriteFile(filepath.Join(tmp, "nlsh-no-such-policy.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write planted file: %v", err)
	}

	catalog := DefaultCatalog()
	for _, rule := range catalog.All() {
		if rule.Label == "planted-rule" {
			t.Fatal("built-in catalog must not read rules from disk")
		}
	}

	verdict := NewClassifier(catalog).Classify("rm -rf /", domain.SafetyConfig{Level: domain.SafetyModerate})
	if verdict.Severity != domain.SeverityCritical || !verdict.Dangerous {
		t.Fatalf("built-in tiers were replaced: %+v", verdict)
	}
}

func TestNewCatalogRelativePathUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	raw := `rules:
  critical:
    - pattern: 'drop\s+table'
      label: drop-table
`
	if err := os.WriteFile(filepath.Join(dir, "policy.yaml"), []byte(raw), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	catalog, err := NewCatalog("policy.yaml")
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	if len(catalog.critical) != 1 || catalog.critical[0].Label != "drop-table" {
		t.Fatalf("relative rules file not loaded from cwd: %+v", catalog.critical)
	}
}

func TestCatalogAllOrdersByTier(t *testing.T) {
	catalog := DefaultCatalog()
	last := domain.SeverityCritical
	for _, rule := range catalog.All() {
		if rule.Severity > last {
			t.Fatalf("rules out of tier order at %s", rule.Label)
		}
		last = rule.Severity
	}
}
