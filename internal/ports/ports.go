// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces keep the application independent of concrete
// implementations like HTTP clients, SQLite, or the CLI framework.
package ports

import (
	"context"

	"github.com/quiverlabs/nlsh/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.nlsh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// TranslatorFactory builds translator instances based on model definitions.
// It abstracts the creation of different backend kinds (Anthropic, OpenAI,
// Ollama, offline heuristic).
type TranslatorFactory interface {
	ForModel(domain.ModelDefinition) (Translator, error)
}

// Translator produces a raw shell command string from natural language.
// The core never inspects how the command was produced; its output is
// always treated as untrusted.
type Translator interface {
	Name() string
	Model() domain.ModelDefinition
	Translate(context.Context, TranslateRequest) (Translation, error)
}

// TranslateRequest contains all data needed to generate a command.
type TranslateRequest struct {
	Prompt     string
	WorkingDir string
	Model      domain.ModelDefinition
	Debug      bool
}

// Translation contains the generated command and explanatory text.
type Translation struct {
	Command   string
	Reasoning string
}

// Classifier evaluates a candidate command against the pattern catalog and
// the user's policy inputs. Classification is pure and total: it never
// errors, never mutates its inputs, and always yields a verdict.
type Classifier interface {
	Classify(command string, cfg domain.SafetyConfig) domain.SafetyVerdict
}

// CommandExecutor runs shell commands in the configured shell environment.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// ConfirmationPrompter handles interactive user confirmations for commands
// held in the pending slot.
type ConfirmationPrompter interface {
	Confirm(pending domain.PendingCommand) (ConfirmChoice, error)
	Enabled() bool
}

// ConfirmChoice is the user's resolution of a pending command.
type ConfirmChoice string

const (
	ChoiceConfirm ConfirmChoice = "confirm"
	ChoiceCancel  ConfirmChoice = "cancel"
	ChoiceEdit    ConfirmChoice = "edit"
	ChoiceCopy    ConfirmChoice = "copy"
)

// Clipboard provides cross-platform clipboard integration for copying
// commands without executing them.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// HistoryRepository persists command history records.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// CacheRepository stores translator responses keyed by prompt hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	Dir() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
