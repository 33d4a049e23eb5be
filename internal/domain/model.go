// Package domain defines core business entities and value objects for nlsh.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

// ModelDefinition describes a translator backend declared in the config file.
// Each model represents a specific AI service endpoint with its authentication
// and generation parameters.
type ModelDefinition struct {
	Name       string          `yaml:"name"`
	Endpoint   string          `yaml:"endpoint"`
	AuthEnvVar string          `yaml:"auth_env_var"`
	OrgEnvVar  string          `yaml:"org_env_var"`
	ModelID    string          `yaml:"model_id"`
	MaxTokens  int             `yaml:"max_tokens"`
	Prompt     []PromptMessage `yaml:"prompt"`
}

// PromptMessage follows the role/content pair required by most chat APIs.
type PromptMessage struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// TranslatorKind identifies which wire protocol a translator speaks.
type TranslatorKind string

const (
	TranslatorKindAnthropic TranslatorKind = "anthropic"
	TranslatorKindOpenAI    TranslatorKind = "openai"
	TranslatorKindOllama    TranslatorKind = "ollama"
	TranslatorKindHeuristic TranslatorKind = "heuristic"
)
