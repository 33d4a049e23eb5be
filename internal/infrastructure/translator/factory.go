// Package translator adapts remote AI endpoints (and an offline heuristic)
// to the Translator port. The rest of the system treats its output as an
// untrusted command string.
package translator

import (
	"net/http"
	"strings"
	"time"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/ports"
)

// Factory builds translator instances based on model definitions.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a factory with a shared HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ForModel implements ports.TranslatorFactory.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Translator, error) {
	switch inferKind(model.Endpoint, model.Name) {
	case domain.TranslatorKindAnthropic:
		return newHTTPTranslator("anthropic", model, f.httpClient, anthropicAdapter()), nil
	case domain.TranslatorKindOpenAI:
		return newHTTPTranslator("openai", model, f.httpClient, openaiAdapter()), nil
	case domain.TranslatorKindOllama:
		return newHTTPTranslator("ollama", model, f.httpClient, ollamaAdapter()), nil
	default:
		return newHeuristicTranslator(model), nil
	}
}

func inferKind(endpoint string, name string) domain.TranslatorKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return domain.TranslatorKindAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return domain.TranslatorKindOpenAI
	case strings.Contains(nameLower, "ollama"), strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"):
		return domain.TranslatorKindOllama
	default:
		return domain.TranslatorKindHeuristic
	}
}

var _ ports.TranslatorFactory = (*Factory)(nil)
