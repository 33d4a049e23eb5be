package translator

import (
	"context"
	"strings"

	"github.com/quiverlabs/nlsh/internal/domain"
	"github.com/quiverlabs/nlsh/internal/ports"
)

type heuristicTranslator struct {
	model domain.ModelDefinition
}

func newHeuristicTranslator(model domain.ModelDefinition) ports.Translator {
	return &heuristicTranslator{model: model}
}

func (t *heuristicTranslator) Name() string {
	return "heuristic"
}

func (t *heuristicTranslator) Model() domain.ModelDefinition {
	return t.model
}

func (t *heuristicTranslator) Translate(_ context.Context, req ports.TranslateRequest) (ports.Translation, error) {
	return ports.Translation{
		Command:   guessCommand(req.Prompt),
		Reasoning: "Generated locally due to missing AI credentials",
	}, nil
}

func guessCommand(prompt string) string {
	prompt = strings.ToLower(prompt)
	switch {
	case strings.Contains(prompt, "docker"):
		return "docker ps"
	case strings.Contains(prompt, "git status"):
		return "git status"
	case strings.Contains(prompt, "disk") && strings.Contains(prompt, "space"):
		return "df -h"
	case strings.Contains(prompt, "list") && strings.Contains(prompt, "file"):
		return "ls -la"
	case strings.Contains(prompt, "kubernetes") || strings.Contains(prompt, "pod"):
		return "kubectl get pods"
	default:
		return "echo \"No AI translator configured\""
	}
}
