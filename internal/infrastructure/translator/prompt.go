package translator

import (
	"fmt"
	"runtime"

	"github.com/quiverlabs/nlsh/internal/domain"
)

const systemPrompt = `You translate natural language into a single shell command.
Reply with exactly one command inside a fenced code block.
Do not explain unless asked. Never invent flags.`

// renderPrompt builds the chat messages for a translation request. A model
// may override the system prompt from its config entry.
func renderPrompt(model domain.ModelDefinition, prompt, workingDir string) []domain.PromptMessage {
	if len(model.Prompt) > 0 {
		messages := make([]domain.PromptMessage, 0, len(model.Prompt)+1)
		messages = append(messages, model.Prompt...)
		messages = append(messages, domain.PromptMessage{Role: "user", Content: prompt})
		return messages
	}

	return []domain.PromptMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "system", Content: fmt.Sprintf("OS: %s. Working directory: %s.", runtime.GOOS, workingDir)},
		{Role: "user", Content: prompt},
	}
}
