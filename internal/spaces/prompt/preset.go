package prompt

import (
	"context"
	"strings"

	"github.com/temirov/spacesync/internal/spaces/shared"
)

// PresetPrompter answers prompts from preset values and delegates the rest
// to a fallback prompter. Without a fallback, unanswered prompts are cancelled.
type PresetPrompter struct {
	answers  map[shared.PromptField]string
	fallback shared.Prompter
}

// NewPresetPrompter constructs a PresetPrompter. Blank preset values are ignored.
func NewPresetPrompter(answers map[shared.PromptField]string, fallback shared.Prompter) *PresetPrompter {
	presets := make(map[shared.PromptField]string, len(answers))
	for field, answer := range answers {
		trimmed := strings.TrimSpace(answer)
		if len(trimmed) == 0 {
			continue
		}
		presets[field] = trimmed
	}
	return &PresetPrompter{answers: presets, fallback: fallback}
}

// Prompt returns the preset answer for the request field when one exists.
func (prompter *PresetPrompter) Prompt(executionContext context.Context, request shared.PromptRequest) (shared.PromptResult, error) {
	if answer, exists := prompter.answers[request.Field]; exists {
		return shared.Answered(answer), nil
	}
	if prompter.fallback == nil {
		return shared.Cancelled(), nil
	}
	return prompter.fallback.Prompt(executionContext, request)
}
