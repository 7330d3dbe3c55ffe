package shared

import "strings"

// PromptField identifies what a prompt collects so preset answers can be matched.
type PromptField string

// Prompt fields used by the space workflows.
const (
	PromptFieldRemoteURL    PromptField = PromptField("url")
	PromptFieldCredential   PromptField = PromptField("credential")
	PromptFieldAuthorName   PromptField = PromptField("name")
	PromptFieldAuthorEmail  PromptField = PromptField("email")
	PromptFieldConfirmation PromptField = PromptField("confirmation")
)

// PromptRequest describes a single prompt.
type PromptRequest struct {
	Field   PromptField
	Message string
	Secret  bool
}

// PromptResult is either Cancelled or Answered with a value.
type PromptResult struct {
	value    string
	answered bool
}

// Answered constructs a PromptResult carrying the user's response.
func Answered(value string) PromptResult {
	return PromptResult{value: value, answered: true}
}

// Cancelled constructs a PromptResult for a dismissed prompt.
func Cancelled() PromptResult {
	return PromptResult{}
}

// Value returns the trimmed response. ok is false when the prompt was
// cancelled or the response is blank.
func (result PromptResult) Value() (string, bool) {
	if !result.answered {
		return "", false
	}
	trimmed := strings.TrimSpace(result.value)
	return trimmed, len(trimmed) > 0
}

// IsAffirmative reports whether the response is "y" or "yes" in any case.
func (result PromptResult) IsAffirmative() bool {
	value, ok := result.Value()
	if !ok {
		return false
	}
	switch strings.ToLower(value) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
