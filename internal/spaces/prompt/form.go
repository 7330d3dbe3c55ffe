package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	affirmativeAnswerConstant = "yes"
	negativeAnswerConstant    = "no"
)

// FormRunner runs a huh form until it is submitted or aborted.
type FormRunner func(executionContext context.Context, form *huh.Form) error

// FormPrompter renders each prompt as a single-field terminal form. Secret
// prompts mask the typed characters.
type FormPrompter struct {
	input  io.Reader
	output io.Writer
	runner FormRunner
}

// FormPrompterOption customizes a FormPrompter.
type FormPrompterOption func(*FormPrompter)

// WithFormRunner replaces the function used to run forms.
func WithFormRunner(runner FormRunner) FormPrompterOption {
	return func(prompter *FormPrompter) {
		if runner != nil {
			prompter.runner = runner
		}
	}
}

// NewFormPrompter constructs a FormPrompter reading from input and drawing to output.
func NewFormPrompter(input io.Reader, output io.Writer, options ...FormPrompterOption) *FormPrompter {
	prompter := &FormPrompter{input: input, output: output, runner: runForm}
	for _, option := range options {
		if option != nil {
			option(prompter)
		}
	}
	return prompter
}

// Prompt runs the form for the request. An aborted form is a cancelled prompt.
func (prompter *FormPrompter) Prompt(executionContext context.Context, request shared.PromptRequest) (shared.PromptResult, error) {
	if request.Field == shared.PromptFieldConfirmation {
		return prompter.confirm(executionContext, request)
	}

	var response string
	input := huh.NewInput().Title(request.Message).Value(&response)
	if request.Secret {
		input = input.EchoMode(huh.EchoModePassword)
	}

	if runError := prompter.run(executionContext, huh.NewForm(huh.NewGroup(input))); runError != nil {
		return resolveFormError(runError)
	}
	return shared.Answered(response), nil
}

func (prompter *FormPrompter) confirm(executionContext context.Context, request shared.PromptRequest) (shared.PromptResult, error) {
	var confirmed bool
	confirmation := huh.NewConfirm().Title(request.Message).Value(&confirmed)

	if runError := prompter.run(executionContext, huh.NewForm(huh.NewGroup(confirmation))); runError != nil {
		return resolveFormError(runError)
	}
	if confirmed {
		return shared.Answered(affirmativeAnswerConstant), nil
	}
	return shared.Answered(negativeAnswerConstant), nil
}

func (prompter *FormPrompter) run(executionContext context.Context, form *huh.Form) error {
	if prompter.input != nil {
		form = form.WithInput(prompter.input)
	}
	if prompter.output != nil {
		form = form.WithOutput(prompter.output)
	}
	return prompter.runner(executionContext, form)
}

func resolveFormError(runError error) (shared.PromptResult, error) {
	if errors.Is(runError, huh.ErrUserAborted) || errors.Is(runError, huh.ErrTimeout) {
		return shared.Cancelled(), nil
	}
	return shared.Cancelled(), runError
}

func runForm(executionContext context.Context, form *huh.Form) error {
	return form.RunWithContext(executionContext)
}
