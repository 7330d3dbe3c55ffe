package spaces

import (
	"github.com/spf13/cobra"

	"github.com/temirov/spacesync/internal/spaces/credential"
	"github.com/temirov/spacesync/internal/spaces/prompt"
)

const (
	rotateCredentialUseConstant              = "rotate-credential"
	rotateCredentialShortDescriptionConstant = "Replace the access token embedded in the remote URL"
	rotateCredentialLongDescriptionConstant  = "rotate-credential rewrites the credential of the space's remote URL and keeps the host and path intact."
	rotateCredentialFlagUsageConstant        = "New access token (or username:token) used instead of prompting. Tokens from the environment are never used here."
)

// RotateCredentialCommandBuilder assembles the rotate-credential command.
type RotateCredentialCommandBuilder struct {
	Collaborators Collaborators
}

// Build constructs the rotate-credential command.
func (builder *RotateCredentialCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   rotateCredentialUseConstant,
		Short: rotateCredentialShortDescriptionConstant,
		Long:  rotateCredentialLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	registerCredentialFlag(command, rotateCredentialFlagUsageConstant)
	return command, nil
}

func (builder *RotateCredentialCommandBuilder) run(command *cobra.Command, arguments []string) error {
	services, servicesError := builder.Collaborators.resolveServices(command)
	if servicesError != nil {
		return servicesError
	}

	outcome := credential.Execute(command.Context(), credential.Dependencies{
		GitManager: services.gitManager,
		Prompter:   prompt.NewPresetPrompter(builder.Collaborators.presetAnswers(command, false), services.prompter),
		Notifier:   services.notifier,
		Logger:     services.logger,
	}, credential.Options{Layout: services.layout})

	return outcomeError(command, outcome)
}
