package spaces

import (
	"github.com/spf13/cobra"

	"github.com/temirov/spacesync/internal/spaces/synchronize"
)

const (
	syncUseConstant              = "sync"
	syncShortDescriptionConstant = "Stage, commit, pull and push the space"
	syncLongDescriptionConstant  = "sync stages every change in the space, commits it, pulls remote changes and pushes the result."
	messageFlagNameConstant      = "message"
	messageFlagShorthand         = "m"
	messageFlagUsageConstant     = "Commit message. Defaults to a timestamped automatic message."
)

// SyncCommandBuilder assembles the sync command.
type SyncCommandBuilder struct {
	Collaborators Collaborators
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   syncUseConstant,
		Short: syncShortDescriptionConstant,
		Long:  syncLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().StringP(messageFlagNameConstant, messageFlagShorthand, "", messageFlagUsageConstant)
	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, arguments []string) error {
	services, servicesError := builder.Collaborators.resolveServices(command)
	if servicesError != nil {
		return servicesError
	}

	commitMessage := services.configuration.Sync.CommitMessage
	if command.Flags().Changed(messageFlagNameConstant) {
		commitMessage, _ = command.Flags().GetString(messageFlagNameConstant)
	}

	outcome := synchronize.Execute(command.Context(), synchronize.Dependencies{
		GitManager: services.gitManager,
		Notifier:   services.notifier,
		Clock:      services.clock,
		Logger:     services.logger,
	}, synchronize.Options{Layout: services.layout, CommitMessage: commitMessage})

	return outcomeError(command, outcome)
}
