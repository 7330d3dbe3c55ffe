package spaces

import (
	"github.com/spf13/cobra"

	"github.com/temirov/spacesync/internal/spaces/link"
	"github.com/temirov/spacesync/internal/spaces/prompt"
	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	linkUseConstant              = "link"
	linkShortDescriptionConstant = "Link the space to a git repository"
	linkLongDescriptionConstant  = "link clones a git repository into the space, merges its content over the existing files and records the commit author."
	relinkUseConstant            = "relink"
	relinkShortDescription       = "Link the space to a different git repository"
	relinkLongDescription        = "relink replaces the repository the space is linked to. Content from the new repository overwrites matching files."
	assumeYesFlagNameConstant    = "yes"
	assumeYesFlagShorthand       = "y"
	assumeYesFlagUsageConstant   = "Overwrite an existing link without asking."
)

// LinkCommandBuilder assembles the link and relink commands.
type LinkCommandBuilder struct {
	Collaborators Collaborators
	Relink        bool
}

// Build constructs the link command, or relink when Relink is set.
func (builder *LinkCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   linkUseConstant,
		Short: linkShortDescriptionConstant,
		Long:  linkLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	if builder.Relink {
		command.Use = relinkUseConstant
		command.Short = relinkShortDescription
		command.Long = relinkLongDescription
	}

	command.Flags().BoolP(assumeYesFlagNameConstant, assumeYesFlagShorthand, false, assumeYesFlagUsageConstant)
	registerAnswerFlags(command)

	return command, nil
}

func (builder *LinkCommandBuilder) run(command *cobra.Command, arguments []string) error {
	services, servicesError := builder.Collaborators.resolveServices(command)
	if servicesError != nil {
		return servicesError
	}

	assumeYes := services.configuration.Link.AssumeYes
	if command.Flags().Changed(assumeYesFlagNameConstant) {
		assumeYes, _ = command.Flags().GetBool(assumeYesFlagNameConstant)
	}

	linkDependencies := link.Dependencies{
		GitManager: services.gitManager,
		Files:      services.fileExecutor,
		FileSystem: services.fileSystem,
		Prompter:   prompt.NewPresetPrompter(builder.Collaborators.presetAnswers(command, true), services.prompter),
		Notifier:   services.notifier,
		Logger:     services.logger,
	}
	linkOptions := link.Options{
		Layout:             services.layout,
		ConfirmationPolicy: shared.ConfirmationPolicyFromBool(assumeYes),
		Relink:             builder.Relink,
	}

	return outcomeError(command, link.Execute(command.Context(), linkDependencies, linkOptions))
}
