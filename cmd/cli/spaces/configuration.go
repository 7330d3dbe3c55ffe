package spaces

import (
	"strings"
	"time"

	"github.com/temirov/spacesync/internal/spaces/shared"
	"github.com/temirov/spacesync/internal/spaces/synchronize"
)

const (
	spaceConfigurationKeyConstant            = "space"
	syncConfigurationKeyConstant             = "sync"
	linkConfigurationKeyConstant             = "link"
	configurationRootKeyConstant             = "root"
	configurationRemoteKeyConstant           = "remote"
	configurationStagingDirectoryKeyConstant = "staging_directory"
	configurationIgnoreEntriesKeyConstant    = "ignore_entries"
	configurationCommitMessageKeyConstant    = "commit_message"
	configurationCadenceMinutesKeyConstant   = "cadence_minutes"
	configurationTickIntervalKeyConstant     = "tick_interval"
	configurationAssumeYesKeyConstant        = "assume_yes"
	configurationKeySeparatorConstant        = "."
	defaultSpaceRootConstant                 = "."
	defaultTickIntervalConstant              = time.Minute
)

// Configuration captures the space command configuration sections.
type Configuration struct {
	Space SpaceConfiguration `mapstructure:"space"`
	Sync  SyncConfiguration  `mapstructure:"sync"`
	Link  LinkConfiguration  `mapstructure:"link"`
}

// SpaceConfiguration locates the space and its remote.
type SpaceConfiguration struct {
	Root             string   `mapstructure:"root"`
	Remote           string   `mapstructure:"remote"`
	StagingDirectory string   `mapstructure:"staging_directory"`
	IgnoreEntries    []string `mapstructure:"ignore_entries"`
}

// SyncConfiguration describes the sync and schedule commands.
type SyncConfiguration struct {
	CommitMessage  string        `mapstructure:"commit_message"`
	CadenceMinutes int           `mapstructure:"cadence_minutes"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
}

// LinkConfiguration describes the link and relink commands.
type LinkConfiguration struct {
	AssumeYes bool `mapstructure:"assume_yes"`
}

// DefaultConfiguration returns baseline configuration values for the space commands.
func DefaultConfiguration() Configuration {
	return Configuration{
		Space: SpaceConfiguration{
			Root:             defaultSpaceRootConstant,
			Remote:           shared.OriginRemoteNameConstant,
			StagingDirectory: shared.StagingDirectoryNameConstant,
			IgnoreEntries:    shared.DefaultIgnoreEntries(),
		},
		Sync: SyncConfiguration{
			CommitMessage:  "",
			CadenceMinutes: synchronize.DefaultCadenceMinutes,
			TickInterval:   defaultTickIntervalConstant,
		},
		Link: LinkConfiguration{
			AssumeYes: false,
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for the space commands.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		configurationKey(spaceConfigurationKeyConstant, configurationRootKeyConstant):             defaults.Space.Root,
		configurationKey(spaceConfigurationKeyConstant, configurationRemoteKeyConstant):           defaults.Space.Remote,
		configurationKey(spaceConfigurationKeyConstant, configurationStagingDirectoryKeyConstant): defaults.Space.StagingDirectory,
		configurationKey(spaceConfigurationKeyConstant, configurationIgnoreEntriesKeyConstant):    defaults.Space.IgnoreEntries,
		configurationKey(syncConfigurationKeyConstant, configurationCommitMessageKeyConstant):     defaults.Sync.CommitMessage,
		configurationKey(syncConfigurationKeyConstant, configurationCadenceMinutesKeyConstant):    defaults.Sync.CadenceMinutes,
		configurationKey(syncConfigurationKeyConstant, configurationTickIntervalKeyConstant):      defaults.Sync.TickInterval,
		configurationKey(linkConfigurationKeyConstant, configurationAssumeYesKeyConstant):         defaults.Link.AssumeYes,
	}
}

// Sanitize trims values and restores defaults for blank or invalid settings.
// An explicitly empty ignore list is kept.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Space.Root = strings.TrimSpace(configuration.Space.Root)
	if len(sanitized.Space.Root) == 0 {
		sanitized.Space.Root = defaults.Space.Root
	}
	sanitized.Space.Remote = strings.TrimSpace(configuration.Space.Remote)
	if len(sanitized.Space.Remote) == 0 {
		sanitized.Space.Remote = defaults.Space.Remote
	}
	sanitized.Space.StagingDirectory = strings.TrimSpace(configuration.Space.StagingDirectory)
	if !shared.IsStagingDirectoryName(sanitized.Space.StagingDirectory) {
		sanitized.Space.StagingDirectory = defaults.Space.StagingDirectory
	}
	if configuration.Space.IgnoreEntries == nil {
		sanitized.Space.IgnoreEntries = defaults.Space.IgnoreEntries
	} else {
		sanitized.Space.IgnoreEntries = trimEntries(configuration.Space.IgnoreEntries)
	}

	sanitized.Sync.CommitMessage = strings.TrimSpace(configuration.Sync.CommitMessage)
	if sanitized.Sync.CadenceMinutes <= 0 {
		sanitized.Sync.CadenceMinutes = defaults.Sync.CadenceMinutes
	}
	if sanitized.Sync.TickInterval <= 0 {
		sanitized.Sync.TickInterval = defaults.Sync.TickInterval
	}
	return sanitized
}

// Layout builds the space layout rooted at the resolved space directory.
func (configuration SpaceConfiguration) Layout(spaceRoot string) shared.SpaceLayout {
	return shared.SpaceLayout{
		Root:             spaceRoot,
		RemoteName:       configuration.Remote,
		StagingDirectory: configuration.StagingDirectory,
		IgnoreEntries:    append([]string{}, configuration.IgnoreEntries...),
	}
}

func configurationKey(parts ...string) string {
	return strings.Join(parts, configurationKeySeparatorConstant)
}

func trimEntries(entries []string) []string {
	trimmed := make([]string, 0, len(entries))
	for _, entry := range entries {
		candidate := strings.TrimSpace(entry)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	return trimmed
}
