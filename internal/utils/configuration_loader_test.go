package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spacesync/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTSPACESYNC"
	testStagingDirectoryKeyConstant                = "space.staging_directory"
	testCadenceKeyConstant                         = "sync.cadence_minutes"
	testIgnoreEntriesKeyConstant                   = "space.ignore_entries"
	testIgnoreEntriesEnvironmentVariableConstant   = "TESTSPACESYNC_SPACE_IGNORE_ENTRIES"
	testStagingEnvironmentVariableConstant         = "TESTSPACESYNC_SPACE_STAGING_DIRECTORY"
	testCadenceEnvironmentVariableConstant         = "TESTSPACESYNC_SYNC_CADENCE_MINUTES"
	testDefaultStagingDirectoryConstant            = "_sb_git"
	testEmbeddedStagingDirectoryConstant           = "_embedded_git"
	testFileStagingDirectoryConstant               = "_file_git"
	testEnvironmentStagingDirectoryConstant        = "_environment_git"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "space:\n  staging_directory: %s\nsync:\n  cadence_minutes: %d\n"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
	testUserConfigurationDirectoryNameConstant     = "spacesync"
	testXDGConfigHomeDirectoryNameConstant         = "config"
)

type configurationFixture struct {
	Space configurationSpaceFixture `mapstructure:"space"`
	Sync  configurationSyncFixture  `mapstructure:"sync"`
}

type configurationSpaceFixture struct {
	StagingDirectory string   `mapstructure:"staging_directory"`
	IgnoreEntries    []string `mapstructure:"ignore_entries"`
}

type configurationSyncFixture struct {
	CadenceMinutes int `mapstructure:"cadence_minutes"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                     string
		embeddedStaging          string
		fileStaging              string
		fileCadence              int
		environmentStaging       string
		environmentCadence       string
		expectedStagingDirectory string
		expectedCadenceMinutes   int
	}{
		{
			name:                     "defaults are applied",
			expectedStagingDirectory: testDefaultStagingDirectoryConstant,
			expectedCadenceMinutes:   5,
		},
		{
			name:                     "embedded configuration merges",
			embeddedStaging:          testEmbeddedStagingDirectoryConstant,
			expectedStagingDirectory: testEmbeddedStagingDirectoryConstant,
			expectedCadenceMinutes:   10,
		},
		{
			name:                     "config file overrides embedded",
			embeddedStaging:          testEmbeddedStagingDirectoryConstant,
			fileStaging:              testFileStagingDirectoryConstant,
			fileCadence:              15,
			expectedStagingDirectory: testFileStagingDirectoryConstant,
			expectedCadenceMinutes:   15,
		},
		{
			name:                     "environment overrides file",
			fileStaging:              testFileStagingDirectoryConstant,
			fileCadence:              15,
			environmentStaging:       testEnvironmentStagingDirectoryConstant,
			environmentCadence:       "30",
			expectedStagingDirectory: testEnvironmentStagingDirectoryConstant,
			expectedCadenceMinutes:   30,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileStaging) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileStaging, testCase.fileCadence)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentStaging) > 0 {
				testInstance.Setenv(testStagingEnvironmentVariableConstant, testCase.environmentStaging)
			}
			if len(testCase.environmentCadence) > 0 {
				testInstance.Setenv(testCadenceEnvironmentVariableConstant, testCase.environmentCadence)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			if len(testCase.embeddedStaging) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedStaging, 10)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testStagingDirectoryKeyConstant: testDefaultStagingDirectoryConstant,
				testCadenceKeyConstant:          5,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedStagingDirectory, loadedConfiguration.Space.StagingDirectory)
			require.Equal(testInstance, testCase.expectedCadenceMinutes, loadedConfiguration.Sync.CadenceMinutes)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderSearchesUserConfigurationDirectory(testInstance *testing.T) {
	workingDirectoryPath := testInstance.TempDir()
	homeDirectoryPath := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectoryPath)
	testInstance.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDirectoryPath, testXDGConfigHomeDirectoryNameConstant))

	userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir()
	require.NoError(testInstance, userConfigurationDirectoryError)
	userConfigurationDirectoryPath := filepath.Join(userConfigurationBaseDirectoryPath, testUserConfigurationDirectoryNameConstant)
	require.NoError(testInstance, os.MkdirAll(userConfigurationDirectoryPath, 0o755))

	configurationFilePath := filepath.Join(userConfigurationDirectoryPath, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testFileStagingDirectoryConstant, 20)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{workingDirectoryPath, userConfigurationDirectoryPath},
	)

	loadedConfiguration := configurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", map[string]any{testStagingDirectoryKeyConstant: testDefaultStagingDirectoryConstant}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testFileStagingDirectoryConstant, loadedConfiguration.Space.StagingDirectory)
	require.Equal(testInstance, 20, loadedConfiguration.Sync.CadenceMinutes)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	configurationFilePath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("space: [unterminated\n"), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &configurationFixture{})
	require.Error(testInstance, loadError)
}

func TestConfigurationLoaderSplitsEnvironmentLists(testInstance *testing.T) {
	testInstance.Setenv(testIgnoreEntriesEnvironmentVariableConstant, "_plug/,Library/")

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	defaultValues := map[string]any{
		testIgnoreEntriesKeyConstant: []string{".silverbullet.db*"},
	}

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"_plug/", "Library/"}, loadedConfiguration.Space.IgnoreEntries)
}

func TestConfigurationLoaderRejectsMissingExplicitFile(testInstance *testing.T) {
	missingFilePath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	_, loadError := configurationLoader.LoadConfiguration(missingFilePath, nil, &configurationFixture{})
	require.Error(testInstance, loadError)
}

func TestConfigurationSearchPaths(testInstance *testing.T) {
	configurationHome := testInstance.TempDir()
	testInstance.Setenv("XDG_CONFIG_HOME", configurationHome)

	userConfigurationDirectory, userConfigurationError := os.UserConfigDir()
	require.NoError(testInstance, userConfigurationError)

	require.Equal(testInstance, []string{".", filepath.Join(userConfigurationDirectory, testUserConfigurationDirectoryNameConstant)}, utils.ConfigurationSearchPaths(testUserConfigurationDirectoryNameConstant))
	require.Equal(testInstance, []string{"."}, utils.ConfigurationSearchPaths(""))
}
