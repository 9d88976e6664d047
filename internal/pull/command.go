package pull

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitfleet/internal/repos/dependencies"
	"gitfleet/internal/repos/shared"
	rootutils "gitfleet/internal/utils/roots"
)

const (
	commandUseConstant              = "pull [roots...]"
	commandShortDescriptionConstant = "Stash local changes and pull the upstream branch in every repository"
	commandLongDescriptionConstant  = "pull walks the provided directory roots and, for each git repository, stashes any local changes, checks out the configured branch, and pulls it from the configured remote."
	branchFlagNameConstant          = "branch"
	branchFlagDescriptionConstant   = "Branch to check out and pull (defaults to master)"
	remoteFlagNameConstant          = "remote"
	remoteFlagDescriptionConstant   = "Remote to pull from (defaults to origin)"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the pull command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryDiscoverer         shared.RepositoryDiscoverer
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the pull command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	command.Flags().String(branchFlagNameConstant, "", branchFlagDescriptionConstant)
	command.Flags().String(remoteFlagNameConstant, "", remoteFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	branchName, branchResolveError := resolveFlagOverride(command, branchFlagNameConstant, configuration.BranchName)
	if branchResolveError != nil {
		return branchResolveError
	}
	remoteName, remoteResolveError := resolveFlagOverride(command, remoteFlagNameConstant, configuration.RemoteName)
	if remoteResolveError != nil {
		return remoteResolveError
	}

	repositoryRoots := rootutils.Resolve(arguments, configuration.RepositoryRoots)

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.GitRepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceCreationError := NewService(Dependencies{
		Discoverer:        dependencies.ResolveRepositoryDiscoverer(builder.RepositoryDiscoverer),
		RepositoryManager: repositoryManager,
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, pullError := service.Pull(command.Context(), Options{
		RepositoryRoots: repositoryRoots,
		BranchName:      branchName,
		RemoteName:      remoteName,
	})
	return pullError
}

func resolveFlagOverride(command *cobra.Command, flagName string, configuredValue string) (string, error) {
	flagValue, flagError := command.Flags().GetString(flagName)
	if flagError != nil {
		return "", flagError
	}
	if command.Flags().Changed(flagName) {
		return flagValue, nil
	}
	return configuredValue, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
