package histgrep

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitfleet/internal/repos/dependencies"
	"gitfleet/internal/repos/shared"
	rootutils "gitfleet/internal/utils/roots"
)

const (
	commandUseConstant              = "grep <pattern>"
	commandShortDescriptionConstant = "Search the full history of every discovered repository"
	commandLongDescriptionConstant  = "grep enumerates every revision of every git repository beneath the configured roots and prints each line matching the pattern, prefixed by the repository path."
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the grep command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryDiscoverer         shared.RepositoryDiscoverer
	GitRepositoryManager         shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the grep command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	repositoryRoots := rootutils.Resolve(nil, configuration.RepositoryRoots)

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

	_, searchError := service.Search(command.Context(), Options{
		RepositoryRoots: repositoryRoots,
		Pattern:         arguments[0],
	})
	return searchError
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
