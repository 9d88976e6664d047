package scan

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitfleet/internal/catalog"
	"gitfleet/internal/repos/dependencies"
	"gitfleet/internal/repos/shared"
	pathutils "gitfleet/internal/utils/path"
	rootutils "gitfleet/internal/utils/roots"
)

const (
	commandUseConstant              = "scan [roots...]"
	commandShortDescriptionConstant = "Record origin remotes of discovered repositories"
	commandLongDescriptionConstant  = "scan walks the provided directory roots, finds every git repository, and writes the origin remote of each into the catalog file."
	catalogFlagNameConstant         = "catalog"
	catalogFlagDescriptionConstant  = "Path to the catalog file (defaults to ~/.git_projects.json)"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the scan command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	RepositoryDiscoverer         shared.RepositoryDiscoverer
	GitRepositoryManager         shared.GitRepositoryManager
	CatalogWriter                CatalogWriter
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the scan command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	command.Flags().String(catalogFlagNameConstant, "", catalogFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	catalogFlagValue, catalogFlagError := command.Flags().GetString(catalogFlagNameConstant)
	if catalogFlagError != nil {
		return catalogFlagError
	}
	configuredCatalogPath := configuration.CatalogPath
	if command.Flags().Changed(catalogFlagNameConstant) {
		configuredCatalogPath = catalogFlagValue
	}
	catalogPath := catalog.ResolveLocation(configuredCatalogPath, pathutils.NewHomeExpander())

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

	catalogWriter := builder.CatalogWriter
	if catalogWriter == nil {
		catalogWriter = catalog.NewStore()
	}

	service, serviceCreationError := NewService(Dependencies{
		Discoverer:        dependencies.ResolveRepositoryDiscoverer(builder.RepositoryDiscoverer),
		RepositoryManager: repositoryManager,
		CatalogWriter:     catalogWriter,
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, scanError := service.Scan(command.Context(), Options{
		RepositoryRoots: repositoryRoots,
		CatalogPath:     catalogPath,
	})
	return scanError
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
