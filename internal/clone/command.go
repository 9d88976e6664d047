package clone

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitfleet/internal/catalog"
	"gitfleet/internal/repos/dependencies"
	"gitfleet/internal/repos/shared"
	pathutils "gitfleet/internal/utils/path"
)

const (
	commandUseConstant              = "clone"
	commandShortDescriptionConstant = "Clone every cataloged repository that is not present locally"
	commandLongDescriptionConstant  = "clone reads the catalog file, derives a destination path from each recorded remote, and clones every repository whose destination does not already exist."
	catalogFlagNameConstant         = "catalog"
	catalogFlagDescriptionConstant  = "Path to the catalog file (defaults to ~/.git_projects.json)"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the clone command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	CatalogLoader                CatalogLoader
	FileSystem                   shared.FileSystem
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the clone command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(catalogFlagNameConstant, "", catalogFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
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

	catalogLoader := builder.CatalogLoader
	if catalogLoader == nil {
		catalogLoader = catalog.NewStore()
	}

	service, serviceCreationError := NewService(Dependencies{
		CatalogLoader:     catalogLoader,
		RepositoryManager: repositoryManager,
		FileSystem:        dependencies.ResolveFileSystem(builder.FileSystem),
		Reporter:          shared.NewWriterReporter(command.OutOrStdout()),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, cloneError := service.Clone(command.Context(), Options{CatalogPath: catalogPath})
	return cloneError
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
