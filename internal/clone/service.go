package clone

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gitfleet/internal/catalog"
	"gitfleet/internal/gitrepo"
	"gitfleet/internal/repos/shared"
)

const (
	catalogLoaderMissingMessageConstant    = "catalog loader not configured"
	managerMissingMessageConstant          = "repository manager not configured"
	fileSystemMissingMessageConstant       = "file system not configured"
	catalogLoadFailureTemplateConstant     = "unable to load catalog: %w"
	unparseableRemoteTemplateConstant      = "CLONE-SKIP: unrecognized remote %q\n"
	destinationExistsTemplateConstant      = "CLONE-SKIP: %s already exists\n"
	destinationStatFailureTemplateConstant = "CLONE-FAIL: %s (stat: %v)\n"
	directoryCreateFailureTemplateConstant = "CLONE-FAIL: %s (mkdir: %v)\n"
	cloneFailureTemplateConstant           = "CLONE-FAIL: %s (%v)\n"
	cloneCompletedTemplateConstant         = "CLONE-DONE: %s -> %s\n"
	directoryPermissionsConstant           = 0o755
)

// ErrCatalogLoaderNotConfigured indicates the catalog loader dependency was missing.
var ErrCatalogLoaderNotConfigured = errors.New(catalogLoaderMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(managerMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// CatalogLoader reads an ordered record list from a catalog path.
type CatalogLoader interface {
	Load(catalogPath string) ([]catalog.RemoteRecord, error)
}

// Dependencies enumerates external collaborators required for clones.
type Dependencies struct {
	CatalogLoader     CatalogLoader
	RepositoryManager shared.GitRepositoryManager
	FileSystem        shared.FileSystem
	Reporter          shared.Reporter
}

// Options configures a catalog clone pass.
type Options struct {
	CatalogPath string
}

// Result captures the observable outcomes of a clone pass.
type Result struct {
	ClonedPaths     []string
	SkippedRemotes  []string
	FailedRemotes   []string
	ExaminedRecords int
}

// Service clones the catalog's repositories into paths derived from their remotes.
type Service struct {
	catalogLoader     CatalogLoader
	repositoryManager shared.GitRepositoryManager
	fileSystem        shared.FileSystem
	reporter          shared.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.CatalogLoader == nil {
		return nil, ErrCatalogLoaderNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Service{
		catalogLoader:     dependencies.CatalogLoader,
		repositoryManager: dependencies.RepositoryManager,
		fileSystem:        dependencies.FileSystem,
		reporter:          reporter,
	}, nil
}

// Clone reads the catalog and clones every recorded remote whose derived path
// does not already exist. A missing or corrupt catalog aborts the pass;
// unrecognized remotes and failed clones are reported and the pass continues.
func (service *Service) Clone(executionContext context.Context, options Options) (Result, error) {
	records, loadError := service.catalogLoader.Load(options.CatalogPath)
	if loadError != nil {
		return Result{}, fmt.Errorf(catalogLoadFailureTemplateConstant, loadError)
	}

	result := Result{ExaminedRecords: len(records)}
	for _, record := range records {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		trimmedRemote := strings.TrimSpace(record.Remote)
		parsedRemote, parseError := gitrepo.ParseRemoteURL(trimmedRemote)
		if parseError != nil {
			service.reporter.Printf(unparseableRemoteTemplateConstant, record.Remote)
			result.SkippedRemotes = append(result.SkippedRemotes, record.Remote)
			continue
		}

		destinationPath := filepath.FromSlash(parsedRemote.RelativePath())
		_, statError := service.fileSystem.Stat(destinationPath)
		switch {
		case statError == nil:
			service.reporter.Printf(destinationExistsTemplateConstant, destinationPath)
			result.SkippedRemotes = append(result.SkippedRemotes, trimmedRemote)
			continue
		case !errors.Is(statError, fs.ErrNotExist):
			// An unreadable destination is a failure, not an absent path.
			service.reporter.Printf(destinationStatFailureTemplateConstant, trimmedRemote, statError)
			result.FailedRemotes = append(result.FailedRemotes, trimmedRemote)
			continue
		}

		parentDirectory := filepath.Dir(destinationPath)
		if mkdirError := service.fileSystem.MkdirAll(parentDirectory, directoryPermissionsConstant); mkdirError != nil {
			service.reporter.Printf(directoryCreateFailureTemplateConstant, trimmedRemote, mkdirError)
			result.FailedRemotes = append(result.FailedRemotes, trimmedRemote)
			continue
		}

		if cloneError := service.repositoryManager.CloneRepository(executionContext, trimmedRemote, destinationPath); cloneError != nil {
			service.reporter.Printf(cloneFailureTemplateConstant, trimmedRemote, cloneError)
			result.FailedRemotes = append(result.FailedRemotes, trimmedRemote)
			continue
		}

		service.reporter.Printf(cloneCompletedTemplateConstant, trimmedRemote, destinationPath)
		result.ClonedPaths = append(result.ClonedPaths, destinationPath)
	}

	return result, nil
}
