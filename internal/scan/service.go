package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitfleet/internal/catalog"
	"gitfleet/internal/repos/shared"
)

const (
	discovererMissingMessageConstant     = "repository discoverer not configured"
	managerMissingMessageConstant        = "repository manager not configured"
	catalogWriterMissingMessageConstant  = "catalog writer not configured"
	discoveryFailureTemplateConstant     = "repository discovery failed: %w"
	catalogSaveFailureTemplateConstant   = "unable to persist catalog: %w"
	scanCompletedMessageTemplateConstant = "SCAN-DONE: recorded %d remotes in %s\n"
)

// ErrDiscovererNotConfigured indicates the discoverer dependency was missing.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(managerMissingMessageConstant)

// ErrCatalogWriterNotConfigured indicates the catalog writer dependency was missing.
var ErrCatalogWriterNotConfigured = errors.New(catalogWriterMissingMessageConstant)

// CatalogWriter persists an ordered record list at a catalog path.
type CatalogWriter interface {
	Save(catalogPath string, records []catalog.RemoteRecord) error
}

// Dependencies enumerates external collaborators required for scans.
type Dependencies struct {
	Discoverer        shared.RepositoryDiscoverer
	RepositoryManager shared.GitRepositoryManager
	CatalogWriter     CatalogWriter
	Reporter          shared.Reporter
}

// Options configures a catalog scan.
type Options struct {
	RepositoryRoots []string
	CatalogPath     string
}

// Result captures the observable outcomes of a scan.
type Result struct {
	CatalogPath string
	Records     []catalog.RemoteRecord
}

// Service builds the remote catalog from discovered repositories.
type Service struct {
	discoverer        shared.RepositoryDiscoverer
	repositoryManager shared.GitRepositoryManager
	catalogWriter     CatalogWriter
	reporter          shared.Reporter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.CatalogWriter == nil {
		return nil, ErrCatalogWriterNotConfigured
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Service{
		discoverer:        dependencies.Discoverer,
		repositoryManager: dependencies.RepositoryManager,
		catalogWriter:     dependencies.CatalogWriter,
		reporter:          reporter,
	}, nil
}

// Scan walks the roots, records the origin remote of every repository that has
// one, and fully replaces the catalog at the configured path. Repositories
// without a resolvable origin are excluded without surfacing an error.
func (service *Service) Scan(executionContext context.Context, options Options) (Result, error) {
	discoveredRepositories, discoveryError := service.discoverer.DiscoverRepositories(options.RepositoryRoots)
	if discoveryError != nil {
		return Result{}, fmt.Errorf(discoveryFailureTemplateConstant, discoveryError)
	}

	collectedRecords := make([]catalog.RemoteRecord, 0, len(discoveredRepositories))
	for _, repositoryPath := range discoveredRepositories {
		if contextError := executionContext.Err(); contextError != nil {
			return Result{}, contextError
		}

		remoteURL, remoteLookupError := service.repositoryManager.GetRemoteURL(executionContext, repositoryPath, shared.OriginRemoteNameConstant)
		if remoteLookupError != nil {
			continue
		}
		if len(strings.TrimSpace(remoteURL)) == 0 {
			continue
		}
		collectedRecords = append(collectedRecords, catalog.RemoteRecord{Remote: remoteURL})
	}

	if saveError := service.catalogWriter.Save(options.CatalogPath, collectedRecords); saveError != nil {
		return Result{}, fmt.Errorf(catalogSaveFailureTemplateConstant, saveError)
	}

	service.reporter.Printf(scanCompletedMessageTemplateConstant, len(collectedRecords), options.CatalogPath)
	return Result{CatalogPath: options.CatalogPath, Records: collectedRecords}, nil
}
