package histgrep

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitfleet/internal/repos/shared"
)

const (
	discovererMissingMessageConstant    = "repository discoverer not configured"
	managerMissingMessageConstant       = "repository manager not configured"
	emptyPatternMessageConstant         = "search pattern must not be empty"
	discoveryFailureTemplateConstant    = "repository discovery failed: %w"
	revisionListFailureTemplateConstant = "GREP-FAIL: %s (rev-list: %v)\n"
	revisionGrepFailureTemplateConstant = "GREP-FAIL: %s (grep %s: %v)\n"
	matchLineTemplateConstant           = "%s: %s\n"
)

// ErrDiscovererNotConfigured indicates the discoverer dependency was missing.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(managerMissingMessageConstant)

// ErrEmptyPattern indicates a search was requested without a pattern.
var ErrEmptyPattern = errors.New(emptyPatternMessageConstant)

// Dependencies enumerates external collaborators required for history searches.
type Dependencies struct {
	Discoverer        shared.RepositoryDiscoverer
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures a history search.
type Options struct {
	RepositoryRoots []string
	Pattern         string
}

// Result captures the observable outcomes of a history search.
type Result struct {
	SearchedRepositories int
	MatchCount           int
}

// Service searches the full history of discovered repositories.
type Service struct {
	discoverer        shared.RepositoryDiscoverer
	repositoryManager shared.GitRepositoryManager
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
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &Service{
		discoverer:        dependencies.Discoverer,
		repositoryManager: dependencies.RepositoryManager,
		reporter:          reporter,
	}, nil
}

// Search enumerates every revision of every discovered repository and prints
// each matching line prefixed by its repository path. Repositories whose
// history cannot be read are reported and the search continues; cancellation
// aborts the remaining work.
func (service *Service) Search(executionContext context.Context, options Options) (Result, error) {
	if len(strings.TrimSpace(options.Pattern)) == 0 {
		return Result{}, ErrEmptyPattern
	}

	discoveredRepositories, discoveryError := service.discoverer.DiscoverRepositories(options.RepositoryRoots)
	if discoveryError != nil {
		return Result{}, fmt.Errorf(discoveryFailureTemplateConstant, discoveryError)
	}

	result := Result{}
	for _, repositoryPath := range discoveredRepositories {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		revisions, revisionListError := service.repositoryManager.ListAllRevisions(executionContext, repositoryPath)
		if revisionListError != nil {
			service.reporter.Printf(revisionListFailureTemplateConstant, repositoryPath, revisionListError)
			continue
		}

		for _, revision := range revisions {
			if contextError := executionContext.Err(); contextError != nil {
				return result, contextError
			}

			matchedLines, grepError := service.repositoryManager.GrepAtRevision(executionContext, repositoryPath, options.Pattern, revision)
			if grepError != nil {
				service.reporter.Printf(revisionGrepFailureTemplateConstant, repositoryPath, revision, grepError)
				continue
			}
			for _, matchedLine := range matchedLines {
				service.reporter.Printf(matchLineTemplateConstant, repositoryPath, matchedLine)
				result.MatchCount++
			}
		}
		result.SearchedRepositories++
	}

	return result, nil
}
