package pull

import (
	"context"
	"errors"
	"fmt"

	"gitfleet/internal/repos/shared"
)

const (
	discovererMissingMessageConstant = "repository discoverer not configured"
	managerMissingMessageConstant    = "repository manager not configured"
	discoveryFailureTemplateConstant = "repository discovery failed: %w"
	pullCompletedTemplateConstant    = "PULL-DONE: %s\n"
	pullFailedTemplateConstant       = "PULL-FAIL: %s (%s: %s)\n"

	statusStepNameConstant   = "status"
	stageStepNameConstant    = "add"
	stashStepNameConstant    = "stash"
	checkoutStepNameConstant = "checkout"
	pullStepNameConstant     = "pull"
)

// ErrDiscovererNotConfigured indicates the discoverer dependency was missing.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(managerMissingMessageConstant)

// StepResult records the outcome of one git step inside a repository.
type StepResult struct {
	StepName string
	Err      error
}

// RepositoryOutcome collects the ordered step results of one repository.
type RepositoryOutcome struct {
	RepositoryPath string
	Steps          []StepResult
}

// Succeeded reports whether every executed step completed without error.
func (outcome RepositoryOutcome) Succeeded() bool {
	for _, step := range outcome.Steps {
		if step.Err != nil {
			return false
		}
	}
	return true
}

// FirstFailure returns the earliest failed step, if any.
func (outcome RepositoryOutcome) FirstFailure() (StepResult, bool) {
	for _, step := range outcome.Steps {
		if step.Err != nil {
			return step, true
		}
	}
	return StepResult{}, false
}

// Dependencies enumerates external collaborators required for pulls.
type Dependencies struct {
	Discoverer        shared.RepositoryDiscoverer
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
}

// Options configures a synchronization pass.
type Options struct {
	RepositoryRoots []string
	BranchName      string
	RemoteName      string
}

// Result captures the observable outcomes of a synchronization pass.
type Result struct {
	Outcomes []RepositoryOutcome
}

// Service pulls the configured branch in every discovered repository.
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

// Pull synchronizes every discovered repository: dirty worktrees are staged
// and stashed, the configured branch is checked out, and the branch is pulled
// from the configured remote. Each step's result is captured; a failing step
// ends that repository's sequence but never aborts the batch. Stashed changes
// are left on the stash for manual recovery.
func (service *Service) Pull(executionContext context.Context, options Options) (Result, error) {
	branchName := options.BranchName
	if len(branchName) == 0 {
		branchName = DefaultBranchNameConstant
	}
	remoteName := options.RemoteName
	if len(remoteName) == 0 {
		remoteName = DefaultRemoteNameConstant
	}

	discoveredRepositories, discoveryError := service.discoverer.DiscoverRepositories(options.RepositoryRoots)
	if discoveryError != nil {
		return Result{}, fmt.Errorf(discoveryFailureTemplateConstant, discoveryError)
	}

	result := Result{Outcomes: make([]RepositoryOutcome, 0, len(discoveredRepositories))}
	for _, repositoryPath := range discoveredRepositories {
		if contextError := executionContext.Err(); contextError != nil {
			return result, contextError
		}

		outcome := service.pullRepository(executionContext, repositoryPath, remoteName, branchName)
		result.Outcomes = append(result.Outcomes, outcome)

		if failedStep, failed := outcome.FirstFailure(); failed {
			service.reporter.Printf(pullFailedTemplateConstant, repositoryPath, failedStep.StepName, failedStep.Err)
			continue
		}
		service.reporter.Printf(pullCompletedTemplateConstant, repositoryPath)
	}

	return result, nil
}

func (service *Service) pullRepository(executionContext context.Context, repositoryPath string, remoteName string, branchName string) RepositoryOutcome {
	outcome := RepositoryOutcome{RepositoryPath: repositoryPath}

	cleanWorktree, statusError := service.repositoryManager.CheckCleanWorktree(executionContext, repositoryPath)
	outcome.Steps = append(outcome.Steps, StepResult{StepName: statusStepNameConstant, Err: statusError})
	if statusError != nil {
		return outcome
	}

	if !cleanWorktree {
		stageError := service.repositoryManager.StageAllChanges(executionContext, repositoryPath)
		outcome.Steps = append(outcome.Steps, StepResult{StepName: stageStepNameConstant, Err: stageError})
		if stageError != nil {
			return outcome
		}

		stashError := service.repositoryManager.StashChanges(executionContext, repositoryPath)
		outcome.Steps = append(outcome.Steps, StepResult{StepName: stashStepNameConstant, Err: stashError})
		if stashError != nil {
			return outcome
		}
	}

	checkoutError := service.repositoryManager.CheckoutBranch(executionContext, repositoryPath, branchName)
	outcome.Steps = append(outcome.Steps, StepResult{StepName: checkoutStepNameConstant, Err: checkoutError})
	if checkoutError != nil {
		return outcome
	}

	pullError := service.repositoryManager.PullBranch(executionContext, repositoryPath, remoteName, branchName)
	outcome.Steps = append(outcome.Steps, StepResult{StepName: pullStepNameConstant, Err: pullError})
	return outcome
}
