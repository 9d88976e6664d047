package gitrepo

import (
	"context"
	"errors"
	"strings"

	"gitfleet/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant        = "git executor not configured"
	gitRemoteSubcommandConstant                 = "remote"
	gitRemoteGetURLSubcommandConstant           = "get-url"
	gitStatusSubcommandConstant                 = "status"
	gitStatusPorcelainFlagConstant              = "--porcelain"
	gitAddSubcommandConstant                    = "add"
	gitAddAllPathSpecConstant                   = "."
	gitStashSubcommandConstant                  = "stash"
	gitCheckoutSubcommandConstant               = "checkout"
	gitPullSubcommandConstant                   = "pull"
	gitCloneSubcommandConstant                  = "clone"
	gitRevListSubcommandConstant                = "rev-list"
	gitRevListAllFlagConstant                   = "--all"
	gitGrepSubcommandConstant                   = "grep"
	gitGrepLineNumberFlagConstant               = "-n"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	outputLineSeparatorConstant                 = "\n"
	grepNoMatchExitCodeConstant                 = 1
)

// ErrExecutorNotConfigured indicates the repository manager was built without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor matches the execshell surface required by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs repository-level git operations through a shell executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager from the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetRemoteURL reads the URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CheckCleanWorktree reports whether the repository has no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// StageAllChanges stages every modification in the repository working tree.
func (manager *RepositoryManager) StageAllChanges(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, gitAddAllPathSpecConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// StashChanges shelves staged and unstaged modifications onto the stash.
func (manager *RepositoryManager) StashChanges(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStashSubcommandConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// CheckoutBranch switches the repository working tree to the named branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, branchName},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// PullBranch fetches and merges the named branch from the named remote.
func (manager *RepositoryManager) PullBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitPullSubcommandConstant, remoteName, branchName},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: nonInteractiveGitEnvironment(),
	})
	return executionError
}

// CloneRepository clones the remote URL into the destination path.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, remoteURL string, destinationPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, remoteURL, destinationPath},
		EnvironmentVariables: nonInteractiveGitEnvironment(),
	})
	return executionError
}

// ListAllRevisions enumerates every revision reachable from any reference.
func (manager *RepositoryManager) ListAllRevisions(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevListSubcommandConstant, gitRevListAllFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}
	return splitNonEmptyLines(executionResult.StandardOutput), nil
}

// GrepAtRevision searches tracked file contents at the given revision for the
// pattern. A revision without matches yields no lines and no error.
func (manager *RepositoryManager) GrepAtRevision(executionContext context.Context, repositoryPath string, pattern string, revision string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitGrepSubcommandConstant, gitGrepLineNumberFlagConstant, pattern, revision},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == grepNoMatchExitCodeConstant {
			return nil, nil
		}
		return nil, executionError
	}
	return splitNonEmptyLines(executionResult.StandardOutput), nil
}

func nonInteractiveGitEnvironment() map[string]string {
	return map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant}
}

func splitNonEmptyLines(commandOutput string) []string {
	var collectedLines []string
	for _, outputLine := range strings.Split(commandOutput, outputLineSeparatorConstant) {
		trimmedLine := strings.TrimRight(outputLine, "\r")
		if len(trimmedLine) > 0 {
			collectedLines = append(collectedLines, trimmedLine)
		}
	}
	return collectedLines
}
