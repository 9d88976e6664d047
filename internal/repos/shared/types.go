// Package shared declares the collaborator interfaces consumed by the
// gitfleet repository commands.
package shared

import (
	"context"
	"io/fs"

	"gitfleet/internal/execshell"
)

// OriginRemoteNameConstant identifies the default upstream remote recorded during scans.
const OriginRemoteNameConstant = "origin"

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes repository-level git operations.
type GitRepositoryManager interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	StageAllChanges(executionContext context.Context, repositoryPath string) error
	StashChanges(executionContext context.Context, repositoryPath string) error
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	PullBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	CloneRepository(executionContext context.Context, remoteURL string, destinationPath string) error
	ListAllRevisions(executionContext context.Context, repositoryPath string) ([]string, error)
	GrepAtRevision(executionContext context.Context, repositoryPath string, pattern string, revision string) ([]string, error)
}

// RepositoryDiscoverer locates Git repositories for bulk operations.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}

// FileSystem exposes filesystem operations required by repository services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
}
