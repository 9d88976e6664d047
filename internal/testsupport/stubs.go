// Package testsupport provides stub collaborators shared by command tests.
package testsupport

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// CloneCall records one CloneRepository invocation.
type CloneCall struct {
	RemoteURL       string
	DestinationPath string
}

// StubRepositoryDiscoverer returns a fixed repository list.
type StubRepositoryDiscoverer struct {
	Repositories   []string
	DiscoveryError error
	RecordedRoots  [][]string
}

// DiscoverRepositories implements shared.RepositoryDiscoverer.
func (discoverer *StubRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	discoverer.RecordedRoots = append(discoverer.RecordedRoots, roots)
	if discoverer.DiscoveryError != nil {
		return nil, discoverer.DiscoveryError
	}
	return discoverer.Repositories, nil
}

// StubRepositoryManager implements shared.GitRepositoryManager with scripted responses.
type StubRepositoryManager struct {
	RemoteURLs         map[string]string
	RemoteLookupErrors map[string]error

	CleanWorktrees   map[string]bool
	CleanCheckErrors map[string]error

	StageErrors    map[string]error
	StashErrors    map[string]error
	CheckoutErrors map[string]error
	PullErrors     map[string]error
	CloneErrors    map[string]error

	Revisions          map[string][]string
	RevisionListErrors map[string]error
	GrepLines          map[string]map[string][]string
	GrepErrors         map[string]error

	StagedRepositories  []string
	StashedRepositories []string
	CheckedOutBranches  map[string]string
	PulledRepositories  []string
	CloneCalls          []CloneCall
}

// GetRemoteURL implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) GetRemoteURL(_ context.Context, repositoryPath string, _ string) (string, error) {
	if lookupError, exists := manager.RemoteLookupErrors[repositoryPath]; exists {
		return "", lookupError
	}
	return manager.RemoteURLs[repositoryPath], nil
}

// CheckCleanWorktree implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) CheckCleanWorktree(_ context.Context, repositoryPath string) (bool, error) {
	if checkError, exists := manager.CleanCheckErrors[repositoryPath]; exists {
		return false, checkError
	}
	cleanWorktree, known := manager.CleanWorktrees[repositoryPath]
	if !known {
		return true, nil
	}
	return cleanWorktree, nil
}

// StageAllChanges implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) StageAllChanges(_ context.Context, repositoryPath string) error {
	manager.StagedRepositories = append(manager.StagedRepositories, repositoryPath)
	return manager.StageErrors[repositoryPath]
}

// StashChanges implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) StashChanges(_ context.Context, repositoryPath string) error {
	manager.StashedRepositories = append(manager.StashedRepositories, repositoryPath)
	return manager.StashErrors[repositoryPath]
}

// CheckoutBranch implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) CheckoutBranch(_ context.Context, repositoryPath string, branchName string) error {
	if manager.CheckedOutBranches == nil {
		manager.CheckedOutBranches = map[string]string{}
	}
	manager.CheckedOutBranches[repositoryPath] = branchName
	return manager.CheckoutErrors[repositoryPath]
}

// PullBranch implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) PullBranch(_ context.Context, repositoryPath string, _ string, _ string) error {
	manager.PulledRepositories = append(manager.PulledRepositories, repositoryPath)
	return manager.PullErrors[repositoryPath]
}

// CloneRepository implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) CloneRepository(_ context.Context, remoteURL string, destinationPath string) error {
	manager.CloneCalls = append(manager.CloneCalls, CloneCall{RemoteURL: remoteURL, DestinationPath: destinationPath})
	return manager.CloneErrors[remoteURL]
}

// ListAllRevisions implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) ListAllRevisions(_ context.Context, repositoryPath string) ([]string, error) {
	if listError, exists := manager.RevisionListErrors[repositoryPath]; exists {
		return nil, listError
	}
	return manager.Revisions[repositoryPath], nil
}

// GrepAtRevision implements shared.GitRepositoryManager.
func (manager *StubRepositoryManager) GrepAtRevision(_ context.Context, repositoryPath string, _ string, revision string) ([]string, error) {
	if grepError, exists := manager.GrepErrors[repositoryPath]; exists {
		return nil, grepError
	}
	return manager.GrepLines[repositoryPath][revision], nil
}

// StubFileSystem reports scripted existence checks and records directory creation.
type StubFileSystem struct {
	ExistingPaths       map[string]struct{}
	StatErrors          map[string]error
	MkdirError          error
	CreatedDirectories  []string
	RecordedStatQueries []string
}

// Stat implements shared.FileSystem.
func (fileSystem *StubFileSystem) Stat(path string) (fs.FileInfo, error) {
	fileSystem.RecordedStatQueries = append(fileSystem.RecordedStatQueries, path)
	if statError, scripted := fileSystem.StatErrors[path]; scripted {
		return nil, statError
	}
	if _, exists := fileSystem.ExistingPaths[path]; exists {
		return stubFileInfo{name: path}, nil
	}
	return nil, os.ErrNotExist
}

// MkdirAll implements shared.FileSystem.
func (fileSystem *StubFileSystem) MkdirAll(path string, _ fs.FileMode) error {
	fileSystem.CreatedDirectories = append(fileSystem.CreatedDirectories, path)
	return fileSystem.MkdirError
}

type stubFileInfo struct {
	name string
}

func (info stubFileInfo) Name() string       { return info.name }
func (info stubFileInfo) Size() int64        { return 0 }
func (info stubFileInfo) Mode() fs.FileMode  { return fs.ModeDir }
func (info stubFileInfo) ModTime() time.Time { return time.Time{} }
func (info stubFileInfo) IsDir() bool        { return true }
func (info stubFileInfo) Sys() any           { return nil }

// BufferReporter collects formatted progress messages for assertions.
type BufferReporter struct {
	writer io.Writer
}

// NewBufferReporter wraps the provided writer as a shared.Reporter.
func NewBufferReporter(writer io.Writer) *BufferReporter {
	return &BufferReporter{writer: writer}
}

// Printf implements shared.Reporter.
func (reporter *BufferReporter) Printf(format string, args ...any) {
	fmt.Fprintf(reporter.writer, format, args...)
}
