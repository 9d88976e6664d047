// Package discovery locates git repository working trees on disk.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
)

const gitMetadataDirectoryNameConstant = ".git"

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the provided roots and returns every directory
// containing a .git entry as an immediate child, sorted for a stable per-run
// order. Directories that cannot be entered are skipped silently, and the
// .git metadata directories themselves are never descended into.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	discoveredPaths := make(map[string]struct{})

	for _, searchRoot := range roots {
		if walkError := discoverer.walkRoot(searchRoot, discoveredPaths); walkError != nil {
			return nil, walkError
		}
	}

	repositories := make([]string, 0, len(discoveredPaths))
	for repositoryPath := range discoveredPaths {
		repositories = append(repositories, repositoryPath)
	}
	sort.Strings(repositories)
	return repositories, nil
}

func (discoverer *FilesystemRepositoryDiscoverer) walkRoot(searchRoot string, discoveredPaths map[string]struct{}) error {
	return filepath.WalkDir(searchRoot, func(entryPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return nil
		}

		// A .git entry may be a directory or, for linked worktrees, a file.
		if directoryEntry.Name() != gitMetadataDirectoryNameConstant {
			return nil
		}

		discoveredPaths[filepath.Dir(entryPath)] = struct{}{}

		if directoryEntry.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
}
