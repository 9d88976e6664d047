// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for running repository-level git operations and
// ParseRemoteURL for converting remote URLs into clone destinations.
package gitrepo
