// Package clone recreates the repositories recorded in the remote catalog,
// deriving each destination path from its remote URL and skipping paths that
// already exist.
package clone
