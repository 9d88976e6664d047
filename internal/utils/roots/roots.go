// Package rootutils resolves the repository roots a command operates on.
package rootutils

import "strings"

const currentDirectoryRootConstant = "."

// Resolve picks the repository roots for a command invocation: positional
// arguments win over configured roots, and the current directory is the
// fallback when neither is supplied.
func Resolve(arguments []string, configuredRoots []string) []string {
	resolvedRoots := sanitizeRoots(arguments)
	if len(resolvedRoots) == 0 {
		resolvedRoots = sanitizeRoots(configuredRoots)
	}
	if len(resolvedRoots) == 0 {
		resolvedRoots = []string{currentDirectoryRootConstant}
	}
	return resolvedRoots
}

func sanitizeRoots(candidateRoots []string) []string {
	sanitizedRoots := make([]string, 0, len(candidateRoots))
	for _, candidateRoot := range candidateRoots {
		trimmedRoot := strings.TrimSpace(candidateRoot)
		if len(trimmedRoot) == 0 {
			continue
		}
		sanitizedRoots = append(sanitizedRoots, trimmedRoot)
	}
	return sanitizedRoots
}
