package histgrep

import "strings"

const rootsConfigurationSuffixConstant = ".roots"

// CommandConfiguration captures configuration values for the grep command.
type CommandConfiguration struct {
	RepositoryRoots []string `mapstructure:"roots"`
}

// DefaultCommandConfiguration provides baseline configuration values for history searches.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{RepositoryRoots: nil}
}

// DefaultConfigurationValues exposes grep defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + rootsConfigurationSuffixConstant: []string{},
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryRoots = sanitizeRoots(configuration.RepositoryRoots)
	return sanitized
}

func sanitizeRoots(rawRoots []string) []string {
	sanitizedRoots := make([]string, 0, len(rawRoots))
	for _, candidateRoot := range rawRoots {
		trimmedRoot := strings.TrimSpace(candidateRoot)
		if len(trimmedRoot) == 0 {
			continue
		}
		sanitizedRoots = append(sanitizedRoots, trimmedRoot)
	}
	return sanitizedRoots
}
