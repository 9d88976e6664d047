package scan

import "strings"

const (
	rootsConfigurationSuffixConstant       = ".roots"
	catalogPathConfigurationSuffixConstant = ".catalog_path"
)

// CommandConfiguration captures configuration values for the scan command.
type CommandConfiguration struct {
	RepositoryRoots []string `mapstructure:"roots"`
	CatalogPath     string   `mapstructure:"catalog_path"`
}

// DefaultCommandConfiguration provides baseline configuration values for scans.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryRoots: nil,
		CatalogPath:     "",
	}
}

// DefaultConfigurationValues exposes scan defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + rootsConfigurationSuffixConstant:       []string{},
		configurationKeyPrefix + catalogPathConfigurationSuffixConstant: "",
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.CatalogPath = strings.TrimSpace(configuration.CatalogPath)
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
