package clone

import "strings"

const catalogPathConfigurationSuffixConstant = ".catalog_path"

// CommandConfiguration captures configuration values for the clone command.
type CommandConfiguration struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

// DefaultCommandConfiguration provides baseline configuration values for clones.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{CatalogPath: ""}
}

// DefaultConfigurationValues exposes clone defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + catalogPathConfigurationSuffixConstant: "",
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.CatalogPath = strings.TrimSpace(configuration.CatalogPath)
	return sanitized
}
