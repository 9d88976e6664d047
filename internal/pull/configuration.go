package pull

import "strings"

const (
	rootsConfigurationSuffixConstant      = ".roots"
	branchNameConfigurationSuffixConstant = ".branch_name"
	remoteNameConfigurationSuffixConstant = ".remote_name"

	// DefaultBranchNameConstant is checked out and pulled when no branch is configured.
	DefaultBranchNameConstant = "master"
	// DefaultRemoteNameConstant is pulled from when no remote is configured.
	DefaultRemoteNameConstant = "origin"
)

// CommandConfiguration captures configuration values for the pull command.
type CommandConfiguration struct {
	RepositoryRoots []string `mapstructure:"roots"`
	BranchName      string   `mapstructure:"branch_name"`
	RemoteName      string   `mapstructure:"remote_name"`
}

// DefaultCommandConfiguration provides baseline configuration values for pulls.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryRoots: nil,
		BranchName:      DefaultBranchNameConstant,
		RemoteName:      DefaultRemoteNameConstant,
	}
}

// DefaultConfigurationValues exposes pull defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + rootsConfigurationSuffixConstant:      []string{},
		configurationKeyPrefix + branchNameConfigurationSuffixConstant: DefaultBranchNameConstant,
		configurationKeyPrefix + remoteNameConfigurationSuffixConstant: DefaultRemoteNameConstant,
	}
}

// Sanitize trims configuration values and restores defaults for blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.BranchName = strings.TrimSpace(configuration.BranchName)
	if len(sanitized.BranchName) == 0 {
		sanitized.BranchName = DefaultBranchNameConstant
	}
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = DefaultRemoteNameConstant
	}
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
