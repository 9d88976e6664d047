package execshell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner executes commands through os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command and captures both output streams. A
// non-zero exit is reported through ExecutionResult.ExitCode rather than as an
// error, so callers can interpret git's meaningful exit codes themselves.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = mergedEnvironment(command.Details.EnvironmentVariables)

	var standardOutputBuilder strings.Builder
	var standardErrorBuilder strings.Builder
	executable.Stdout = &standardOutputBuilder
	executable.Stderr = &standardErrorBuilder

	runError := executable.Run()

	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuilder.String(),
		StandardError:  standardErrorBuilder.String(),
	}

	if runError != nil {
		exitError := &exec.ExitError{}
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		executionResult.ExitCode = exitError.ExitCode()
	}

	return executionResult, nil
}

func mergedEnvironment(environmentVariables map[string]string) []string {
	environment := os.Environ()
	for environmentKey, environmentValue := range environmentVariables {
		environment = append(environment, environmentKey+environmentAssignmentSeparatorConstant+environmentValue)
	}
	return environment
}
