package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

const integrationCommandTimeout = 60 * time.Second

var (
	fleetBinaryBuildOnce  sync.Once
	fleetBinaryPath       string
	fleetBinaryBuildError error
)

func repositoryRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		testInstance.Fatalf("unable to resolve working directory: %v", workingDirectoryError)
	}
	return filepath.Dir(currentWorkingDirectory)
}

// fleetBinaryLocation builds the CLI once per test binary; `go run <module>`
// cannot be invoked from directories outside the module, so the tests execute
// a prebuilt binary from their chosen working directory instead.
func fleetBinaryLocation(testInstance *testing.T) string {
	testInstance.Helper()

	fleetBinaryBuildOnce.Do(func() {
		binaryDirectory, tempDirectoryError := os.MkdirTemp("", "gitfleet-integration")
		if tempDirectoryError != nil {
			fleetBinaryBuildError = tempDirectoryError
			return
		}
		fleetBinaryPath = filepath.Join(binaryDirectory, "gitfleet")

		buildCommand := exec.Command("go", "build", "-o", fleetBinaryPath, ".")
		buildCommand.Dir = repositoryRootDirectory(testInstance)
		buildCommand.Env = os.Environ()
		if buildOutput, buildError := buildCommand.CombinedOutput(); buildError != nil {
			fleetBinaryBuildError = buildError
			testInstance.Logf("go build output:\n%s", string(buildOutput))
		}
	})

	if fleetBinaryBuildError != nil {
		testInstance.Fatalf("unable to build gitfleet binary: %v", fleetBinaryBuildError)
	}
	return fleetBinaryPath
}

func runFleetCommand(testInstance *testing.T, workingDirectory string, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, fleetBinaryLocation(testInstance), arguments...)
	command.Dir = workingDirectory
	command.Env = os.Environ()

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func requireFleetSuccess(testInstance *testing.T, workingDirectory string, arguments []string) string {
	testInstance.Helper()
	outputText, runError := runFleetCommand(testInstance, workingDirectory, arguments)
	if runError != nil {
		testInstance.Fatalf("command %v failed: %v\n%s", arguments, runError, outputText)
	}
	return outputText
}

func runGitCommand(testInstance *testing.T, workingDirectory string, arguments ...string) string {
	testInstance.Helper()

	command := exec.Command("git", arguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=fleet-tests",
		"GIT_AUTHOR_EMAIL=fleet-tests@example.com",
		"GIT_COMMITTER_NAME=fleet-tests",
		"GIT_COMMITTER_EMAIL=fleet-tests@example.com",
	)

	outputBytes, runError := command.CombinedOutput()
	if runError != nil {
		testInstance.Fatalf("git %v failed: %v\n%s", arguments, runError, string(outputBytes))
	}
	return string(outputBytes)
}

func createRepositoryWithCommit(testInstance *testing.T, repositoryPath string, fileName string, fileContent string) {
	testInstance.Helper()

	if mkdirError := os.MkdirAll(repositoryPath, 0o755); mkdirError != nil {
		testInstance.Fatalf("unable to create repository directory: %v", mkdirError)
	}
	runGitCommand(testInstance, repositoryPath, "-c", "init.defaultBranch=master", "init")
	runGitCommand(testInstance, repositoryPath, "config", "user.name", "fleet-tests")
	runGitCommand(testInstance, repositoryPath, "config", "user.email", "fleet-tests@example.com")

	filePath := filepath.Join(repositoryPath, fileName)
	if writeError := os.WriteFile(filePath, []byte(fileContent), 0o644); writeError != nil {
		testInstance.Fatalf("unable to write repository file: %v", writeError)
	}
	runGitCommand(testInstance, repositoryPath, "add", ".")
	runGitCommand(testInstance, repositoryPath, "commit", "-m", "initial commit")
}
