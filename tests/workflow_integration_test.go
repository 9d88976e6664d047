package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	workflowCatalogFileNameConstant  = "catalog.json"
	workflowRemoteURLConstant        = "https://github.com/acme/widgets.git"
	workflowExpectedCatalogConstant  = "[\n  {\"remote\": \"https://github.com/acme/widgets.git\"}\n]"
	workflowDerivedClonePathConstant = "acme/widgets"
	workflowNeedleConstant           = "fleet-needle"
)

func TestScanIntegrationRecordsOriginRemotes(testInstance *testing.T) {
	scanRoot := testInstance.TempDir()
	repositoryPath := filepath.Join(scanRoot, "widgets")
	createRepositoryWithCommit(testInstance, repositoryPath, "main.go", "package main\n")
	runGitCommand(testInstance, repositoryPath, "remote", "add", "origin", workflowRemoteURLConstant)

	orphanPath := filepath.Join(scanRoot, "orphan")
	createRepositoryWithCommit(testInstance, orphanPath, "notes.txt", "no remote here\n")

	catalogPath := filepath.Join(testInstance.TempDir(), workflowCatalogFileNameConstant)

	outputText := requireFleetSuccess(testInstance, scanRoot, []string{"scan", "--catalog", catalogPath, scanRoot})
	require.Contains(testInstance, outputText, "SCAN-DONE: recorded 1 remotes in "+catalogPath)

	catalogBytes, readError := os.ReadFile(catalogPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, workflowExpectedCatalogConstant, string(catalogBytes))
}

func TestCloneIntegrationSkipsExistingDestinations(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	catalogPath := filepath.Join(workingDirectory, workflowCatalogFileNameConstant)
	catalogContent := workflowExpectedCatalogConstant
	require.NoError(testInstance, os.WriteFile(catalogPath, []byte(catalogContent), 0o644))

	existingDestination := filepath.Join(workingDirectory, filepath.FromSlash(workflowDerivedClonePathConstant))
	require.NoError(testInstance, os.MkdirAll(existingDestination, 0o755))

	outputText := requireFleetSuccess(testInstance, workingDirectory, []string{"clone", "--catalog", catalogPath})
	require.Contains(testInstance, outputText, "CLONE-SKIP: "+workflowDerivedClonePathConstant+" already exists")
}

func TestPullIntegrationSynchronizesWithLocalUpstream(testInstance *testing.T) {
	upstreamDirectory := filepath.Join(testInstance.TempDir(), "upstream.git")
	require.NoError(testInstance, os.MkdirAll(upstreamDirectory, 0o755))
	runGitCommand(testInstance, upstreamDirectory, "-c", "init.defaultBranch=master", "init", "--bare")

	pullRoot := testInstance.TempDir()
	repositoryPath := filepath.Join(pullRoot, "widgets")
	createRepositoryWithCommit(testInstance, repositoryPath, "main.go", "package main\n")
	runGitCommand(testInstance, repositoryPath, "remote", "add", "origin", upstreamDirectory)
	runGitCommand(testInstance, repositoryPath, "push", "-u", "origin", "master")

	dirtyFilePath := filepath.Join(repositoryPath, "scratch.txt")
	require.NoError(testInstance, os.WriteFile(dirtyFilePath, []byte("uncommitted work\n"), 0o644))

	outputText := requireFleetSuccess(testInstance, pullRoot, []string{"pull", pullRoot})
	require.Contains(testInstance, outputText, "PULL-DONE: "+repositoryPath)

	stashOutput := runGitCommand(testInstance, repositoryPath, "stash", "list")
	require.NotEmpty(testInstance, stashOutput)
}

func TestGrepIntegrationFindsPatternInHistory(testInstance *testing.T) {
	grepRoot := testInstance.TempDir()
	repositoryPath := filepath.Join(grepRoot, "widgets")
	createRepositoryWithCommit(testInstance, repositoryPath, "config.go", "package config\n// "+workflowNeedleConstant+"\n")

	configurationPath := filepath.Join(testInstance.TempDir(), integrationConfigFileNameConstant)
	configurationContent := "tools:\n  grep:\n    roots:\n      - " + grepRoot + "\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	outputText := requireFleetSuccess(testInstance, grepRoot, []string{"grep", workflowNeedleConstant, "--config", configurationPath})
	require.Contains(testInstance, outputText, repositoryPath+": ")
	require.Contains(testInstance, outputText, workflowNeedleConstant)
}
