package pull_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gitfleet/internal/pull"
	"gitfleet/internal/testsupport"
)

const (
	pullTestWidgetsRepositoryConstant = "repos/widgets"
	pullTestGadgetsRepositoryConstant = "repos/gadgets"
	pullTestBranchNameConstant        = "main"
	pullTestRemoteNameConstant        = "upstream"
)

func newPullService(testInstance *testing.T, dependencies pull.Dependencies) *pull.Service {
	testInstance.Helper()
	service, creationError := pull.NewService(dependencies)
	require.NoError(testInstance, creationError)
	return service
}

func stepNames(outcome pull.RepositoryOutcome) []string {
	names := make([]string, 0, len(outcome.Steps))
	for _, step := range outcome.Steps {
		names = append(names, step.StepName)
	}
	return names
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	testCases := []struct {
		name         string
		dependencies pull.Dependencies
		expectedErr  error
	}{
		{
			name:         "missing_discoverer",
			dependencies: pull.Dependencies{RepositoryManager: &testsupport.StubRepositoryManager{}},
			expectedErr:  pull.ErrDiscovererNotConfigured,
		},
		{
			name:         "missing_repository_manager",
			dependencies: pull.Dependencies{Discoverer: &testsupport.StubRepositoryDiscoverer{}},
			expectedErr:  pull.ErrRepositoryManagerNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, creationError := pull.NewService(testCase.dependencies)
			require.ErrorIs(testInstance, creationError, testCase.expectedErr)
			require.Nil(testInstance, service)
		})
	}
}

func TestPullCleanRepositorySkipsStashSteps(testInstance *testing.T) {
	manager := &testsupport.StubRepositoryManager{
		CleanWorktrees: map[string]bool{pullTestWidgetsRepositoryConstant: true},
	}
	var reportBuffer bytes.Buffer

	service := newPullService(testInstance, pull.Dependencies{
		Discoverer:        &testsupport.StubRepositoryDiscoverer{Repositories: []string{pullTestWidgetsRepositoryConstant}},
		RepositoryManager: manager,
		Reporter:          testsupport.NewBufferReporter(&reportBuffer),
	})

	pullResult, pullError := service.Pull(context.Background(), pull.Options{})
	require.NoError(testInstance, pullError)
	require.Len(testInstance, pullResult.Outcomes, 1)
	require.Equal(testInstance, []string{"status", "checkout", "pull"}, stepNames(pullResult.Outcomes[0]))
	require.True(testInstance, pullResult.Outcomes[0].Succeeded())
	require.Empty(testInstance, manager.StagedRepositories)
	require.Empty(testInstance, manager.StashedRepositories)
	require.Equal(testInstance, pull.DefaultBranchNameConstant, manager.CheckedOutBranches[pullTestWidgetsRepositoryConstant])
	require.Contains(testInstance, reportBuffer.String(), "PULL-DONE: "+pullTestWidgetsRepositoryConstant)
}

func TestPullDirtyRepositoryStagesAndStashesFirst(testInstance *testing.T) {
	manager := &testsupport.StubRepositoryManager{
		CleanWorktrees: map[string]bool{pullTestWidgetsRepositoryConstant: false},
	}

	service := newPullService(testInstance, pull.Dependencies{
		Discoverer:        &testsupport.StubRepositoryDiscoverer{Repositories: []string{pullTestWidgetsRepositoryConstant}},
		RepositoryManager: manager,
	})

	pullResult, pullError := service.Pull(context.Background(), pull.Options{
		BranchName: pullTestBranchNameConstant,
		RemoteName: pullTestRemoteNameConstant,
	})
	require.NoError(testInstance, pullError)
	require.Equal(testInstance, []string{"status", "add", "stash", "checkout", "pull"}, stepNames(pullResult.Outcomes[0]))
	require.Equal(testInstance, []string{pullTestWidgetsRepositoryConstant}, manager.StagedRepositories)
	require.Equal(testInstance, []string{pullTestWidgetsRepositoryConstant}, manager.StashedRepositories)
	require.Equal(testInstance, pullTestBranchNameConstant, manager.CheckedOutBranches[pullTestWidgetsRepositoryConstant])
}

func TestPullReportsFailedStepInsteadOfUnconditionalSuccess(testInstance *testing.T) {
	manager := &testsupport.StubRepositoryManager{
		CleanWorktrees: map[string]bool{
			pullTestWidgetsRepositoryConstant: true,
			pullTestGadgetsRepositoryConstant: true,
		},
		PullErrors: map[string]error{
			pullTestWidgetsRepositoryConstant: errors.New("could not resolve host"),
		},
	}
	var reportBuffer bytes.Buffer

	service := newPullService(testInstance, pull.Dependencies{
		Discoverer: &testsupport.StubRepositoryDiscoverer{Repositories: []string{
			pullTestWidgetsRepositoryConstant,
			pullTestGadgetsRepositoryConstant,
		}},
		RepositoryManager: manager,
		Reporter:          testsupport.NewBufferReporter(&reportBuffer),
	})

	pullResult, pullError := service.Pull(context.Background(), pull.Options{})
	require.NoError(testInstance, pullError)
	require.Len(testInstance, pullResult.Outcomes, 2)

	failedOutcome := pullResult.Outcomes[0]
	require.False(testInstance, failedOutcome.Succeeded())
	failedStep, failed := failedOutcome.FirstFailure()
	require.True(testInstance, failed)
	require.Equal(testInstance, "pull", failedStep.StepName)

	reportedOutput := reportBuffer.String()
	require.Contains(testInstance, reportedOutput, "PULL-FAIL: "+pullTestWidgetsRepositoryConstant+" (pull: could not resolve host)")
	require.Contains(testInstance, reportedOutput, "PULL-DONE: "+pullTestGadgetsRepositoryConstant)
}

func TestPullCheckoutFailureSkipsPullStep(testInstance *testing.T) {
	manager := &testsupport.StubRepositoryManager{
		CleanWorktrees: map[string]bool{pullTestWidgetsRepositoryConstant: true},
		CheckoutErrors: map[string]error{
			pullTestWidgetsRepositoryConstant: errors.New("pathspec did not match"),
		},
	}

	service := newPullService(testInstance, pull.Dependencies{
		Discoverer:        &testsupport.StubRepositoryDiscoverer{Repositories: []string{pullTestWidgetsRepositoryConstant}},
		RepositoryManager: manager,
	})

	pullResult, pullError := service.Pull(context.Background(), pull.Options{})
	require.NoError(testInstance, pullError)
	require.Equal(testInstance, []string{"status", "checkout"}, stepNames(pullResult.Outcomes[0]))
	require.Empty(testInstance, manager.PulledRepositories)
}

func TestPullStashFailureEndsRepositorySequence(testInstance *testing.T) {
	manager := &testsupport.StubRepositoryManager{
		CleanWorktrees: map[string]bool{pullTestWidgetsRepositoryConstant: false},
		StashErrors: map[string]error{
			pullTestWidgetsRepositoryConstant: errors.New("unable to write stash"),
		},
	}
	var reportBuffer bytes.Buffer

	service := newPullService(testInstance, pull.Dependencies{
		Discoverer:        &testsupport.StubRepositoryDiscoverer{Repositories: []string{pullTestWidgetsRepositoryConstant}},
		RepositoryManager: manager,
		Reporter:          testsupport.NewBufferReporter(&reportBuffer),
	})

	pullResult, pullError := service.Pull(context.Background(), pull.Options{})
	require.NoError(testInstance, pullError)
	require.Equal(testInstance, []string{"status", "add", "stash"}, stepNames(pullResult.Outcomes[0]))
	require.Empty(testInstance, manager.CheckedOutBranches)
	require.Contains(testInstance, reportBuffer.String(), "PULL-FAIL: "+pullTestWidgetsRepositoryConstant+" (stash: unable to write stash)")
}

func TestPullStopsWhenContextCancelled(testInstance *testing.T) {
	cancelledContext, cancelFunction := context.WithCancel(context.Background())
	cancelFunction()

	manager := &testsupport.StubRepositoryManager{}

	service := newPullService(testInstance, pull.Dependencies{
		Discoverer:        &testsupport.StubRepositoryDiscoverer{Repositories: []string{pullTestWidgetsRepositoryConstant}},
		RepositoryManager: manager,
	})

	_, pullError := service.Pull(cancelledContext, pull.Options{})
	require.ErrorIs(testInstance, pullError, context.Canceled)
	require.Empty(testInstance, manager.PulledRepositories)
}
