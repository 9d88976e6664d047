package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gitfleet/internal/execshell"
)

const (
	invocationStartedTemplateConstant   = "Running %s"
	invocationFinishedTemplateConstant  = "Finished %s"
	invocationExitTemplateConstant      = "%s exited with code %d"
	invocationNotRunTemplateConstant    = "%s could not start: %s"
	repositoryLocationTemplateConstant  = "%s in %s"
	argumentSeparatorConstant           = " "
	standardErrorDetailTemplateConstant = "%s: %s"
	unknownCauseConstant                = "unknown error"
)

// GitEventFormatter renders git invocation lifecycle events as console lines.
// Every command this tool runs is a git command executed inside a repository,
// so labels read "git <subcommand> in <repository>".
type GitEventFormatter struct{}

// DescribeStart formats the line announcing an invocation.
func (formatter GitEventFormatter) DescribeStart(command execshell.ShellCommand) string {
	return fmt.Sprintf(invocationStartedTemplateConstant, formatter.describeInvocation(command))
}

// DescribeCompletion formats the line for an invocation that exited zero.
func (formatter GitEventFormatter) DescribeCompletion(command execshell.ShellCommand) string {
	return fmt.Sprintf(invocationFinishedTemplateConstant, formatter.describeInvocation(command))
}

// DescribeExit formats the line for a non-zero exit, appending trimmed
// standard error when git produced any.
func (formatter GitEventFormatter) DescribeExit(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	exitMessage := fmt.Sprintf(invocationExitTemplateConstant, formatter.describeInvocation(command), result.ExitCode)
	trimmedStandardError := strings.TrimSpace(result.StandardError)
	if len(trimmedStandardError) == 0 {
		return exitMessage
	}
	return fmt.Sprintf(standardErrorDetailTemplateConstant, exitMessage, trimmedStandardError)
}

// DescribeExecutionFailure formats the line for an invocation that never ran.
func (formatter GitEventFormatter) DescribeExecutionFailure(command execshell.ShellCommand, failure error) string {
	failureCause := unknownCauseConstant
	if failure != nil {
		failureCause = failure.Error()
	}
	return fmt.Sprintf(invocationNotRunTemplateConstant, formatter.describeInvocation(command), failureCause)
}

func (formatter GitEventFormatter) describeInvocation(command execshell.ShellCommand) string {
	invocationParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	invocationLabel := strings.Join(invocationParts, argumentSeparatorConstant)
	repositoryPath := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(repositoryPath) == 0 {
		return invocationLabel
	}
	return fmt.Sprintf(repositoryLocationTemplateConstant, invocationLabel, repositoryPath)
}

// ConsoleCommandEventLogger renders git invocation events through a zap logger
// configured for human-readable output. It implements execshell.CommandEventObserver.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter GitEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: GitEventFormatter{}}
}

// CommandStarted logs the invocation announcement at info level.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.DescribeStart(command))
}

// CommandCompleted logs zero exits at info level and non-zero exits at warn level.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.DescribeCompletion(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.DescribeExit(command, result))
}

// CommandExecutionFailed logs invocations that never ran at error level.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.DescribeExecutionFailure(command, failure))
}
