package execshell

// CommandEventObserver is notified about each git invocation the executor
// performs. The pull and clone commands attach a console observer in
// human-readable mode; everything else runs with the discarding observer.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the invocation begins.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the invocation produced an ExecutionResult,
	// including results with non-zero exit codes.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the invocation never produced a
	// result, for example when the git executable is missing.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type discardingCommandEventObserver struct{}

func (discardingCommandEventObserver) CommandStarted(ShellCommand) {}

func (discardingCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (discardingCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
