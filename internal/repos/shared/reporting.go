package shared

import (
	"fmt"
	"io"
	"os"
)

// Reporter emits the per-repository progress lines of a batch operation, such
// as SCAN-DONE and PULL-FAIL markers.
type Reporter interface {
	Printf(format string, arguments ...any)
}

type streamReporter struct {
	destination io.Writer
}

// NewWriterReporter wraps destination in a Reporter, defaulting to standard
// output when destination is nil.
func NewWriterReporter(destination io.Writer) Reporter {
	if destination == nil {
		destination = os.Stdout
	}
	return streamReporter{destination: destination}
}

func (reporter streamReporter) Printf(format string, arguments ...any) {
	fmt.Fprintf(reporter.destination, format, arguments...)
}
