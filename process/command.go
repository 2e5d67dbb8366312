// Package process executes bounded subprocesses for exec-type values,
// exec-type enablement conditions, and the exec task type.
package process

import (
	"io"
	"time"
)

// DefaultTimeout bounds each subprocess individually. There is no aggregate
// bound on a run; a hung command can only stall its own resolution.
const DefaultTimeout = 10 * time.Second

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// Timeout bounds the total execution time. Defaults to DefaultTimeout if zero.
	Timeout time.Duration
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to 5 seconds if zero.
	GracePeriod time.Duration
}
