package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/shlex"
)

// shell metacharacters that require a real shell rather than direct exec.
const shellMeta = "|&;<>()$`\\\"'*?[]#~{}"

// Shell executes a command string. Plain commands are split into argv with
// shell-style quoting rules and executed directly; commands using shell
// metacharacters are handed to `sh -c`.
func Shell(ctx context.Context, command, dir string, timeout time.Duration) (*Result, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, fmt.Errorf("process: command is empty")
	}

	cmd := Command{Dir: dir, Timeout: timeout}

	if strings.ContainsAny(command, shellMeta) {
		cmd.Binary = "sh"
		cmd.Args = []string{"-c", command}
		return Run(ctx, cmd)
	}

	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("process: splitting command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("process: command is empty")
	}
	cmd.Binary = argv[0]
	cmd.Args = argv[1:]
	return Run(ctx, cmd)
}
