package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixpilot/scaffoldfy-sub003/process"
)

// Exec runs a shell command in the working directory.
// Config: {command: string}.
type Exec struct {
	deps Deps
}

// NewExec creates the exec handler.
func NewExec(deps Deps) *Exec {
	return &Exec{deps: deps}
}

// Validate implements plugin.Handler.
func (e *Exec) Validate(config map[string]any) []string {
	if _, err := stringConfig(config, "command"); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func (e *Exec) command(config map[string]any, vars map[string]any) (string, error) {
	raw, err := stringConfig(config, "command")
	if err != nil {
		return "", err
	}
	return e.deps.compiler().Render(raw, vars)
}

// Execute implements plugin.Handler.
func (e *Exec) Execute(ctx context.Context, config map[string]any, vars map[string]any) error {
	command, err := e.command(config, vars)
	if err != nil {
		return err
	}

	result, err := process.Shell(ctx, command, e.deps.WorkDir, e.deps.timeout())
	if err != nil {
		detail := ""
		if result != nil && len(result.Stderr) > 0 {
			detail = ": " + strings.TrimSpace(string(result.Stderr))
		}
		return fmt.Errorf("command %q failed%s: %w", command, detail, err)
	}
	return nil
}

// Diff implements plugin.Handler.
// Commands are not executed during a preview; the diff shows the exact
// command the live run would invoke.
func (e *Exec) Diff(_ context.Context, config map[string]any, vars map[string]any) ([]string, error) {
	command, err := e.command(config, vars)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("+ $ %s", command)}, nil
}
