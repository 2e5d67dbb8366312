package values

import (
	"context"

	"github.com/pixpilot/scaffoldfy-sub003/expr"
	"github.com/pixpilot/scaffoldfy-sub003/process"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

// EnabledNow decides enablement without running subprocesses. Exec-type
// conditions are unknown at this point and assumed true; the authoritative
// decision is EnabledResolved once the async pass can run commands.
// Expression conditions are evaluated with the supplied mode.
func (r *Resolver) EnabledNow(e schema.Enabled, vars map[string]any, mode expr.Mode) bool {
	switch {
	case !e.Set:
		return true
	case e.Literal != nil:
		return *e.Literal
	case e.Condition != nil:
		return true // unknown until the async pass executes the command
	default:
		return expr.Evaluate(e.Expression, vars, expr.Options{Mode: mode})
	}
}

// EnabledResolved decides enablement with full resolution: exec-type
// conditions run their command and map the trimmed output to a boolean.
func (r *Resolver) EnabledResolved(ctx context.Context, e schema.Enabled, vars map[string]any) bool {
	switch {
	case !e.Set:
		return true
	case e.Literal != nil:
		return *e.Literal
	case e.Condition != nil:
		command, ok := e.Condition.Value.(string)
		if !ok {
			return false
		}
		if vars != nil {
			command = Interpolate(command, vars)
		}
		result, err := process.Shell(ctx, command, r.WorkDir, r.Timeout)
		if err != nil {
			return false
		}
		return execTruthy(result.Output())
	default:
		return expr.Evaluate(e.Expression, vars, expr.Options{Mode: expr.Strict})
	}
}

// execTruthy maps command output to a boolean: "false", "0", "no", and
// empty output are false; any other text is true.
func execTruthy(output string) bool {
	switch output {
	case "", "false", "0", "no":
		return false
	}
	return true
}
