package tasks

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/pixpilot/scaffoldfy-sub003/plugin"
	"github.com/pixpilot/scaffoldfy-sub003/process"
	"github.com/pixpilot/scaffoldfy-sub003/values"
)

// Compiler renders templated text against the resolved variable context.
// The full template engine is an external collaborator; the default
// compiler performs the engine's own single-token substitution.
type Compiler interface {
	Render(template string, vars map[string]any) (string, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(template string, vars map[string]any) (string, error)

// Render implements Compiler.
func (f CompilerFunc) Render(template string, vars map[string]any) (string, error) {
	return f(template, vars)
}

// DefaultCompiler substitutes {{id}} tokens only.
func DefaultCompiler() Compiler {
	return CompilerFunc(func(template string, vars map[string]any) (string, error) {
		return values.Interpolate(template, vars), nil
	})
}

// Deps carries the shared collaborators of all built-in handlers.
type Deps struct {
	Fs       afero.Fs
	WorkDir  string
	Compiler Compiler
	// Timeout bounds exec task subprocesses.
	Timeout time.Duration
}

func (d Deps) compiler() Compiler {
	if d.Compiler != nil {
		return d.Compiler
	}
	return DefaultCompiler()
}

func (d Deps) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return process.DefaultTimeout
}

// resolvePath joins a task-relative path onto the working directory.
func (d Deps) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.WorkDir, path)
}

// RegisterBuiltins registers all built-in task handlers.
func RegisterBuiltins(reg *plugin.Registry, deps Deps) {
	reg.Register("write", NewWrite(deps))
	reg.Register("delete", NewDelete(deps))
	reg.Register("rename", NewRename(deps))
	reg.Register("exec", NewExec(deps))
}

// stringConfig extracts a required string field from a task config.
func stringConfig(config map[string]any, key string) (string, error) {
	v, ok := config[key]
	if !ok {
		return "", fmt.Errorf("config field %q is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("config field %q must be a string", key)
	}
	return s, nil
}
