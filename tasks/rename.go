package tasks

import (
	"context"
	"fmt"
)

// Rename moves a file or directory. Config: {from: string, to: string}.
type Rename struct {
	deps Deps
}

// NewRename creates the rename handler.
func NewRename(deps Deps) *Rename {
	return &Rename{deps: deps}
}

// Validate implements plugin.Handler.
func (r *Rename) Validate(config map[string]any) []string {
	var errs []string
	if _, err := stringConfig(config, "from"); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := stringConfig(config, "to"); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

func (r *Rename) targets(config map[string]any, vars map[string]any) (from, to string, err error) {
	rawFrom, err := stringConfig(config, "from")
	if err != nil {
		return "", "", err
	}
	rawTo, err := stringConfig(config, "to")
	if err != nil {
		return "", "", err
	}

	compiler := r.deps.compiler()
	if from, err = compiler.Render(rawFrom, vars); err != nil {
		return "", "", err
	}
	if to, err = compiler.Render(rawTo, vars); err != nil {
		return "", "", err
	}
	return r.deps.resolvePath(from), r.deps.resolvePath(to), nil
}

// Execute implements plugin.Handler.
func (r *Rename) Execute(_ context.Context, config map[string]any, vars map[string]any) error {
	from, to, err := r.targets(config, vars)
	if err != nil {
		return err
	}
	return r.deps.Fs.Rename(from, to)
}

// Diff implements plugin.Handler.
func (r *Rename) Diff(_ context.Context, config map[string]any, vars map[string]any) ([]string, error) {
	from, to, err := r.targets(config, vars)
	if err != nil {
		return nil, err
	}
	if _, err := r.deps.Fs.Stat(from); err != nil {
		return []string{fmt.Sprintf("rename %s -> %s (source not present)", from, to)}, nil
	}
	return []string{
		fmt.Sprintf("- %s", from),
		fmt.Sprintf("+ %s", to),
	}, nil
}
