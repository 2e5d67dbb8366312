package tasks

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
)

// Delete removes a file or directory tree. Config: {path: string}.
type Delete struct {
	deps Deps
}

// NewDelete creates the delete handler.
func NewDelete(deps Deps) *Delete {
	return &Delete{deps: deps}
}

// Validate implements plugin.Handler.
func (d *Delete) Validate(config map[string]any) []string {
	if _, err := stringConfig(config, "path"); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func (d *Delete) target(config map[string]any, vars map[string]any) (string, error) {
	raw, err := stringConfig(config, "path")
	if err != nil {
		return "", err
	}
	path, err := d.deps.compiler().Render(raw, vars)
	if err != nil {
		return "", err
	}
	return d.deps.resolvePath(path), nil
}

// Execute implements plugin.Handler.
func (d *Delete) Execute(_ context.Context, config map[string]any, vars map[string]any) error {
	path, err := d.target(config, vars)
	if err != nil {
		return err
	}
	return d.deps.Fs.RemoveAll(path)
}

// Diff implements plugin.Handler.
func (d *Delete) Diff(_ context.Context, config map[string]any, vars map[string]any) ([]string, error) {
	path, err := d.target(config, vars)
	if err != nil {
		return nil, err
	}

	info, err := d.deps.Fs.Stat(path)
	if err != nil {
		return []string{fmt.Sprintf("delete %s (not present)", path)}, nil
	}

	lines := []string{fmt.Sprintf("delete %s", path)}
	if info.IsDir() {
		return append(lines, "- (directory tree)"), nil
	}
	data, err := afero.ReadFile(d.deps.Fs, path)
	if err != nil {
		return nil, err
	}
	return append(lines, diffLines(string(data), "")...), nil
}
