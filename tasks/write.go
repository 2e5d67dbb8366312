package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Write creates or replaces a file with (optionally templated) content.
// Config: {path: string, content: string}.
type Write struct {
	deps Deps
}

// NewWrite creates the write handler.
func NewWrite(deps Deps) *Write {
	return &Write{deps: deps}
}

// Validate implements plugin.Handler.
func (w *Write) Validate(config map[string]any) []string {
	var errs []string
	if _, err := stringConfig(config, "path"); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := stringConfig(config, "content"); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

// render computes the target path and content exactly as Execute writes
// them; the diff path shares it so previews are byte-accurate.
func (w *Write) render(config map[string]any, vars map[string]any) (path, content string, err error) {
	rawPath, err := stringConfig(config, "path")
	if err != nil {
		return "", "", err
	}
	rawContent, err := stringConfig(config, "content")
	if err != nil {
		return "", "", err
	}

	compiler := w.deps.compiler()
	if path, err = compiler.Render(rawPath, vars); err != nil {
		return "", "", fmt.Errorf("rendering path: %w", err)
	}
	if content, err = compiler.Render(rawContent, vars); err != nil {
		return "", "", fmt.Errorf("rendering content: %w", err)
	}
	return w.deps.resolvePath(path), content, nil
}

// Execute implements plugin.Handler.
func (w *Write) Execute(_ context.Context, config map[string]any, vars map[string]any) error {
	path, content, err := w.render(config, vars)
	if err != nil {
		return err
	}
	if err := w.deps.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	return afero.WriteFile(w.deps.Fs, path, []byte(content), 0o644)
}

// Diff implements plugin.Handler.
func (w *Write) Diff(_ context.Context, config map[string]any, vars map[string]any) ([]string, error) {
	path, content, err := w.render(config, vars)
	if err != nil {
		return nil, err
	}

	existing := ""
	if data, err := afero.ReadFile(w.deps.Fs, path); err == nil {
		existing = string(data)
	}

	if existing == content {
		return []string{fmt.Sprintf("write %s (unchanged)", path)}, nil
	}
	lines := []string{fmt.Sprintf("write %s", path)}
	return append(lines, diffLines(existing, content)...), nil
}
