package loader

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
	"github.com/pixpilot/scaffoldfy-sub003/validation"
)

// Loader loads and merges task configuration documents.
type Loader struct {
	fs  afero.Fs
	log *logger.Logger

	mu    sync.Mutex
	cache map[string]*schema.TaskConfiguration
}

// New creates a loader reading from the given filesystem.
func New(fs afero.Fs) *Loader {
	return &Loader{
		fs:    fs,
		log:   logger.WithComponent("loader"),
		cache: make(map[string]*schema.TaskConfiguration),
	}
}

// Load reads the document at path, resolves its extends chain, and returns
// the merged effective configuration. Results are cached by absolute path.
func (l *Loader) Load(path string) (*schema.TaskConfiguration, error) {
	return l.load(path, make(map[string]bool))
}

// ClearCache drops all cached merged configurations; subsequent loads
// re-read from the filesystem.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*schema.TaskConfiguration)
}

func (l *Loader) load(path string, stack map[string]bool) (*schema.TaskConfiguration, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Configurationf("resolving path %q: %v", path, err)
	}

	l.mu.Lock()
	cached, ok := l.cache[abs]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	if stack[abs] {
		return nil, errors.Configurationf("extends cycle detected at %q", abs)
	}
	stack[abs] = true
	defer delete(stack, abs)

	doc, err := l.read(abs)
	if err != nil {
		return nil, err
	}

	// A document disabled by its own explicit literal contributes no tasks,
	// but its prompts and variables still flow to descendants.
	if doc.Enabled.IsLiteralFalse() {
		doc.Tasks = nil
	}

	merged := doc
	if len(doc.Extends) > 0 {
		base := &schema.TaskConfiguration{}
		dir := filepath.Dir(abs)

		for _, ref := range doc.Extends {
			parentPath := ref
			if !filepath.IsAbs(parentPath) {
				parentPath = filepath.Join(dir, parentPath)
			}
			parent, err := l.load(parentPath, stack)
			if err != nil {
				return nil, err
			}
			base = Merge(base, parent)
		}
		merged = Merge(base, doc)
	}

	l.mu.Lock()
	l.cache[abs] = merged
	l.mu.Unlock()

	l.log.Debug("configuration loaded", map[string]interface{}{
		logger.FieldPath: abs,
		"tasks":          len(merged.Tasks),
	})
	return merged, nil
}

func (l *Loader) read(abs string) (*schema.TaskConfiguration, error) {
	data, err := afero.ReadFile(l.fs, abs)
	if err != nil {
		return nil, errors.Configurationf("reading %q: %v", abs, err)
	}

	var doc schema.TaskConfiguration
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Configurationf("parsing %q: %v", abs, err)
	}

	if doc.Name == "" {
		return nil, errors.Configurationf("%q: name is required", abs)
	}
	if !validation.ValidName(doc.Name) {
		return nil, errors.Configurationf("%q: name %q must be kebab-case", abs, doc.Name)
	}
	return &doc, nil
}
