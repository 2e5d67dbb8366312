// Package plugin maps task types to their registered handlers. Each engine
// run owns its own Registry instance; there is no process-wide registry, so
// tests construct a fresh one instead of clearing shared state.
package plugin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

// Handler implements one task type.
type Handler interface {
	// Validate checks type-specific config and returns human-readable errors.
	Validate(config map[string]any) []string
	// Execute applies the task's mutation. vars is the task's resolved
	// evaluation context.
	Execute(ctx context.Context, config map[string]any, vars map[string]any) error
	// Diff renders preview lines describing the change Execute would make,
	// computed from the same templating and value resolution, without
	// mutating anything.
	Diff(ctx context.Context, config map[string]any, vars map[string]any) ([]string, error)
}

// Registry maps task type names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		log:      logger.WithComponent("plugin"),
	}
}

// Register binds a handler to a task type. Registering over an existing
// type logs a warning and replaces it; last registration wins, which is
// how user plugins shadow built-ins.
func (r *Registry) Register(taskType string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[taskType]; exists {
		r.log.Warn("task type re-registered, previous handler replaced", map[string]interface{}{
			logger.FieldType: taskType,
		})
	}
	r.handlers[taskType] = h
}

// Get returns the handler for a task type.
func (r *Registry) Get(taskType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[taskType]
	return h, ok
}

// IsRegistered reports whether a task type has a handler.
func (r *Registry) IsRegistered(taskType string) bool {
	_, ok := r.Get(taskType)
	return ok
}

// Unregister removes a task type's handler.
func (r *Registry) Unregister(taskType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, taskType)
}

// Clear removes all handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[string]Handler)
}

// Types returns sorted names of all registered task types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidateTasks checks that every task's type is registered and that its
// type-specific config passes the handler's own validation. Errors are
// aggregated across all tasks and reported together; any error fails the
// whole set.
func (r *Registry) ValidateTasks(tasks []schema.TaskDeclaration) error {
	var messages []string

	for _, t := range tasks {
		h, ok := r.Get(t.Type)
		if !ok {
			messages = append(messages, fmt.Sprintf("task %q: Unknown task type %q", t.ID, t.Type))
			continue
		}
		for _, msg := range h.Validate(t.Config) {
			messages = append(messages, fmt.Sprintf("task %q: %s", t.ID, msg))
		}
	}

	if len(messages) == 0 {
		return nil
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	return appErr.WithDetail("errors", messages)
}
