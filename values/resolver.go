package values

import (
	"context"
	"sync"
	"time"

	"github.com/pixpilot/scaffoldfy-sub003/expr"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
	"github.com/pixpilot/scaffoldfy-sub003/process"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

// Resolver turns value declarations into concrete runtime values.
type Resolver struct {
	// WorkDir is the working directory for exec-type values.
	WorkDir string
	// Timeout bounds each exec-type resolution. Defaults to process.DefaultTimeout.
	Timeout time.Duration

	log *logger.Logger
}

// NewResolver creates a resolver rooted at workDir.
func NewResolver(workDir string) *Resolver {
	return &Resolver{
		WorkDir: workDir,
		Timeout: process.DefaultTimeout,
		log:     logger.WithComponent("values"),
	}
}

// Resolve resolves a declared value against the already-resolved context.
// It never fails: unresolvable values come back as nil and are logged on
// the debug channel.
func (r *Resolver) Resolve(ctx context.Context, id string, v schema.Value, vars map[string]any) any {
	if !v.IsSpec() {
		return r.resolveLiteral(v.Literal, vars)
	}

	spec := v.Spec
	switch spec.Kind {
	case schema.KindStatic:
		return spec.Value

	case schema.KindInterpolate:
		template, ok := spec.Value.(string)
		if !ok {
			r.log.Debug("interpolate value is not a string", field(id))
			return nil
		}
		if vars == nil {
			return template
		}
		return Interpolate(template, vars)

	case schema.KindExec:
		command, ok := spec.Value.(string)
		if !ok {
			r.log.Debug("exec value is not a string", field(id))
			return nil
		}
		return r.exec(ctx, id, command, vars)

	case schema.KindConditional:
		if vars == nil {
			return nil
		}
		branch := spec.IfFalse
		if expr.Evaluate(spec.Condition, vars, expr.Options{Mode: expr.Strict}) {
			branch = spec.IfTrue
		}
		if s, ok := branch.(string); ok {
			return Interpolate(s, vars)
		}
		return branch

	default:
		r.log.Error("unknown value spec type", map[string]interface{}{
			logger.FieldVariable: id,
			logger.FieldType:     spec.Kind,
		})
		return nil
	}
}

// resolveLiteral returns a literal unchanged, except strings carrying
// {{id}} placeholders, which are interpolated when a context is supplied.
func (r *Resolver) resolveLiteral(literal any, vars map[string]any) any {
	if s, ok := literal.(string); ok && vars != nil && HasTokens(s) {
		return Interpolate(s, vars)
	}
	return literal
}

func (r *Resolver) exec(ctx context.Context, id, command string, vars map[string]any) any {
	if vars != nil {
		command = Interpolate(command, vars)
	}

	result, err := process.Shell(ctx, command, r.WorkDir, r.Timeout)
	if err != nil {
		r.log.Debug("exec value failed to resolve", map[string]interface{}{
			logger.FieldVariable: id,
			"command":            command,
			"error":              err.Error(),
		})
		return nil
	}
	return Coerce(result.Output())
}

// ResolveAll resolves every declaration concurrently and returns the id to
// value mapping. Declarations in the batch only see the supplied upstream
// context, never each other's results.
func (r *Resolver) ResolveAll(ctx context.Context, decls []schema.VariableDeclaration, vars map[string]any) map[string]any {
	resolved := make(map[string]any, len(decls))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, decl := range decls {
		wg.Add(1)
		go func(decl schema.VariableDeclaration) {
			defer wg.Done()
			value := r.Resolve(ctx, decl.ID, decl.Value, vars)
			mu.Lock()
			resolved[decl.ID] = value
			mu.Unlock()
		}(decl)
	}

	wg.Wait()
	return resolved
}

func field(id string) map[string]interface{} {
	return map[string]interface{}{logger.FieldVariable: id}
}
