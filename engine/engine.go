package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pixpilot/scaffoldfy-sub003/dag"
	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/expr"
	"github.com/pixpilot/scaffoldfy-sub003/loader"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
	"github.com/pixpilot/scaffoldfy-sub003/plugin"
	"github.com/pixpilot/scaffoldfy-sub003/prompt"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
	"github.com/pixpilot/scaffoldfy-sub003/validation"
	"github.com/pixpilot/scaffoldfy-sub003/values"
)

// Engine runs a merged task configuration against a target directory.
type Engine struct {
	Registry *plugin.Registry
	Loader   *loader.Loader
	Resolver *values.Resolver
	Prompts  prompt.Renderer

	log *logger.Logger
}

// New creates an engine from its collaborators. A nil renderer falls back
// to the non-interactive static renderer.
func New(registry *plugin.Registry, ldr *loader.Loader, resolver *values.Resolver, prompts prompt.Renderer) *Engine {
	if prompts == nil {
		prompts = &prompt.StaticRenderer{}
	}
	return &Engine{
		Registry: registry,
		Loader:   ldr,
		Resolver: resolver,
		Prompts:  prompts,
		log:      logger.WithComponent("engine"),
	}
}

// Task statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// TaskResult records the outcome of one task.
type TaskResult struct {
	ID       string
	Status   string
	Duration time.Duration
	Err      error
}

// Report is the outcome of a run.
type Report struct {
	RunID     string
	Config    string
	DryRun    bool
	Results   []TaskResult
	Completed []string
	Preview   *Preview
}

// Run loads, resolves, schedules, and executes (or previews) the
// configuration at configPath.
func (e *Engine) Run(ctx context.Context, configPath string, dryRun bool) (*Report, error) {
	cfg, err := e.Loader.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	if err := e.Registry.ValidateTasks(cfg.Tasks); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Config: configPath,
		DryRun: dryRun,
	}

	rctx, err := e.resolveGlobals(ctx, cfg)
	if err != nil {
		return nil, err
	}

	enabled, disabled := e.partitionTasks(ctx, cfg.Tasks, rctx)

	plan, err := dag.Schedule(enabled, disabled)
	if err != nil {
		return nil, err
	}
	e.log.Info("execution plan ready", map[string]interface{}{
		"tasks":   len(plan),
		"skipped": len(disabled),
	})

	if dryRun {
		report.Preview = e.PreviewAll(ctx, plan, rctx, disabledIDs(cfg.Tasks, disabled))
		return report, nil
	}

	return report, e.executePlan(ctx, plan, rctx, report)
}

// resolveGlobals builds the run context: variables first, then prompt
// defaults resolved against the variables, then prompt answers. Each batch
// is resolved concurrently and awaited as a barrier before the next phase,
// so the scheduler and diff engine always observe a fully resolved,
// immutable context.
func (e *Engine) resolveGlobals(ctx context.Context, cfg *schema.TaskConfiguration) (*Context, error) {
	rctx := NewContext()

	resolved := e.Resolver.ResolveAll(ctx, cfg.Variables, rctx.Map())
	for _, decl := range cfg.Variables {
		rctx.Set(decl.ID, resolved[decl.ID])
	}

	prompts := e.collectGlobalPrompts(cfg)
	answers, err := e.askPrompts(ctx, prompts, rctx)
	if err != nil {
		return nil, err
	}
	for _, p := range prompts {
		if v, ok := answers[p.ID]; ok {
			rctx.Set(p.ID, v)
		}
	}

	return rctx, nil
}

// collectGlobalPrompts gathers the document's prompts plus task-scoped
// prompts marked global. Tasks ruled out by a lazy pre-check don't surface
// their prompts; the authoritative enablement decision is still the strict
// evaluation against the fully resolved context later.
func (e *Engine) collectGlobalPrompts(cfg *schema.TaskConfiguration) []schema.PromptDeclaration {
	prompts := append([]schema.PromptDeclaration(nil), cfg.Prompts...)

	for _, t := range cfg.Tasks {
		if !e.Resolver.EnabledNow(t.Enabled, nil, expr.Lazy) {
			continue
		}
		for _, p := range t.Prompts {
			if p.Global {
				prompts = append(prompts, p)
			}
		}
	}
	return prompts
}

// askPrompts resolves prompt defaults and delegates to the renderer.
func (e *Engine) askPrompts(ctx context.Context, prompts []schema.PromptDeclaration, rctx *Context) (map[string]any, error) {
	if len(prompts) == 0 {
		return nil, nil
	}

	decls := make([]schema.VariableDeclaration, 0, len(prompts))
	for _, p := range prompts {
		if p.Default != nil {
			decls = append(decls, schema.VariableDeclaration{ID: p.ID, Value: *p.Default})
		}
	}
	defaults := e.Resolver.ResolveAll(ctx, decls, rctx.Map())

	return e.Prompts.Render(prompts, defaults)
}

// partitionTasks splits tasks into the enabled subset handed to the
// scheduler and the satisfied-set of disabled ids.
func (e *Engine) partitionTasks(ctx context.Context, tasks []schema.TaskDeclaration, rctx *Context) ([]schema.TaskDeclaration, map[string]bool) {
	vars := rctx.Map()
	enabled := make([]schema.TaskDeclaration, 0, len(tasks))
	disabled := make(map[string]bool)

	for _, t := range tasks {
		if e.Resolver.EnabledResolved(ctx, t.Enabled, vars) {
			enabled = append(enabled, t)
		} else {
			disabled[t.ID] = true
			e.log.Debug("task disabled by condition", map[string]interface{}{
				logger.FieldTask: t.ID,
			})
		}
	}
	return enabled, disabled
}

// taskContext extends the run context with task-scoped variables and
// prompt answers. The child context is discarded after the task.
func (e *Engine) taskContext(ctx context.Context, t schema.TaskDeclaration, rctx *Context) (*Context, error) {
	tctx := rctx.Child()

	if len(t.Variables) > 0 {
		resolved := e.Resolver.ResolveAll(ctx, t.Variables, rctx.Map())
		for _, decl := range t.Variables {
			tctx.Set(decl.ID, resolved[decl.ID])
		}
	}

	local := make([]schema.PromptDeclaration, 0, len(t.Prompts))
	for _, p := range t.Prompts {
		if !p.Global {
			local = append(local, p)
		}
	}
	if len(local) > 0 {
		answers, err := e.askPrompts(ctx, local, tctx)
		if err != nil {
			return nil, err
		}
		for _, p := range local {
			if v, ok := answers[p.ID]; ok {
				tctx.Set(p.ID, v)
			}
		}
	}

	return tctx, nil
}

// executePlan runs scheduled tasks strictly in order. A failing required
// task aborts the run; a failing optional task is logged and skipped over.
func (e *Engine) executePlan(ctx context.Context, plan []dag.Scheduled, rctx *Context, report *Report) error {
	for _, item := range plan {
		t := item.Task

		tctx, err := e.taskContext(ctx, t, rctx)
		if err != nil {
			return err
		}
		vars := tctx.Map()

		// task-scoped bindings can flip the enablement decision
		if !e.Resolver.EnabledResolved(ctx, t.Enabled, vars) {
			report.Results = append(report.Results, TaskResult{ID: t.ID, Status: StatusSkipped})
			continue
		}

		handler, ok := e.Registry.Get(t.Type)
		if !ok {
			// ValidateTasks runs before scheduling, so this is unreachable
			// unless the registry was mutated mid-run.
			return errors.Validation(fmt.Sprintf("Unknown task type %q", t.Type))
		}

		start := time.Now()
		err = handler.Execute(ctx, t.Config, vars)
		duration := time.Since(start)

		if err != nil {
			report.Results = append(report.Results, TaskResult{ID: t.ID, Status: StatusFailed, Duration: duration, Err: err})
			if t.IsRequired() {
				return errors.Execution(t.ID, err)
			}
			e.log.Warn("optional task failed, continuing", map[string]interface{}{
				logger.FieldTask: t.ID,
				"error":          err.Error(),
			})
			continue
		}

		report.Results = append(report.Results, TaskResult{ID: t.ID, Status: StatusCompleted, Duration: duration})
		report.Completed = append(report.Completed, t.ID)
		e.log.Info("task completed", map[string]interface{}{
			logger.FieldTask:     t.ID,
			logger.FieldDuration: duration.String(),
		})
	}
	return nil
}

// disabledIDs returns the disabled tasks in declaration order.
func disabledIDs(tasks []schema.TaskDeclaration, disabled map[string]bool) []string {
	out := make([]string, 0, len(disabled))
	for _, t := range tasks {
		if disabled[t.ID] {
			out = append(out, t.ID)
		}
	}
	return out
}
