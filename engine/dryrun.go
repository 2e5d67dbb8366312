package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixpilot/scaffoldfy-sub003/dag"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
)

// TaskPreview is the rendered preview of one task.
type TaskPreview struct {
	ID    string
	Lines []string
}

// Preview aggregates per-task previews in execution order.
type Preview struct {
	Tasks []TaskPreview
}

// String renders the full preview report.
func (p *Preview) String() string {
	var sb strings.Builder
	for _, t := range p.Tasks {
		fmt.Fprintf(&sb, "[%s]\n", t.ID)
		for _, line := range t.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

const skippedLine = "skipped — condition not met"

// PreviewAll renders the dry-run preview for a scheduled plan. Each task is
// re-checked with the same strict enablement evaluation the executor uses
// (now including task-scoped bindings); disabled tasks emit a single
// skipped line. A diff failure for one task is reported inline and never
// stops the walk. Tasks disabled before scheduling are appended as skipped
// entries so the report covers the whole configuration.
func (e *Engine) PreviewAll(ctx context.Context, plan []dag.Scheduled, rctx *Context, skipped []string) *Preview {
	preview := &Preview{}

	for _, item := range plan {
		t := item.Task
		entry := TaskPreview{ID: t.ID}

		tctx, err := e.taskContext(ctx, t, rctx)
		if err != nil {
			entry.Lines = []string{fmt.Sprintf("! preview failed: %v", err)}
			preview.Tasks = append(preview.Tasks, entry)
			continue
		}
		vars := tctx.Map()

		if !e.Resolver.EnabledResolved(ctx, t.Enabled, vars) {
			entry.Lines = []string{skippedLine}
			preview.Tasks = append(preview.Tasks, entry)
			continue
		}

		handler, ok := e.Registry.Get(t.Type)
		if !ok {
			entry.Lines = []string{fmt.Sprintf("! Unknown task type %q", t.Type)}
			preview.Tasks = append(preview.Tasks, entry)
			continue
		}

		lines, err := handler.Diff(ctx, t.Config, vars)
		if err != nil {
			e.log.Warn("diff computation failed", map[string]interface{}{
				logger.FieldTask: t.ID,
				"error":          err.Error(),
			})
			entry.Lines = []string{fmt.Sprintf("! diff failed: %v", err)}
		} else {
			entry.Lines = lines
		}
		preview.Tasks = append(preview.Tasks, entry)
	}

	for _, id := range skipped {
		preview.Tasks = append(preview.Tasks, TaskPreview{ID: id, Lines: []string{skippedLine}})
	}

	return preview
}
