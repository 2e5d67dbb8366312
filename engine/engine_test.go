package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/pixpilot/scaffoldfy-sub003/loader"
	"github.com/pixpilot/scaffoldfy-sub003/plugin"
	"github.com/pixpilot/scaffoldfy-sub003/prompt"
	"github.com/pixpilot/scaffoldfy-sub003/values"
)

// recordingHandler notes every execution and optionally fails named tasks.
type recordingHandler struct {
	mu       sync.Mutex
	executed []string
	seenVars []map[string]any
	failIDs  map[string]bool
}

func (h *recordingHandler) Validate(map[string]any) []string { return nil }

func (h *recordingHandler) Execute(_ context.Context, config map[string]any, vars map[string]any) error {
	id, _ := config["id"].(string)
	h.mu.Lock()
	h.executed = append(h.executed, id)
	h.seenVars = append(h.seenVars, vars)
	h.mu.Unlock()
	if h.failIDs[id] {
		return fmt.Errorf("handler failure for %s", id)
	}
	return nil
}

func (h *recordingHandler) Diff(_ context.Context, config map[string]any, _ map[string]any) ([]string, error) {
	id, _ := config["id"].(string)
	return []string{"would touch " + id}, nil
}

func newTestEngine(t *testing.T, configJSON string, handler plugin.Handler, answers map[string]any) *Engine {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cfg/main.json", []byte(configJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := plugin.NewRegistry()
	reg.Register("fake", handler)

	return New(reg, loader.New(fs), values.NewResolver("/work"), &prompt.StaticRenderer{Answers: answers})
}

func TestRun_OrderAndContext(t *testing.T) {
	cfg := `{
		"name": "demo",
		"variables": [{"id": "who", "value": "world"}],
		"tasks": [
			{"id": "second", "type": "fake", "dependencies": ["first"], "config": {"id": "second"}},
			{"id": "first", "type": "fake", "config": {"id": "first"}}
		]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, nil)

	report, err := eng.Run(context.Background(), "/cfg/main.json", false)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(h.executed, ",") != "first,second" {
		t.Fatalf("expected dependency order, got %v", h.executed)
	}
	if strings.Join(report.Completed, ",") != "first,second" {
		t.Fatalf("unexpected completed list: %v", report.Completed)
	}
	if report.RunID == "" {
		t.Fatal("expected a run id")
	}
	if h.seenVars[0]["who"] != "world" {
		t.Fatalf("expected resolved variables in task context, got %v", h.seenVars[0])
	}
}

func TestRun_DisabledTaskSatisfiesDependents(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [
			{"id": "off", "type": "fake", "enabled": false, "config": {"id": "off"}},
			{"id": "after", "type": "fake", "dependencies": ["off"], "config": {"id": "after"}}
		]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, nil)

	if _, err := eng.Run(context.Background(), "/cfg/main.json", false); err != nil {
		t.Fatal(err)
	}
	if strings.Join(h.executed, ",") != "after" {
		t.Fatalf("expected only the dependent to run, got %v", h.executed)
	}
}

func TestRun_EnabledExpression(t *testing.T) {
	cfg := `{
		"name": "demo",
		"variables": [{"id": "env", "value": "prod"}],
		"tasks": [
			{"id": "prod-only", "type": "fake", "enabled": "env == 'prod'", "config": {"id": "prod-only"}},
			{"id": "dev-only", "type": "fake", "enabled": "env == 'dev'", "config": {"id": "dev-only"}}
		]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, nil)

	if _, err := eng.Run(context.Background(), "/cfg/main.json", false); err != nil {
		t.Fatal(err)
	}
	if strings.Join(h.executed, ",") != "prod-only" {
		t.Fatalf("expected condition to gate execution, got %v", h.executed)
	}
}

func TestRun_RequiredFailureAborts(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [
			{"id": "boom", "type": "fake", "config": {"id": "boom"}},
			{"id": "never", "type": "fake", "dependencies": ["boom"], "config": {"id": "never"}}
		]
	}`

	h := &recordingHandler{failIDs: map[string]bool{"boom": true}}
	eng := newTestEngine(t, cfg, h, nil)

	_, err := eng.Run(context.Background(), "/cfg/main.json", false)
	if err == nil {
		t.Fatal("expected run to abort")
	}
	if strings.Join(h.executed, ",") != "boom" {
		t.Fatalf("expected abort before dependent, got %v", h.executed)
	}
}

func TestRun_AbortReportKeepsPartialProgress(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [
			{"id": "done", "type": "fake", "config": {"id": "done"}},
			{"id": "boom", "type": "fake", "dependencies": ["done"], "config": {"id": "boom"}}
		]
	}`

	h := &recordingHandler{failIDs: map[string]bool{"boom": true}}
	eng := newTestEngine(t, cfg, h, nil)

	report, err := eng.Run(context.Background(), "/cfg/main.json", false)
	if err == nil {
		t.Fatal("expected run to abort")
	}
	// the report survives the abort so the host can persist what finished
	if report == nil {
		t.Fatal("expected a report alongside the error")
	}
	if strings.Join(report.Completed, ",") != "done" {
		t.Fatalf("expected completed tasks recorded, got %v", report.Completed)
	}
}

func TestRun_OptionalFailureContinues(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [
			{"id": "boom", "type": "fake", "required": false, "config": {"id": "boom"}},
			{"id": "later", "type": "fake", "config": {"id": "later"}}
		]
	}`

	h := &recordingHandler{failIDs: map[string]bool{"boom": true}}
	eng := newTestEngine(t, cfg, h, nil)

	report, err := eng.Run(context.Background(), "/cfg/main.json", false)
	if err != nil {
		t.Fatalf("optional failure must not abort: %v", err)
	}
	if strings.Join(h.executed, ",") != "boom,later" {
		t.Fatalf("expected run to continue, got %v", h.executed)
	}
	if strings.Join(report.Completed, ",") != "later" {
		t.Fatalf("failed task must not count as completed: %v", report.Completed)
	}

	var failed *TaskResult
	for i := range report.Results {
		if report.Results[i].ID == "boom" {
			failed = &report.Results[i]
		}
	}
	if failed == nil || failed.Status != StatusFailed {
		t.Fatalf("expected boom marked failed, got %+v", report.Results)
	}
}

func TestRun_UnknownTaskTypeRejected(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [{"id": "t", "type": "frobnicate"}]
	}`

	eng := newTestEngine(t, cfg, &recordingHandler{}, nil)

	_, err := eng.Run(context.Background(), "/cfg/main.json", false)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), `Unknown task type "frobnicate"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_DryRunPreview(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [
			{"id": "go", "type": "fake", "config": {"id": "go"}},
			{"id": "off", "type": "fake", "enabled": false, "config": {"id": "off"}}
		]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, nil)

	report, err := eng.Run(context.Background(), "/cfg/main.json", true)
	if err != nil {
		t.Fatal(err)
	}

	if len(h.executed) != 0 {
		t.Fatalf("dry run must not execute anything, ran %v", h.executed)
	}
	if report.Preview == nil {
		t.Fatal("expected a preview")
	}

	out := report.Preview.String()
	if !strings.Contains(out, "[go]") || !strings.Contains(out, "would touch go") {
		t.Fatalf("expected diff lines in preview:\n%s", out)
	}
	if !strings.Contains(out, "[off]") || !strings.Contains(out, skippedLine) {
		t.Fatalf("expected skipped section for disabled task:\n%s", out)
	}
}

func TestRun_PromptAnswersInContext(t *testing.T) {
	cfg := `{
		"name": "demo",
		"prompts": [{"id": "projectName", "type": "input", "message": "Name?", "default": "fallback"}],
		"tasks": [{"id": "t", "type": "fake", "config": {"id": "t"}}]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, map[string]any{"projectName": "answered"})

	if _, err := eng.Run(context.Background(), "/cfg/main.json", false); err != nil {
		t.Fatal(err)
	}
	if h.seenVars[0]["projectName"] != "answered" {
		t.Fatalf("expected prompt answer in context, got %v", h.seenVars[0])
	}
}

func TestRun_PromptDefaultWhenUnanswered(t *testing.T) {
	cfg := `{
		"name": "demo",
		"prompts": [{"id": "port", "type": "number", "message": "Port?", "default": 8080}],
		"tasks": [{"id": "t", "type": "fake", "config": {"id": "t"}}]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, nil)

	if _, err := eng.Run(context.Background(), "/cfg/main.json", false); err != nil {
		t.Fatal(err)
	}
	if h.seenVars[0]["port"] != float64(8080) {
		t.Fatalf("expected default answer, got %v (%T)", h.seenVars[0]["port"], h.seenVars[0]["port"])
	}
}

func TestRun_CycleRejected(t *testing.T) {
	cfg := `{
		"name": "demo",
		"tasks": [
			{"id": "a", "type": "fake", "dependencies": ["b"]},
			{"id": "b", "type": "fake", "dependencies": ["a"]}
		]
	}`

	eng := newTestEngine(t, cfg, &recordingHandler{}, nil)

	_, err := eng.Run(context.Background(), "/cfg/main.json", false)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestRun_TaskScopedVariables(t *testing.T) {
	cfg := `{
		"name": "demo",
		"variables": [{"id": "shared", "value": "global"}],
		"tasks": [
			{
				"id": "scoped",
				"type": "fake",
				"variables": [{"id": "local", "value": "mine"}],
				"config": {"id": "scoped"}
			},
			{"id": "plain", "type": "fake", "dependencies": ["scoped"], "config": {"id": "plain"}}
		]
	}`

	h := &recordingHandler{}
	eng := newTestEngine(t, cfg, h, nil)

	if _, err := eng.Run(context.Background(), "/cfg/main.json", false); err != nil {
		t.Fatal(err)
	}

	if h.seenVars[0]["local"] != "mine" || h.seenVars[0]["shared"] != "global" {
		t.Fatalf("scoped task context wrong: %v", h.seenVars[0])
	}
	// the sibling must not see the task-scoped binding
	if _, leaked := h.seenVars[1]["local"]; leaked {
		t.Fatalf("task-scoped variable leaked into sibling: %v", h.seenVars[1])
	}
}
