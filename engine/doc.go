// Package engine orchestrates a scaffolding run: it loads the merged task
// configuration, resolves global variables and prompt defaults in one
// concurrent batch, evaluates task enablement, schedules the enabled tasks,
// and then either executes them in order or renders a dry-run preview.
//
// The run context is resolved once, before scheduling, and is read-only
// afterwards; tasks extend it with task-scoped bindings through child
// contexts that never leak back. The dry-run path shares the exact same
// resolution, enablement, and dispatch machinery as live execution and
// differs only in calling each handler's Diff instead of Execute.
package engine
