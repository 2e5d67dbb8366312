package dag

import (
	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/schema"
)

// Scheduled pairs a task with its topological rank. Tasks sharing a rank
// have no ordering constraint between them but still execute serially in
// declaration order.
type Scheduled struct {
	Task schema.TaskDeclaration
	Rank int
}

// Schedule orders tasks so every dependency precedes its dependents.
// satisfied holds ids whose dependency edges are considered already met
// (tasks removed as disabled before scheduling). A dependency id matching
// neither a task nor the satisfied set is a fatal configuration error; no
// progress while tasks remain is a cycle error naming a blocked task.
func Schedule(tasks []schema.TaskDeclaration, satisfied map[string]bool) ([]Scheduled, error) {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if !known[dep] && !satisfied[dep] {
				return nil, errors.Configurationf("task %q depends on unknown task %q", t.ID, dep)
			}
		}
	}

	ordered := make([]Scheduled, 0, len(tasks))
	done := make(map[string]bool, len(tasks))
	remaining := len(tasks)
	rank := 0

	for remaining > 0 {
		progressed := false
		scheduledThisRank := make([]string, 0, remaining)

		for _, t := range tasks {
			if done[t.ID] {
				continue
			}
			if ready(t, done, satisfied) {
				ordered = append(ordered, Scheduled{Task: t, Rank: rank})
				scheduledThisRank = append(scheduledThisRank, t.ID)
				progressed = true
			}
		}

		if !progressed {
			for _, t := range tasks {
				if !done[t.ID] {
					return nil, errors.Cycle(t.ID)
				}
			}
		}

		// Tasks scheduled in the same pass never unblock each other, which
		// keeps the rank a true topological depth.
		for _, id := range scheduledThisRank {
			done[id] = true
		}
		remaining -= len(scheduledThisRank)
		rank++
	}

	return ordered, nil
}

func ready(t schema.TaskDeclaration, done, satisfied map[string]bool) bool {
	for _, dep := range t.Dependencies {
		if !done[dep] && !satisfied[dep] {
			return false
		}
	}
	return true
}

// Order is a convenience over Schedule returning just the task sequence.
func Order(tasks []schema.TaskDeclaration, satisfied map[string]bool) ([]schema.TaskDeclaration, error) {
	scheduled, err := Schedule(tasks, satisfied)
	if err != nil {
		return nil, err
	}
	out := make([]schema.TaskDeclaration, len(scheduled))
	for i, s := range scheduled {
		out[i] = s.Task
	}
	return out, nil
}
