// Package dag produces a deterministic serial execution order for a set of
// task declarations with inter-task dependencies.
//
// The sort is stable: tasks are considered in declaration order, and a task
// is appended as soon as every dependency is already scheduled, so ties
// between ready tasks always preserve input order. The scheduler only ever
// sees the enabled subset of tasks; dependencies on tasks that were removed
// as disabled are passed in as pre-satisfied and never block scheduling.
package dag
