// Package loader resolves task configuration inheritance: it reads a JSON
// document, follows its extends references recursively, and deep-merges the
// ancestor chain into one effective configuration.
//
// Merging is ancestor-first: array fields (tasks, prompts, variables,
// dependencies) concatenate ancestors before descendants, while scalar
// fields are overridden by the most specific document that sets them. A
// document whose own enabled field is the literal false contributes no
// tasks of its own, but still donates its prompts and variables to
// descendants.
//
// Loads are cached by resolved absolute path; re-encountering a path that
// is still being resolved on the current call stack is a fatal extends
// cycle.
package loader
