// Package tasks provides the built-in task handlers: write, delete, rename,
// and exec. Each handler implements the plugin.Handler triple over an afero
// filesystem rooted at the target directory, so the diff path can compute
// the exact content the execute path would produce without touching disk.
package tasks
