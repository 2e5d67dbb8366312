// Package config loads the engine's own runtime options from flags,
// environment variables (SCAFFOLDFY_*), and an optional .env file. Task
// configuration documents are handled by the loader package; this package
// only configures the engine around them.
package config

import (
	"fmt"
	"time"

	"github.com/pixpilot/scaffoldfy-sub003/logger"
)

// Options are the engine's runtime settings.
type Options struct {
	// TargetDir is the directory tasks mutate.
	TargetDir string `mapstructure:"target_dir"`
	// ConfigPath is the root task configuration document.
	ConfigPath string `mapstructure:"config_path"`
	// DryRun previews changes without mutating the filesystem.
	DryRun bool `mapstructure:"dry_run"`
	// Force re-runs an already-initialized target.
	Force bool `mapstructure:"force"`
	// ExecTimeout bounds each subprocess invocation.
	ExecTimeout time.Duration `mapstructure:"exec_timeout"`
	// Logging configures the engine logger.
	Logging logger.Config `mapstructure:"logging"`
}

// ApplyDefaults applies default values.
func (o *Options) ApplyDefaults() {
	if o.TargetDir == "" {
		o.TargetDir = "."
	}
	if o.ExecTimeout == 0 {
		o.ExecTimeout = 10 * time.Second
	}
	o.Logging.ApplyDefaults()
}

// Validate validates the options.
func (o *Options) Validate() error {
	if o.ConfigPath == "" {
		return fmt.Errorf("config: config_path is required")
	}
	if o.ExecTimeout < 0 {
		return fmt.Errorf("config: exec_timeout must not be negative")
	}
	if err := o.Logging.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
