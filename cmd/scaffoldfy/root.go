package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pixpilot/scaffoldfy-sub003/config"
	"github.com/pixpilot/scaffoldfy-sub003/engine"
	"github.com/pixpilot/scaffoldfy-sub003/loader"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
	"github.com/pixpilot/scaffoldfy-sub003/plugin"
	"github.com/pixpilot/scaffoldfy-sub003/state"
	"github.com/pixpilot/scaffoldfy-sub003/tasks"
	"github.com/pixpilot/scaffoldfy-sub003/values"
)

// Version is set at build time.
var Version = "dev"

var opts *config.Options

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scaffoldfy",
		Short:         "Declarative project scaffolding from JSON task configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, loaded)
			loaded.ApplyDefaults()
			if err := loaded.Validate(); err != nil {
				return err
			}
			logger.Init(loaded.Logging)
			opts = loaded
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "path to the root task configuration document")
	flags.StringP("dir", "d", ".", "target directory to scaffold")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("force", false, "re-run an already-initialized target")

	root.AddCommand(newRunCmd(), newPlanCmd(), newTypesCmd())
	return root
}

func applyFlags(cmd *cobra.Command, o *config.Options) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("config"); v != "" {
		o.ConfigPath = v
	}
	if v, _ := flags.GetString("dir"); v != "" {
		o.TargetDir = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		o.Logging.Level = v
	}
	if v, _ := flags.GetBool("force"); v {
		o.Force = v
	}
}

// newEngine wires the engine's collaborators for the target directory.
func newEngine(fs afero.Fs) *engine.Engine {
	registry := plugin.NewRegistry()
	resolver := values.NewResolver(opts.TargetDir)
	resolver.Timeout = opts.ExecTimeout

	tasks.RegisterBuiltins(registry, tasks.Deps{
		Fs:      fs,
		WorkDir: opts.TargetDir,
		Timeout: opts.ExecTimeout,
	})

	return engine.New(registry, loader.New(fs), resolver, nil)
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// checkInitialized guards a live run against an already-initialized target.
func checkInitialized(store *state.Store) error {
	if !store.Exists() || opts.Force {
		return nil
	}
	rec, err := store.Load()
	if err != nil {
		return err
	}
	return fmt.Errorf("target already initialized at %s (run %s); use --force to re-run",
		rec.InitializedAt.Format("2006-01-02 15:04:05"), rec.RunID)
}
