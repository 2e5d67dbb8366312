package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pixpilot/scaffoldfy-sub003/logger"
	"github.com/pixpilot/scaffoldfy-sub003/state"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the task configuration against the target directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := afero.NewOsFs()
			store := state.NewStore(fs, opts.TargetDir)

			if err := checkInitialized(store); err != nil {
				return err
			}

			eng := newEngine(fs)
			report, err := eng.Run(cmd.Context(), opts.ConfigPath, false)

			// an aborted run still records the tasks that did complete
			if report != nil && len(report.Completed) > 0 {
				saveErr := store.Save(state.NewRecord(opts.ConfigPath, Version, report.Completed))
				if err == nil {
					err = saveErr
				}
			}
			if err != nil {
				return err
			}

			logger.Info("run finished", map[string]interface{}{
				logger.FieldRunID: report.RunID,
				"completed":       len(report.Completed),
			})
			fmt.Printf("%d task(s) completed\n", len(report.Completed))
			return nil
		},
	}
}
