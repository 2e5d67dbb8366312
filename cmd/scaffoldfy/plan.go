package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Preview the changes a run would make, without touching disk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Mutating task types still get a read-only view: writes during
			// a plan would be a handler bug, so fail them loudly.
			fs := afero.NewReadOnlyFs(afero.NewOsFs())

			eng := newEngine(fs)
			report, err := eng.Run(cmd.Context(), opts.ConfigPath, true)
			if err != nil {
				return err
			}

			fmt.Print(report.Preview.String())
			return nil
		},
	}
}
