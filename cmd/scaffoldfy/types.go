package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered task types",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng := newEngine(afero.NewMemMapFs())
			for _, t := range eng.Registry.Types() {
				fmt.Println(t)
			}
			return nil
		},
	}
}
