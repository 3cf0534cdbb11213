package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gogpu/viewer/surface"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the registered surface backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			available := surface.Available()
			for _, name := range surface.List() {
				e, _ := surface.Get(name)
				state := "unavailable"
				if slices.Contains(available, name) {
					state = "available"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s kind=%s priority=%d %s\n", name, e.Kind, e.Priority, state)
			}
			return nil
		},
	}
}
