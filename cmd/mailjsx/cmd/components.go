package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailjsx/pkg/components"
)

func newComponentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "list the prebuilt components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := make([]string, 0, len(components.Exports()))
			for name := range components.Exports() {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
