package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/tta/internal/merge"
)

func newModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the supported merge modes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, m := range merge.Modes() {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "born-tta %s\n", Version)
		},
	}
}
