package cmd

import (
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List column keys, display labels and kinds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range dataset.Columns() {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s (%s)\n", c.Key(), c.Label(), c.Kind())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
