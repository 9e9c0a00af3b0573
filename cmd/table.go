package cmd

import (
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/analysis"
	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/KaramelBytes/countrydash/internal/utils"
	"github.com/spf13/cobra"
)

var tableFormat string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the (filtered, sorted) country table",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch tableFormat {
		case "md", "markdown", "":
			fmt.Fprint(out, analysis.MarkdownTable(dataset.Columns(), v.Rows()))
			fmt.Fprintf(out, "\n%d of %d rows\n", v.Len(), v.Dataset().Len())
		case "json":
			b, err := utils.PrettyJSON(v.Rows())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		case "csv":
			b, err := export.ToCSV(v)
			if err != nil {
				return err
			}
			_, _ = out.Write(b)
		default:
			return fmt.Errorf("unsupported --format: %s (use md|json|csv)", tableFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	addQueryFlags(tableCmd)
	tableCmd.Flags().StringVarP(&tableFormat, "format", "f", "md", "output format: md|json|csv")
}
