package cmd

import (
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	descSampleRows int
	descTopRegions int
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the dataset: per-column statistics, regions and sample rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		opt := analysis.DefaultReportOptions()
		if cmd.Flags().Changed("sample-rows") && descSampleRows >= 0 {
			opt.SampleRows = descSampleRows
		}
		if cmd.Flags().Changed("top-regions") && descTopRegions >= 0 {
			opt.TopRegions = descTopRegions
		}
		fmt.Fprint(cmd.OutOrStdout(), analysis.Describe(v, opt).Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	addQueryFlags(describeCmd)
	describeCmd.Flags().IntVar(&descSampleRows, "sample-rows", 5, "leading rows to include (0 disables)")
	describeCmd.Flags().IntVar(&descTopRegions, "top-regions", 8, "regions to list (0 = all)")
}
