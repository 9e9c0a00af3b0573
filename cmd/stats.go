package cmd

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/countrydash/internal/analysis"
	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [column...]",
	Short: "Mean, median and standard deviation of numeric columns",
	Long: `Print count, mean, median, sample standard deviation, min and max for the
given columns (default: population, area, border, language and timezone counts).
Values that are undefined for the current rows print as n/a.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cols := dataset.StatColumns()
		if len(args) > 0 {
			cols = nil
			for _, a := range args {
				c, err := columnArg(a)
				if err != nil {
					return err
				}
				cols = append(cols, c)
			}
		}
		v, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range cols {
			s, err := analysis.Stats(v, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s): count=%d mean=%s median=%s stddev=%s min=%s max=%s\n",
				c.Key(), c.Label(), s.Count, statNum(s.Mean), statNum(s.Median), statNum(s.StdDev), statNum(s.Min), statNum(s.Max))
		}
		return nil
	},
}

func statNum(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", f)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addQueryFlags(statsCmd)
}
