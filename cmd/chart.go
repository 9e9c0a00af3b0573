package cmd

import (
	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	chartX      string
	chartY      string
	chartKind   string
	chartTitle  string
	chartOutput string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a bar, line or scatter chart of the current view as PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := columnArg(chartX)
		if err != nil {
			return err
		}
		y, err := columnArg(chartY)
		if err != nil {
			return err
		}
		kind, err := export.ParseChartKind(chartKind)
		if err != nil {
			return err
		}
		v, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		opt := export.DefaultChartOptions()
		if cfg != nil && cfg.ChartWidthIn > 0 && cfg.ChartHeightIn > 0 {
			opt.Width = vg.Length(cfg.ChartWidthIn) * vg.Inch
			opt.Height = vg.Length(cfg.ChartHeightIn) * vg.Inch
		}
		opt.Title = chartTitle
		d, err := export.Chart(v, x, y, kind, opt)
		if err != nil {
			return err
		}
		return writeDownload(cmd, d, chartOutput)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	addQueryFlags(chartCmd)
	chartCmd.Flags().StringVar(&chartX, "x", "region", "x axis column")
	chartCmd.Flags().StringVar(&chartY, "y", "population", "y axis column (numeric)")
	chartCmd.Flags().StringVar(&chartKind, "kind", "bar", "chart kind: bar|line|scatter")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "chart title")
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output path (default: <output_dir>/grafico.png)")
}
