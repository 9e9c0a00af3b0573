package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/KaramelBytes/countrydash/internal/web"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" && cfg != nil {
			addr = cfg.ListenAddr
		}
		if addr == "" {
			addr = "127.0.0.1:8501"
		}
		chart := export.DefaultChartOptions()
		if cfg != nil && cfg.ChartWidthIn > 0 && cfg.ChartHeightIn > 0 {
			chart.Width = vg.Length(cfg.ChartWidthIn) * vg.Inch
			chart.Height = vg.Length(cfg.ChartHeightIn) * vg.Inch
		}

		// --input serves a fixed file; otherwise each refresh hits the API
		var src web.Source = newClient()
		if flagInput != "" {
			src = web.SourceFunc(func(ctx context.Context) (*dataset.Dataset, error) {
				return loadDataset(ctx)
			})
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		srv := web.NewServer(src, web.Options{Logger: logger, Chart: chart})
		return srv.Start(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: listen_addr from config)")
}
