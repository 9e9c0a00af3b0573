package cmd

import (
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/KaramelBytes/countrydash/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current view as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		v, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		d, err := export.Table(v, format)
		if err != nil {
			return err
		}
		return writeDownload(cmd, d, exportOutput)
	},
}

// writeDownload saves d to -o or to output_dir under its suggested name.
func writeDownload(cmd *cobra.Command, d *export.Download, explicit string) error {
	dir := "."
	if cfg != nil && cfg.OutputDir != "" {
		dir = cfg.OutputDir
	}
	path := utils.OutputPath(explicit, dir, d.Filename)
	if err := utils.SafeWriteFile(path, d.Data); err != nil {
		return err
	}
	logger.Debug("export written", zap.String("path", path), zap.Int("bytes", len(d.Data)))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d bytes)\n", path, len(d.Data))
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addQueryFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv|xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default: <output_dir>/datos_filtrados.<ext>)")
}
