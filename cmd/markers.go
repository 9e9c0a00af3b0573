package cmd

import (
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/KaramelBytes/countrydash/internal/utils"
	"github.com/spf13/cobra"
)

var markersGeoJSON bool

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print map markers (name, position, popup) for the current view",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		var b []byte
		if markersGeoJSON {
			b, err = export.MarkersGeoJSON(v)
		} else {
			b, err = utils.PrettyJSON(export.Markers(v))
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markersCmd)
	addQueryFlags(markersCmd)
	markersCmd.Flags().BoolVar(&markersGeoJSON, "geojson", false, "emit a GeoJSON FeatureCollection")
}
