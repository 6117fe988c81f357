package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openecomap/ecomap/internal/geocode/nominatim"
	"github.com/openecomap/ecomap/pkg/geo"
	"github.com/openecomap/ecomap/pkg/registry"
)

var geocodeFlags struct {
	snapshot string
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Resolve coordinates for entities that lack them",
	Long: `Geocode walks the snapshot and resolves coordinates for every
entity without one, using the known-place gazetteer first and Nominatim
for locations the gazetteer doesn't cover. Existing coordinates are
never touched.

Nominatim allows one request per second, so a large backlog takes a
while; the snapshot is rewritten once at the end.`,
	RunE: runGeocode,
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
	geocodeCmd.Flags().StringVar(&geocodeFlags.snapshot, "snapshot", "", "snapshot file (default <data-dir>/companies.json)")
}

func runGeocode(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	snapshot := geocodeFlags.snapshot
	if snapshot == "" {
		snapshot = dataPath("companies.json")
	}

	reg, err := registry.Load(snapshot)
	if err != nil {
		return err
	}

	resolver, err := geo.NewResolver(geo.WithGeocoder(nominatim.New()))
	if err != nil {
		return err
	}

	resolved := 0
	for _, e := range reg.List() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.Coordinates != nil {
			continue
		}
		if coords := resolver.Resolve(ctx, nil, e.Location); coords != nil {
			e.Coordinates = coords
			resolved++
		}
	}

	if err := reg.Save(snapshot); err != nil {
		return err
	}

	fmt.Printf("Resolved coordinates for %d of %d entities\n", resolved, reg.Len())
	return nil
}
