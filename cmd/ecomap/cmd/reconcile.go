package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openecomap/ecomap/internal/geocode/nominatim"
	"github.com/openecomap/ecomap/internal/sources/portfolio"
	"github.com/openecomap/ecomap/internal/sources/seed"
	"github.com/openecomap/ecomap/internal/sources/thehub"
	"github.com/openecomap/ecomap/pkg/geo"
	"github.com/openecomap/ecomap/pkg/legitimacy"
	"github.com/openecomap/ecomap/pkg/logging"
	"github.com/openecomap/ecomap/pkg/reconciler"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/sources"
)

var reconcileFlags struct {
	snapshot  string
	investors string
	portfolio string
	useTheHub bool
	geocode   bool
	rules     string
	places    string
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Fold all sources into the canonical snapshot",
	Long: `Reconcile runs one full pipeline pass: it loads the previous
snapshot as the merge base, folds in the seed investor list, scraped
portfolios and (optionally) the thehub.io listing, resolves coordinates
for entities that lack them, and writes the next snapshot atomically.

Entities absent from this run's sources are carried forward unchanged.`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&reconcileFlags.snapshot, "snapshot", "", "snapshot file (default <data-dir>/companies.json)")
	reconcileCmd.Flags().StringVar(&reconcileFlags.investors, "investors", "", "investor seed file (default <data-dir>/investors.json)")
	reconcileCmd.Flags().StringVar(&reconcileFlags.portfolio, "portfolio", "", "portfolio scrape file (default <data-dir>/portfolio_raw.json)")
	reconcileCmd.Flags().BoolVar(&reconcileFlags.useTheHub, "thehub", false, "also fetch companies from the thehub.io API")
	reconcileCmd.Flags().BoolVar(&reconcileFlags.geocode, "geocode", false, "resolve unknown locations through Nominatim")
	reconcileCmd.Flags().StringVar(&reconcileFlags.rules, "rules", "", "legitimacy rule table override (YAML)")
	reconcileCmd.Flags().StringVar(&reconcileFlags.places, "places", "", "gazetteer override (YAML)")
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	snapshot := reconcileFlags.snapshot
	if snapshot == "" {
		snapshot = dataPath("companies.json")
	}

	baseline, err := registry.Load(snapshot)
	if err != nil {
		return err
	}
	logging.Info().Int("entities", baseline.Len()).Str("snapshot", snapshot).Msg("loaded baseline")

	srcs, err := buildSources()
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources available: provide a seed file, a portfolio file, or --thehub")
	}

	opts := []reconciler.Option{reconciler.WithBaseline(baseline)}

	if reconcileFlags.rules != "" {
		rules, err := legitimacy.LoadRuleset(reconcileFlags.rules)
		if err != nil {
			return err
		}
		filter, err := legitimacy.New(rules)
		if err != nil {
			return err
		}
		opts = append(opts, reconciler.WithFilter(filter))
	}

	var geoOpts []geo.Option
	if reconcileFlags.places != "" {
		gaz, err := geo.LoadGazetteer(reconcileFlags.places)
		if err != nil {
			return err
		}
		geoOpts = append(geoOpts, geo.WithGazetteer(gaz))
	}
	if reconcileFlags.geocode {
		geoOpts = append(geoOpts, geo.WithGeocoder(nominatim.New()))
	}
	resolver, err := geo.NewResolver(geoOpts...)
	if err != nil {
		return err
	}
	opts = append(opts, reconciler.WithResolver(resolver))

	r, err := reconciler.New(opts...)
	if err != nil {
		return err
	}

	reg, result, err := r.Reconcile(ctx, srcs...)
	if err != nil {
		return err
	}
	if err := reg.Save(snapshot); err != nil {
		return err
	}

	fmt.Printf("Snapshot written: %s (%d entities)\n", snapshot, reg.Len())
	fmt.Println(result.Summary())
	return nil
}

// buildSources assembles the source list from the configured files.
// Missing optional files are skipped silently; they are optional inputs,
// not errors.
func buildSources() ([]sources.Source, error) {
	var srcs []sources.Source
	var investorNames map[string]string

	seedPath := reconcileFlags.investors
	if seedPath == "" {
		seedPath = dataPath("investors.json")
	}
	if _, err := os.Stat(seedPath); err == nil {
		list, err := seed.Load(seedPath)
		if err != nil {
			return nil, err
		}
		investorNames = list.Names()
		srcs = append(srcs, list.Source())
		logging.Info().Int("investors", list.Len()).Str("file", seedPath).Msg("loaded seed investors")
	}

	portfolioPath := reconcileFlags.portfolio
	if portfolioPath == "" {
		portfolioPath = dataPath("portfolio_raw.json")
	}
	if _, err := os.Stat(portfolioPath); err == nil {
		portfolios, err := portfolio.Load(portfolioPath, investorNames)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, portfolios...)
		logging.Info().Int("portfolios", len(portfolios)).Str("file", portfolioPath).Msg("loaded portfolio scrapes")
	}

	if reconcileFlags.useTheHub {
		srcs = append(srcs, thehub.New())
	}

	return srcs, nil
}
