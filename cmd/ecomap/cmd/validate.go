package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openecomap/ecomap/internal/registry/cvrapi"
	"github.com/openecomap/ecomap/pkg/registry"
	"github.com/openecomap/ecomap/pkg/validation"
)

var validateFlags struct {
	snapshot string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate startups against the Danish business register",
	Long: `Validate looks every unverified startup up in the CVR register
via cvrapi.dk and enriches confirmed matches with the official name,
CVR number, address and status. Low-confidence matches are left
unverified; dissolved companies are flagged inactive but not removed.

The snapshot is checkpointed during the pass so an interrupted run
loses at most a handful of lookups.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFlags.snapshot, "snapshot", "", "snapshot file (default <data-dir>/companies.json)")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	snapshot := validateFlags.snapshot
	if snapshot == "" {
		snapshot = dataPath("companies.json")
	}

	reg, err := registry.Load(snapshot)
	if err != nil {
		return err
	}

	v := validation.New(cvrapi.New(),
		validation.WithCheckpoint(func(r *registry.Registry) error {
			return r.Save(snapshot)
		}))

	report, err := v.Validate(ctx, reg)
	if err != nil {
		return err
	}

	if err := reg.Save(snapshot); err != nil {
		return err
	}

	fmt.Println(report.Summary())
	return nil
}
