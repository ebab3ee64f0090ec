package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quoteline/premium-cli/internal/artifact"
	"github.com/quoteline/premium-cli/internal/cohort"
	"github.com/quoteline/premium-cli/internal/feature"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Inspect and validate the trained artifact store",
}

var artifactsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the artifact store and verify it against the serving schema",
	Long: `Load every cohort's model and scaler and run the startup checks:
manifest schema hash vs the live encoder, coefficient counts vs the
schema dimensionality, and scaler column membership. Exits non-zero on
the first inconsistency.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := artifact.Load(cfg.Artifacts.Dir, cfg.Artifacts.Manifest)
		if err != nil {
			return err
		}

		man := registry.Manifest()
		fmt.Printf("artifact store OK\n")
		fmt.Printf("  dir:              %s\n", cfg.Artifacts.Dir)
		fmt.Printf("  manifest version: %d\n", man.Version)
		fmt.Printf("  schema hash:      %s\n", man.SchemaHash)
		fmt.Printf("  schema columns:   %d\n", feature.Dim())
		for _, c := range cohort.All() {
			pair := registry.Pair(c)
			fmt.Printf("  cohort %-6s model: %d coefficients, scaler: %v\n",
				c, len(pair.Model.Coefficients), pair.Scaler.Columns)
		}
		return nil
	},
}

var inspectCohort string

var artifactsInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a cohort's model coefficients by feature",
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := artifact.Load(cfg.Artifacts.Dir, cfg.Artifacts.Manifest)
		if err != nil {
			return err
		}

		c := cohort.Cohort(inspectCohort)
		switch c {
		case cohort.Young, cohort.Rest:
		default:
			return fmt.Errorf("unknown cohort %q (young or rest)", inspectCohort)
		}

		pair := registry.Pair(c)
		fmt.Printf("cohort %s  intercept %.4f\n", c, pair.Model.Intercept)
		for i, name := range pair.Model.Features {
			fmt.Printf("  %-32s %12.4f\n", name, pair.Model.Coefficients[i])
		}
		return nil
	},
}

func init() {
	artifactsInspectCmd.Flags().StringVar(&inspectCohort, "cohort", "rest", "cohort to inspect: young or rest")

	artifactsCmd.AddCommand(artifactsValidateCmd)
	artifactsCmd.AddCommand(artifactsInspectCmd)
	rootCmd.AddCommand(artifactsCmd)
}
