package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quoteline/premium-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "premium-cli",
	Short: "Health insurance premium predictor",
	Long:  "Encodes applicant details into the trained feature schema, derives a medical risk score, and queries the age-cohort regression model for an annual premium estimate.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
