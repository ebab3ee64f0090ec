package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quoteline/premium-cli/internal/pipeline"
)

var (
	batchInput       string
	batchOutput      string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Predict premiums for a CSV of applicants",
	Long: `Read applicants from a headered CSV and write a prediction report.

Required columns (any order): age, gender, region, marital_status,
bmi_category, smoking_status, employment_status, income_lakhs,
number_of_dependants, genetical_risk, insurance_plan, medical_history.

Rows that fail validation are reported in the output's error column;
they never abort the batch or fall back to default values.

Examples:
  premium-cli batch --input applicants.csv
  premium-cli batch --input applicants.csv --output report.csv --concurrency 8`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := os.Open(batchInput)
		if err != nil {
			return eris.Wrap(err, "batch: open input")
		}
		defer in.Close()

		rows, err := pipeline.ParseApplicantsCSV(in)
		if err != nil {
			return err
		}
		zap.L().Info("batch: parsed input", zap.Int("rows", len(rows)))

		p, _, err := initEnv()
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.Concurrency
		}
		results := p.PredictAll(cmd.Context(), rows, concurrency)

		out := os.Stdout
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrap(err, "batch: create output")
			}
			defer f.Close()
			out = f
		}

		return pipeline.WriteResultsCSV(out, results)
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchInput, "input", "", "input CSV path")
	f.StringVar(&batchOutput, "output", "", "output CSV path (default: stdout)")
	f.IntVar(&batchConcurrency, "concurrency", 0, "worker count (default from config)")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}
