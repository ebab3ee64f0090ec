package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/quoteline/premium-cli/internal/model"
)

var (
	predictAge        int
	predictGender     string
	predictRegion     string
	predictMarital    string
	predictBMI        string
	predictSmoking    string
	predictEmployment string
	predictIncome     float64
	predictDependants int
	predictGenetical  int
	predictPlan       string
	predictHistory    string
	predictJSON       bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the annual premium for one applicant",
	Long: `Predict an annual health-insurance premium from applicant details.

Applicants aged 25 or younger are served by the young-cohort model,
older applicants by the rest-cohort model. Medical history accepts
conditions joined with "&" or "," from the fixed vocabulary
(diabetes, heart_disease, high_blood_pressure, thyroid), or "none".

Examples:
  # Young non-smoker with no conditions
  premium-cli predict --age 22 --gender female --region northwest \
    --marital-status unmarried --bmi normal --smoking no_smoking \
    --employment salaried --income 8 --plan bronze --history none

  # Older smoker with two conditions
  premium-cli predict --age 45 --gender male --region southeast \
    --marital-status married --bmi overweight --smoking regular \
    --employment self_employed --income 30 --dependants 2 \
    --plan gold --history "diabetes & heart_disease" --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		applicant, err := buildApplicant()
		if err != nil {
			return err
		}

		p, _, err := initEnv()
		if err != nil {
			return err
		}

		pred, err := p.Predict(cmd.Context(), applicant)
		if err != nil {
			return eris.Wrap(err, "predict")
		}

		if predictJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(pred)
		}

		fmt.Printf("Estimated annual premium: %s\n", model.FormatPremium(pred.Premium))
		fmt.Printf("Cohort: %s  Risk score: %.4f\n", pred.Cohort, pred.RiskScore)
		return nil
	},
}

// buildApplicant assembles and normalizes an Applicant from the flag
// values. Enum flags go through the model parsers so user-facing
// spellings ("Heart disease", "Self-Employed") are accepted.
func buildApplicant() (model.Applicant, error) {
	var a model.Applicant
	var err error

	a.Age = predictAge
	a.IncomeLakhs = predictIncome
	a.Dependants = predictDependants
	a.GeneticalRisk = predictGenetical

	if a.Gender, err = model.ParseGender(predictGender); err != nil {
		return a, err
	}
	if a.Region, err = model.ParseRegion(predictRegion); err != nil {
		return a, err
	}
	if a.MaritalStatus, err = model.ParseMaritalStatus(predictMarital); err != nil {
		return a, err
	}
	if a.BMICategory, err = model.ParseBMICategory(predictBMI); err != nil {
		return a, err
	}
	if a.SmokingStatus, err = model.ParseSmokingStatus(predictSmoking); err != nil {
		return a, err
	}
	if a.EmploymentStatus, err = model.ParseEmploymentStatus(predictEmployment); err != nil {
		return a, err
	}
	if a.InsurancePlan, err = model.ParseInsurancePlan(predictPlan); err != nil {
		return a, err
	}
	if a.Conditions, err = model.ParseConditions(predictHistory); err != nil {
		return a, err
	}

	return a, nil
}

func init() {
	f := predictCmd.Flags()
	f.IntVar(&predictAge, "age", 0, "applicant age in years")
	f.StringVar(&predictGender, "gender", "", "gender: male or female")
	f.StringVar(&predictRegion, "region", "", "region: northeast, northwest, southeast, southwest")
	f.StringVar(&predictMarital, "marital-status", "", "marital status: married or unmarried")
	f.StringVar(&predictBMI, "bmi", "", "bmi category: normal, obesity, overweight, underweight")
	f.StringVar(&predictSmoking, "smoking", "no_smoking", "smoking status: no_smoking, occasional, regular")
	f.StringVar(&predictEmployment, "employment", "", "employment status: salaried, self_employed, freelancer")
	f.Float64Var(&predictIncome, "income", 0, "annual income in lakhs")
	f.IntVar(&predictDependants, "dependants", 0, "number of dependants")
	f.IntVar(&predictGenetical, "genetical-risk", 0, "genetical risk 0-5")
	f.StringVar(&predictPlan, "plan", "", "insurance plan: bronze, silver, gold")
	f.StringVar(&predictHistory, "history", "none", "medical history, e.g. \"diabetes & thyroid\" or none")
	f.BoolVar(&predictJSON, "json", false, "emit the prediction as JSON")

	for _, required := range []string{"age", "gender", "region", "marital-status", "bmi", "employment", "plan"} {
		_ = predictCmd.MarkFlagRequired(required)
	}

	rootCmd.AddCommand(predictCmd)
}
