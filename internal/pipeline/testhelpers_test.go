package pipeline

import (
	"testing"

	"github.com/quoteline/premium-cli/internal/artifact"
	"github.com/quoteline/premium-cli/internal/cohort"
	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
)

// coeffs builds a schema-ordered coefficient slice from named values.
func coeffs(t *testing.T, byName map[string]float64) []float64 {
	t.Helper()
	out := make([]float64, feature.Dim())
	for name, v := range byName {
		idx := feature.Index(name)
		if idx < 0 {
			t.Fatalf("unknown column %q", name)
		}
		out[idx] = v
	}
	return out
}

// testCoefficients price risk factors upward so ordering tests hold:
// smoking, conditions, obesity, and age all increase the premium.
func testCoefficients(t *testing.T) []float64 {
	return coeffs(t, map[string]float64{
		"age":                             120,
		"number_of_dependants":            300,
		"income_lakhs":                    80,
		"insurance_plan":                  500,
		"genetical_risk":                  400,
		"normalized_risk_score":           9000,
		"gender_Male":                     200,
		"region_Northwest":                100,
		"region_Southeast":                150,
		"region_Southwest":                50,
		"marital_status_Unmarried":        -100,
		"bmi_category_Obesity":            1200,
		"bmi_category_Overweight":         600,
		"bmi_category_Underweight":        300,
		"smoking_status_Occasional":       1500,
		"smoking_status_Regular":          4000,
		"employment_status_Salaried":      100,
		"employment_status_Self-Employed": 200,
	})
}

// passthroughScaler leaves age and income unchanged so expected
// premiums can be computed by hand.
func passthroughScaler(t *testing.T) *artifact.StandardScaler {
	t.Helper()
	s, err := artifact.NewStandardScaler([]string{"age", "income_lakhs"}, []float64{0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatalf("scaler setup: %v", err)
	}
	return s
}

// testRegistry serves both cohorts with the same coefficients but
// distinct intercepts, so routing is observable in the premium.
func testRegistry(t *testing.T) *artifact.Registry {
	t.Helper()
	c := testCoefficients(t)
	return artifact.NewRegistry(map[cohort.Cohort]artifact.Pair{
		cohort.Young: {
			Model:  &artifact.LinearModel{Features: feature.Columns, Coefficients: c, Intercept: 4000},
			Scaler: passthroughScaler(t),
		},
		cohort.Rest: {
			Model:  &artifact.LinearModel{Features: feature.Columns, Coefficients: c, Intercept: 8000},
			Scaler: passthroughScaler(t),
		},
	})
}

func youngApplicant() model.Applicant {
	return model.Applicant{
		Age:              22,
		Gender:           model.GenderFemale,
		Region:           model.RegionNorthwest,
		MaritalStatus:    model.MaritalUnmarried,
		BMICategory:      model.BMINormal,
		SmokingStatus:    model.SmokingNone,
		EmploymentStatus: model.EmploymentSalaried,
		IncomeLakhs:      8,
		Dependants:       0,
		GeneticalRisk:    0,
		InsurancePlan:    model.PlanBronze,
	}
}

func restApplicant() model.Applicant {
	return model.Applicant{
		Age:              45,
		Gender:           model.GenderMale,
		Region:           model.RegionSoutheast,
		MaritalStatus:    model.MaritalMarried,
		BMICategory:      model.BMIOverweight,
		SmokingStatus:    model.SmokingRegular,
		EmploymentStatus: model.EmploymentSelfEmployed,
		IncomeLakhs:      30,
		Dependants:       2,
		GeneticalRisk:    2,
		InsurancePlan:    model.PlanGold,
		Conditions: []model.Condition{
			model.ConditionDiabetes,
			model.ConditionHeartDisease,
		},
	}
}
