package feature

import (
	"github.com/quoteline/premium-cli/internal/model"
)

// Encode maps a validated applicant to the schema vector. Every column
// except normalized_risk_score is filled; the risk slot is left zero
// for the pipeline to set. Side-effect free: the same applicant always
// encodes to the same vector.
//
// Callers must validate the applicant first; Encode leaves unknown
// enum values at their baseline encoding rather than re-validating.
func Encode(a model.Applicant) []float64 {
	vec := make([]float64, len(Columns))

	vec[Index("age")] = float64(a.Age)
	vec[Index("number_of_dependants")] = float64(a.Dependants)
	vec[Index("income_lakhs")] = a.IncomeLakhs
	vec[Index("insurance_plan")] = planOrdinals[a.InsurancePlan]
	vec[Index("genetical_risk")] = float64(a.GeneticalRisk)

	if a.Gender == model.GenderMale {
		vec[Index("gender_Male")] = 1
	}

	switch a.Region {
	case model.RegionNorthwest:
		vec[Index("region_Northwest")] = 1
	case model.RegionSoutheast:
		vec[Index("region_Southeast")] = 1
	case model.RegionSouthwest:
		vec[Index("region_Southwest")] = 1
	}

	if a.MaritalStatus == model.MaritalUnmarried {
		vec[Index("marital_status_Unmarried")] = 1
	}

	switch a.BMICategory {
	case model.BMIObesity:
		vec[Index("bmi_category_Obesity")] = 1
	case model.BMIOverweight:
		vec[Index("bmi_category_Overweight")] = 1
	case model.BMIUnderweight:
		vec[Index("bmi_category_Underweight")] = 1
	}

	switch a.SmokingStatus {
	case model.SmokingOccasional:
		vec[Index("smoking_status_Occasional")] = 1
	case model.SmokingRegular:
		vec[Index("smoking_status_Regular")] = 1
	}

	switch a.EmploymentStatus {
	case model.EmploymentSalaried:
		vec[Index("employment_status_Salaried")] = 1
	case model.EmploymentSelfEmployed:
		vec[Index("employment_status_Self-Employed")] = 1
	}

	return vec
}
