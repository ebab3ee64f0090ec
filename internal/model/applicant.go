// Package model defines the applicant domain types, their enumerated
// vocabularies, and input validation for the premium pipeline.
package model

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Gender is the applicant's declared gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Region is the applicant's residential region.
type Region string

const (
	RegionNortheast Region = "northeast"
	RegionNorthwest Region = "northwest"
	RegionSoutheast Region = "southeast"
	RegionSouthwest Region = "southwest"
)

// MaritalStatus is the applicant's marital status.
type MaritalStatus string

const (
	MaritalMarried   MaritalStatus = "married"
	MaritalUnmarried MaritalStatus = "unmarried"
)

// BMICategory is the applicant's BMI bucket.
type BMICategory string

const (
	BMINormal      BMICategory = "normal"
	BMIObesity     BMICategory = "obesity"
	BMIOverweight  BMICategory = "overweight"
	BMIUnderweight BMICategory = "underweight"
)

// SmokingStatus is the applicant's smoking habit.
type SmokingStatus string

const (
	SmokingNone       SmokingStatus = "no_smoking"
	SmokingOccasional SmokingStatus = "occasional"
	SmokingRegular    SmokingStatus = "regular"
)

// EmploymentStatus is the applicant's employment status.
type EmploymentStatus string

const (
	EmploymentSalaried     EmploymentStatus = "salaried"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentFreelancer   EmploymentStatus = "freelancer"
)

// InsurancePlan is the requested plan tier. Encoded ordinally.
type InsurancePlan string

const (
	PlanBronze InsurancePlan = "bronze"
	PlanSilver InsurancePlan = "silver"
	PlanGold   InsurancePlan = "gold"
)

// Condition is a declared medical condition from the fixed vocabulary.
type Condition string

const (
	ConditionDiabetes          Condition = "diabetes"
	ConditionHeartDisease      Condition = "heart_disease"
	ConditionHighBloodPressure Condition = "high_blood_pressure"
	ConditionThyroid           Condition = "thyroid"
)

// Input bounds, frozen to match the intake form the models were
// trained against.
const (
	MinAge           = 18
	MaxAge           = 100
	MaxDependants    = 20
	MaxIncomeLakhs   = 1000.0
	MaxGeneticalRisk = 5
)

// Applicant is one raw prediction request as collected from the user.
type Applicant struct {
	Age              int              `json:"age"`
	Gender           Gender           `json:"gender"`
	Region           Region           `json:"region"`
	MaritalStatus    MaritalStatus    `json:"marital_status"`
	BMICategory      BMICategory      `json:"bmi_category"`
	SmokingStatus    SmokingStatus    `json:"smoking_status"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	IncomeLakhs      float64          `json:"income_lakhs"`
	Dependants       int              `json:"number_of_dependants"`
	GeneticalRisk    int              `json:"genetical_risk"`
	InsurancePlan    InsurancePlan    `json:"insurance_plan"`
	Conditions       []Condition      `json:"medical_conditions,omitempty"`
}

// canonical lowercases and collapses separators so user-facing spellings
// like "Heart disease", "self-employed", or "No Smoking" parse.
func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// ParseGender parses a gender value, tolerating case and spacing.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(canonical(s)); g {
	case GenderMale, GenderFemale:
		return g, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown gender %q", s)
}

// ParseRegion parses a region value.
func ParseRegion(s string) (Region, error) {
	switch r := Region(canonical(s)); r {
	case RegionNortheast, RegionNorthwest, RegionSoutheast, RegionSouthwest:
		return r, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown region %q", s)
}

// ParseMaritalStatus parses a marital status value.
func ParseMaritalStatus(s string) (MaritalStatus, error) {
	switch m := MaritalStatus(canonical(s)); m {
	case MaritalMarried, MaritalUnmarried:
		return m, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown marital status %q", s)
}

// ParseBMICategory parses a BMI category value.
func ParseBMICategory(s string) (BMICategory, error) {
	switch b := BMICategory(canonical(s)); b {
	case BMINormal, BMIObesity, BMIOverweight, BMIUnderweight:
		return b, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown bmi category %q", s)
}

// ParseSmokingStatus parses a smoking status value. "none" is accepted
// as an alias for no_smoking.
func ParseSmokingStatus(s string) (SmokingStatus, error) {
	c := canonical(s)
	if c == "none" {
		c = string(SmokingNone)
	}
	switch sm := SmokingStatus(c); sm {
	case SmokingNone, SmokingOccasional, SmokingRegular:
		return sm, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown smoking status %q", s)
}

// ParseEmploymentStatus parses an employment status value.
func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	switch e := EmploymentStatus(canonical(s)); e {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentFreelancer:
		return e, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown employment status %q", s)
}

// ParseInsurancePlan parses a plan tier value.
func ParseInsurancePlan(s string) (InsurancePlan, error) {
	switch p := InsurancePlan(canonical(s)); p {
	case PlanBronze, PlanSilver, PlanGold:
		return p, nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "model: unknown insurance plan %q", s)
}

// ParseConditions parses a medical-history expression into a
// deduplicated, sorted condition set. Conditions may be joined with
// "&" or "," ("Diabetes & Heart disease"); "none" and "no_disease"
// denote the empty set and must appear alone.
func ParseConditions(s string) ([]Condition, error) {
	s = strings.ReplaceAll(s, ",", "&")
	parts := strings.Split(s, "&")

	seen := make(map[Condition]bool)
	var none bool
	for _, p := range parts {
		c := canonical(p)
		if c == "" {
			continue
		}
		if c == "none" || c == "no_disease" {
			none = true
			continue
		}
		cond := Condition(c)
		switch cond {
		case ConditionDiabetes, ConditionHeartDisease, ConditionHighBloodPressure, ConditionThyroid:
			seen[cond] = true
		default:
			return nil, eris.Wrapf(ErrInvalidInput, "model: unknown medical condition %q", strings.TrimSpace(p))
		}
	}

	if none && len(seen) > 0 {
		return nil, eris.Wrap(ErrInvalidInput, "model: \"none\" cannot be combined with conditions")
	}
	if len(seen) == 0 {
		return nil, nil
	}

	out := make([]Condition, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Normalize returns a copy with every enum field reduced to its
// canonical token and the condition set deduplicated and sorted.
// Transport layers that accept user-facing spellings ("Male",
// "Self-Employed", "Heart disease") go through here before Validate;
// unknown values are ErrInvalidInput.
func (a Applicant) Normalize() (Applicant, error) {
	var err error

	if a.Gender, err = ParseGender(string(a.Gender)); err != nil {
		return a, err
	}
	if a.Region, err = ParseRegion(string(a.Region)); err != nil {
		return a, err
	}
	if a.MaritalStatus, err = ParseMaritalStatus(string(a.MaritalStatus)); err != nil {
		return a, err
	}
	if a.BMICategory, err = ParseBMICategory(string(a.BMICategory)); err != nil {
		return a, err
	}
	if a.SmokingStatus, err = ParseSmokingStatus(string(a.SmokingStatus)); err != nil {
		return a, err
	}
	if a.EmploymentStatus, err = ParseEmploymentStatus(string(a.EmploymentStatus)); err != nil {
		return a, err
	}
	if a.InsurancePlan, err = ParseInsurancePlan(string(a.InsurancePlan)); err != nil {
		return a, err
	}

	if len(a.Conditions) > 0 {
		parts := make([]string, len(a.Conditions))
		for i, c := range a.Conditions {
			parts[i] = string(c)
		}
		if a.Conditions, err = ParseConditions(strings.Join(parts, " & ")); err != nil {
			return a, err
		}
	}

	return a, nil
}

// Validate checks every field against its frozen domain. Enum fields
// must already be canonical (see Normalize). All failures are
// ErrInvalidInput; the first violation found is reported.
func (a Applicant) Validate() error {
	if a.Age < MinAge || a.Age > MaxAge {
		return eris.Wrapf(ErrInvalidInput, "model: age %d outside [%d, %d]", a.Age, MinAge, MaxAge)
	}
	if a.Dependants < 0 || a.Dependants > MaxDependants {
		return eris.Wrapf(ErrInvalidInput, "model: dependants %d outside [0, %d]", a.Dependants, MaxDependants)
	}
	if a.IncomeLakhs < 0 || a.IncomeLakhs > MaxIncomeLakhs {
		return eris.Wrapf(ErrInvalidInput, "model: income %.2f lakhs outside [0, %.0f]", a.IncomeLakhs, MaxIncomeLakhs)
	}
	if a.GeneticalRisk < 0 || a.GeneticalRisk > MaxGeneticalRisk {
		return eris.Wrapf(ErrInvalidInput, "model: genetical risk %d outside [0, %d]", a.GeneticalRisk, MaxGeneticalRisk)
	}

	switch a.Gender {
	case GenderMale, GenderFemale:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown gender %q", string(a.Gender))
	}
	switch a.Region {
	case RegionNortheast, RegionNorthwest, RegionSoutheast, RegionSouthwest:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown region %q", string(a.Region))
	}
	switch a.MaritalStatus {
	case MaritalMarried, MaritalUnmarried:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown marital status %q", string(a.MaritalStatus))
	}
	switch a.BMICategory {
	case BMINormal, BMIObesity, BMIOverweight, BMIUnderweight:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown bmi category %q", string(a.BMICategory))
	}
	switch a.SmokingStatus {
	case SmokingNone, SmokingOccasional, SmokingRegular:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown smoking status %q", string(a.SmokingStatus))
	}
	switch a.EmploymentStatus {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentFreelancer:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown employment status %q", string(a.EmploymentStatus))
	}
	switch a.InsurancePlan {
	case PlanBronze, PlanSilver, PlanGold:
	default:
		return eris.Wrapf(ErrInvalidInput, "model: unknown insurance plan %q", string(a.InsurancePlan))
	}

	seen := make(map[Condition]bool, len(a.Conditions))
	for _, c := range a.Conditions {
		switch c {
		case ConditionDiabetes, ConditionHeartDisease, ConditionHighBloodPressure, ConditionThyroid:
		default:
			return eris.Wrapf(ErrInvalidInput, "model: unknown medical condition %q", string(c))
		}
		if seen[c] {
			return eris.Wrapf(ErrInvalidInput, "model: duplicate medical condition %q", string(c))
		}
		seen[c] = true
	}

	return nil
}
