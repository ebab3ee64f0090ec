// Package feature encodes validated applicants into the fixed-order
// numeric vector the trained models and scalers were fit against. The
// column order and every encoding table in this package are frozen at
// training time; serving must match them exactly or predictions are
// silently corrupted.
package feature

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/quoteline/premium-cli/internal/model"
)

// Columns is the training-time feature schema, in order. One-hot
// columns omit their baseline level (Female, Northeast, Married,
// Normal BMI, No Smoking, Freelancer).
var Columns = []string{
	"age",
	"number_of_dependants",
	"income_lakhs",
	"insurance_plan",
	"genetical_risk",
	"normalized_risk_score",
	"gender_Male",
	"region_Northwest",
	"region_Southeast",
	"region_Southwest",
	"marital_status_Unmarried",
	"bmi_category_Obesity",
	"bmi_category_Overweight",
	"bmi_category_Underweight",
	"smoking_status_Occasional",
	"smoking_status_Regular",
	"employment_status_Salaried",
	"employment_status_Self-Employed",
}

// planOrdinals encodes the plan tier as an ordinal, matching training.
var planOrdinals = map[model.InsurancePlan]float64{
	model.PlanBronze: 1,
	model.PlanSilver: 2,
	model.PlanGold:   3,
}

// Dim returns the schema dimensionality.
func Dim() int { return len(Columns) }

// Index returns the position of a named column, or -1 if absent.
func Index(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RiskIndex is the slot the pipeline fills with the derived risk score.
var RiskIndex = Index("normalized_risk_score")

// SchemaHash returns a SHA-256 digest (32 hex chars) over the column
// order and encoding tables. Artifact manifests record the hash of the
// schema their models were trained under; a disagreement at load time
// means encoder/artifact version skew.
func SchemaHash() string {
	payload := struct {
		Columns []string           `json:"columns"`
		Plans   map[string]float64 `json:"plans"`
	}{
		Columns: Columns,
		Plans:   make(map[string]float64, len(planOrdinals)),
	}
	for p, v := range planOrdinals {
		payload.Plans[string(p)] = v
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// Marshal of a plain struct cannot fail.
		panic(err)
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:16])
}
