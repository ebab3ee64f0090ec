package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Prediction is the terminal result of one pipeline run.
type Prediction struct {
	Premium   int64   `json:"premium"`    // annual premium in whole rupees, >= 0
	Cohort    string  `json:"cohort"`     // artifact cohort that served the request
	RiskScore float64 `json:"risk_score"` // normalized medical risk in [0, 1]
}

// The models were trained on rupee-denominated premiums, so output
// formatting uses Indian digit grouping (1,00,000).
var premiumPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatPremium renders a premium amount as a display string, e.g.
// "₹18,240" or "₹1,20,500".
func FormatPremium(amount int64) string {
	return premiumPrinter.Sprintf("₹%v", number.Decimal(amount))
}
