// Package risk derives the normalized medical-risk score used as a
// model feature. The weight table and combination rule are a frozen
// contract shared with the offline training step; changing either
// invalidates every trained artifact pair.
package risk

import (
	"github.com/rotisserie/eris"

	"github.com/quoteline/premium-cli/internal/model"
)

// weights assigns a fixed severity to each recognized condition.
var weights = map[model.Condition]float64{
	model.ConditionDiabetes:          6,
	model.ConditionHeartDisease:      8,
	model.ConditionHighBloodPressure: 6,
	model.ConditionThyroid:           5,
}

// maxCombined is the normalization ceiling: heart disease (8) plus the
// next-highest weight (6). Kept identical to the value the training
// step normalized against.
const maxCombined = 14

// Score maps a condition set to a normalized risk score in [0, 1].
// Distinct condition weights are summed, divided by maxCombined, and
// clamped to 1. The empty set scores 0. Deterministic and pure:
// identical sets always produce identical scores.
func Score(conditions []model.Condition) (float64, error) {
	seen := make(map[model.Condition]bool, len(conditions))
	total := 0.0
	for _, c := range conditions {
		w, ok := weights[c]
		if !ok {
			return 0, eris.Wrapf(model.ErrInvalidInput, "risk: unknown condition %q", string(c))
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		total += w
	}

	score := total / maxCombined
	if score > 1 {
		score = 1
	}
	return score, nil
}

// Weight returns the severity weight for a condition. Exported for
// inspection tooling; unknown conditions return 0.
func Weight(c model.Condition) float64 {
	return weights[c]
}
