// Package artifact loads and serves the trained per-cohort model and
// scaler pairs. Artifacts are produced offline, loaded once at process
// start, and never mutated afterwards, so they are safe for concurrent
// reads without locking.
package artifact

import (
	"github.com/rotisserie/eris"

	"github.com/quoteline/premium-cli/internal/model"
)

// LinearModel is a fitted linear regression: premium = intercept +
// coefficients · features. Feature names record the training-time
// column order for auditability.
type LinearModel struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// validate checks internal consistency against the serving schema
// dimensionality. Called once at load.
func (m *LinearModel) validate(dim int) error {
	if len(m.Coefficients) == 0 {
		return eris.Wrap(model.ErrArtifactLoad, "artifact: model has no coefficients")
	}
	if len(m.Features) != len(m.Coefficients) {
		return eris.Wrapf(model.ErrArtifactLoad,
			"artifact: model declares %d features but %d coefficients",
			len(m.Features), len(m.Coefficients))
	}
	if len(m.Coefficients) != dim {
		return eris.Wrapf(model.ErrArtifactLoad,
			"artifact: model expects %d features, serving schema has %d",
			len(m.Coefficients), dim)
	}
	return nil
}

// Predict evaluates the regression on a scaled feature vector. The
// dimensionality is asserted before any arithmetic; a mismatch is an
// ErrSchemaMismatch, not a recoverable condition.
func (m *LinearModel) Predict(vec []float64) (float64, error) {
	if len(vec) != len(m.Coefficients) {
		return 0, eris.Wrapf(model.ErrSchemaMismatch,
			"artifact: model expects %d features, got %d", len(m.Coefficients), len(vec))
	}
	out := m.Intercept
	for i, c := range m.Coefficients {
		out += c * vec[i]
	}
	return out, nil
}
