package artifact

import (
	"github.com/rotisserie/eris"

	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
)

// StandardScaler standardizes a fitted subset of schema columns as
// (x - mean) / scale. The training step fits it on the raw-magnitude
// numerics only (age, income_lakhs); all other columns pass through.
type StandardScaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`

	// indices into the serving schema, resolved once at load.
	indices []int
}

// NewStandardScaler builds a scaler from fitted parameters, resolving
// and checking its schema indices. Scalers must come through here or
// the loader before Transform is called.
func NewStandardScaler(columns []string, mean, scale []float64) (*StandardScaler, error) {
	s := &StandardScaler{Columns: columns, Mean: mean, Scale: scale}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate checks internal consistency and resolves schema indices.
// Called once at load.
func (s *StandardScaler) validate() error {
	if len(s.Columns) == 0 {
		return eris.Wrap(model.ErrArtifactLoad, "artifact: scaler has no columns")
	}
	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return eris.Wrapf(model.ErrArtifactLoad,
			"artifact: scaler has %d columns but %d means and %d scales",
			len(s.Columns), len(s.Mean), len(s.Scale))
	}

	s.indices = make([]int, len(s.Columns))
	for i, col := range s.Columns {
		idx := feature.Index(col)
		if idx < 0 {
			return eris.Wrapf(model.ErrArtifactLoad,
				"artifact: scaler column %q not in serving schema", col)
		}
		if s.Scale[i] == 0 {
			return eris.Wrapf(model.ErrArtifactLoad,
				"artifact: scaler column %q has zero scale", col)
		}
		s.indices[i] = idx
	}
	return nil
}

// Transform standardizes the fitted columns of a full schema vector
// and returns a new slice; the input is not modified. The vector
// length is asserted against the schema before any arithmetic.
func (s *StandardScaler) Transform(vec []float64) ([]float64, error) {
	if len(vec) != feature.Dim() {
		return nil, eris.Wrapf(model.ErrSchemaMismatch,
			"artifact: scaler expects %d features, got %d", feature.Dim(), len(vec))
	}

	out := make([]float64, len(vec))
	copy(out, vec)
	for i, idx := range s.indices {
		out[idx] = (out[idx] - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}
