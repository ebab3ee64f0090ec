package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
)

func TestLinearModel_Predict(t *testing.T) {
	m := &LinearModel{
		Features:     []string{"a", "b", "c"},
		Coefficients: []float64{2, 0.5, -1},
		Intercept:    10,
	}

	out, err := m.Predict([]float64{1, 4, 3})
	require.NoError(t, err)
	// 10 + 2*1 + 0.5*4 - 1*3 = 11
	assert.InDelta(t, 11, out, 1e-9)
}

func TestLinearModel_Predict_WrongDim(t *testing.T) {
	m := &LinearModel{Features: []string{"a"}, Coefficients: []float64{1}}

	_, err := m.Predict([]float64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSchemaMismatch)
}

func TestLinearModel_Validate(t *testing.T) {
	m := &LinearModel{Features: []string{"a", "b"}, Coefficients: []float64{1}}
	err := m.validate(2)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)

	m = &LinearModel{Features: []string{"a", "b"}, Coefficients: []float64{1, 2}}
	assert.ErrorIs(t, m.validate(3), model.ErrArtifactLoad)
	assert.NoError(t, m.validate(2))
}

func testScaler(t *testing.T) *StandardScaler {
	t.Helper()
	s := &StandardScaler{
		Columns: []string{"age", "income_lakhs"},
		Mean:    []float64{30, 10},
		Scale:   []float64{10, 5},
	}
	require.NoError(t, s.validate())
	return s
}

func TestStandardScaler_Transform(t *testing.T) {
	s := testScaler(t)

	vec := make([]float64, feature.Dim())
	vec[feature.Index("age")] = 40
	vec[feature.Index("income_lakhs")] = 20
	vec[feature.Index("gender_Male")] = 1

	out, err := s.Transform(vec)
	require.NoError(t, err)

	// (40-30)/10 = 1, (20-10)/5 = 2; other columns untouched.
	assert.InDelta(t, 1.0, out[feature.Index("age")], 1e-9)
	assert.InDelta(t, 2.0, out[feature.Index("income_lakhs")], 1e-9)
	assert.Equal(t, 1.0, out[feature.Index("gender_Male")])

	// Input vector is not mutated.
	assert.Equal(t, 40.0, vec[feature.Index("age")])
}

func TestStandardScaler_Transform_WrongDim(t *testing.T) {
	s := testScaler(t)

	_, err := s.Transform(make([]float64, feature.Dim()-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSchemaMismatch)
}

func TestStandardScaler_Validate_Errors(t *testing.T) {
	s := &StandardScaler{Columns: []string{"age"}, Mean: []float64{1, 2}, Scale: []float64{1}}
	assert.ErrorIs(t, s.validate(), model.ErrArtifactLoad)

	s = &StandardScaler{Columns: []string{"shoe_size"}, Mean: []float64{1}, Scale: []float64{1}}
	assert.ErrorIs(t, s.validate(), model.ErrArtifactLoad)

	s = &StandardScaler{Columns: []string{"age"}, Mean: []float64{1}, Scale: []float64{0}}
	assert.ErrorIs(t, s.validate(), model.ErrArtifactLoad)
}
