package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteline/premium-cli/internal/cohort"
	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
)

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func testModelJSON() *LinearModel {
	coeffs := make([]float64, feature.Dim())
	for i := range coeffs {
		coeffs[i] = float64(i) * 0.1
	}
	return &LinearModel{
		Features:     feature.Columns,
		Coefficients: coeffs,
		Intercept:    5000,
	}
}

func testScalerJSON() *StandardScaler {
	return &StandardScaler{
		Columns: []string{"age", "income_lakhs"},
		Mean:    []float64{30, 10},
		Scale:   []float64{10, 5},
	}
}

// writeStore lays out a complete artifact dir and returns it.
func writeStore(t *testing.T, schemaHash string) string {
	t.Helper()
	dir := t.TempDir()

	for _, c := range cohort.All() {
		writeJSONFile(t, filepath.Join(dir, fmt.Sprintf("model_%s.json", c)), testModelJSON())
		writeJSONFile(t, filepath.Join(dir, fmt.Sprintf("scaler_%s.json", c)), testScalerJSON())
	}

	manifest := fmt.Sprintf(`version: 1
schema_hash: %s
cohorts:
  young:
    model: model_young.json
    scaler: scaler_young.json
  rest:
    model: model_rest.json
    scaler: scaler_rest.json
`, schemaHash)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))

	return dir
}

func TestLoad_OK(t *testing.T) {
	dir := writeStore(t, feature.SchemaHash())

	registry, err := Load(dir, "manifest.yaml")
	require.NoError(t, err)

	for _, c := range cohort.All() {
		pair := registry.Pair(c)
		require.NotNil(t, pair.Model, c)
		require.NotNil(t, pair.Scaler, c)
		assert.Len(t, pair.Model.Coefficients, feature.Dim())
	}
	assert.Equal(t, 1, registry.Manifest().Version)
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := Load(t.TempDir(), "manifest.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)
}

func TestLoad_SchemaHashSkew(t *testing.T) {
	dir := writeStore(t, "deadbeefdeadbeefdeadbeefdeadbeef")

	_, err := Load(dir, "manifest.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)
	assert.Contains(t, err.Error(), "version skew")
}

func TestLoad_MissingModelFile(t *testing.T) {
	dir := writeStore(t, feature.SchemaHash())
	require.NoError(t, os.Remove(filepath.Join(dir, "model_rest.json")))

	_, err := Load(dir, "manifest.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)
}

func TestLoad_CorruptScaler(t *testing.T) {
	dir := writeStore(t, feature.SchemaHash())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scaler_young.json"), []byte("{not json"), 0o644))

	_, err := Load(dir, "manifest.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)
}

func TestLoad_WrongModelDim(t *testing.T) {
	dir := writeStore(t, feature.SchemaHash())

	bad := &LinearModel{Features: []string{"age"}, Coefficients: []float64{1}, Intercept: 0}
	writeJSONFile(t, filepath.Join(dir, "model_young.json"), bad)

	_, err := Load(dir, "manifest.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)
}

func TestLoad_ManifestMissingCohort(t *testing.T) {
	dir := writeStore(t, feature.SchemaHash())
	manifest := fmt.Sprintf("version: 1\nschema_hash: %s\ncohorts:\n  young:\n    model: model_young.json\n    scaler: scaler_young.json\n", feature.SchemaHash())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))

	_, err := Load(dir, "manifest.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrArtifactLoad)
	assert.Contains(t, err.Error(), "rest")
}
