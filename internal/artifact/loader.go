package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/quoteline/premium-cli/internal/cohort"
	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
)

// Pair is the trained model plus its fitted scaler for one cohort.
// Immutable after load.
type Pair struct {
	Model  *LinearModel
	Scaler *StandardScaler
}

// Manifest describes the artifact store layout and pins the feature
// schema the artifacts were trained under.
type Manifest struct {
	Version    int                          `yaml:"version"`
	SchemaHash string                       `yaml:"schema_hash"`
	Cohorts    map[cohort.Cohort]pairConfig `yaml:"cohorts"`
}

type pairConfig struct {
	Model  string `yaml:"model"`
	Scaler string `yaml:"scaler"`
}

// Registry holds the loaded artifact pairs for every cohort. Built
// once at startup, read-only thereafter; lookups cannot fail after a
// successful Load.
type Registry struct {
	manifest Manifest
	pairs    map[cohort.Cohort]Pair
}

// Load reads the manifest from dir, verifies the recorded schema hash
// against the live encoder, and loads both cohort pairs concurrently.
// Any missing, corrupt, or dimensionally inconsistent artifact fails
// the whole load with ErrArtifactLoad: no request is servable in that
// state.
func Load(dir, manifestName string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, eris.Wrapf(model.ErrArtifactLoad, "artifact: read manifest: %v", err)
	}

	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, eris.Wrapf(model.ErrArtifactLoad, "artifact: parse manifest: %v", err)
	}

	if man.SchemaHash != feature.SchemaHash() {
		return nil, eris.Wrapf(model.ErrArtifactLoad,
			"artifact: manifest schema hash %s does not match serving schema %s (encoder/artifact version skew)",
			man.SchemaHash, feature.SchemaHash())
	}

	for _, c := range cohort.All() {
		if _, ok := man.Cohorts[c]; !ok {
			return nil, eris.Wrapf(model.ErrArtifactLoad, "artifact: manifest missing cohort %q", string(c))
		}
	}

	var mu sync.Mutex
	pairs := make(map[cohort.Cohort]Pair, len(cohort.All()))

	var g errgroup.Group
	for _, c := range cohort.All() {
		c := c
		pc := man.Cohorts[c]
		g.Go(func() error {
			pair, err := loadPair(dir, pc)
			if err != nil {
				return eris.Wrapf(err, "artifact: cohort %s", string(c))
			}
			mu.Lock()
			pairs[c] = pair
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("artifact: registry loaded",
		zap.String("dir", dir),
		zap.Int("manifest_version", man.Version),
		zap.String("schema_hash", man.SchemaHash),
		zap.Int("cohorts", len(pairs)),
	)

	return &Registry{manifest: man, pairs: pairs}, nil
}

func loadPair(dir string, pc pairConfig) (Pair, error) {
	var m LinearModel
	if err := readJSON(filepath.Join(dir, pc.Model), &m); err != nil {
		return Pair{}, err
	}
	if err := m.validate(feature.Dim()); err != nil {
		return Pair{}, err
	}

	var s StandardScaler
	if err := readJSON(filepath.Join(dir, pc.Scaler), &s); err != nil {
		return Pair{}, err
	}
	if err := s.validate(); err != nil {
		return Pair{}, err
	}

	return Pair{Model: &m, Scaler: &s}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(model.ErrArtifactLoad, "artifact: read %s: %v", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(model.ErrArtifactLoad, "artifact: parse %s: %v", filepath.Base(path), err)
	}
	return nil
}

// Pair returns the artifact pair for a cohort. The registry always
// holds every cohort once Load succeeds.
func (r *Registry) Pair(c cohort.Cohort) Pair {
	return r.pairs[c]
}

// Manifest returns the manifest the registry was loaded from.
func (r *Registry) Manifest() Manifest {
	return r.manifest
}

// NewRegistry builds a registry directly from in-memory pairs. Used by
// tests and tooling that synthesize artifacts without a store on disk.
func NewRegistry(pairs map[cohort.Cohort]Pair) *Registry {
	return &Registry{pairs: pairs}
}
