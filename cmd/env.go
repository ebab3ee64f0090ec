package main

import (
	"github.com/rotisserie/eris"

	"github.com/quoteline/premium-cli/internal/artifact"
	"github.com/quoteline/premium-cli/internal/pipeline"
)

// initEnv loads the artifact registry and builds the pipeline. Any
// artifact problem aborts the command: no prediction is servable
// without a fully loaded registry.
func initEnv() (*pipeline.Pipeline, *artifact.Registry, error) {
	registry, err := artifact.Load(cfg.Artifacts.Dir, cfg.Artifacts.Manifest)
	if err != nil {
		return nil, nil, eris.Wrap(err, "init: load artifacts")
	}
	return pipeline.New(registry), registry, nil
}
