// Package pipeline orchestrates a premium prediction: validate, route
// to a cohort, encode features, score risk, scale, and evaluate the
// cohort's trained model.
package pipeline

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/quoteline/premium-cli/internal/artifact"
	"github.com/quoteline/premium-cli/internal/cohort"
	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
	"github.com/quoteline/premium-cli/internal/risk"
)

// Pipeline runs predictions against a loaded artifact registry. The
// registry is read-only, so a Pipeline is safe for concurrent use.
type Pipeline struct {
	registry *artifact.Registry
}

// New creates a Pipeline over a loaded registry.
func New(registry *artifact.Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Predict turns one applicant into a premium estimate. Validation
// errors are ErrInvalidInput and surface before any scaling or model
// work; shape disagreements with the cohort's artifacts are
// ErrSchemaMismatch and are never recovered by substituting defaults.
// The computation is deterministic and is not retried.
func (p *Pipeline) Predict(ctx context.Context, a model.Applicant) (*model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: canceled")
	}

	a, err := a.Normalize()
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	c := cohort.Select(a.Age)
	pair := p.registry.Pair(c)

	vec := feature.Encode(a)

	score, err := risk.Score(a.Conditions)
	if err != nil {
		return nil, err
	}
	vec[feature.RiskIndex] = score

	scaled, err := pair.Scaler.Transform(vec)
	if err != nil {
		zap.L().Error("pipeline: feature vector rejected by scaler",
			zap.String("cohort", string(c)),
			zap.Error(err),
		)
		return nil, err
	}

	raw, err := pair.Model.Predict(scaled)
	if err != nil {
		zap.L().Error("pipeline: feature vector rejected by model",
			zap.String("cohort", string(c)),
			zap.Error(err),
		)
		return nil, err
	}

	// Premiums are whole non-negative rupees.
	premium := int64(math.Round(raw))
	if premium < 0 {
		premium = 0
	}

	zap.L().Debug("pipeline: prediction complete",
		zap.Int("age", a.Age),
		zap.String("cohort", string(c)),
		zap.Float64("risk_score", score),
		zap.Int64("premium", premium),
	)

	return &model.Prediction{
		Premium:   premium,
		Cohort:    string(c),
		RiskScore: score,
	}, nil
}
