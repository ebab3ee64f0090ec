package model

import "github.com/rotisserie/eris"

// Error taxonomy for the prediction pipeline. Callers classify with
// errors.Is; all wrapping adds context without changing the class.
var (
	// ErrInvalidInput marks a raw field outside its declared domain or
	// range. Recoverable by the caller by correcting input.
	ErrInvalidInput = eris.New("invalid input")

	// ErrSchemaMismatch marks a feature vector whose shape or column set
	// disagrees with what a cohort's scaler or model expects. Signals
	// encoder/artifact version skew, never user error.
	ErrSchemaMismatch = eris.New("schema mismatch")

	// ErrArtifactLoad marks a missing, corrupt, or inconsistent model or
	// scaler file at startup. Fatal to process startup.
	ErrArtifactLoad = eris.New("artifact load")
)
