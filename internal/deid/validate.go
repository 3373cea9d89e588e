package deid

import "dicom-deid/internal/script"

// Validation is the outcome of a script pre-check.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateScript checks that a script parses, without executing it. It never
// returns an error itself: construction failures come back as an invalid
// result carrying the parser's message, so callers can pre-validate custom
// scripts before a batch run.
func ValidateScript(s string) Validation {
	if _, err := script.Parse(script.Normalize(s)); err != nil {
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}

// ValidateScript checks a script against the engine's own rule-engine
// factory.
func (e *Engine) ValidateScript(s string) Validation {
	if _, err := e.NewRuleEngine(script.Normalize(s)); err != nil {
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}
