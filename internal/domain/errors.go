package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions is returned when a session is started with an empty batch.
	ErrNoQuestions = errors.New("no questions to start a quiz")
	// ErrEmptyBatch indicates the provider reported success but sent no questions.
	ErrEmptyBatch = errors.New("provider returned no questions")
	// ErrProviderStatus indicates the provider reported a non-success status.
	ErrProviderStatus = errors.New("provider reported failure")
	// ErrMalformedPayload indicates the provider response could not be decoded.
	ErrMalformedPayload = errors.New("malformed provider payload")
	// ErrGameNotFound is returned when a player has no registered game.
	ErrGameNotFound = errors.New("game not found")
	// ErrStaleSession indicates a result arrived for a session that was replaced.
	ErrStaleSession = errors.New("session was replaced")
)

// LoadError is the only failure a question load can produce. It wraps
// transport failures, provider status failures and malformed payloads.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	if e.Op == "" {
		return "load questions: " + e.Err.Error()
	}
	return fmt.Sprintf("load questions (%s): %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError wraps err unless it already is a LoadError.
func NewLoadError(op string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Op: op, Err: err}
}
