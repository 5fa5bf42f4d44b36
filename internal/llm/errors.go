package llm

import "errors"

// ErrMissingAPIKey means the provider credential was absent at construction.
// No request is attempted in that state.
var ErrMissingAPIKey = errors.New("llm: api key is not set")

// ErrNoContent means the provider answered but carried no usable payload.
var ErrNoContent = errors.New("llm: empty response from model")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
