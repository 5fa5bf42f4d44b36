package clinical

import "errors"

// ErrEmptyTranscript is returned before any completion call when the
// caller-supplied transcript is missing or blank.
var ErrEmptyTranscript = errors.New("clinical: transcript text is empty")

// ExtractionError wraps a failed extraction call or an unparseable
// extraction response. It is fatal to the pipeline invocation.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "clinical: extraction failed: " + e.Err.Error() }
func (e *ExtractionError) Unwrap() error { return e.Err }

// IsExtractionError reports whether err is (or wraps) an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
