package extract

import "fmt"

// ErrorKind classifies why an extraction failed.
type ErrorKind string

const (
	// MalformedResponse means no attempt produced parseable JSON.
	MalformedResponse ErrorKind = "MalformedResponse"
	// EmptyResult means the oracle answered with an empty JSON array.
	EmptyResult ErrorKind = "EmptyResult"
	// OracleFailure means the oracle call itself failed.
	OracleFailure ErrorKind = "OracleFailure"
)

// ExtractionError is returned by Pipeline.Extract. Attempts counts oracle calls made.
type ExtractionError struct {
	Kind       ErrorKind
	Attempts   int
	RawMessage string
	Response   string
	Err        error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s after %d attempt(s)): %v", e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s after %d attempt(s))", e.Kind, e.Attempts)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
