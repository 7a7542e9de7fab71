// internal/analysis/errors.go
package analysis

import "errors"

// Failure taxonomy for the scoring pipeline. Retrieval, invocation, and
// parse failures degrade one aspect/speaker evaluation to its fallback
// result; only validation failures surface to the caller.
var (
	ErrRetrieval       = errors.New("context retrieval failed")
	ErrModelInvocation = errors.New("model invocation failed")
	ErrResponseParse   = errors.New("model response could not be parsed")
	ErrValidation      = errors.New("request validation failed")
)
