package patch

import "errors"

// Sentinel errors returned by Apply. Callers match them with errors.Is to
// distinguish a missing target from a malformed request.
var (
	// ErrTargetNotFound indicates the requested heading or block reference
	// does not exist in the document.
	ErrTargetNotFound = errors.New("target not found")

	// ErrInvalidTarget indicates a malformed target specification or an
	// operation the target type does not support.
	ErrInvalidTarget = errors.New("invalid target")
)
