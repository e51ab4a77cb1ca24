// api/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks a transient event-store failure. The analytics
// path surfaces it; the recommendation paths absorb it and degrade to an
// empty result.
var ErrStoreUnavailable = errors.New("event store unavailable")

// ValidationError reports a malformed engine input, surfaced to the caller
// as a user-visible failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
