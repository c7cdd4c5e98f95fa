package corpus

import (
	"errors"
	"fmt"
)

// ErrAuthExpired means the backend rejected the bearer credential. It is never
// retried here; callers propagate it so re-authentication can be triggered.
var ErrAuthExpired = errors.New("authentication credential expired or rejected")

// ErrVolumeExceeded marks a fetch stopped by the maxTotal or page-count bound.
// The gathered records are still returned, flagged partial.
var ErrVolumeExceeded = errors.New("fetch volume bound reached")

// TransportError covers network failures, timeouts and non-2xx responses from
// the corpus backend.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
