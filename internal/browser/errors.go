// File: internal/browser/errors.go
package browser

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError reports that a bounded wait's condition never became true.
// It names the operation, the locator (or condition description) involved,
// and how long the wait was allowed to run.
type TimeoutError struct {
	Op      string
	Target  string
	Timeout time.Duration
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: condition not met for %s after %s (timeout %s)",
		e.Op, e.Target, e.Elapsed.Round(time.Millisecond), e.Timeout)
}

// IsTimeout reports whether err is a wait timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
