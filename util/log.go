package util

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
)

// InvariantViolation is the panic value used by Bug. It marks a programming error (e.g. an invalid digit or an
// overflowing address), never a condition a caller is expected to recover from.
type InvariantViolation struct {
	Message string
}

func (v *InvariantViolation) Error() string {
	return "invariant violation: " + v.Message
}

// Bug logs the message and panics with an *InvariantViolation.
func Bug(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	sigolo.Errorb(1, "%s - This is a bug, please report it", message)
	panic(&InvariantViolation{Message: message})
}
