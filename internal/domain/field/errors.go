package field

import (
	"errors"
	"fmt"
)

// Sentinel kinds for field resolution errors.
var (
	ErrUnknownMode = errors.New("unknown field mode")
)

// NoMatchingOptionError reports an enumerated lookup that found no option for
// the product name. Carries enough context to be actionable from a log line.
type NoMatchingOptionError struct {
	FieldID     string
	ProductName string
}

func (e *NoMatchingOptionError) Error() string {
	return fmt.Sprintf("no option on field %s matches product name %q", e.FieldID, e.ProductName)
}
