package remote

import "fmt"

// Error reports a non-success response from the hierarchy service. It is
// never swallowed at this level; classification happens in the sync workflow.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("remote service returned %d: %s", e.StatusCode, e.Message)
}
