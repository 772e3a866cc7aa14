package amojo

import (
	"fmt"
	"strings"
)

// ValidationError reports payload rules violated before dispatch.
// Builders never issue a request once a rule is broken, and message-type
// checks collect every violation into one report.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "amojo: invalid payload: " + strings.Join(e.Violations, "; ")
}

func validationError(violations ...string) error {
	return &ValidationError{Violations: violations}
}

// StatusError is a non-2xx reply from the chat API,
// with enough request context to diagnose it.
type StatusError struct {
	Code     int
	Status   string
	Method   string
	URL      string
	Response []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("(#%d) %s: %s %s ; %s", e.Code, e.Status, e.Method, e.URL, e.Response)
}
