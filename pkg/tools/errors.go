package tools

import "fmt"

// ValidationError reports a tool parameter that is missing or has the
// wrong type. It is raised before any remote call is attempted.
type ValidationError struct {
	Field  string // Parameter name
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid arguments: %s", e.Reason)
	}
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

func missingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required parameter is missing or empty"}
}
