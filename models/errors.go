package models

import "fmt"

// ValidationError reports missing or invalid user input. When one is
// returned, no network call has been made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ServiceError reports a failed backend call: a non-2xx status, a network
// failure, or a malformed response body. Message carries the
// server-supplied error text when the backend provided one.
type ServiceError struct {
	Operation string
	Status    int
	Message   string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("the %s request failed, please try again", e.Operation)
}

// StateError reports an operation attempted out of its allowed sequence,
// such as re-analyzing before the current edit has been saved.
type StateError struct {
	Operation string
	Reason    string
}

func (e *StateError) Error() string {
	return e.Reason
}
