// Package store provides the validated entity store over a single master
// document of career facts.
package store

import "fmt"

// ValidationError indicates a rejected write: a required field was missing
// or a cross-reference named an id that does not exist. The stored state is
// unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NotFoundError indicates an unknown id or slug passed to read, update or
// delete. The operation has no side effects.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
