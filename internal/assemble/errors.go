// Package assemble renders a fixed token template against resolved
// bindings.
package assemble

import "fmt"

// MissingBindingError indicates the template references a token with no
// corresponding binding. The render aborts with no partial output, so
// template/data drift surfaces at build time instead of shipping broken
// documents.
type MissingBindingError struct {
	Token string
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("missing binding for token %q", e.Token)
}

// TemplateError represents a malformed template or a binding of the wrong
// kind for its token.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
