package draft

import "fmt"

// ExternalError wraps a failure in the upstream LLM provider so callers can
// map it to a gateway-class response instead of an internal one.
type ExternalError struct {
	Operation string
	Cause     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("llm %s failed: %v", e.Operation, e.Cause)
}

func (e *ExternalError) Unwrap() error {
	return e.Cause
}
