package domain

import "fmt"

// InfrastructureError reports a storage backend that is unreachable or a query
// that failed. It triggers the fallback chain at the orchestration layer.
type InfrastructureError struct {
	Backend string
	Err     error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a single-bite lookup that matched no rows.
type NotFoundError struct {
	NewsID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bite %s not found", e.NewsID)
}

// ValidationError reports a rejected request parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
