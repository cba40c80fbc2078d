package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainBusinessRuleError indicates a business rule violation
	DomainBusinessRuleError DomainErrorType = "BUSINESS_RULE_ERROR"

	// DomainNotFoundError indicates a resource was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"

	// DomainInvalidEndpointError indicates an edge endpoint outside the container
	DomainInvalidEndpointError DomainErrorType = "INVALID_ENDPOINT"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type       DomainErrorType        `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StatusCode int                    `json:"status_code"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		Details:    make(map[string]interface{}),
		StatusCode: domainErrorTypeToStatusCode(errorType),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	clone := e.clone()
	clone.Cause = cause
	return clone
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	clone := e.clone()
	clone.Details[key] = value
	return clone
}

// WithStatusCode sets a custom HTTP status code
func (e *DomainError) WithStatusCode(code int) *DomainError {
	clone := e.clone()
	clone.StatusCode = code
	return clone
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// clone copies the error so that the predefined sentinels below stay immutable
func (e *DomainError) clone() *DomainError {
	details := make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		details[k] = v
	}
	return &DomainError{
		Type:       e.Type,
		Code:       e.Code,
		Message:    e.Message,
		Details:    details,
		Cause:      e.Cause,
		StatusCode: e.StatusCode,
	}
}

// domainErrorTypeToStatusCode maps error types to HTTP status codes
func domainErrorTypeToStatusCode(errorType DomainErrorType) int {
	switch errorType {
	case DomainValidationError:
		return 400 // Bad Request
	case DomainBusinessRuleError:
		return 422 // Unprocessable Entity
	case DomainInvalidEndpointError:
		return 422 // Unprocessable Entity
	case DomainNotFoundError:
		return 404 // Not Found
	case DomainConflictError:
		return 409 // Conflict
	default:
		return 500 // Internal Server Error
	}
}

// Common domain errors - these are pre-defined errors that can be reused

var (
	// Node errors
	ErrNodeNotFound = NewDomainError(
		DomainNotFoundError,
		"NODE_NOT_FOUND",
		"The requested node is not a member of this graph",
	)

	ErrNodeLimitExceeded = NewDomainError(
		DomainBusinessRuleError,
		"NODE_LIMIT_EXCEEDED",
		"Maximum number of nodes in graph exceeded",
	)

	ErrNodeLabelTooLong = NewDomainError(
		DomainValidationError,
		"NODE_LABEL_TOO_LONG",
		"Node label exceeds maximum length",
	)

	// Edge errors
	ErrEdgeNotFound = NewDomainError(
		DomainNotFoundError,
		"EDGE_NOT_FOUND",
		"The requested edge is not a member of this graph",
	)

	ErrInvalidEndpoint = NewDomainError(
		DomainInvalidEndpointError,
		"INVALID_ENDPOINT",
		"Edge endpoint is not a member of this graph",
	)

	ErrSelfLoopNotAllowed = NewDomainError(
		DomainBusinessRuleError,
		"SELF_LOOP_NOT_ALLOWED",
		"Self-loop edges are disabled for this graph",
	)

	ErrParallelEdgeNotAllowed = NewDomainError(
		DomainBusinessRuleError,
		"PARALLEL_EDGE_NOT_ALLOWED",
		"An edge between these nodes already exists",
	)

	ErrEdgeLimitExceeded = NewDomainError(
		DomainBusinessRuleError,
		"EDGE_LIMIT_EXCEEDED",
		"Maximum number of edges exceeded",
	)

	// Group errors
	ErrGroupNotFound = NewDomainError(
		DomainNotFoundError,
		"GROUP_NOT_FOUND",
		"The requested group is not a member of this graph",
	)

	ErrGroupLimitExceeded = NewDomainError(
		DomainBusinessRuleError,
		"GROUP_LIMIT_EXCEEDED",
		"Maximum number of groups in graph exceeded",
	)

	ErrNodeNotInGroup = NewDomainError(
		DomainNotFoundError,
		"NODE_NOT_IN_GROUP",
		"The node is not a member of this group",
	)

	// Observer errors
	ErrObserverAlreadyAttached = NewDomainError(
		DomainConflictError,
		"OBSERVER_ALREADY_ATTACHED",
		"The observer is already attached to this node",
	)

	ErrObserverNotAttached = NewDomainError(
		DomainNotFoundError,
		"OBSERVER_NOT_ATTACHED",
		"The observer is not attached to this node",
	)

	ErrObserverLimitExceeded = NewDomainError(
		DomainBusinessRuleError,
		"OBSERVER_LIMIT_EXCEEDED",
		"Maximum number of observers per node exceeded",
	)
)

// GetDomainError extracts a DomainError from an error chain
func GetDomainError(err error) *DomainError {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr
	}
	return nil
}

// IsDomainError checks whether the error chain contains a DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// ValidationErrors aggregates multiple validation errors
type ValidationErrors struct {
	Errors []*DomainError `json:"errors"`
}

// NewValidationErrors creates a new validation errors collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]*DomainError, 0),
	}
}

// Add adds a validation error
func (v *ValidationErrors) Add(field string, message string) {
	err := NewDomainError(DomainValidationError, "FIELD_VALIDATION_ERROR", message).
		WithDetail("field", field)
	v.Errors = append(v.Errors, err)
}

// HasErrors returns true if there are validation errors
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}

	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		messages[i] = err.Message
	}
	return fmt.Sprintf("Validation failed: %s", strings.Join(messages, "; "))
}
