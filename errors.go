package graphstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for common repository operations.
var (
	// Entity errors
	ErrNotFound  = errors.New("entity not found")
	ErrNotUnique = errors.New("more than one entity matched")

	// Index errors
	ErrNoSuchIndex = errors.New("no such index")

	// Connection errors
	ErrConnectionFailed = errors.New("connection failed")
	ErrClosed           = errors.New("store closed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing configuration")

	// Generic errors
	ErrNotSupported = errors.New("operation not supported")
)

// RetrievalError represents a generic data-access failure while resolving a
// single entity, e.g. a malformed or stale id. FindOne and Exists recover
// from it locally; everywhere else it propagates.
type RetrievalError struct {
	Operation string
	ID        int64
	Err       error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed during %s for id %d: %v", e.Operation, e.ID, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// NewRetrievalError creates a new retrieval error.
func NewRetrievalError(err error, operation string, id int64) *RetrievalError {
	return &RetrievalError{Operation: operation, ID: id, Err: err}
}

// QueryError represents an index query execution failure.
type QueryError struct {
	Operation string
	IndexName string
	Property  string
	Err       error
}

func (e *QueryError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("query error during %s on index %s (property %s): %v",
			e.Operation, e.IndexName, e.Property, e.Err)
	}
	return fmt.Sprintf("query error during %s (property %s): %v", e.Operation, e.Property, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// WrapQueryError wraps an error as a query error.
func WrapQueryError(err error, operation, indexName, property string) error {
	if err == nil {
		return nil
	}
	return &QueryError{Operation: operation, IndexName: indexName, Property: property, Err: err}
}

// ConnectionError represents connection-related errors.
type ConnectionError struct {
	Operation string
	Backend   string
	Target    string
	Err       error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s with %s backend at %s: %v",
		e.Operation, e.Backend, e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// WrapConnectionError wraps an error as a connection error.
func WrapConnectionError(err error, operation, backend, target string) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Operation: operation, Backend: backend, Target: target, Err: err}
}

// ConfigError represents configuration errors.
type ConfigError struct {
	Field   string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// NewConfigError creates a new config error.
func NewConfigError(message string) *ConfigError {
	return &ConfigError{Message: message}
}

// NewConfigErrorForField creates a new config error for a specific field.
func NewConfigErrorForField(field string, value any, message string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Message: message}
}

// Error checking functions

// IsNotFound checks if an error signals a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoSuchIndex checks if an error signals an absent index.
func IsNoSuchIndex(err error) bool {
	return errors.Is(err, ErrNoSuchIndex)
}

// IsRetrievalError checks if an error is a retrieval error.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// IsQueryError checks if an error is a query error.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// IsConnectionError checks if an error is a connection error.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsConfigError checks if an error is a config error.
func IsConfigError(err error) bool {
	var cfe *ConfigError
	return errors.As(err, &cfe)
}
