package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType int

const (
	ErrorTypeConfig ErrorType = iota
	ErrorTypeMetadata
	ErrorTypeRegistry
	ErrorTypeCredentials
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeMetadata:
		return "metadata"
	case ErrorTypeRegistry:
		return "registry"
	case ErrorTypeCredentials:
		return "credentials"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewMetadataError creates an error for a failed metadata provider call.
// The message is taken from err when none is given.
func NewMetadataError(operation, path, message string, err error) *AppError {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &AppError{
		Type:      ErrorTypeMetadata,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewRegistryError creates a new type registry error
func NewRegistryError(operation, identifier, message string) *AppError {
	return &AppError{
		Type:      ErrorTypeRegistry,
		Operation: operation,
		Path:      identifier,
		Message:   message,
	}
}

// NewCredentialsError creates a new credentials error
func NewCredentialsError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeCredentials,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsType reports whether err is, or wraps, an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
