package domain

import (
	"errors"
	"fmt"
)

// Error codes for domain errors
const (
	ErrCodeProjectNotFound   = "PROJECT_NOT_FOUND"
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// DomainError is the error type crossing service boundaries
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with an arbitrary code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewProjectNotFoundError reports a missing project root (fatal)
func NewProjectNotFoundError(root string, cause error) error {
	return DomainError{
		Code:    ErrCodeProjectNotFound,
		Message: fmt.Sprintf("project root does not exist: %s", root),
		Cause:   cause,
	}
}

// NewConfigNotFoundError reports that no project manifest was found
// walking upward from the root (fatal)
func NewConfigNotFoundError(root string) error {
	return DomainError{
		Code:    ErrCodeConfigNotFound,
		Message: fmt.Sprintf("no project manifest found from %s up to filesystem root", root),
	}
}

// NewParseError reports a per-file parse failure (recovered)
func NewParseError(file string, cause error) error {
	return DomainError{
		Code:    ErrCodeParseError,
		Message: fmt.Sprintf("failed to parse %s", file),
		Cause:   cause,
	}
}

// NewConfigError reports a configuration loading problem
func NewConfigError(message string, cause error) error {
	return DomainError{Code: ErrCodeConfigError, Message: message, Cause: cause}
}

// NewOutputError reports an output writing problem
func NewOutputError(message string, cause error) error {
	return DomainError{Code: ErrCodeOutputError, Message: message, Cause: cause}
}

// NewUnsupportedFormatError reports an unknown output format
func NewUnsupportedFormatError(format string) error {
	return DomainError{
		Code:    ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("unsupported output format: %s", format),
	}
}

func hasCode(err error, code string) bool {
	var domainErr DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsProjectNotFound reports whether err is a PROJECT_NOT_FOUND error
func IsProjectNotFound(err error) bool {
	return hasCode(err, ErrCodeProjectNotFound)
}

// IsConfigNotFound reports whether err is a CONFIG_NOT_FOUND error
func IsConfigNotFound(err error) bool {
	return hasCode(err, ErrCodeConfigNotFound)
}

// IsParseError reports whether err is a PARSE_ERROR
func IsParseError(err error) bool {
	return hasCode(err, ErrCodeParseError)
}
