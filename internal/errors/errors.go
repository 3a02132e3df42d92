package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an
// underlying AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := asAppError(err); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError anywhere in its chain
func IsAppError(err error) bool {
	_, ok := asAppError(err)
	return ok
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any AppError in the chain carries code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsInputNotFound reports whether err stems from a missing input file
func IsInputNotFound(err error) bool {
	return HasCode(err, CodeInputNotFound)
}

// IsNoRankingColumns reports whether err stems from an empty column discovery
func IsNoRankingColumns(err error) bool {
	return HasCode(err, CodeNoRankingColumns)
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInputNotFound     = "INPUT_NOT_FOUND"
	CodeInputUnreadable   = "INPUT_UNREADABLE"
	CodeNoRankingColumns  = "NO_RANKING_COLUMNS"
	CodeMalformedTable    = "MALFORMED_TABLE"
	CodeRenderFailed      = "RENDER_FAILED"
	CodeOutputUnwritable  = "OUTPUT_UNWRITABLE"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InputNotFound(path string) *AppError {
	return New(CodeInputNotFound, fmt.Sprintf("%s not found", path))
}

func InputUnreadable(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeInputUnreadable,
		Message: fmt.Sprintf("failed to read %s", path),
		Cause:   cause,
	}
}

func NoRankingColumns(prefix string) *AppError {
	return New(CodeNoRankingColumns, fmt.Sprintf("no columns with prefix %q", prefix))
}

func MalformedTable(message string) *AppError {
	return New(CodeMalformedTable, message)
}

func RenderFailed(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailed,
		Message: fmt.Sprintf("failed to render chart %s", path),
		Cause:   cause,
	}
}

func OutputUnwritable(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeOutputUnwritable,
		Message: fmt.Sprintf("failed to write %s", path),
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func UnsupportedFormat(format string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file type: %s", format))
}
