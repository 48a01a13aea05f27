package typeormlint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/typeormlint/frontend"
	"github.com/broady/typeormlint/internal/typeexpr"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeInvalidOption ErrorCode = "invalid_option"
	CodeUnknownRule   ErrorCode = "unknown_rule"
	CodeParseFailed   ErrorCode = "parse_failed"
	CodeConfigInvalid ErrorCode = "config_invalid"
	CodeCanceled      ErrorCode = "canceled"
	CodeInternal      ErrorCode = "internal"
)

// Error is a lint error with a code and optional structured details.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}

// AsError maps an arbitrary error to an *Error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	// errors.Join: code of the first, all messages.
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		errs := u.Unwrap()
		if len(errs) > 0 {
			first := AsError(errs[0])
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return &Error{
				Code:    first.Code,
				Message: strings.Join(msgs, "; "),
				Details: first.Details,
			}
		}
	}

	var lintErr *Error
	if errors.As(err, &lintErr) {
		return lintErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewError(CodeCanceled, err.Error())
	}

	if errors.Is(err, frontend.ErrFileTooLarge) ||
		errors.Is(err, frontend.ErrInvalidContent) ||
		errors.Is(err, typeexpr.ErrSyntax) {
		return NewError(CodeParseFailed, err.Error())
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		return validationError(valErrs)
	}

	return NewError(CodeInternal, err.Error())
}

func validationError(valErrs validator.ValidationErrors) *Error {
	details := make(map[string]any)
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &Error{
		Code:    CodeInvalidOption,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "dive":
		return "contains an invalid element"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
