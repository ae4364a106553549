package apperror

import "errors"

type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodePersistence  Code = "persistence"
)

type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Persistence(message string, cause error) *Error {
	return Wrap(CodePersistence, message, cause)
}

// GetCode classifies err. Errors that carry no code are treated as storage failures.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodePersistence
}

func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// Message returns the user-facing message of err without its cause chain.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
