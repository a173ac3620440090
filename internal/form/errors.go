package form

import "fmt"

// ErrorKind tells validation failures apart from request/processing failures.
// Both are shown the same way; the kind only matters for logging and tests.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Error is a failure with the message shown in the error panel
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func requestError(message string, err error) *Error {
	return &Error{Kind: KindRequest, Message: message, Err: err}
}
