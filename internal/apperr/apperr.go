package apperr

import "errors"

// Kind classifies an engine failure. Every kind is terminal and
// caller-visible; nothing here is retried internally.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
	KindBusinessRule
	KindForbidden
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func NotFound(code, message string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Validation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func BusinessRule(code, message string) error {
	return &Error{Kind: KindBusinessRule, Code: code, Message: message}
}

func Forbidden(code, message string) error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

func IsCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// AsError returns the typed error when err carries one.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
