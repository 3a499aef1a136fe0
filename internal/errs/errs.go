package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindUpstream
	KindParse
	KindStorage
)

// Error is the boundary error for every component. Message and Fields are
// safe to return to clients; Err is the internal cause and stays in logs.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func ValidationMsg(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func Parse(message string, err error) *Error {
	return &Error{Kind: KindParse, Message: message, Err: err}
}

func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusOf maps an error to the HTTP status the handler boundary returns.
// Upstream, parse, and storage failures all surface as 500 with a generic
// message; the detail lives in server logs only.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream, KindParse, KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
