package status

import "fmt"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrURLDecoding          = NewError(BadRequest, "invalid urlencoded sequence")
	ErrBadBoundary          = NewError(BadRequest, "malformed multipart boundary")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")
	ErrBadJSON              = NewError(UnprocessableEntity, "malformed json payload")

	// ErrKindMismatch is returned by a value accessor which doesn't correspond
	// to the value's resolved kind.
	ErrKindMismatch = NewError(InternalServerError, "value accessed as a different kind")
)

// UnsupportedTypeError signals that an explicit body type was requested on a
// request carrying no body at all.
type UnsupportedTypeError struct {
	// Type is the name of the requested body type.
	Type string
}

func NewUnsupportedType(t string) error {
	return UnsupportedTypeError{Type: t}
}

func (u UnsupportedTypeError) Error() string {
	return fmt.Sprintf("body type %q was requested, but the request has no body", u.Type)
}

// Unwrap classifies the error as ErrUnsupportedMediaType, so callers matching
// on the coded error catch it too.
func (u UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedMediaType
}
