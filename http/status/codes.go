package status

// Code is an HTTP status code classifying an error produced by the body
// engine. The engine itself never writes a response; the code is carried so
// the caller can produce a meaningful one.
type Code uint16

const (
	BadRequest            Code = 400 // RFC 9110, 15.5.1
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	UnsupportedMediaType  Code = 415 // RFC 9110, 15.5.16
	UnprocessableEntity   Code = 422 // RFC 9110, 15.5.21
	InternalServerError   Code = 500 // RFC 9110, 15.6.1
)
