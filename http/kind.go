package http

// Kind tags a body representation.
type Kind uint8

const (
	// KindUndefined is the unit kind, produced for requests carrying no body.
	// As the zero value of Options.Type it also means "no explicit kind".
	KindUndefined Kind = iota
	KindForm
	KindFormData
	KindJSON
	KindText
	KindBytes
	KindReader
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindForm:
		return "form"
	case KindFormData:
		return "form-data"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindReader:
		return "reader"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}
