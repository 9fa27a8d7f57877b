package http

import (
	"bufio"
	"iter"

	"github.com/seanaye/oak/http/form"
	"github.com/seanaye/oak/http/status"
	"github.com/seanaye/oak/internal/tee"
)

// Value is the tagged result of Get: the resolved kind plus access to the
// kind-appropriate representation. The wrapper itself is cheap and freshly
// created per call, while the single-pass representations behind it are
// memoized per kind on the owning Body, so two values of the same kind resolve
// to the identical representation. An accessor which doesn't correspond to
// Type fails with status.ErrKindMismatch.
type Value struct {
	// Type discriminates which accessor carries the representation.
	Type Kind

	body     *Body
	formData *FormData
	reader   *bufio.Reader
	stream   *tee.View
}

// Bytes returns the full raw body. Valid for KindBytes.
func (v Value) Bytes() ([]byte, error) {
	if v.Type != KindBytes {
		return nil, status.ErrKindMismatch
	}

	return v.body.Bytes()
}

// Text returns the body decoded as text. Valid for KindText.
func (v Value) Text() (string, error) {
	if v.Type != KindText {
		return "", status.ErrKindMismatch
	}

	return v.body.Text()
}

// JSON returns the body parsed into an arbitrary structured value. Valid for
// KindJSON.
func (v Value) JSON() (any, error) {
	if v.Type != KindJSON {
		return nil, status.ErrKindMismatch
	}

	return v.body.JSON()
}

// Form returns the body decoded as urlencoded form pairs. Valid for KindForm.
func (v Value) Form() (form.Form, error) {
	if v.Type != KindForm {
		return nil, status.ErrKindMismatch
	}

	return v.body.Form()
}

// FormData returns the multipart completion handle. Valid for KindFormData.
func (v Value) FormData() (*FormData, error) {
	if v.Type != KindFormData {
		return nil, status.ErrKindMismatch
	}

	return v.formData, nil
}

// Reader returns a synchronous pull-based view over the body. Every Get call
// of KindReader produces a fresh independent one. Valid for KindReader.
func (v Value) Reader() (*bufio.Reader, error) {
	if v.Type != KindReader {
		return nil, status.ErrKindMismatch
	}

	return v.reader, nil
}

// Chunks returns an independently consumable chunk stream over the body.
// Every Get call of KindStream produces a fresh independent one. Valid for
// KindStream.
func (v Value) Chunks() (iter.Seq2[[]byte, error], error) {
	if v.Type != KindStream {
		return nil, status.ErrKindMismatch
	}

	return v.stream.Chunks(), nil
}
