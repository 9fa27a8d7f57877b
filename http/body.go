package http

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
	"github.com/seanaye/oak/config"
	"github.com/seanaye/oak/http/form"
	"github.com/seanaye/oak/http/status"
	"github.com/seanaye/oak/internal/formdata"
	"github.com/seanaye/oak/internal/strutil"
	"github.com/seanaye/oak/internal/tee"
)

// Retriever is the single-pass chunk source the body arrives through. The
// connection layer supplies an implementation; the final piece of body may
// arrive together with io.EOF.
type Retriever = tee.Retriever

// Body negotiates and materializes the representations of a request's body.
// The raw source is drained at most once, through a shared replay buffer;
// every representation, however divergent from the previously requested ones,
// is derived from that single pass. Each representation is computed on first
// access and memoized for the lifetime of the request.
type Body struct {
	request *Request
	cfg     *config.Config
	source  *tee.Source
	hasBody bool

	text         memo[string]
	json         memo[any]
	form         memo[form.Form]
	formData     *FormData
	formDataOnce sync.Once
}

// memo is a single-assignment slot for a representation computed once per
// request. Failures are memoized alongside values; concurrent first callers
// share the one in-flight computation.
type memo[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (m *memo[T]) resolve(compute func() (T, error)) (T, error) {
	m.once.Do(func() {
		m.value, m.err = compute()
	})

	return m.value, m.err
}

// NewBody wraps the request's raw body source. Whether the request carries a
// body at all is fixed here, off the header evidence, and never recomputed.
func NewBody(request *Request, impl Retriever, cfg *config.Config) *Body {
	b := &Body{
		request: request,
		cfg:     cfg,
		hasBody: impl != nil && (request.ContentLength > 0 || request.Encoding.Chunked),
	}

	if b.hasBody {
		b.source = tee.New(impl, cfg.Body.Form.BufferPrealloc, cfg.Body.MaxSize)
	}

	request.Body = b

	return b
}

// Has reports whether the request carries a body. It never touches the
// underlying source.
func (b *Body) Has() bool {
	return b.hasBody
}

// Get resolves the representation kind (the explicit Options.Type if given,
// otherwise by sniffing the Content-Type header against the matcher table
// augmented with Options.ContentTypes) and returns the tagged result. The
// only synchronous failure is requesting an explicit kind on a bodyless
// request; content-derived failures surface on the returned value's
// accessors instead.
func (b *Body) Get(opts Options) (Value, error) {
	if !b.hasBody {
		if opts.Type == KindUndefined {
			return Value{Type: KindUndefined}, nil
		}

		return Value{}, status.NewUnsupportedType(opts.Type.String())
	}

	kind := opts.Type
	if kind == KindUndefined {
		kind = sniff(b.request.ContentType, opts.ContentTypes)
	}

	value := Value{Type: kind, body: b}

	switch kind {
	case KindFormData:
		b.formDataOnce.Do(func() {
			boundary, _ := b.multipartBoundary()
			b.formData = newFormData(b, boundary)
		})

		value.formData = b.formData
	case KindReader:
		value.reader = bufio.NewReader(b.source.Tee())
	case KindStream:
		value.stream = b.source.Tee()
	}

	return value, nil
}

// Bytes returns the whole body at once in a byte representation.
func (b *Body) Bytes() ([]byte, error) {
	if !b.hasBody {
		return nil, nil
	}

	return b.source.ReadAll()
}

// Text returns the whole body at once in a string representation.
func (b *Body) Text() (string, error) {
	return b.text.resolve(func() (string, error) {
		data, err := b.Bytes()
		if err != nil {
			return "", err
		}

		return uf.B2S(data), nil
	})
}

// JSON parses the body into an arbitrary structured value.
func (b *Body) JSON() (any, error) {
	return b.json.resolve(func() (any, error) {
		data, err := b.Bytes()
		if err != nil {
			return nil, err
		}

		iterator := json.ConfigDefault.BorrowIterator(data)
		value := iterator.Read()
		err = iterator.Error
		json.ConfigDefault.ReturnIterator(iterator)

		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %s", status.ErrBadJSON, err)
		}

		return value, nil
	})
}

// DecodeJSON conveys the request's body to a json unmarshaller and behaves in
// a similar manner. Unlike JSON, the result isn't memoized.
func (b *Body) DecodeJSON(model any) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: %s", status.ErrBadJSON, err)
	}

	return nil
}

// Form interprets the request's body as urlencoded form data and returns the
// parsed key-value pairs, duplicates preserved in order.
func (b *Body) Form() (form.Form, error) {
	return b.form.resolve(func() (form.Form, error) {
		data, err := b.Bytes()
		if err != nil {
			return nil, err
		}

		entries := make(form.Form, 0, b.cfg.Body.Form.EntriesPrealloc)
		return formdata.ParseURLEncoded(entries, data)
	})
}

// Discard drains the rest of the body (if any), so the underlying connection
// may be reused. If no networking error was encountered, nil is returned.
func (b *Body) Discard() error {
	if !b.hasBody {
		return nil
	}

	_, err := b.source.ReadAll()
	return err
}

func (b *Body) multipartBoundary() (boundary string, ok bool) {
	for key, value := range strutil.WalkKV(strutil.CutParams(b.request.ContentType)) {
		if key == "boundary" {
			if len(boundary) != 0 {
				return "", false
			}

			boundary = value
		}
	}

	return boundary, true
}
