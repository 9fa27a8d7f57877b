package http

import (
	"io"
	"strconv"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/utils/ft"
	"github.com/seanaye/oak/config"
	"github.com/seanaye/oak/http/form"
	"github.com/seanaye/oak/http/status"
	"github.com/seanaye/oak/kv"
	"github.com/stretchr/testify/require"
)

// dummyRetriever replays the given pieces, the last one arriving with io.EOF.
type dummyRetriever struct {
	chunks [][]byte
	pos    int
}

func (d *dummyRetriever) Retrieve() ([]byte, error) {
	if d.pos >= len(d.chunks) {
		return nil, io.EOF
	}

	chunk := d.chunks[d.pos]
	d.pos++

	if d.pos == len(d.chunks) {
		return chunk, io.EOF
	}

	return chunk, nil
}

func getRequestWithBody(contentType string, body ...[]byte) *Request {
	length := func(b []byte) int {
		return len(b)
	}

	headers := kv.NewFromMap(map[string][]string{
		"Content-Length": {strconv.Itoa(ft.Sum(ft.Map(length, body)))},
	})
	if len(contentType) > 0 {
		headers.Add("Content-Type", contentType)
	}

	cfg := config.Default()
	request := NewRequest(cfg, headers)
	NewBody(request, &dummyRetriever{chunks: body}, cfg)

	return request
}

func getBodylessRequest() *Request {
	cfg := config.Default()
	request := NewRequest(cfg, kv.New())
	NewBody(request, nil, cfg)

	return request
}

func TestHas(t *testing.T) {
	t.Run("no body evidence", func(t *testing.T) {
		request := getBodylessRequest()
		require.False(t, request.Body.Has())

		// neither repetition nor Get calls change the verdict
		_, _ = request.Body.Get(Options{})
		require.False(t, request.Body.Has())
	})

	t.Run("content-length", func(t *testing.T) {
		request := getRequestWithBody("", []byte("hello"))
		require.True(t, request.Body.Has())
	})

	t.Run("chunked transfer encoding", func(t *testing.T) {
		cfg := config.Default()
		headers := kv.New().Add("Transfer-Encoding", "chunked")
		request := NewRequest(cfg, headers)
		NewBody(request, &dummyRetriever{}, cfg)
		require.True(t, request.Body.Has())
	})
}

func TestGetUndefined(t *testing.T) {
	t.Run("implicit", func(t *testing.T) {
		request := getBodylessRequest()
		value, err := request.Body.Get(Options{})
		require.NoError(t, err)
		require.Equal(t, KindUndefined, value.Type)
	})

	t.Run("explicit kind fails naming it", func(t *testing.T) {
		request := getBodylessRequest()
		_, err := request.Body.Get(Options{Type: KindText})
		require.Error(t, err)

		var unsupported status.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
		require.Equal(t, "text", unsupported.Type)
		require.ErrorIs(t, err, status.ErrUnsupportedMediaType)
	})
}

func TestGetMemoization(t *testing.T) {
	t.Run("bytes identity", func(t *testing.T) {
		request := getRequestWithBody("", []byte("hello"))

		first, err := request.Body.Get(Options{})
		require.NoError(t, err)
		require.Equal(t, KindBytes, first.Type)

		second, err := request.Body.Get(Options{})
		require.NoError(t, err)
		require.Equal(t, KindBytes, second.Type)

		a, err := first.Bytes()
		require.NoError(t, err)
		b, err := second.Bytes()
		require.NoError(t, err)
		require.Same(t, &a[0], &b[0])
	})

	t.Run("form data handle identity", func(t *testing.T) {
		request := getRequestWithBody("multipart/form-data; boundary=b", []byte("--b--\r\n"))

		first, err := request.Body.Get(Options{})
		require.NoError(t, err)
		second, err := request.Body.Get(Options{})
		require.NoError(t, err)

		a, err := first.FormData()
		require.NoError(t, err)
		b, err := second.FormData()
		require.NoError(t, err)
		require.Same(t, a, b)
	})

	t.Run("concurrent first access", func(t *testing.T) {
		request := getRequestWithBody(
			"application/x-www-form-urlencoded", []byte("hello=world&mode=concurrent"),
		)

		const awaiters = 8
		results := make(chan form.Form, awaiters)

		for i := 0; i < awaiters; i++ {
			go func() {
				value, err := request.Body.Get(Options{})
				require.NoError(t, err)
				require.Equal(t, KindForm, value.Type)

				f, err := value.Form()
				require.NoError(t, err)
				results <- f
			}()
		}

		first := <-results
		require.Equal(t, form.Form{
			{Name: "hello", Value: "world"},
			{Name: "mode", Value: "concurrent"},
		}, first)

		// every awaiter shares the one parse, not an equal re-parse
		for i := 1; i < awaiters; i++ {
			next := <-results
			require.Same(t, &first[0], &next[0])
		}
	})
}

func TestGetDivergentKinds(t *testing.T) {
	const payload = `{"hello":"world"}`
	request := getRequestWithBody("application/json", []byte(payload))

	text, err := request.Body.Get(Options{Type: KindText})
	require.NoError(t, err)
	literal, err := text.Text()
	require.NoError(t, err)
	require.Equal(t, payload, literal)

	// auto-resolution reaches a different single-pass kind on the same body
	auto, err := request.Body.Get(Options{})
	require.NoError(t, err)
	require.Equal(t, KindJSON, auto.Type)

	parsed, err := auto.JSON()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"hello": "world"}, parsed)
}

func TestGetForm(t *testing.T) {
	run := func(t *testing.T, request *Request, opts Options) {
		value, err := request.Body.Get(opts)
		require.NoError(t, err)
		require.Equal(t, KindForm, value.Type)

		parsed, err := value.Form()
		require.NoError(t, err)
		require.Len(t, parsed, 3)
		require.Equal(t, "foo", parsed[0].Name)
		require.Equal(t, "bar", parsed[0].Value)
		require.Equal(t, "bar", parsed[1].Name)
		require.Equal(t, "1", parsed[1].Value)
		require.Equal(t, "baz", parsed[2].Name)
		require.Equal(t, "qux + quux", parsed[2].Value)
	}

	const payload = "foo=bar&bar=1&baz=qux+%2B+quux"

	t.Run("sniffed", func(t *testing.T) {
		run(t, getRequestWithBody("application/x-www-form-urlencoded", []byte(payload)), Options{})
	})

	t.Run("via content type override", func(t *testing.T) {
		request := getRequestWithBody("application/javascript", []byte(payload))
		run(t, request, Options{
			ContentTypes: map[Kind][]string{
				KindForm: {"application/javascript"},
			},
		})
	})
}

func TestGetFormData(t *testing.T) {
	const payload = "--OAK-SERVER-BOUNDARY\r\nContent-Disposition: form-data; name=\"hello\"\r\n" +
		"\r\nworld\r\n--OAK-SERVER-BOUNDARY--\r\n"

	run := func(t *testing.T, contentType string, opts Options) {
		request := getRequestWithBody(contentType, []byte(payload))
		value, err := request.Body.Get(opts)
		require.NoError(t, err)
		require.Equal(t, KindFormData, value.Type)

		data, err := value.FormData()
		require.NoError(t, err)

		fields, files, err := data.Read()
		require.NoError(t, err)
		require.Equal(t, map[string]string{"hello": "world"}, fields)
		require.Empty(t, files)

		// completion is idempotent
		again, _, err := data.Read()
		require.NoError(t, err)
		require.Equal(t, fields, again)
	}

	t.Run("sniffed", func(t *testing.T) {
		run(t, "multipart/form-data; boundary=OAK-SERVER-BOUNDARY", Options{})
	})

	t.Run("explicit type", func(t *testing.T) {
		run(t, "multipart/form-data; boundary=OAK-SERVER-BOUNDARY", Options{Type: KindFormData})
	})

	t.Run("missing boundary fails on completion", func(t *testing.T) {
		request := getRequestWithBody("", []byte(payload))
		value, err := request.Body.Get(Options{Type: KindFormData})
		require.NoError(t, err)

		data, err := value.FormData()
		require.NoError(t, err)

		_, _, err = data.Read()
		require.Error(t, err)
	})
}

func TestGetStream(t *testing.T) {
	drain := func(t *testing.T, value Value) string {
		stream, err := value.Chunks()
		require.NoError(t, err)

		var collected []byte
		for chunk, err := range stream {
			require.NoError(t, err)
			collected = append(collected, chunk...)
		}

		return string(collected)
	}

	t.Run("independent full drains", func(t *testing.T) {
		payload := uniuri.NewLen(512)
		request := getRequestWithBody("", []byte(payload[:256]), []byte(payload[256:]))

		first, err := request.Body.Get(Options{Type: KindStream})
		require.NoError(t, err)
		second, err := request.Body.Get(Options{Type: KindStream})
		require.NoError(t, err)

		// consumed out of lockstep: the second stream drains fully before
		// the first one even starts
		require.Equal(t, payload, drain(t, second))
		require.Equal(t, payload, drain(t, first))
	})

	t.Run("stream after bytes", func(t *testing.T) {
		request := getRequestWithBody("", []byte("payload"))
		_, err := request.Body.Bytes()
		require.NoError(t, err)

		value, err := request.Body.Get(Options{Type: KindStream})
		require.NoError(t, err)
		require.Equal(t, "payload", drain(t, value))
	})
}

func TestGetReader(t *testing.T) {
	request := getRequestWithBody("", []byte("Hello, "), []byte("world!"))

	value, err := request.Body.Get(Options{Type: KindReader})
	require.NoError(t, err)
	require.Equal(t, KindReader, value.Type)

	reader, err := value.Reader()
	require.NoError(t, err)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", string(data))
}

func TestKindMismatch(t *testing.T) {
	request := getRequestWithBody("", []byte("hello"))
	value, err := request.Body.Get(Options{Type: KindBytes})
	require.NoError(t, err)

	_, err = value.Text()
	require.ErrorIs(t, err, status.ErrKindMismatch)
}

func TestBadJSON(t *testing.T) {
	request := getRequestWithBody("application/json", []byte("{broken"))

	value, err := request.Body.Get(Options{})
	require.NoError(t, err, "content failures must be deferred to the accessor")

	_, err = value.JSON()
	require.ErrorIs(t, err, status.ErrBadJSON)

	// the failure is memoized
	_, err = value.JSON()
	require.ErrorIs(t, err, status.ErrBadJSON)
}

func TestBodyTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Body.MaxSize = 4
	headers := kv.New().Add("Content-Length", "5")
	request := NewRequest(cfg, headers)
	NewBody(request, &dummyRetriever{chunks: [][]byte{[]byte("hello")}}, cfg)

	_, err := request.Body.Bytes()
	require.ErrorIs(t, err, status.ErrBodyTooLarge)
}

func TestDiscard(t *testing.T) {
	request := getRequestWithBody("", []byte("hello"))
	require.NoError(t, request.Body.Discard())

	// the body stays available: it was buffered, not thrown away
	data, err := request.Body.Bytes()
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	require.NoError(t, getBodylessRequest().Body.Discard())
}

func TestDecodeJSON(t *testing.T) {
	request := getRequestWithBody("application/json", []byte(`{"hello":"world"}`))

	var model struct {
		Hello string `json:"hello"`
	}
	require.NoError(t, request.Body.DecodeJSON(&model))
	require.Equal(t, "world", model.Hello)
}
