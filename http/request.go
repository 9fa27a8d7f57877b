package http

import (
	"strconv"
	"strings"

	"github.com/seanaye/oak/config"
	"github.com/seanaye/oak/internal/strutil"
	"github.com/seanaye/oak/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

// Encoding carries the transport encoding evidence of the request.
type Encoding struct {
	Chunked    bool
	HasTrailer bool
}

// Request represents the body-relevant slice of an inbound HTTP request. The
// connection layer owning the socket constructs it and attaches a Body.
type Request struct {
	// Headers holds non-normalized header pairs; lookup is case-insensitive.
	Headers Headers
	// ContentType is the raw Content-Type header value, parameters included.
	ContentType string
	// ContentLength is zero when the Content-Length header is absent.
	ContentLength int
	// Encoding reflects the Transfer-Encoding header.
	Encoding Encoding
	// Body is a dedicated entity providing access to the message body.
	Body *Body
	cfg  *config.Config
}

func NewRequest(cfg *config.Config, headers Headers) *Request {
	request := &Request{
		Headers:     headers,
		ContentType: headers.Value("content-type"),
		cfg:         cfg,
	}

	if length, found := headers.Get("content-length"); found {
		request.ContentLength, _ = strconv.Atoi(length)
	}

	for _, value := range headers.Values("transfer-encoding") {
		for _, token := range strings.Split(value, ",") {
			if strutil.CmpFold(strings.TrimSpace(token), "chunked") {
				request.Encoding.Chunked = true
			}
		}
	}

	request.Encoding.HasTrailer = headers.Has("trailer")

	return request
}
