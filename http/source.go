package http

import (
	"io"

	"github.com/indigo-web/chunkedbody"
	"github.com/seanaye/oak/http/status"
)

// readerRetriever adapts an io.Reader into the Retriever contract using a
// fixed scratch buffer. The returned piece is valid until the next call.
type readerRetriever struct {
	reader io.Reader
	buff   []byte
}

func NewReaderRetriever(reader io.Reader, buffSize int) Retriever {
	return &readerRetriever{
		reader: reader,
		buff:   make([]byte, buffSize),
	}
}

func (r *readerRetriever) Retrieve() ([]byte, error) {
	n, err := r.reader.Read(r.buff)
	switch err {
	case nil, io.EOF:
		return r.buff[:n], err
	default:
		return nil, err
	}
}

// chunkedRetriever decodes a Transfer-Encoding: chunked payload on the fly,
// so downstream representation builders see the plain body content.
type chunkedRetriever struct {
	upstream   Retriever
	parser     *chunkedbody.Parser
	hasTrailer bool
	pending    []byte
	done       bool
	eof        bool
}

func NewChunkedRetriever(upstream Retriever, parser *chunkedbody.Parser, hasTrailer bool) Retriever {
	return &chunkedRetriever{
		upstream:   upstream,
		parser:     parser,
		hasTrailer: hasTrailer,
	}
}

func (c *chunkedRetriever) Retrieve() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}

	data := c.pending
	c.pending = nil

	for len(data) == 0 {
		if c.eof {
			// the upstream ended before the final chunk was seen
			return nil, status.ErrBadRequest
		}

		var err error
		data, err = c.upstream.Retrieve()
		switch err {
		case nil:
		case io.EOF:
			c.eof = true
		default:
			return nil, err
		}
	}

	chunk, extra, err := c.parser.Parse(data, c.hasTrailer)
	switch err {
	case nil:
		c.pending = extra
		return chunk, nil
	case io.EOF:
		c.done = true
		return chunk, io.EOF
	default:
		return nil, err
	}
}
