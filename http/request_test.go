package http

import (
	"testing"

	"github.com/seanaye/oak/config"
	"github.com/seanaye/oak/kv"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("content headers", func(t *testing.T) {
		request := NewRequest(config.Default(), kv.NewFromMap(map[string][]string{
			"Content-Type":   {"application/json; charset=utf-8"},
			"Content-Length": {"13"},
		}))

		require.Equal(t, "application/json; charset=utf-8", request.ContentType)
		require.Equal(t, 13, request.ContentLength)
		require.False(t, request.Encoding.Chunked)
	})

	t.Run("chunked in encoding list", func(t *testing.T) {
		request := NewRequest(config.Default(), kv.New().
			Add("Transfer-Encoding", "gzip, Chunked").
			Add("Trailer", "Expires"))

		require.True(t, request.Encoding.Chunked)
		require.True(t, request.Encoding.HasTrailer)
		require.Zero(t, request.ContentLength)
	})

	t.Run("no headers at all", func(t *testing.T) {
		request := NewRequest(config.Default(), kv.New())
		require.Empty(t, request.ContentType)
		require.Zero(t, request.ContentLength)
	})
}
