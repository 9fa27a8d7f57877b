package formdata

import (
	"testing"

	"github.com/seanaye/oak/http/form"
	"github.com/stretchr/testify/require"
)

func TestParseURLEncoded(t *testing.T) {
	t.Run("ordered pairs", func(t *testing.T) {
		parsed, err := ParseURLEncoded(nil, []byte("foo=bar&bar=1&baz=qux+%2B+quux"))
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "foo", Value: "bar"},
			{Name: "bar", Value: "1"},
			{Name: "baz", Value: "qux + quux"},
		}, parsed)
	})

	t.Run("duplicate names preserved", func(t *testing.T) {
		parsed, err := ParseURLEncoded(nil, []byte("a=1&a=2"))
		require.NoError(t, err)
		require.Len(t, parsed, 2)
		require.Equal(t, "1", parsed[0].Value)
		require.Equal(t, "2", parsed[1].Value)
	})

	t.Run("flag without value", func(t *testing.T) {
		parsed, err := ParseURLEncoded(nil, []byte("flag&key=value"))
		require.NoError(t, err)
		require.Equal(t, form.Form{
			{Name: "flag", Value: ""},
			{Name: "key", Value: "value"},
		}, parsed)
	})

	t.Run("encoded key", func(t *testing.T) {
		parsed, err := ParseURLEncoded(nil, []byte("full+name=John"))
		require.NoError(t, err)
		require.Equal(t, "full name", parsed[0].Name)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := ParseURLEncoded(nil, []byte("=value"))
		require.Error(t, err)
	})

	t.Run("bad escape", func(t *testing.T) {
		_, err := ParseURLEncoded(nil, []byte("key=%2"))
		require.Error(t, err)
	})
}
