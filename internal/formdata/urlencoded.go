package formdata

import (
	"bytes"

	"github.com/indigo-web/utils/uf"
	"github.com/seanaye/oak/http/form"
	"github.com/seanaye/oak/http/status"
	"github.com/seanaye/oak/internal/urlencoded"
)

// ParseURLEncoded decodes an application/x-www-form-urlencoded body into form
// entries, preserving pair order and duplicate names. Percent escapes and
// pluses are decoded in both keys and values; a key without a value maps to
// the empty string.
func ParseURLEncoded(into form.Form, data []byte) (form.Form, error) {
	var buff []byte

	for len(data) > 0 {
		var pair []byte
		if amp := bytes.IndexByte(data, '&'); amp != -1 {
			pair, data = data[:amp], data[amp+1:]
		} else {
			pair, data = data, nil
		}

		if len(pair) == 0 {
			continue
		}

		key, value := pair, []byte(nil)
		if eq := bytes.IndexByte(pair, '='); eq != -1 {
			key, value = pair[:eq], pair[eq+1:]
		}

		if len(key) == 0 {
			return nil, status.ErrBadRequest
		}

		var (
			name, val string
			err       error
		)

		name, buff, err = urlencoded.ExtendedDecodeString(uf.B2S(key), buff)
		if err != nil {
			return nil, err
		}

		val, buff, err = urlencoded.ExtendedDecodeString(uf.B2S(value), buff)
		if err != nil {
			return nil, err
		}

		into = append(into, form.Data{
			Name:  name,
			Value: val,
		})
	}

	return into, nil
}
