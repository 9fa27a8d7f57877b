package http

import (
	"sync"

	"github.com/seanaye/oak/http/form"
	"github.com/seanaye/oak/internal/formdata"
)

// FormData is the deferred handle over a multipart body. Nothing is consumed
// until Read is called.
type FormData struct {
	body     *Body
	boundary string
	once     sync.Once
	fields   map[string]string
	files    []form.Data
	err      error
}

func newFormData(body *Body, boundary string) *FormData {
	return &FormData{
		body:     body,
		boundary: boundary,
	}
}

// Read drains the body and parses it to completion, returning the plain
// fields (later occurrences of a name overwrite earlier ones) and the file
// parts in encounter order. It is idempotent: repeated and concurrent calls
// observe the same parsing, done once.
func (f *FormData) Read() (fields map[string]string, files []form.Data, err error) {
	f.once.Do(f.parse)
	return f.fields, f.files, f.err
}

func (f *FormData) parse() {
	data, err := f.body.Bytes()
	if err != nil {
		f.err = err
		return
	}

	entries := make(form.Form, 0, f.body.cfg.Body.Form.EntriesPrealloc)
	entries, err = formdata.ParseMultipart(f.body.cfg, entries, data, f.boundary)
	if err != nil {
		f.err = err
		return
	}

	f.fields = make(map[string]string, len(entries))
	for _, entry := range entries {
		if len(entry.Filename) == 0 {
			f.fields[entry.Name] = entry.Value
		} else {
			f.files = append(f.files, entry)
		}
	}
}
