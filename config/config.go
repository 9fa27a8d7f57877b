package config

import (
	"math"

	"github.com/seanaye/oak/http/mime"
)

type (
	BodyForm struct {
		// EntriesPrealloc is the number of preallocated seats for form.Form entries.
		EntriesPrealloc uint64
		// BufferPrealloc is the initial length for a buffer storing a whole request
		// body, if its length isn't known in advance (e.g. chunked transfer encoding.)
		BufferPrealloc uint64
		// DefaultCoding sets the default content encoding of multipart entries unless
		// one is explicitly set via the part's headers or a _charset_ entry.
		DefaultCoding mime.Charset
		// DefaultContentType sets the default multipart entry MIME unless one is
		// explicitly set.
		DefaultContentType mime.MIME
	}

	Body struct {
		// MaxSize bounds how much body this engine agrees to buffer. Reading a
		// body past the limit fails with status.ErrBodyTooLarge. Limiting is a
		// knob for the caller; the default doesn't limit anything.
		MaxSize uint64
		// Form is either application/x-www-form-urlencoded or multipart/form-data.
		// Due to their common nature, they are easy to be generalized.
		Form BodyForm
	}
)

// Config holds settings used across the body engine, mainly pre-allocations
// and buffering restrictions.
//
// Prefer modifying defaults (returned via Default()) over initializing the
// config manually.
type Config struct {
	Body Body
}

// Default returns the default config. The values are well-balanced and
// permitting.
func Default() *Config {
	return &Config{
		Body: Body{
			MaxSize: math.MaxUint64,
			Form: BodyForm{
				EntriesPrealloc:    8,
				BufferPrealloc:     1024,
				DefaultCoding:      mime.UTF8,
				DefaultContentType: mime.Plain,
			},
		},
	}
}
