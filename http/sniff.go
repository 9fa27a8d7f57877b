package http

import (
	"github.com/seanaye/oak/http/mime"
)

// Options controls how Get resolves the body representation.
type Options struct {
	// Type forces the representation kind, bypassing Content-Type sniffing.
	Type Kind
	// ContentTypes augments the default matcher table with additional exact
	// media types per kind. The entries are matched with the same priority as
	// the built-in ones of the corresponding kind. Ignored when Type is set.
	ContentTypes map[Kind][]string
}

type matcher struct {
	kind    Kind
	matches func(contentType string) bool
}

// The default matcher table. The first matching entry, in declared order,
// wins; Options.ContentTypes augments it per kind, never replaces.
var defaultMatchers = [...]matcher{
	{KindForm, func(ct string) bool {
		return mime.Complies(mime.FormUrlencoded, ct)
	}},
	{KindFormData, func(ct string) bool {
		return mime.Complies(mime.Multipart, ct)
	}},
	{KindJSON, func(ct string) bool {
		return mime.Complies(mime.JSON, ct) || mime.CompliesSuffix("+json", ct)
	}},
	{KindText, func(ct string) bool {
		return mime.CompliesTopLevel("text", ct)
	}},
}

// Kinds without built-in table entries, reachable through overrides only.
var overrideOnly = [...]Kind{KindBytes, KindReader, KindStream}

// sniff resolves the representation kind off the Content-Type header value,
// falling back to bytes when nothing matches or no header was sent.
func sniff(contentType string, overrides map[Kind][]string) Kind {
	if len(contentType) == 0 {
		return KindBytes
	}

	for _, m := range defaultMatchers {
		if m.matches(contentType) || compliesAny(overrides[m.kind], contentType) {
			return m.kind
		}
	}

	for _, kind := range overrideOnly {
		if compliesAny(overrides[kind], contentType) {
			return kind
		}
	}

	return KindBytes
}

func compliesAny(types []string, contentType string) bool {
	for _, t := range types {
		if mime.Complies(t, contentType) {
			return true
		}
	}

	return false
}
