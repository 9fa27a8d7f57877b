package mime

import (
	"strings"

	"github.com/seanaye/oak/internal/strutil"
)

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	XML            MIME = "text/xml"
	JSON           MIME = "application/json"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
	Multipart      MIME = "multipart/form-data"
)

// Complies returns whether two MIMEs are compatible. Matching is
// case-insensitive; parameters of the right-hand side (boundary, charset and
// the likes) are stripped before comparison. Empty MIME is considered
// compatible with any other MIME.
func Complies(mime MIME, with string) bool {
	with, _ = strutil.CutHeader(with)
	return len(with) == 0 || strutil.CmpFold(with, mime)
}

// CompliesSuffix reports whether the media type carries the given
// structured-syntax suffix, e.g. "+json" in "application/problem+json".
func CompliesSuffix(suffix string, with string) bool {
	with, _ = strutil.CutHeader(with)
	if len(with) < len(suffix) {
		return false
	}

	return strutil.CmpFold(with[len(with)-len(suffix):], suffix)
}

// CompliesTopLevel reports whether the media type's top-level type matches,
// e.g. CompliesTopLevel("text", "text/csv; charset=utf-8") is true.
func CompliesTopLevel(top string, with string) bool {
	with, _ = strutil.CutHeader(with)
	slash := strings.IndexByte(with, '/')
	if slash == -1 {
		return false
	}

	return strutil.CmpFold(with[:slash], top)
}
