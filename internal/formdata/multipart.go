package formdata

import (
	"github.com/indigo-web/utils/uf"
	"github.com/seanaye/oak/config"
	"github.com/seanaye/oak/http/form"
	"github.com/seanaye/oak/http/status"
	"github.com/seanaye/oak/internal/formdata/internal"
	"github.com/seanaye/oak/internal/strutil"
	"github.com/seanaye/oak/internal/urlencoded"
)

type header struct {
	name, file, contentType, charset string
}

// ParseMultipart splits data on the boundary delimiter and appends the parsed
// entries, in encounter order, to into. Entries whose Content-Disposition
// carries a filename parameter are file parts; the rest are plain fields. A
// special _charset_ field switches the default charset of subsequent entries.
func ParseMultipart(cfg *config.Config, into form.Form, data []byte, boundary string) (form.Form, error) {
	if len(boundary) == 0 {
		return nil, status.ErrBadBoundary
	}

	var (
		delim   = "--" + boundary
		charset = cfg.Body.Form.DefaultCoding
		buff    []byte
		s       = internal.NewStream(uf.B2S(data))
	)

	if !skipPreamble(&s, delim) {
		return nil, status.ErrBadBoundary
	}

	for {
		if s.Consume("--") {
			// terminal delimiter; the epilogue is ignored
			return into, nil
		}

		if !s.Consume("\r\n") {
			return nil, status.ErrBadRequest
		}

		hdr, ok := parseHeaders(&s)
		if !ok || len(hdr.name) == 0 {
			return nil, status.ErrBadRequest
		}

		next := s.FindSubstr(delim)
		if next == -1 {
			return nil, status.ErrBadRequest
		}

		value := rstripCRLF(s.Advance(next))
		s.Advance(len(delim))

		var err error
		hdr.name, buff, err = urlencoded.DecodeString(hdr.name, buff)
		if err != nil {
			return nil, err
		}

		hdr.file, buff, err = urlencoded.DecodeString(hdr.file, buff)
		if err != nil {
			return nil, err
		}

		if hdr.name == "_charset_" {
			if len(value) == 0 {
				return nil, status.ErrBadRequest
			}

			charset = value
			continue
		}

		if len(hdr.charset) == 0 {
			hdr.charset = charset
		}

		if len(hdr.contentType) == 0 {
			hdr.contentType = cfg.Body.Form.DefaultContentType
		}

		into = append(into, form.Data{
			Name:     hdr.name,
			Filename: hdr.file,
			Type:     hdr.contentType,
			Charset:  hdr.charset,
			Value:    value,
		})
	}
}

func skipPreamble(s *internal.Stream, delim string) bool {
	begin := s.FindSubstr(delim)
	if begin == -1 {
		return false
	}

	s.Advance(begin + len(delim))
	return true
}

func parseHeaders(s *internal.Stream) (hdr header, ok bool) {
	for {
		hdr, ok = parseHeader(s, hdr)
		if !ok {
			return header{}, false
		}

		if s.Consume("\r\n") {
			return hdr, true
		}
	}
}

func parseHeader(s *internal.Stream, origin header) (modified header, ok bool) {
	switch {
	case s.ConsumeFold("Content-Disposition:"):
		s.SkipWhitespaces()
		s.Consume("form-data;")
		s.SkipWhitespaces()

		params, ok := s.AdvanceLine()
		if !ok {
			return origin, false
		}

		return parseDispositionParams(params, origin)
	case s.ConsumeFold("Content-Type:"):
		s.SkipWhitespaces()

		line, ok := s.AdvanceLine()
		if !ok {
			return origin, false
		}

		var params string
		origin.contentType, params = strutil.CutHeader(line)
		if len(params) > 0 {
			return parseContentTypeParams(params, origin)
		}

		return origin, true
	default:
		// unrecognized part headers must be ignored
		_, ok = s.AdvanceLine()
		return origin, ok
	}
}

func parseDispositionParams(params string, origin header) (modified header, ok bool) {
	for key, value := range strutil.WalkKV(params) {
		if len(key) == 0 || len(value) == 0 {
			return origin, false
		}

		switch key {
		case "name":
			origin.name = value
		case "filename":
			origin.file = value
		}
	}

	return origin, true
}

func parseContentTypeParams(params string, origin header) (modified header, ok bool) {
	for key, value := range strutil.WalkKV(params) {
		if len(key) == 0 || len(value) == 0 {
			return origin, false
		}

		if key == "charset" {
			origin.charset = value
			return origin, true
		}
	}

	return origin, true
}

func rstripCRLF(str string) string {
	if len(str) > 0 && str[len(str)-1] == '\n' {
		str = str[:len(str)-1]

		if len(str) > 0 && str[len(str)-1] == '\r' {
			str = str[:len(str)-1]
		}
	}

	return str
}
