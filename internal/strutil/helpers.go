package strutil

import "strings"

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

// CutParams returns the parameters section of a header value, with whitespaces
// between the value and the first-encountered parameter stripped.
func CutParams(header string) (params string) {
	_, params = CutHeader(header)
	return params
}

// CutHeader splits a header into its value and parameters, e.g.
// "multipart/form-data; boundary=xyz" becomes ("multipart/form-data", "boundary=xyz").
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return header, ""
	}

	return header[:sep], LStripWS(header[sep+1:])
}

func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}
