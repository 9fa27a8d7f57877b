package strutil

import "iter"

// a-z A-Z 0-9 ()[]{}-_<>.,/|%" and a few more printables. The percent sign is
// included, as WalkKV does not decode key or value, therefore urlencoded
// values must not appear as unsafe characters. The separators (=, ; and the
// space) are deliberately left unsafe inside tokens.
var safeChars = func() (table [256]bool) {
	for _, c := range []byte(`()[]{}-_<>.,/|%"!#$*+^~'@`) {
		table[c] = true
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = true
	}

	for c := byte('a'); c <= 'z'; c++ {
		table[c] = true
		table[c-0x20] = true
	}

	return table
}()

// WalkKV iterates over semicolon-separated key=value parameters, e.g. header
// parameters such as `name="pic"; filename="photo.png"`. Quotes around values
// are stripped. A pair of empty strings is yielded on malformed input.
func WalkKV(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		var key string

	paramKey:
		for i := 0; i < len(data); i++ {
			c := data[i]

			if c == '=' {
				key = data[:i]
				data = data[i+1:]
				goto paramValue
			}

			if !safeChars[c] {
				yield("", "")
				return
			}
		}

		yield(data, "")
		return

	paramValue:
		for i := 0; i < len(data); i++ {
			c := data[i]

			if c == ';' {
				value := data[:i]
				data = LStripWS(data[i+1:])

				if !yield(key, Unquote(value)) {
					return
				}

				goto paramKey
			}

			if !safeChars[c] {
				yield("", "")
				return
			}
		}

		yield(key, Unquote(data))
		return
	}
}
