package hexconv

// Halfbyte maps ASCII characters to their hexadecimal values. Entries greater
// than 0x0f mark characters, which aren't hexadecimal digits at all.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xff
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 0xa
		table[c-0x20] = c - 'a' + 0xa
	}

	return table
}()
