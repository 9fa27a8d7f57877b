package internal

import (
	"strings"

	"github.com/seanaye/oak/internal/strutil"
)

// Stream is a cursor over an in-memory body used by the multipart parser.
type Stream struct {
	data string
}

func NewStream(data string) Stream {
	return Stream{data}
}

func (s *Stream) Find(char byte) int {
	return strings.IndexByte(s.data, char)
}

func (s *Stream) FindSubstr(str string) int {
	return strings.Index(s.data, str)
}

func (s *Stream) Compare(offset int, str string) bool {
	if len(s.data) < len(str)+offset {
		return false
	}

	return s.data[offset:offset+len(str)] == str
}

func (s *Stream) CompareFold(offset int, str string) bool {
	if len(s.data) < len(str)+offset {
		return false
	}

	return strutil.CmpFold(s.data[offset:offset+len(str)], str)
}

func (s *Stream) Consume(str string) bool {
	if s.Compare(0, str) {
		s.Advance(len(str))
		return true
	}

	return false
}

func (s *Stream) ConsumeFold(str string) bool {
	if s.CompareFold(0, str) {
		s.Advance(len(str))
		return true
	}

	return false
}

func (s *Stream) Advance(n int) (leftBehind string) {
	leftBehind, s.data = s.data[:n], s.data[n:]
	return leftBehind
}

// AdvanceLine consumes a line up to and including its newline, returning the
// line without the line break. Fails when no newline is left in the stream.
func (s *Stream) AdvanceLine() (leftBehind string, ok bool) {
	newline := s.Find('\n')
	if newline == -1 {
		return "", false
	}

	leftBehind = s.Advance(newline + 1)
	leftBehind = leftBehind[:len(leftBehind)-1]
	if len(leftBehind) > 0 && leftBehind[len(leftBehind)-1] == '\r' {
		return leftBehind[:len(leftBehind)-1], true
	}

	return leftBehind, true
}

func (s *Stream) SkipWhitespaces() {
	s.data = strutil.LStripWS(s.data)
}
