package tee

import (
	"io"
	"iter"
	"sync"

	"github.com/seanaye/oak/http/status"
)

// Retriever is the single-pass chunk source the body arrives through.
type Retriever interface {
	// Retrieve reads and returns a piece of body available for processing.
	// The final piece may arrive together with io.EOF.
	Retrieve() ([]byte, error)
}

// Source replays a single-pass Retriever to any number of consumers. The
// upstream is drained exactly once, incrementally, into a growing buffer;
// ReadAll serves whole-body consumers and views serve streaming ones. A view
// created at any point observes the full body, including data buffered before
// the view existed.
type Source struct {
	mu       sync.Mutex
	upstream Retriever
	buff     []byte
	maxSize  uint64
	drained  bool
	err      error
}

func New(upstream Retriever, prealloc, maxSize uint64) *Source {
	return &Source{
		upstream: upstream,
		buff:     make([]byte, 0, prealloc),
		maxSize:  maxSize,
	}
}

// ReadAll drains the upstream to the end and returns the complete body. The
// returned slice is the shared buffer itself and must not be modified.
func (s *Source) ReadAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.drained {
		s.pull()
	}

	if s.err != nil {
		return nil, s.err
	}

	return s.buff, nil
}

// Drained reports whether the upstream has been fully consumed.
func (s *Source) Drained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drained
}

// Tee returns a new independent view replaying the body from its beginning.
func (s *Source) Tee() *View {
	return &View{source: s}
}

// pull advances the upstream by one chunk. Must be called under the lock.
func (s *Source) pull() {
	data, err := s.upstream.Retrieve()

	if uint64(len(s.buff)+len(data)) > s.maxSize {
		s.drained, s.err = true, status.ErrBodyTooLarge
		return
	}

	s.buff = append(s.buff, data...)

	switch err {
	case nil:
	case io.EOF:
		s.drained = true
	default:
		s.drained, s.err = true, err
	}
}

// View is a cursor over the shared replay buffer. Views are independent: one
// view's consumption never starves another, and each sees the body in full.
type View struct {
	source *Source
	offset int
}

// Read implements io.Reader over the view's remaining body content.
func (v *View) Read(p []byte) (n int, err error) {
	s := v.source
	s.mu.Lock()
	defer s.mu.Unlock()

	for v.offset == len(s.buff) && !s.drained {
		s.pull()
	}

	if v.offset == len(s.buff) {
		if s.err != nil {
			return 0, s.err
		}

		return 0, io.EOF
	}

	n = copy(p, s.buff[v.offset:])
	v.offset += n

	return n, nil
}

// Chunks iterates over the view's remaining body content in buffered pieces.
// A content or transport failure is yielded as the final element.
func (v *View) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			data, err := v.next()
			switch err {
			case nil:
				if !yield(data, nil) {
					return
				}
			case io.EOF:
				return
			default:
				yield(nil, err)
				return
			}
		}
	}
}

// next returns everything buffered past the view's offset, pulling the
// upstream once the view catches up.
func (v *View) next() ([]byte, error) {
	s := v.source
	s.mu.Lock()
	defer s.mu.Unlock()

	for v.offset == len(s.buff) {
		if s.drained {
			if s.err != nil {
				return nil, s.err
			}

			return nil, io.EOF
		}

		s.pull()
	}

	data := s.buff[v.offset:]
	v.offset = len(s.buff)

	return data, nil
}
