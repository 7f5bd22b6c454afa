package serial

import (
	"context"
	"io"
	"sync/atomic"
	"time"
)

// Source adapts an io.Reader into a byte-at-a-time source for the decoder.
//
// It never reports end of stream to its caller: after the first read error
// (or once its context is done) it yields NUL forever and the error is kept
// for Err. A decode in progress then runs out its byte budget and returns.
//
// Not safe for concurrent use, except Count.
type Source struct {
	r   io.Reader
	ctx context.Context

	buf [256]byte
	pos int
	end int
	err error

	count atomic.Uint64

	byteTime time.Duration
	sleepFn  func(time.Duration)
}

type Option func(*Source)

// WithContext stops reading once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(s *Source) { s.ctx = ctx }
}

// WithPace delays every byte by one character time at baud (8N1: 10 bits),
// so a capture file replays at the speed the receiver would send it.
func WithPace(baud int) Option {
	return func(s *Source) {
		if baud <= 0 {
			s.byteTime = 0
			return
		}
		s.byteTime = 10 * time.Second / time.Duration(baud)
	}
}

func NewSource(r io.Reader, opts ...Option) *Source {
	s := &Source{r: r, sleepFn: time.Sleep}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextByte blocks until a byte is available. Zero-length reads are retried.
func (s *Source) NextByte() byte {
	for s.pos >= s.end {
		if s.err != nil {
			return 0
		}
		if s.ctx != nil {
			if err := s.ctx.Err(); err != nil {
				s.err = err
				return 0
			}
		}
		n, err := s.r.Read(s.buf[:])
		s.pos, s.end = 0, n
		if err != nil {
			// Bytes that came with the error are still delivered first.
			s.err = err
		}
	}

	b := s.buf[s.pos]
	s.pos++
	s.count.Add(1)
	if s.byteTime > 0 {
		s.sleepFn(s.byteTime)
	}
	return b
}

// Err returns the error that ended the stream, if any.
func (s *Source) Err() error {
	return s.err
}

// Count is the number of real bytes delivered so far.
func (s *Source) Count() uint64 {
	return s.count.Load()
}
