// Package link provides the byte transports connecting to the module.
package link

import (
	"context"
	"io"
	"sync"
)

// DefaultBufferSize is the number of received bytes a Stream can hold.
const DefaultBufferSize = 4096

// Drainer is implemented by transports able to wait until written bytes
// are transmitted.
type Drainer interface {
	Drain() error
}

// Stream adapts an io.ReadWriter into a polled byte port. Bytes are read in
// the background into a buffer, TryReadByte never blocks.
type Stream struct {
	rw     io.ReadWriter
	byteCh chan byte
	errCh  chan error
	cancel context.CancelFunc

	lock sync.Mutex
	err  error
}

// NewStream creates a Stream and starts reading from rw.
func NewStream(rw io.ReadWriter) *Stream {
	return NewStreamSize(rw, DefaultBufferSize)
}

// NewStreamSize creates a Stream with the specified buffer size.
func NewStreamSize(rw io.ReadWriter, size int) *Stream {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Stream{
		rw:     rw,
		byteCh: make(chan byte, size),
		errCh:  make(chan error, 1),
		cancel: cancel,
	}
	go s.readLoop(ctx)
	return s
}

func (s *Stream) readLoop(ctx context.Context) {
	buf := make([]byte, 64)
	for {
		n, err := s.rw.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case s.byteCh <- buf[i]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			s.errCh <- err
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// WriteByte implements easyvr.Port.
func (s *Stream) WriteByte(c byte) error {
	_, err := s.rw.Write([]byte{c})
	return err
}

// Write writes p to the underlying transport.
func (s *Stream) Write(p []byte) (int, error) {
	return s.rw.Write(p)
}

// TryReadByte implements easyvr.Port.
func (s *Stream) TryReadByte() (byte, bool) {
	select {
	case b := <-s.byteCh:
		return b, true
	default:
		return 0, false
	}
}

// Buffered implements easyvr.Port.
func (s *Stream) Buffered() int {
	return len(s.byteCh)
}

// Flush implements easyvr.Port.
func (s *Stream) Flush() error {
	if d, ok := s.rw.(Drainer); ok {
		return d.Drain()
	}
	return nil
}

// Err returns the error which stopped reading, if any. Bytes received
// before the error are still readable.
func (s *Stream) Err() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.err == nil {
		select {
		case s.err = <-s.errCh:
		default:
		}
	}
	return s.err
}

// Close stops reading and closes the underlying transport if it's an
// io.Closer.
func (s *Stream) Close() error {
	s.cancel()
	if c, ok := s.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
