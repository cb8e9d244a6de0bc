package link

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type scriptedRW struct {
	reads  [][]byte
	writes bytes.Buffer
	drains int
	closed bool
}

func (rw *scriptedRW) Read(p []byte) (int, error) {
	if len(rw.reads) == 0 {
		return 0, io.EOF
	}
	n := copy(p, rw.reads[0])
	rw.reads = rw.reads[1:]
	return n, nil
}

func (rw *scriptedRW) Write(p []byte) (int, error) {
	return rw.writes.Write(p)
}

func (rw *scriptedRW) Drain() error {
	rw.drains++
	return nil
}

func (rw *scriptedRW) Close() error {
	rw.closed = true
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStreamReads(t *testing.T) {
	// empty reads are what serial ports return on read timeout
	rw := &scriptedRW{reads: [][]byte{{'o'}, {}, {0x41, 0x42}, {}}}
	s := NewStream(rw)
	waitFor(t, func() bool { return s.Err() != nil })
	require.Equal(t, io.EOF, s.Err())
	require.Equal(t, 3, s.Buffered())
	var received []byte
	for {
		b, ok := s.TryReadByte()
		if !ok {
			break
		}
		received = append(received, b)
	}
	require.Equal(t, []byte{'o', 0x41, 0x42}, received)
	require.Equal(t, 0, s.Buffered())
}

func TestStreamWriteFlushClose(t *testing.T) {
	rw := &scriptedRW{}
	s := NewStream(rw)
	require.NoError(t, s.WriteByte('b'))
	n, err := s.Write([]byte{0x41, 0x42})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NoError(t, s.Flush())
	require.Equal(t, []byte{'b', 0x41, 0x42}, rw.writes.Bytes())
	require.Equal(t, 1, rw.drains)
	require.NoError(t, s.Close())
	require.True(t, rw.closed)
}

func TestStreamOverPipe(t *testing.T) {
	r, w := io.Pipe()
	s := NewStreamSize(struct {
		io.Reader
		io.Writer
	}{r, io.Discard}, 2)
	require.NoError(t, s.Flush())
	go func() {
		w.Write([]byte{1, 2, 3})
	}()
	waitFor(t, func() bool { return s.Buffered() == 2 })
	b, ok := s.TryReadByte()
	require.True(t, ok)
	require.Equal(t, byte(1), b)
	waitFor(t, func() bool { return s.Buffered() == 2 })
	require.NoError(t, s.Err())
	w.Close()
	s.Close()
}
