/*
Package mocks provides a scripted net.Conn for driving the engine in
tests: reads are fed chunk by chunk, writes are captured.
*/
package mocks

import (
	"io"
	"net"
	"sync"
	"time"
)

// timeoutError satisfies net.Error for read deadline expiry.
type timeoutError struct{}

func (timeoutError) Error() string   { return "mocks: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// addr is a fake net.Addr.
type addr struct{}

func (addr) Network() string { return "mock" }
func (addr) String() string  { return "mock.conn" }

// Conn is a scripted net.Conn. Each Feed queues one Read's worth of bytes,
// which lets tests control exactly how the stream is split across read
// boundaries. Writes never block; they are recorded and can be waited on.
type Conn struct {
	mut      sync.Mutex
	feeds    chan []byte
	leftover []byte
	deadline time.Time

	writes  chan []byte
	closed  chan struct{}
	closeMu sync.Once
}

// NewConn creates a scripted connection.
func NewConn() *Conn {
	return &Conn{
		feeds:  make(chan []byte, 256),
		writes: make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

// Feed queues bytes to be returned by a single Read call.
func (m *Conn) Feed(data string) {
	m.feeds <- []byte(data)
}

// Read returns the next fed chunk, honoring any read deadline. After Close
// it returns io.EOF once the fed chunks are drained.
func (m *Conn) Read(b []byte) (int, error) {
	m.mut.Lock()
	if len(m.leftover) > 0 {
		n := copy(b, m.leftover)
		m.leftover = m.leftover[n:]
		m.mut.Unlock()
		return n, nil
	}
	deadline := m.deadline
	m.mut.Unlock()

	var timeout <-chan time.Time
	if !deadline.IsZero() {
		wait := time.Until(deadline)
		if wait <= 0 {
			return 0, timeoutError{}
		}
		timeout = time.After(wait)
	}

	select {
	case chunk := <-m.feeds:
		n := copy(b, chunk)
		if n < len(chunk) {
			m.mut.Lock()
			m.leftover = chunk[n:]
			m.mut.Unlock()
		}
		return n, nil
	case <-timeout:
		return 0, timeoutError{}
	case <-m.closed:
		// Drain any chunk that raced with Close.
		select {
		case chunk := <-m.feeds:
			return copy(b, chunk), nil
		default:
			return 0, io.EOF
		}
	}
}

// Write records the written bytes. It never blocks.
func (m *Conn) Write(b []byte) (int, error) {
	select {
	case <-m.closed:
		return 0, io.ErrClosedPipe
	default:
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	m.writes <- cp
	return len(b), nil
}

// Written returns everything written so far without waiting.
func (m *Conn) Written() []string {
	var out []string
	for {
		select {
		case w := <-m.writes:
			out = append(out, string(w))
		default:
			return out
		}
	}
}

// WaitWrite blocks until something is written or the timeout expires.
func (m *Conn) WaitWrite(timeout time.Duration) (string, bool) {
	select {
	case w := <-m.writes:
		return string(w), true
	case <-time.After(timeout):
		return "", false
	}
}

// Close unblocks pending reads with io.EOF.
func (m *Conn) Close() error {
	m.closeMu.Do(func() { close(m.closed) })
	return nil
}

func (m *Conn) LocalAddr() net.Addr  { return addr{} }
func (m *Conn) RemoteAddr() net.Addr { return addr{} }

// SetReadDeadline arms the deadline used by Read. The zero time disarms it.
func (m *Conn) SetReadDeadline(t time.Time) error {
	m.mut.Lock()
	m.deadline = t
	m.mut.Unlock()
	return nil
}

func (m *Conn) SetWriteDeadline(time.Time) error { return nil }

func (m *Conn) SetDeadline(t time.Time) error {
	return m.SetReadDeadline(t)
}
