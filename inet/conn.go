/*
Package inet handles the connection to an irc server: framing the inbound
byte stream into protocol lines, buffering them behind a read cursor, and
encoding outbound lines.
*/
package inet

import (
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"gopkg.in/inconshreveable/log15.v2"
)

const (
	// highWater is how many lines the read cursor may advance before the
	// delivered portion of the buffer is compacted away.
	highWater = 199
	// readSize is the size of the chunk requested per socket read.
	readSize = 4096
	// crlf terminates every protocol line on the wire.
	crlf = "\r\n"
	// pingPrefix marks a keep-alive probe line.
	pingPrefix = "PING :"
)

// Conn wraps a net.Conn and presents the byte stream as a sequence of
// decoded protocol lines. It is not safe for concurrent use, the owner is
// expected to serialize access (the client engine holds one lock around
// every send and receive).
type Conn struct {
	conn   net.Conn
	logger log15.Logger
	name   string

	primary  encoding.Encoding // nil means UTF-8
	fallback encoding.Encoding

	buf     []string
	cursor  int
	partial string
}

// NewConn wraps an established connection. The primary and fallback names
// are IANA charset names, empty strings select UTF-8 and ISO-8859-1. The
// fallback is used whenever the primary fails to decode or encode, so a
// decoding problem degrades instead of surfacing.
func NewConn(conn net.Conn, primary, fallback string, logger log15.Logger) (*Conn, error) {
	c := &Conn{
		conn:     conn,
		logger:   logger,
		name:     conn.RemoteAddr().String(),
		fallback: charmap.ISO8859_1,
	}

	var err error
	if c.primary, err = lookupEncoding(primary); err != nil {
		return nil, err
	}
	if len(fallback) != 0 {
		if c.fallback, err = lookupEncoding(fallback); err != nil {
			return nil, err
		}
		if c.fallback == nil {
			c.fallback = unicode.UTF8
		}
	}
	return c, nil
}

// lookupEncoding resolves an IANA charset name. UTF-8 resolves to nil, the
// decode fast path.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if len(name) == 0 {
		return nil, nil
	}
	if s := strings.ToUpper(name); s == "UTF-8" || s == "UTF8" {
		return nil, nil
	}
	return ianaindex.IANA.Encoding(name)
}

// decode converts raw bytes using the primary encoding, degrading to the
// fallback when the primary cannot represent the input.
func (c *Conn) decode(data []byte) string {
	if c.primary == nil {
		if utf8.Valid(data) {
			return string(data)
		}
	} else if out, err := c.primary.NewDecoder().Bytes(data); err == nil {
		return string(out)
	}

	out, err := c.fallback.NewDecoder().Bytes(data)
	if err != nil {
		// Both encodings refused the input, deliver it raw rather than
		// introduce a third failure path.
		return string(data)
	}
	return string(out)
}

// encode converts an outbound line using the primary encoding, degrading to
// the fallback on failure.
func (c *Conn) encode(line string) []byte {
	if c.primary == nil {
		return []byte(line)
	}
	if out, err := c.primary.NewEncoder().Bytes([]byte(line)); err == nil {
		return out
	}
	out, err := c.fallback.NewEncoder().Bytes([]byte(line))
	if err != nil {
		return []byte(line)
	}
	return out
}

// Refill blocks on the underlying read until at least one complete line has
// been framed. Keep-alive probes are answered immediately and not buffered,
// every other non-empty line is appended to the buffer.
func (c *Conn) Refill() error {
	filled := len(c.buf)
	buf := make([]byte, readSize)

	for len(c.buf) == filled {
		n, err := c.conn.Read(buf)
		if n > 0 {
			if ferr := c.frame(c.decode(buf[:n])); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// frame splits decoded data on the terminator, carrying a trailing partial
// line over into the next read.
func (c *Conn) frame(data string) error {
	data = c.partial + data
	lines := strings.Split(data, crlf)
	c.partial = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		if strings.HasPrefix(line, pingPrefix) {
			if err := c.pong(line); err != nil {
				return err
			}
			continue
		}
		if len(line) != 0 {
			c.logger.Debug("read", "conn", c.name, "line", line)
			c.buf = append(c.buf, line)
		}
	}
	return nil
}

// pong answers a keep-alive probe by substituting the response token into
// the probe line and writing it straight back out.
func (c *Conn) pong(line string) error {
	_, err := c.Write([]byte(strings.Replace(line, "PING", "PONG", 1)))
	return err
}

// Next returns the next unread line and advances the cursor, refilling from
// the connection when the buffer is exhausted and compacting it when the
// cursor reaches the high-water mark. Raw keep-alive probe lines are skipped
// rather than delivered; the framer already answered them.
func (c *Conn) Next() (string, error) {
	if c.cursor >= len(c.buf) {
		if err := c.Refill(); err != nil {
			return "", err
		}
	}
	if c.cursor >= highWater {
		c.compact()
	}

	for {
		if c.cursor >= len(c.buf) {
			if err := c.Refill(); err != nil {
				return "", err
			}
			continue
		}
		line := c.buf[c.cursor]
		c.cursor++
		if strings.HasPrefix(line, pingPrefix) {
			continue
		}
		return line, nil
	}
}

// compact discards every delivered line and resets the cursor, preserving
// unread lines. Bounds buffer growth during long-running connections.
func (c *Conn) compact() {
	unread := len(c.buf) - c.cursor
	if unread > 0 {
		rest := make([]string, unread)
		copy(rest, c.buf[c.cursor:])
		c.buf = rest
	} else {
		c.buf = nil
	}
	c.cursor = 0
}

// Buffered reports how many framed lines are waiting to be read.
func (c *Conn) Buffered() int {
	return len(c.buf) - c.cursor
}

// Readable reports whether Next would return without blocking past the
// timeout. Nothing is consumed: bytes that arrive during the poll are framed
// into the buffer for the following Next.
func (c *Conn) Readable(timeout time.Duration) (bool, error) {
	if c.Buffered() > 0 {
		return true, nil
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return false, err
	}
	buf := make([]byte, readSize)
	n, err := c.conn.Read(buf)
	if uerr := c.conn.SetReadDeadline(time.Time{}); uerr != nil && err == nil {
		err = uerr
	}

	if n > 0 {
		if ferr := c.frame(c.decode(buf[:n])); ferr != nil {
			return false, ferr
		}
	}
	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Write encodes one protocol line and writes it with the terminator
// appended. Embedded terminator bytes are escaped so a single call can
// never smuggle extra lines onto the wire.
func (c *Conn) Write(line []byte) (int, error) {
	msg := strings.Replace(string(line), "\r", "\\r", -1)
	msg = strings.Replace(msg, "\n", "\\n", -1)
	c.logger.Debug("write", "conn", c.name, "line", msg)

	data := append(c.encode(msg), crlf...)
	for written := 0; written < len(data); {
		n, err := c.conn.Write(data[written:])
		written += n
		if err != nil {
			return len(line), err
		}
	}
	return len(line), nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}
