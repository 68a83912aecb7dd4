/*
Package client is the engine tying the pipeline together: it frames lines
through inet, classifies them into typed events, keeps the channel/user
state current, and hands events to registered hooks.

The engine is cooperative and single-threaded. One coarse mutex guards
every operation that touches the socket, the line buffer, or the state
store; hooks run synchronously on the loop goroutine and must return
before the next event is read.
*/
package client

import (
	"crypto/tls"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/inconshreveable/log15.v2"

	"github.com/lurklib/lurk/config"
	"github.com/lurklib/lurk/data"
	"github.com/lurklib/lurk/dispatch"
	"github.com/lurklib/lurk/inet"
	"github.com/lurklib/lurk/irc"
)

// Version is the library version, reported by the default CTCP table.
const Version = "1.0"

// defaultSource is the SOURCE reply when none is configured.
const defaultSource = "https://github.com/lurklib/lurk"

var (
	// idlePoll is how long the run loop waits for traffic before deciding
	// the connection is idle and the AUTO hook may fire.
	idlePoll = 2 * time.Second
	// processPoll is how long ProcessOnce waits for an event per loop
	// iteration.
	processPoll = 10 * time.Millisecond
)

// Client is one connection's engine instance. All exported methods are safe
// to call from hooks; they serialize on the engine mutex.
type Client struct {
	mut sync.Mutex

	cfg    *config.Config
	conn   *inet.Conn
	logger log15.Logger

	// uw writes without taking the engine mutex, for use on paths that
	// already hold it. w is the locked writer handed to hooks.
	uw irc.Helper
	w  irc.Writer

	state *data.State
	hooks *dispatch.Table
	ctcps CTCPTable

	// replay holds lines pushed back by the join confirmation path; they
	// are consumed before the connection buffer.
	replay []string

	running bool
	closed  bool
}

// lockedWriter serializes hook writes against the engine.
type lockedWriter struct {
	c *Client
}

func (l lockedWriter) Write(b []byte) (int, error) {
	l.c.mut.Lock()
	defer l.c.mut.Unlock()
	return l.c.conn.Write(b)
}

// New wraps an established connection in an engine. No registration
// handshake is performed; use Dial for the full connect path.
func New(conn net.Conn, cfg *config.Config, logger log15.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}

	ic, err := inet.NewConn(conn, cfg.Encoding, cfg.FallbackEncoding, logger)
	if err != nil {
		return nil, errors.Wrap(err, "client: resolving encodings")
	}

	version := cfg.CTCPVersion
	if len(version) == 0 {
		version = "lurk " + Version
	}
	source := cfg.CTCPSource
	if len(source) == 0 {
		source = defaultSource
	}

	c := &Client{
		cfg:    cfg,
		conn:   ic,
		logger: logger,
		uw:     irc.Helper{Writer: ic},
		state:  data.NewState(cfg.Nicks[0]),
		hooks:  dispatch.NewTable(),
		ctcps:  DefaultCTCPs(version, source),
	}
	c.w = irc.Helper{Writer: lockedWriter{c}}
	return c, nil
}

// Dial connects to the configured server, optionally over TLS, and runs the
// registration handshake before returning.
func Dial(cfg *config.Config, logger log15.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var conn net.Conn
	var err error
	if cfg.SSL {
		conn, err = tls.Dial("tcp", cfg.Address(), &tls.Config{
			InsecureSkipVerify: cfg.NoVerifyCert,
		})
	} else {
		conn, err = net.Dial("tcp", cfg.Address())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "client: connecting to %s", cfg.Address())
	}

	c, err := New(conn, cfg, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err = c.Register(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Register performs the registration handshake: PASS when configured, then
// NICK and USER, falling back through the configured nick list on 433 until
// the welcome numeric confirms the nick the server accepted. Lines that are
// not part of registration are discarded.
func (c *Client) Register() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if len(c.cfg.Password) > 0 {
		if err := c.uw.Pass(c.cfg.Password); err != nil {
			return err
		}
	}
	if err := c.uw.Nick(c.cfg.Nicks[0]); err != nil {
		return err
	}
	if err := c.uw.User(c.cfg.Username, c.cfg.Realname); err != nil {
		return err
	}

	nickIndex := 0
	for {
		line, err := c.conn.Next()
		if err != nil {
			return errors.Wrap(err, "client: registering")
		}
		fields := splitFields(line)
		if len(fields) < 2 {
			continue
		}

		switch fields[1] {
		case irc.RPL_WELCOME:
			if len(fields) > 2 {
				c.state.SetSelf(fields[2])
			}
			return nil
		case irc.ERR_NICKNAMEINUSE:
			nickIndex++
			if nickIndex >= len(c.cfg.Nicks) {
				return errNoMoreNicks
			}
			c.state.SetSelf(c.cfg.Nicks[nickIndex])
			if err := c.uw.Nick(c.cfg.Nicks[nickIndex]); err != nil {
				return err
			}
		default:
			if name, bad := errorCodes[fields[1]]; bad {
				return &ProtocolError{Code: fields[1], Name: name, Line: line}
			}
		}
	}
}

// State exposes the channel/user state store.
func (c *Client) State() *data.State {
	return c.state
}

// Writer returns a writer safe to use from hooks and other goroutines.
func (c *Client) Writer() irc.Writer {
	return c.w
}

// SetHook registers a handler for an event kind. Registering under
// irc.UNHANDLED installs the fallback hook.
func (c *Client) SetHook(kind string, handler dispatch.Handler) {
	c.hooks.Set(kind, handler)
}

// SetHookFunc registers a plain function for an event kind.
func (c *Client) SetHookFunc(kind string, fn func(w irc.Writer, ev *irc.Event)) {
	c.hooks.Set(kind, dispatch.HandlerFunc(fn))
}

// RemoveHook unregisters the handler for an event kind.
func (c *Client) RemoveHook(kind string) bool {
	return c.hooks.Remove(kind)
}

// SetAuto registers the one-shot idle hook fired by Run when the
// connection goes quiet.
func (c *Client) SetAuto(fn dispatch.AutoFunc) {
	c.hooks.SetAuto(fn)
}

// SetCTCP configures the reply for a CTCP command token. A nil replier
// disables it.
func (c *Client) SetCTCP(tag string, replier CTCPReplier) {
	c.mut.Lock()
	c.ctcps[tag] = replier
	c.mut.Unlock()
}

// NextEvent classifies the next buffered line into a typed event, blocking
// on the connection if none is buffered. State mutation happens here, as a
// side effect of classification.
func (c *Client) NextEvent() (*irc.Event, error) {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.nextEvent()
}

// Readable reports whether an event can be produced within the timeout
// without blocking further.
func (c *Client) Readable(timeout time.Duration) (bool, error) {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.readable(timeout)
}

func (c *Client) readable(timeout time.Duration) (bool, error) {
	if len(c.replay) > 0 {
		return true, nil
	}
	return c.conn.Readable(timeout)
}

// ProcessOnce waits up to timeout for one event and dispatches it. No event
// within the timeout is not an error. An event nobody handles returns
// ErrUnhandledEvent; hooks avoid this by registering an UNHANDLED fallback.
func (c *Client) ProcessOnce(timeout time.Duration) error {
	c.mut.Lock()
	ok, err := c.readable(timeout)
	if err != nil {
		c.mut.Unlock()
		return err
	}
	if !ok {
		c.mut.Unlock()
		return nil
	}
	ev, err := c.nextEvent()
	c.mut.Unlock()
	if err != nil {
		return err
	}

	if c.hooks.Dispatch(c.w, ev) == dispatch.Unhandled {
		return errors.Wrap(ErrUnhandledEvent, ev.Name)
	}
	return nil
}

// Run processes events until Stop is called or an error surfaces. Each
// iteration first checks whether the connection is idle and an AUTO hook is
// registered; if so the hook fires exactly once, and may call Stop to
// request shutdown before any further event is processed.
func (c *Client) Run() error {
	c.setRunning(true)
	for c.keepRunning() {
		if c.hooks.HasAuto() {
			c.mut.Lock()
			busy, err := c.readable(idlePoll)
			c.mut.Unlock()
			if err != nil {
				return err
			}
			if !busy {
				if auto := c.hooks.TakeAuto(); auto != nil {
					auto(c.w)
				}
			}
			if !c.keepRunning() {
				break
			}
		}

		if err := c.ProcessOnce(processPoll); err != nil {
			return err
		}
	}
	return nil
}

// Stop clears the running flag. The loop notices at its next iteration; a
// running hook is never interrupted.
func (c *Client) Stop() {
	c.setRunning(false)
}

func (c *Client) setRunning(v bool) {
	c.mut.Lock()
	c.running = v
	c.mut.Unlock()
}

func (c *Client) keepRunning() bool {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.running
}

// disconnect closes the connection once. Called under the engine mutex.
func (c *Client) disconnect() {
	if c.closed {
		return
	}
	c.closed = true
	if err := c.conn.Close(); err != nil {
		c.logger.Debug("close failed", "err", err)
	}
}

// Close tears the connection down without the QUIT courtesy.
func (c *Client) Close() error {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.running = false
	c.disconnect()
	return nil
}
