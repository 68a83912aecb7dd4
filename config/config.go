/*
Package config creates the client configuration using toml.

An example configuration looks like this:
	server = "irc.example.org"
	port = 6667

	nicks = ["Lurk", "Lurk_", "Lurk__"]
	username = "lurk"
	realname = "The Lurk IRC Library"
	password = ""

	ssl = false
	noverifycert = false

	encoding = "UTF-8"
	fallbackencoding = "ISO-8859-1"

	ctcpversion = "Lurklib 1.0"
	ctcpsource = "https://github.com/lurklib/lurk"
*/
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Default ports, selected by the ssl flag when no port is configured.
const (
	DefaultPort    = 6667
	DefaultSSLPort = 6697
)

// Defaults for optional fields.
const (
	defaultNick     = "Lurk"
	defaultUsername = "lurk"
	defaultRealname = "The Lurk IRC Library"
	defaultEncoding = "UTF-8"
	defaultFallback = "ISO-8859-1"
)

var (
	errNoServer = errors.New("config: no server configured")
)

// Config holds the connection and protocol settings for one client.
type Config struct {
	Server string `toml:"server"`
	Port   uint16 `toml:"port"`

	Nicks    []string `toml:"nicks"`
	Username string   `toml:"username"`
	Realname string   `toml:"realname"`
	Password string   `toml:"password"`

	SSL          bool `toml:"ssl"`
	NoVerifyCert bool `toml:"noverifycert"`

	Encoding         string `toml:"encoding"`
	FallbackEncoding string `toml:"fallbackencoding"`

	CTCPVersion string `toml:"ctcpversion"`
	CTCPSource  string `toml:"ctcpsource"`
}

// New creates a config with every optional field defaulted.
func New() *Config {
	return &Config{
		Nicks:            []string{defaultNick},
		Username:         defaultUsername,
		Realname:         defaultRealname,
		Encoding:         defaultEncoding,
		FallbackEncoding: defaultFallback,
	}
}

// FromFile reads a toml configuration file.
func FromFile(path string) (*Config, error) {
	c := New()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	return c, c.Validate()
}

// FromString reads a toml configuration from a string.
func FromString(data string) (*Config, error) {
	c := New()
	if _, err := toml.Decode(data, c); err != nil {
		return nil, errors.Wrap(err, "config: decoding")
	}
	return c, c.Validate()
}

// Validate checks required fields and restores defaults for emptied
// optional ones.
func (c *Config) Validate() error {
	if len(c.Server) == 0 {
		return errNoServer
	}
	if len(c.Nicks) == 0 {
		c.Nicks = []string{defaultNick}
	}
	if len(c.Username) == 0 {
		c.Username = defaultUsername
	}
	if len(c.Realname) == 0 {
		c.Realname = defaultRealname
	}
	if len(c.Encoding) == 0 {
		c.Encoding = defaultEncoding
	}
	if len(c.FallbackEncoding) == 0 {
		c.FallbackEncoding = defaultFallback
	}
	return nil
}

// Address returns the host:port dial address, defaulting the port by the
// ssl flag.
func (c *Config) Address() string {
	port := c.Port
	if port == 0 {
		if c.SSL {
			port = DefaultSSLPort
		} else {
			port = DefaultPort
		}
	}
	return fmt.Sprintf("%s:%d", c.Server, port)
}
