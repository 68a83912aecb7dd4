/*
Package parse deals with generic parsing of the irc protocol. It is the
lower-fidelity fallback used for lines the classifier has no specific
handling for.
*/
package parse

import (
	"regexp"
	"strings"

	"github.com/lurklib/lurk/irc"
)

const (
	// errMsgParseFailure is given when ircRegex fails to parse a line.
	errMsgParseFailure = "parse: unable to parse received irc protocol"
)

var (
	// ircRegex splits a protocol line into prefix, command, middle
	// arguments, and the trailing parameter.
	ircRegex = regexp.MustCompile(
		`^(?::(\S+) )?([A-Za-z0-9]+)((?: (?:[^:\s]+))*)(?: :(.*))?$`)
)

// ParseError is returned when a line does not match the protocol grammar;
// it carries the offending line.
type ParseError struct {
	Msg string
	Irc string
}

// Error satisfies the error interface for ParseError.
func (p ParseError) Error() string {
	return p.Msg
}

// Line produces a generic event from a raw protocol line. The line must not
// contain the terminator.
func Line(raw string) (*irc.Event, error) {
	parts := ircRegex.FindStringSubmatch(raw)
	if parts == nil {
		return nil, ParseError{Msg: errMsgParseFailure, Irc: raw}
	}

	var args []string
	if mid := strings.TrimLeft(parts[3], " "); len(mid) > 0 {
		args = strings.Split(mid, " ")
	}
	if parts[4] != "" {
		args = append(args, parts[4])
	}

	return irc.NewEvent(parts[2], irc.Origin(parts[1]), args...), nil
}
