/*
Package irc defines the types shared by most other packages in lurk. It is
small and comprised mostly of helper like types and constants.
*/
package irc

import (
	"bytes"
	"strings"
	"time"
)

// Event is a classified protocol line.
type Event struct {
	// Name of the event. Uppercase constant name or numeric.
	Name string
	// Sender is the server or user that sent the event.
	Sender Origin
	// Args split by space delimiting, the last arg may contain spaces.
	Args []string
	// Stats is only set on LUSERS events and holds a snapshot of the
	// server statistics counters.
	Stats map[string]string
	// Time is the time this event was received.
	Time time.Time
}

// NewEvent constructs an event with a timestamp.
func NewEvent(name string, sender Origin, args ...string) *Event {
	var setArgs []string
	if len(args) > 0 {
		setArgs = make([]string, len(args))
		copy(setArgs, args)
	}
	return &Event{Name: name, Sender: sender, Args: setArgs,
		Time: time.Now().UTC()}
}

// Nick returns the nick of the sender, or the raw sender token when the
// sender is not a user.
func (e *Event) Nick() string {
	return e.Sender.Nick()
}

// SplitHost splits the sender into its fragments: nick, user, and hostname.
func (e *Event) SplitHost() (nick, user, host string, ok bool) {
	return e.Sender.Split()
}

// Target retrieves the channel or user this event was sent to. Only
// meaningful for event kinds that carry a target as their first argument.
func (e *Event) Target() string {
	if len(e.Args) == 0 {
		return ""
	}
	return e.Args[0]
}

// Message retrieves the message body. Only meaningful for event kinds that
// carry a body as their second argument.
func (e *Event) Message() string {
	if len(e.Args) < 2 {
		return ""
	}
	return e.Args[1]
}

// String turns this back into an IRC style line.
func (e *Event) String() string {
	b := &bytes.Buffer{}
	if len(e.Sender) > 0 {
		b.WriteByte(':')
		b.WriteString(string(e.Sender))
		b.WriteByte(' ')
	}
	b.WriteString(e.Name)

	lastArg := len(e.Args) - 1
	for i, arg := range e.Args {
		b.WriteByte(' ')
		if lastArg == i && strings.ContainsRune(arg, ' ') {
			b.WriteByte(':')
		}
		b.WriteString(arg)
	}

	return b.String()
}
