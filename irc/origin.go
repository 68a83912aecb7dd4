package irc

import "strings"

// Origin is the prefix token attached to protocol lines, either a user in
// nick!user@host form or a bare server name.
type Origin string

// Split splits an origin into its fragments: nick, user, and host. The token
// is split once on @ from the left, and the first half once on !. If either
// separator is missing ok is false and the token should be used as-is; this
// signals a server origin or malformed input and never fails harder.
func (o Origin) Split() (nick, user, host string, ok bool) {
	s := string(o)
	at := strings.Index(s, "@")
	if at < 0 {
		return "", "", "", false
	}
	excl := strings.Index(s[:at], "!")
	if excl < 0 {
		return "", "", "", false
	}
	return s[:excl], s[excl+1 : at], s[at+1:], true
}

// IsUser returns true if the origin has the nick!user@host shape.
func (o Origin) IsUser() bool {
	_, _, _, ok := o.Split()
	return ok
}

// Nick returns the nick of this origin, or the whole token when it is not
// a user origin.
func (o Origin) Nick() string {
	s := string(o)
	if index := strings.IndexAny(s, "!@"); index >= 0 {
		return s[:index]
	}
	return s
}

// Username returns the user fragment, empty for non-user origins.
func (o Origin) Username() string {
	_, user, _, _ := o.Split()
	return user
}

// Hostname returns the host fragment, empty for non-user origins.
func (o Origin) Hostname() string {
	_, _, host, _ := o.Split()
	return host
}

func (o Origin) String() string {
	return string(o)
}
