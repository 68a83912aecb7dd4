package irc

import (
	"fmt"
	"io"
)

// Format strings for the outbound protocol commands. The trailing parameter
// is always prefixed with : so it may contain spaces.
const (
	fmtPrivmsg   = PRIVMSG + " %s :%s"
	fmtNotice    = NOTICE + " %s :%s"
	fmtJoin      = JOIN + " %s"
	fmtJoinKey   = JOIN + " %s %s"
	fmtPart      = PART + " %s :%s"
	fmtQuit      = QUIT + " :%s"
	fmtPong      = PONG + " :%s"
	fmtNick      = NICK + " %s"
	fmtUser      = "USER %s 0 * :%s"
	fmtPass      = "PASS %s"
	fmtTopic     = TOPIC + " %s :%s"
	fmtInvite    = INVITE + " %s %s"
	fmtKick      = KICK + " %s %s :%s"
	fmtModeQuery = MODE + " %s"
	fmtMode      = MODE + " %s %s"
)

// Writer provides common write operations in IRC protocol fashion to an
// underlying io.Writer. Each call writes exactly one protocol line, the
// underlying writer is responsible for encoding and the line terminator.
type Writer interface {
	io.Writer
	// Send sends a raw protocol line.
	Send(line string) error
	// Sendf sends a formatted protocol line.
	Sendf(format string, args ...interface{}) error

	// Privmsg sends a message to a user or channel.
	Privmsg(target, msg string) error
	// Notice sends a notice to a user or channel.
	Notice(target, msg string) error
	// CTCP sends a CTCP request inside a privmsg.
	CTCP(target, msg string) error
	// CTCPReply sends a CTCP reply inside a notice.
	CTCPReply(target, msg string) error

	// Join sends a join request, with an optional channel key.
	Join(channel string, key ...string) error
	// Part sends a part request with a reason.
	Part(channel, reason string) error
	// Quit sends a quit with a reason.
	Quit(reason string) error
	// Pong answers a keep-alive probe.
	Pong(token string) error
}

// Helper fulfills the Writer interface on top of any io.Writer.
type Helper struct {
	io.Writer
}

// Send sends a raw protocol line.
func (h Helper) Send(line string) error {
	_, err := h.Write([]byte(line))
	return err
}

// Sendf sends a formatted protocol line.
func (h Helper) Sendf(format string, args ...interface{}) error {
	return h.Send(fmt.Sprintf(format, args...))
}

// Privmsg sends a message to a user or channel.
func (h Helper) Privmsg(target, msg string) error {
	return h.Sendf(fmtPrivmsg, target, msg)
}

// Notice sends a notice to a user or channel.
func (h Helper) Notice(target, msg string) error {
	return h.Sendf(fmtNotice, target, msg)
}

// CTCP sends a CTCP request inside a privmsg.
func (h Helper) CTCP(target, msg string) error {
	return h.Privmsg(target, CTCPEncode(msg))
}

// CTCPReply sends a CTCP reply inside a notice.
func (h Helper) CTCPReply(target, msg string) error {
	return h.Notice(target, CTCPEncode(msg))
}

// Join sends a join request, with an optional channel key.
func (h Helper) Join(channel string, key ...string) error {
	if len(key) > 0 && len(key[0]) > 0 {
		return h.Sendf(fmtJoinKey, channel, key[0])
	}
	return h.Sendf(fmtJoin, channel)
}

// Part sends a part request with a reason.
func (h Helper) Part(channel, reason string) error {
	return h.Sendf(fmtPart, channel, reason)
}

// Quit sends a quit with a reason.
func (h Helper) Quit(reason string) error {
	return h.Sendf(fmtQuit, reason)
}

// Pong answers a keep-alive probe.
func (h Helper) Pong(token string) error {
	return h.Sendf(fmtPong, token)
}

// Nick requests a nick change.
func (h Helper) Nick(nick string) error {
	return h.Sendf(fmtNick, nick)
}

// User sends the registration USER command.
func (h Helper) User(username, realname string) error {
	return h.Sendf(fmtUser, username, realname)
}

// Pass sends the connection password.
func (h Helper) Pass(password string) error {
	return h.Sendf(fmtPass, password)
}

// Topic sets a channel topic.
func (h Helper) Topic(channel, topic string) error {
	return h.Sendf(fmtTopic, channel, topic)
}

// Invite invites a nick to a channel.
func (h Helper) Invite(nick, channel string) error {
	return h.Sendf(fmtInvite, nick, channel)
}

// Kick removes a nick from a channel with a reason.
func (h Helper) Kick(channel, nick, reason string) error {
	return h.Sendf(fmtKick, channel, nick, reason)
}

// Mode queries or changes modes on a target.
func (h Helper) Mode(target string, modes ...string) error {
	if len(modes) == 0 {
		return h.Sendf(fmtModeQuery, target)
	}
	return h.Sendf(fmtMode, target, modes[0])
}
