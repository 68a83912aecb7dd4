package client

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnhandledEvent is returned by ProcessOnce when an event arrives
	// and neither a hook for its kind nor the UNHANDLED fallback is
	// registered.
	ErrUnhandledEvent = errors.New("client: unhandled event")

	// errNoMoreNicks is returned when every configured nick is taken.
	errNoMoreNicks = errors.New("client: all configured nicks in use")
)

// ProtocolError is raised when the server answers with a numeric from the
// error-code set. It aborts classification of that line but is recoverable;
// the connection stays up.
type ProtocolError struct {
	// Code is the 3-digit numeric.
	Code string
	// Name is the protocol-defined name of the numeric.
	Name string
	// Line is the full offending line.
	Line string
}

// Error satisfies the error interface.
func (p *ProtocolError) Error() string {
	return fmt.Sprintf("client: protocol error %s (%s): %s",
		p.Code, p.Name, p.Line)
}

// errorCodes is the set of numeric replies that short-circuit
// classification into a ProtocolError. 422 (no MOTD) is deliberately
// absent, servers without a MOTD answer registration with it.
var errorCodes = map[string]string{
	"401": "ERR_NOSUCHNICK",
	"402": "ERR_NOSUCHSERVER",
	"403": "ERR_NOSUCHCHANNEL",
	"404": "ERR_CANNOTSENDTOCHAN",
	"405": "ERR_TOOMANYCHANNELS",
	"406": "ERR_WASNOSUCHNICK",
	"407": "ERR_TOOMANYTARGETS",
	"409": "ERR_NOORIGIN",
	"411": "ERR_NORECIPIENT",
	"412": "ERR_NOTEXTTOSEND",
	"413": "ERR_NOTOPLEVEL",
	"414": "ERR_WILDTOPLEVEL",
	"421": "ERR_UNKNOWNCOMMAND",
	"423": "ERR_NOADMININFO",
	"424": "ERR_FILEERROR",
	"431": "ERR_NONICKNAMEGIVEN",
	"432": "ERR_ERRONEUSNICKNAME",
	"433": "ERR_NICKNAMEINUSE",
	"436": "ERR_NICKCOLLISION",
	"441": "ERR_USERNOTINCHANNEL",
	"442": "ERR_NOTONCHANNEL",
	"443": "ERR_USERONCHANNEL",
	"444": "ERR_NOLOGIN",
	"445": "ERR_SUMMONDISABLED",
	"446": "ERR_USERSDISABLED",
	"451": "ERR_NOTREGISTERED",
	"461": "ERR_NEEDMOREPARAMS",
	"462": "ERR_ALREADYREGISTRED",
	"463": "ERR_NOPERMFORHOST",
	"464": "ERR_PASSWDMISMATCH",
	"465": "ERR_YOUREBANNEDCREEP",
	"467": "ERR_KEYSET",
	"471": "ERR_CHANNELISFULL",
	"472": "ERR_UNKNOWNMODE",
	"473": "ERR_INVITEONLYCHAN",
	"474": "ERR_BANNEDFROMCHAN",
	"475": "ERR_BADCHANNELKEY",
	"481": "ERR_NOPRIVILEGES",
	"482": "ERR_CHANOPRIVSNEEDED",
	"483": "ERR_CANTKILLSERVER",
	"491": "ERR_NOOPERHOST",
	"501": "ERR_UMODEUNKNOWNFLAG",
	"502": "ERR_USERSDONTMATCH",
}
