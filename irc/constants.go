package irc

// IRC Messages, these messages are 1-1 constant to string lookups for ease of
// use when registering hooks etc.
const (
	PRIVMSG = "PRIVMSG"
	NOTICE  = "NOTICE"
	QUIT    = "QUIT"
	JOIN    = "JOIN"
	PART    = "PART"
	KICK    = "KICK"
	INVITE  = "INVITE"
	NICK    = "NICK"
	TOPIC   = "TOPIC"
	MODE    = "MODE"
	ERROR   = "ERROR"
	PING    = "PING"
	PONG    = "PONG"
)

// Pseudo Messages, these are not commands defined by the irc protocol but
// the classifier emits them to distinguish payloads carried inside PRIVMSG
// and NOTICE, and to report aggregate or unclassifiable lines.
const (
	ACTION     = "ACTION"
	CTCP       = "CTCP"
	CTCP_REPLY = "CTCP_REPLY"
	LUSERS     = "LUSERS"
	UNKNOWN    = "UNKNOWN"
)

// Hook sentinels. AUTO is a one-shot hook fired when the connection goes
// idle, UNHANDLED is the fallback for events without a registered hook.
const (
	AUTO      = "AUTO"
	UNHANDLED = "UNHANDLED"
)

// Numeric replies the engine reacts to by name.
const (
	RPL_WELCOME       = "001"
	RPL_TOPIC         = "332"
	RPL_NAMREPLY      = "353"
	RPL_ENDOFNAMES    = "366"
	ERR_NICKNAMEINUSE = "433"
)
