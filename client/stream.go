package client

import (
	"strings"

	"github.com/lurklib/lurk/data"
	"github.com/lurklib/lurk/irc"
	"github.com/lurklib/lurk/parse"
)

// splitFields tokenizes a line on runs of whitespace.
func splitFields(line string) []string {
	return strings.Fields(line)
}

// arg returns the token at offset i of a whitespace-split line, stripped of
// a leading :, or empty when the line is too short. The numerics carry
// their payloads at protocol-fixed offsets.
func arg(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimPrefix(fields[i], ":")
}

// rest splits off n-1 leading tokens and returns the remainder with a
// leading : stripped; the trailing parameter of a line may contain spaces.
func rest(line string, n int) string {
	parts := strings.SplitN(line, " ", n)
	if len(parts) < n {
		return ""
	}
	return strings.TrimPrefix(parts[n-1], ":")
}

// nextRaw returns the next line to classify, preferring lines pushed back
// by the join confirmation path.
func (c *Client) nextRaw() (string, error) {
	if len(c.replay) > 0 {
		line := c.replay[0]
		c.replay = c.replay[1:]
		return line, nil
	}
	return c.conn.Next()
}

// nextEvent is the protocol state machine. It pulls one line and dispatches
// on the command token, mutating the state store as a side effect. Callers
// hold the engine mutex.
func (c *Client) nextEvent() (*irc.Event, error) {
	line, err := c.nextRaw()
	if err != nil {
		return nil, err
	}
	return c.classify(line)
}

func (c *Client) classify(line string) (*irc.Event, error) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return c.unknown(line)
	}

	// An ERROR line terminates the connection; the text is surfaced as a
	// normal event rather than an error so hooks see it in order.
	if fields[0] == irc.ERROR {
		c.disconnect()
		return irc.NewEvent(irc.ERROR, "", rest(line, 2)), nil
	}
	if len(fields) < 2 {
		return c.unknown(line)
	}

	cmd := fields[1]
	if name, bad := errorCodes[cmd]; bad {
		return nil, &ProtocolError{Code: cmd, Name: name, Line: line}
	}

	sender := irc.Origin(strings.TrimPrefix(fields[0], ":"))

	switch cmd {
	case irc.JOIN:
		channel := arg(fields, 2)
		if len(channel) == 0 {
			return c.unknown(line)
		}
		if !c.state.HasChannel(channel) {
			// Our own join: the confirmation path replays this line and
			// builds the channel entry before the event is emitted.
			c.pushBack(line)
			return c.confirmJoin(channel)
		}
		c.state.Join(sender.Nick(), channel)
		return irc.NewEvent(irc.JOIN, sender, channel), nil

	case irc.PART:
		channel := arg(fields, 2)
		c.state.Part(sender.Nick(), channel)
		return irc.NewEvent(irc.PART, sender, channel, rest(line, 4)), nil

	case irc.PRIVMSG:
		target := arg(fields, 2)
		body := rest(line, 4)
		if irc.IsCTCPString(body) {
			return c.classifyCTCP(sender, target, body), nil
		}
		return irc.NewEvent(irc.PRIVMSG, sender, target, body), nil

	case irc.NOTICE:
		target := arg(fields, 2)
		body := rest(line, 4)
		if irc.IsCTCPString(body) {
			return irc.NewEvent(irc.CTCP_REPLY, sender, target,
				irc.CTCPDecode(body)), nil
		}
		return irc.NewEvent(irc.NOTICE, sender, target, body), nil

	case irc.MODE:
		target := arg(fields, 2)
		modestr := rest(line, 4)
		if c.state.IsSelf(target) {
			return irc.NewEvent(irc.MODE, sender, modestr), nil
		}
		c.state.ApplyMode(target, modestr)
		return irc.NewEvent(irc.MODE, sender, target, modestr), nil

	case irc.KICK:
		channel, kicked := arg(fields, 2), arg(fields, 3)
		c.state.Kick(kicked, channel)
		return irc.NewEvent(irc.KICK, sender, channel, kicked,
			rest(line, 5)), nil

	case irc.INVITE:
		return irc.NewEvent(irc.INVITE, sender, arg(fields, 2),
			arg(fields, 3)), nil

	case irc.NICK:
		newNick := arg(fields, 2)
		c.state.RenameNick(sender.Nick(), newNick)
		return irc.NewEvent(irc.NICK, sender, newNick), nil

	case irc.TOPIC:
		channel := arg(fields, 2)
		topic := rest(line, 4)
		c.state.SetTopic(channel, topic)
		return irc.NewEvent(irc.TOPIC, sender, channel, topic), nil

	case irc.QUIT:
		c.state.Quit(sender.Nick())
		return irc.NewEvent(irc.QUIT, sender, rest(line, 3)), nil

	case "250", "251", "252", "253", "254", "255", "265", "266":
		c.lusersUpdate(cmd, fields)
		ev := irc.NewEvent(irc.LUSERS, sender)
		ev.Stats = c.state.LUsers().Snapshot()
		return ev, nil
	}

	return c.unknown(line)
}

// classifyCTCP handles a CTCP-delimited privmsg body: ACTION becomes its
// own event kind, anything else consults the reply table and emits CTCP.
func (c *Client) classifyCTCP(sender irc.Origin, target, body string) *irc.Event {
	decoded := irc.CTCPDecode(body)
	toks := strings.Fields(decoded)
	if len(toks) == 0 {
		return irc.NewEvent(irc.CTCP, sender, target, "")
	}

	tag := strings.ToUpper(toks[0])
	if tag == irc.ACTION {
		return irc.NewEvent(irc.ACTION, sender, target,
			strings.Join(toks[1:], " "))
	}

	c.ctcpReply(sender.Nick(), tag, toks)

	payload := tag
	if len(toks) > 1 {
		payload += " " + strings.Join(toks[1:], " ")
	}
	return irc.NewEvent(irc.CTCP, sender, target, payload)
}

// unknown is the lower-fidelity fallthrough for lines the classifier has no
// specific handling for.
func (c *Client) unknown(line string) (*irc.Event, error) {
	parsed, err := parse.Line(line)
	if err != nil {
		return irc.NewEvent(irc.UNKNOWN, "", line), nil
	}
	args := append([]string{parsed.Name}, parsed.Args...)
	ev := irc.NewEvent(irc.UNKNOWN, parsed.Sender, args...)
	return ev, nil
}

// pushBack returns a line to the front of the read order.
func (c *Client) pushBack(line string) {
	c.replay = append([]string{line}, c.replay...)
}

// confirmJoin consumes the server's join burst for a channel: the JOIN
// echo, the topic (332) and names (353) replies, up to the end-of-names
// (366). Lines belonging to other traffic are kept aside and replayed in
// order afterwards. The resulting JOIN event is emitted only once the
// channel entry is fully built.
func (c *Client) confirmJoin(channel string) (*irc.Event, error) {
	ch := c.state.AddChannel(channel)
	var joined *irc.Event
	var stash []string

	replayStash := func() {
		c.replay = append(stash, c.replay...)
	}

	for {
		line, err := c.nextRaw()
		if err != nil {
			replayStash()
			return nil, err
		}
		fields := splitFields(line)
		if len(fields) < 2 {
			stash = append(stash, line)
			continue
		}

		if name, bad := errorCodes[fields[1]]; bad {
			c.state.RemoveChannel(channel)
			replayStash()
			return nil, &ProtocolError{Code: fields[1], Name: name, Line: line}
		}

		sender := irc.Origin(strings.TrimPrefix(fields[0], ":"))

		switch fields[1] {
		case irc.JOIN:
			if strings.EqualFold(arg(fields, 2), channel) {
				c.state.Join(sender.Nick(), channel)
				joined = irc.NewEvent(irc.JOIN, sender, channel)
				continue
			}

		case irc.RPL_TOPIC:
			if strings.EqualFold(arg(fields, 3), channel) {
				c.state.SetTopic(channel, rest(line, 5))
				continue
			}

		case irc.RPL_NAMREPLY:
			if strings.EqualFold(arg(fields, 4), channel) {
				c.confirmNames(ch, rest(line, 6))
				continue
			}

		case irc.RPL_ENDOFNAMES:
			if strings.EqualFold(arg(fields, 3), channel) {
				replayStash()
				if joined == nil {
					joined = irc.NewEvent(irc.JOIN,
						irc.Origin(c.state.Self()), channel)
				}
				return joined, nil
			}
		}

		stash = append(stash, line)
	}
}

// confirmNames populates channel members from a names reply, splitting off
// the privilege prefix each name may carry.
func (c *Client) confirmNames(ch *data.Channel, names string) {
	for _, name := range strings.Fields(names) {
		marker := ""
		if strings.ContainsAny(name[:1], "@+%&~") {
			marker, name = name[:1], name[1:]
		}
		if len(name) == 0 {
			continue
		}
		ch.AddUser(name).SetPrivilege(marker)
	}
}

// lusersUpdate merges a server statistics numeric into the counters. The
// token offsets are protocol-fixed.
func (c *Client) lusersUpdate(code string, fields []string) {
	l := c.state.LUsers()
	set := func(key string, offset int) {
		if v := arg(fields, offset); len(v) > 0 {
			l.Set(key, v)
		}
	}

	switch code {
	case "250":
		set(data.LUsersHighestConnections, 6)
		set(data.LUsersTotalConnections, 9)
	case "251":
		set(data.LUsersUsers, 5)
		set(data.LUsersInvisible, 8)
		set(data.LUsersServers, 11)
	case "252":
		set(data.LUsersOperators, 3)
	case "253":
		set(data.LUsersUnknown, 3)
	case "254":
		set(data.LUsersChannels, 3)
	case "255":
		set(data.LUsersClients, 5)
		set(data.LUsersLocalServers, 8)
	case "265":
		set(data.LUsersLocalUsers, 6)
		set(data.LUsersLocalMax, 8)
	case "266":
		set(data.LUsersGlobalUsers, 6)
		set(data.LUsersGlobalMax, 8)
	}
}
