package client

import "time"

// CTCPReplier resolves the reply body for a CTCP request. req is the
// whitespace-split decoded request, req[0] the command token. ok false
// means no reply is sent.
type CTCPReplier interface {
	Reply(req []string) (body string, ok bool)
}

// Constant replies with a fixed string.
type Constant string

// Reply implements CTCPReplier.
func (c Constant) Reply([]string) (string, bool) {
	return string(c), true
}

// Producer replies with a freshly produced string per request.
type Producer func() string

// Reply implements CTCPReplier.
func (p Producer) Reply([]string) (string, bool) {
	return p(), true
}

// Echo replies with one of the request's own tokens, by position.
type Echo int

// Reply implements CTCPReplier.
func (e Echo) Reply(req []string) (string, bool) {
	if int(e) < 0 || int(e) >= len(req) {
		return "", false
	}
	return req[int(e)], true
}

// CTCPTable maps CTCP command tokens to their configured replies. A nil
// entry disables the reply for that token.
type CTCPTable map[string]CTCPReplier

// DefaultCTCPs builds the stock reply table: VERSION and SOURCE constants,
// PING echoing the request token, TIME producing the current time.
func DefaultCTCPs(version, source string) CTCPTable {
	return CTCPTable{
		"VERSION": Constant(version),
		"SOURCE":  Constant(source),
		"PING":    Echo(1),
		"TIME":    Producer(func() string { return time.Now().Format(time.ANSIC) }),
	}
}

// ctcpReply consults the table and, on a match with a resolvable body,
// sends the reply back as a CTCP notice to the requester. The reply payload
// is the command token followed by the resolved body.
func (c *Client) ctcpReply(nick, tag string, req []string) {
	replier, ok := c.ctcps[tag]
	if !ok || replier == nil {
		return
	}
	body, ok := replier.Reply(req)
	if !ok {
		return
	}

	reply := tag
	if len(body) > 0 {
		reply += " " + body
	}
	if err := c.uw.CTCPReply(nick, reply); err != nil {
		c.logger.Error("ctcp reply failed", "tag", tag, "err", err)
	}
}
