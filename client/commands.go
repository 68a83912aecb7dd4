package client

import "github.com/lurklib/lurk/irc"

// The outbound command layer. These are thin request-formatting wrappers;
// all the protocol intelligence lives in the classifier, which observes the
// server's answers to these requests like any other traffic.

// Join requests a channel join, with an optional key, and consumes the
// server's confirmation burst before returning the resulting JOIN event.
// The channel entry exists in the state store once this returns.
func (c *Client) Join(channel string, key ...string) (*irc.Event, error) {
	c.mut.Lock()
	defer c.mut.Unlock()
	if err := c.uw.Join(channel, key...); err != nil {
		return nil, err
	}
	return c.confirmJoin(channel)
}

// Part leaves a channel with a reason. The state entry is removed when the
// server's PART echo is classified.
func (c *Client) Part(channel, reason string) error {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.uw.Part(channel, reason)
}

// Privmsg sends a message to a user or channel.
func (c *Client) Privmsg(target, msg string) error {
	return c.w.Privmsg(target, msg)
}

// Notice sends a notice to a user or channel.
func (c *Client) Notice(target, msg string) error {
	return c.w.Notice(target, msg)
}

// Action sends a CTCP ACTION to a user or channel.
func (c *Client) Action(target, msg string) error {
	return c.w.CTCP(target, irc.ACTION+" "+msg)
}

// CTCPRequest sends a CTCP request to a user.
func (c *Client) CTCPRequest(target, msg string) error {
	return c.w.CTCP(target, msg)
}

// Topic sets a channel topic.
func (c *Client) Topic(channel, topic string) error {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.uw.Topic(channel, topic)
}

// Nick requests a nick change. The tracked own nick follows when the
// server's NICK echo is classified.
func (c *Client) Nick(nick string) error {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.uw.Nick(nick)
}

// Quit sends QUIT with a reason and closes the connection.
func (c *Client) Quit(reason string) error {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.running = false
	err := c.uw.Quit(reason)
	c.disconnect()
	return err
}
