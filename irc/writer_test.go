package irc

import (
	"bytes"

	. "gopkg.in/check.v1"
)

// lineRecorder captures each Write as one line.
type lineRecorder struct {
	lines []string
}

func (l *lineRecorder) Write(b []byte) (int, error) {
	l.lines = append(l.lines, string(b))
	return len(b), nil
}

func (s *s) TestHelper_Commands(c *C) {
	r := &lineRecorder{}
	h := Helper{Writer: r}

	c.Check(h.Privmsg("#chan", "hello there"), IsNil)
	c.Check(h.Notice("nick", "psst"), IsNil)
	c.Check(h.CTCP("nick", "VERSION"), IsNil)
	c.Check(h.CTCPReply("nick", "VERSION lurk"), IsNil)
	c.Check(h.Join("#chan"), IsNil)
	c.Check(h.Join("#chan", "sekrit"), IsNil)
	c.Check(h.Part("#chan", "bye"), IsNil)
	c.Check(h.Quit("gone"), IsNil)
	c.Check(h.Pong("12345"), IsNil)
	c.Check(h.Nick("newnick"), IsNil)
	c.Check(h.User("uname", "real name"), IsNil)
	c.Check(h.Pass("pw"), IsNil)

	c.Check(r.lines, DeepEquals, []string{
		"PRIVMSG #chan :hello there",
		"NOTICE nick :psst",
		"PRIVMSG nick :\x01VERSION\x01",
		"NOTICE nick :\x01VERSION lurk\x01",
		"JOIN #chan",
		"JOIN #chan sekrit",
		"PART #chan :bye",
		"QUIT :gone",
		"PONG :12345",
		"NICK newnick",
		"USER uname 0 * :real name",
		"PASS pw",
	})
}

func (s *s) TestHelper_Send(c *C) {
	buf := &bytes.Buffer{}
	h := Helper{Writer: buf}
	c.Check(h.Sendf("%s %s", "WHOIS", "nick"), IsNil)
	c.Check(buf.String(), Equals, "WHOIS nick")
}
