package irc

import (
	. "gopkg.in/check.v1"
)

func (s *s) TestCTCP_RoundTrip(c *C) {
	for _, msg := range []string{"", "VERSION", "PING 123", "ACTION does a thing"} {
		c.Check(CTCPDecode(CTCPEncode(msg)), Equals, msg)
	}
}

func (s *s) TestCTCP_Encode(c *C) {
	c.Check(CTCPEncode("VERSION"), Equals, "\x01VERSION\x01")
}

func (s *s) TestCTCP_DecodeStripsAllDelims(c *C) {
	c.Check(CTCPDecode("\x01VER\x01SION\x01"), Equals, "VERSION")
}

func (s *s) TestCTCP_IsCTCPString(c *C) {
	c.Check(IsCTCPString("\x01VERSION\x01"), Equals, true)
	c.Check(IsCTCPString("VERSION"), Equals, false)
	c.Check(IsCTCPString(""), Equals, false)
}
