package data

import (
	. "gopkg.in/check.v1"
)

func (s *s) TestParseModeString(c *C) {
	changes := ParseModeString("+o-v+bk alice bob *!*@spam sekrit",
		ChanModesWithArgs)
	c.Check(changes, DeepEquals, []ModeChange{
		{Mode: 'o', Adding: true, Arg: "alice"},
		{Mode: 'v', Adding: false, Arg: "bob"},
		{Mode: 'b', Adding: true, Arg: "*!*@spam"},
		{Mode: 'k', Adding: true, Arg: "sekrit"},
	})
}

func (s *s) TestParseModeString_NoArgs(c *C) {
	changes := ParseModeString("+nt-i", ChanModesWithArgs)
	c.Check(changes, DeepEquals, []ModeChange{
		{Mode: 'n', Adding: true},
		{Mode: 't', Adding: true},
		{Mode: 'i', Adding: false},
	})
}

func (s *s) TestParseModeString_MissingArgs(c *C) {
	// Argument-taking modes with no argument left are parsed bare.
	changes := ParseModeString("+ov alice", ChanModesWithArgs)
	c.Check(changes, DeepEquals, []ModeChange{
		{Mode: 'o', Adding: true, Arg: "alice"},
		{Mode: 'v', Adding: true},
	})
}

func (s *s) TestModeset(c *C) {
	m := NewModeset()
	c.Check(m.IsSet('n'), Equals, false)

	m.Apply("+ntk sekrit", ChanModesWithArgs)
	c.Check(m.IsSet('n'), Equals, true)
	c.Check(m.IsSet('t'), Equals, true)
	c.Check(m.Arg('k'), Equals, "sekrit")

	m.Apply("-kn", ChanModesWithArgs)
	c.Check(m.IsSet('k'), Equals, false)
	c.Check(m.IsSet('n'), Equals, false)
	c.Check(m.IsSet('t'), Equals, true)
}

func (s *s) TestChannel_Users(c *C) {
	ch := NewChannel("#chan")
	c.Check(ch.Name(), Equals, "#chan")
	c.Check(ch.NumUsers(), Equals, 0)

	u := ch.AddUser("alice")
	u.SetPrivilege("@")
	c.Check(ch.HasUser("alice"), Equals, true)
	c.Check(ch.User("alice").Privilege(), Equals, "@")

	// Re-adding keeps the existing attribute vector.
	c.Check(ch.AddUser("alice"), Equals, u)

	c.Check(ch.RenameUser("alice", "bob"), Equals, true)
	c.Check(ch.HasUser("alice"), Equals, false)
	c.Check(ch.User("bob").Privilege(), Equals, "@")
	c.Check(ch.RenameUser("nobody", "x"), Equals, false)

	c.Check(ch.RemoveUser("bob"), Equals, true)
	c.Check(ch.RemoveUser("bob"), Equals, false)
	c.Check(ch.NumUsers(), Equals, 0)
}

func (s *s) TestIsChannelName(c *C) {
	c.Check(IsChannelName("#chan"), Equals, true)
	c.Check(IsChannelName("&local"), Equals, true)
	c.Check(IsChannelName("+modeless"), Equals, true)
	c.Check(IsChannelName("!secure"), Equals, true)
	c.Check(IsChannelName("nick"), Equals, false)
	c.Check(IsChannelName(""), Equals, false)
}
