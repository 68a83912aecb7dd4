package client

import (
	"io"

	. "gopkg.in/check.v1"

	"github.com/lurklib/lurk/data"
	"github.com/lurklib/lurk/irc"
)

// classifyLine is a test shim feeding one line through the classifier under
// the engine mutex.
func (cl *Client) classifyLine(line string) (*irc.Event, error) {
	cl.mut.Lock()
	defer cl.mut.Unlock()
	return cl.classify(line)
}

func (s *s) TestClassify_Privmsg(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":alice!a@h PRIVMSG #chan :hello there")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.PRIVMSG)
	nick, user, host, ok := ev.SplitHost()
	c.Check(ok, Equals, true)
	c.Check([]string{nick, user, host}, DeepEquals, []string{"alice", "a", "h"})
	c.Check(ev.Target(), Equals, "#chan")
	c.Check(ev.Message(), Equals, "hello there")
}

func (s *s) TestClassify_CTCPVersion(c *C) {
	cl, mock := newTestClient(c)

	ev, err := cl.classifyLine(":alice!a@h PRIVMSG #chan :\x01VERSION\x01")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.CTCP)
	c.Check(ev.Nick(), Equals, "alice")
	c.Check(ev.Target(), Equals, "#chan")
	c.Check(ev.Message(), Equals, "VERSION")

	c.Check(mock.Written(), DeepEquals, []string{
		"NOTICE alice :\x01VERSION Lurklib 1.0\x01\r\n",
	})
}

func (s *s) TestClassify_CTCPPingEcho(c *C) {
	cl, mock := newTestClient(c)

	ev, err := cl.classifyLine(":alice!a@h PRIVMSG me :\x01ping 12345\x01")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.CTCP)
	c.Check(ev.Message(), Equals, "PING 12345")

	c.Check(mock.Written(), DeepEquals, []string{
		"NOTICE alice :\x01PING 12345\x01\r\n",
	})
}

func (s *s) TestClassify_Action(c *C) {
	cl, mock := newTestClient(c)

	ev, err := cl.classifyLine(":alice!a@h PRIVMSG #chan :\x01ACTION waves hello\x01")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.ACTION)
	c.Check(ev.Target(), Equals, "#chan")
	c.Check(ev.Message(), Equals, "waves hello")

	// ACTION never produces a reply.
	c.Check(mock.Written(), HasLen, 0)
}

func (s *s) TestClassify_CTCPReply(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":bob!b@h NOTICE me :\x01PING 12345\x01")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.CTCP_REPLY)
	c.Check(ev.Target(), Equals, "me")
	c.Check(ev.Message(), Equals, "PING 12345")
}

func (s *s) TestClassify_Notice(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":irc.test NOTICE me :server notice")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.NOTICE)
	c.Check(ev.Message(), Equals, "server notice")
}

func (s *s) TestClassify_JoinKnownChannel(c *C) {
	cl, _ := newTestClient(c)
	ch := cl.State().AddChannel("#chan")

	ev, err := cl.classifyLine(":bob!b@h JOIN :#chan")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.JOIN)
	c.Check(ev.Nick(), Equals, "bob")
	c.Check(ev.Target(), Equals, "#chan")
	c.Check(ch.HasUser("bob"), Equals, true)
}

func (s *s) TestClassify_JoinUnknownChannelConfirms(c *C) {
	cl, mock := newTestClient(c)
	// The JOIN echo arrives unsolicited; the rest of the burst follows on
	// the wire, with unrelated traffic interleaved.
	mock.Feed(":irc.test 332 me #chan :the topic\r\n" +
		":alice!a@h PRIVMSG me :interleaved\r\n" +
		":irc.test 353 me = #chan :@op me\r\n" +
		":irc.test 366 me #chan :End of /NAMES list.\r\n")

	cl.mut.Lock()
	cl.pushBack(":me!u@h JOIN :#chan")
	ev, err := cl.nextEvent()
	cl.mut.Unlock()
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.JOIN)
	c.Check(ev.Nick(), Equals, "me")

	ch := cl.State().Channel("#chan")
	c.Assert(ch, NotNil)
	c.Check(ch.Topic(), Equals, "the topic")
	c.Check(ch.User("op").Privilege(), Equals, "@")
	c.Check(ch.HasUser("me"), Equals, true)

	// The interleaved line was kept aside and comes out next, in order.
	ev, err = cl.NextEvent()
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.PRIVMSG)
	c.Check(ev.Message(), Equals, "interleaved")
}

func (s *s) TestClassify_Part(c *C) {
	cl, _ := newTestClient(c)
	ch := cl.State().AddChannel("#chan")
	ch.AddUser("bob")

	ev, err := cl.classifyLine(":bob!b@h PART #chan :so long")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.PART)
	c.Check(ev.Args, DeepEquals, []string{"#chan", "so long"})
	c.Check(ch.HasUser("bob"), Equals, false)
}

func (s *s) TestClassify_SelfPartRemovesChannel(c *C) {
	cl, _ := newTestClient(c)
	cl.State().AddChannel("#chan")

	_, err := cl.classifyLine(":me!u@h PART #chan :out")
	c.Assert(err, IsNil)
	c.Check(cl.State().HasChannel("#chan"), Equals, false)
}

func (s *s) TestClassify_Kick(c *C) {
	cl, _ := newTestClient(c)
	ch := cl.State().AddChannel("#chan")
	ch.AddUser("bob")

	ev, err := cl.classifyLine(":op!o@h KICK #chan bob :behave")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.KICK)
	c.Check(ev.Args, DeepEquals, []string{"#chan", "bob", "behave"})
	c.Check(ch.HasUser("bob"), Equals, false)
}

func (s *s) TestClassify_SelfKickRemovesChannel(c *C) {
	cl, _ := newTestClient(c)
	cl.State().AddChannel("#chan")

	_, err := cl.classifyLine(":op!o@h KICK #chan me :begone")
	c.Assert(err, IsNil)
	c.Check(cl.State().HasChannel("#chan"), Equals, false)
}

func (s *s) TestClassify_Invite(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":alice!a@h INVITE me :#secret")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.INVITE)
	c.Check(ev.Args, DeepEquals, []string{"me", "#secret"})
}

func (s *s) TestClassify_NickRename(c *C) {
	cl, _ := newTestClient(c)
	ch := cl.State().AddChannel("#chan")
	ch.AddUser("bob").SetPrivilege("@")

	ev, err := cl.classifyLine(":bob!b@h NICK :robert")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.NICK)
	c.Check(ev.Args, DeepEquals, []string{"robert"})
	c.Check(ch.HasUser("bob"), Equals, false)
	c.Assert(ch.HasUser("robert"), Equals, true)
	c.Check(ch.User("robert").Privilege(), Equals, "@")
}

func (s *s) TestClassify_SelfNickRename(c *C) {
	cl, _ := newTestClient(c)

	_, err := cl.classifyLine(":me!u@h NICK :newme")
	c.Assert(err, IsNil)
	c.Check(cl.State().Self(), Equals, "newme")
}

func (s *s) TestClassify_Topic(c *C) {
	cl, _ := newTestClient(c)
	cl.State().AddChannel("#chan")

	ev, err := cl.classifyLine(":alice!a@h TOPIC #chan :fresh topic")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.TOPIC)
	c.Check(ev.Args, DeepEquals, []string{"#chan", "fresh topic"})
	c.Check(cl.State().Channel("#chan").Topic(), Equals, "fresh topic")
}

func (s *s) TestClassify_QuitReconciles(c *C) {
	cl, _ := newTestClient(c)
	one := cl.State().AddChannel("#one")
	two := cl.State().AddChannel("#two")
	one.AddUser("bob")
	two.AddUser("bob")

	ev, err := cl.classifyLine(":bob!b@h QUIT :Ping timeout")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.QUIT)
	c.Check(ev.Args, DeepEquals, []string{"Ping timeout"})
	c.Check(one.HasUser("bob"), Equals, false)
	c.Check(two.HasUser("bob"), Equals, false)
}

func (s *s) TestClassify_ModeChannel(c *C) {
	cl, _ := newTestClient(c)
	ch := cl.State().AddChannel("#chan")
	ch.AddUser("alice")

	ev, err := cl.classifyLine(":op!o@h MODE #chan +o alice")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.MODE)
	c.Check(ev.Args, DeepEquals, []string{"#chan", "+o alice"})
	c.Check(ch.User("alice").Privilege(), Equals, "@")
}

func (s *s) TestClassify_ModeSelf(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":me!u@h MODE me :+i")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.MODE)
	c.Check(ev.Args, DeepEquals, []string{"+i"})
}

func (s *s) TestClassify_LUsers(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":irc.test 252 me 5 :operator(s) online")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.LUSERS)
	c.Check(ev.Stats[data.LUsersOperators], Equals, "5")

	ev, err = cl.classifyLine(
		":irc.test 251 me :There are 7 users and 3 invisible on 2 servers")
	c.Assert(err, IsNil)
	c.Check(ev.Stats[data.LUsersUsers], Equals, "7")
	c.Check(ev.Stats[data.LUsersInvisible], Equals, "3")
	c.Check(ev.Stats[data.LUsersServers], Equals, "2")

	// Counters accumulate across numerics.
	c.Check(ev.Stats[data.LUsersOperators], Equals, "5")

	ev, err = cl.classifyLine(
		":irc.test 266 me :Current global users: 82 Max: 96")
	c.Assert(err, IsNil)
	c.Check(ev.Stats[data.LUsersGlobalUsers], Equals, "82")
	c.Check(ev.Stats[data.LUsersGlobalMax], Equals, "96")
}

func (s *s) TestClassify_ProtocolError(c *C) {
	cl, _ := newTestClient(c)

	_, err := cl.classifyLine(":irc.test 401 me ghost :No such nick/channel")
	perr, ok := err.(*ProtocolError)
	c.Assert(ok, Equals, true)
	c.Check(perr.Code, Equals, "401")
	c.Check(perr.Name, Equals, "ERR_NOSUCHNICK")
	c.Check(perr.Line, Equals, ":irc.test 401 me ghost :No such nick/channel")
}

func (s *s) TestClassify_NoMOTDIsNotAnError(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":irc.test 422 me :MOTD File is missing")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.UNKNOWN)
}

func (s *s) TestClassify_ErrorClosesConnection(c *C) {
	cl, mock := newTestClient(c)

	ev, err := cl.classifyLine("ERROR :Closing Link: me (bye)")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.ERROR)
	c.Check(ev.Args, DeepEquals, []string{"Closing Link: me (bye)"})

	_, werr := mock.Write([]byte("x"))
	c.Check(werr, Equals, io.ErrClosedPipe)
}

func (s *s) TestClassify_Unknown(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(
		":irc.test 005 me CHANTYPES=# PREFIX=(ov)@+ :are supported")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.UNKNOWN)
	c.Check(string(ev.Sender), Equals, "irc.test")
	c.Check(ev.Args, DeepEquals,
		[]string{"005", "me", "CHANTYPES=#", "PREFIX=(ov)@+", "are supported"})
}

func (s *s) TestClassify_Unparseable(c *C) {
	cl, _ := newTestClient(c)

	ev, err := cl.classifyLine(":onlyprefix \x00")
	c.Assert(err, IsNil)
	c.Check(ev.Name, Equals, irc.UNKNOWN)
	c.Check(ev.Args, DeepEquals, []string{":onlyprefix \x00"})
}
