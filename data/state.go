/*
Package data turns classified irc events into a stateful, in-memory model
of the joined channels, their members, and server statistics. It performs
no I/O and holds no locks; the engine serializes access.
*/
package data

import "strings"

// State is the main data container. It tracks the client's own nick, every
// joined channel with its members, and the server statistics counters.
type State struct {
	self     string
	channels map[string]*Channel
	lusers   *LUsers
}

// NewState creates a state tracking the given nick as self.
func NewState(self string) *State {
	return &State{
		self:     self,
		channels: make(map[string]*Channel),
		lusers:   NewLUsers(),
	}
}

// Self returns the currently tracked own nick.
func (s *State) Self() string {
	return s.self
}

// SetSelf updates the tracked own nick.
func (s *State) SetSelf(nick string) {
	s.self = nick
}

// IsSelf checks a nick against the tracked own nick. Nicks compare
// case-insensitively on irc.
func (s *State) IsSelf(nick string) bool {
	return strings.EqualFold(nick, s.self)
}

// LUsers returns the server statistics counters.
func (s *State) LUsers() *LUsers {
	return s.lusers
}

// Channel returns a joined channel, nil when unknown.
func (s *State) Channel(name string) *Channel {
	return s.channels[strings.ToLower(name)]
}

// HasChannel checks whether a channel is known locally.
func (s *State) HasChannel(name string) bool {
	_, ok := s.channels[strings.ToLower(name)]
	return ok
}

// AddChannel creates a channel entry on confirmed join. An existing entry
// is returned untouched.
func (s *State) AddChannel(name string) *Channel {
	key := strings.ToLower(name)
	if ch, ok := s.channels[key]; ok {
		return ch
	}
	ch := NewChannel(name)
	s.channels[key] = ch
	return ch
}

// RemoveChannel deletes a channel entry and all its members.
func (s *State) RemoveChannel(name string) {
	delete(s.channels, strings.ToLower(name))
}

// Channels returns the names of all joined channels.
func (s *State) Channels() []string {
	names := make([]string, 0, len(s.channels))
	for _, ch := range s.channels {
		names = append(names, ch.Name())
	}
	return names
}

// NumChannels returns the joined channel count.
func (s *State) NumChannels() int {
	return len(s.channels)
}

// Join records a member joining a known channel with a fresh attribute
// vector. Unknown channels are ignored, the engine confirms self-joins
// before any member bookkeeping happens.
func (s *State) Join(nick, channel string) {
	if ch := s.Channel(channel); ch != nil {
		ch.AddUser(nick)
	}
}

// Part records a member leaving. A self-part removes the whole channel
// entry.
func (s *State) Part(nick, channel string) {
	if s.IsSelf(nick) {
		s.RemoveChannel(channel)
		return
	}
	if ch := s.Channel(channel); ch != nil {
		ch.RemoveUser(nick)
	}
}

// Kick records a member being removed. A self-kick removes the whole
// channel entry.
func (s *State) Kick(kicked, channel string) {
	if s.IsSelf(kicked) {
		s.RemoveChannel(channel)
		return
	}
	if ch := s.Channel(channel); ch != nil {
		ch.RemoveUser(kicked)
	}
}

// Quit removes the departing nick from every channel's member map.
func (s *State) Quit(nick string) {
	for _, ch := range s.channels {
		ch.RemoveUser(nick)
	}
}

// RenameNick renames a member in every channel, preserving their attribute
// vector. When self is renamed the tracked own nick follows.
func (s *State) RenameNick(oldNick, newNick string) {
	for _, ch := range s.channels {
		ch.RenameUser(oldNick, newNick)
	}
	if s.IsSelf(oldNick) {
		s.self = newNick
	}
}

// SetTopic updates a known channel's topic.
func (s *State) SetTopic(channel, topic string) {
	if ch := s.Channel(channel); ch != nil {
		ch.SetTopic(topic)
	}
}

// ApplyMode applies a complex mode string to a channel. Member modes (o, v)
// mutate the named member's privilege marker, everything else lands in the
// channel's Modeset.
func (s *State) ApplyMode(channel, modestring string) {
	ch := s.Channel(channel)
	if ch == nil {
		return
	}

	for _, change := range ParseModeString(modestring, ChanModesWithArgs) {
		marker, isUserMode := userPrefixes[change.Mode]
		if !isUserMode {
			if change.Adding {
				ch.Modes().setMode(change.Mode, change.Arg)
			} else {
				ch.Modes().unsetMode(change.Mode, change.Arg)
			}
			continue
		}

		attrs := ch.User(change.Arg)
		if attrs == nil {
			continue
		}
		switch {
		case change.Adding && (change.Mode == 'o' || attrs.Privilege() == ""):
			attrs.SetPrivilege(marker)
		case !change.Adding && attrs.Privilege() == marker:
			attrs.SetPrivilege("")
		}
	}
}
