package data

import "strings"

// NumUserAttrs is the size of the per-member attribute vector. Slot 0 holds
// the privilege marker, the remaining slots are reserved for the command
// layer.
const NumUserAttrs = 5

// AttrPrivilege is the attribute slot holding the privilege marker.
const AttrPrivilege = 0

// UserAttrs is the fixed-size attribute vector kept per channel member.
type UserAttrs [NumUserAttrs]string

// NewUserAttrs creates a fresh, empty attribute vector.
func NewUserAttrs() *UserAttrs {
	return &UserAttrs{}
}

// Privilege returns the member's privilege marker, empty for a regular
// member.
func (u *UserAttrs) Privilege() string {
	return u[AttrPrivilege]
}

// SetPrivilege sets the member's privilege marker.
func (u *UserAttrs) SetPrivilege(marker string) {
	u[AttrPrivilege] = marker
}

// Channel encapsulates all the data associated with a joined channel.
type Channel struct {
	name  string
	topic string
	modes *Modeset
	users map[string]*UserAttrs
}

// NewChannel instantiates a channel object.
func NewChannel(name string) *Channel {
	return &Channel{
		name:  name,
		modes: NewModeset(),
		users: make(map[string]*UserAttrs),
	}
}

// Name gets the name of the channel as the server sent it.
func (c *Channel) Name() string {
	return c.name
}

// Topic gets the topic of the channel.
func (c *Channel) Topic() string {
	return c.topic
}

// SetTopic sets the topic of the channel.
func (c *Channel) SetTopic(topic string) {
	c.topic = topic
}

// Modes returns the channel's mode state.
func (c *Channel) Modes() *Modeset {
	return c.modes
}

// AddUser adds a member with a fresh attribute vector and returns the
// vector. An existing member keeps their vector.
func (c *Channel) AddUser(nick string) *UserAttrs {
	if attrs, ok := c.users[nick]; ok {
		return attrs
	}
	attrs := NewUserAttrs()
	c.users[nick] = attrs
	return attrs
}

// RemoveUser removes a member, reporting whether they were present.
func (c *Channel) RemoveUser(nick string) bool {
	if _, ok := c.users[nick]; !ok {
		return false
	}
	delete(c.users, nick)
	return true
}

// HasUser checks whether a nick is a member.
func (c *Channel) HasUser(nick string) bool {
	_, ok := c.users[nick]
	return ok
}

// User returns a member's attribute vector, nil when absent.
func (c *Channel) User(nick string) *UserAttrs {
	return c.users[nick]
}

// RenameUser moves a member's attribute vector from old to new, reporting
// whether old was present.
func (c *Channel) RenameUser(oldNick, newNick string) bool {
	attrs, ok := c.users[oldNick]
	if !ok {
		return false
	}
	delete(c.users, oldNick)
	c.users[newNick] = attrs
	return true
}

// Users returns the nicks of all members.
func (c *Channel) Users() []string {
	nicks := make([]string, 0, len(c.users))
	for nick := range c.users {
		nicks = append(nicks, nick)
	}
	return nicks
}

// NumUsers returns the member count.
func (c *Channel) NumUsers() int {
	return len(c.users)
}

// IsChannelName reports whether a target token names a channel rather than
// a nick, by its leading sigil.
func IsChannelName(target string) bool {
	return len(target) > 0 && strings.ContainsRune("#&+!", rune(target[0]))
}
