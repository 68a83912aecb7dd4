package data

import "strings"

// ChanModesWithArgs are the channel mode characters that consume an
// argument from the mode string. o and v name a member, b a mask, k a key,
// l a limit.
const ChanModesWithArgs = "ovbkl"

// userPrefixes maps member mode characters to the privilege marker stored
// in the member's attribute vector.
var userPrefixes = map[rune]string{
	'o': "@",
	'v': "+",
}

// Modeset encapsulates flag-based modestrings, setting and getting any
// modes and potentially using arguments as well.
type Modeset struct {
	modes map[rune]string
}

// NewModeset creates an empty Modeset.
func NewModeset() *Modeset {
	return &Modeset{modes: make(map[rune]string)}
}

// IsSet checks whether a mode character is set.
func (m *Modeset) IsSet(mode rune) bool {
	_, ok := m.modes[mode]
	return ok
}

// Arg returns the argument stored for a mode character.
func (m *Modeset) Arg(mode rune) string {
	return m.modes[mode]
}

// String turns a Modeset into a simple string representation, flag modes
// first, argument modes with their arguments trailing.
func (m *Modeset) String() string {
	length := len(m.modes)
	modes := make([]rune, length)
	args := make([]string, 0, length)

	index := 0
	argsIndex := length - 1
	for mode, arg := range m.modes {
		if len(arg) > 0 {
			modes[argsIndex] = mode
			argsIndex--
			args = append(args, arg)
		} else {
			modes[index] = mode
			index++
		}
	}

	if len(args) == 0 {
		return string(modes)
	}
	return string(modes) + " " + strings.Join(args, " ")
}

// setMode records a positive mode.
func (m *Modeset) setMode(mode rune, arg string) {
	m.modes[mode] = arg
}

// unsetMode removes a mode. An argument mode is only removed when the
// argument matches what was recorded or no argument was given.
func (m *Modeset) unsetMode(mode rune, arg string) {
	if len(arg) > 0 {
		if recorded := m.modes[mode]; len(recorded) > 0 && recorded != arg {
			return
		}
	}
	delete(m.modes, mode)
}

// ModeChange is a single parsed mode mutation.
type ModeChange struct {
	Mode   rune
	Adding bool
	Arg    string
}

// ParseModeString parses a complex mode string such as "+ov-b nick1 nick2
// *!*@host" into its individual changes. hasargs lists the mode characters
// that consume an argument.
func ParseModeString(modestring, hasargs string) []ModeChange {
	splits := strings.Split(strings.TrimSpace(modestring), " ")

	var changes []ModeChange
	adding := true
	argsUsed := 0

	for _, c := range splits[0] {
		if add, sub := c == '+', c == '-'; add || sub {
			adding = add
			continue
		}

		change := ModeChange{Mode: c, Adding: adding}
		if strings.ContainsRune(hasargs, c) && argsUsed+1 < len(splits) {
			argsUsed++
			change.Arg = splits[argsUsed]
		}
		changes = append(changes, change)
	}
	return changes
}

// Apply parses a complex mode string and applies it to the modeset.
func (m *Modeset) Apply(modestring, hasargs string) *Modeset {
	for _, change := range ParseModeString(modestring, hasargs) {
		if change.Adding {
			m.setMode(change.Mode, change.Arg)
		} else {
			m.unsetMode(change.Mode, change.Arg)
		}
	}
	return m
}
