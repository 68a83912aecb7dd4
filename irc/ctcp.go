package irc

import "strings"

// CTCPDelim is the single control byte wrapping a CTCP payload.
const CTCPDelim = '\x01'

// IsCTCPString checks whether a message body carries a CTCP payload. Only
// the leading delimiter is significant on the wire.
func IsCTCPString(msg string) bool {
	return len(msg) > 0 && msg[0] == CTCPDelim
}

// CTCPEncode wraps msg in the delimiter on both ends.
func CTCPEncode(msg string) string {
	return string(CTCPDelim) + msg + string(CTCPDelim)
}

// CTCPDecode strips all delimiter bytes from msg.
func CTCPDecode(msg string) string {
	return strings.Replace(msg, string(CTCPDelim), "", -1)
}
