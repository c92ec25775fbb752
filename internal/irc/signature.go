package irc

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const actionPrefix = "\x01ACTION "

// Action wraps text in a CTCP ACTION envelope, which is how "/me" messages are carried
// in a PRIVMSG
func Action(text string) string {
	return actionPrefix + text + "\x01"
}

// UnwrapAction strips a CTCP ACTION envelope from the given text, reporting whether
// the text was an action
func UnwrapAction(text string) (string, bool) {
	if !strings.HasPrefix(text, actionPrefix) {
		return text, false
	}
	return strings.TrimSuffix(text[len(actionPrefix):], "\x01"), true
}

// Signature computes a deduplication key identifying a single chat line, so that the
// copy of a line seen on the wire can be matched up with the copy the host renders.
// Both sides must describe the line in the same terms: author and target are compared
// case-insensitively (with any leading '#' dropped from the target), and text is the
// message body with any ACTION envelope already removed.
//
// This is not a cryptographic hash: two genuinely distinct lines with the same author,
// target and text collide, which is accepted since they'd render identically anyway.
func Signature(author string, target string, text string, action bool) string {
	d := xxhash.New()
	d.WriteString(strings.ToLower(author))
	d.WriteString("\x00")
	d.WriteString(strings.ToLower(strings.TrimPrefix(target, "#")))
	d.WriteString("\x00")
	if action {
		d.WriteString("A")
	} else {
		d.WriteString("M")
	}
	d.WriteString(text)
	return fmt.Sprintf("%016x", d.Sum64())
}

// Signature computes the deduplication key for this message as received on the wire
func (m *Message) Signature() string {
	text, action := UnwrapAction(m.Trail)
	return Signature(m.Author(), m.Target(), text, action)
}
