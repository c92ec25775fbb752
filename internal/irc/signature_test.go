package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Signature(t *testing.T) {
	t.Run("wire line and host-rendered fields agree", func(t *testing.T) {
		m := Parse("@badges=vip/1 :Alice!alice@alice.tmi.twitch.tv PRIVMSG #SomeChannel :hello world")
		assert.Equal(t, Signature("alice", "somechannel", "hello world", false), m.Signature())
	})
	t.Run("actions are compared without their CTCP envelope", func(t *testing.T) {
		m := Parse(":alice!alice@alice.tmi.twitch.tv PRIVMSG #chan :\x01ACTION waves\x01")
		assert.Equal(t, Signature("alice", "#chan", "waves", true), m.Signature())
	})
	t.Run("an action and a plain message with the same text differ", func(t *testing.T) {
		assert.NotEqual(t,
			Signature("alice", "#chan", "waves", true),
			Signature("alice", "#chan", "waves", false),
		)
	})
	t.Run("fields can't bleed into one another", func(t *testing.T) {
		assert.NotEqual(t,
			Signature("ab", "c", "d", false),
			Signature("a", "bc", "d", false),
		)
	})
	t.Run("tags don't affect the signature", func(t *testing.T) {
		a := Parse("@id=1 :bob!bob@bob PRIVMSG #chan :hi")
		b := Parse("@id=2;badges=moderator/1 :bob!bob@bob PRIVMSG #chan :hi")
		assert.Equal(t, a.Signature(), b.Signature())
	})
	t.Run("signature is 16 hex digits", func(t *testing.T) {
		assert.Regexp(t, "^[0-9a-f]{16}$", Signature("", "", "", false))
	})
}

func Test_UnwrapAction(t *testing.T) {
	text, ok := UnwrapAction(Action("dances"))
	assert.True(t, ok)
	assert.Equal(t, "dances", text)

	text, ok = UnwrapAction("\x01ACTION unterminated")
	assert.True(t, ok)
	assert.Equal(t, "unterminated", text)

	text, ok = UnwrapAction("just talking")
	assert.False(t, ok)
	assert.Equal(t, "just talking", text)
}
