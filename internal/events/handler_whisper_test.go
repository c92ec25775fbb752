package events

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golden-vcr/tagchat/internal/host"
)

func Test_Handler_Whisper(t *testing.T) {
	t.Run("whisper is re-submitted as a private message", func(t *testing.T) {
		h, mh := newTestHandler(t)
		eat := h.HandleServer("@display-name=Bob :bob!bob@bob.tmi.twitch.tv WHISPER me :hi there")

		assert.Equal(t, host.EatAll, eat)
		assert.Equal(t, []string{"#chan private-message: bob | hi there"}, mh.prints)
		assert.Equal(t, []string{
			"#chan: GUI COLOR 2",
			": RECV @display-name=Bob :bob!bob@bob.tmi.twitch.tv PRIVMSG bob :hi there",
		}, mh.commands)
	})
	t.Run("/me whisper becomes an action", func(t *testing.T) {
		h, mh := newTestHandler(t)
		mh.focused = "#chan"
		h.HandleServer(":bob!bob@bob.tmi.twitch.tv WHISPER me :/me waves")

		assert.Equal(t, []string{"#chan private-action: bob | waves"}, mh.prints)
		assert.Equal(t, []string{
			": RECV :bob!bob@bob.tmi.twitch.tv PRIVMSG bob :\x01ACTION waves\x01",
		}, mh.commands)
	})
	t.Run("echo is skipped when already talking to the sender", func(t *testing.T) {
		h, mh := newTestHandler(t)
		mh.current = "Bob"
		h.HandleServer(":bob!bob@bob.tmi.twitch.tv WHISPER me :hi")

		assert.Nil(t, mh.prints)
		assert.Equal(t, []string{": RECV :bob!bob@bob.tmi.twitch.tv PRIVMSG bob :hi"}, mh.commands)
	})
	t.Run("whisper with no sender falls through", func(t *testing.T) {
		h, mh := newTestHandler(t)
		eat := h.HandleServer("WHISPER me :hi")
		assert.Equal(t, host.EatNone, eat)
		assert.Nil(t, mh.prints)
		assert.Nil(t, mh.commands)
	})
	t.Run("failure to re-submit still eats the whisper", func(t *testing.T) {
		h, mh := newTestHandler(t)
		mh.focused = "#chan"
		mh.commandErr = fmt.Errorf("mock error")
		eat := h.HandleServer(":bob!bob@bob.tmi.twitch.tv WHISPER me :hi")
		assert.Equal(t, host.EatAll, eat)
	})
}

func Test_Handler_HandleOutgoing(t *testing.T) {
	t.Run("line typed into a whisper tab is sent as a whisper", func(t *testing.T) {
		h, mh := newTestHandler(t)
		eat := h.HandleOutgoing("bob", "me", "hey", false)

		assert.Equal(t, host.EatAll, eat)
		assert.Equal(t, []string{"bob: SAY .w bob hey"}, mh.commands)
	})
	t.Run("action typed into a whisper tab is sent with /me", func(t *testing.T) {
		h, mh := newTestHandler(t)
		h.HandleOutgoing("bob", "me", "waves", true)
		assert.Equal(t, []string{"bob: SAY .w bob /me waves"}, mh.commands)
	})
	t.Run("sent whisper is echoed into the recipient's tab", func(t *testing.T) {
		h, mh := newTestHandler(t)
		eat := h.HandleOutgoing("#chan", "me", ".w carol hi there", false)

		assert.Equal(t, host.EatAll, eat)
		assert.Equal(t, []string{
			"#chan message-send: carol | hi there",
			"carol private-message: me | hi there",
		}, mh.prints)
		assert.Equal(t, []string{": QUERY carol"}, mh.commands)
	})
	t.Run("sent /me whisper is echoed as an action", func(t *testing.T) {
		h, mh := newTestHandler(t)
		mh.open["carol"] = true
		h.HandleOutgoing("carol", "me", ".w carol /me waves", false)

		assert.Equal(t, []string{"carol private-action: me | waves"}, mh.prints)
		assert.Nil(t, mh.commands)
	})
	t.Run("whisper with no text is left alone", func(t *testing.T) {
		h, mh := newTestHandler(t)
		eat := h.HandleOutgoing("#chan", "me", ".w carol", false)
		assert.Equal(t, host.EatNone, eat)
		assert.Nil(t, mh.prints)
	})
	t.Run("failure to send falls through", func(t *testing.T) {
		h, mh := newTestHandler(t)
		mh.commandErr = fmt.Errorf("mock error")
		eat := h.HandleOutgoing("bob", "me", "hey", false)
		assert.Equal(t, host.EatNone, eat)
	})
}
