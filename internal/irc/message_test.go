package irc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *Message
	}{
		{
			"tags, prefix, args and trail are all parsed",
			"@badges=moderator/1,subscriber/12;color=#FF0000;display-name=Alice :alice!alice@alice.tmi.twitch.tv PRIVMSG #somechannel :hello there",
			&Message{
				Tags: []Tag{
					{Key: "badges", Value: "moderator/1,subscriber/12"},
					{Key: "color", Value: "#FF0000"},
					{Key: "display-name", Value: "Alice"},
				},
				Prefix:   "alice!alice@alice.tmi.twitch.tv",
				Command:  "PRIVMSG",
				Args:     []string{"#somechannel"},
				Trail:    "hello there",
				HasTrail: true,
			},
		},
		{
			"tag without '=' has an empty value",
			"@emote-only;slow=0 :tmi.twitch.tv ROOMSTATE #somechannel",
			&Message{
				Tags: []Tag{
					{Key: "emote-only", Value: "", bare: true},
					{Key: "slow", Value: "0"},
				},
				Prefix:  "tmi.twitch.tv",
				Command: "ROOMSTATE",
				Args:    []string{"#somechannel"},
			},
		},
		{
			"line without prefix or tags",
			"PING :tmi.twitch.tv",
			&Message{
				Command:  "PING",
				Args:     []string{},
				Trail:    "tmi.twitch.tv",
				HasTrail: true,
			},
		},
		{
			"only the first ' :' separates the trail",
			":bob!bob@bob PRIVMSG #chan :a :colon inside",
			&Message{
				Prefix:   "bob!bob@bob",
				Command:  "PRIVMSG",
				Args:     []string{"#chan"},
				Trail:    "a :colon inside",
				HasTrail: true,
			},
		},
		{
			"empty trail is preserved",
			":tmi.twitch.tv CLEARCHAT #chan :",
			&Message{
				Prefix:   "tmi.twitch.tv",
				Command:  "CLEARCHAT",
				Args:     []string{"#chan"},
				HasTrail: true,
			},
		},
		{
			"line endings are stripped",
			":tmi.twitch.tv HOSTTARGET #chan :target 10\r\n",
			&Message{
				Prefix:   "tmi.twitch.tv",
				Command:  "HOSTTARGET",
				Args:     []string{"#chan"},
				Trail:    "target 10",
				HasTrail: true,
			},
		},
		{
			"empty input yields an empty message",
			"",
			&Message{},
		},
		{
			"tag section with nothing after it",
			"@a=1",
			&Message{
				Tags: []Tag{{Key: "a", Value: "1"}},
			},
		},
		{
			"garbage is absorbed without error",
			"@;;=x :",
			&Message{
				Tags: []Tag{{Key: "", Value: "x"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			opts := []cmp.Option{
				cmp.AllowUnexported(Tag{}),
				cmpopts.EquateEmpty(),
			}
			if diff := cmp.Diff(tt.want, got, opts...); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func Test_Message_String(t *testing.T) {
	lines := []string{
		"@badge-info=subscriber/13;badges=subscriber/12;login=bob;msg-id=sub;msg-param-cumulative-months=13;msg-param-sub-plan=3000;system-msg=bob\\ssubscribed :tmi.twitch.tv USERNOTICE #chan",
		"@emote-only;followers-only=-1;r9k=0 :tmi.twitch.tv ROOMSTATE #chan",
		"@ban-duration=600;room-id=1;target-user-id=2 :tmi.twitch.tv CLEARCHAT #chan :alice",
		":alice!alice@alice.tmi.twitch.tv PRIVMSG #chan :\x01ACTION waves\x01",
		":tmi.twitch.tv CLEARCHAT #chan :",
		"PING :tmi.twitch.tv",
		":tmi.twitch.tv 001 justinfan123 :Welcome, GLHF!",
		"@login=x;target-msg-id=abc :tmi.twitch.tv CLEARMSG #chan :deleted words here",
		":tmi.twitch.tv RECONNECT",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			assert.Equal(t, line, Parse(line).String())
		})
	}

	t.Run("constructed message without trail flag still marks trail", func(t *testing.T) {
		m := &Message{Command: "PRIVMSG", Args: []string{"bob"}, Trail: "hi"}
		assert.Equal(t, "PRIVMSG bob :hi", m.String())
	})
}

func Test_Message_Tag(t *testing.T) {
	m := Parse("@login=bob;msg-param-streak-months=3;msg-param-months=abc;empty=;bare :tmi.twitch.tv USERNOTICE #chan")

	value, ok := m.Tag("login")
	assert.True(t, ok)
	assert.Equal(t, "bob", value)

	value, ok = m.Tag("empty")
	assert.True(t, ok)
	assert.Equal(t, "", value)

	value, ok = m.Tag("bare")
	assert.True(t, ok)
	assert.Equal(t, "", value)

	_, ok = m.Tag("msg-id")
	assert.False(t, ok)

	assert.Equal(t, 3, m.TagInt("msg-param-streak-months"))
	assert.Equal(t, 0, m.TagInt("msg-param-months"))
	assert.Equal(t, 0, m.TagInt("not-present"))
}

func Test_Message_TagText(t *testing.T) {
	m := Parse(`@system-msg=bob\sis\sgifting\s5\sSubs\:\sthanks\\ :tmi.twitch.tv USERNOTICE #chan`)
	text, ok := m.TagText("system-msg")
	assert.True(t, ok)
	assert.Equal(t, `bob is gifting 5 Subs; thanks\`, text)

	raw, _ := m.Tag("system-msg")
	assert.Equal(t, `bob\sis\sgifting\s5\sSubs\:\sthanks\\`, raw)
}

func Test_Message_Author(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"alice!alice@alice.tmi.twitch.tv", "alice"},
		{"bob@host", "bob"},
		{"tmi.twitch.tv", "tmi.twitch.tv"},
		{"", ""},
	}
	for _, tt := range tests {
		m := &Message{Prefix: tt.prefix}
		assert.Equal(t, tt.want, m.Author())
	}
}

func Test_Message_Clone(t *testing.T) {
	m := Parse("@a=1 :bob!bob@bob WHISPER me :hi")
	c := m.Clone()
	c.Command = "PRIVMSG"
	c.Args[0] = "bob"
	c.Tags[0].Value = "2"

	assert.Equal(t, "@a=1 :bob!bob@bob WHISPER me :hi", m.String())
	assert.Equal(t, "@a=2 :bob!bob@bob PRIVMSG bob :hi", c.String())
}
