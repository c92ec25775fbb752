package events

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
)

// whisperPrefix is how Twitch chat expects a whisper to be sent
const whisperPrefix = ".w "

// handleWhisper reshapes a WHISPER into a private PRIVMSG from the sender, then feeds
// it back into the host so that it's rendered and logged like any other query
func (h *Handler) handleWhisper(channel string, m *irc.Message) host.EatMode {
	user := m.Author()
	if user == "" {
		return host.EatNone
	}

	rewritten := m.Clone()
	rewritten.Command = "PRIVMSG"
	if len(rewritten.Args) == 0 {
		rewritten.Args = []string{user}
	} else {
		rewritten.Args[0] = user
	}

	event, text := host.EventPrivateMessage, m.Trail
	if rest, ok := strings.CutPrefix(m.Trail, "/me "); ok {
		event, text = host.EventPrivateAction, rest
		rewritten.Trail = irc.Action(rest)
	}

	// The host renders the re-submitted line itself, in the tab for that user
	if !strings.EqualFold(channel, user) {
		h.echo(channel, event, highlight.Message, user, text)
	}
	if err := h.host.Command("", "RECV "+rewritten.String()); err != nil {
		h.logger.Warn("failed to re-submit whisper", zap.String("user", user), zap.Error(err))
	}
	return host.EatAll
}

// HandleOutgoing is called when we send a line from the given channel tab, as the
// given nick. A line typed into a whisper tab is sent as a whisper to the user that
// tab belongs to; a whisper sent with ".w <user> <text>" from anywhere is echoed into
// that user's tab, opening it if necessary.
func (h *Handler) HandleOutgoing(channel string, nick string, text string, action bool) host.EatMode {
	rest, ok := strings.CutPrefix(text, whisperPrefix)
	if !ok {
		command := fmt.Sprintf("SAY %s%s %s", whisperPrefix, channel, text)
		if action {
			command = fmt.Sprintf("SAY %s%s /me %s", whisperPrefix, channel, text)
		}
		if err := h.host.Command(channel, command); err != nil {
			h.logger.Warn("failed to send whisper", zap.String("user", channel), zap.Error(err))
			return host.EatNone
		}
		return host.EatAll
	}

	user, body, ok := strings.Cut(strings.TrimSpace(rest), " ")
	if !ok || user == "" {
		return host.EatNone
	}
	if !strings.EqualFold(user, channel) {
		h.host.Print(channel, host.EventMessageSend, user, body)
	}

	event := host.EventPrivateMessage
	if action {
		event = host.EventPrivateAction
	} else if unwrapped, ok := strings.CutPrefix(body, "/me "); ok {
		event, body = host.EventPrivateAction, unwrapped
	}
	if err := host.EnsureTab(h.host, user); err != nil {
		h.logger.Warn("failed to open whisper tab", zap.String("user", user), zap.Error(err))
		return host.EatNone
	}
	h.host.Print(user, event, nick, body)
	return host.EatAll
}
