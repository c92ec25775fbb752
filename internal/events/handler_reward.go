package events

import (
	"fmt"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
)

// handleReward presents channel point redemptions and highlighted messages in place
// of the ordinary chat line, returning EatNone if the message is neither
func (h *Handler) handleReward(channel string, m *irc.Message, text string) host.EatMode {
	author := m.Author()
	if rewardID, ok := m.Tag("custom-reward-id"); ok {
		// Reward names are configured per-id; fall back to showing the id itself so
		// that the streamer knows what to configure
		if name, ok := h.host.Pref(rewardID); ok && name != "" {
			h.echo(channel, host.EventReward, highlight.Message, name, author+":", text)
		} else {
			h.echo(channel, host.EventReward, highlight.Message, "CUSTOM", fmt.Sprintf("(%s) %s:", rewardID, author), text)
		}
		return host.EatAll
	}

	if msgID, _ := m.Tag("msg-id"); msgID == "highlighted-message" {
		h.echo(channel, host.EventAlert, highlight.Message, author, text)
		return host.EatAll
	}
	return host.EatNone
}

// handleCheer announces any bits attached to a chat message. The message itself is
// still rendered as usual.
func (h *Handler) handleCheer(channel string, m *irc.Message) {
	bits := m.TagInt("bits")
	if bits <= 0 {
		return
	}
	name, ok := m.TagText("display-name")
	if !ok || name == "" {
		name = m.Author()
	}
	unit := "bits"
	if bits == 1 {
		unit = "bit"
	}
	h.echo(channel, host.EventReward, highlight.Data, "CHEER", name+" cheers", fmt.Sprintf("%d %s", bits, unit))
}
