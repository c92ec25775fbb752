package events

import (
	"fmt"
	"strings"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
)

func (h *Handler) handleUserNotice(channel string, m *irc.Message) host.EatMode {
	// Channel point redemptions that carry text arrive as USERNOTICE too
	if _, ok := m.Tag("custom-reward-id"); ok {
		return h.handleReward(channel, m, m.Trail)
	}

	msgID, ok := m.Tag("msg-id")
	if !ok {
		return host.EatNone
	}
	switch msgID {
	case "raid":
		return h.handleRaid(channel, m)
	case "charity", "rewardgift", "ritual":
		return h.handleSpecial(channel, m)
	}
	return h.handleSubscription(channel, m, msgID)
}

func (h *Handler) handleRaid(channel string, m *irc.Message) host.EatMode {
	values, ok := requireTags(m, "msg-param-viewerCount", "msg-param-displayName")
	if !ok {
		return host.EatNone
	}
	viewerCount, displayName := values[0], values[1]
	h.echo(channel, host.EventNormal, highlight.Data, fmt.Sprintf("A raid of %s arrives from #%s", viewerCount, strings.ToLower(displayName)))
	return host.EatHost
}

func (h *Handler) handleSpecial(channel string, m *irc.Message) host.EatMode {
	text, ok := m.TagText("system-msg")
	if !ok {
		return host.EatNone
	}
	h.echo(channel, host.EventNormal, highlight.Data, text)
	return host.EatHost
}
