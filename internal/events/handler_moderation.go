package events

import (
	"fmt"
	"strings"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
)

// handleHostTarget links to the channel being hosted; "-" as a target means hosting
// has stopped, which isn't worth mentioning
func (h *Handler) handleHostTarget(channel string, m *irc.Message) host.EatMode {
	target, _, _ := strings.Cut(strings.TrimSpace(m.Trail), " ")
	if target != "" && target != "-" {
		h.echo(channel, host.EventChannel, highlight.Data, "#"+target, "https://www.twitch.tv/"+target)
	}
	return host.EatHost
}

func (h *Handler) handleClearMessage(channel string, m *irc.Message) host.EatMode {
	values, ok := requireTags(m, "login")
	if !ok {
		return host.EatNone
	}
	h.echo(channel, host.EventError, highlight.Data, fmt.Sprintf("A message by <%s> is deleted: %s", values[0], m.Trail))
	return host.EatHost
}

func (h *Handler) handleClearChat(channel string, m *irc.Message) host.EatMode {
	var text string
	if m.Trail == "" {
		text = "Chat was cleared."
	} else if duration, ok := m.Tag("ban-duration"); ok {
		text = fmt.Sprintf("%s is timed out for %ss.", m.Trail, duration)
	} else {
		text = fmt.Sprintf("%s is banned permanently.", m.Trail)
	}
	if reason, ok := m.TagText("ban-reason"); ok && reason != "" {
		text += " Reason: " + reason
	}
	h.echo(channel, host.EventError, highlight.Data, text)
	return host.EatHost
}
