package events

import (
	"go.uber.org/zap"

	"github.com/golden-vcr/tagchat"
	"github.com/golden-vcr/tagchat/internal/badges"
	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
	"github.com/golden-vcr/tagchat/internal/metrics"
	"github.com/golden-vcr/tagchat/internal/sponge"
)

// Handler classifies every line we receive from Twitch, presenting tag-driven events
// (subscriptions, raids, bans, etc.) through the host, and enriches the host's own
// rendering of chat messages with badge glyphs
type Handler struct {
	host    host.Host
	sponge  *sponge.Sponge
	badges  *badges.Cache
	tabs    *highlight.Tabs
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler initializes a Handler with an empty Sponge and empty caches
func NewHandler(h host.Host, m *metrics.Metrics, logger *zap.Logger) *Handler {
	tabs := highlight.NewTabs(h, logger)
	tabs.OnRecolor = func(string, highlight.Priority) {
		m.TabRecolors.Inc()
	}
	return &Handler{
		host:    h,
		sponge:  sponge.New(),
		badges:  badges.NewCache(),
		tabs:    tabs,
		metrics: m,
		logger:  logger,
	}
}

// HandleServer is the raw-line hook: it's called with every line received from the
// server, before the host has done anything with it. Anything the line produces is
// printed in the host's current channel.
func (h *Handler) HandleServer(raw string) host.EatMode {
	return h.HandleServerIn(h.host.CurrentChannel(), raw)
}

// HandleServerIn is HandleServer for a caller that already knows which channel the
// line belongs to, so that lines arriving concurrently can't trade places. An empty
// channel means the focused one.
func (h *Handler) HandleServerIn(channel string, raw string) host.EatMode {
	if channel == "" {
		channel = h.host.FocusedChannel()
	}
	m := irc.Parse(raw)
	eat := h.classify(channel, m)

	command := m.Command
	if !tagchat.IsHandledCommand(command) {
		command = "other"
	}
	h.metrics.Classified.WithLabelValues(command, eat.String()).Inc()
	return eat
}

func (h *Handler) classify(channel string, m *irc.Message) host.EatMode {
	switch m.Command {
	case "PRIVMSG":
		// The host will render this line itself: hold onto the tags until it does
		h.metrics.SpongePuts.Inc()
		if h.sponge.PutMessage(m) {
			h.metrics.SpongeSuperseded.Inc()
		}
		return host.EatNone
	case "WHISPER":
		return h.handleWhisper(channel, m)
	case "ROOMSTATE":
		return host.EatHost
	case "USERSTATE":
		return h.handleUserState(channel, m)
	case "USERNOTICE":
		return h.handleUserNotice(channel, m)
	case "HOSTTARGET":
		return h.handleHostTarget(channel, m)
	case "CLEARMSG":
		return h.handleClearMessage(channel, m)
	case "CLEARCHAT":
		return h.handleClearChat(channel, m)
	}
	return host.EatNone
}

// HandlePrint is the print hook: it's called when the host is about to render a chat
// line that it parsed itself. If the line matches the message most recently stored by
// HandleServer, the badges for its author are returned so the host can display them;
// otherwise badges.None is returned and the line is rendered unenriched. The returned
// EatMode indicates whether the line was presented some other way (e.g. as a channel
// point reward) and should not be rendered at all.
func (h *Handler) HandlePrint(line host.PrintedLine) (string, host.EatMode) {
	m := h.sponge.Pop(irc.Signature(line.Author, line.Channel, line.Text, line.Action))
	if m == nil {
		h.metrics.SpongeMisses.Inc()
		return badges.None, host.EatNone
	}
	h.metrics.SpongeHits.Inc()
	channel := line.Channel

	glyphs := badges.None
	if raw, ok := m.Tag("badges"); ok {
		output, changed := h.badges.Set(channel, line.Author, raw)
		if changed {
			h.metrics.BadgeResolutions.Inc()
		}
		glyphs = output
	}

	if eat := h.handleReward(channel, m, line.Text); eat != host.EatNone {
		return glyphs, eat
	}
	h.handleCheer(channel, m)
	return glyphs, host.EatNone
}

// Focus must be called whenever a channel becomes focused, so that its tab highlight
// is cleared
func (h *Handler) Focus(channel string) {
	h.tabs.Reset(channel)
}

// Badges returns the most recently resolved badges for a user in a channel
func (h *Handler) Badges(channel string, user string) string {
	return h.badges.Get(channel, user)
}

// handleUserState records the badges that Twitch reports for our own user
func (h *Handler) handleUserState(channel string, m *irc.Message) host.EatMode {
	raw, ok := m.Tag("badges")
	if !ok {
		return host.EatHost
	}
	user, _ := m.TagText("display-name")
	if _, changed := h.badges.Set(m.Target(), user, raw); changed {
		h.metrics.BadgeResolutions.Inc()
	}
	return host.EatHost
}

// echo prints a formatted line into the given channel, and raises that channel's tab
// highlight to the given priority
func (h *Handler) echo(channel string, event host.Event, priority highlight.Priority, args ...string) {
	h.host.Print(channel, event, args...)
	h.metrics.Emitted.WithLabelValues(string(event)).Inc()
	h.tabs.Escalate(channel, priority)
}

// requireTags looks up each of the given tags in turn, stopping at the first one
// that's missing
func requireTags(m *irc.Message, keys ...string) ([]string, bool) {
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := m.Tag(key)
		if !ok {
			return nil, false
		}
		values = append(values, value)
	}
	return values, true
}
