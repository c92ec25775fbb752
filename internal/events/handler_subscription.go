package events

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
)

// subPlanClauses describes the plan tier for a subscription. Tier 1 is implied, and
// any plan we don't recognize gets no clause at all.
var subPlanClauses = map[string]string{
	"Prime": " with Twitch Prime",
	"2000":  " at Tier 2 ($10)",
	"3000":  " at Tier 3 ($25)",
}

// handleSubscription presents every USERNOTICE that isn't a raid or one of the
// special system messages
func (h *Handler) handleSubscription(channel string, m *irc.Message, msgID string) host.EatMode {
	switch msgID {
	case "sub", "resub":
		values, ok := requireTags(m, "login")
		if !ok {
			return host.EatNone
		}
		var b strings.Builder
		fmt.Fprintf(&b, "<%s> %sscribes", values[0], msgID)
		if plan, ok := m.Tag("msg-param-sub-plan"); ok {
			b.WriteString(subPlanClauses[plan])
		}
		writeMonthClauses(&b, m, "msg-param-streak-months")
		if m.Trail != "" {
			fmt.Fprintf(&b, ": %s", m.Trail)
		}
		h.echo(channel, host.EventAlert, highlight.Message, "SUBSCRIPTION", b.String())

	case "subgift":
		values, ok := requireTags(m, "msg-param-recipient-user-name", "login")
		if !ok {
			return host.EatNone
		}
		var b strings.Builder
		fmt.Fprintf(&b, "<%s> is gifted a subscription by <%s>", values[0], values[1])
		writeMonthClauses(&b, m, "msg-param-months")
		h.echo(channel, host.EventAlert, highlight.Message, "SUBSCRIPTION", b.String())

	case "submysterygift":
		values, ok := requireTags(m, "msg-param-mass-gift-count", "login")
		if !ok {
			return host.EatNone
		}
		count, login := values[0], values[1]
		h.echo(channel, host.EventAlert, highlight.Message, "SUBSCRIPTION", fmt.Sprintf(
			"<%s> gives out (%s) random gift subscription%s", login, count, plural(count),
		))

	case "giftpaidupgrade":
		values, ok := requireTags(m, "login", "msg-param-sender-login")
		if !ok {
			return host.EatNone
		}
		h.echo(channel, host.EventAlert, highlight.Message, "UPGRADE", fmt.Sprintf(
			"<%s> upgrades a gift subscription from <%s>", values[0], values[1],
		))

	case "primepaidupgrade":
		values, ok := requireTags(m, "login")
		if !ok {
			return host.EatNone
		}
		h.echo(channel, host.EventAlert, highlight.Message, "UPGRADE", fmt.Sprintf(
			"<%s> upgrades a Twitch Prime subscription", values[0],
		))

	case "bitsbadgetier":
		values, ok := requireTags(m, "login")
		if !ok {
			return host.EatNone
		}
		h.echo(channel, host.EventAlert, highlight.Data, "BITS BADGE", fmt.Sprintf(
			"<%s> earns a new tier of Bits Badge", values[0],
		))

	default:
		// Twitch adds new kinds of notice from time to time: say so loudly enough
		// that someone notices and adds them here
		detail, ok := m.TagText("system-msg")
		if !ok {
			detail = m.String()
		}
		h.echo(channel, host.EventNormal, highlight.Data, fmt.Sprintf("Unknown SType '%s': %s", msgID, detail))
	}
	return host.EatHost
}

// writeMonthClauses appends the streak and cumulative month counts, each only when
// it's more than a single month
func writeMonthClauses(b *strings.Builder, m *irc.Message, streakKey string) {
	if streak, ok := m.Tag(streakKey); ok && atoi(streak) > 1 {
		fmt.Fprintf(b, " for (%s) months in a row", streak)
	}
	if total, ok := m.Tag("msg-param-cumulative-months"); ok && atoi(total) > 1 {
		fmt.Fprintf(b, ", with (%s) months in total", total)
	}
}

func plural(count string) string {
	if count == "1" {
		return ""
	}
	return "s"
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
