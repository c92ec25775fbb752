package console

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
)

// Palette
var (
	colorMuted     = lipgloss.Color("#7f8c8d")
	colorData      = lipgloss.Color("#3498db")
	colorMessage   = lipgloss.Color("#e67e22")
	colorHighlight = lipgloss.Color("#e74c3c")
	colorAlert     = lipgloss.Color("#9b59b6")
	colorReward    = lipgloss.Color("#f1c40f")
	colorChannel   = lipgloss.Color("#1abc9c")
	colorPrivate   = lipgloss.Color("#2ecc71")
)

// styles holds the lipgloss styles for a single output, so that color is only used
// when that output can display it
type styles struct {
	tabs   map[highlight.Priority]lipgloss.Style
	events map[host.Event]lipgloss.Style
	plain  lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		tabs: map[highlight.Priority]lipgloss.Style{
			highlight.None:      r.NewStyle().Foreground(colorMuted),
			highlight.Data:      r.NewStyle().Foreground(colorData),
			highlight.Message:   r.NewStyle().Foreground(colorMessage).Bold(true),
			highlight.Highlight: r.NewStyle().Foreground(colorHighlight).Bold(true),
		},
		events: map[host.Event]lipgloss.Style{
			host.EventNormal:         r.NewStyle().Foreground(colorMuted),
			host.EventAlert:          r.NewStyle().Foreground(colorAlert).Bold(true),
			host.EventChannel:        r.NewStyle().Foreground(colorChannel).Underline(true),
			host.EventError:          r.NewStyle().Foreground(colorHighlight),
			host.EventReward:         r.NewStyle().Foreground(colorReward),
			host.EventPrivateMessage: r.NewStyle().Foreground(colorPrivate),
			host.EventPrivateAction:  r.NewStyle().Foreground(colorPrivate).Italic(true),
			host.EventMessageSend:    r.NewStyle().Foreground(colorPrivate),
			host.EventChannelAction:  r.NewStyle().Italic(true),
		},
		plain: r.NewStyle(),
	}
}

// tab renders the label for a tab in the color of its highlight
func (s styles) tab(name string, color highlight.Priority) string {
	style, ok := s.tabs[color]
	if !ok {
		style = s.tabs[highlight.Highlight]
	}
	return style.Render("[" + name + "]")
}

func (s styles) event(event host.Event, text string) string {
	style, ok := s.events[event]
	if !ok {
		style = s.plain
	}
	return style.Render(text)
}

// format lays out the arguments of an event as a single line of text
func format(event host.Event, args []string) string {
	first, rest := "", ""
	if len(args) > 0 {
		first = args[0]
		rest = strings.Join(args[1:], " ")
	}

	switch event {
	case host.EventChannelMessage:
		return "<" + first + "> " + rest
	case host.EventChannelAction, host.EventPrivateAction:
		return "* " + first + " " + rest
	case host.EventPrivateMessage:
		return "*" + first + "* " + rest
	case host.EventMessageSend:
		return ">" + first + "< " + rest
	case host.EventAlert, host.EventReward:
		if len(args) > 1 {
			return "[" + first + "] " + rest
		}
	}
	return strings.Join(args, " ")
}
