// Package console implements the chat host for a terminal: it keeps a tab for each
// channel and whisper conversation, renders lines to an output stream, and publishes
// each line so that it can be relayed to other viewers.
package console

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
)

// ErrUnknownCommand is returned for host commands we don't implement
var ErrUnknownCommand = errors.New("unknown command")

// ErrNotSupported is returned for host commands whose hook hasn't been configured
var ErrNotSupported = errors.New("not supported")

// Line is a single line printed to the console
type Line struct {
	ID      string     `json:"id"`
	Time    time.Time  `json:"time"`
	Channel string     `json:"channel"`
	Event   host.Event `json:"event"`
	Text    string     `json:"text"`
}

// Tab is a single channel or whisper conversation
type Tab struct {
	Name  string
	Color highlight.Priority
}

// Prefs supplies named preference strings
type Prefs interface {
	Get(key string) (string, bool)
}

// Hooks connects the console to the rest of the client. Any hook may be nil.
type Hooks struct {
	// Receive feeds a raw line through the client as if it had come from the server
	Receive func(raw string) error
	// Say sends a line of chat to a channel
	Say func(channel string, text string, action bool) error
	// Outgoing is called once a whisper-related line has been sent, and may present
	// it in place of the usual rendering
	Outgoing func(channel string, nick string, text string, action bool) host.EatMode
	// Focus is called when a tab becomes focused
	Focus func(channel string)
	// Badges returns the badge glyphs to display for a user in a channel
	Badges func(channel string, user string) string
}

// Host is a console-based implementation of host.Host
type Host struct {
	nick   string
	out    io.Writer
	prefs  Prefs
	logger *zap.Logger
	styles styles
	lines  chan Line

	mu      sync.Mutex
	hooks   Hooks
	tabs    map[string]*Tab
	current string
	focused string
	buffer  *lineBuffer
}

// NumLinesToBuffer controls how many recent lines are kept for Backlog
const NumLinesToBuffer = 256

// New initializes a console that writes to out, as the user with the given nick
func New(out io.Writer, nick string, prefs Prefs, logger *zap.Logger) *Host {
	return &Host{
		nick:   nick,
		out:    out,
		prefs:  prefs,
		logger: logger,
		styles: newStyles(out),
		lines:  make(chan Line, 64),
		tabs:   make(map[string]*Tab),
		buffer: newLineBuffer(NumLinesToBuffer),
	}
}

// SetHooks connects the console to the rest of the client
func (h *Host) SetHooks(hooks Hooks) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hooks = hooks
}

// Nick returns the name of the local user
func (h *Host) Nick() string {
	return h.nick
}

// Lines returns a channel that receives every line as it's printed. Lines are dropped
// rather than block the console if nobody is reading.
func (h *Host) Lines() <-chan Line {
	return h.lines
}

// Backlog returns the most recently printed lines, oldest first
func (h *Host) Backlog() []Line {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.buffer.recent()
}

// Tabs returns a snapshot of every open tab, ordered by name
func (h *Host) Tabs() []Tab {
	h.mu.Lock()
	defer h.mu.Unlock()

	tabs := make([]Tab, 0, len(h.tabs))
	for _, tab := range h.tabs {
		tabs = append(tabs, *tab)
	}
	slices.SortFunc(tabs, func(a, b Tab) int {
		return strings.Compare(a.Name, b.Name)
	})
	return tabs
}

// SetCurrent records the channel that the event being processed belongs to. An empty
// channel means the event belongs to whichever tab is focused.
func (h *Host) SetCurrent(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = channel
	if channel != "" {
		h.openTab(channel)
	}
}

// Focus brings the named tab into focus, opening it if necessary
func (h *Host) Focus(channel string) {
	h.mu.Lock()
	h.openTab(channel)
	h.focused = channel
	onFocus := h.hooks.Focus
	h.mu.Unlock()

	if onFocus != nil {
		onFocus(channel)
	}
}

// FindChannel reports whether a tab is open with the given name
func (h *Host) FindChannel(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.tabs[strings.ToLower(name)]
	return ok
}

// CurrentChannel returns the channel that the event being processed belongs to
func (h *Host) CurrentChannel() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == "" {
		return h.focused
	}
	return h.current
}

// FocusedChannel returns the tab the user is looking at
func (h *Host) FocusedChannel() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.focused
}

// Pref reads a named preference
func (h *Host) Pref(key string) (string, bool) {
	if h.prefs == nil {
		return "", false
	}
	return h.prefs.Get(key)
}

// Print renders a line into the given tab
func (h *Host) Print(channel string, event host.Event, args ...string) {
	if channel == "" {
		channel = h.CurrentChannel()
	}
	line := Line{
		ID:      uuid.NewString(),
		Time:    time.Now(),
		Channel: channel,
		Event:   event,
		Text:    format(event, args),
	}

	h.mu.Lock()
	tab := h.openTab(channel)
	h.buffer.add(line)
	_, err := fmt.Fprintln(h.out, h.styles.tab(tab.Name, tab.Color), h.styles.event(event, line.Text))
	h.mu.Unlock()

	if err != nil {
		h.logger.Warn("failed to write line", zap.String("channel", channel), zap.Error(err))
	}
	select {
	case h.lines <- line:
	default:
		h.logger.Debug("dropped line", zap.String("id", line.ID))
	}
}

// Message renders an ordinary chat line, prefixed with the author's badges. Lines in
// a whisper tab are rendered as private messages.
func (h *Host) Message(channel string, glyphs string, nick string, text string, action bool) {
	event := host.EventChannelMessage
	switch {
	case isChannel(channel) && action:
		event = host.EventChannelAction
	case !isChannel(channel) && action:
		event = host.EventPrivateAction
	case !isChannel(channel):
		event = host.EventPrivateMessage
	}
	h.Print(channel, event, glyphs+nick, text)
}

// openTab returns the tab with the given name, creating it if necessary; the caller
// must hold mu
func (h *Host) openTab(name string) *Tab {
	key := strings.ToLower(name)
	tab, ok := h.tabs[key]
	if !ok {
		tab = &Tab{Name: name}
		h.tabs[key] = tab
	}
	return tab
}

// isChannel reports whether the named tab is a channel, as opposed to a whisper
// conversation with a single user
func isChannel(name string) bool {
	return strings.HasPrefix(name, "#")
}

var _ host.Host = (*Host)(nil)
