package host

import (
	"errors"
	"fmt"
)

// ErrNoSuchChannel is returned when a channel can't be found, even after asking the
// host to open it
var ErrNoSuchChannel = errors.New("no such channel")

// EatMode tells the host what to do with an event after we've seen it
type EatMode int

const (
	// EatNone lets the host process the event as it normally would
	EatNone EatMode = iota
	// EatHost suppresses the host's default rendering of the event
	EatHost
	// EatAll suppresses default rendering and stops any further processing
	EatAll
)

func (e EatMode) String() string {
	switch e {
	case EatNone:
		return "none"
	case EatHost:
		return "host"
	case EatAll:
		return "all"
	}
	return fmt.Sprintf("EatMode(%d)", int(e))
}

// Event categorizes a line that we ask the host to print, so that it can be styled
// appropriately
type Event string

const (
	// EventNormal is used for typical channel events: raids, rituals, etc.
	EventNormal Event = "normal"
	// EventAlert is used for subscriptions, highlighted messages, etc.
	EventAlert Event = "alert"
	// EventChannel links to another channel, e.g. when hosting
	EventChannel Event = "channel"
	// EventError is used when things go wrong, or when people are banned
	EventError Event = "error"
	// EventReward is used for bits and channel point rewards
	EventReward Event = "reward"
	// EventPrivateMessage is a whisper
	EventPrivateMessage Event = "private-message"
	// EventPrivateAction is a whisper sent with /me
	EventPrivateAction Event = "private-action"
	// EventMessageSend notes that we sent a whisper to someone
	EventMessageSend Event = "message-send"
	// EventChannelMessage is an ordinary chat line
	EventChannelMessage Event = "channel-message"
	// EventChannelAction is an ordinary chat line sent with /me
	EventChannelAction Event = "channel-action"
)

// Host is the set of capabilities we need from the chat client that we're extending
type Host interface {
	// FindChannel reports whether a tab is open for the named channel or user
	FindChannel(name string) bool
	// CurrentChannel returns the name of the channel the current event belongs to
	CurrentChannel() string
	// FocusedChannel returns the name of the channel the user is looking at
	FocusedChannel() string
	// Print emits a formatted line into the given channel
	Print(channel string, event Event, args ...string)
	// Command runs a raw client command in the context of the given channel
	Command(channel string, command string) error
	// Pref reads a named preference string
	Pref(key string) (string, bool)
}

// PrintedLine describes a chat line that the host is about to render, in the host's
// own terms
type PrintedLine struct {
	Channel string
	Author  string
	Text    string
	Action  bool
}

// EnsureTab makes sure a tab is open for the given channel or user, asking the host to
// open one if necessary
func EnsureTab(h Host, name string) error {
	if h.FindChannel(name) {
		return nil
	}
	if err := h.Command("", "QUERY "+name); err != nil {
		return fmt.Errorf("failed to open tab for %s: %w", name, err)
	}
	if !h.FindChannel(name) {
		return fmt.Errorf("%w: %s", ErrNoSuchChannel, name)
	}
	return nil
}
