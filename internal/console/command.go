package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golden-vcr/tagchat/internal/highlight"
	"github.com/golden-vcr/tagchat/internal/host"
)

// Command runs a client command in the context of the given tab (or the current tab,
// if channel is empty). Supported commands:
//
//	QUERY <name>      open a tab
//	GUI COLOR <n>     set the highlight color of the tab
//	RECV <line>       process a raw line as if it came from the server
//	SAY <text>        send a line of chat from the tab
//	FOCUS <name>      focus a tab
func (h *Host) Command(channel string, command string) error {
	if channel == "" {
		channel = h.CurrentChannel()
	}
	verb, rest, _ := strings.Cut(command, " ")

	switch strings.ToUpper(verb) {
	case "QUERY":
		name := strings.TrimSpace(rest)
		if name == "" {
			return fmt.Errorf("QUERY requires a name")
		}
		h.mu.Lock()
		h.openTab(name)
		h.mu.Unlock()
		return nil

	case "GUI":
		sub, arg, _ := strings.Cut(strings.TrimSpace(rest), " ")
		if !strings.EqualFold(sub, "COLOR") {
			return fmt.Errorf("%w: GUI %s", ErrUnknownCommand, sub)
		}
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < int(highlight.None) || n > int(highlight.Highlight) {
			return fmt.Errorf("invalid tab color: %q", arg)
		}
		h.mu.Lock()
		h.openTab(channel).Color = highlight.Priority(n)
		h.mu.Unlock()
		return nil

	case "RECV":
		h.mu.Lock()
		receive := h.hooks.Receive
		h.mu.Unlock()
		if receive == nil {
			return fmt.Errorf("%w: RECV", ErrNotSupported)
		}
		return receive(rest)

	case "SAY":
		return h.say(channel, rest, false)

	case "FOCUS":
		name := strings.TrimSpace(rest)
		if name == "" {
			return fmt.Errorf("FOCUS requires a name")
		}
		h.Focus(name)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

// Input interprets a line typed by the user into the focused tab
func (h *Host) Input(line string) error {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	channel := h.FocusedChannel()

	if !strings.HasPrefix(line, "/") {
		return h.say(channel, line, false)
	}
	verb, rest, _ := strings.Cut(line[1:], " ")
	switch strings.ToLower(verb) {
	case "me":
		return h.say(channel, rest, true)
	case "w":
		return h.say(channel, whisperPrefix+rest, false)
	case "focus", "query":
		return h.Command(channel, "FOCUS "+rest)
	case "raw":
		return h.Command(channel, rest)
	}
	return fmt.Errorf("%w: /%s", ErrUnknownCommand, verb)
}

const whisperPrefix = ".w "

// say sends a line of chat and renders it locally. Lines typed into a whisper tab are
// never sent as-is: the Outgoing hook turns them into whispers.
func (h *Host) say(channel string, text string, action bool) error {
	if channel == "" {
		return fmt.Errorf("no tab is focused")
	}
	h.mu.Lock()
	hooks := h.hooks
	h.mu.Unlock()

	isWhisper := strings.HasPrefix(text, whisperPrefix)
	if isChannel(channel) || isWhisper {
		if hooks.Say == nil {
			return fmt.Errorf("%w: SAY", ErrNotSupported)
		}
		if err := hooks.Say(channel, text, action); err != nil {
			return err
		}
	}

	if (!isChannel(channel) || isWhisper) && hooks.Outgoing != nil {
		if hooks.Outgoing(channel, h.nick, text, action) != host.EatNone {
			return nil
		}
	}

	glyphs := ""
	if hooks.Badges != nil {
		glyphs = hooks.Badges(channel, h.nick)
	}
	h.Message(channel, glyphs, h.nick, text, action)
	return nil
}
