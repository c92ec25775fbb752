package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"go.uber.org/zap"

	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/irc"
)

// ErrMalformedLine is returned when a line fed to Receive has no command
var ErrMalformedLine = errors.New("malformed line")

// ErrAnonymous is returned when trying to send chat without credentials
var ErrAnonymous = errors.New("cannot send chat without a Twitch username and OAuth token")

// ConnectTimeout bounds how long we wait for the initial connection to Twitch chat
const ConnectTimeout = 10 * time.Second

// Config identifies the Twitch account to chat as, and the channels to join. With no
// username or token, we connect anonymously and can only read.
type Config struct {
	Username   string `env:"TWITCH_USERNAME"`
	OAuthToken string `env:"TWITCH_OAUTH_TOKEN"`
	Channels   string `env:"TWITCH_CHANNELS" required:"true"`
}

// ChannelNames returns the comma-separated channel list, normalized to bare lower-case
// names
func (c Config) ChannelNames() []string {
	names := make([]string, 0, strings.Count(c.Channels, ",")+1)
	for _, name := range strings.Split(c.Channels, ",") {
		name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Dispatcher classifies lines received from Twitch, and enriches the chat lines that
// the client renders itself
type Dispatcher interface {
	// HandleServerIn classifies a raw line belonging to the given channel, where an
	// empty channel means the focused one
	HandleServerIn(channel string, raw string) host.EatMode
	HandlePrint(line host.PrintedLine) (string, host.EatMode)
}

// Display renders whatever the Dispatcher leaves alone
type Display interface {
	SetCurrent(channel string)
	Print(channel string, event host.Event, args ...string)
	Message(channel string, glyphs string, nick string, text string, action bool)
}

// Client connects to Twitch chat, passing every line it receives through a Dispatcher
// before rendering it to a Display
type Client struct {
	client     *twitch.Client
	connection *Connection
	dispatcher Dispatcher
	display    Display
	logger     *zap.Logger

	channels  []string
	anonymous bool
}

// NewClient prepares a client that will join the configured channels once opened
func NewClient(cfg Config, dispatcher Dispatcher, display Display, logger *zap.Logger) *Client {
	anonymous := cfg.Username == "" || cfg.OAuthToken == ""
	var client *twitch.Client
	if anonymous {
		client = twitch.NewAnonymousClient()
	} else {
		client = twitch.NewClient(cfg.Username, cfg.OAuthToken)
	}

	c := &Client{
		client:     client,
		connection: NewConnection(client, logger),
		dispatcher: dispatcher,
		display:    display,
		logger:     logger,
		channels:   cfg.ChannelNames(),
		anonymous:  anonymous,
	}

	// Every line, whatever go-twitch-irc makes of it, takes the same path
	client.OnPrivateMessage(func(m twitch.PrivateMessage) { c.receive(m.Raw) })
	client.OnWhisperMessage(func(m twitch.WhisperMessage) { c.receive(m.Raw) })
	client.OnUserNoticeMessage(func(m twitch.UserNoticeMessage) { c.receive(m.Raw) })
	client.OnClearChatMessage(func(m twitch.ClearChatMessage) { c.receive(m.Raw) })
	client.OnClearMessage(func(m twitch.ClearMessage) { c.receive(m.Raw) })
	client.OnRoomStateMessage(func(m twitch.RoomStateMessage) { c.receive(m.Raw) })
	client.OnUserStateMessage(func(m twitch.UserStateMessage) { c.receive(m.Raw) })
	client.OnNoticeMessage(func(m twitch.NoticeMessage) { c.receive(m.Raw) })
	client.OnUnsetMessage(func(m twitch.RawMessage) { c.receive(m.Raw) })
	client.Join(c.channels...)
	return c
}

// Run connects to Twitch chat and stays connected until ctx is done
func (c *Client) Run(ctx context.Context) error {
	openCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := c.connection.Open(openCtx); err != nil {
		return fmt.Errorf("failed to connect to Twitch chat: %w", err)
	}
	c.logger.Info("connected to Twitch chat", zap.Strings("channels", c.channels), zap.Bool("anonymous", c.anonymous))

	<-ctx.Done()
	if err := c.connection.Close(); err != nil && !errors.Is(err, ErrConnectionNotOpen) {
		return fmt.Errorf("failed to disconnect from Twitch chat: %w", err)
	}
	return nil
}

// GetStatus returns nil if we're connected to chat, or the reason we're not
func (c *Client) GetStatus() error {
	return c.connection.GetStatus()
}

// Channels returns the names of the channels we join, as tab names
func (c *Client) Channels() []string {
	tabs := make([]string, 0, len(c.channels))
	for _, name := range c.channels {
		tabs = append(tabs, "#"+name)
	}
	return tabs
}

// Say sends a line of chat to a channel. Whispers are sent as a ".w" command, which
// Twitch accepts in any channel, so lines for a whisper tab go to the first channel
// we've joined.
func (c *Client) Say(channel string, text string, action bool) error {
	if c.anonymous {
		return ErrAnonymous
	}
	if action {
		text = "/me " + text
	}
	target, isChannel := strings.CutPrefix(channel, "#")
	if !isChannel {
		if len(c.channels) == 0 {
			return fmt.Errorf("no channel to send whisper through")
		}
		target = c.channels[0]
	}
	c.client.Say(target, text)
	return nil
}

// Receive processes a raw line as if it had just been received from the server
func (c *Client) Receive(raw string) error {
	m := irc.Parse(raw)
	if m.Command == "" {
		return fmt.Errorf("%w: %q", ErrMalformedLine, raw)
	}
	c.handle(m, raw)
	return nil
}

func (c *Client) receive(raw string) {
	if err := c.Receive(raw); err != nil {
		c.logger.Warn("ignoring line", zap.Error(err))
	}
}

func (c *Client) handle(m *irc.Message, raw string) {
	channel := contextOf(m)
	c.display.SetCurrent(channel)
	if c.dispatcher.HandleServerIn(channel, raw) != host.EatNone {
		return
	}

	switch m.Command {
	case "PRIVMSG":
		text, action := irc.UnwrapAction(m.Trail)
		glyphs, eat := c.dispatcher.HandlePrint(host.PrintedLine{
			Channel: m.Target(),
			Author:  m.Author(),
			Text:    text,
			Action:  action,
		})
		if eat != host.EatNone {
			return
		}
		nick, ok := m.TagText("display-name")
		if !ok || nick == "" {
			nick = m.Author()
		}
		c.display.Message(channel, glyphs, nick, text, action)
	case "NOTICE":
		c.display.Print(channel, host.EventNormal, m.Trail)
	default:
		c.display.Print(channel, host.EventNormal, raw)
	}
}

// contextOf returns the tab a line belongs to. A PRIVMSG addressed to a user rather
// than a channel belongs to the tab for that user; anything else without a channel
// belongs to the focused tab.
func contextOf(m *irc.Message) string {
	target := m.Target()
	if m.Command == "PRIVMSG" || strings.HasPrefix(target, "#") {
		return target
	}
	return ""
}
