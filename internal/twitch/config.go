package twitch

import "fmt"

// Config identifies the Twitch app used to read a channel's custom rewards. The app
// must list http://localhost:<AuthPort>/auth as a redirect URI.
type Config struct {
	ChannelName  string `env:"TWITCH_REWARDS_CHANNEL" required:"true"`
	ClientId     string `env:"TWITCH_CLIENT_ID" required:"true"`
	ClientSecret string `env:"TWITCH_CLIENT_SECRET" required:"true"`
	AuthPort     uint16 `env:"TWITCH_AUTH_PORT" default:"3033"`
}

// RedirectUri is where Twitch sends the user after they authorize the app
func (c Config) RedirectUri() string {
	return fmt.Sprintf("http://localhost:%d/auth", c.AuthPort)
}
