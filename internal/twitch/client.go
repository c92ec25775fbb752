package twitch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nicklaw5/helix/v2"
	"go.uber.org/zap"
)

// RewardScopes are the user scopes needed to list a channel's custom rewards
var RewardScopes = []string{"channel:read:redemptions"}

// NewClientWithUserToken initializes a Twitch API client that acts on behalf of the
// broadcaster, prompting them to authorize the app in their browser
func NewClientWithUserToken(ctx context.Context, cfg Config, logger *zap.Logger) (*helix.Client, error) {
	c, err := helix.NewClient(&helix.Options{
		ClientID:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectUri(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Twitch API client: %w", err)
	}

	code, err := PromptForCodeGrant(ctx, cfg.ClientId, RewardScopes, cfg.AuthPort, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization from user: %w", err)
	}

	res, err := c.RequestUserAccessToken(code.Value)
	if err == nil && res.StatusCode != http.StatusOK {
		err = fmt.Errorf("got status %d: %s", res.StatusCode, res.ErrorMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user access token from Twitch API: %w", err)
	}

	c.SetUserAccessToken(res.Data.AccessToken)
	return c, nil
}
